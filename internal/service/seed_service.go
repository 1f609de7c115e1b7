package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	apperrors "movieapi/internal/errors"
	"movieapi/internal/model"
)

// DummyPassword is the password given to every seeded user.
const DummyPassword = "password1234"

// SeedResult reports how many records a seed run inserted.
type SeedResult struct {
	Users  int `json:"users"`
	Movies int `json:"movies"`
}

// SeedService fills an empty installation with dummy users and movies.
type SeedService interface {
	SeedDummy(ctx context.Context) (SeedResult, error)
}

type seedService struct {
	users  UserService
	movies MovieService
}

// NewSeedService creates a seeder on top of the user and movie services.
func NewSeedService(users UserService, movies MovieService) SeedService {
	return &seedService{users: users, movies: movies}
}

// SeedDummy creates dummy users whose usernames are free and, when no movies
// exist yet, a small movie catalogue. Running it twice inserts nothing new.
func (s *seedService) SeedDummy(ctx context.Context) (SeedResult, error) {
	var res SeedResult

	for i := 1; i <= 10; i++ {
		gender := "male"
		if i%2 == 0 {
			gender = "female"
		}
		user := &model.User{
			Username: fmt.Sprintf("dummy%d", i),
			Age:      15 + i*5,
			Gender:   gender,
		}
		if _, err := s.users.CreateUser(ctx, user, DummyPassword); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				continue
			}
			return res, fmt.Errorf("seed user %s: %w", user.Username, err)
		}
		res.Users++
	}

	existing, err := s.movies.ListMovies(ctx, model.MovieFilter{})
	if err != nil {
		return res, fmt.Errorf("check movies: %w", err)
	}
	if len(existing) > 0 {
		return res, nil
	}

	for _, m := range dummyMovies() {
		movie := m
		if _, err := s.movies.CreateMovie(ctx, &movie); err != nil {
			return res, fmt.Errorf("seed movie %s: %w", movie.Title, err)
		}
		res.Movies++
	}
	return res, nil
}

func dummyMovies() []model.Movie {
	rated := func(s string) decimal.NullDecimal {
		return decimal.NewNullDecimal(decimal.RequireFromString(s))
	}
	return []model.Movie{
		{Title: "Parasite", Playtime: 132, Genre: "drama", ReleaseYear: 2019, Rating: rated("8.5")},
		{Title: "Oldboy", Playtime: 120, Genre: "thriller", ReleaseYear: 2003, Rating: rated("8.4")},
		{Title: "The Host", Playtime: 119, Genre: "sf", ReleaseYear: 2006, Rating: rated("7.1")},
		{Title: "Train to Busan", Playtime: 118, Genre: "horror", ReleaseYear: 2016, Rating: rated("7.6")},
		{Title: "Memories of Murder", Playtime: 131, Genre: "thriller", ReleaseYear: 2003},
	}
}
