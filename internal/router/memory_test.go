package router

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"movieapi/internal/model"
)

// memUserRepo is an in-memory repository.UserRepository for HTTP tests.
type memUserRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{rows: map[uint]model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.rows[user.ID] = *user
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.rows {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) List(ctx context.Context) ([]model.User, error) {
	return r.Search(ctx, model.UserFilter{})
}

func (r *memUserRepo) Search(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for id := uint(1); id <= r.nextID; id++ {
		u, ok := r.rows[id]
		if !ok {
			continue
		}
		if filter.Username != nil && u.Username != *filter.Username {
			continue
		}
		if filter.Age != nil && u.Age != *filter.Age {
			continue
		}
		if filter.Gender != nil && u.Gender != *filter.Gender {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	for id, u := range r.rows {
		if id != user.ID && u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UpdatedAt = time.Now()
	r.rows[user.ID] = *user
	return nil
}

func (r *memUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil
	}
	u.LastLogin = &at
	r.rows[id] = u
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

// memMovieRepo is an in-memory repository.MovieRepository for HTTP tests.
type memMovieRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.Movie
}

func newMemMovieRepo() *memMovieRepo {
	return &memMovieRepo{rows: map[uint]model.Movie{}}
}

func (r *memMovieRepo) Create(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	movie.ID = r.nextID
	movie.CreatedAt = time.Now()
	movie.UpdatedAt = movie.CreatedAt
	r.rows[movie.ID] = *movie
	return nil
}

func (r *memMovieRepo) FindByID(ctx context.Context, id uint) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *memMovieRepo) List(ctx context.Context, filter model.MovieFilter) ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Movie{}
	for id := uint(1); id <= r.nextID; id++ {
		m, ok := r.rows[id]
		if !ok {
			continue
		}
		if filter.Title != nil && m.Title != *filter.Title {
			continue
		}
		if filter.Genre != nil && m.Genre != *filter.Genre {
			continue
		}
		if filter.ReleaseYear != nil && m.ReleaseYear != *filter.ReleaseYear {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *memMovieRepo) Update(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[movie.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	movie.UpdatedAt = time.Now()
	r.rows[movie.ID] = *movie
	return nil
}

func (r *memMovieRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}
