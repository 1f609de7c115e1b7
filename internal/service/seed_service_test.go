package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"movieapi/internal/model"
)

func TestSeedService_SeedDummy(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, mock.AnythingOfType("string")).Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	movieRepo := new(MockMovieRepository)
	movieRepo.On("List", mock.Anything, model.MovieFilter{}).Return([]model.Movie{}, nil)
	movieRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Movie")).Return(nil)

	seeder := NewSeedService(NewUserService(userRepo, nil), NewMovieService(movieRepo, nil))
	res, err := seeder.SeedDummy(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 10, res.Users)
	assert.Equal(t, len(dummyMovies()), res.Movies)
	userRepo.AssertNumberOfCalls(t, "Create", 10)
	movieRepo.AssertNumberOfCalls(t, "Create", len(dummyMovies()))
}

func TestSeedService_SeedDummy_AlreadySeeded(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, mock.AnythingOfType("string")).Return(&model.User{ID: 1}, nil)

	movieRepo := new(MockMovieRepository)
	movieRepo.On("List", mock.Anything, model.MovieFilter{}).Return([]model.Movie{{ID: 1}}, nil)

	seeder := NewSeedService(NewUserService(userRepo, nil), NewMovieService(movieRepo, nil))
	res, err := seeder.SeedDummy(context.Background())

	require.NoError(t, err)
	assert.Equal(t, SeedResult{}, res)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	movieRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
