package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"movieapi/internal/cache"
	apperrors "movieapi/internal/errors"
	"movieapi/internal/model"
	"movieapi/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, user *model.User, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SearchUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error)
	UpdateUser(ctx context.Context, id uint, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func userNotFound(id uint) error {
	return fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
}

func usernameTaken(username string) error {
	return fmt.Errorf("username %q %w", username, apperrors.ErrConflict)
}

func (s *userService) CreateUser(ctx context.Context, user *model.User, password string) (*model.User, error) {
	if err := s.ensureUsernameFree(ctx, user.Username, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hashed

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, usernameTaken(user.Username)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, userCacheKey(id), &cached) {
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.cache.FillJSON(ctx, userCacheKey(id), user, userCacheTTL)
	return user, nil
}

// ListUsers returns every user. An empty store is reported as ErrNotFound.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("users: %w", apperrors.ErrNotFound)
	}
	return users, nil
}

// SearchUsers filters users by equality on the present fields. No match is
// reported as ErrNotFound.
func (s *userService) SearchUsers(ctx context.Context, filter model.UserFilter) ([]model.User, error) {
	users, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("matching users: %w", apperrors.ErrNotFound)
	}
	return users, nil
}

// UpdateUser merges the present patch fields into the stored user.
func (s *userService) UpdateUser(ctx context.Context, id uint, patch model.UserPatch) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if err := s.ensureUsernameFree(ctx, *patch.Username, id); err != nil {
			return nil, err
		}
	}

	patch.Apply(user)
	if patch.Password != nil {
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashed
	}

	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userNotFound(id)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, usernameTaken(user.Username)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.cache.Invalidate(ctx, userCacheKey(id))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return userNotFound(id)
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.cache.Invalidate(ctx, userCacheKey(id))
	return nil
}

// ensureUsernameFree fails with ErrConflict when username belongs to a user other than self.
func (s *userService) ensureUsernameFree(ctx context.Context, username string, self uint) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check username: %w", err)
	}
	if existing.ID != self {
		return usernameTaken(username)
	}
	return nil
}
