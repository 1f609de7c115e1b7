package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"movieapi/internal/auth"
	"movieapi/internal/cache"
	apperrors "movieapi/internal/errors"
	"movieapi/internal/repository"
)

// TokenTypeBearer is the token_type reported alongside issued access tokens.
const TokenTypeBearer = "bearer"

// ErrInvalidCredentials is returned when the username is unknown or the password is wrong.
// Both cases are reported identically.
var ErrInvalidCredentials = fmt.Errorf("incorrect username or password: %w", apperrors.ErrUnauthorized)

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*Token, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
		now:        time.Now,
	}
}

// Login verifies the credentials, issues an access token and stamps the login time.
func (s *authService) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			burnPasswordCheck(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, s.now()); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	s.cache.Invalidate(ctx, userCacheKey(user.ID))

	return &Token{AccessToken: accessToken, TokenType: TokenTypeBearer}, nil
}
