package auth

import (
	"context"
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "movieapi/internal/errors"
	"movieapi/internal/model"
)

// userIDKey is the echo context key under which echo-jwt stores the verified user id.
const userIDKey = "user_id"

type userContextKey struct{}

// UserLookup loads a user by id. A missing user must be reported as gorm.ErrRecordNotFound.
type UserLookup interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// WithUser returns a copy of ctx carrying the resolved caller.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the caller stored by RequireUser.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*model.User)
	return user, ok && user != nil
}

// Unauthorized writes the single 401 response used for every authentication failure.
func Unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthorized)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// RequireUser resolves the caller from the bearer token. The token is verified
// by tokens and the user is then reloaded from users on every request, so a
// token that outlives its user is rejected.
func RequireUser(tokens *JWTService, users UserLookup) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		ContextKey: userIDKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Debugf("bearer token rejected: %v", err)
			return Unauthorized(c)
		},
	})

	load := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := c.Get(userIDKey).(uint)
			if !ok {
				return Unauthorized(c)
			}

			ctx := c.Request().Context()
			user, err := users.FindByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return Unauthorized(c)
				}
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			c.SetRequest(c.Request().WithContext(WithUser(ctx, user)))
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(load(next))
	}
}
