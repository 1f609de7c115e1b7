package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"movieapi/internal/service"
)

type loginFunc func(ctx context.Context, username, password string) (*service.Token, error)

func (f loginFunc) Login(ctx context.Context, username, password string) (*service.Token, error) {
	return f(ctx, username, password)
}

type structValidator struct{ v *validator.Validate }

func (sv structValidator) Validate(i interface{}) error { return sv.v.Struct(i) }

func postLogin(t *testing.T, svc service.AuthService) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Validator = structValidator{v: validator.New()}
	e.POST("/users/login", NewAuthHandler(svc).Login)

	form := url.Values{"username": {"alice"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad credentials",
			err:        service.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "wrapped bad credentials",
			err:        fmt.Errorf("login alice: %w", service.ErrInvalidCredentials),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "store failure",
			err:        errors.New("find user: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "LOGIN_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postLogin(t, loginFunc(func(context.Context, string, string) (*service.Token, error) {
				return nil, tt.err
			}))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantCode)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get(echo.HeaderWWWAuthenticate))
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	rec := postLogin(t, loginFunc(func(_ context.Context, username, password string) (*service.Token, error) {
		assert.Equal(t, "alice", username)
		assert.Equal(t, "pw", password)
		return &service.Token{AccessToken: "tok", TokenType: service.TokenTypeBearer}, nil
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"access_token":"tok","token_type":"bearer"}`, rec.Body.String())
}
