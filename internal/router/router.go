package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"movieapi/docs"
	"movieapi/internal/config"
	"movieapi/internal/handler"
)

// Register wires routes and middleware. requireUser guards the /users/me routes.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	movieHandler *handler.MovieHandler,
	requireUser echo.MiddlewareFunc,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	users := e.Group("/users")
	users.POST("", userHandler.CreateUser)
	users.GET("", userHandler.ListUsers)
	users.GET("/search", userHandler.SearchUsers)
	users.POST("/login", authHandler.Login)

	// Caller resolved from the bearer token
	users.GET("/me", userHandler.Me, requireUser)
	users.PATCH("/me", userHandler.UpdateMe, requireUser)
	users.DELETE("/me", userHandler.DeleteMe, requireUser)

	users.GET("/:id", userHandler.GetUser)
	users.PATCH("/:id", userHandler.UpdateUser)
	users.DELETE("/:id", userHandler.DeleteUser)

	movies := e.Group("/movies")
	movies.POST("", movieHandler.CreateMovie)
	movies.GET("", movieHandler.ListMovies)
	movies.GET("/:id", movieHandler.GetMovie)
	movies.PATCH("/:id", movieHandler.UpdateMovie)
	movies.DELETE("/:id", movieHandler.DeleteMovie)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
