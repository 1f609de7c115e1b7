package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"movieapi/internal/auth"
	"movieapi/internal/cache"
	"movieapi/internal/config"
	"movieapi/internal/db"
	"movieapi/internal/handler"
	"movieapi/internal/model"
	"movieapi/internal/repository"
	"movieapi/internal/router"
	"movieapi/internal/service"
)

// @title Movie API
// @version 1.0
// @description CRUD API for movies and users with bearer token login.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), cfg.DBDebug)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping all tables...")
		for _, table := range []interface{}{&model.Movie{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Movie{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL)
	requireUser := auth.RequireUser(jwtService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, cacheClient)
	userService := service.NewUserService(userRepo, cacheClient)
	movieService := service.NewMovieService(movieRepo, cacheClient)

	if cfg.SeedDummy {
		res, err := service.NewSeedService(userService, movieService).SeedDummy(context.Background())
		if err != nil {
			log.Fatalf("seed dummy data: %v", err)
		}
		log.Printf("Seeded %d users and %d movies", res.Users, res.Movies)
	}

	// Register routes
	router.Register(
		e,
		cfg,
		handler.NewUserHandler(userService),
		handler.NewAuthHandler(authService),
		handler.NewMovieHandler(movieService),
		requireUser,
	)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.ServerPort
	}
	if !strings.HasPrefix(swaggerHost, "http://") && !strings.HasPrefix(swaggerHost, "https://") {
		swaggerHost = "http://" + swaggerHost
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
