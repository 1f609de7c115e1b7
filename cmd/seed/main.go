package main

import (
	"context"
	"log"

	"movieapi/internal/cache"
	"movieapi/internal/config"
	"movieapi/internal/db"
	"movieapi/internal/model"
	"movieapi/internal/repository"
	"movieapi/internal/service"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DSN(), cfg.DBDebug)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Movie{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	userService := service.NewUserService(repository.NewUserRepository(gormDB), cacheClient)
	movieService := service.NewMovieService(repository.NewMovieRepository(gormDB), cacheClient)

	res, err := service.NewSeedService(userService, movieService).SeedDummy(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed dummy data: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Users created: %d", res.Users)
	log.Printf("  - Movies created: %d", res.Movies)
	log.Printf("  - Dummy user password: %s", service.DummyPassword)
}
