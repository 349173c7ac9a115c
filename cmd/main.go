package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/kribhq/krib/internal/api/v1/handlers"
	"github.com/kribhq/krib/internal/api/v1/middleware"
	v1 "github.com/kribhq/krib/internal/api/v1/routes"
	"github.com/kribhq/krib/internal/api/v1/services"
	"github.com/kribhq/krib/internal/config"
	"github.com/kribhq/krib/internal/db"
	"github.com/kribhq/krib/internal/db/repos"
	"github.com/kribhq/krib/internal/expiry"
	"github.com/kribhq/krib/internal/logger"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger.Initialize()

	gormDB, err := db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", db.DefaultHost),
		User:     config.GetEnv("DB_USER", db.DefaultUser),
		Password: config.GetEnv("DB_PASSWORD", db.DefaultPassword),
		DBName:   config.GetEnv("DB_NAME", db.DefaultDBName),
		Port:     config.GetEnvInt("DB_PORT", db.DefaultPort),
	})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	// The availability cache is optional. A missing or unreachable Redis
	// only disables caching.
	rdb, err := db.NewRedisClient(ctx, config.GetEnv("REDIS_URL", "redis://localhost:6379/0"))
	if err != nil {
		logger.Warnf("redis unavailable, availability cache disabled: %v", err)
		rdb = nil
	}

	jobRepo := repos.NewJobRepository(gormDB)
	timeOffRepo := repos.NewTimeOffRepository(gormDB)
	progressRepo := repos.NewProgressRepository(gormDB)
	prefsRepo := repos.NewPreferencesRepository(gormDB)

	jobSvc := services.NewJobService(jobRepo, prefsRepo)
	availSvc := services.NewAvailabilityService(timeOffRepo, rdb)
	offerSvc := services.NewOfferService(jobRepo, prefsRepo, availSvc)
	progressSvc := services.NewProgressService(jobRepo, progressRepo, prefsRepo)

	sweepInterval := time.Duration(config.GetEnvInt("OFFER_SWEEP_MINUTES", 15)) * time.Minute
	sweeper := expiry.New(offerSvc, sweepInterval)
	if err := sweeper.Start(ctx); err != nil {
		logger.Fatalf("failed to start offer expiry sweeper: %v", err)
	}
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})
	app.Use(middleware.Logger())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	// API v1 routes
	v1.Register(app, v1.Handlers{
		Job:          handlers.NewJobHandler(jobSvc),
		Offer:        handlers.NewOfferHandler(offerSvc),
		Availability: handlers.NewAvailabilityHandler(availSvc),
		Progress:     handlers.NewProgressHandler(progressSvc),
	})

	logger.Fatal(app.Listen(":" + config.GetEnv("PORT", "8080")))
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
