// Package app wires configuration into the services shared by the API server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/masterchef/backend/config"
	"github.com/pageza/masterchef/backend/internal/api"
	"github.com/pageza/masterchef/backend/internal/database"
	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/internal/middleware"
	"github.com/pageza/masterchef/backend/internal/service"
)

// App holds the live services. Redis, Exporter and Limiter are nil when their
// backing store is not configured or not reachable.
type App struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Sessions  *service.SessionService
	Recipes   *service.RecipeService
	Drafts    service.DraftStore
	Generator service.ContentGenerator
	Extractor *service.ExtractorService
	Exporter  *service.ExportService
	Limiter   *middleware.RateLimiter
}

// Options adjust how New builds the services
type Options struct {
	// Generator replaces the Gemini client, mainly for tests
	Generator service.ContentGenerator
	// SkipRedis keeps drafts in memory even when Redis is configured
	SkipRedis bool
}

// New connects to the database, applies migrations and builds every service
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := &App{
		DB:       db,
		Sessions: service.NewSessionService(cfg.JWTSecret),
		Recipes:  service.NewRecipeService(db),
		Drafts:   service.NewMemoryDraftStore(),
	}

	if !opts.SkipRedis {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			// Continue without rate limiting if Redis is not available
			logger.Warn("redis unavailable, keeping drafts in memory", zap.Error(err))
		} else {
			a.Redis = client
			a.Drafts = service.NewRedisDraftStore(client)
			a.Limiter = middleware.NewExtractionRateLimiter(client, cfg.RateLimitPerHour)
		}
	}

	generator := opts.Generator
	if generator == nil {
		gemini, err := service.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		generator = gemini
	}
	a.Generator = generator
	a.Extractor = service.NewExtractorService(generator, a.Drafts, cfg.ExtractTimeout)

	if cfg.S3Bucket != "" {
		store, err := config.NewS3Config(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			logger.Warn("S3 unavailable, export disabled", zap.Error(err))
		} else {
			a.Exporter = service.NewExportService(a.Recipes, store)
		}
	}

	return a, nil
}

// Dependencies returns the services as the HTTP routes expect them
func (a *App) Dependencies() api.Dependencies {
	deps := api.Dependencies{
		Sessions:  a.Sessions,
		Extractor: a.Extractor,
		Recipes:   a.Recipes,
		Drafts:    a.Drafts,
		Limiter:   a.Limiter,
	}
	// A nil *ExportService must not become a non-nil interface
	if a.Exporter != nil {
		deps.Exporter = a.Exporter
	}
	return deps
}

// Close releases the database and Redis connections
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
