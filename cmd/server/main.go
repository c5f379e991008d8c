package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/trialworks/ediary-service/internal/cache"
	"github.com/trialworks/ediary-service/internal/config"
	"github.com/trialworks/ediary-service/internal/events"
	"github.com/trialworks/ediary-service/internal/handlers"
	"github.com/trialworks/ediary-service/internal/repositories/postgres"
	"github.com/trialworks/ediary-service/internal/services"
	"github.com/trialworks/ediary-service/internal/utils"
	"github.com/trialworks/ediary-service/internal/validator"
	"github.com/trialworks/ediary-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.LogError(err, "failed to connect to database")
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.LogError(err, "failed to migrate database")
		os.Exit(1)
	}

	var cacheService cache.CacheService
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
		cacheService = cache.NewNoopCache()
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	eventCfg := config.LoadEventConfig()
	publisher, err := eventCfg.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.LogError(err, "failed to create event publisher, using mock")
		publisher = events.NewMockEventPublisher(slogLogger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "failed to close event publisher")
		}
	}()

	repo := postgres.NewRepository(db)
	v := validator.New()
	serviceManager := services.NewServiceManager(
		repo, cacheService, publisher, v, cfg.AdminAPIKey, slogLogger)

	if cfg.Environment != "production" {
		if err := serviceManager.Seed().SeedDemo(context.Background()); err != nil {
			logger.LogError(err, "failed to seed demo data")
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	logger.Info("starting ediary service", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.LogError(err, "server stopped")
		os.Exit(1)
	}
}
