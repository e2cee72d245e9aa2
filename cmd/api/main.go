package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"scamguard/internal/api"
	"scamguard/internal/api/handlers"
	"scamguard/internal/config"
	"scamguard/internal/domain/services"
	"scamguard/internal/domain/services/ai"
	"scamguard/internal/infrastructure/cache"
	"scamguard/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ScamGuard")

	// Connect to Redis (optional; the service runs without it)
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedisCache(cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without caching")
		} else {
			defer redisCache.Close()
			log.Info().Str("addr", cfg.Redis.Addr()).Msg("connected to Redis")
		}
	}

	// Initialize the judgment client; without an API key analysis runs in
	// rule-only mode.
	aiClient := ai.NewClient(ai.Config{
		APIKey:      cfg.AI.APIKey,
		Model:       cfg.AI.Model,
		Endpoint:    cfg.AI.Endpoint,
		Timeout:     cfg.AI.Timeout,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	}, log)

	var judge services.Judge
	if aiClient.Available() {
		judge = aiClient
		log.Info().Str("model", cfg.AI.Model).Msg("AI judgment enabled")
	} else {
		log.Warn().Msg("no AI API key configured, running in rule-only mode")
	}

	// Initialize analysis engine
	catalog := services.NewPatternCatalog()
	engine := services.NewAnalysisEngine(catalog, judge, log)
	log.Info().Msg("analysis engine initialized")

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Engine:   engine,
		Cache:    redisCache,
		Logger:   log,
		Config:   cfg,
		AIActive: judge != nil,
	})

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}
