package handlers

import (
	"scamguard/internal/config"
	"scamguard/internal/domain/services"
	"scamguard/internal/infrastructure/cache"
	"scamguard/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Analysis *AnalysisHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Engine   *services.AnalysisEngine
	Cache    *cache.RedisCache
	Logger   *logger.Logger
	Config   *config.Config
	AIActive bool
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Logger, deps.Config.App.Version, deps.AIActive),
		Analysis: NewAnalysisHandler(deps.Engine, deps.Cache, deps.Config.Analysis.CacheTTL, deps.Logger),
	}
}
