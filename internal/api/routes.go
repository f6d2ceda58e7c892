package api

import (
	"github.com/ajharbinger/football-connector/internal/services"
	"github.com/ajharbinger/football-connector/internal/upstream"
	"github.com/ajharbinger/football-connector/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, svc *services.Services, health *upstream.HealthMonitor, cfg *config.Config) {
	statusHandler := NewStatusHandler(health, cfg)
	fixturesHandler := NewFixturesHandler(svc.Fixtures)
	predictionHandler := NewPredictionHandler(svc.Predictions)

	r.GET("/", statusHandler.Home)
	r.GET("/routes", ListRoutes(r))

	// Health monitoring endpoints
	r.GET("/health", statusHandler.GetHealth)
	r.POST("/health/upstream/reset", statusHandler.ResetUpstreamHealth)

	// Fixture proxy endpoints
	fixtures := r.Group("/fixtures")
	{
		fixtures.GET("/today", fixturesHandler.GetToday)
		fixtures.GET("/live", fixturesHandler.GetLive)
		fixtures.GET("/date/:date", fixturesHandler.GetByDate)
		fixtures.GET("/league/:id", fixturesHandler.GetByLeague)
	}

	// Prediction endpoints
	r.GET("/predict/top/:n", predictionHandler.GetTopPredictions)
	r.GET("/ufp/analyze/:fixtureId", predictionHandler.AnalyzeFixture)
}
