// Package api serves cached discharge analyses as JSON and PNG charts for a
// local browser viewer.
package api

import (
	"log/slog"
	"net/http"

	"discharge-analyzer/internal/api/handlers"
	"discharge-analyzer/internal/api/middleware"
	"discharge-analyzer/internal/config"
	"discharge-analyzer/internal/discharge"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the viewer routes. runner is usually a *discharge.Engine
// built from cfg.
func NewRouter(cfg *config.Config, runner handlers.Runner, cache *discharge.ResultCache, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS(cfg.API.AllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())

	analysisHandler := handlers.NewAnalysisHandler(runner, cache, cfg.CutoffVoltage)
	conditionHandler := handlers.NewConditionHandler(cfg)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/conditions", conditionHandler.ListConditions)
		v1.GET("/metrics", handlers.ListMetrics)

		v1.POST("/analyses", analysisHandler.RunAnalysis)
		v1.GET("/analyses/:id", analysisHandler.GetAnalysis)
		v1.GET("/analyses/:id/rank", analysisHandler.RankConditions)
		v1.GET("/analyses/:id/charts/:name", analysisHandler.GetChart)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
