package handlers

import (
	"net/http"

	"discharge-analyzer/internal/api/models"
	"discharge-analyzer/internal/config"
	"discharge-analyzer/internal/model"

	"github.com/gin-gonic/gin"
)

// ConditionHandler exposes the configured inputs
type ConditionHandler struct {
	cfg *config.Config
}

// NewConditionHandler creates a new condition handler
func NewConditionHandler(cfg *config.Config) *ConditionHandler {
	return &ConditionHandler{cfg: cfg}
}

// ListConditions handles GET /api/v1/conditions
func (h *ConditionHandler) ListConditions(c *gin.Context) {
	conditions := make([]models.ConditionInfo, 0, len(h.cfg.Conditions))
	for _, cond := range h.cfg.Conditions {
		conditions = append(conditions, models.ConditionInfo{
			Label: cond.Label,
			File:  cond.File,
			Sheet: cond.Sheet,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"cutoff_voltage": h.cfg.CutoffVoltage,
		"conditions":     conditions,
		"count":          len(conditions),
	})
}

// ListMetrics handles GET /api/v1/metrics
func ListMetrics(c *gin.Context) {
	metrics := make([]models.MetricInfo, 0, len(model.Metrics))
	for _, m := range model.Metrics {
		metrics = append(metrics, models.MetricInfo{
			Name:  string(m),
			Unit:  m.Unit(),
			Label: m.Label(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}
