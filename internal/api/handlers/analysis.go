package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"discharge-analyzer/internal/api/models"
	"discharge-analyzer/internal/chart"
	"discharge-analyzer/internal/data"
	"discharge-analyzer/internal/discharge"
	"discharge-analyzer/internal/model"

	"github.com/gin-gonic/gin"
)

// Runner executes the discharge pipeline; *discharge.Engine satisfies it.
type Runner interface {
	RunWithCutoff(cutoffVolts float64) (*discharge.Result, error)
}

// AnalysisHandler handles analysis runs and their cached results
type AnalysisHandler struct {
	runner        Runner
	cache         *discharge.ResultCache
	defaultCutoff float64
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(runner Runner, cache *discharge.ResultCache, defaultCutoff float64) *AnalysisHandler {
	return &AnalysisHandler{
		runner:        runner,
		cache:         cache,
		defaultCutoff: defaultCutoff,
	}
}

// RunAnalysis handles POST /api/v1/analyses
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req models.AnalysisRequest
	// The body is optional; an empty one runs with the configured cut-off.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	cutoff := h.defaultCutoff
	if req.CutoffVoltage != nil {
		cutoff = *req.CutoffVoltage
	}

	res, err := h.runner.RunWithCutoff(cutoff)
	if err != nil {
		var ioErr *data.IOError
		var fmtErr *data.FormatError
		switch {
		case errors.As(err, &ioErr):
			writeError(c, http.StatusUnprocessableEntity, "SOURCE_UNREADABLE", err.Error())
		case errors.As(err, &fmtErr):
			writeError(c, http.StatusUnprocessableEntity, "INVALID_TABLE", err.Error())
		default:
			writeError(c, http.StatusInternalServerError, "ANALYSIS_ERROR", err.Error())
		}
		return
	}

	entry := h.cache.Put(res)
	c.JSON(http.StatusCreated, buildAnalysisResponse(entry, false))
}

// GetAnalysis handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	var q models.AnalysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	c.JSON(http.StatusOK, buildAnalysisResponse(entry, q.IncludeSeries))
}

// GetChart handles GET /api/v1/analyses/:id/charts/:name
func (h *AnalysisHandler) GetChart(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	kind, ok := chart.ParseKind(c.Param("name"))
	if !ok {
		writeError(c, http.StatusNotFound, "UNKNOWN_CHART",
			fmt.Sprintf("chart %q not found (want one of %v)", c.Param("name"), chart.Kinds))
		return
	}
	if len(entry.Result.Conditions) == 0 {
		writeError(c, http.StatusConflict, "NO_DATA", "no condition has data above the cut-off voltage")
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, kind, entry.Result); err != nil {
		writeError(c, http.StatusInternalServerError, "CHART_ERROR", err.Error())
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// RankConditions handles GET /api/v1/analyses/:id/rank
func (h *AnalysisHandler) RankConditions(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	var q models.RankQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	m := model.MetricCapacity
	if q.Metric != "" {
		m = model.Metric(q.Metric)
	}
	if !m.Valid() {
		writeError(c, http.StatusBadRequest, "UNKNOWN_METRIC", fmt.Sprintf("metric %q is not one of %v", q.Metric, model.Metrics))
		return
	}

	ranked := discharge.Rank(entry.Result, m)
	resp := models.RankResponse{
		Metric:   string(m),
		Rankings: make([]models.Ranking, 0, len(ranked)),
	}
	for _, r := range ranked {
		resp.Rankings = append(resp.Rankings, models.Ranking{
			Rank:  r.Rank,
			Label: r.Label,
			Value: r.Value,
			Unit:  r.Unit,
			TimeS: r.Time,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AnalysisHandler) lookup(c *gin.Context) (*discharge.CacheEntry, bool) {
	id := c.Param("id")
	entry, ok := h.cache.Get(id)
	if !ok {
		writeError(c, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("analysis %q not found or expired", id))
		return nil, false
	}
	return entry, true
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
