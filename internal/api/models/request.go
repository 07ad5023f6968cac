package models

// AnalysisRequest is the optional body of POST /api/v1/analyses.
type AnalysisRequest struct {
	// CutoffVoltage overrides the configured cut-off for this run only.
	CutoffVoltage *float64 `json:"cutoff_voltage,omitempty" binding:"omitempty,gt=0"`
}

// AnalysisQuery holds query parameters of GET /api/v1/analyses/:id.
type AnalysisQuery struct {
	IncludeSeries bool `form:"include_series"`
}

// RankQuery holds query parameters of GET /api/v1/analyses/:id/rank.
type RankQuery struct {
	Metric string `form:"metric"` // default: capacity
}
