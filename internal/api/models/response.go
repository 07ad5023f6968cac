package models

import "time"

// AnalysisResponse represents one cached analysis run
type AnalysisResponse struct {
	ID            string             `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	ExpiresAt     *time.Time         `json:"expires_at,omitempty"`
	CutoffVoltage float64            `json:"cutoff_voltage"`
	Conditions    []ConditionSummary `json:"conditions"`
	Skipped       []string           `json:"skipped"`
	Warnings      []string           `json:"warnings,omitempty"`
	Charts        map[string]string  `json:"charts,omitempty"` // chart name -> URL
}

// ConditionSummary contains the totals and peaks of one condition
type ConditionSummary struct {
	Label            string          `json:"label"`
	Source           string          `json:"source"`
	LoadedRows       int             `json:"loaded_rows"`
	Samples          int             `json:"samples"`
	TotalCapacityMAh float64         `json:"total_capacity_mah"`
	TotalEnergyWh    float64         `json:"total_energy_wh"`
	Peaks            []PeakInfo      `json:"peaks"`
	Series           *SeriesResponse `json:"series,omitempty"`
}

// PeakInfo is the maximum of one metric
type PeakInfo struct {
	Metric string  `json:"metric"`
	Unit   string  `json:"unit"`
	Value  float64 `json:"value"`
	Index  int     `json:"index"`
	TimeS  float64 `json:"time_s"`
}

// SeriesResponse carries the derived series columns
type SeriesResponse struct {
	TimeS       []float64 `json:"time_s"`
	VoltageV    []float64 `json:"voltage_v"`
	CurrentA    []float64 `json:"current_a"`
	PowerW      []float64 `json:"power_w"`
	CapacityMAh []float64 `json:"capacity_mah"`
	EnergyWh    []float64 `json:"energy_wh"`
}

// ConditionInfo describes one configured condition
type ConditionInfo struct {
	Label string `json:"label"`
	File  string `json:"file"`
	Sheet string `json:"sheet,omitempty"`
}

// MetricInfo describes one reported metric
type MetricInfo struct {
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	Label string `json:"label"`
}

// RankResponse represents conditions ranked by a metric peak
type RankResponse struct {
	Metric   string    `json:"metric"`
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked condition
type Ranking struct {
	Rank  int     `json:"rank"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	TimeS float64 `json:"time_s"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
