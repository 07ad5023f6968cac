package handlers

import (
	"fmt"

	"discharge-analyzer/internal/api/models"
	"discharge-analyzer/internal/chart"
	"discharge-analyzer/internal/discharge"
	"discharge-analyzer/internal/model"
)

func buildAnalysisResponse(entry *discharge.CacheEntry, includeSeries bool) models.AnalysisResponse {
	res := entry.Result
	resp := models.AnalysisResponse{
		ID:            entry.ID,
		CreatedAt:     entry.CreatedAt,
		CutoffVoltage: res.CutoffVoltage,
		Conditions:    make([]models.ConditionSummary, 0, len(res.Conditions)),
		Skipped:       append([]string{}, res.Skipped...),
	}
	if !entry.ExpiresAt.IsZero() {
		exp := entry.ExpiresAt
		resp.ExpiresAt = &exp
	}
	for _, label := range res.Skipped {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("No data above cut-off voltage for %s", label))
	}
	for _, c := range res.Conditions {
		resp.Conditions = append(resp.Conditions, buildConditionSummary(c, includeSeries))
	}
	if len(res.Conditions) > 0 {
		resp.Charts = make(map[string]string, len(chart.Kinds))
		for _, k := range chart.Kinds {
			resp.Charts[string(k)] = fmt.Sprintf("/api/v1/analyses/%s/charts/%s", entry.ID, k)
		}
	}
	return resp
}

func buildConditionSummary(c discharge.ConditionResult, includeSeries bool) models.ConditionSummary {
	out := models.ConditionSummary{
		Label:            c.Label,
		Source:           c.Source,
		LoadedRows:       c.LoadedRows,
		Samples:          c.Series.Len(),
		TotalCapacityMAh: c.Summary.TotalCapacityMAh,
		TotalEnergyWh:    c.Summary.TotalEnergyWh,
	}
	for _, m := range model.Metrics {
		p, ok := c.Summary.Peak(m)
		if !ok {
			continue
		}
		out.Peaks = append(out.Peaks, models.PeakInfo{
			Metric: string(m),
			Unit:   m.Unit(),
			Value:  p.Value,
			Index:  p.Index,
			TimeS:  p.Time,
		})
	}
	if includeSeries {
		out.Series = &models.SeriesResponse{
			TimeS:       c.Series.Time,
			VoltageV:    c.Series.Voltage,
			CurrentA:    c.Series.Current,
			PowerW:      c.Series.Power,
			CapacityMAh: c.Series.Capacity,
			EnergyWh:    c.Series.Energy,
		}
	}
	return out
}
