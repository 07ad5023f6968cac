package analysis

import (
	"math"

	"discharge-analyzer/internal/model"
)

// Argmax returns the largest value in xs and the index of its first occurrence.
// NaN values are skipped; ok is false when no other value is left.
func Argmax(xs []float64) (value float64, index int, ok bool) {
	for i, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		// Strict comparison keeps the first of equal maxima.
		if !ok || x > value {
			value, index, ok = x, i, true
		}
	}
	return value, index, ok
}

// Summarize finds the peak of every metric and the final totals of a series.
// An empty series yields a Summary without peaks.
func Summarize(d *model.DerivedSeries) model.Summary {
	sum := model.Summary{
		Peaks:            make(map[model.Metric]model.Peak, len(model.Metrics)),
		TotalCapacityMAh: d.TotalCapacity(),
		TotalEnergyWh:    d.TotalEnergy(),
	}
	for _, m := range model.Metrics {
		v, idx, ok := Argmax(d.Values(m))
		if !ok {
			continue
		}
		sum.Peaks[m] = model.Peak{
			Metric: m,
			Value:  v,
			Index:  idx,
			Time:   d.Time[idx],
		}
	}
	return sum
}
