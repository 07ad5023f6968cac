package analysis

import "discharge-analyzer/internal/model"

// FilterByMinVoltage keeps the samples whose voltage is at or above
// thresholdVolts, in their original order. The result never aliases samples.
// An empty result is a normal outcome: the caller decides how to report it.
func FilterByMinVoltage(samples []model.Sample, thresholdVolts float64) []model.Sample {
	out := make([]model.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Voltage >= thresholdVolts {
			out = append(out, s)
		}
	}
	return out
}
