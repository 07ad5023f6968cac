package analysis

import "discharge-analyzer/internal/model"

// Integrate computes cumulative capacity (mAh) and energy (Wh) over samples.
//
// Each interval contributes rate[i] * (t[i] - t[i-1]), i.e. a left-rectangle
// sum evaluated with the rate at the end of the interval, not a trapezoid.
// The first sample contributes nothing because its predecessor may have been
// filtered out.
func Integrate(samples []model.Sample) *model.DerivedSeries {
	out := model.NewDerivedSeries(len(samples))
	capMAh := 0.0
	energyWh := 0.0
	for i, s := range samples {
		dtH := 0.0
		if i > 0 {
			dtH = s.HoursSince(samples[i-1])
		}
		capMAh += s.Current * dtH * 1000
		energyWh += s.Power * dtH
		out.Append(s, capMAh, energyWh)
	}
	return out
}
