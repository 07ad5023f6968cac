package model

// Peak is the maximum of one metric and where it happened.
type Peak struct {
	Metric Metric
	Value  float64
	Index  int
	Time   float64 // s, time at Index
}

// Summary bundles the per-metric peaks and the final totals of a condition.
type Summary struct {
	Peaks map[Metric]Peak

	TotalCapacityMAh float64
	TotalEnergyWh    float64
}

// Peak returns the peak for m and whether one exists (empty series have none).
func (s Summary) Peak(m Metric) (Peak, bool) {
	p, ok := s.Peaks[m]
	return p, ok
}
