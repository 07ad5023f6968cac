package discharge

import (
	"sort"

	"discharge-analyzer/internal/model"
)

// RankedCondition is one row of a ranking by metric peak.
type RankedCondition struct {
	Rank  int
	Label string
	Value float64
	Time  float64
	Unit  string
}

// Rank orders processed conditions by the peak of m, highest first.
// Ties keep configuration order.
func Rank(res *Result, m model.Metric) []RankedCondition {
	if res == nil {
		return nil
	}
	out := make([]RankedCondition, 0, len(res.Conditions))
	for _, c := range res.Conditions {
		p, ok := c.Summary.Peak(m)
		if !ok {
			continue
		}
		out = append(out, RankedCondition{
			Label: c.Label,
			Value: p.Value,
			Time:  p.Time,
			Unit:  m.Unit(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
