package discharge

import "discharge-analyzer/internal/model"

// ConditionResult is the computed output for one condition that had samples
// above the cutoff.
type ConditionResult struct {
	Label  string
	Source string

	// LoadedRows is the table size before filtering.
	LoadedRows int

	Series  *model.DerivedSeries
	Summary model.Summary
}

// Result is the outcome of one run over all configured conditions.
// Conditions keeps configuration order; Skipped lists conditions with no data
// above the cutoff, also in configuration order.
type Result struct {
	CutoffVoltage float64
	Conditions    []ConditionResult
	Skipped       []string
}

// Condition returns the result for label, if it was not skipped.
func (r *Result) Condition(label string) (*ConditionResult, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Conditions {
		if r.Conditions[i].Label == label {
			return &r.Conditions[i], true
		}
	}
	return nil, false
}
