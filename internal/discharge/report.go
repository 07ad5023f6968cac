package discharge

import (
	"fmt"
	"io"

	"discharge-analyzer/internal/model"
)

// WriteReport prints the console report: one warning per skipped condition,
// then capacity and energy totals per processed condition.
func WriteReport(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	for _, label := range res.Skipped {
		if _, err := fmt.Fprintf(w, "Warning: No data above cut-off voltage for %s.\n", label); err != nil {
			return err
		}
	}
	for _, c := range res.Conditions {
		if _, err := fmt.Fprintf(w, "Total Capacity for %s after cutoff: %.2f mAh\n", c.Label, c.Summary.TotalCapacityMAh); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Total Energy for %s after cutoff: %.2f Wh\n", c.Label, c.Summary.TotalEnergyWh); err != nil {
			return err
		}
	}
	return nil
}

// WritePeaks prints a table of per-metric maxima and the time they occurred.
func WritePeaks(w io.Writer, res *Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	if _, err := fmt.Fprintf(w, "%-12s %-10s %12s %-4s %12s\n", "condition", "metric", "max", "unit", "time[s]"); err != nil {
		return err
	}
	for _, c := range res.Conditions {
		for _, m := range model.Metrics {
			p, ok := c.Summary.Peak(m)
			if !ok {
				continue
			}
			if _, err := fmt.Fprintf(w, "%-12s %-10s %12.2f %-4s %12.1f\n", c.Label, m, p.Value, m.Unit(), p.Time); err != nil {
				return err
			}
		}
	}
	return nil
}
