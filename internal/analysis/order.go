package analysis

import (
	"fmt"

	"discharge-analyzer/internal/data"
	"discharge-analyzer/internal/model"
)

// ValidateTimeOrder checks that sample times never decrease. The error names
// the 1-based sample position, not the file row.
func ValidateTimeOrder(path string, samples []model.Sample) error {
	for i := 1; i < len(samples); i++ {
		if samples[i].Time < samples[i-1].Time {
			return &data.FormatError{
				Path:   path,
				Column: model.ColumnTime,
				Reason: fmt.Sprintf("time goes backwards at sample %d (%g after %g)", i+1, samples[i].Time, samples[i-1].Time),
			}
		}
	}
	return nil
}
