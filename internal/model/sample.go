package model

// Column headers expected in every discharge table.
const (
	ColumnTime    = "Time[s]"
	ColumnVoltage = "Voltage[V]"
	ColumnCurrent = "Current[A]"
	ColumnPower   = "Power[W]"
)

// RequiredColumns lists the table headers in the order they are reported
// when missing.
var RequiredColumns = []string{ColumnTime, ColumnVoltage, ColumnCurrent, ColumnPower}

// Sample is one measurement row of a discharge test.
// Units:
// - Time: seconds since the start of the test
// - Voltage: V
// - Current: A
// - Power: W
type Sample struct {
	Time    float64
	Voltage float64
	Current float64
	Power   float64
}

// HoursSince returns the time elapsed between prev and s, in hours.
func (s Sample) HoursSince(prev Sample) float64 {
	return (s.Time - prev.Time) / 3600
}
