package model

// Metric names one column of a DerivedSeries.
// Keep these values stable; they are used in CSV headers, chart file names and JSON.
type Metric string

const (
	MetricPower    Metric = "power"
	MetricEnergy   Metric = "energy"
	MetricCapacity Metric = "capacity"
	MetricVoltage  Metric = "voltage"
	MetricCurrent  Metric = "current"
)

// Metrics is the fixed reporting order.
var Metrics = []Metric{MetricPower, MetricEnergy, MetricCapacity, MetricVoltage, MetricCurrent}

func (m Metric) Unit() string {
	switch m {
	case MetricPower:
		return "W"
	case MetricEnergy:
		return "Wh"
	case MetricCapacity:
		return "mAh"
	case MetricVoltage:
		return "V"
	case MetricCurrent:
		return "A"
	default:
		return ""
	}
}

// Label is the axis caption, e.g. "Capacity [mAh]".
func (m Metric) Label() string {
	switch m {
	case MetricPower:
		return "Power [W]"
	case MetricEnergy:
		return "Energy [Wh]"
	case MetricCapacity:
		return "Capacity [mAh]"
	case MetricVoltage:
		return "Voltage [V]"
	case MetricCurrent:
		return "Current [A]"
	default:
		return string(m)
	}
}

func (m Metric) Valid() bool {
	return m.Unit() != ""
}
