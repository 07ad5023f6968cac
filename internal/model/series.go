package model

// DerivedSeries holds the filtered samples of one condition together with the
// cumulative capacity and energy. All slices share length and index alignment.
type DerivedSeries struct {
	Time     []float64 // s
	Voltage  []float64 // V
	Current  []float64 // A
	Power    []float64 // W
	Capacity []float64 // cumulative mAh
	Energy   []float64 // cumulative Wh
}

func NewDerivedSeries(n int) *DerivedSeries {
	return &DerivedSeries{
		Time:     make([]float64, 0, n),
		Voltage:  make([]float64, 0, n),
		Current:  make([]float64, 0, n),
		Power:    make([]float64, 0, n),
		Capacity: make([]float64, 0, n),
		Energy:   make([]float64, 0, n),
	}
}

func (d *DerivedSeries) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Time)
}

// Append adds one row. capacityMAh and energyWh are cumulative values.
func (d *DerivedSeries) Append(s Sample, capacityMAh, energyWh float64) {
	d.Time = append(d.Time, s.Time)
	d.Voltage = append(d.Voltage, s.Voltage)
	d.Current = append(d.Current, s.Current)
	d.Power = append(d.Power, s.Power)
	d.Capacity = append(d.Capacity, capacityMAh)
	d.Energy = append(d.Energy, energyWh)
}

// Values returns the column backing m, or nil for an unknown metric.
func (d *DerivedSeries) Values(m Metric) []float64 {
	if d == nil {
		return nil
	}
	switch m {
	case MetricPower:
		return d.Power
	case MetricEnergy:
		return d.Energy
	case MetricCapacity:
		return d.Capacity
	case MetricVoltage:
		return d.Voltage
	case MetricCurrent:
		return d.Current
	default:
		return nil
	}
}

// TotalCapacity is the last cumulative capacity value (0 for an empty series).
func (d *DerivedSeries) TotalCapacity() float64 {
	if d.Len() == 0 {
		return 0
	}
	return d.Capacity[len(d.Capacity)-1]
}

// TotalEnergy is the last cumulative energy value (0 for an empty series).
func (d *DerivedSeries) TotalEnergy() float64 {
	if d.Len() == 0 {
		return 0
	}
	return d.Energy[len(d.Energy)-1]
}
