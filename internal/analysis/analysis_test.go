package analysis

import (
	"errors"
	"math"
	"testing"

	"discharge-analyzer/internal/data"
	"discharge-analyzer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplesWithVoltages(vs ...float64) []model.Sample {
	out := make([]model.Sample, len(vs))
	for i, v := range vs {
		out[i] = model.Sample{Time: float64(i * 10), Voltage: v, Current: 1, Power: v}
	}
	return out
}

func TestFilterByMinVoltage(t *testing.T) {
	in := samplesWithVoltages(6.0, 5.4, 5.5, 7.1, 5.49, 5.6)

	got := FilterByMinVoltage(in, 5.5)

	require.Len(t, got, 4)
	assert.Equal(t, []float64{0, 20, 30, 50}, times(got), "order must be preserved")
	for _, s := range got {
		assert.GreaterOrEqual(t, s.Voltage, 5.5)
	}
}

func TestFilterByMinVoltageIsSubsequence(t *testing.T) {
	in := samplesWithVoltages(8, 3, 9, 1, 6, 6, 2, 7)
	for _, threshold := range []float64{0, 2.5, 6, 7.5, 100} {
		got := FilterByMinVoltage(in, threshold)

		j := 0
		for _, s := range in {
			if j < len(got) && got[j] == s {
				j++
			}
		}
		assert.Equal(t, len(got), j, "threshold %v: output is not a subsequence", threshold)
		for _, s := range got {
			assert.GreaterOrEqual(t, s.Voltage, threshold)
		}
	}
}

func TestFilterByMinVoltageNoneQualify(t *testing.T) {
	got := FilterByMinVoltage(samplesWithVoltages(4.9, 5.0, 5.1), 5.5)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	in := samplesWithVoltages(6, 6)
	got := FilterByMinVoltage(in, 5)
	got[0].Voltage = 0
	assert.Equal(t, 6.0, in[0].Voltage)
}

func TestIntegrateOneHourConstantLoad(t *testing.T) {
	in := []model.Sample{
		{Time: 0, Voltage: 7, Current: 1, Power: 2},
		{Time: 3600, Voltage: 7, Current: 1, Power: 2},
	}

	got := Integrate(in)

	assert.Equal(t, []float64{0, 1000}, got.Capacity)
	assert.Equal(t, []float64{0, 2}, got.Energy)
	assert.Equal(t, []float64{0, 3600}, got.Time)
	assert.Equal(t, []float64{7, 7}, got.Voltage)
	assert.Equal(t, []float64{1, 1}, got.Current)
	assert.Equal(t, []float64{2, 2}, got.Power)
}

func TestIntegrateUsesRateAtIntervalEnd(t *testing.T) {
	// A trapezoid would give 2000 mAh / 4 Wh here.
	in := []model.Sample{
		{Time: 0, Current: 1, Power: 2},
		{Time: 3600, Current: 3, Power: 6},
	}

	got := Integrate(in)

	assert.InDelta(t, 3000, got.Capacity[1], 1e-9)
	assert.InDelta(t, 6, got.Energy[1], 1e-9)
}

func TestIntegrateUnevenSpacing(t *testing.T) {
	in := []model.Sample{
		{Time: 100, Current: 5, Power: 50},  // first sample contributes nothing
		{Time: 1000, Current: 2, Power: 10}, // 900 s
		{Time: 1036, Current: 1, Power: 4},  // 36 s
		{Time: 4636, Current: 0.5, Power: 3},
	}

	got := Integrate(in)

	wantCap := []float64{0, 500, 510, 1010}
	wantEnergy := []float64{0, 2.5, 2.54, 5.54}
	require.Equal(t, 4, got.Len())
	for i := range wantCap {
		assert.InDelta(t, wantCap[i], got.Capacity[i], 1e-9, "capacity[%d]", i)
		assert.InDelta(t, wantEnergy[i], got.Energy[i], 1e-9, "energy[%d]", i)
	}
}

func TestIntegrateEmptyAndSingle(t *testing.T) {
	empty := Integrate(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Empty(t, empty.Capacity)
	assert.Empty(t, empty.Energy)

	single := Integrate([]model.Sample{{Time: 42, Voltage: 8, Current: 2, Power: 16}})
	assert.Equal(t, []float64{0}, single.Capacity)
	assert.Equal(t, []float64{0}, single.Energy)
	assert.Equal(t, []float64{42}, single.Time)
}

func TestIntegrateIsPure(t *testing.T) {
	in := []model.Sample{
		{Time: 0, Voltage: 8, Current: 0.4, Power: 3.2},
		{Time: 7, Voltage: 7.9, Current: 0.41, Power: 3.239},
		{Time: 19, Voltage: 7.8, Current: 0.39, Power: 3.042},
	}
	snapshot := append([]model.Sample(nil), in...)

	a := Integrate(in)
	b := Integrate(in)

	assert.Equal(t, a, b)
	assert.Equal(t, snapshot, in)
}

func TestIntegrateNegativeCurrentDecreases(t *testing.T) {
	in := []model.Sample{
		{Time: 0, Current: 1, Power: 1},
		{Time: 3600, Current: -1, Power: -1},
	}
	got := Integrate(in)
	assert.Equal(t, -1000.0, got.Capacity[1])
	assert.Equal(t, -1.0, got.Energy[1])
}

func TestArgmaxFirstOccurrence(t *testing.T) {
	v, idx, ok := Argmax([]float64{5, 5, 3})
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, 0, idx)

	v, idx, ok = Argmax([]float64{-3, -1, -1, -2})
	require.True(t, ok)
	assert.Equal(t, -1.0, v)
	assert.Equal(t, 1, idx)

	_, _, ok = Argmax(nil)
	assert.False(t, ok)
}

func TestArgmaxSkipsNaN(t *testing.T) {
	v, idx, ok := Argmax([]float64{math.NaN(), 3, 7, math.NaN(), 7})
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
	assert.Equal(t, 2, idx)

	_, _, ok = Argmax([]float64{math.NaN(), math.NaN()})
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	d := Integrate([]model.Sample{
		{Time: 0, Voltage: 8.2, Current: 0.5, Power: 4.1},
		{Time: 1800, Voltage: 7.6, Current: 0.6, Power: 4.56},
		{Time: 3600, Voltage: 7.0, Current: 0.6, Power: 4.2},
	})

	sum := Summarize(d)

	require.Len(t, sum.Peaks, len(model.Metrics))

	p, ok := sum.Peak(model.MetricVoltage)
	require.True(t, ok)
	assert.Equal(t, 8.2, p.Value)
	assert.Equal(t, 0.0, p.Time)

	p, ok = sum.Peak(model.MetricCurrent)
	require.True(t, ok)
	assert.Equal(t, 1, p.Index, "tie on 0.6 resolves to the first occurrence")
	assert.Equal(t, 1800.0, p.Time)

	p, ok = sum.Peak(model.MetricPower)
	require.True(t, ok)
	assert.Equal(t, 4.56, p.Value)

	p, ok = sum.Peak(model.MetricCapacity)
	require.True(t, ok)
	assert.Equal(t, 2, p.Index)
	assert.InDelta(t, 600, p.Value, 1e-9)

	assert.InDelta(t, 600, sum.TotalCapacityMAh, 1e-9)
	assert.InDelta(t, 2.28+2.1, sum.TotalEnergyWh, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(Integrate(nil))
	assert.Empty(t, sum.Peaks)
	_, ok := sum.Peak(model.MetricPower)
	assert.False(t, ok)
	assert.Zero(t, sum.TotalCapacityMAh)
	assert.Zero(t, sum.TotalEnergyWh)
}

func TestValidateTimeOrder(t *testing.T) {
	ok := []model.Sample{{Time: 0}, {Time: 5}, {Time: 5}, {Time: 9}}
	assert.NoError(t, ValidateTimeOrder("ok.csv", ok))
	assert.NoError(t, ValidateTimeOrder("empty.csv", nil))

	bad := []model.Sample{{Time: 0}, {Time: 10}, {Time: 4}}
	err := ValidateTimeOrder("bad.csv", bad)
	require.Error(t, err)

	var fe *data.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "bad.csv", fe.Path)
	assert.Equal(t, model.ColumnTime, fe.Column)
	assert.Contains(t, fe.Reason, "sample 3")
}

func times(ss []model.Sample) []float64 {
	out := make([]float64, len(ss))
	for i, s := range ss {
		out[i] = s.Time
	}
	return out
}
