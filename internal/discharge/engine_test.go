package discharge

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"discharge-analyzer/internal/config"
	"discharge-analyzer/internal/data"
	"discharge-analyzer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "Time[s],Voltage[V],Current[A],Power[W]\n"

func writeTable(t *testing.T, dir, name, rows string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(header+rows), 0o644))
	return path
}

// threeConditions returns a config where the middle condition never reaches
// the 5.5 V cutoff.
func threeConditions(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.CutoffVoltage = 5.5
	cfg.Conditions = []config.ConditionConfig{
		{Label: "20°C", File: writeTable(t, dir, "data_20.csv", "0,8,1,8\n3600,7,1,7\n7200,5,1,5\n")},
		{Label: "30°C", File: writeTable(t, dir, "data_30.csv", "0,5,1,5\n60,5,1,5\n")},
		{Label: "40°C", File: writeTable(t, dir, "data_40.csv", "0,6,2,12\n1800,6,2,12\n")},
	}
	return cfg
}

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestEngineRun(t *testing.T) {
	var logs bytes.Buffer
	res, err := New(threeConditions(t), newTestLogger(&logs)).Run()
	require.NoError(t, err)

	assert.Equal(t, 5.5, res.CutoffVoltage)
	assert.Equal(t, []string{"30°C"}, res.Skipped)
	require.Len(t, res.Conditions, 2)

	cold := res.Conditions[0]
	assert.Equal(t, "20°C", cold.Label)
	assert.Equal(t, 3, cold.LoadedRows)
	assert.Equal(t, 2, cold.Series.Len(), "7200s sample is below the cutoff")
	assert.Equal(t, []float64{0, 1000}, cold.Series.Capacity)
	assert.Equal(t, []float64{0, 7}, cold.Series.Energy)
	assert.Equal(t, 1000.0, cold.Summary.TotalCapacityMAh)
	assert.Equal(t, 7.0, cold.Summary.TotalEnergyWh)

	hot, ok := res.Condition("40°C")
	require.True(t, ok)
	assert.Equal(t, 1000.0, hot.Summary.TotalCapacityMAh)
	assert.Equal(t, 6.0, hot.Summary.TotalEnergyWh)

	_, ok = res.Condition("30°C")
	assert.False(t, ok)

	assert.Equal(t, 1, strings.Count(logs.String(), "no data above cut-off voltage"),
		"exactly one warning per skipped condition")
}

func TestEngineRunWithCutoffOverride(t *testing.T) {
	res, err := New(threeConditions(t), newTestLogger(&bytes.Buffer{})).RunWithCutoff(4.5)
	require.NoError(t, err)

	assert.Empty(t, res.Skipped)
	require.Len(t, res.Conditions, 3)
	assert.Equal(t, 4.5, res.CutoffVoltage)
	assert.Equal(t, 3, res.Conditions[0].Series.Len())
}

func TestEngineAllSkipped(t *testing.T) {
	res, err := New(threeConditions(t), newTestLogger(&bytes.Buffer{})).RunWithCutoff(100)
	require.NoError(t, err)

	assert.Empty(t, res.Conditions)
	assert.Equal(t, []string{"20°C", "30°C", "40°C"}, res.Skipped)
}

func TestEngineMissingSource(t *testing.T) {
	cfg := threeConditions(t)
	cfg.Conditions[1].File = filepath.Join(t.TempDir(), "gone.xlsx")

	_, err := New(cfg, newTestLogger(&bytes.Buffer{})).Run()
	require.Error(t, err)

	var ioErr *data.IOError
	assert.True(t, errors.As(err, &ioErr), "got %v", err)
	assert.Contains(t, err.Error(), "condition 30°C")
}

func TestEngineBadTable(t *testing.T) {
	cfg := threeConditions(t)
	cfg.Conditions[0].File = writeTable(t, t.TempDir(), "bad.csv", "0,8,1,8\n10,eight,1,8\n")

	_, err := New(cfg, newTestLogger(&bytes.Buffer{})).Run()

	var fe *data.FormatError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, model.ColumnVoltage, fe.Column)
}

func TestEngineRejectsBackwardsTime(t *testing.T) {
	cfg := threeConditions(t)
	cfg.Conditions[2].File = writeTable(t, t.TempDir(), "swapped.csv", "0,8,1,8\n20,8,1,8\n10,8,1,8\n")

	_, err := New(cfg, newTestLogger(&bytes.Buffer{})).Run()

	var fe *data.FormatError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, model.ColumnTime, fe.Column)
}

func TestEngineNoConditions(t *testing.T) {
	_, err := New(config.Default(), nil).Run()
	assert.Error(t, err)

	_, err = New(nil, nil).Run()
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	res, err := New(threeConditions(t), newTestLogger(&bytes.Buffer{})).Run()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteReport(&out, res))

	want := "Warning: No data above cut-off voltage for 30°C.\n" +
		"Total Capacity for 20°C after cutoff: 1000.00 mAh\n" +
		"Total Energy for 20°C after cutoff: 7.00 Wh\n" +
		"Total Capacity for 40°C after cutoff: 1000.00 mAh\n" +
		"Total Energy for 40°C after cutoff: 6.00 Wh\n"
	assert.Equal(t, want, out.String())

	assert.Error(t, WriteReport(&out, nil))
}

func TestWritePeaks(t *testing.T) {
	res, err := New(threeConditions(t), newTestLogger(&bytes.Buffer{})).Run()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WritePeaks(&out, res))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1+2*len(model.Metrics))
	assert.Contains(t, lines[0], "condition")
	assert.Regexp(t, `^20°C\s+power\s+8\.00 W\s+0\.0$`, lines[1])
	assert.Regexp(t, `^40°C\s+capacity\s+1000\.00 mAh\s+1800\.0$`, lines[8])
}

func TestRank(t *testing.T) {
	res, err := New(threeConditions(t), newTestLogger(&bytes.Buffer{})).Run()
	require.NoError(t, err)

	power := Rank(res, model.MetricPower)
	require.Len(t, power, 2)
	assert.Equal(t, RankedCondition{Rank: 1, Label: "40°C", Value: 12, Time: 0, Unit: "W"}, power[0])
	assert.Equal(t, RankedCondition{Rank: 2, Label: "20°C", Value: 8, Time: 0, Unit: "W"}, power[1])

	// Equal peaks keep configuration order.
	capacity := Rank(res, model.MetricCapacity)
	require.Len(t, capacity, 2)
	assert.Equal(t, "20°C", capacity[0].Label)
	assert.Equal(t, "40°C", capacity[1].Label)

	assert.Nil(t, Rank(nil, model.MetricPower))
	assert.Empty(t, Rank(res, model.Metric("bogus")))
}
