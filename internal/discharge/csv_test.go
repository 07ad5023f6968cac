package discharge

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"discharge-analyzer/internal/analysis"
	"discharge-analyzer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSeriesCSV(t *testing.T) {
	series := analysis.Integrate([]model.Sample{
		{Time: 0, Voltage: 8, Current: 1, Power: 8},
		{Time: 3600, Voltage: 7.5, Current: 1, Power: 7.5},
	})

	var buf bytes.Buffer
	require.NoError(t, EncodeSeriesCSV(&buf, series))

	want := "index,time_s,voltage_v,current_a,power_w,capacity_mah,energy_wh\n" +
		"0,0.000000,8.000000,1.000000,8.000000,0.000000,0.000000\n" +
		"1,3600.000000,7.500000,1.000000,7.500000,1000.000000,7.500000\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeSeriesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeSeriesCSV(&buf, nil))
	assert.Equal(t, "index,time_s,voltage_v,current_a,power_w,capacity_mah,energy_wh\n", buf.String())
}

func TestExportSeries(t *testing.T) {
	res, err := New(threeConditions(t), nil).Run()
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "series")
	paths, err := ExportSeries(dir, res)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, FileSlug("20°C", 0)+".csv"), paths[0])
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(raw), "capacity_mah")
	}
}

func TestExportSeriesSlugCollision(t *testing.T) {
	samples := []model.Sample{
		{Time: 0, Voltage: 8, Current: 1, Power: 8},
		{Time: 3600, Voltage: 7, Current: 1, Power: 7},
	}
	first := analysis.Integrate(samples)
	second := analysis.Integrate(samples[:1])
	res := &Result{Conditions: []ConditionResult{
		{Label: "Cell A", Series: first},
		{Label: "cell-a", Series: second},
		{Label: "CELL  a", Series: second},
	}}

	dir := t.TempDir()
	paths, err := ExportSeries(dir, res)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "cell-a.csv"),
		filepath.Join(dir, "cell-a-2.csv"),
		filepath.Join(dir, "cell-a-3.csv"),
	}, paths)

	raw, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), "1,3600.000000", "first condition must not be overwritten")
}

func TestFileSlug(t *testing.T) {
	assert.Equal(t, "cold-soak", FileSlug("Cold Soak", 0))
	assert.Equal(t, "condition-3", FileSlug("!!!", 2))
	assert.NotContains(t, FileSlug("20°C", 0), "°")
}
