package discharge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"discharge-analyzer/internal/model"

	"github.com/gosimple/slug"
)

// WriteSeriesCSV writes one derived series as CSV to path.
func WriteSeriesCSV(path string, series *model.DerivedSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeSeriesCSV(f, series); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// EncodeSeriesCSV writes the header and one row per sample.
func EncodeSeriesCSV(out io.Writer, series *model.DerivedSeries) error {
	w := csv.NewWriter(out)

	header := []string{
		"index",
		"time_s",
		"voltage_v",
		"current_a",
		"power_w",
		"capacity_mah",
		"energy_wh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := 0; i < series.Len(); i++ {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(series.Time[i]),
			fmtFloat(series.Voltage[i]),
			fmtFloat(series.Current[i]),
			fmtFloat(series.Power[i]),
			fmtFloat(series.Capacity[i]),
			fmtFloat(series.Energy[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ExportSeries writes <dir>/<slug(label)>.csv for every processed condition
// and returns the written paths in condition order. Labels that slug to the
// same stem get a numeric suffix ("cell-a", "cell-a-2").
func ExportSeries(dir string, res *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(res.Conditions))
	used := make(map[string]bool, len(res.Conditions))
	for i, c := range res.Conditions {
		stem := uniqueStem(FileSlug(c.Label, i), used)
		path := filepath.Join(dir, stem+".csv")
		if err := WriteSeriesCSV(path, c.Series); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileSlug turns a condition label into a file name stem. Labels that slug to
// nothing fall back to condition-<n>.
func FileSlug(label string, n int) string {
	if s := slug.Make(label); s != "" {
		return s
	}
	return fmt.Sprintf("condition-%d", n+1)
}

func uniqueStem(stem string, used map[string]bool) string {
	out := stem
	for n := 2; used[out]; n++ {
		out = fmt.Sprintf("%s-%d", stem, n)
	}
	used[out] = true
	return out
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
