package data

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"discharge-analyzer/internal/model"
)

// TableOptions tweaks how a table source is read.
type TableOptions struct {
	// Sheet selects the worksheet of an .xlsx source. Empty means the first sheet.
	Sheet string
}

// LoadTable reads the samples of one condition from path. The format is chosen
// by extension (.csv or .xlsx). Rows are returned in file order; time ordering
// is not checked here.
func LoadTable(path string, opts TableOptions) ([]model.Sample, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return loadCSV(path)
	case ".xlsx", ".xlsm":
		return loadXLSX(path, opts.Sheet)
	default:
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("unsupported table format %q (want .csv or .xlsx)", ext)}
	}
}

// columnIndex maps each required column to its position in the header.
type columnIndex map[string]int

func indexHeader(path string, header []string) (columnIndex, error) {
	idx := columnIndex{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range model.RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &FormatError{Path: path, Column: col, Reason: "required column is missing"}
		}
	}
	return idx, nil
}

// parseRows turns raw string rows into samples. rows[0] must be the header;
// firstRow is the 1-based source row number of that header.
func parseRows(path string, rows [][]string, firstRow int) ([]model.Sample, error) {
	if len(rows) == 0 {
		return nil, &FormatError{Path: path, Reason: "table has no header row"}
	}
	idx, err := indexHeader(path, rows[0])
	if err != nil {
		return nil, err
	}

	out := make([]model.Sample, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		rowNum := firstRow + 1 + i
		if blank(rec) {
			continue
		}
		var s model.Sample
		fields := []struct {
			col string
			dst *float64
		}{
			{model.ColumnTime, &s.Time},
			{model.ColumnVoltage, &s.Voltage},
			{model.ColumnCurrent, &s.Current},
			{model.ColumnPower, &s.Power},
		}
		for _, f := range fields {
			pos := idx[f.col]
			if pos >= len(rec) {
				return nil, &FormatError{Path: path, Column: f.col, Row: rowNum, Reason: "row is missing this cell"}
			}
			raw := strings.TrimSpace(rec[pos])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &FormatError{Path: path, Column: f.col, Row: rowNum, Reason: fmt.Sprintf("not a number: %q", raw)}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &FormatError{Path: path, Column: f.col, Row: rowNum, Reason: fmt.Sprintf("not a finite number: %q", raw)}
			}
			*f.dst = v
		}
		out = append(out, s)
	}
	return out, nil
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
