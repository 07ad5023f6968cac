package data

import (
	"fmt"
	"log/slog"

	"discharge-analyzer/internal/model"

	"github.com/xuri/excelize/v2"
)

func loadXLSX(path, sheet string) ([]model.Sample, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &FormatError{Path: path, Reason: "workbook has no sheets"}
		}
		sheet = sheets[0]
	}

	// Raw values keep cell number formats (e.g. "0.00") from rounding samples.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &FormatError{Path: path, Reason: fmt.Sprintf("read sheet %q: %v", sheet, err)}
	}

	// The header is the first non-empty row; some exports put a title block above it.
	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	slog.Debug("read workbook",
		slog.String("component", "data"),
		slog.String("path", path),
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)),
		slog.Int("header_row", start+1))

	return parseRows(path, rows[start:], start+1)
}

// WriteXLSX stores samples as a single-sheet workbook with the standard
// column headers. Used to produce fixtures and demo data.
func WriteXLSX(path, sheet string, samples []model.Sample) error {
	f := excelize.NewFile()
	defer f.Close()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if def := f.GetSheetName(0); def != sheet {
		if err := f.SetSheetName(def, sheet); err != nil {
			return err
		}
	}

	header := make([]interface{}, len(model.RequiredColumns))
	for i, col := range model.RequiredColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, s := range samples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{s.Time, s.Voltage, s.Current, s.Power}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return &IOError{Path: path, Err: err}
	}
	return nil
}
