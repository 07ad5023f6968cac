package data

import (
	"encoding/csv"
	"io"
	"os"

	"discharge-analyzer/internal/model"
)

func loadCSV(path string) ([]model.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()
	return LoadCSVFromReader(path, f)
}

// LoadCSVFromReader parses a comma separated table with a header row.
// name is only used in error messages.
func LoadCSVFromReader(name string, r io.Reader) ([]model.Sample, error) {
	reader := csv.NewReader(r)
	// Tolerate ragged rows; missing cells are reported per row by parseRows.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		if perr, ok := err.(*csv.ParseError); ok {
			return nil, &FormatError{Path: name, Row: perr.Line, Reason: perr.Err.Error()}
		}
		return nil, &IOError{Path: name, Err: err}
	}
	return parseRows(name, rows, 1)
}
