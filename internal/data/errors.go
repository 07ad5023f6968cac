package data

import "fmt"

// IOError reports a table source that is missing or unreadable.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError reports a table that is readable but does not have the expected
// shape: a missing column, a short row or a non-numeric cell.
// Row is 1-based and 0 when the problem is not tied to a row.
type FormatError struct {
	Path   string
	Column string
	Row    int
	Reason string
}

func (e *FormatError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("%s: row %d, column %q: %s", e.Path, e.Row, e.Column, e.Reason)
	case e.Row > 0:
		return fmt.Sprintf("%s: row %d: %s", e.Path, e.Row, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", e.Path, e.Column, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
}
