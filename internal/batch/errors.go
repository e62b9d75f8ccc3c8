package batch

import (
	"fmt"
	"strings"
)

// HeaderError reports required CSV columns missing from an input file.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("csv is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// RowError wraps a malformed CSV data row with its 1-based line number.
type RowError struct {
	Line  int
	Cause error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("csv row %d: %v", e.Line, e.Cause)
}

func (e *RowError) Unwrap() error {
	return e.Cause
}
