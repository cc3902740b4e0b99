package compare

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrColumnMismatch means the two tables do not have the same column names
	ErrColumnMismatch = errors.New("column names differ")

	// ErrRowCountMismatch means the tables differ in size under an exact comparison
	ErrRowCountMismatch = errors.New("row counts differ")
)

// SchemaMismatchKind classifies a SchemaMismatchError
type SchemaMismatchKind int

const (
	ColumnMismatch SchemaMismatchKind = iota
	RowCountMismatch
)

func (k SchemaMismatchKind) String() string {
	switch k {
	case ColumnMismatch:
		return "column mismatch"
	case RowCountMismatch:
		return "row count mismatch"
	default:
		return "unknown"
	}
}

// SchemaMismatchError reports tables that cannot be compared row by row. It
// signals a badly written expectation rather than a failing assertion.
type SchemaMismatchError struct {
	Kind            SchemaMismatchKind
	ActualColumns   []string
	ExpectedColumns []string
	ActualRows      int
	ExpectedRows    int
}

func (e *SchemaMismatchError) Error() string {
	switch e.Kind {
	case ColumnMismatch:
		return fmt.Sprintf("%v: actual [%s], expected [%s]", ErrColumnMismatch,
			strings.Join(e.ActualColumns, ", "), strings.Join(e.ExpectedColumns, ", "))
	case RowCountMismatch:
		return fmt.Sprintf("%v: actual %d, expected %d", ErrRowCountMismatch, e.ActualRows, e.ExpectedRows)
	default:
		return "schema mismatch"
	}
}

// Unwrap returns the sentinel for the mismatch kind
func (e *SchemaMismatchError) Unwrap() error {
	switch e.Kind {
	case ColumnMismatch:
		return ErrColumnMismatch
	case RowCountMismatch:
		return ErrRowCountMismatch
	default:
		return nil
	}
}

// IsSchemaMismatch checks if an error is a SchemaMismatchError
func IsSchemaMismatch(err error) bool {
	var sme *SchemaMismatchError
	return errors.As(err, &sme)
}
