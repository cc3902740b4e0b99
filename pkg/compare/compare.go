// Package compare decides whether an actual result table matches an expected
// one under a Policy, and explains the first difference when it does not.
package compare

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-tck/pkg/value"
)

// ErrNilDataSet is returned when either table is missing
var ErrNilDataSet = errors.New("nil data set")

// Comparator matches tables under a fixed policy. It holds no mutable state and
// may be shared between goroutines.
type Comparator struct {
	policy  Policy
	matcher matcher
}

// New creates a comparator for the given policy
func New(policy Policy) *Comparator {
	return &Comparator{
		policy:  policy,
		matcher: matcher{strict: policy.Strict},
	}
}

// Policy returns the comparator's policy
func (c *Comparator) Policy() Policy {
	return c.policy
}

// Result is the verdict of a comparison. A mismatch is an ordinary result,
// not an error.
type Result struct {
	Matched bool

	// Diagnostic describes the first row that failed to match; nil when Matched
	Diagnostic *Diagnostic

	// Assignment maps each expected row index to the actual row it matched.
	// Entries for rows never reached are -1.
	Assignment []int
}

// Diagnostic identifies the first failing row and column
type Diagnostic struct {
	// ExpectedRow is the index of the expected row that found no partner
	ExpectedRow int
	// ActualRow is the actual row it was compared with: the positional row
	// for ordered comparisons, otherwise the closest candidate. -1 if there
	// was no candidate left.
	ActualRow int
	Column    string
	// Path locates the difference inside the cell, e.g. "props.likeness"
	Path     string
	Actual   value.Value
	Expected value.Value
	Reason   string
}

func (d *Diagnostic) String() string {
	if d.ActualRow < 0 {
		return fmt.Sprintf("expected row %d: %s", d.ExpectedRow, d.Reason)
	}
	where := fmt.Sprintf("expected row %d, actual row %d, column %q", d.ExpectedRow, d.ActualRow, d.Column)
	if d.Path != "" {
		where += ", at " + d.Path
	}
	return where + ": " + d.Reason
}

// Compare matches actual against expected. Columns are aligned by name.
// A *SchemaMismatchError is returned when the column sets differ, or when the
// row counts differ and the policy is not Included.
func (c *Comparator) Compare(actual, expected *value.DataSet) (*Result, error) {
	if actual == nil || expected == nil {
		return nil, ErrNilDataSet
	}

	columns, err := alignColumns(actual, expected)
	if err != nil {
		return nil, err
	}
	if !c.policy.Included && len(actual.Rows) != len(expected.Rows) {
		return nil, &SchemaMismatchError{
			Kind:            RowCountMismatch,
			ActualColumns:   actual.ColumnNames,
			ExpectedColumns: expected.ColumnNames,
			ActualRows:      len(actual.Rows),
			ExpectedRows:    len(expected.Rows),
		}
	}

	t := &tables{
		actual:   actual,
		expected: expected,
		columns:  columns,
		matcher:  c.matcher,
	}
	switch {
	case c.policy.Order && c.policy.Included:
		return t.subsequence(), nil
	case c.policy.Order:
		return t.positional(), nil
	default:
		return t.unordered(), nil
	}
}

// FindRow returns the index of the first actual row matching row, whose cells
// are laid out in the order of columns, or -1 if no actual row matches.
func (c *Comparator) FindRow(actual *value.DataSet, columns []string, row value.Row) (int, error) {
	if actual == nil {
		return -1, ErrNilDataSet
	}
	if len(row) != len(columns) {
		return -1, fmt.Errorf("%w: row has %d values for %d columns", value.ErrRowWidth, len(row), len(columns))
	}
	expected := &value.DataSet{ColumnNames: columns, Rows: []value.Row{row}}
	aligned, err := alignColumns(actual, expected)
	if err != nil {
		return -1, err
	}

	t := &tables{actual: actual, expected: expected, columns: aligned, matcher: c.matcher}
	for i := range actual.Rows {
		if t.rowsEqual(i, 0) {
			return i, nil
		}
	}
	return -1, nil
}

// Equal compares two single values under the comparator's policy. It returns
// nil when they match.
func (c *Comparator) Equal(actual, expected value.Value) *Mismatch {
	return c.matcher.value(actual, expected, "")
}

// alignColumns returns, for each expected column, the index of the actual
// column with the same name.
func alignColumns(actual, expected *value.DataSet) ([]int, error) {
	columnErr := &SchemaMismatchError{
		Kind:            ColumnMismatch,
		ActualColumns:   actual.ColumnNames,
		ExpectedColumns: expected.ColumnNames,
		ActualRows:      len(actual.Rows),
		ExpectedRows:    len(expected.Rows),
	}
	if len(actual.ColumnNames) != len(expected.ColumnNames) {
		return nil, columnErr
	}

	index := make(map[string]int, len(actual.ColumnNames))
	for i, name := range actual.ColumnNames {
		index[name] = i
	}
	columns := make([]int, len(expected.ColumnNames))
	seen := make(map[string]bool, len(expected.ColumnNames))
	for i, name := range expected.ColumnNames {
		j, ok := index[name]
		if !ok || seen[name] {
			return nil, columnErr
		}
		seen[name] = true
		columns[i] = j
	}
	return columns, nil
}
