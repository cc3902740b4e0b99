package value

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateColumn = errors.New("duplicate column name")
	ErrEmptyColumn     = errors.New("empty column name")
	ErrRowWidth        = errors.New("row width does not match column count")
)

// Row is an ordered sequence of values, one per column
type Row []Value

// DataSet is a table of typed values: unique column names and rows of equal
// width.
type DataSet struct {
	ColumnNames []string
	Rows        []Row
}

// NewDataSet builds a DataSet and checks its invariants
func NewDataSet(columns []string, rows ...Row) (*DataSet, error) {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c == "" {
			return nil, ErrEmptyColumn
		}
		if seen[c] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, c)
		}
		seen[c] = true
	}

	ds := &DataSet{
		ColumnNames: append([]string(nil), columns...),
		Rows:        make([]Row, len(rows)),
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrRowWidth, i, len(r), len(columns))
		}
		ds.Rows[i] = append(Row(nil), r...)
	}
	return ds, nil
}

// RowSize returns the number of rows
func (d *DataSet) RowSize() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of a column, or -1
func (d *DataSet) ColumnIndex(name string) int {
	for i, c := range d.ColumnNames {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of one column, top to bottom
func (d *DataSet) Column(name string) ([]Value, bool) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]Value, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[idx]
	}
	return out, true
}

func (r Row) String() string {
	var sb strings.Builder
	sb.WriteByte('|')
	for _, v := range r {
		sb.WriteByte(' ')
		sb.WriteString(v.String())
		sb.WriteString(" |")
	}
	return sb.String()
}

// String renders the table in the pipe-delimited scenario format, header
// first.
func (d *DataSet) String() string {
	var sb strings.Builder
	sb.WriteByte('|')
	for _, c := range d.ColumnNames {
		sb.WriteByte(' ')
		sb.WriteString(c)
		sb.WriteString(" |")
	}
	for _, r := range d.Rows {
		sb.WriteByte('\n')
		sb.WriteString(r.String())
	}
	return sb.String()
}
