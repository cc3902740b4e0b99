package compare

import (
	"fmt"

	"github.com/dd0wney/cluso-tck/pkg/value"
)

// tables holds one comparison: both tables and the column alignment
type tables struct {
	actual   *value.DataSet
	expected *value.DataSet
	columns  []int // expected column index -> actual column index
	matcher  matcher
}

// positional compares row i of actual with row i of expected
func (t *tables) positional() *Result {
	assignment := newAssignment(len(t.expected.Rows))
	for i := range t.expected.Rows {
		if !t.rowsEqual(i, i) {
			return t.failed(assignment, t.diagnose(i, i))
		}
		assignment[i] = i
	}
	return &Result{Matched: true, Assignment: assignment}
}

// subsequence requires the expected rows to appear in actual in the same
// relative order, with any number of actual rows in between.
func (t *tables) subsequence() *Result {
	assignment := newAssignment(len(t.expected.Rows))
	next := 0
	for i := range t.expected.Rows {
		start := next
		for next < len(t.actual.Rows) && !t.rowsEqual(next, i) {
			next++
		}
		if next == len(t.actual.Rows) {
			candidates := make([]int, 0, len(t.actual.Rows)-start)
			for j := start; j < len(t.actual.Rows); j++ {
				candidates = append(candidates, j)
			}
			return t.failed(assignment, t.closest(i, candidates))
		}
		assignment[i] = next
		next++
	}
	return &Result{Matched: true, Assignment: assignment}
}

// unordered pairs every expected row with a distinct actual row. Each expected
// row takes the first unvisited actual row equal to it; there is no
// backtracking. When row counts are equal this consumes every actual row.
func (t *tables) unordered() *Result {
	assignment := newAssignment(len(t.expected.Rows))
	visited := make([]bool, len(t.actual.Rows))
	for i := range t.expected.Rows {
		found := false
		for j := range t.actual.Rows {
			if !visited[j] && t.rowsEqual(j, i) {
				visited[j] = true
				assignment[i] = j
				found = true
				break
			}
		}
		if !found {
			candidates := make([]int, 0, len(t.actual.Rows))
			for j, v := range visited {
				if !v {
					candidates = append(candidates, j)
				}
			}
			return t.failed(assignment, t.closest(i, candidates))
		}
	}
	return &Result{Matched: true, Assignment: assignment}
}

// rowsEqual compares actual row a with expected row e column by column
func (t *tables) rowsEqual(a, e int) bool {
	return t.firstDifference(a, e) < 0
}

// firstDifference returns the first expected column that differs, or -1
func (t *tables) firstDifference(a, e int) int {
	first, _ := t.scoreRow(a, e)
	return first
}

// scoreRow returns the first differing column and the number of columns that
// agree
func (t *tables) scoreRow(a, e int) (int, int) {
	first, agree := -1, 0
	for i, j := range t.columns {
		if t.matcher.equal(cell(t.actual.Rows[a], j), cell(t.expected.Rows[e], i)) {
			agree++
		} else if first < 0 {
			first = i
		}
	}
	return first, agree
}

// closest picks the candidate actual row agreeing with expected row e on the
// most columns, preferring the lowest index, and describes its first
// difference.
func (t *tables) closest(e int, candidates []int) *Diagnostic {
	if len(candidates) == 0 {
		return &Diagnostic{
			ExpectedRow: e,
			ActualRow:   -1,
			Expected:    value.ListValue(t.expected.Rows[e]...),
			Reason:      fmt.Sprintf("no actual row left to match %s", t.expected.Rows[e]),
		}
	}
	best, bestAgree := candidates[0], -1
	for _, a := range candidates {
		if _, agree := t.scoreRow(a, e); agree > bestAgree {
			best, bestAgree = a, agree
		}
	}
	return t.diagnose(best, e)
}

// diagnose explains why actual row a differs from expected row e
func (t *tables) diagnose(a, e int) *Diagnostic {
	i := t.firstDifference(a, e)
	if i < 0 {
		return &Diagnostic{ExpectedRow: e, ActualRow: a, Reason: "rows are equal"}
	}
	actual := cell(t.actual.Rows[a], t.columns[i])
	expected := cell(t.expected.Rows[e], i)
	mm := t.matcher.value(actual, expected, "")
	d := &Diagnostic{
		ExpectedRow: e,
		ActualRow:   a,
		Column:      t.expected.ColumnNames[i],
		Actual:      actual,
		Expected:    expected,
	}
	if mm != nil {
		d.Path = mm.Path
		d.Reason = mm.Reason
	}
	return d
}

func (t *tables) failed(assignment []int, d *Diagnostic) *Result {
	return &Result{Matched: false, Diagnostic: d, Assignment: assignment}
}

func newAssignment(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = -1
	}
	return a
}

// cell returns row[i], or EMPTY for rows narrower than the header
func cell(row value.Row, i int) value.Value {
	if i < len(row) {
		return row[i]
	}
	return value.EmptyValue()
}
