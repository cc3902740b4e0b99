package tck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/dd0wney/cluso-tck/pkg/compare"
	"github.com/dd0wney/cluso-tck/pkg/value"
)

// Styles
var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF"))

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
)

// styler decorates report parts; the plain styler leaves text untouched
type styler struct {
	heading func(string) string
	failure func(string) string
	muted   func(string) string
}

func identity(s string) string { return s }

var (
	plain = styler{heading: identity, failure: identity, muted: identity}
	color = styler{
		heading: func(s string) string { return headingStyle.Render(s) },
		failure: func(s string) string { return failureStyle.Render(s) },
		muted:   func(s string) string { return mutedStyle.Render(s) },
	}
)

// Report describes a failed check: the query, both tables and the first
// row and column that did not match.
type Report struct {
	ID         string
	Query      string
	Policy     compare.Policy
	Actual     *value.DataSet
	Expected   *value.DataSet
	Diagnostic *compare.Diagnostic
}

// String renders the report as plain text
func (r *Report) String() string {
	return r.render(plain)
}

// Styled renders the report with terminal colors
func (r *Report) Styled() string {
	return r.render(color)
}

func (r *Report) render(s styler) string {
	var sb strings.Builder

	sb.WriteString(s.heading(fmt.Sprintf("Check %s failed (%s)", r.ID, r.Policy)))
	sb.WriteString("\n")

	if r.Query != "" {
		sb.WriteString(s.heading("Query:"))
		sb.WriteString("\n")
		for _, line := range strings.Split(strings.TrimSpace(r.Query), "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}

	failedRow := -1
	if r.Diagnostic != nil {
		failedRow = r.Diagnostic.ExpectedRow
	}

	sb.WriteString(s.heading("Actual:"))
	sb.WriteString("\n")
	writeTable(&sb, r.Actual, -1, s)

	sb.WriteString(s.heading("Expected:"))
	sb.WriteString("\n")
	writeTable(&sb, r.Expected, failedRow, s)

	if r.Diagnostic != nil {
		sb.WriteString(s.heading("First mismatch:"))
		sb.WriteString(" ")
		sb.WriteString(s.failure(r.Diagnostic.String()))
		sb.WriteString("\n")
	}

	if diff := r.Diff(); diff != "" {
		sb.WriteString(s.heading("Diff:"))
		sb.WriteString("\n")
		sb.WriteString(s.muted(strings.TrimRight(diff, "\n")))
		sb.WriteString("\n")
	}
	return sb.String()
}

// Diff returns a unified diff from the expected table to the actual one, with
// actual columns laid out in expected order. It is empty when the rendered
// tables are identical.
func (r *Report) Diff() string {
	if r.Actual == nil || r.Expected == nil {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(r.Expected.String() + "\n"),
		B:        difflib.SplitLines(project(r.Actual, r.Expected.ColumnNames).String() + "\n"),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return diff
}

func writeTable(sb *strings.Builder, ds *value.DataSet, highlight int, s styler) {
	if ds == nil {
		sb.WriteString(s.muted("<nil>"))
		sb.WriteString("\n")
		return
	}
	for i, line := range strings.Split(ds.String(), "\n") {
		// line 0 is the header
		if i-1 == highlight {
			line = s.failure(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
}

// project reorders the columns of ds to match columns. ds is returned
// unchanged when the column sets differ.
func project(ds *value.DataSet, columns []string) *value.DataSet {
	if len(ds.ColumnNames) != len(columns) {
		return ds
	}
	index := make([]int, len(columns))
	for i, name := range columns {
		j := ds.ColumnIndex(name)
		if j < 0 {
			return ds
		}
		index[i] = j
	}

	out := &value.DataSet{ColumnNames: columns, Rows: make([]value.Row, len(ds.Rows))}
	for r, row := range ds.Rows {
		projected := make(value.Row, len(index))
		for i, j := range index {
			if j < len(row) {
				projected[i] = row[j]
			} else {
				projected[i] = value.EmptyValue()
			}
		}
		out.Rows[r] = projected
	}
	return out
}

// MismatchError carries the report of a failed check for callers that want
// an error
type MismatchError struct {
	Report *Report
}

func (e *MismatchError) Error() string {
	return e.Report.String()
}

// IsMismatch checks if an error is a MismatchError
func IsMismatch(err error) bool {
	var me *MismatchError
	return errors.As(err, &me)
}
