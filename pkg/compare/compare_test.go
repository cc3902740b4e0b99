package compare

import (
	"errors"
	"strings"
	"testing"

	"github.com/dd0wney/cluso-tck/pkg/nbv"
	"github.com/dd0wney/cluso-tck/pkg/value"
)

func mustTable(t *testing.T, text string) *value.DataSet {
	t.Helper()
	ds, err := nbv.ParseTable(text, nil)
	if err != nil {
		t.Fatalf("ParseTable(%q) failed: %v", text, err)
	}
	return ds
}

func mustValue(t *testing.T, text string) value.Value {
	t.Helper()
	v, err := nbv.Parse(text)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", text, err)
	}
	return v
}

const abcTable = `
| x |
| "A" |
| "B" |
| "C" |
`

func TestPolicy_String(t *testing.T) {
	tests := []struct {
		policy Policy
		want   string
	}{
		{DefaultPolicy(), "unordered,strict"},
		{Policy{Order: true}, "ordered,relax"},
		{Policy{Order: true, Strict: true, Included: true}, "ordered,strict,included"},
	}
	for _, tt := range tests {
		if got := tt.policy.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.policy, got, tt.want)
		}
	}
}

func TestCompare_SingleRow(t *testing.T) {
	expected := mustTable(t, "| name | age |\n| \"Tim Duncan\" | 42 |")

	if len(expected.ColumnNames) != 2 || expected.ColumnNames[0] != "name" || expected.ColumnNames[1] != "age" {
		t.Fatalf("columns = %v", expected.ColumnNames)
	}
	actual, err := value.NewDataSet([]string{"name", "age"},
		value.Row{value.StringValue("Tim Duncan"), value.IntValue(42)})
	if err != nil {
		t.Fatal(err)
	}

	result, err := New(DefaultPolicy()).Compare(actual, expected)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if !result.Matched {
		t.Errorf("expected match, got %v", result.Diagnostic)
	}
	if result.Assignment[0] != 0 {
		t.Errorf("Assignment = %v, want [0]", result.Assignment)
	}
}

func TestCompare_Permutation(t *testing.T) {
	actual := mustTable(t, abcTable)
	expected := mustTable(t, `
| x |
| "C" |
| "A" |
| "B" |
`)

	result, err := New(Policy{Strict: true}).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Errorf("unordered comparison should match a permutation: %v", result.Diagnostic)
	}
	want := []int{2, 0, 1}
	for i, a := range want {
		if result.Assignment[i] != a {
			t.Errorf("Assignment = %v, want %v", result.Assignment, want)
			break
		}
	}

	result, err = New(Policy{Order: true, Strict: true}).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Error("ordered comparison should not match a permutation")
	}
	if d := result.Diagnostic; d.ExpectedRow != 0 || d.ActualRow != 0 || d.Column != "x" {
		t.Errorf("Diagnostic = %+v", d)
	}
}

func TestCompare_Included(t *testing.T) {
	actual := mustTable(t, abcTable)
	expected := mustTable(t, "| x |\n| \"A\" |\n| \"C\" |")

	result, err := New(Policy{Strict: true, Included: true}).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Errorf("included comparison should match a subset: %v", result.Diagnostic)
	}

	_, err = New(Policy{Strict: true}).Compare(actual, expected)
	if !errors.Is(err, ErrRowCountMismatch) {
		t.Fatalf("expected ErrRowCountMismatch, got %v", err)
	}
	var sme *SchemaMismatchError
	if !errors.As(err, &sme) || sme.ActualRows != 3 || sme.ExpectedRows != 2 {
		t.Errorf("SchemaMismatchError = %+v", sme)
	}
}

func TestCompare_OrderedIncluded(t *testing.T) {
	actual := mustTable(t, abcTable)
	policy := Policy{Order: true, Strict: true, Included: true}

	tests := []struct {
		name  string
		table string
		want  bool
	}{
		{"subsequence", "| x |\n| \"A\" |\n| \"C\" |", true},
		{"out of order", "| x |\n| \"C\" |\n| \"A\" |", false},
		{"empty", "| x |", true},
		{"reused row", "| x |\n| \"B\" |\n| \"B\" |", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(policy).Compare(actual, mustTable(t, tt.table))
			if err != nil {
				t.Fatal(err)
			}
			if result.Matched != tt.want {
				t.Errorf("Matched = %v, want %v (%v)", result.Matched, tt.want, result.Diagnostic)
			}
		})
	}
}

func TestCompare_ColumnMismatch(t *testing.T) {
	actual := mustTable(t, "| a | b |\n| 1 | 2 |")
	expected := mustTable(t, "| a | c |\n| 1 | 2 |")

	_, err := New(DefaultPolicy()).Compare(actual, expected)
	if !errors.Is(err, ErrColumnMismatch) {
		t.Fatalf("expected ErrColumnMismatch, got %v", err)
	}
	if !IsSchemaMismatch(err) {
		t.Error("IsSchemaMismatch should be true")
	}
	if !strings.Contains(err.Error(), "[a, b]") {
		t.Errorf("error should list actual columns: %v", err)
	}
}

func TestCompare_ColumnsAlignedByName(t *testing.T) {
	actual := mustTable(t, "| a | b |\n| 1 | \"x\" |")
	expected := mustTable(t, "| b | a |\n| \"x\" | 1 |")

	result, err := New(Policy{Order: true, Strict: true}).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Errorf("columns should be aligned by name: %v", result.Diagnostic)
	}
}

func TestCompare_NilDataSet(t *testing.T) {
	if _, err := New(DefaultPolicy()).Compare(nil, mustTable(t, "| a |")); !errors.Is(err, ErrNilDataSet) {
		t.Errorf("expected ErrNilDataSet, got %v", err)
	}
}

func TestCompare_EdgePropertyDiagnostic(t *testing.T) {
	expected := mustTable(t, "| e |\n| -[:like{likeness:90}]-> |")
	actual, err := value.NewDataSet([]string{"e"}, value.Row{value.EdgeValue(value.Edge{
		Name:      "like",
		Src:       "Tim Duncan",
		Dst:       "Tony Parker",
		Direction: value.Forward,
		Props:     map[string]value.Value{"likeness": value.IntValue(95)},
	})})
	if err != nil {
		t.Fatal(err)
	}

	result, err := New(DefaultPolicy()).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Fatal("90 and 95 should not match")
	}
	d := result.Diagnostic
	if d.Column != "e" || d.Path != "props.likeness" {
		t.Errorf("Diagnostic = %+v, want column e at props.likeness", d)
	}
	if !strings.Contains(d.String(), "props.likeness") || !strings.Contains(d.Reason, "95") {
		t.Errorf("Diagnostic.String() = %q", d.String())
	}
}

func TestCompare_ClosestRow(t *testing.T) {
	actual := mustTable(t, `
| name | age |
| "Tony Parker" | 36 |
| "Tim Duncan" | 42 |
`)
	expected := mustTable(t, `
| name | age |
| "Tony Parker" | 36 |
| "Tim Duncan" | 43 |
`)

	result, err := New(DefaultPolicy()).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Fatal("expected mismatch")
	}
	d := result.Diagnostic
	if d.ExpectedRow != 1 || d.ActualRow != 1 || d.Column != "age" {
		t.Errorf("Diagnostic = %+v", d)
	}
	if !value.Equal(d.Actual, value.IntValue(42)) || !value.Equal(d.Expected, value.IntValue(43)) {
		t.Errorf("Diagnostic values = %s, %s", d.Actual, d.Expected)
	}
}

func TestCompare_NoCandidateLeft(t *testing.T) {
	actual := mustTable(t, "| x |\n| 1 |")
	expected := mustTable(t, "| x |\n| 1 |\n| 1 |")

	result, err := New(Policy{Strict: true, Included: true}).Compare(actual, expected)
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Fatal("one actual row cannot match two expected rows")
	}
	if d := result.Diagnostic; d.ExpectedRow != 1 || d.ActualRow != -1 {
		t.Errorf("Diagnostic = %+v", d)
	}
}

func TestFindRow(t *testing.T) {
	actual := mustTable(t, `
| name | age |
| "Tony Parker" | 36 |
| "Tim Duncan" | 42 |
`)
	c := New(DefaultPolicy())

	idx, err := c.FindRow(actual, []string{"age", "name"}, value.Row{value.IntValue(42), value.StringValue("Tim Duncan")})
	if err != nil {
		t.Fatal(err)
	}
	if idx != 1 {
		t.Errorf("FindRow = %d, want 1", idx)
	}

	idx, err = c.FindRow(actual, []string{"name", "age"}, value.Row{value.StringValue("Manu"), value.IntValue(41)})
	if err != nil {
		t.Fatal(err)
	}
	if idx != -1 {
		t.Errorf("FindRow = %d, want -1", idx)
	}

	if _, err := c.FindRow(actual, []string{"name"}, value.Row{value.StringValue("x")}); !errors.Is(err, ErrColumnMismatch) {
		t.Errorf("expected ErrColumnMismatch, got %v", err)
	}
	if _, err := c.FindRow(actual, []string{"name", "age"}, value.Row{}); !errors.Is(err, value.ErrRowWidth) {
		t.Errorf("expected ErrRowWidth, got %v", err)
	}
}
