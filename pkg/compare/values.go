package compare

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-tck/pkg/value"
)

// Mismatch locates the first difference between an actual and an expected
// value. Path is empty when the values differ at the top level, otherwise it
// names the nested element, e.g. "props.likeness" or "[2].name".
type Mismatch struct {
	Path     string
	Actual   value.Value
	Expected value.Value
	Reason   string
}

func (m *Mismatch) String() string {
	if m.Path == "" {
		return m.Reason
	}
	return m.Path + ": " + m.Reason
}

// matcher compares one actual value against one expected value. The expected
// side may leave parts out: an empty vertex id, empty edge endpoints and an
// empty edge name are not checked.
type matcher struct {
	strict bool
}

func (m matcher) equal(actual, expected value.Value) bool {
	return m.value(actual, expected, "") == nil
}

func (m matcher) value(actual, expected value.Value, path string) *Mismatch {
	if actual.Kind() != expected.Kind() {
		if !m.strict && numericallyEqual(actual, expected) {
			return nil
		}
		return mismatch(path, actual, expected, "type %s, expected %s", actual.TypeName(), expected.TypeName())
	}

	switch expected.Kind() {
	case value.KindEmpty:
		return nil

	case value.KindNull, value.KindBool, value.KindInt, value.KindFloat, value.KindString:
		if !value.Equal(actual, expected) {
			return mismatch(path, actual, expected, "got %s, expected %s", actual, expected)
		}
		return nil

	case value.KindList:
		a, _ := actual.AsList()
		e, _ := expected.AsList()
		if len(a) != len(e) {
			return mismatch(path, actual, expected, "list length %d, expected %d", len(a), len(e))
		}
		for i := range e {
			if mm := m.value(a[i], e[i], index(path, i)); mm != nil {
				return mm
			}
		}
		return nil

	case value.KindSet:
		a, _ := actual.AsSet()
		e, _ := expected.AsSet()
		if len(a) != len(e) {
			return mismatch(path, actual, expected, "set size %d, expected %d", len(a), len(e))
		}
		if i := unmatched(a, e, m.equal); i >= 0 {
			return mismatch(path, actual, expected, "set element %s not found", e[i])
		}
		return nil

	case value.KindMap:
		a, _ := actual.AsMap()
		e, _ := expected.AsMap()
		return m.props(a, e, path)

	case value.KindVertex:
		a, _ := actual.AsVertex()
		e, _ := expected.AsVertex()
		return m.vertex(a, e, path)

	case value.KindEdge:
		a, _ := actual.AsEdge()
		e, _ := expected.AsEdge()
		return m.edge(a, e, path)

	case value.KindPath:
		a, _ := actual.AsPath()
		e, _ := expected.AsPath()
		return m.path(a, e, path)
	}
	return mismatch(path, actual, expected, "unsupported type %s", expected.Kind())
}

// props compares property maps. Under strict the key sets must be equal,
// otherwise the expected keys only need to be present in actual.
func (m matcher) props(a, e map[string]value.Value, path string) *Mismatch {
	for _, key := range sortedKeys(e) {
		av, ok := a[key]
		if !ok {
			return mismatch(join(path, key), value.EmptyValue(), e[key], "missing key %q", key)
		}
		if mm := m.value(av, e[key], join(path, key)); mm != nil {
			return mm
		}
	}
	if m.strict && len(a) != len(e) {
		for _, key := range sortedKeys(a) {
			if _, ok := e[key]; !ok {
				return mismatch(join(path, key), a[key], value.EmptyValue(), "unexpected key %q", key)
			}
		}
	}
	return nil
}

func (m matcher) vertex(a, e value.Vertex, path string) *Mismatch {
	if e.ID != "" && a.ID != e.ID {
		return mismatch(join(path, "id"), value.StringValue(a.ID), value.StringValue(e.ID),
			"vertex id %q, expected %q", a.ID, e.ID)
	}
	if m.strict && len(a.Tags) != len(e.Tags) {
		return mismatch(join(path, "tags"), value.VertexValue(a), value.VertexValue(e),
			"%d tags, expected %d", len(a.Tags), len(e.Tags))
	}

	used := make([]bool, len(a.Tags))
	for _, et := range e.Tags {
		var first *Mismatch
		found := false
		for j, at := range a.Tags {
			if used[j] || at.Name != et.Name {
				continue
			}
			mm := m.props(at.Props, et.Props, join(path, et.Name))
			if mm == nil {
				used[j] = true
				found = true
				break
			}
			if first == nil {
				first = mm
			}
		}
		if found {
			continue
		}
		if first != nil {
			return first
		}
		return mismatch(join(path, "tags"), value.VertexValue(a), value.VertexValue(e), "missing tag %q", et.Name)
	}
	return nil
}

func (m matcher) edge(a, e value.Edge, path string) *Mismatch {
	if e.Name != "" && a.Name != e.Name {
		return mismatch(join(path, "name"), value.StringValue(a.Name), value.StringValue(e.Name),
			"edge name %q, expected %q", a.Name, e.Name)
	}
	aSrc, aDst := a.Endpoints()
	eSrc, eDst := e.Endpoints()
	if eSrc != "" && aSrc != eSrc {
		return mismatch(join(path, "src"), value.StringValue(aSrc), value.StringValue(eSrc),
			"edge source %q, expected %q", aSrc, eSrc)
	}
	if eDst != "" && aDst != eDst {
		return mismatch(join(path, "dst"), value.StringValue(aDst), value.StringValue(eDst),
			"edge destination %q, expected %q", aDst, eDst)
	}
	if a.Rank != e.Rank {
		return mismatch(join(path, "rank"), value.IntValue(a.Rank), value.IntValue(e.Rank),
			"edge rank %d, expected %d", a.Rank, e.Rank)
	}
	return m.props(a.Props, e.Props, join(path, "props"))
}

func (m matcher) path(a, e value.Path, path string) *Mismatch {
	if mm := m.vertex(a.Src, e.Src, join(path, "src")); mm != nil {
		return mm
	}
	if a.Length() != e.Length() {
		return mismatch(join(path, "steps"), value.PathValue(a), value.PathValue(e),
			"path length %d, expected %d", a.Length(), e.Length())
	}
	aFrom, eFrom := a.Src, e.Src
	for i := range e.Steps {
		as, es := a.Steps[i], e.Steps[i]
		step := index(join(path, "steps"), i)
		if mm := m.edge(as.Edge(aFrom), es.Edge(eFrom), join(step, "edge")); mm != nil {
			return mm
		}
		if mm := m.vertex(as.Dst, es.Dst, join(step, "dst")); mm != nil {
			return mm
		}
		aFrom, eFrom = as.Dst, es.Dst
	}
	return nil
}

// numericallyEqual implements the relaxed coercions: an int or float equals a
// string holding the same number, and ints equal floats of the same value.
// Integers are compared as int64 so values beyond 2^53 keep every digit.
func numericallyEqual(a, b value.Value) bool {
	if ai, ok := integer(a); ok {
		if bi, ok := integer(b); ok {
			return ai == bi
		}
		bf, ok := float(b)
		return ok && intEqualsFloat(ai, bf)
	}
	if bi, ok := integer(b); ok {
		af, ok := float(a)
		return ok && intEqualsFloat(bi, af)
	}
	af, aok := float(a)
	bf, bok := float(b)
	return aok && bok && af == bf
}

// integer reads an int, or a string holding an integer literal
func integer(v value.Value) (int64, bool) {
	switch v.Kind() {
	case value.KindInt:
		i, _ := v.AsInt()
		return i, true
	case value.KindString:
		s, _ := v.AsString()
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}

// float reads a float, or a string holding any number
func float(v value.Value) (float64, bool) {
	switch v.Kind() {
	case value.KindFloat:
		f, _ := v.AsFloat()
		return f, true
	case value.KindString:
		s, _ := v.AsString()
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// intEqualsFloat holds when f is integral, within int64 range and converts to i
func intEqualsFloat(i int64, f float64) bool {
	if f != math.Trunc(f) || f < -(1<<63) || f >= 1<<63 {
		return false
	}
	return int64(f) == i
}

// unmatched pairs every expected element with a distinct actual element,
// greedily and without backtracking. It returns the index of the first
// expected element left without a partner, or -1.
func unmatched(actual, expected []value.Value, eq func(a, e value.Value) bool) int {
	used := make([]bool, len(actual))
	for i, e := range expected {
		found := false
		for j, a := range actual {
			if !used[j] && eq(a, e) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return i
		}
	}
	return -1
}

func mismatch(path string, actual, expected value.Value, format string, args ...any) *Mismatch {
	return &Mismatch{
		Path:     path,
		Actual:   actual,
		Expected: expected,
		Reason:   fmt.Sprintf(format, args...),
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func sortedKeys(m map[string]value.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
