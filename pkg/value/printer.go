package value

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var labelPattern = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

// keywords maps the upper-cased sentinel words of the literal language to the
// values they denote. Matching is case-insensitive.
var keywords = map[string]Value{
	"EMPTY":        EmptyValue(),
	"NULL":         NullValue(Null),
	"NAN":          NullValue(NaN),
	"BAD_DATA":     NullValue(BadData),
	"BAD_TYPE":     NullValue(BadType),
	"OVERFLOW":     NullValue(Overflow),
	"UNKNOWN_PROP": NullValue(UnknownProp),
	"DIV_BY_ZERO":  NullValue(DivByZero),
	"OUT_OF_RANGE": NullValue(OutOfRange),
	"TRUE":         BoolValue(true),
	"FALSE":        BoolValue(false),
}

// Keyword resolves a sentinel word such as NULL, NaN or true
func Keyword(word string) (Value, bool) {
	v, ok := keywords[strings.ToUpper(word)]
	return v, ok
}

// IsLabel reports whether s can be written unquoted as a map key, tag name or
// edge name.
func IsLabel(s string) bool {
	if !labelPattern.MatchString(s) {
		return false
	}
	_, reserved := Keyword(s)
	return !reserved
}

// String renders v in the literal language. The output parses back to a value
// equal to v, except for an empty set, which prints as {} and reads back as
// an empty map.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

// ErrNotLiteral is returned by Literal for values the literal language cannot
// express: floats that are NaN or infinite.
var ErrNotLiteral = errors.New("value has no literal form")

// Literal is String for values that must read back unchanged. A NaN float
// would read back as the NaN null sentinel and an infinite one not at all, so
// both are rejected.
func (v Value) Literal() (string, error) {
	if !v.finite() {
		return "", fmt.Errorf("%w: %s", ErrNotLiteral, v.String())
	}
	return v.String(), nil
}

func (v Value) finite() bool {
	switch v.kind {
	case KindFloat:
		return !math.IsNaN(v.f) && !math.IsInf(v.f, 0)
	case KindList, KindSet:
		for _, item := range v.items {
			if !item.finite() {
				return false
			}
		}
	case KindMap:
		return propsFinite(v.kvs)
	case KindVertex:
		return v.vertex.finite()
	case KindEdge:
		return propsFinite(v.edge.Props)
	case KindPath:
		if !v.path.Src.finite() {
			return false
		}
		for _, s := range v.path.Steps {
			if !propsFinite(s.Props) || !s.Dst.finite() {
				return false
			}
		}
	}
	return true
}

func (v Vertex) finite() bool {
	for _, t := range v.Tags {
		if !propsFinite(t.Props) {
			return false
		}
	}
	return true
}

func propsFinite(kvs map[string]Value) bool {
	for _, v := range kvs {
		if !v.finite() {
			return false
		}
	}
	return true
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case KindEmpty:
		sb.WriteString("EMPTY")
	case KindNull:
		sb.WriteString(v.null.String())
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(formatFloat(v.f))
	case KindString:
		writeQuoted(sb, v.s)
	case KindList:
		sb.WriteByte('[')
		writeItems(sb, v.items)
		sb.WriteByte(']')
	case KindSet:
		sb.WriteByte('{')
		writeItems(sb, v.items)
		sb.WriteByte('}')
	case KindMap:
		writeProps(sb, v.kvs)
	case KindVertex:
		v.vertex.write(sb)
	case KindEdge:
		v.edge.write(sb)
	case KindPath:
		v.path.write(sb)
	}
}

func (v Vertex) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (e Edge) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (p Path) String() string {
	var sb strings.Builder
	p.write(&sb)
	return sb.String()
}

func (v Vertex) write(sb *strings.Builder) {
	sb.WriteByte('(')
	if v.ID != "" {
		writeQuoted(sb, v.ID)
	}
	for _, t := range v.Tags {
		sb.WriteByte(':')
		sb.WriteString(t.Name)
		if len(t.Props) > 0 {
			writeProps(sb, t.Props)
		}
	}
	sb.WriteByte(')')
}

func (e Edge) write(sb *strings.Builder) {
	writeEdge(sb, e.Name, e.Src, e.Dst, e.Rank, e.Direction, e.Props)
}

func (p Path) write(sb *strings.Builder) {
	sb.WriteByte('<')
	p.Src.write(sb)
	for _, s := range p.Steps {
		writeEdge(sb, s.Name, "", "", s.Rank, s.Direction, s.Props)
		s.Dst.write(sb)
	}
	sb.WriteByte('>')
}

func writeEdge(sb *strings.Builder, name, src, dst string, rank int64, dir Direction, props map[string]Value) {
	if dir == Reverse {
		sb.WriteString("<-")
	} else {
		sb.WriteByte('-')
	}

	if name != "" || src != "" || dst != "" || rank != 0 || len(props) > 0 {
		sb.WriteByte('[')
		if name != "" {
			sb.WriteByte(':')
			sb.WriteString(name)
		}
		if src != "" || dst != "" {
			if name != "" {
				sb.WriteByte(' ')
			}
			writeQuoted(sb, src)
			sb.WriteString("->")
			writeQuoted(sb, dst)
		}
		if rank != 0 {
			sb.WriteByte('@')
			sb.WriteString(strconv.FormatInt(rank, 10))
		}
		if len(props) > 0 {
			writeProps(sb, props)
		}
		sb.WriteByte(']')
	}

	if dir == Reverse {
		sb.WriteByte('-')
	} else {
		sb.WriteString("->")
	}
}

func writeItems(sb *strings.Builder, items []Value) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		item.write(sb)
	}
}

// writeProps prints keys in sorted order so the output is deterministic
func writeProps(sb *strings.Builder, kvs map[string]Value) {
	keys := make([]string, 0, len(kvs))
	for k := range kvs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		if IsLabel(k) {
			sb.WriteString(k)
		} else {
			writeQuoted(sb, k)
		}
		sb.WriteString(": ")
		kvs[k].write(sb)
	}
	sb.WriteByte('}')
}

func writeQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
}

// formatFloat always keeps a decimal point so the text reads back as a float
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".IN") {
		return s
	}
	return s + ".0"
}
