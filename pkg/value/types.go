// Package value holds the in-memory representation of result cells: a tagged
// union of scalars, null sentinels, collections and graph entities, plus the
// row/table shapes built from them.
package value

import (
	"fmt"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindSet
	KindMap
	KindVertex
	KindEdge
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindVertex:
		return "vertex"
	case KindEdge:
		return "edge"
	case KindPath:
		return "path"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NullType distinguishes the null sentinels. Two nulls are equal only when
// their NullType matches.
type NullType uint8

const (
	Null NullType = iota
	NaN
	BadData
	BadType
	Overflow
	UnknownProp
	DivByZero
	OutOfRange
)

// String returns the keyword used for the sentinel in literal text
func (n NullType) String() string {
	switch n {
	case Null:
		return "NULL"
	case NaN:
		return "NaN"
	case BadData:
		return "BAD_DATA"
	case BadType:
		return "BAD_TYPE"
	case Overflow:
		return "OVERFLOW"
	case UnknownProp:
		return "UNKNOWN_PROP"
	case DivByZero:
		return "DIV_BY_ZERO"
	case OutOfRange:
		return "OUT_OF_RANGE"
	default:
		return fmt.Sprintf("NullType(%d)", n)
	}
}

// Value is one typed cell. The zero Value is EMPTY. Values are built through
// the constructor helpers below and are not modified afterwards.
type Value struct {
	kind   Kind
	null   NullType
	b      bool
	i      int64
	f      float64
	s      string
	items  []Value
	kvs    map[string]Value
	vertex *Vertex
	edge   *Edge
	path   *Path
}

// Helper functions to create typed values

func EmptyValue() Value {
	return Value{}
}

func NullValue(n NullType) Value {
	return Value{kind: KindNull, null: n}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func IntValue(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func FloatValue(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

func StringValue(s string) Value {
	return Value{kind: KindString, s: s}
}

// ListValue keeps items in order
func ListValue(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)
	return Value{kind: KindList, items: list}
}

// SetValue drops items equal to an earlier item, keeping first-seen order
func SetValue(items ...Value) Value {
	set := make([]Value, 0, len(items))
	for _, item := range items {
		dup := false
		for _, seen := range set {
			if Equal(seen, item) {
				dup = true
				break
			}
		}
		if !dup {
			set = append(set, item)
		}
	}
	return Value{kind: KindSet, items: set}
}

// MapValue copies kvs so later changes to the argument do not leak in
func MapValue(kvs map[string]Value) Value {
	return Value{kind: KindMap, kvs: cloneProps(kvs)}
}

func VertexValue(v Vertex) Value {
	c := v.clone()
	return Value{kind: KindVertex, vertex: &c}
}

func EdgeValue(e Edge) Value {
	c := e.clone()
	return Value{kind: KindEdge, edge: &c}
}

func PathValue(p Path) Value {
	c := p.clone()
	return Value{kind: KindPath, path: &c}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Decode methods

func (v Value) AsNull() (NullType, error) {
	if v.kind != KindNull {
		return 0, fmt.Errorf("value is not a null")
	}
	return v.null, nil
}

func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, fmt.Errorf("value is not a bool")
	}
	return v.b, nil
}

func (v Value) AsInt() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("value is not an int")
	}
	return v.i, nil
}

func (v Value) AsFloat() (float64, error) {
	if v.kind != KindFloat {
		return 0, fmt.Errorf("value is not a float")
	}
	return v.f, nil
}

func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", fmt.Errorf("value is not a string")
	}
	return v.s, nil
}

// AsList returns a copy of the list items
func (v Value) AsList() ([]Value, error) {
	if v.kind != KindList {
		return nil, fmt.Errorf("value is not a list")
	}
	return append([]Value(nil), v.items...), nil
}

// AsSet returns a copy of the distinct set items in first-seen order
func (v Value) AsSet() ([]Value, error) {
	if v.kind != KindSet {
		return nil, fmt.Errorf("value is not a set")
	}
	return append([]Value(nil), v.items...), nil
}

func (v Value) AsMap() (map[string]Value, error) {
	if v.kind != KindMap {
		return nil, fmt.Errorf("value is not a map")
	}
	return cloneProps(v.kvs), nil
}

func (v Value) AsVertex() (Vertex, error) {
	if v.kind != KindVertex {
		return Vertex{}, fmt.Errorf("value is not a vertex")
	}
	return v.vertex.clone(), nil
}

func (v Value) AsEdge() (Edge, error) {
	if v.kind != KindEdge {
		return Edge{}, fmt.Errorf("value is not an edge")
	}
	return v.edge.clone(), nil
}

func (v Value) AsPath() (Path, error) {
	if v.kind != KindPath {
		return Path{}, fmt.Errorf("value is not a path")
	}
	return v.path.clone(), nil
}

// Len is the element count of a list, set or map and the byte length of a
// string. Other kinds report -1.
func (v Value) Len() int {
	switch v.kind {
	case KindList, KindSet:
		return len(v.items)
	case KindMap:
		return len(v.kvs)
	case KindString:
		return len(v.s)
	default:
		return -1
	}
}

// TypeName is the short type tag used by scenario tables: the sentinel
// keyword for EMPTY and null kinds, the client field name otherwise.
func (v Value) TypeName() string {
	switch v.kind {
	case KindEmpty:
		return "EMPTY"
	case KindNull:
		return v.null.String()
	case KindBool:
		return "bVal"
	case KindInt:
		return "iVal"
	case KindFloat:
		return "fVal"
	case KindString:
		return "sVal"
	case KindList:
		return "lVal"
	case KindSet:
		return "uVal"
	case KindMap:
		return "mVal"
	case KindVertex:
		return "vVal"
	case KindEdge:
		return "eVal"
	case KindPath:
		return "pVal"
	default:
		return "UNKNOWN"
	}
}

func cloneProps(kvs map[string]Value) map[string]Value {
	out := make(map[string]Value, len(kvs))
	for k, v := range kvs {
		out[k] = v
	}
	return out
}
