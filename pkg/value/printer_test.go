package value

import (
	"errors"
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"empty", EmptyValue(), "EMPTY"},
		{"null", NullValue(BadType), "BAD_TYPE"},
		{"bool", BoolValue(false), "false"},
		{"int", IntValue(-42), "-42"},
		{"float keeps point", FloatValue(3), "3.0"},
		{"float", FloatValue(-0.25), "-0.25"},
		{"string escapes", StringValue("a\"b\\c\nd\te"), `"a\"b\\c\nd\te"`},
		{"list", ListValue(IntValue(1), StringValue("x")), `[1, "x"]`},
		{"empty list", ListValue(), "[]"},
		{"set", SetValue(IntValue(1), IntValue(2)), "{1, 2}"},
		{"map sorted", MapValue(map[string]Value{"b": IntValue(2), "a": IntValue(1)}), "{a: 1, b: 2}"},
		{"map quoted keys", MapValue(map[string]Value{"with space": IntValue(1), "null": IntValue(2)}), `{"null": 2, "with space": 1}`},
		{"empty map", MapValue(nil), "{}"},
		{
			"vertex",
			VertexValue(Vertex{ID: "Tim", Tags: []Tag{{Name: "player", Props: map[string]Value{"age": IntValue(42)}}, {Name: "bachelor"}}}),
			`("Tim":player{age: 42}:bachelor)`,
		},
		{"anonymous vertex", VertexValue(Vertex{}), "()"},
		{"bare edge", EdgeValue(Edge{}), "-->"},
		{
			"forward edge",
			EdgeValue(Edge{Name: "like", Src: "A", Dst: "B", Rank: 2, Props: map[string]Value{"w": IntValue(1)}}),
			`-[:like "A"->"B"@2{w: 1}]->`,
		},
		{"reverse edge", EdgeValue(Edge{Name: "like", Direction: Reverse}), "<-[:like]-"},
		{
			"path",
			PathValue(Path{Src: Vertex{ID: "A"}, Steps: []Step{
				{Name: "e", Direction: Forward, Dst: Vertex{ID: "B"}},
				{Name: "e", Rank: 1, Direction: Reverse, Dst: Vertex{ID: "C"}},
			}}),
			`<("A")-[:e]->("B")<-[:e@1]-("C")>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKeyword(t *testing.T) {
	for _, word := range []string{"null", "Null", "NULL", "nan", "True", "empty", "div_by_zero"} {
		if _, ok := Keyword(word); !ok {
			t.Errorf("Keyword(%q) not recognised", word)
		}
	}
	if _, ok := Keyword("player"); ok {
		t.Error("player is not a keyword")
	}
}

func TestIsLabel(t *testing.T) {
	tests := map[string]bool{
		"name":   true,
		"_x1":    true,
		"1x":     false,
		"a b":    false,
		"":       false,
		"true":   false,
		"EMPTY":  false,
		"emptyX": true,
	}
	for s, want := range tests {
		if got := IsLabel(s); got != want {
			t.Errorf("IsLabel(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestLiteral(t *testing.T) {
	ok := []Value{
		FloatValue(1.5),
		ListValue(IntValue(1), FloatValue(-2)),
		VertexValue(Vertex{ID: "v", Tags: []Tag{{Name: "t", Props: map[string]Value{"w": FloatValue(0.5)}}}}),
	}
	for _, v := range ok {
		got, err := v.Literal()
		if err != nil {
			t.Errorf("Literal(%s) failed: %v", v, err)
			continue
		}
		if got != v.String() {
			t.Errorf("Literal() = %q, want %q", got, v.String())
		}
	}

	bad := []Value{
		FloatValue(math.NaN()),
		FloatValue(math.Inf(1)),
		ListValue(IntValue(1), FloatValue(math.Inf(-1))),
		MapValue(map[string]Value{"a": SetValue(FloatValue(math.NaN()))}),
		EdgeValue(Edge{Name: "e", Props: map[string]Value{"w": FloatValue(math.Inf(1))}}),
		PathValue(Path{Src: Vertex{ID: "a"}, Steps: []Step{{Name: "e", Dst: Vertex{ID: "b",
			Tags: []Tag{{Name: "t", Props: map[string]Value{"x": FloatValue(math.NaN())}}}}}}}),
	}
	for _, v := range bad {
		if _, err := v.Literal(); !errors.Is(err, ErrNotLiteral) {
			t.Errorf("Literal(%s) error = %v, want ErrNotLiteral", v, err)
		}
	}
}
