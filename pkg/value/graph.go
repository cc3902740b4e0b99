package value

// Direction records which endpoint of an edge is the semantic source
type Direction int8

const (
	Forward Direction = 1
	Reverse Direction = -1
)

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Tag is a named property bag attached to a vertex
type Tag struct {
	Name  string
	Props map[string]Value
}

// Vertex represents a vertex in a result. An empty ID means the literal left
// the id out.
type Vertex struct {
	ID   string
	Tags []Tag
}

// Edge represents a relationship between two vertices. Src and Dst are stored
// as returned; Endpoints gives the direction-normalised pair.
type Edge struct {
	Name      string
	Src       string
	Dst       string
	Rank      int64
	Direction Direction
	Props     map[string]Value
}

// Step is one hop of a path: the edge without its endpoints and the vertex it
// reaches.
type Step struct {
	Name      string
	Rank      int64
	Direction Direction
	Props     map[string]Value
	Dst       Vertex
}

// Path is an origin vertex followed by zero or more steps
type Path struct {
	Src   Vertex
	Steps []Step
}

// Endpoints returns (src, dst) with the pair swapped for reverse edges, so
// that an edge read backwards compares equal to the same edge written forwards.
func (e Edge) Endpoints() (string, string) {
	if e.Direction == Reverse {
		return e.Dst, e.Src
	}
	return e.Src, e.Dst
}

// Tag returns the first tag with the given name
func (v Vertex) Tag(name string) (Tag, bool) {
	for _, t := range v.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// HasTag checks if vertex has a specific tag
func (v Vertex) HasTag(name string) bool {
	_, ok := v.Tag(name)
	return ok
}

// Edge rebuilds the full edge of a step given the vertex the step starts at
func (s Step) Edge(from Vertex) Edge {
	return Edge{
		Name:      s.Name,
		Src:       from.ID,
		Dst:       s.Dst.ID,
		Rank:      s.Rank,
		Direction: s.Direction,
		Props:     s.Props,
	}
}

// Length is the number of steps in the path
func (p Path) Length() int {
	return len(p.Steps)
}

func (t Tag) clone() Tag {
	return Tag{Name: t.Name, Props: cloneProps(t.Props)}
}

func (v Vertex) clone() Vertex {
	clone := Vertex{ID: v.ID, Tags: make([]Tag, len(v.Tags))}
	for i, t := range v.Tags {
		clone.Tags[i] = t.clone()
	}
	return clone
}

func (e Edge) clone() Edge {
	clone := e
	if clone.Direction == 0 {
		clone.Direction = Forward
	}
	clone.Props = cloneProps(e.Props)
	return clone
}

func (s Step) clone() Step {
	clone := s
	if clone.Direction == 0 {
		clone.Direction = Forward
	}
	clone.Props = cloneProps(s.Props)
	clone.Dst = s.Dst.clone()
	return clone
}

func (p Path) clone() Path {
	clone := Path{Src: p.Src.clone(), Steps: make([]Step, len(p.Steps))}
	for i, s := range p.Steps {
		clone.Steps[i] = s.clone()
	}
	return clone
}
