package value

// Equal reports exact structural equality. Sets and maps ignore order, vertex
// tags are compared as an unordered collection and edges are compared on their
// direction-normalised endpoints.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindEmpty:
		return true
	case KindNull:
		return a.null == b.null
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindList:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindSet:
		return unorderedEqual(a.items, b.items, Equal)
	case KindMap:
		return PropsEqual(a.kvs, b.kvs)
	case KindVertex:
		return VertexEqual(*a.vertex, *b.vertex)
	case KindEdge:
		return EdgeEqual(*a.edge, *b.edge)
	case KindPath:
		return PathEqual(*a.path, *b.path)
	default:
		return false
	}
}

// PropsEqual compares two property maps key by key
func PropsEqual(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}

func TagEqual(a, b Tag) bool {
	return a.Name == b.Name && PropsEqual(a.Props, b.Props)
}

func VertexEqual(a, b Vertex) bool {
	return a.ID == b.ID && unorderedEqual(a.Tags, b.Tags, TagEqual)
}

func EdgeEqual(a, b Edge) bool {
	aSrc, aDst := a.Endpoints()
	bSrc, bDst := b.Endpoints()
	return a.Name == b.Name &&
		aSrc == bSrc && aDst == bDst &&
		a.Rank == b.Rank &&
		PropsEqual(a.Props, b.Props)
}

func PathEqual(a, b Path) bool {
	if !VertexEqual(a.Src, b.Src) || a.Length() != b.Length() {
		return false
	}
	aFrom, bFrom := a.Src, b.Src
	for i := range a.Steps {
		as, bs := a.Steps[i], b.Steps[i]
		if !EdgeEqual(as.Edge(aFrom), bs.Edge(bFrom)) || !VertexEqual(as.Dst, bs.Dst) {
			return false
		}
		aFrom, bFrom = as.Dst, bs.Dst
	}
	return true
}

// unorderedEqual checks that a and b have the same length and that every
// element of a can be paired with a distinct element of b.
func unorderedEqual[T any](a, b []T, eq func(T, T) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if !used[j] && eq(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
