package nbv

import (
	"github.com/dd0wney/cluso-tck/pkg/value"
)

// parseVertex parses a vertex literal: ("vid":tag{prop: value}:tag2)
func (s *parseState) parseVertex() (value.Vertex, error) {
	if _, err := s.expect(TokenLeftParen); err != nil {
		return value.Vertex{}, err
	}

	vertex := value.Vertex{Tags: make([]value.Tag, 0)}

	// Vertex id (optional)
	if s.peek().Type == TokenString {
		vertex.ID, _ = s.advance().Literal.AsString()
	}

	// Tags (optional)
	for s.peek().Type == TokenColon {
		s.advance() // consume :
		name, err := s.parseName()
		if err != nil {
			return value.Vertex{}, err
		}
		tag := value.Tag{Name: name, Props: make(map[string]value.Value)}

		if s.peek().Type == TokenLeftBrace {
			props, err := s.parseProperties()
			if err != nil {
				return value.Vertex{}, err
			}
			tag.Props = props
		}
		vertex.Tags = append(vertex.Tags, tag)
	}

	if _, err := s.expect(TokenRightParen); err != nil {
		return value.Vertex{}, err
	}
	return vertex, nil
}

// parseEdgeValue parses a standalone edge literal
func (s *parseState) parseEdgeValue() (value.Value, error) {
	edge, err := s.parseEdge()
	if err != nil {
		return value.Value{}, err
	}
	return value.EdgeValue(edge), nil
}

// parseEdge parses -[...]-> or <-[...]-. The body is optional and every part
// of it defaults: no type name, no endpoints, rank 0, no properties.
func (s *parseState) parseEdge() (value.Edge, error) {
	edge := value.Edge{
		Direction: value.Forward,
		Props:     make(map[string]value.Value),
	}

	// Determine direction from leading token
	if s.peek().Type == TokenLess {
		s.advance()
		edge.Direction = value.Reverse
	}
	if _, err := s.expect(TokenMinus); err != nil {
		return value.Edge{}, err
	}

	// Parse edge details
	if s.peek().Type == TokenLeftBracket {
		s.advance() // consume [

		// Type (optional)
		if s.peek().Type == TokenColon {
			s.advance()
			name, err := s.parseName()
			if err != nil {
				return value.Edge{}, err
			}
			edge.Name = name
		}

		// Endpoints (optional): "src"->"dst"
		if s.peek().Type == TokenString {
			edge.Src, _ = s.advance().Literal.AsString()
			if err := s.expectArrow(); err != nil {
				return value.Edge{}, err
			}
			dst, err := s.expect(TokenString)
			if err != nil {
				return value.Edge{}, err
			}
			edge.Dst, _ = dst.Literal.AsString()
		}

		// Rank (optional): @123
		if s.peek().Type == TokenAt {
			s.advance()
			rank, err := s.expect(TokenInt)
			if err != nil {
				return value.Edge{}, err
			}
			edge.Rank, _ = rank.Literal.AsInt()
		}

		// Properties (optional)
		if s.peek().Type == TokenLeftBrace {
			props, err := s.parseProperties()
			if err != nil {
				return value.Edge{}, err
			}
			edge.Props = props
		}

		if _, err := s.expect(TokenRightBracket); err != nil {
			return value.Edge{}, err
		}
	}

	// Trailing arrow
	if edge.Direction == value.Forward {
		if err := s.expectArrow(); err != nil {
			return value.Edge{}, err
		}
	} else if _, err := s.expect(TokenMinus); err != nil {
		return value.Edge{}, err
	}

	return edge, nil
}

// parsePath parses <vertex (edge vertex)*>
func (s *parseState) parsePath() (value.Value, error) {
	s.advance() // consume <

	src, err := s.parseVertex()
	if err != nil {
		return value.Value{}, err
	}
	path := value.Path{Src: src, Steps: make([]value.Step, 0)}

	for s.peek().Type == TokenMinus || s.peek().Type == TokenLess {
		// endpoints written on a step are dropped; the surrounding vertices
		// supply them
		edge, err := s.parseEdge()
		if err != nil {
			return value.Value{}, err
		}

		dst, err := s.parseVertex()
		if err != nil {
			return value.Value{}, err
		}
		path.Steps = append(path.Steps, value.Step{
			Name:      edge.Name,
			Rank:      edge.Rank,
			Direction: edge.Direction,
			Props:     edge.Props,
			Dst:       dst,
		})
	}

	if _, err := s.expect(TokenGreater); err != nil {
		return value.Value{}, err
	}
	return value.PathValue(path), nil
}

// expectArrow consumes the two tokens of ->
func (s *parseState) expectArrow() error {
	if _, err := s.expect(TokenMinus); err != nil {
		return err
	}
	_, err := s.expect(TokenGreater)
	return err
}
