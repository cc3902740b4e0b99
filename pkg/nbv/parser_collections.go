package nbv

import (
	"github.com/dd0wney/cluso-tck/pkg/value"
)

// parseList parses [expr, ...]
func (s *parseState) parseList() (value.Value, error) {
	s.advance() // consume [
	items, err := s.parseItems(TokenRightBracket)
	if err != nil {
		return value.Value{}, err
	}
	return value.ListValue(items...), nil
}

// parseSetOrMap decides between a set and a map by looking past the brace:
// {} and {key: ...} are maps, anything else is a set.
func (s *parseState) parseSetOrMap() (value.Value, error) {
	next := s.peekAhead(1)
	if next.Type == TokenRightBrace || (isKeyToken(next) && s.peekAhead(2).Type == TokenColon) {
		props, err := s.parseProperties()
		if err != nil {
			return value.Value{}, err
		}
		return value.MapValue(props), nil
	}

	s.advance() // consume {
	items, err := s.parseItems(TokenRightBrace)
	if err != nil {
		return value.Value{}, err
	}
	return value.SetValue(items...), nil
}

// parseProperties parses property map: {key: value, ...}
func (s *parseState) parseProperties() (map[string]value.Value, error) {
	if _, err := s.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	props := make(map[string]value.Value)
	if s.peek().Type == TokenRightBrace {
		s.advance()
		return props, nil
	}

	for {
		keyToken := s.peek()
		key, err := s.parseKey()
		if err != nil {
			return nil, err
		}
		if _, dup := props[key]; dup {
			return nil, newError(ErrDuplicateKey).at(keyToken).build()
		}
		if _, err := s.expect(TokenColon); err != nil {
			return nil, err
		}

		v, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		props[key] = v

		if s.peek().Type != TokenComma {
			break
		}
		s.advance()
	}

	if _, err := s.expect(TokenRightBrace); err != nil {
		return nil, err
	}
	return props, nil
}

// parseKey parses a map key: a label or a quoted string
func (s *parseState) parseKey() (string, error) {
	token := s.peek()
	switch {
	case token.Type == TokenString:
		s.advance()
		key, _ := token.Literal.AsString()
		return key, nil
	case token.isName():
		s.advance()
		return token.Value, nil
	default:
		return "", s.unexpected("map key")
	}
}

// parseName parses the label after ':' in tags and edge types
func (s *parseState) parseName() (string, error) {
	token := s.peek()
	if !token.isName() {
		return "", s.unexpected("LABEL")
	}
	s.advance()
	return token.Value, nil
}

func isKeyToken(t Token) bool {
	return t.Type == TokenString || t.isName()
}
