// Package nbv implements the literal value language used in scenario tables:
// scalars, null sentinels, lists, sets, maps, vertices, edges, paths and calls
// to registered functions.
package nbv

import (
	"github.com/dd0wney/cluso-tck/pkg/value"
)

// DefaultMaxDepth bounds how deeply literals may nest
const DefaultMaxDepth = 64

// Parser turns literal text into values. A Parser holds no per-call state and
// may be shared between goroutines.
type Parser struct {
	registry *Registry
	maxDepth int
}

// Option configures a Parser
type Option func(*Parser)

// WithRegistry sets the registry function calls are resolved against
func WithRegistry(r *Registry) Option {
	return func(p *Parser) {
		p.registry = r
	}
}

// WithMaxDepth sets the nesting limit; values below 1 keep the default
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// NewParser creates a new parser. Without options it uses DefaultRegistry
// and DefaultMaxDepth.
func NewParser(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	return p
}

// Registry returns the registry used for function calls
func (p *Parser) Registry() *Registry {
	return p.registry
}

// Parse parses a single literal. Trailing input after the literal is an error.
func (p *Parser) Parse(text string) (value.Value, error) {
	tokens, err := NewLexer(text).Tokenize()
	if err != nil {
		return value.Value{}, err
	}

	s := &parseState{
		tokens:   tokens,
		registry: p.registry,
		maxDepth: p.maxDepth,
	}

	v, err := s.parseExpr()
	if err != nil {
		return value.Value{}, err
	}
	if !s.isAtEnd() {
		return value.Value{}, s.unexpected("end of input")
	}
	return v, nil
}

// Parse parses text with a default parser
func Parse(text string) (value.Value, error) {
	return NewParser().Parse(text)
}

// parseState is the cursor over one token stream
type parseState struct {
	tokens   []Token
	pos      int
	depth    int
	registry *Registry
	maxDepth int
}

// parseExpr parses any literal
func (s *parseState) parseExpr() (value.Value, error) {
	token := s.peek()

	switch token.Type {
	case TokenEmpty, TokenNull, TokenBool, TokenInt, TokenFloat, TokenString:
		s.advance()
		return token.Literal, nil

	case TokenLeftBracket:
		return s.nested(s.parseList)

	case TokenLeftBrace:
		return s.nested(s.parseSetOrMap)

	case TokenLeftParen:
		return s.nested(func() (value.Value, error) {
			v, err := s.parseVertex()
			if err != nil {
				return value.Value{}, err
			}
			return value.VertexValue(v), nil
		})

	case TokenMinus:
		return s.nested(s.parseEdgeValue)

	case TokenLess:
		switch s.peekAhead(1).Type {
		case TokenMinus:
			return s.nested(s.parseEdgeValue)
		case TokenLeftParen:
			return s.nested(s.parsePath)
		}
		s.advance()
		return value.Value{}, s.unexpected("'-' or '(' after '<'")

	case TokenLabel:
		if s.peekAhead(1).Type == TokenLeftParen {
			return s.nested(s.parseCall)
		}
		return value.Value{}, newError(ErrUnexpectedToken).at(token).
			detail("bare label is not a value; quote strings or call a function").build()

	default:
		return value.Value{}, s.unexpected("a value")
	}
}

// nested runs fn one level deeper, enforcing the depth limit
func (s *parseState) nested(fn func() (value.Value, error)) (value.Value, error) {
	if s.depth >= s.maxDepth {
		return value.Value{}, newError(ErrMaxDepth).at(s.peek()).
			detail("limit is %d", s.maxDepth).build()
	}
	s.depth++
	defer func() { s.depth-- }()
	return fn()
}

// parseCall parses name(args...) and evaluates it through the registry
func (s *parseState) parseCall() (value.Value, error) {
	nameToken := s.advance()
	fn, err := s.registry.Lookup(nameToken.Value)
	if err != nil {
		return value.Value{}, newError(ErrUnknownFunction).at(nameToken).build()
	}
	s.advance() // consume (

	args, err := s.parseItems(TokenRightParen)
	if err != nil {
		return value.Value{}, err
	}

	result, err := fn(args...)
	if err != nil {
		return value.Value{}, newError(ErrFunctionFailed).at(nameToken).detail("%v", err).build()
	}
	return result, nil
}

// parseItems parses a possibly empty comma-separated expression list and the
// closing token
func (s *parseState) parseItems(closing TokenType) ([]value.Value, error) {
	items := make([]value.Value, 0)
	if s.peek().Type == closing {
		s.advance()
		return items, nil
	}

	for {
		item, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if s.peek().Type != TokenComma {
			break
		}
		s.advance()
	}

	if _, err := s.expect(closing); err != nil {
		return nil, err
	}
	return items, nil
}

// Helper functions

func (s *parseState) peek() Token {
	if s.pos >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos]
}

func (s *parseState) peekAhead(n int) Token {
	pos := s.pos + n
	if pos >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[pos]
}

func (s *parseState) advance() Token {
	token := s.peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return token
}

func (s *parseState) expect(tokenType TokenType) (Token, error) {
	if s.peek().Type != tokenType {
		return Token{}, s.unexpected(tokenType.String())
	}
	return s.advance(), nil
}

func (s *parseState) isAtEnd() bool {
	return s.peek().Type == TokenEOF
}

// unexpected reports the current token as not matching what was wanted
func (s *parseState) unexpected(want string) error {
	tok := s.peek()
	return newError(ErrUnexpectedToken).at(tok).
		detail("expected %s, got %s", want, tok.Type).build()
}
