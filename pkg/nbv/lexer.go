package nbv

import (
	"math"
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-tck/pkg/value"
)

// Lexer tokenizes literal value text
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	tokens []Token
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	return &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
		tokens: make([]Token, 0),
	}
}

// Tokenize converts the input string into tokens, ending with a TokenEOF
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.pos < len(l.input) {
		if isSpace(l.peek()) {
			l.advance()
			continue
		}

		token, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, token)
	}

	l.tokens = append(l.tokens, Token{
		Type:   TokenEOF,
		Pos:    l.pos,
		Line:   l.line,
		Column: l.column,
	})

	return l.tokens, nil
}

// nextToken reads the next token
func (l *Lexer) nextToken() (Token, error) {
	ch := l.peek()

	switch {
	case ch == '\'' || ch == '"':
		return l.readString()
	case isDigit(ch), ch == '-' && isDigit(l.peekAhead(1)):
		return l.readNumber()
	case isLabelStart(ch):
		return l.readLabel(), nil
	}

	if tokenType, ok := punctuation[ch]; ok {
		tok := l.makeToken(tokenType, string(ch))
		l.advance()
		return tok, nil
	}

	return Token{}, newError(ErrUnexpectedCharacter).
		span(string(ch), l.pos, l.line, l.column).
		build()
}

// readLabel reads an identifier, resolving sentinel keywords
func (l *Lexer) readLabel() Token {
	tok := l.makeToken(TokenLabel, "")
	start := l.pos
	for l.pos < len(l.input) && isLabelPart(l.peek()) {
		l.advance()
	}
	tok.Value = l.input[start:l.pos]

	if v, ok := value.Keyword(tok.Value); ok {
		tok.Literal = v
		switch v.Kind() {
		case value.KindEmpty:
			tok.Type = TokenEmpty
		case value.KindNull:
			tok.Type = TokenNull
		case value.KindBool:
			tok.Type = TokenBool
		}
	}
	return tok
}

// readNumber reads -?digits or -?digits.digits
func (l *Lexer) readNumber() (Token, error) {
	tok := l.makeToken(TokenInt, "")
	start := l.pos
	if l.peek() == '-' {
		l.advance()
	}
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekAhead(1)) {
		tok.Type = TokenFloat
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	tok.Value = l.input[start:l.pos]

	if tok.Type == TokenFloat {
		f, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil || math.IsInf(f, 0) {
			return Token{}, newError(ErrInvalidNumber).at(tok).detail("float out of range").build()
		}
		tok.Literal = value.FloatValue(f)
		return tok, nil
	}

	i, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return Token{}, newError(ErrInvalidNumber).at(tok).detail("integer out of range").build()
	}
	tok.Literal = value.IntValue(i)
	return tok, nil
}

// readString reads a string literal delimited by ' or ". The other quote
// character needs no escaping inside.
func (l *Lexer) readString() (Token, error) {
	tok := l.makeToken(TokenString, "")
	start := l.pos
	quote := l.advance()

	var sb strings.Builder
	for l.pos < len(l.input) && l.peek() != quote {
		if l.peek() == '\\' && l.pos+1 < len(l.input) {
			l.advance()
			switch esc := l.advance(); esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(l.advance())
	}

	if l.pos >= len(l.input) {
		return Token{}, newError(ErrUnterminatedString).
			span(l.input[start:], start, tok.Line, tok.Column).
			build()
	}
	l.advance() // closing quote

	tok.Value = l.input[start:l.pos]
	tok.Literal = value.StringValue(sb.String())
	return tok, nil
}

// Helper functions

func (l *Lexer) makeToken(tokenType TokenType, text string) Token {
	return Token{
		Type:   tokenType,
		Value:  text,
		Pos:    l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAhead(n int) byte {
	pos := l.pos + n
	if pos >= len(l.input) {
		return 0
	}
	return l.input[pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	l.column++
	if ch == '\n' {
		l.line++
		l.column = 1
	}
	return ch
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLabelStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isLabelPart(ch byte) bool {
	return isLabelStart(ch) || isDigit(ch)
}
