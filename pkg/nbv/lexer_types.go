package nbv

import (
	"fmt"

	"github.com/dd0wney/cluso-tck/pkg/value"
)

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Value   string      // raw text of the token
	Literal value.Value // decoded value for literal and keyword tokens
	Pos     int
	Line    int
	Column  int
}

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota

	// Sentinel keywords
	TokenEmpty
	TokenNull
	TokenBool

	// Literals and identifiers
	TokenInt
	TokenFloat
	TokenString
	TokenLabel

	// Delimiters
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftBrace    // {
	TokenRightBrace   // }
	TokenLess         // <
	TokenGreater      // >
	TokenAt           // @
	TokenMinus        // -
	TokenColon        // :
	TokenComma        // ,
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenEmpty:
		return "EMPTY"
	case TokenNull:
		return "NULL"
	case TokenBool:
		return "BOOLEAN"
	case TokenInt:
		return "INT"
	case TokenFloat:
		return "FLOAT"
	case TokenString:
		return "STRING"
	case TokenLabel:
		return "LABEL"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	case TokenLeftBracket:
		return "'['"
	case TokenRightBracket:
		return "']'"
	case TokenLeftBrace:
		return "'{'"
	case TokenRightBrace:
		return "'}'"
	case TokenLess:
		return "'<'"
	case TokenGreater:
		return "'>'"
	case TokenAt:
		return "'@'"
	case TokenMinus:
		return "'-'"
	case TokenColon:
		return "':'"
	case TokenComma:
		return "','"
	default:
		return fmt.Sprintf("Token(%d)", t)
	}
}

// isKeyword reports whether the token is one of the sentinel words. Keywords
// are still accepted where only a name can appear (tag, edge type, map key).
func (t Token) isKeyword() bool {
	return t.Type == TokenEmpty || t.Type == TokenNull || t.Type == TokenBool
}

// isName reports whether the token can serve as a tag, edge type or key name
func (t Token) isName() bool {
	return t.Type == TokenLabel || t.isKeyword()
}

var punctuation = map[byte]TokenType{
	'(': TokenLeftParen,
	')': TokenRightParen,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
	'<': TokenLess,
	'>': TokenGreater,
	'@': TokenAt,
	'-': TokenMinus,
	':': TokenColon,
	',': TokenComma,
}
