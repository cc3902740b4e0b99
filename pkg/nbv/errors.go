package nbv

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrUnterminatedString  = errors.New("unterminated string")
	ErrInvalidNumber       = errors.New("invalid number")
	ErrUnknownFunction     = errors.New("unknown function")
	ErrFunctionFailed      = errors.New("function call failed")
	ErrUnknownVariable     = errors.New("unknown variable")
	ErrDuplicateKey        = errors.New("duplicate map key")
	ErrMaxDepth            = errors.New("maximum nesting depth exceeded")
	ErrMalformedTable      = errors.New("malformed table")
)

// ParseError reports literal text that does not match the grammar. A parse
// either yields a complete value or a ParseError, never a partial value.
type ParseError struct {
	Fragment string // offending text span
	Pos      int    // byte offset of the fragment in the input
	Line     int
	Column   int
	Detail   string // what the parser expected, if known
	Cause    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v at line %d, column %d", e.Cause, e.Line, e.Column)
	if e.Fragment != "" {
		msg += fmt.Sprintf(" near %q", e.Fragment)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the underlying cause for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *ParseError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// errorBuilder provides a fluent interface for building ParseErrors.
type errorBuilder struct {
	err ParseError
}

func newError(cause error) *errorBuilder {
	return &errorBuilder{err: ParseError{Cause: cause, Line: 1, Column: 1}}
}

// at positions the error on a token
func (b *errorBuilder) at(tok Token) *errorBuilder {
	b.err.Pos = tok.Pos
	b.err.Line = tok.Line
	b.err.Column = tok.Column
	if tok.Type == TokenEOF {
		b.err.Fragment = "<end of input>"
	} else {
		b.err.Fragment = tok.Value
	}
	return b
}

// span positions the error on raw input text
func (b *errorBuilder) span(fragment string, pos, line, column int) *errorBuilder {
	b.err.Fragment = fragment
	b.err.Pos = pos
	b.err.Line = line
	b.err.Column = column
	return b
}

func (b *errorBuilder) detail(format string, args ...any) *errorBuilder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

func (b *errorBuilder) build() *ParseError {
	return &b.err
}

// IsParseError returns true if err is or wraps a *ParseError
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
