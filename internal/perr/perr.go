// Package perr implements the parse-time error taxonomy produced by
// internal/lexer and internal/reader.
package perr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Span identifies a byte range in source text. Lo is inclusive, Hi is
// exclusive; Lo == Hi denotes a zero-width position (e.g. unexpected EOF).
type Span struct {
	Lo, Hi int
}

// Kind enumerates the ways a lex/parse can fail, matching spec.md §6's
// parse error taxonomy.
type Kind int

const (
	// UnexpectedChar is produced by the lexer for a byte that begins no
	// valid token.
	UnexpectedChar Kind = iota
	// UnexpectedEOF is produced when input ends mid-token or mid-group.
	UnexpectedEOF
	// MissingCloseParen is produced when a '(' is never matched by a ')'.
	MissingCloseParen
	// UnexpectedCloseParen is produced by a ')' with no matching '('.
	UnexpectedCloseParen
	// UnbalancedComma is produced by a comma/comma-at outside a
	// quasiquote, or nested deeper than the enclosing backtick count.
	UnbalancedComma
	// InvalidLiteral is produced by a numeric, char, or string literal
	// that is syntactically ill-formed (bad escape, bad digit for its
	// base, zero ratio denominator, etc). An unterminated string is
	// UnexpectedEOF instead.
	InvalidLiteral
	// TrailingQuote is produced when a quote/quasiquote/comma marker is
	// the last token of the input, with nothing following to quote.
	TrailingQuote
)

func (k Kind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	case UnexpectedEOF:
		return "unexpected end of input"
	case MissingCloseParen:
		return "missing close parenthesis"
	case UnexpectedCloseParen:
		return "unexpected close parenthesis"
	case UnbalancedComma:
		return "unbalanced comma"
	case InvalidLiteral:
		return "invalid literal"
	case TrailingQuote:
		return "trailing quote with nothing to quote"
	default:
		return "parse error"
	}
}

// Error is a parse-time error with the span of source text it occurred at.
// It wraps github.com/pkg/errors so a host gets a stack trace pointing at
// the reader call site that produced it, not just the string message.
type Error struct {
	Span Span
	Kind Kind
	// Detail adds kind-specific context (e.g. the bad character, or the
	// expected digit base) to the generic Kind message.
	Detail string
	cause  error
}

// New builds an Error at span with the given kind and optional detail.
func New(span Span, kind Kind, detail string) error {
	e := &Error{Span: span, Kind: kind, Detail: detail}
	e.cause = errors.WithStack(e)
	return e.cause
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%d:%d: %s", e.Span.Lo, e.Span.Hi, e.Kind)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Span.Lo, e.Span.Hi, e.Kind, e.Detail)
}

// As supports errors.As(err, *Error) unwrapping past the pkg/errors stack
// frame New() adds.
func As(err error, target **Error) bool {
	return errors.As(err, target)
}
