// Package format implements the string-formatting directive language the
// `format` system function uses; print/println convert their arguments
// without it. spec.md §6 names a full format-string
// dialect as an external collaborator; this is a minimal concrete default
// covering the directives ketos's own fn_format exercises (~a display,
// ~s write/debug, ~% newline, ~~ literal tilde) so format is usable
// without a host supplying a richer implementation.
package format

import (
	"strconv"
	"strings"
)

// Valuer is the minimal surface format needs from a quill Value, kept
// decoupled from internal/value so format has no import-cycle exposure to
// the rest of the core (sysfn, which does depend on both, adapts its
// Values to this interface at the call site).
type Valuer interface {
	// Display renders the value the way `print`/~a would (no quoting).
	Display() string
	// Debug renders the value the way `write`/~s would (strings quoted,
	// chars as #\x, etc).
	Debug() string
}

// String formats pattern, substituting each ~a/~s directive in turn with
// the next element of args, ~% with a newline, and ~~ with a literal '~'.
// It errors if pattern references more arguments than are supplied.
func String(pattern string, args []Valuer) (string, error) {
	var b strings.Builder
	i := 0
	runes := []rune(pattern)
	for pos := 0; pos < len(runes); pos++ {
		c := runes[pos]
		if c != '~' {
			b.WriteRune(c)
			continue
		}
		pos++
		if pos >= len(runes) {
			return "", &Error{Message: "trailing ~ in format string"}
		}
		switch runes[pos] {
		case 'a', 'A':
			v, err := next(args, &i, pattern)
			if err != nil {
				return "", err
			}
			b.WriteString(v.Display())
		case 's', 'S':
			v, err := next(args, &i, pattern)
			if err != nil {
				return "", err
			}
			b.WriteString(v.Debug())
		case '%':
			b.WriteByte('\n')
		case '~':
			b.WriteByte('~')
		default:
			return "", &Error{Message: "unknown format directive ~" + strconv.QuoteRune(runes[pos])}
		}
	}
	return b.String(), nil
}

func next(args []Valuer, i *int, pattern string) (Valuer, error) {
	if *i >= len(args) {
		return nil, &Error{Message: "format string " + strconv.Quote(pattern) + " references more arguments than were given"}
	}
	v := args[*i]
	*i++
	return v, nil
}

// Error reports a malformed format string or directive/argument mismatch.
type Error struct{ Message string }

func (e *Error) Error() string { return "format: " + e.Message }
