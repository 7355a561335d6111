package value

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind enumerates quill's runtime (as opposed to parse-time, see
// internal/perr) error taxonomy, per spec.md §6.
type ErrKind int

const (
	// ErrTypeMismatch: an operand had the wrong kind for the operation.
	ErrTypeMismatch ErrKind = iota
	// ErrArity: a lambda or system function was called with the wrong
	// number of arguments.
	ErrArity
	// ErrUnboundName: a name had no binding in the reachable scope chain.
	ErrUnboundName
	// ErrDivideByZero: integer or ratio division/remainder by zero.
	ErrDivideByZero
	// ErrOutOfBounds: a list/string index or slice range was invalid.
	ErrOutOfBounds
	// ErrOverflow: a numeric conversion did not fit its target width.
	ErrOverflow
	// ErrImmutable: an attempt to redefine a standard value or system
	// operator name.
	ErrImmutable
	// ErrDeadScope: a Lambda's weak scope reference could not be
	// upgraded — its defining scope has been collected.
	ErrDeadScope
	// ErrPanic: user code called the `panic` system function.
	ErrPanic
	// ErrFieldError: a struct literal or field access named a field its
	// StructDef does not declare.
	ErrFieldError
	// ErrFieldTypeError: a value assigned to a struct field did not match
	// the field's declared type.
	ErrFieldTypeError
	// ErrDuplicateField: a struct literal supplied the same field name
	// more than once.
	ErrDuplicateField
	// ErrMissingField: a struct literal omitted a field its StructDef
	// requires.
	ErrMissingField
	// ErrOddKeywordParams: a keyword-pair argument list (`:key value`
	// repeated) had an odd number of trailing arguments.
	ErrOddKeywordParams
)

func (k ErrKind) String() string {
	switch k {
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrArity:
		return "arity error"
	case ErrUnboundName:
		return "unbound name"
	case ErrDivideByZero:
		return "divide by zero"
	case ErrOutOfBounds:
		return "out of bounds"
	case ErrOverflow:
		return "overflow"
	case ErrImmutable:
		return "immutable"
	case ErrDeadScope:
		return "dead scope"
	case ErrPanic:
		return "panic"
	case ErrFieldError:
		return "field error"
	case ErrFieldTypeError:
		return "field type error"
	case ErrDuplicateField:
		return "duplicate field"
	case ErrMissingField:
		return "missing field"
	case ErrOddKeywordParams:
		return "odd keyword params"
	default:
		return "error"
	}
}

// Error is quill's runtime error value. It is itself a Value (KindError),
// so user code can catch and inspect it like any other value, and it also
// implements Go's error interface so host code calling into quill gets a
// normal Go error. Every Error is created through New, which wraps it in a
// github.com/pkg/errors stack trace at the point of construction — the
// same "wrap where it happens" discipline internal/perr uses for parse
// errors.
type Error struct {
	Kind    ErrKind
	Message string
	// CallStack records the names of lambdas/system functions active when
	// the error was constructed, innermost first.
	CallStack []string
	cause     error
}

func (e *Error) Error() string {
	if len(e.CallStack) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (in %s)", e.Kind, e.Message, e.CallStack[0])
}

// New builds an Error and wraps it with a stack trace.
func New(kind ErrKind, message string) error {
	e := &Error{Kind: kind, Message: message}
	e.cause = errors.WithStack(e)
	return e.cause
}

// WithStackFrame returns a copy of err with name pushed onto its call
// stack, for a lambda/system function to annotate an error as it
// propagates back through its own call frame.
func WithStackFrame(err error, frame string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	cp := *e
	cp.CallStack = append([]string{frame}, cp.CallStack...)
	cp.cause = errors.WithStack(&cp)
	return cp.cause
}

// AsError unwraps err (possibly wrapped by pkg/errors) back to its
// underlying *Error, if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
