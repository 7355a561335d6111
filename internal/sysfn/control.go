package sysfn

import "quill/internal/value"

// fnPanic raises a Panic error whose message is the display form of the
// optional argument, or "panic" when called with zero arguments. The
// argument value itself is not kept in the error.
func fnPanic(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Unit, value.New(value.ErrPanic, "panic")
	}
	return value.Unit, value.New(value.ErrPanic, displayValue(args[0]))
}
