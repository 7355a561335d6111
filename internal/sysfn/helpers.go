package sysfn

import (
	"quill/internal/numeric"
	"quill/internal/value"
)

// wrapInt builds an Integer Value from a Go int, for system functions
// that report a count or index back to quill code.
func wrapInt(n int) value.Value {
	return value.NewInteger(numeric.NewInteger(int64(n)))
}

// wantInt requires v to be an Integer that fits a platform int, the
// common case for index/length/range arguments.
func wantInt(v value.Value) (int, error) {
	if v.Kind != value.KindInteger {
		return 0, value.New(value.ErrTypeMismatch, "expected an integer, found "+v.TypeName())
	}
	i, err := v.Int.ToInt()
	if err != nil {
		return 0, value.New(value.ErrOverflow, err.Error())
	}
	return i, nil
}
