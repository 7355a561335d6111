package sysfn

import (
	"fmt"

	"quill/internal/format"
	"quill/internal/iowriter"
	"quill/internal/value"
)

// Stdout is the shared writer print/println write through. A host
// embedding quill can replace it (e.g. to capture output into a buffer
// instead of the process's real stdout).
var Stdout iowriter.Writer = iowriter.NewStdout()

// valuer adapts a value.Value to format.Valuer without format importing
// value (see internal/format's own doc comment on Valuer).
type valuer struct{ v value.Value }

func (w valuer) Display() string { return displayValue(w.v) }
func (w valuer) Debug() string   { return debugValue(w.v) }

func displayValue(v value.Value) string {
	switch v.Kind {
	case value.KindUnit:
		return "()"
	case value.KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case value.KindInteger:
		return v.Int.String()
	case value.KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case value.KindRatio:
		return v.Ratio.String()
	case value.KindChar:
		return string(v.Char)
	case value.KindString:
		return v.Str
	case value.KindName:
		return nameString(v.Name)
	case value.KindList:
		return displayList(v.List)
	default:
		return "#<" + v.TypeName() + ">"
	}
}

func displayList(elems []value.Value) string {
	out := "("
	for i, e := range elems {
		if i > 0 {
			out += " "
		}
		out += displayValue(e)
	}
	return out + ")"
}

func debugValue(v value.Value) string {
	switch v.Kind {
	case value.KindString:
		return fmt.Sprintf("%q", v.Str)
	case value.KindChar:
		return fmt.Sprintf("#\\%c", v.Char)
	default:
		return displayValue(v)
	}
}

func fnFormat(args []value.Value) (value.Value, error) {
	pattern := args[0]
	if pattern.Kind != value.KindString {
		return value.Unit, value.New(value.ErrTypeMismatch, "format expects a string pattern, found "+pattern.TypeName())
	}
	rest := make([]format.Valuer, len(args)-1)
	for i, v := range args[1:] {
		rest[i] = valuer{v}
	}
	s, err := format.String(pattern.Str, rest)
	if err != nil {
		return value.Unit, value.New(value.ErrTypeMismatch, err.Error())
	}
	return value.NewString(s), nil
}

func fnPrint(args []value.Value) (value.Value, error) {
	for _, v := range args {
		if err := Stdout.WriteString(displayValue(v)); err != nil {
			return value.Unit, value.New(value.ErrTypeMismatch, err.Error())
		}
	}
	return value.Unit, Stdout.Flush()
}

func fnPrintln(args []value.Value) (value.Value, error) {
	if _, err := fnPrint(args); err != nil {
		return value.Unit, err
	}
	if err := Stdout.WriteString("\n"); err != nil {
		return value.Unit, value.New(value.ErrTypeMismatch, err.Error())
	}
	return value.Unit, Stdout.Flush()
}
