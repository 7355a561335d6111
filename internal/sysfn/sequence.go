package sysfn

import (
	"strings"
	"unicode/utf8"

	"quill/internal/value"
)

// asNonEmptyList requires v to be a non-empty list, per spec.md's
// invariant that KindList values are never empty — an empty sequence is
// Unit, so anything else reaching here with len(List)==0 is itself a bug
// upstream, not a user-facing condition.
func asNonEmptyList(v value.Value, who string) ([]value.Value, error) {
	if v.Kind != value.KindList {
		return nil, value.New(value.ErrTypeMismatch, who+" expects a list, found "+v.TypeName())
	}
	return v.List, nil
}

// listOrUnit collapses an empty slice to Unit, keeping spec.md's "List is
// never empty" invariant intact at every construction site.
func listOrUnit(elems []value.Value) value.Value {
	if len(elems) == 0 {
		return value.Unit
	}
	return value.NewList(elems)
}

func fnAppend(args []value.Value) (value.Value, error) {
	var out []value.Value
	for _, v := range args {
		switch v.Kind {
		case value.KindUnit:
			// nothing to append
		case value.KindList:
			out = append(out, v.List...)
		default:
			return value.Unit, value.New(value.ErrTypeMismatch, "append expects lists, found "+v.TypeName())
		}
	}
	return listOrUnit(out), nil
}

// fnConcat dispatches between list-mode and string-mode based on the
// first argument's kind; mixing modes thereafter is an error, per
// spec.md's resolved Open Question.
func fnConcat(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Unit, nil
	}
	switch args[0].Kind {
	case value.KindString:
		return concatString(args)
	case value.KindList, value.KindUnit:
		return concatList(args)
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "concat expects lists or strings, found "+args[0].TypeName())
	}
}

func concatList(args []value.Value) (value.Value, error) {
	var out []value.Value
	for _, v := range args {
		switch v.Kind {
		case value.KindUnit:
		case value.KindList:
			out = append(out, v.List...)
		default:
			return value.Unit, value.New(value.ErrTypeMismatch, "concat: expected a list, found "+v.TypeName()+" (cannot mix list and string arguments)")
		}
	}
	return listOrUnit(out), nil
}

func concatString(args []value.Value) (value.Value, error) {
	var b strings.Builder
	for _, v := range args {
		if v.Kind != value.KindString {
			return value.Unit, value.New(value.ErrTypeMismatch, "concat: expected a string, found "+v.TypeName()+" (cannot mix list and string arguments)")
		}
		b.WriteString(v.Str)
	}
	return value.NewString(b.String()), nil
}

// fnJoin is concat with a separator inserted between elements, dispatching
// on the separator's own kind the same way concat dispatches on its first
// argument.
func fnJoin(args []value.Value) (value.Value, error) {
	sep, rest := args[0], args[1:]
	switch sep.Kind {
	case value.KindString:
		return joinString(sep.Str, rest)
	case value.KindList, value.KindUnit:
		return joinList(sep, rest)
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "join expects a string or list separator, found "+sep.TypeName())
	}
}

func joinString(sep string, rest []value.Value) (value.Value, error) {
	parts := make([]string, 0, len(rest))
	for _, v := range rest {
		if v.Kind != value.KindString {
			return value.Unit, value.New(value.ErrTypeMismatch, "join: expected a string, found "+v.TypeName())
		}
		parts = append(parts, v.Str)
	}
	return value.NewString(strings.Join(parts, sep)), nil
}

func joinList(sep value.Value, rest []value.Value) (value.Value, error) {
	var sepElems []value.Value
	if sep.Kind == value.KindList {
		sepElems = sep.List
	}
	var out []value.Value
	for i, v := range rest {
		if v.Kind != value.KindList && v.Kind != value.KindUnit {
			return value.Unit, value.New(value.ErrTypeMismatch, "join: expected a list, found "+v.TypeName())
		}
		if i > 0 {
			out = append(out, sepElems...)
		}
		out = append(out, v.List...)
	}
	return listOrUnit(out), nil
}

func fnLen(args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind {
	case value.KindUnit:
		return wrapInt(0), nil
	case value.KindList:
		return wrapInt(len(v.List)), nil
	case value.KindString:
		return wrapInt(utf8.RuneCountInString(v.Str)), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "len expects a list or string, found "+v.TypeName())
	}
}

func fnFirst(args []value.Value) (value.Value, error) {
	elems, err := asNonEmptyList(args[0], "first")
	if err != nil {
		return value.Unit, err
	}
	return elems[0], nil
}

func fnTail(args []value.Value) (value.Value, error) {
	elems, err := asNonEmptyList(args[0], "tail")
	if err != nil {
		return value.Unit, err
	}
	return listOrUnit(elems[1:]), nil
}

func fnInit(args []value.Value) (value.Value, error) {
	elems, err := asNonEmptyList(args[0], "init")
	if err != nil {
		return value.Unit, err
	}
	return listOrUnit(elems[:len(elems)-1]), nil
}

// fnLast resolves spec.md's first Open Question directly: last on Unit is
// a type mismatch, not a special "empty list" case, because a quill List
// value can never be empty in the first place.
func fnLast(args []value.Value) (value.Value, error) {
	elems, err := asNonEmptyList(args[0], "last")
	if err != nil {
		return value.Unit, err
	}
	return elems[len(elems)-1], nil
}

func fnList(args []value.Value) (value.Value, error) {
	return listOrUnit(append([]value.Value(nil), args...)), nil
}

// fnSecond returns a list's second element, reporting OutOfBounds on a
// single-element list, matching ketos's fn_second.
func fnSecond(args []value.Value) (value.Value, error) {
	elems, err := asNonEmptyList(args[0], "second")
	if err != nil {
		return value.Unit, err
	}
	if len(elems) < 2 {
		return value.Unit, value.New(value.ErrOutOfBounds, "second index out of range")
	}
	return elems[1], nil
}

// fnReverse reverses a list in place order; Unit (the empty sequence)
// passes through unchanged, matching ketos's fn_reverse.
func fnReverse(args []value.Value) (value.Value, error) {
	v := args[0]
	if v.Kind == value.KindUnit {
		return value.Unit, nil
	}
	elems, err := asNonEmptyList(v, "reverse")
	if err != nil {
		return value.Unit, err
	}
	out := make([]value.Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return value.NewList(out), nil
}

// fnSlice takes a list/string and an exact [start, end) range, erroring on
// an out-of-bounds or inverted range, and on a string, refusing to split a
// UTF-8 rune in half.
func fnSlice(args []value.Value) (value.Value, error) {
	v := args[0]
	start, err := wantInt(args[1])
	if err != nil {
		return value.Unit, err
	}
	end, err := wantInt(args[2])
	if err != nil {
		return value.Unit, err
	}
	switch v.Kind {
	case value.KindList:
		if start < 0 || end > len(v.List) || start > end {
			return value.Unit, value.New(value.ErrOutOfBounds, "slice index out of range")
		}
		return listOrUnit(append([]value.Value(nil), v.List[start:end]...)), nil
	case value.KindString:
		runes := []rune(v.Str)
		if start < 0 || end > len(runes) || start > end {
			return value.Unit, value.New(value.ErrOutOfBounds, "slice index out of range")
		}
		return value.NewString(string(runes[start:end])), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "slice expects a list or string, found "+v.TypeName())
	}
}

func fnElt(args []value.Value) (value.Value, error) {
	v := args[0]
	i, err := wantInt(args[1])
	if err != nil {
		return value.Unit, err
	}
	switch v.Kind {
	case value.KindList:
		if i < 0 || i >= len(v.List) {
			return value.Unit, value.New(value.ErrOutOfBounds, "elt index out of range")
		}
		return v.List[i], nil
	case value.KindString:
		runes := []rune(v.Str)
		if i < 0 || i >= len(runes) {
			return value.Unit, value.New(value.ErrOutOfBounds, "elt index out of range")
		}
		return value.NewChar(runes[i]), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "elt expects a list or string, found "+v.TypeName())
	}
}

func fnChars(args []value.Value) (value.Value, error) {
	if args[0].Kind != value.KindString {
		return value.Unit, value.New(value.ErrTypeMismatch, "chars expects a string, found "+args[0].TypeName())
	}
	var elems []value.Value
	for _, r := range args[0].Str {
		elems = append(elems, value.NewChar(r))
	}
	return listOrUnit(elems), nil
}

// fnString ("as-string" in the table) renders a single char or string
// argument, matching ketos's fn_string — no list-of-chars mode, no
// multi-argument concatenation.
func fnString(args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Kind {
	case value.KindChar:
		return value.NewString(string(v.Char)), nil
	case value.KindString:
		return v, nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "as-string expects a char or string, found "+v.TypeName())
	}
}
