package sysfn

import (
	"quill/internal/name"
	"quill/internal/value"
)

func fnNot(args []value.Value) (value.Value, error) {
	if args[0].Kind != value.KindBool {
		return value.Unit, value.New(value.ErrTypeMismatch, "not expects a bool, found "+args[0].TypeName())
	}
	return value.NewBool(!args[0].Bool), nil
}

func fnNull(args []value.Value) (value.Value, error) {
	return value.NewBool(args[0].Kind == value.KindUnit), nil
}

func fnID(args []value.Value) (value.Value, error) {
	return args[0], nil
}

// typeTagIndex maps a runtime Kind to its position in name's type-tag
// table (see internal/name's typeTagNames, which this must track exactly:
// unit, integer, float, ratio, bool, string, char, seq, lambda, foreign,
// struct-def, struct, name, error).
func typeTagIndex(k value.Kind) (int, bool) {
	switch k {
	case value.KindUnit:
		return 0, true
	case value.KindInteger:
		return 1, true
	case value.KindFloat:
		return 2, true
	case value.KindRatio:
		return 3, true
	case value.KindBool:
		return 4, true
	case value.KindString:
		return 5, true
	case value.KindChar:
		return 6, true
	case value.KindList:
		return 7, true
	case value.KindLambda, value.KindSystemFn:
		return 8, true
	case value.KindForeign:
		return 9, true
	case value.KindStructDef:
		return 10, true
	case value.KindStruct:
		return 11, true
	case value.KindName:
		return 12, true
	case value.KindError:
		return 13, true
	default:
		return 0, false
	}
}

func fnTypeOf(args []value.Value) (value.Value, error) {
	idx, ok := typeTagIndex(args[0].Kind)
	if !ok {
		return value.Unit, value.New(value.ErrTypeMismatch, "cannot take type-of an unevaluated quote form")
	}
	return value.NewName(name.TypeTagName(idx)), nil
}

// fnIs checks whether the second argument's runtime type matches the
// first, a Name naming one of the 14 type tags (as produced by type-of or
// the quoted type-tag identifiers themselves) — `(is 'integer 1)` reads
// type first, value second.
func fnIs(args []value.Value) (value.Value, error) {
	tag, v := args[0], args[1]
	if tag.Kind != value.KindName {
		return value.Unit, value.New(value.ErrTypeMismatch, "is expects a type name, found "+tag.TypeName())
	}
	idx, ok := typeTagIndex(v.Kind)
	if !ok {
		return value.NewBool(false), nil
	}
	return value.NewBool(name.TypeTagName(idx) == tag.Name), nil
}

// fnIsInstance checks whether a struct value is an instance of a specific
// StructDef (pointer identity, not just "is a struct").
func fnIsInstance(args []value.Value) (value.Value, error) {
	v, def := args[0], args[1]
	if def.Kind != value.KindStructDef {
		return value.Unit, value.New(value.ErrTypeMismatch, "is-instance expects a struct-def, found "+def.TypeName())
	}
	if v.Kind != value.KindStruct {
		return value.NewBool(false), nil
	}
	return value.NewBool(v.Struct.Def == def.SDef), nil
}
