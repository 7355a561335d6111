package value

import "golang.org/x/exp/constraints"

// TypeName returns the name of v's Kind (Kind.String), the string error
// messages report. type-of reports a type-tag Name instead, which is not
// always the same word: a list's type tag is seq.
func (v Value) TypeName() string {
	return v.Kind.String()
}

// IsEqual implements quill's value-equality (the "=" system function and
// everything built on it). Equality never errors: comparing values of
// different kinds is simply false, and a NaN float is never equal to
// anything, including itself, per spec.md's resolved Open Question.
func IsEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		// Integer/Float/Ratio compare across kinds only for ordering
		// (Compare), never for equality: "=" requires exact same kind.
		return false
	}
	switch a.Kind {
	case KindUnit:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindInteger:
		return a.Int.Cmp(b.Int) == 0
	case KindFloat:
		if isNaN(a.Float) || isNaN(b.Float) {
			return false
		}
		return a.Float == b.Float
	case KindRatio:
		return a.Ratio.Cmp(b.Ratio) == 0
	case KindChar:
		return a.Char == b.Char
	case KindString:
		return a.Str == b.Str
	case KindName:
		return a.Name == b.Name
	case KindList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !IsEqual(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case KindLambda:
		return a.Lambda.SameCode(b.Lambda)
	case KindForeign:
		return a.Foreign == b.Foreign
	case KindStructDef:
		return a.SDef == b.SDef
	case KindStruct:
		return a.Struct == b.Struct
	case KindError:
		return a.Err == b.Err
	case KindSystemFn:
		return a.Sys == b.Sys
	default:
		return false
	}
}

func isNaN(f float64) bool { return f != f }

// Compare orders a and b, returning -1, 0, or 1. It errors when the two
// values are not comparable: mismatched kinds (other than the numeric
// tower's internal cross-kind ordering) or a NaN operand on either side —
// spec.md's resolved Open Question: NaN participates in equality (always
// false) but never in ordering (always an error).
func Compare(a, b Value) (int, error) {
	if a.Kind == KindFloat && isNaN(a.Float) || b.Kind == KindFloat && isNaN(b.Float) {
		return 0, New(ErrTypeMismatch, "cannot order NaN")
	}
	if isNumeric(a.Kind) && isNumeric(b.Kind) {
		return compareNumeric(a, b)
	}
	if a.Kind != b.Kind {
		return 0, New(ErrTypeMismatch, "cannot compare "+a.TypeName()+" and "+b.TypeName())
	}
	switch a.Kind {
	case KindChar:
		return cmpRune(a.Char, b.Char), nil
	case KindString:
		return cmpString(a.Str, b.Str), nil
	case KindList:
		return compareList(a.List, b.List)
	default:
		return 0, New(ErrTypeMismatch, a.TypeName()+" is not ordered")
	}
}

func isNumeric(k Kind) bool { return k == KindInteger || k == KindFloat || k == KindRatio }

func compareNumeric(a, b Value) (int, error) {
	// Same-kind fast paths avoid widening precision loss.
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindInteger:
			return a.Int.Cmp(b.Int), nil
		case KindRatio:
			return a.Ratio.Cmp(b.Ratio), nil
		case KindFloat:
			return cmpFloat(a.Float, b.Float), nil
		}
	}
	af, err := numericToFloat(a)
	if err != nil {
		return 0, err
	}
	bf, err := numericToFloat(b)
	if err != nil {
		return 0, err
	}
	return cmpFloat(af, bf), nil
}

func numericToFloat(v Value) (float64, error) {
	switch v.Kind {
	case KindInteger:
		return v.Int.ToFloat64(), nil
	case KindFloat:
		return v.Float, nil
	case KindRatio:
		return v.Ratio.ToFloat64(), nil
	default:
		return 0, New(ErrTypeMismatch, "expected a number, found "+v.TypeName())
	}
}

func compareList(a, b []Value) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		c, err := Compare(a[i], b[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return cmpInt(len(a), len(b)), nil
}

// cmpOrdered is the three-way comparison every concrete ordering in this
// file reduces to; constraints.Ordered covers floats, runes, strings, and
// ints with one definition instead of four copies that could drift.
func cmpOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int { return cmpOrdered(a, b) }

func cmpRune(a, b rune) int { return cmpOrdered(a, b) }

func cmpString(a, b string) int { return cmpOrdered(a, b) }

func cmpInt(a, b int) int { return cmpOrdered(a, b) }
