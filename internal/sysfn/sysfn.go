// Package sysfn implements quill's fixed table of 61 system functions —
// the primitives every GlobalScope sees through internal/scope's
// MasterScope without any import. Grounded function-for-function on
// ketos's function.rs SYSTEM_FNS table and its fn_* bodies, reworked into
// the teacher's per-concern file split (internal/stdlib/*_funcs.go) and
// Go calling convention.
package sysfn

import (
	"github.com/dustin/go-humanize"

	"quill/internal/value"
)

// ArityKind discriminates the three call-count shapes ketos's Arity enum
// distinguishes.
type ArityKind int

const (
	ArityExact ArityKind = iota
	ArityMin
	ArityRange
)

// Arity describes how many arguments a system function accepts.
type Arity struct {
	Kind ArityKind
	Min  int
	Max  int // meaningful only for ArityRange
}

// Exact builds an Arity requiring exactly n arguments.
func Exact(n int) Arity { return Arity{Kind: ArityExact, Min: n, Max: n} }

// AtLeast builds an Arity requiring n or more arguments.
func AtLeast(n int) Arity { return Arity{Kind: ArityMin, Min: n} }

// Between builds an Arity requiring between min and max arguments,
// inclusive.
func Between(min, max int) Arity { return Arity{Kind: ArityRange, Min: min, Max: max} }

// Accepts reports whether n arguments satisfy a.
func (a Arity) Accepts(n int) bool {
	switch a.Kind {
	case ArityExact:
		return n == a.Min
	case ArityMin:
		return n >= a.Min
	case ArityRange:
		return n >= a.Min && n <= a.Max
	default:
		return false
	}
}

// String renders a the way ketos's Arity::Display does: "1 argument",
// "at least 2 arguments", "2 to 3 arguments" — pluralised, with each count
// written as digits through go-humanize's Comma (never spelled out as words).
func (a Arity) String() string {
	switch a.Kind {
	case ArityExact:
		return plural(a.Min)
	case ArityMin:
		return "at least " + plural(a.Min)
	case ArityRange:
		return humanize.Comma(int64(a.Min)) + " to " + plural(a.Max)
	default:
		return "an unknown number of arguments"
	}
}

func plural(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return humanize.Comma(int64(n)) + " arguments"
}

// Callback is the Go shape of a system function's implementation.
// Arguments may be mutated or moved out of (via value.Take) in place,
// matching spec.md's destructive-argument-consumption convention.
type Callback func(args []value.Value) (value.Value, error)

// SystemFn pairs a name, arity, and callback, and implements
// value.Applicable so internal/scope's MasterScope can store it as an
// ordinary callable Value.
type SystemFn struct {
	Name     string
	Arity    Arity
	Callback Callback
}

// Call checks arity and, if it's satisfied, invokes the callback.
func (f *SystemFn) Call(args []value.Value) (value.Value, error) {
	if err := f.CheckArity(len(args)); err != nil {
		return value.Unit, err
	}
	return f.Callback(args)
}

// CheckArity reports an ErrArity error if n does not satisfy f's Arity.
func (f *SystemFn) CheckArity(n int) error {
	if !f.Arity.Accepts(n) {
		return value.New(value.ErrArity, f.Name+" expects "+f.Arity.String())
	}
	return nil
}

func (f *SystemFn) String() string { return f.Name }

// Table holds the 61 system functions in the exact order
// internal/name.SystemFnName expects: arithmetic, comparison, predicates,
// sequences, the numeric tower conversions, structs, I/O.
var Table = [61]*SystemFn{
	{"+", AtLeast(0), fnAdd},
	{"-", AtLeast(1), fnSub},
	{"*", AtLeast(0), fnMul},
	{"^", Exact(2), fnPow},
	{"/", AtLeast(1), fnDiv},
	{"//", AtLeast(1), fnFloorDiv},
	{"rem", Exact(2), fnRem},
	{"<<", Exact(2), fnShl},
	{">>", Exact(2), fnShr},
	{"=", AtLeast(2), fnEq},
	{"/=", AtLeast(2), fnNe},
	{"<", AtLeast(2), fnLt},
	{">", AtLeast(2), fnGt},
	{"<=", AtLeast(2), fnLe},
	{">=", AtLeast(2), fnGe},
	{"zero?", AtLeast(1), fnZero},
	{"max", AtLeast(1), fnMax},
	{"min", AtLeast(1), fnMin},
	{"append", AtLeast(1), fnAppend},
	{"elt", Exact(2), fnElt},
	{"concat", AtLeast(1), fnConcat},
	{"join", AtLeast(1), fnJoin},
	{"len", Exact(1), fnLen},
	{"slice", Exact(3), fnSlice},
	{"first", Exact(1), fnFirst},
	{"second", Exact(1), fnSecond},
	{"last", Exact(1), fnLast},
	{"init", Exact(1), fnInit},
	{"tail", Exact(1), fnTail},
	{"list", AtLeast(0), fnList},
	{"reverse", Exact(1), fnReverse},
	{"abs", Exact(1), fnAbs},
	{"ceil", Exact(1), fnCeil},
	{"floor", Exact(1), fnFloor},
	{"round", Exact(1), fnRound},
	{"trunc", Exact(1), fnTrunc},
	{"int", Exact(1), fnInt},
	{"as-float", Exact(1), fnFloat},
	{"inf", AtLeast(0), fnInf},
	{"nan", AtLeast(0), fnNaN},
	{"denom", Exact(1), fnDenom},
	{"fract", Exact(1), fnFract},
	{"numer", Exact(1), fnNumer},
	{"rat", Between(1, 2), fnRat},
	{"recip", Exact(1), fnRecip},
	{"chars", Exact(1), fnChars},
	{"as-string", Exact(1), fnString},
	{"id", Exact(1), fnID},
	{"is", Exact(2), fnIs},
	{"is-instance", Exact(2), fnIsInstance},
	{"null", Exact(1), fnNull},
	{"type-of", Exact(1), fnTypeOf},
	{".", Exact(2), fnDot},
	{".=", AtLeast(1), fnDotEq},
	{"new", AtLeast(1), fnNew},
	{"format", AtLeast(1), fnFormat},
	{"print", AtLeast(1), fnPrint},
	{"println", AtLeast(1), fnPrintln},
	{"panic", Between(0, 1), fnPanic},
	{"xor", Exact(2), fnXor},
	{"not", Exact(1), fnNot},
}
