// Package value implements quill's tagged-union Value model: the single
// concrete type every other package (reader, sysfn, scope) passes around.
// Per spec.md §9 this is deliberately NOT an interface-dispatch hierarchy —
// Value is one struct with a Kind discriminant and one populated field per
// kind, exactly the sum-type shape ketos's Rust `enum Value` has.
package value

import (
	"quill/internal/code"
	"quill/internal/name"
	"quill/internal/numeric"
)

// Kind discriminates which field of a Value is populated.
type Kind int

const (
	KindUnit Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindRatio
	KindChar
	KindString
	KindName
	KindList
	KindLambda
	KindForeign
	KindStructDef
	KindStruct
	KindError
	KindQuote
	KindQuasiquote
	KindComma
	KindCommaAt
	KindSystemFn
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindRatio:
		return "ratio"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindName:
		return "name"
	case KindList:
		return "list"
	case KindLambda:
		return "lambda"
	case KindForeign:
		return "foreign"
	case KindStructDef:
		return "struct-def"
	case KindStruct:
		return "struct"
	case KindError:
		return "error"
	case KindQuote, KindQuasiquote, KindComma, KindCommaAt:
		return "quoted"
	case KindSystemFn:
		return "lambda"
	default:
		return "unknown"
	}
}

// Value is quill's single runtime value representation. The zero Value is
// Unit. Only the field matching Kind is meaningful; Go's zero values make
// every other field harmless to leave unset.
type Value struct {
	Kind Kind

	Bool    bool
	Int     numeric.Integer
	Float   float64
	Ratio   numeric.Ratio
	Char    rune
	Str     string
	Name    name.Name
	List    []Value
	Lambda  *Lambda
	Foreign Foreign
	SDef    *StructDef
	Struct  *Struct
	Err     *Error
	Sys     Applicable

	// Quoted holds the wrapped value for KindQuote/KindQuasiquote/
	// KindComma/KindCommaAt. Depth counts nesting ('''x has Depth 3;
	// ,,x inside a double backquote has Depth 2).
	Quoted *Value
	Depth  uint
}

// Unit is the single value of unit type, quill's "no meaningful result".
var Unit = Value{Kind: KindUnit}

// NewBool wraps b.
func NewBool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NewInteger wraps i.
func NewInteger(i numeric.Integer) Value { return Value{Kind: KindInteger, Int: i} }

// NewFloat wraps f.
func NewFloat(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// NewRatio wraps r.
func NewRatio(r numeric.Ratio) Value { return Value{Kind: KindRatio, Ratio: r} }

// NewChar wraps c.
func NewChar(c rune) Value { return Value{Kind: KindChar, Char: c} }

// NewString wraps s.
func NewString(s string) Value { return Value{Kind: KindString, Str: s} }

// NewName wraps n.
func NewName(n name.Name) Value { return Value{Kind: KindName, Name: n} }

// NewList wraps elems. Per spec.md §3, List is always non-empty by
// invariant at construction sites that mean "a list value" — an empty
// sequence is represented by Unit, never Value{Kind: KindList, List: nil}.
// NewList does not itself enforce this; callers that can produce an empty
// slice must collapse it to Unit (see sysfn's listOrUnit helper).
func NewList(elems []Value) Value { return Value{Kind: KindList, List: elems} }

// NewError wraps e.
func NewError(e *Error) Value { return Value{Kind: KindError, Err: e} }

// Quote wraps v one level deep, or increases an existing quote's depth by
// one (so quoting an already-quoted value accumulates rather than nests
// two distinct kinds).
func Quote(v Value) Value {
	if v.Kind == KindQuote {
		return Value{Kind: KindQuote, Quoted: v.Quoted, Depth: v.Depth + 1}
	}
	return Value{Kind: KindQuote, Quoted: &v, Depth: 1}
}

// Quasiquote wraps v as a quasiquote template.
func Quasiquote(v Value) Value {
	if v.Kind == KindQuasiquote {
		return Value{Kind: KindQuasiquote, Quoted: v.Quoted, Depth: v.Depth + 1}
	}
	return Value{Kind: KindQuasiquote, Quoted: &v, Depth: 1}
}

// Comma wraps v as an unquote inside a quasiquote template.
func Comma(v Value) Value {
	if v.Kind == KindComma {
		return Value{Kind: KindComma, Quoted: v.Quoted, Depth: v.Depth + 1}
	}
	return Value{Kind: KindComma, Quoted: &v, Depth: 1}
}

// CommaAt wraps v as an unquote-splice inside a quasiquote template.
// Unlike Comma, CommaAt never accumulates depth: ",@,@x" is a syntax error
// the reader rejects (UnbalancedComma), not a value this constructor sees.
func CommaAt(v Value) Value {
	return Value{Kind: KindCommaAt, Quoted: &v}
}

// Foreign is the capability interface a host embeds opaque native values
// through. quill's core never inspects a Foreign value's payload; it only
// carries it. Errors and type-of report every such value as foreign;
// ForeignTypeName is not consulted by the core.
type Foreign interface {
	ForeignTypeName() string
}

// Applicable is implemented by system functions (internal/sysfn.SystemFn)
// so internal/scope's master table can hold them as ordinary Values
// without sysfn and value import-cycling each other: value defines the
// interface, sysfn implements it.
type Applicable interface {
	// Call invokes the function with args, which the callee may mutate
	// or Take from in place (spec.md's destructive-argument convention).
	Call(args []Value) (Value, error)
	// CheckArity reports an ErrArity error if n arguments is not an
	// acceptable call count.
	CheckArity(n int) error
	// String names the function, for display and error messages.
	String() string
}

// FieldDef is one declared field of a StructDef: its name and the type tag
// name (see internal/name's type-tag table) a value assigned to it must
// carry as its type tag.
type FieldDef struct {
	Name name.Name
	Type name.Name
}

// StructDef describes the shape of a struct type: its name and ordered
// (field-name, expected-type) pairs. Two StructDefs are the same type iff
// they are the same pointer (ketos's own definition-identity rule for
// struct defs).
type StructDef struct {
	Name   name.Name
	Fields []FieldDef
}

// HasField reports whether f is one of d's declared fields.
func (d *StructDef) HasField(f name.Name) bool {
	_, ok := d.Field(f)
	return ok
}

// Field returns f's FieldDef and whether f is declared on d.
func (d *StructDef) Field(f name.Name) (FieldDef, bool) {
	for _, fd := range d.Fields {
		if fd.Name == f {
			return fd, true
		}
	}
	return FieldDef{}, false
}

// Struct is an instance of a StructDef. `.=` never mutates Fields in
// place: it copies the map, so an older reference to the same Struct
// pointer keeps seeing its original field values (ketos's RefCell-backed
// struct is copy-on-assign at the quill level, not shared mutable state).
type Struct struct {
	Def    *StructDef
	Fields map[name.Name]Value
}

// Get returns the value stored for f and whether f is a field of s.
func (s *Struct) Get(f name.Name) (Value, bool) {
	v, ok := s.Fields[f]
	return v, ok
}

// With returns a new Struct sharing s's Def with updates applied over a
// copy of s's Fields map — the copy-on-write primitive `.=` builds on.
func (s *Struct) With(updates map[name.Name]Value) *Struct {
	fields := make(map[name.Name]Value, len(s.Fields))
	for k, v := range s.Fields {
		fields[k] = v
	}
	for k, v := range updates {
		fields[k] = v
	}
	return &Struct{Def: s.Def, Fields: fields}
}

// WeakScope is the capability a Lambda uses to reach back to its defining
// scope without holding a strong reference (spec.md's anti-cycle
// requirement: Lambda -> Scope must never keep the scope alive on its
// own). internal/scope implements this over Go's weak package; value
// itself stays decoupled from internal/scope to avoid an import cycle
// (GlobalScope's namespaces hold Values, so scope already imports value).
type WeakScope interface {
	// Upgrade returns the defining scope (as an opaque interface{} the
	// caller type-asserts back to *scope.GlobalScope) and whether it is
	// still alive.
	Upgrade() (interface{}, bool)
	// ScopeName is the defining scope's name, used in the dead-scope error
	// even after the scope itself has been collected.
	ScopeName() string
}

// Lambda is a closure: a Code body plus the scope it closed over. Two
// Lambdas are equal iff they share the same Code pointer (ketos's
// PartialEq-by-Code-identity rule) — capturing different scopes does not
// make two lambdas distinct.
type Lambda struct {
	Code     *code.Code
	Scope    WeakScope
	ArgNames []name.Name
}

// SameCode reports whether a and b share a compiled body.
func (a *Lambda) SameCode(b *Lambda) bool {
	if a == nil || b == nil {
		return a == b
	}
	return code.Same(a.Code, b.Code)
}

// Take moves v out of a slot, replacing the slot with Unit and returning
// v's original contents. This is quill's destructive-argument-consumption
// primitive (spec.md's "take" operation): system functions that need to
// move a List/String/Struct out of an argument slot without an extra copy
// call this instead of reading args[i] directly.
func Take(slot *Value) Value {
	v := *slot
	*slot = Unit
	return v
}
