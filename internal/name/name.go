// Package name implements the interning table shared by every other
// package in quill. A Name is a small integer handle; two names compare
// equal iff the strings they were interned from compare equal. Nothing
// outside this package ever compares the underlying strings directly.
package name

import "sync"

// Name is an interned handle into a Store. The zero Name is never valid;
// Store.Add always returns handles starting at 1 so a missing lookup can be
// reported as Name(0) without colliding with a real name.
type Name uint32

// Number of built-in system functions, in the exact order spec.md §9 and
// the original system function table require. This count is load-bearing:
// NumStandardValues and SystemOperatorsEnd are both defined relative to it.
const NumSystemFns = 61

// Pure type-tag names (unit, integer, float, ratio, bool, string, char,
// seq, lambda, foreign, struct-def, struct, name, error) follow the system
// functions in the standard range.
const numTypeTags = 14

// The two boolean literal names (true, false) follow the type tags.
const numBooleans = 2

// NumStandardValues is the size of the pre-interned "standard value" range:
// system functions, type tags, and booleans. Every Name from 1 up to and
// including this bound names a value the master scope defines and a user scope can shadow but
// never redefine at the global level (can_define returns false for these).
const NumStandardValues = NumSystemFns + numTypeTags + numBooleans

// Number of reserved syntactic-operator keywords (define, fn, let, if, ...)
// following the standard values. A host compiler assigns these meaning;
// quill's core only reserves the names so a user can never define over
// them.
const numSystemOperators = 22

// SystemOperatorsEnd is the inclusive upper bound of the fully reserved
// name range: handles 1 through SystemOperatorsEnd can never be defined by
// user code.
const SystemOperatorsEnd = NumStandardValues + numSystemOperators

// systemFnNames holds the 61 system function names in their canonical
// order (matches the order internal/sysfn.Table must use, which follows
// the original system function table function-for-function).
var systemFnNames = [NumSystemFns]string{
	"+", "-", "*", "^", "/", "//", "rem", "<<", ">>",
	"=", "/=", "<", ">", "<=", ">=",
	"zero?", "max", "min",
	"append", "elt", "concat", "join", "len", "slice",
	"first", "second", "last", "init", "tail",
	"list", "reverse",
	"abs", "ceil", "floor", "round", "trunc", "int", "as-float",
	"inf", "nan", "denom", "fract", "numer", "rat", "recip",
	"chars", "as-string",
	"id", "is", "is-instance", "null", "type-of",
	".", ".=", "new",
	"format", "print", "println", "panic", "xor", "not",
}

// Deliberately disjoint from systemFnNames: the numeric/string coercion
// functions above are spelled "as-float"/"as-string" rather than
// "float"/"string" precisely so the type-tag names below (the spelling a
// user types in e.g. `(is x 'string)`) never collide with a value-
// namespace function of the same name in this single shared Store. The
// list/sequence type tag is spelled "seq" for the same reason, since
// "list" already names the list-constructor system function.
var typeTagNames = [numTypeTags]string{
	"unit", "integer", "float", "ratio", "bool", "string", "char",
	"seq", "lambda", "foreign", "struct-def", "struct", "name", "error",
}

var booleanNames = [numBooleans]string{"true", "false"}

// systemOperatorNames spells the boolean-connective and module forms
// "both"/"either"/"provide"/"import" rather than "and"/"or"/"export"/"use"
// and the binding forms "define-const"/"assign!" rather than "const"/
// "set!" — quill reserves those shorter spellings as ordinary identifiers
// a user program is free to shadow locally, not as syntactic keywords. A
// single Store is a bijection between strings and Names, so two different
// ranges can never share a spelling regardless.
var systemOperatorNames = [numSystemOperators]string{
	"define", "define-macro", "fn", "let", "let*", "if", "cond",
	"both", "either", "do", "provide", "import", "define-const", "assign!",
	"when", "unless", "defstruct", "begin", "while", "for", "match", "self",
}

// Store is the shared intern table. The zero value is not usable; use
// NewStore. All methods are safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	byStr   map[string]Name
	byName  []string // index i holds the string for Name(i+1)
}

// NewStore builds a Store with the standard value range and the reserved
// operator keywords already interned, in the exact order required by
// NumSystemFns/NumStandardValues/SystemOperatorsEnd.
func NewStore() *Store {
	s := &Store{
		byStr:  make(map[string]Name, SystemOperatorsEnd*2),
		byName: make([]string, 0, SystemOperatorsEnd*2),
	}
	for _, n := range systemFnNames {
		s.intern(n)
	}
	for _, n := range typeTagNames {
		s.intern(n)
	}
	for _, n := range booleanNames {
		s.intern(n)
	}
	for _, n := range systemOperatorNames {
		s.intern(n)
	}
	if len(s.byName) != SystemOperatorsEnd {
		panic("name: standard table size mismatch")
	}
	return s
}

// intern is the unguarded insert used only while building the fixed
// standard range at construction time.
func (s *Store) intern(str string) Name {
	if n, ok := s.byStr[str]; ok {
		return n
	}
	s.byName = append(s.byName, str)
	n := Name(len(s.byName))
	s.byStr[str] = n
	return n
}

// Add returns the Name for str, interning it if this Store has never seen
// it before.
func (s *Store) Add(str string) Name {
	s.mu.RLock()
	if n, ok := s.byStr[str]; ok {
		s.mu.RUnlock()
		return n
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.intern(str)
}

// Get returns the string a Name was interned from and whether n is a valid
// handle into this Store.
func (s *Store) Get(n Name) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n == 0 || int(n) > len(s.byName) {
		return "", false
	}
	return s.byName[n-1], true
}

// MustGet is Get without the ok result, for call sites that already hold a
// Name known to be valid (e.g. one of the standard names below).
func (s *Store) MustGet(n Name) string {
	str, ok := s.Get(n)
	if !ok {
		panic("name: invalid handle")
	}
	return str
}

// IsStandardValue reports whether n falls in the pre-interned system
// function / type-tag / boolean range.
func IsStandardValue(n Name) bool {
	return n != 0 && int(n) <= NumStandardValues
}

// IsSystemOperator reports whether n falls in the reserved syntactic
// keyword range.
func IsSystemOperator(n Name) bool {
	return int(n) > NumStandardValues && int(n) <= SystemOperatorsEnd
}

// CanDefine reports whether user code may introduce a new global binding
// for n. Both the standard value range and the reserved operator range are
// off limits.
func CanDefine(n Name) bool {
	return int(n) > SystemOperatorsEnd
}

// SystemFnName returns the Name of the i'th system function in table order
// (0-based), for wiring internal/sysfn.Table to internal/scope's master
// scope without either package hard-coding string literals.
func SystemFnName(i int) Name {
	if i < 0 || i >= NumSystemFns {
		panic("name: system function index out of range")
	}
	return Name(i + 1)
}

// TypeTagName returns the Name of the i'th type tag (0-based) in the order
// listed above.
func TypeTagName(i int) Name {
	if i < 0 || i >= numTypeTags {
		panic("name: type tag index out of range")
	}
	return Name(NumSystemFns + i + 1)
}

// BoolName returns the Name for the literal "true" (b == true) or "false"
// (b == false).
func BoolName(b bool) Name {
	if b {
		return Name(NumSystemFns + numTypeTags + 1)
	}
	return Name(NumSystemFns + numTypeTags + 2)
}
