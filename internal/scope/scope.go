// Package scope implements quill's lexical scope model: a GlobalScope
// holding three independent namespaces (constants, macros, values), an
// import/export mechanism between scopes, and the MasterScope of
// pre-defined standard names and system functions every GlobalScope can
// see without importing anything. Grounded on ketos's scope.rs. There is no
// locking: a GlobalScope is not safe for concurrent use.
package scope

import (
	"fmt"
	"weak"

	"github.com/google/uuid"

	"quill/internal/code"
	"quill/internal/name"
	"quill/internal/sysfn"
	"quill/internal/value"
)

// namespace is one of the three independent binding tables a GlobalScope
// carries (constants, macros, values). It is a plain map with no lock of
// its own, and the owning GlobalScope holds no mutex either.
type namespace = map[name.Name]value.Value

// ImportSet records which names a scope has imported from another named
// scope, so a second `use` of the same module with a different name list
// can be merged rather than silently overwriting the first.
type ImportSet struct {
	From  string
	Names map[name.Name]bool
}

// GlobalScope is quill's lexical scope: three namespaces plus the
// import/export bookkeeping needed to resolve names brought in via `use`.
// The zero value is not usable; build one with New or NewUsing.
type GlobalScope struct {
	id    uuid.UUID
	nm    *name.Store
	sname string

	constants namespace
	macros    namespace
	values    namespace

	exports map[name.Name]bool
	imports map[name.Name]*ImportSet

	master *MasterScope
}

// New builds an empty top-level GlobalScope named sname, backed by the
// given name.Store and able to see master's standard bindings.
func New(sname string, nm *name.Store, master *MasterScope) *GlobalScope {
	return &GlobalScope{
		id:        uuid.New(),
		nm:        nm,
		sname:     sname,
		constants: namespace{},
		macros:    namespace{},
		values:    namespace{},
		exports:   map[name.Name]bool{},
		imports:   map[name.Name]*ImportSet{},
		master:    master,
	}
}

// NewUsing builds a GlobalScope named sname that additionally imports
// every exported value/macro/constant from parent, matching ketos's
// Scope::new_using module-instantiation helper.
func NewUsing(sname string, nm *name.Store, master *MasterScope, parent *GlobalScope) *GlobalScope {
	s := New(sname, nm, master)
	s.ImportAllValues(parent)
	s.ImportAllMacros(parent)
	s.ImportAllConstants(parent)
	return s
}

// ID returns this scope's stable debug identity.
func (s *GlobalScope) ID() uuid.UUID { return s.id }

// Name returns the scope's name, set at construction and retained even
// after the scope itself becomes unreachable (surfaced in dead-scope
// errors via WeakRef.ScopeName).
func (s *GlobalScope) Name() string { return s.sname }

// Names returns the backing name.Store, so callers can resolve Name
// handles back to strings without threading the store separately.
func (s *GlobalScope) Names() *name.Store { return s.nm }

// --- values ---

// AddValue binds n to v in this scope's value namespace.
func (s *GlobalScope) AddValue(n name.Name, v value.Value) error {
	if !name.CanDefine(n) {
		return value.New(value.ErrImmutable, "cannot redefine reserved name "+s.nm.MustGet(n))
	}
	s.values[n] = v
	return nil
}

// GetValue resolves n: first in this scope's own value namespace, then
// falling back to the master scope's standard values/system functions.
func (s *GlobalScope) GetValue(n name.Name) (value.Value, bool) {
	if v, ok := s.values[n]; ok {
		return v, true
	}
	return s.master.Get(n)
}

// ContainsValue reports whether n is bound in this scope's own value
// namespace (not counting the master scope).
func (s *GlobalScope) ContainsValue(n name.Name) bool {
	_, ok := s.values[n]
	return ok
}

// --- constants ---

// AddConstant binds n to v in this scope's constant namespace.
func (s *GlobalScope) AddConstant(n name.Name, v value.Value) error {
	if !name.CanDefine(n) {
		return value.New(value.ErrImmutable, "cannot redefine reserved name "+s.nm.MustGet(n))
	}
	s.constants[n] = v
	return nil
}

// GetConstant resolves n in this scope's constant namespace only.
func (s *GlobalScope) GetConstant(n name.Name) (value.Value, bool) {
	v, ok := s.constants[n]
	return v, ok
}

// ContainsConstant reports whether n is bound in the constant namespace.
func (s *GlobalScope) ContainsConstant(n name.Name) bool {
	_, ok := s.constants[n]
	return ok
}

// --- macros ---

// AddMacro binds n to v (expected to be a Lambda) in the macro namespace.
func (s *GlobalScope) AddMacro(n name.Name, v value.Value) error {
	if !name.CanDefine(n) {
		return value.New(value.ErrImmutable, "cannot redefine reserved name "+s.nm.MustGet(n))
	}
	s.macros[n] = v
	return nil
}

// GetMacro resolves n in the macro namespace only.
func (s *GlobalScope) GetMacro(n name.Name) (value.Value, bool) {
	v, ok := s.macros[n]
	return v, ok
}

// ContainsMacro reports whether n is bound in the macro namespace.
func (s *GlobalScope) ContainsMacro(n name.Name) bool {
	_, ok := s.macros[n]
	return ok
}

// ContainsName reports whether n is bound in any of this scope's three
// namespaces, or is a standard name visible via the master scope.
func (s *GlobalScope) ContainsName(n name.Name) bool {
	if s.ContainsValue(n) || s.ContainsConstant(n) || s.ContainsMacro(n) {
		return true
	}
	return s.master.Contains(n)
}

// --- exports / imports ---

// SetExports marks each of names as exported, so a later NewUsing/
// ImportAll* of this scope brings them in.
func (s *GlobalScope) SetExports(names []name.Name) {
	for _, n := range names {
		s.exports[n] = true
	}
}

// IsExported reports whether n has been marked exported.
func (s *GlobalScope) IsExported(n name.Name) bool { return s.exports[n] }

// Exports returns every name marked exported.
func (s *GlobalScope) Exports() []name.Name {
	out := make([]name.Name, 0, len(s.exports))
	for n := range s.exports {
		out = append(out, n)
	}
	return out
}

// ImportAllValues copies every exported value binding from other into s,
// recording each copied name in s's ImportSet for other. A repeated call
// copies the bindings again. Only other.exports is
// consulted — imports never reach past one hop into a module's own
// imports, matching ketos's explicit "read only from exports" rule.
func (s *GlobalScope) ImportAllValues(other *GlobalScope) {
	set := s.importSetFor(other)
	for n := range other.exports {
		if v, ok := other.values[n]; ok {
			s.values[n] = v
			set.Names[n] = true
		}
	}
}

// ImportAllMacros is ImportAllValues for the macro namespace.
func (s *GlobalScope) ImportAllMacros(other *GlobalScope) {
	set := s.importSetFor(other)
	for n := range other.exports {
		if v, ok := other.macros[n]; ok {
			s.macros[n] = v
			set.Names[n] = true
		}
	}
}

// ImportAllConstants is ImportAllValues for the constant namespace.
func (s *GlobalScope) ImportAllConstants(other *GlobalScope) {
	set := s.importSetFor(other)
	for n := range other.exports {
		if v, ok := other.constants[n]; ok {
			s.constants[n] = v
			set.Names[n] = true
		}
	}
}

func (s *GlobalScope) importSetFor(other *GlobalScope) *ImportSet {
	key := s.nm.Add(other.sname)
	set, ok := s.imports[key]
	if !ok {
		set = &ImportSet{From: other.sname, Names: map[name.Name]bool{}}
		s.imports[key] = set
	}
	return set
}

// WeakRef returns a value.WeakScope that can reach back to s without
// keeping it alive, for use as a Lambda's defining-scope reference.
func (s *GlobalScope) WeakRef() value.WeakScope {
	return &weakRef{ptr: weak.Make(s), scopeName: s.sname}
}

type weakRef struct {
	ptr       weak.Pointer[GlobalScope]
	scopeName string
}

func (w *weakRef) Upgrade() (interface{}, bool) {
	s := w.ptr.Value()
	if s == nil {
		return nil, false
	}
	return s, true
}

func (w *weakRef) ScopeName() string { return w.scopeName }

// DeadScopeError builds the runtime error a Lambda call produces when its
// weak scope reference can no longer be upgraded.
func DeadScopeError(scopeName string) error {
	return value.New(value.ErrDeadScope, fmt.Sprintf("lambda's defining scope %q no longer exists", scopeName))
}

// NewLambda builds a value.Lambda closing over s.
func NewLambda(c *code.Code, argNames []name.Name, s *GlobalScope) *value.Lambda {
	return &value.Lambda{Code: c, Scope: s.WeakRef(), ArgNames: argNames}
}

// ResolveLambdaScope upgrades l's weak scope reference back to a
// *GlobalScope, or returns DeadScopeError if the defining scope is gone.
func ResolveLambdaScope(l *value.Lambda) (*GlobalScope, error) {
	raw, ok := l.Scope.Upgrade()
	if !ok {
		return nil, DeadScopeError(l.Scope.ScopeName())
	}
	s, ok := raw.(*GlobalScope)
	if !ok {
		return nil, DeadScopeError(l.Scope.ScopeName())
	}
	return s, nil
}

// MasterScope is the single, process-wide, stateless table of standard
// values: the 61 system functions, the 14 type tags (as Name values,
// useful for `type-of`/`is` comparisons), and the two booleans. It holds
// no user bindings and cannot be mutated after construction — matching
// ketos's MasterScope, which is a static table, not a Scope.
type MasterScope struct {
	nm     *name.Store
	values map[name.Name]value.Value
}

// NewMasterScope builds the standard table over nm, binding the 61
// sysfn.Table entries to their Names in order, the 14 type tags to Name
// values naming themselves, and true/false to their Bool values.
func NewMasterScope(nm *name.Store) *MasterScope {
	sysfn.Names = nm
	m := &MasterScope{nm: nm, values: make(map[name.Name]value.Value, name.NumStandardValues)}
	for i := 0; i < name.NumSystemFns; i++ {
		n := name.SystemFnName(i)
		fn := sysfn.Table[i]
		m.values[n] = value.Value{Kind: value.KindSystemFn, Sys: fn}
	}
	for i := 0; i < 14; i++ {
		n := name.TypeTagName(i)
		m.values[n] = value.NewName(n)
	}
	m.values[name.BoolName(true)] = value.NewBool(true)
	m.values[name.BoolName(false)] = value.NewBool(false)
	return m
}

// Get resolves n against the standard table only.
func (m *MasterScope) Get(n name.Name) (value.Value, bool) {
	v, ok := m.values[n]
	return v, ok
}

// Contains reports whether n is a standard name.
func (m *MasterScope) Contains(n name.Name) bool {
	_, ok := m.values[n]
	return ok
}

// CanDefine reports whether user code may shadow n in a child scope
// (always true — shadowing a standard name in a local scope is fine; only
// redefining it at the global/master level is forbidden, which
// name.CanDefine already enforces before a GlobalScope.Add* call is ever
// reached).
func (m *MasterScope) CanDefine(n name.Name) bool { return true }

// Names returns every standard Name in table order: system functions,
// then type tags, then booleans.
func (m *MasterScope) Names() []name.Name {
	out := make([]name.Name, 0, name.NumStandardValues)
	for i := 0; i < name.NumSystemFns; i++ {
		out = append(out, name.SystemFnName(i))
	}
	for i := 0; i < 14; i++ {
		out = append(out, name.TypeTagName(i))
	}
	out = append(out, name.BoolName(true), name.BoolName(false))
	return out
}

// Values returns the Value bound to each Name in Names() order.
func (m *MasterScope) Values() []value.Value {
	names := m.Names()
	out := make([]value.Value, len(names))
	for i, n := range names {
		out[i] = m.values[n]
	}
	return out
}
