package name

import "testing"

func TestStandardRangeSizes(t *testing.T) {
	if NumStandardValues != NumSystemFns+14+2 {
		t.Fatalf("NumStandardValues = %d, want %d", NumStandardValues, NumSystemFns+16)
	}
	if SystemOperatorsEnd != NumStandardValues+22 {
		t.Fatalf("SystemOperatorsEnd = %d, want %d", SystemOperatorsEnd, NumStandardValues+22)
	}
}

func TestNewStoreInternsStandardRangeInOrder(t *testing.T) {
	s := NewStore()

	add, ok := s.Get(SystemFnName(0))
	if !ok || add != "+" {
		t.Fatalf("SystemFnName(0) = %q, ok=%v; want %q", add, ok, "+")
	}
	last, ok := s.Get(SystemFnName(NumSystemFns - 1))
	if !ok || last != "not" {
		t.Fatalf("SystemFnName(last) = %q, ok=%v; want %q", last, ok, "not")
	}

	unit, ok := s.Get(TypeTagName(0))
	if !ok || unit != "unit" {
		t.Fatalf("TypeTagName(0) = %q, ok=%v; want %q", unit, ok, "unit")
	}

	tru, ok := s.Get(BoolName(true))
	if !ok || tru != "true" {
		t.Fatalf("BoolName(true) = %q, ok=%v; want %q", tru, ok, "true")
	}
	fls, ok := s.Get(BoolName(false))
	if !ok || fls != "false" {
		t.Fatalf("BoolName(false) = %q, ok=%v; want %q", fls, ok, "false")
	}
}

func TestAddIsIdempotent(t *testing.T) {
	s := NewStore()
	a := s.Add("frobnicate")
	b := s.Add("frobnicate")
	if a != b {
		t.Fatalf("Add not idempotent: %v != %v", a, b)
	}
	str, ok := s.Get(a)
	if !ok || str != "frobnicate" {
		t.Fatalf("Get(%v) = %q, %v; want %q, true", a, str, ok, "frobnicate")
	}
}

func TestAddDistinctStrings(t *testing.T) {
	s := NewStore()
	a := s.Add("foo")
	b := s.Add("bar")
	if a == b {
		t.Fatalf("distinct strings interned to same Name")
	}
}

func TestPredicates(t *testing.T) {
	s := NewStore()

	if !IsStandardValue(SystemFnName(0)) {
		t.Errorf("SystemFnName(0) should be a standard value")
	}
	if CanDefine(SystemFnName(0)) {
		t.Errorf("SystemFnName(0) should not be definable")
	}

	define := s.Add("define")
	if !IsSystemOperator(define) {
		t.Errorf("%q should be a system operator", "define")
	}
	if CanDefine(define) {
		t.Errorf("%q should not be definable", "define")
	}

	user := s.Add("my-helper")
	if IsStandardValue(user) || IsSystemOperator(user) {
		t.Errorf("user name wrongly classified as reserved")
	}
	if !CanDefine(user) {
		t.Errorf("user name should be definable")
	}
}

func TestGetInvalidHandle(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get(Name(0)); ok {
		t.Errorf("Name(0) should never resolve")
	}
	if _, ok := s.Get(Name(999999)); ok {
		t.Errorf("out of range handle should not resolve")
	}
}
