package value

import (
	"strings"
	"testing"

	"github.com/kr/pretty"

	"quill/internal/name"
	"quill/internal/numeric"
)

func TestIsEqualBasics(t *testing.T) {
	if !IsEqual(Unit, Unit) {
		t.Error("Unit should equal Unit")
	}
	if !IsEqual(NewInteger(numeric.NewInteger(3)), NewInteger(numeric.NewInteger(3))) {
		t.Error("3 should equal 3")
	}
	if IsEqual(NewInteger(numeric.NewInteger(3)), NewFloat(3.0)) {
		t.Error("integer 3 should not equal float 3.0 under IsEqual (different kinds)")
	}
}

func TestIsEqualNaNNeverEqual(t *testing.T) {
	nan := NewFloat(nan())
	if IsEqual(nan, nan) {
		t.Error("NaN should never equal itself")
	}
}

func TestCompareNaNErrors(t *testing.T) {
	nan := NewFloat(nan())
	one := NewInteger(numeric.NewInteger(1))
	if _, err := Compare(nan, one); err == nil {
		t.Error("comparing NaN should error")
	}
}

func TestCompareCrossNumericKinds(t *testing.T) {
	i := NewInteger(numeric.NewInteger(2))
	f := NewFloat(2.5)
	c, err := Compare(i, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != -1 {
		t.Errorf("Compare(2, 2.5) = %d, want -1", c)
	}
}

func TestCompareMismatchedNonNumericKindsErrors(t *testing.T) {
	if _, err := Compare(NewString("a"), NewBool(true)); err == nil {
		t.Error("expected type mismatch comparing string and bool")
	}
}

func TestQuoteAccumulatesDepth(t *testing.T) {
	v := NewInteger(numeric.NewInteger(1))
	q1 := Quote(v)
	q2 := Quote(q1)
	if q2.Kind != KindQuote || q2.Depth != 2 {
		t.Errorf("Quote(Quote(v)) = %+v, want Depth 2", q2)
	}
}

func TestTakeLeavesUnitBehind(t *testing.T) {
	slot := NewString("hello")
	taken := Take(&slot)
	if taken.Str != "hello" {
		t.Errorf("Take returned %+v, want the original string", taken)
	}
	if slot.Kind != KindUnit {
		t.Errorf("slot after Take = %+v, want Unit", slot)
	}
}

func TestStructGetWith(t *testing.T) {
	store := name.NewStore()
	field := store.Add("x")
	intType := store.Add("integer")
	def := &StructDef{Name: store.Add("point"), Fields: []FieldDef{{Name: field, Type: intType}}}
	s := &Struct{Def: def, Fields: map[name.Name]Value{field: NewInteger(numeric.NewInteger(1))}}

	if !def.HasField(field) {
		t.Fatal("HasField should report true for a declared field")
	}
	got, ok := s.Get(field)
	if !ok || got.Int.String() != "1" {
		t.Fatalf("Get(x) = %+v, %v; want 1, true", got, ok)
	}
	s2 := s.With(map[name.Name]Value{field: NewInteger(numeric.NewInteger(2))})
	got, _ = s2.Get(field)
	if got.Int.String() != "2" {
		t.Fatalf("after With, Get(x) = %+v, want 2", got)
	}
	got, _ = s.Get(field)
	if got.Int.String() != "1" {
		t.Fatalf("With must not mutate the original: Get(x) = %+v, want 1", got)
	}
}

// TestNestedListEquality exercises a deeply nested list tree, the shape a
// real parsed program produces, printing a field-level diff via kr/pretty
// instead of a flat %+v dump when the trees mismatch.
func TestNestedListEquality(t *testing.T) {
	want := NewList([]Value{
		NewInteger(numeric.NewInteger(1)),
		NewList([]Value{NewInteger(numeric.NewInteger(2)), NewString("a")}),
	})
	got := NewList([]Value{
		NewInteger(numeric.NewInteger(1)),
		NewList([]Value{NewInteger(numeric.NewInteger(2)), NewString("a")}),
	})
	if !IsEqual(want, got) {
		t.Errorf("nested lists differ:\n%s", strings.Join(pretty.Diff(want, got), "\n"))
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}
