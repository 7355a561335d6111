package sysfn

import (
	"testing"

	"quill/internal/name"
	"quill/internal/numeric"
	"quill/internal/value"
)

func i(n int64) value.Value { return value.NewInteger(numeric.NewInteger(n)) }

func callByName(t *testing.T, fnName string, args []value.Value) value.Value {
	t.Helper()
	for _, f := range Table {
		if f.Name == fnName {
			v, err := f.Call(args)
			if err != nil {
				t.Fatalf("%s%v: unexpected error: %v", fnName, args, err)
			}
			return v
		}
	}
	t.Fatalf("no system function named %q", fnName)
	return value.Unit
}

func TestTableHas61Entries(t *testing.T) {
	if len(Table) != 61 {
		t.Fatalf("len(Table) = %d, want 61", len(Table))
	}
}

func TestArithmetic(t *testing.T) {
	got := callByName(t, "+", []value.Value{i(1), i(2), i(3)})
	if got.Kind != value.KindInteger || got.Int.String() != "6" {
		t.Errorf("+(1,2,3) = %+v, want 6", got)
	}

	got = callByName(t, "-", []value.Value{i(5)})
	if got.Int.String() != "-5" {
		t.Errorf("-(5) = %+v, want -5", got)
	}

	got = callByName(t, "*", []value.Value{i(2), value.NewFloat(2.5)})
	if got.Kind != value.KindFloat || got.Float != 5.0 {
		t.Errorf("*(2, 2.5) = %+v, want 5.0", got)
	}
}

func TestDivisionByZeroErrors(t *testing.T) {
	f := findFn(t, "//")
	if _, err := f.Call([]value.Value{i(1), i(0)}); err == nil {
		t.Fatal("expected divide-by-zero error from //")
	}
}

func findFn(t *testing.T, name string) *SystemFn {
	t.Helper()
	for _, f := range Table {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no system function named %q", name)
	return nil
}

func TestComparisonChaining(t *testing.T) {
	got := callByName(t, "<", []value.Value{i(1), i(2), i(3)})
	if got.Kind != value.KindBool || !got.Bool {
		t.Errorf("<(1,2,3) = %+v, want true", got)
	}
	got = callByName(t, "<", []value.Value{i(1), i(3), i(2)})
	if got.Bool {
		t.Errorf("<(1,3,2) = %+v, want false", got)
	}
}

func TestLastOnNonListIsTypeMismatch(t *testing.T) {
	f := findFn(t, "last")
	_, err := f.Call([]value.Value{value.Unit})
	if err == nil {
		t.Fatal("expected a type-mismatch error calling last on Unit")
	}
	e, ok := value.AsError(err)
	if !ok || e.Kind != value.ErrTypeMismatch {
		t.Fatalf("last(Unit) error = %v, want ErrTypeMismatch", err)
	}
}

func TestListConstructorCollapsesEmptyToUnit(t *testing.T) {
	got := callByName(t, "list", nil)
	if got.Kind != value.KindUnit {
		t.Errorf("(list) = %+v, want Unit", got)
	}
}

func TestConcatModeMixingErrors(t *testing.T) {
	f := findFn(t, "concat")
	_, err := f.Call([]value.Value{value.NewString("a"), value.NewList([]value.Value{i(1)})})
	if err == nil {
		t.Fatal("expected an error mixing string and list arguments to concat")
	}
}

func TestAppendFlattensOneLevel(t *testing.T) {
	got := callByName(t, "append", []value.Value{
		value.NewList([]value.Value{i(1), i(2)}),
		value.NewList([]value.Value{i(3)}),
	})
	if len(got.List) != 3 {
		t.Fatalf("append result = %+v, want 3 elements", got)
	}
}

func TestSliceOutOfBoundsErrors(t *testing.T) {
	f := findFn(t, "slice")
	lst := value.NewList([]value.Value{i(1), i(2)})
	if _, err := f.Call([]value.Value{lst, i(0), i(5)}); err == nil {
		t.Fatal("expected out-of-bounds error from slice")
	}
}

func TestArityErrorOnWrongArgCount(t *testing.T) {
	f := findFn(t, "rem")
	if _, err := f.Call([]value.Value{i(1)}); err == nil {
		t.Fatal("expected arity error calling rem with one argument")
	}
}

func TestPanicProducesErrKind(t *testing.T) {
	f := findFn(t, "panic")
	_, err := f.Call([]value.Value{value.NewString("boom")})
	e, ok := value.AsError(err)
	if !ok || e.Kind != value.ErrPanic {
		t.Fatalf("panic error = %v, want ErrPanic", err)
	}
}

func TestPanicWithNoArgument(t *testing.T) {
	f := findFn(t, "panic")
	_, err := f.Call(nil)
	e, ok := value.AsError(err)
	if !ok || e.Kind != value.ErrPanic {
		t.Fatalf("panic() error = %v, want ErrPanic", err)
	}
}

func TestPowIntegerExact(t *testing.T) {
	got := callByName(t, "^", []value.Value{i(2), i(10)})
	if got.Kind != value.KindInteger || got.Int.String() != "1024" {
		t.Errorf("^(2, 10) = %+v, want 1024", got)
	}
}

func TestPowRatioExact(t *testing.T) {
	r, err := numeric.NewRatio(numeric.NewInteger(1), numeric.NewInteger(2))
	if err != nil {
		t.Fatal(err)
	}
	got := callByName(t, "^", []value.Value{value.NewRatio(r), i(3)})
	if got.Kind != value.KindRatio || got.Ratio.String() != "1/8" {
		t.Errorf("^(1/2, 3) = %+v, want 1/8", got)
	}
}

func TestShiftOperators(t *testing.T) {
	got := callByName(t, "<<", []value.Value{i(1), i(4)})
	if got.Int.String() != "16" {
		t.Errorf("<<(1, 4) = %+v, want 16", got)
	}
	got = callByName(t, ">>", []value.Value{i(16), i(4)})
	if got.Int.String() != "1" {
		t.Errorf(">>(16, 4) = %+v, want 1", got)
	}
}

func TestRoundingFamily(t *testing.T) {
	half, err := numeric.NewRatio(numeric.NewInteger(3), numeric.NewInteger(2))
	if err != nil {
		t.Fatal(err)
	}
	r := value.NewRatio(half)
	if got := callByName(t, "ceil", []value.Value{r}); got.Int.String() != "2" {
		t.Errorf("ceil(3/2) = %+v, want 2", got)
	}
	if got := callByName(t, "floor", []value.Value{r}); got.Int.String() != "1" {
		t.Errorf("floor(3/2) = %+v, want 1", got)
	}
	if got := callByName(t, "round", []value.Value{r}); got.Int.String() != "2" {
		t.Errorf("round(3/2) = %+v, want 2", got)
	}
	if got := callByName(t, "trunc", []value.Value{r}); got.Int.String() != "1" {
		t.Errorf("trunc(3/2) = %+v, want 1", got)
	}
	if got := callByName(t, "fract", []value.Value{r}); got.Kind != value.KindRatio || got.Ratio.String() != "1/2" {
		t.Errorf("fract(3/2) = %+v, want 1/2", got)
	}
}

func TestRecip(t *testing.T) {
	got := callByName(t, "recip", []value.Value{i(2)})
	if got.Kind != value.KindRatio || got.Ratio.String() != "1/2" {
		t.Errorf("recip(2) = %+v, want 1/2", got)
	}
}

func TestSecondAndReverse(t *testing.T) {
	lst := value.NewList([]value.Value{i(1), i(2), i(3)})
	got := callByName(t, "second", []value.Value{lst})
	if got.Int.String() != "2" {
		t.Errorf("second(1 2 3) = %+v, want 2", got)
	}
	got = callByName(t, "reverse", []value.Value{lst})
	if len(got.List) != 3 || got.List[0].Int.String() != "3" {
		t.Errorf("reverse(1 2 3) = %+v, want (3 2 1)", got)
	}
}

func newTestStructDef() (*name.Store, *value.StructDef, name.Name, name.Name) {
	store := name.NewStore()
	def := store.Add("point")
	x := store.Add("x")
	y := store.Add("y")
	intType := name.TypeTagName(1) // integer
	sd := &value.StructDef{Name: def, Fields: []value.FieldDef{{Name: x, Type: intType}, {Name: y, Type: intType}}}
	return store, sd, x, y
}

func TestNewStructFieldScenarios(t *testing.T) {
	store, sd, x, y := newTestStructDef()
	defVal := value.Value{Kind: value.KindStructDef, SDef: sd}

	got := callByName(t, "new", []value.Value{defVal, value.NewName(x), i(1), value.NewName(y), i(2)})
	if got.Kind != value.KindStruct {
		t.Fatalf("new(point :x 1 :y 2) = %+v, want a struct", got)
	}

	f := findFn(t, "new")
	if _, err := f.Call([]value.Value{defVal, value.NewName(x), i(1), value.NewName(x), i(2)}); err == nil {
		t.Fatal("expected DuplicateField calling new with a repeated key")
	} else if e, ok := value.AsError(err); !ok || e.Kind != value.ErrDuplicateField {
		t.Fatalf("new with duplicate key error = %v, want ErrDuplicateField", err)
	}

	if _, err := f.Call([]value.Value{defVal, value.NewName(x), i(1)}); err == nil {
		t.Fatal("expected MissingField calling new without every declared field")
	} else if e, ok := value.AsError(err); !ok || e.Kind != value.ErrMissingField {
		t.Fatalf("new with missing field error = %v, want ErrMissingField", err)
	}

	bogus := store.Add("z")
	if _, err := f.Call([]value.Value{defVal, value.NewName(bogus), i(1), value.NewName(x), i(1), value.NewName(y), i(1)}); err == nil {
		t.Fatal("expected FieldError calling new with an undeclared key")
	} else if e, ok := value.AsError(err); !ok || e.Kind != value.ErrFieldError {
		t.Fatalf("new with undeclared field error = %v, want ErrFieldError", err)
	}

	if _, err := f.Call([]value.Value{defVal, value.NewName(x), value.NewString("oops"), value.NewName(y), i(2)}); err == nil {
		t.Fatal("expected FieldTypeError calling new with a wrongly typed value")
	} else if e, ok := value.AsError(err); !ok || e.Kind != value.ErrFieldTypeError {
		t.Fatalf("new with wrong-typed field error = %v, want ErrFieldTypeError", err)
	}
}

func TestDotAndDotEq(t *testing.T) {
	_, sd, x, y := newTestStructDef()
	s := &value.Struct{Def: sd, Fields: map[name.Name]value.Value{x: i(1), y: i(2)}}
	sv := value.Value{Kind: value.KindStruct, Struct: s}

	got := callByName(t, ".", []value.Value{sv, value.NewName(x)})
	if got.Int.String() != "1" {
		t.Errorf(".(s, x) = %+v, want 1", got)
	}

	updated := callByName(t, ".=", []value.Value{sv, value.NewName(x), i(99)})
	if updated.Struct == s {
		t.Fatal(".= must not mutate the original struct in place")
	}
	got, _ = updated.Struct.Get(x)
	if got.Int.String() != "99" {
		t.Errorf("after .=, x = %+v, want 99", got)
	}
	got, _ = s.Get(x)
	if got.Int.String() != "1" {
		t.Errorf("original struct's x changed to %+v, want unchanged 1", got)
	}

	dotEq := findFn(t, ".=")
	if _, err := dotEq.Call([]value.Value{sv, value.NewName(x)}); err == nil {
		t.Fatal("expected OddKeywordParams from .= with a trailing key and no value")
	} else if e, ok := value.AsError(err); !ok || e.Kind != value.ErrOddKeywordParams {
		t.Fatalf(".= odd args error = %v, want ErrOddKeywordParams", err)
	}
}
