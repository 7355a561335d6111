package numeric

import "testing"

func TestIntegerArith(t *testing.T) {
	a, b := NewInteger(7), NewInteger(3)
	if got := a.Add(b); got.String() != "10" {
		t.Errorf("7+3 = %s, want 10", got)
	}
	if got := a.Sub(b); got.String() != "4" {
		t.Errorf("7-3 = %s, want 4", got)
	}
	if got := a.Mul(b); got.String() != "21" {
		t.Errorf("7*3 = %s, want 21", got)
	}
}

func TestIntegerFloorDiv(t *testing.T) {
	a, b := NewInteger(-7), NewInteger(2)
	q, err := a.FloorDiv(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.String() != "-4" {
		t.Errorf("floor(-7/2) = %s, want -4", q)
	}
}

func TestIntegerDivByZero(t *testing.T) {
	a, z := NewInteger(1), NewInteger(0)
	if _, err := a.FloorDiv(z); err == nil {
		t.Fatal("expected division by zero error")
	}
	if _, err := a.Rem(z); err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestIntegerToInt64Overflow(t *testing.T) {
	huge := PowInt(NewInteger(10), 30)
	if _, err := huge.ToInt64(); err == nil {
		t.Fatal("expected overflow error for 10^30 -> int64")
	}
	small := NewInteger(42)
	v, err := small.ToInt64()
	if err != nil || v != 42 {
		t.Fatalf("ToInt64() = %d, %v; want 42, nil", v, err)
	}
}

func TestRatioNormalizesAndCompares(t *testing.T) {
	r, err := NewRatio(NewInteger(2), NewInteger(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Numer().String() != "1" || r.Denom().String() != "2" {
		t.Fatalf("2/4 did not normalize: %s/%s", r.Numer(), r.Denom())
	}

	half, _ := NewRatio(NewInteger(1), NewInteger(2))
	if r.Cmp(half) != 0 {
		t.Errorf("1/2 != 2/4 after normalization")
	}
}

func TestRatioDivByZero(t *testing.T) {
	if _, err := NewRatio(NewInteger(1), NewInteger(0)); err == nil {
		t.Fatal("expected division by zero constructing 1/0")
	}
	one, _ := NewRatio(NewInteger(1), NewInteger(1))
	zero, _ := NewRatio(NewInteger(0), NewInteger(1))
	if _, err := one.Div(zero); err == nil {
		t.Fatal("expected division by zero for 1/1 / 0/1")
	}
}

func TestPowRatioIntStaysExact(t *testing.T) {
	half, _ := NewRatio(NewInteger(1), NewInteger(2))
	cubed := PowRatioInt(half, 3)
	if cubed.Numer().String() != "1" || cubed.Denom().String() != "8" {
		t.Errorf("(1/2)^3 = %s/%s, want 1/8", cubed.Numer(), cubed.Denom())
	}
}

func TestIntegerToFloat64Widens(t *testing.T) {
	i := NewInteger(2)
	if i.ToFloat64() != 2.0 {
		t.Errorf("2.ToFloat64() = %v, want 2.0", i.ToFloat64())
	}
}
