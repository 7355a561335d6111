// Package numeric implements quill's numeric tower: arbitrary-precision
// Integer, exact Ratio, and the coercion rules that let them mix with
// IEEE-754 Float in a single arithmetic expression.
package numeric

import (
	"math/big"

	"github.com/dustin/go-humanize"
	"github.com/remyoudompheng/bigfft"
)

// fftThreshold is the operand word count past which Integer.Mul switches
// from math/big's default multiplication to bigfft. Chosen generously
// above the crossover point where FFT multiplication actually wins, so
// small-integer arithmetic (the overwhelming common case) never pays the
// FFT setup cost.
const fftThreshold = 1 << 12

// Integer is an arbitrary-precision signed integer.
type Integer struct {
	v *big.Int
}

// NewInteger wraps i as an Integer.
func NewInteger(i int64) Integer { return Integer{big.NewInt(i)} }

// NewIntegerFromBig takes ownership of v.
func NewIntegerFromBig(v *big.Int) Integer { return Integer{v} }

// Big returns the underlying big.Int. Callers must not mutate it.
func (a Integer) Big() *big.Int { return a.v }

// Add returns a + b.
func (a Integer) Add(b Integer) Integer { return Integer{new(big.Int).Add(a.v, b.v)} }

// Sub returns a - b.
func (a Integer) Sub(b Integer) Integer { return Integer{new(big.Int).Sub(a.v, b.v)} }

// Neg returns -a.
func (a Integer) Neg() Integer { return Integer{new(big.Int).Neg(a.v)} }

// Mul returns a * b, routing through bigfft once both operands are large
// enough that schoolbook/Karatsuba multiplication (math/big's default)
// would be noticeably slower than FFT multiplication.
func (a Integer) Mul(b Integer) Integer {
	if len(a.v.Bits()) >= fftThreshold && len(b.v.Bits()) >= fftThreshold {
		return Integer{bigfft.Mul(a.v, b.v)}
	}
	return Integer{new(big.Int).Mul(a.v, b.v)}
}

// FloorDiv returns the floor of a / b and an error if b is zero.
func (a Integer) FloorDiv(b Integer) (Integer, error) {
	if b.v.Sign() == 0 {
		return Integer{}, errDivByZero
	}
	q, m := new(big.Int), new(big.Int)
	q.QuoRem(a.v, b.v, m)
	if m.Sign() != 0 && (m.Sign() < 0) != (b.v.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return Integer{q}, nil
}

// Rem returns the truncating remainder of a / b (sign follows a, matching
// Go's own % operator), erroring if b is zero.
func (a Integer) Rem(b Integer) (Integer, error) {
	if b.v.Sign() == 0 {
		return Integer{}, errDivByZero
	}
	return Integer{new(big.Int).Rem(a.v, b.v)}, nil
}

// Abs returns |a|.
func (a Integer) Abs() Integer { return Integer{new(big.Int).Abs(a.v)} }

// Shl returns a left-shifted by n bits.
func (a Integer) Shl(n uint32) Integer { return Integer{new(big.Int).Lsh(a.v, uint(n))} }

// Shr returns a right-shifted by n bits (arithmetic shift, sign-extending).
func (a Integer) Shr(n uint32) Integer { return Integer{new(big.Int).Rsh(a.v, uint(n))} }

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Integer) Cmp(b Integer) int { return a.v.Cmp(b.v) }

// Sign returns -1, 0, or 1 as a is negative, zero, or positive.
func (a Integer) Sign() int { return a.v.Sign() }

// IsZero reports whether a is zero.
func (a Integer) IsZero() bool { return a.v.Sign() == 0 }

// String renders a in base 10.
func (a Integer) String() string { return a.v.String() }

// ToFloat64 converts a to the nearest float64. Per spec.md's float
// coercion table this is always "successful" (big.Int.Float64 never
// errors; it saturates to +/-Inf for magnitudes beyond float64 range),
// matching the "widen, never fail" Integer->Float rule.
func (a Integer) ToFloat64() float64 {
	f, _ := new(big.Float).SetInt(a.v).Float64()
	return f
}

// ToInt64 narrows a to an int64, reporting Overflow if a does not fit.
func (a Integer) ToInt64() (int64, error) {
	if !a.v.IsInt64() {
		return 0, &Overflow{Value: a.v.String(), Target: "int64", Bits: uint(a.v.BitLen())}
	}
	return a.v.Int64(), nil
}

// ToUint32 narrows a to a uint32, reporting Overflow if a does not fit.
// Used for shift amounts and small index arguments.
func (a Integer) ToUint32() (uint32, error) {
	if a.v.Sign() < 0 || !a.v.IsUint64() || a.v.Uint64() > 1<<32-1 {
		return 0, &Overflow{Value: a.v.String(), Target: "uint32", Bits: uint(a.v.BitLen())}
	}
	return uint32(a.v.Uint64()), nil
}

// ToInt narrows a to a platform int (used for slice lengths/indices),
// reporting Overflow if a does not fit.
func (a Integer) ToInt() (int, error) {
	i64, err := a.ToInt64()
	if err != nil {
		return 0, err
	}
	if int64(int(i64)) != i64 {
		return 0, &Overflow{Value: a.v.String(), Target: "int", Bits: uint(a.v.BitLen())}
	}
	return int(i64), nil
}

// Overflow reports that Value (Bits bits long) could not be represented as
// Target.
type Overflow struct {
	Value  string
	Target string
	Bits   uint
}

func (e *Overflow) Error() string {
	return "numeric: " + e.Value + " (" + humanize.Comma(int64(e.Bits)) + " bits) does not fit in " + e.Target
}

var errDivByZero = &DivByZero{}

// DivByZero is returned by FloorDiv/Rem and Ratio construction when the
// divisor/denominator is zero.
type DivByZero struct{}

func (*DivByZero) Error() string { return "numeric: division by zero" }

// Ratio is an exact rational number, always kept in lowest terms with a
// positive denominator (math/big.Rat's own normal form).
type Ratio struct {
	v *big.Rat
}

// NewRatio builds num/denom, erroring if denom is zero.
func NewRatio(num, denom Integer) (Ratio, error) {
	if denom.v.Sign() == 0 {
		return Ratio{}, errDivByZero
	}
	r := new(big.Rat).SetFrac(num.v, denom.v)
	return Ratio{r}, nil
}

// Numer returns the (lowest-terms) numerator.
func (r Ratio) Numer() Integer { return Integer{new(big.Int).Set(r.v.Num())} }

// Denom returns the (lowest-terms, always positive) denominator.
func (r Ratio) Denom() Integer { return Integer{new(big.Int).Set(r.v.Denom())} }

// Add returns a + b.
func (a Ratio) Add(b Ratio) Ratio { return Ratio{new(big.Rat).Add(a.v, b.v)} }

// Sub returns a - b.
func (a Ratio) Sub(b Ratio) Ratio { return Ratio{new(big.Rat).Sub(a.v, b.v)} }

// Mul returns a * b.
func (a Ratio) Mul(b Ratio) Ratio { return Ratio{new(big.Rat).Mul(a.v, b.v)} }

// Div returns a / b, erroring if b is zero.
func (a Ratio) Div(b Ratio) (Ratio, error) {
	if b.v.Sign() == 0 {
		return Ratio{}, errDivByZero
	}
	return Ratio{new(big.Rat).Quo(a.v, b.v)}, nil
}

// Neg returns -a.
func (a Ratio) Neg() Ratio { return Ratio{new(big.Rat).Neg(a.v)} }

// Abs returns |a|.
func (a Ratio) Abs() Ratio { return Ratio{new(big.Rat).Abs(a.v)} }

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Ratio) Cmp(b Ratio) int { return a.v.Cmp(b.v) }

// Sign returns -1, 0, or 1 as a is negative, zero, or positive.
func (a Ratio) Sign() int { return a.v.Sign() }

// IsInteger reports whether a's denominator is 1, the condition under
// which some system functions (e.g. pow with an integer-valued ratio
// exponent) take an exact fast path.
func (a Ratio) IsInteger() bool { return a.v.IsInt() }

// ToFloat64 converts a to the nearest float64.
func (a Ratio) ToFloat64() float64 {
	f, _ := a.v.Float64()
	return f
}

// String renders a as "num/denom", or just "num" when the denominator is 1.
func (a Ratio) String() string { return a.v.RatString() }

// Floor returns the Integer nearest a rounding toward negative infinity.
func (a Ratio) Floor() Integer {
	m := new(big.Int)
	q := new(big.Int).DivMod(a.v.Num(), a.v.Denom(), m)
	return Integer{q}
}

// Ceil returns the Integer nearest a rounding toward positive infinity.
func (a Ratio) Ceil() Integer {
	m := new(big.Int)
	negNum := new(big.Int).Neg(a.v.Num())
	q := new(big.Int).DivMod(negNum, a.v.Denom(), m)
	return Integer{q.Neg(q)}
}

// Trunc returns the Integer nearest a rounding toward zero.
func (a Ratio) Trunc() Integer {
	return Integer{new(big.Int).Quo(a.v.Num(), a.v.Denom())}
}

// Round returns the Integer nearest a, rounding a half-way case away from
// zero.
func (a Ratio) Round() Integer {
	num, den := a.v.Num(), a.v.Denom()
	q, r := new(big.Int), new(big.Int)
	q.QuoRem(new(big.Int).Abs(num), den, r)
	if new(big.Int).Lsh(r, 1).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if num.Sign() < 0 {
		q.Neg(q)
	}
	return Integer{q}
}

// Fract returns the fractional part of a, keeping a's sign (a - Trunc(a)).
func (a Ratio) Fract() Ratio {
	whole := Ratio{new(big.Rat).SetInt(a.Trunc().v)}
	return a.Sub(whole)
}

// Recip returns 1/a, erroring if a's numerator is zero.
func (a Ratio) Recip() (Ratio, error) {
	if a.v.Num().Sign() == 0 {
		return Ratio{}, errDivByZero
	}
	return Ratio{new(big.Rat).Inv(a.v)}, nil
}

// PowRatioInt raises the exact ratio base to a non-negative integer
// exponent, staying exact (ketos's pow_ratio_integer fast path). Negative
// exponents and non-integer ratio exponents fall back to float
// exponentiation at the call site, since they cannot stay exact.
func PowRatioInt(base Ratio, exp uint) Ratio {
	num := new(big.Int).Exp(base.v.Num(), new(big.Int).SetUint64(uint64(exp)), nil)
	den := new(big.Int).Exp(base.v.Denom(), new(big.Int).SetUint64(uint64(exp)), nil)
	return Ratio{new(big.Rat).SetFrac(num, den)}
}

// PowInt raises an exact integer base to a non-negative integer exponent.
func PowInt(base Integer, exp uint) Integer {
	return Integer{new(big.Int).Exp(base.v, new(big.Int).SetUint64(uint64(exp)), nil)}
}

// RatioFromFloat converts f to an exact Ratio, reporting false for a
// non-finite f (NaN or +/-Inf have no exact rational representation).
func RatioFromFloat(f float64) (Ratio, bool) {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		return Ratio{}, false
	}
	return Ratio{r}, true
}
