package sysfn

import (
	"math"

	"quill/internal/numeric"
	"quill/internal/value"
)

// numericRank orders the three numeric kinds from narrowest to widest, so
// coerceNumbers can widen every operand in a call to the rank of the
// widest one present — exactly ketos's coerce_numbers rule.
func numericRank(k value.Kind) int {
	switch k {
	case value.KindInteger:
		return 0
	case value.KindRatio:
		return 1
	case value.KindFloat:
		return 2
	default:
		return -1
	}
}

func expectNumber(v value.Value) error {
	if numericRank(v.Kind) < 0 {
		return value.New(value.ErrTypeMismatch, "expected a number, found "+v.TypeName())
	}
	return nil
}

// coerceNumbers widens every element of vs in place to the rank of the
// widest numeric kind present, and returns that common Kind. It errors if
// any element is not a number at all.
func coerceNumbers(vs []value.Value) (value.Kind, error) {
	rank := 0
	for _, v := range vs {
		if err := expectNumber(v); err != nil {
			return 0, err
		}
		if r := numericRank(v.Kind); r > rank {
			rank = r
		}
	}
	target := []value.Kind{value.KindInteger, value.KindRatio, value.KindFloat}[rank]
	for i := range vs {
		widen(&vs[i], target)
	}
	return target, nil
}

func widen(v *value.Value, target value.Kind) {
	if v.Kind == target {
		return
	}
	switch target {
	case value.KindRatio:
		if v.Kind == value.KindInteger {
			r, _ := numeric.NewRatio(v.Int, numeric.NewInteger(1))
			*v = value.NewRatio(r)
		}
	case value.KindFloat:
		switch v.Kind {
		case value.KindInteger:
			*v = value.NewFloat(v.Int.ToFloat64())
		case value.KindRatio:
			*v = value.NewFloat(v.Ratio.ToFloat64())
		}
	}
}

func fnAdd(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.NewInteger(numeric.NewInteger(0)), nil
	}
	kind, err := coerceNumbers(args)
	if err != nil {
		return value.Unit, err
	}
	acc := args[0]
	for _, v := range args[1:] {
		acc = addTwo(acc, v, kind)
	}
	return acc, nil
}

func addTwo(a, b value.Value, kind value.Kind) value.Value {
	switch kind {
	case value.KindInteger:
		return value.NewInteger(a.Int.Add(b.Int))
	case value.KindRatio:
		return value.NewRatio(a.Ratio.Add(b.Ratio))
	default:
		return value.NewFloat(a.Float + b.Float)
	}
}

func fnSub(args []value.Value) (value.Value, error) {
	kind, err := coerceNumbers(args)
	if err != nil {
		return value.Unit, err
	}
	if len(args) == 1 {
		return negate(args[0], kind), nil
	}
	acc := args[0]
	for _, v := range args[1:] {
		acc = subTwo(acc, v, kind)
	}
	return acc, nil
}

func negate(v value.Value, kind value.Kind) value.Value {
	switch kind {
	case value.KindInteger:
		return value.NewInteger(v.Int.Neg())
	case value.KindRatio:
		return value.NewRatio(v.Ratio.Neg())
	default:
		return value.NewFloat(-v.Float)
	}
}

func subTwo(a, b value.Value, kind value.Kind) value.Value {
	switch kind {
	case value.KindInteger:
		return value.NewInteger(a.Int.Sub(b.Int))
	case value.KindRatio:
		return value.NewRatio(a.Ratio.Sub(b.Ratio))
	default:
		return value.NewFloat(a.Float - b.Float)
	}
}

func fnMul(args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.NewInteger(numeric.NewInteger(1)), nil
	}
	kind, err := coerceNumbers(args)
	if err != nil {
		return value.Unit, err
	}
	acc := args[0]
	for _, v := range args[1:] {
		acc = mulTwo(acc, v, kind)
	}
	return acc, nil
}

func mulTwo(a, b value.Value, kind value.Kind) value.Value {
	switch kind {
	case value.KindInteger:
		return value.NewInteger(a.Int.Mul(b.Int))
	case value.KindRatio:
		return value.NewRatio(a.Ratio.Mul(b.Ratio))
	default:
		return value.NewFloat(a.Float * b.Float)
	}
}

// fnDiv implements "/": with one argument it's a reciprocal, otherwise a
// left fold. Integer/Integer division that is not exact promotes to
// Ratio (never silently truncates), matching ketos's own "/" semantics —
// use "//" for floor division.
func fnDiv(args []value.Value) (value.Value, error) {
	// Promote bare integers to ratios up front so "/" is always exact.
	widened := make([]value.Value, len(args))
	copy(widened, args)
	for i, v := range widened {
		if v.Kind == value.KindInteger {
			r, _ := numeric.NewRatio(v.Int, numeric.NewInteger(1))
			widened[i] = value.NewRatio(r)
		}
	}
	if len(widened) == 1 {
		one, _ := numeric.NewRatio(numeric.NewInteger(1), numeric.NewInteger(1))
		widened = append([]value.Value{value.NewRatio(one)}, widened...)
	}
	kind, err := coerceNumbers(widened)
	if err != nil {
		return value.Unit, err
	}
	acc := widened[0]
	for _, v := range widened[1:] {
		acc, err = divTwo(acc, v, kind)
		if err != nil {
			return value.Unit, err
		}
	}
	return acc, nil
}

func divTwo(a, b value.Value, kind value.Kind) (value.Value, error) {
	switch kind {
	case value.KindRatio:
		r, err := a.Ratio.Div(b.Ratio)
		if err != nil {
			return value.Unit, value.New(value.ErrDivideByZero, "division by zero")
		}
		return value.NewRatio(r), nil
	default:
		return value.NewFloat(a.Float / b.Float), nil
	}
}

// fnFloorDiv folds "//" left to right (Integer/Integer pairs floor-divide
// directly; any other pairing divides normally), then floors the final
// accumulated value — so a lone argument is simply floored, matching
// ketos's fn_floor_div.
func fnFloorDiv(args []value.Value) (value.Value, error) {
	for _, v := range args {
		if err := expectNumber(v); err != nil {
			return value.Unit, err
		}
	}
	acc := args[0]
	for _, v := range args[1:] {
		next, err := floorDivStep(acc, v)
		if err != nil {
			return value.Unit, err
		}
		acc = next
	}
	return floorNumber(acc)
}

func floorDivStep(a, b value.Value) (value.Value, error) {
	if a.Kind == value.KindInteger && b.Kind == value.KindInteger {
		q, err := a.Int.FloorDiv(b.Int)
		if err != nil {
			return value.Unit, value.New(value.ErrDivideByZero, "division by zero")
		}
		return value.NewInteger(q), nil
	}
	pair := []value.Value{a, b}
	kind, err := coerceNumbers(pair)
	if err != nil {
		return value.Unit, err
	}
	return divTwo(pair[0], pair[1], kind)
}

func floorNumber(v value.Value) (value.Value, error) {
	switch v.Kind {
	case value.KindInteger:
		return v, nil
	case value.KindFloat:
		return value.NewFloat(math.Floor(v.Float)), nil
	case value.KindRatio:
		return value.NewInteger(v.Ratio.Floor()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "expected a number, found "+v.TypeName())
	}
}

func fnRem(args []value.Value) (value.Value, error) {
	a, b := args[0], args[1]
	if a.Kind != value.KindInteger || b.Kind != value.KindInteger {
		return value.Unit, value.New(value.ErrTypeMismatch, "rem expects two integers")
	}
	r, err := a.Int.Rem(b.Int)
	if err != nil {
		return value.Unit, value.New(value.ErrDivideByZero, "division by zero")
	}
	return value.NewInteger(r), nil
}

// fnZero ("zero?" in the table) reports whether every given value is
// zero, matching ketos's fn_zero fold over all arguments rather than just
// the first.
func fnZero(args []value.Value) (value.Value, error) {
	for _, v := range args {
		var isZero bool
		switch v.Kind {
		case value.KindInteger:
			isZero = v.Int.IsZero()
		case value.KindRatio:
			isZero = v.Ratio.Sign() == 0
		case value.KindFloat:
			isZero = v.Float == 0
		default:
			return value.Unit, value.New(value.ErrTypeMismatch, "zero? expects numbers, found "+v.TypeName())
		}
		if !isZero {
			return value.NewBool(false), nil
		}
	}
	return value.NewBool(true), nil
}

func fnAbs(args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind {
	case value.KindInteger:
		return value.NewInteger(v.Int.Abs()), nil
	case value.KindRatio:
		return value.NewRatio(v.Ratio.Abs()), nil
	case value.KindFloat:
		return value.NewFloat(math.Abs(v.Float)), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "abs expects a number, found "+v.TypeName())
	}
}

func fnMin(args []value.Value) (value.Value, error) {
	return foldOrdered(args, -1)
}

func fnMax(args []value.Value) (value.Value, error) {
	return foldOrdered(args, 1)
}

func foldOrdered(args []value.Value, want int) (value.Value, error) {
	best := args[0]
	for _, v := range args[1:] {
		c, err := value.Compare(v, best)
		if err != nil {
			return value.Unit, err
		}
		if c == want {
			best = v
		}
	}
	return best, nil
}

func fnFloat(args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind {
	case value.KindInteger:
		return value.NewFloat(v.Int.ToFloat64()), nil
	case value.KindRatio:
		return value.NewFloat(v.Ratio.ToFloat64()), nil
	case value.KindFloat:
		return v, nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "float expects a number, found "+v.TypeName())
	}
}

func fnInf(args []value.Value) (value.Value, error) {
	return value.NewFloat(math.Inf(1)), nil
}

func fnNaN(args []value.Value) (value.Value, error) {
	return value.NewFloat(math.NaN()), nil
}

// fnDenom treats an integer as having an implicit denominator of 1,
// matching ketos's fn_denom.
func fnDenom(args []value.Value) (value.Value, error) {
	switch args[0].Kind {
	case value.KindInteger:
		return value.NewInteger(numeric.NewInteger(1)), nil
	case value.KindRatio:
		return value.NewInteger(args[0].Ratio.Denom()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "denom expects an integer or ratio, found "+args[0].TypeName())
	}
}

// fnNumer returns an integer unchanged, matching ketos's fn_numer.
func fnNumer(args []value.Value) (value.Value, error) {
	switch args[0].Kind {
	case value.KindInteger:
		return args[0], nil
	case value.KindRatio:
		return value.NewInteger(args[0].Ratio.Numer()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "numer expects an integer or ratio, found "+args[0].TypeName())
	}
}

// fnRat coerces a single numeric argument to a Ratio, or builds a/b from
// two integers (Range(1,2), matching ketos's fn_rat).
func fnRat(args []value.Value) (value.Value, error) {
	if len(args) == 1 {
		return ratCoerce(args[0])
	}
	num, den := args[0], args[1]
	if num.Kind != value.KindInteger || den.Kind != value.KindInteger {
		return value.Unit, value.New(value.ErrTypeMismatch, "rat expects two integers")
	}
	r, err := numeric.NewRatio(num.Int, den.Int)
	if err != nil {
		return value.Unit, value.New(value.ErrDivideByZero, "zero denominator")
	}
	return value.NewRatio(r), nil
}

func ratCoerce(v value.Value) (value.Value, error) {
	switch v.Kind {
	case value.KindRatio:
		return v, nil
	case value.KindInteger:
		r, _ := numeric.NewRatio(v.Int, numeric.NewInteger(1))
		return value.NewRatio(r), nil
	case value.KindFloat:
		r, ok := numeric.RatioFromFloat(v.Float)
		if !ok {
			return value.Unit, value.New(value.ErrOverflow, "rat: float is not finite")
		}
		return value.NewRatio(r), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "rat expects a number, found "+v.TypeName())
	}
}

// fnPow raises a base to an exponent. An Integer or Ratio base with a
// (possibly ratio-valued) non-negative integer exponent stays exact; every
// other combination falls back through float powf, matching ketos's
// pow_number.
func fnPow(args []value.Value) (value.Value, error) {
	a, b := args[0], args[1]
	if err := expectNumber(a); err != nil {
		return value.Unit, err
	}
	if err := expectNumber(b); err != nil {
		return value.Unit, err
	}
	if a.Kind == value.KindRatio {
		if b.Kind == value.KindInteger {
			return powRatioInt(a.Ratio, b.Int)
		}
		if b.Kind == value.KindRatio && b.Ratio.IsInteger() {
			return powRatioInt(a.Ratio, b.Ratio.Numer())
		}
	}
	pair := []value.Value{a, b}
	kind, err := coerceNumbers(pair)
	if err != nil {
		return value.Unit, err
	}
	switch kind {
	case value.KindInteger:
		if pair[1].Int.Sign() < 0 {
			return value.NewFloat(math.Pow(pair[0].Int.ToFloat64(), pair[1].Int.ToFloat64())), nil
		}
		exp, err := pair[1].Int.ToUint32()
		if err != nil {
			return value.Unit, value.New(value.ErrOverflow, err.Error())
		}
		return value.NewInteger(numeric.PowInt(pair[0].Int, uint(exp))), nil
	case value.KindRatio:
		return value.NewFloat(math.Pow(pair[0].Ratio.ToFloat64(), pair[1].Ratio.ToFloat64())), nil
	default:
		return value.NewFloat(math.Pow(pair[0].Float, pair[1].Float)), nil
	}
}

func powRatioInt(base numeric.Ratio, exp numeric.Integer) (value.Value, error) {
	if exp.Sign() < 0 {
		return value.NewFloat(math.Pow(base.ToFloat64(), exp.ToFloat64())), nil
	}
	n, err := exp.ToUint32()
	if err != nil {
		return value.Unit, value.New(value.ErrOverflow, err.Error())
	}
	return value.NewRatio(numeric.PowRatioInt(base, uint(n))), nil
}

// fnShl and fnShr require both operands to be integers; the shift amount
// must fit in 32 bits unsigned, else Overflow.
func fnShl(args []value.Value) (value.Value, error) {
	a, b, err := twoIntegers(args, "<<")
	if err != nil {
		return value.Unit, err
	}
	n, err := b.ToUint32()
	if err != nil {
		return value.Unit, value.New(value.ErrOverflow, err.Error())
	}
	return value.NewInteger(a.Shl(n)), nil
}

func fnShr(args []value.Value) (value.Value, error) {
	a, b, err := twoIntegers(args, ">>")
	if err != nil {
		return value.Unit, err
	}
	n, err := b.ToUint32()
	if err != nil {
		return value.Unit, value.New(value.ErrOverflow, err.Error())
	}
	return value.NewInteger(a.Shr(n)), nil
}

func twoIntegers(args []value.Value, who string) (numeric.Integer, numeric.Integer, error) {
	a, b := args[0], args[1]
	if a.Kind != value.KindInteger {
		return numeric.Integer{}, numeric.Integer{}, value.New(value.ErrTypeMismatch, who+" expects an integer, found "+a.TypeName())
	}
	if b.Kind != value.KindInteger {
		return numeric.Integer{}, numeric.Integer{}, value.New(value.ErrTypeMismatch, who+" expects an integer, found "+b.TypeName())
	}
	return a.Int, b.Int, nil
}

// fnCeil, fnFloor, fnRound, and fnTrunc round a number value; an Integer
// argument always passes through unchanged.
func fnCeil(args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Kind {
	case value.KindInteger:
		return v, nil
	case value.KindFloat:
		return value.NewFloat(math.Ceil(v.Float)), nil
	case value.KindRatio:
		return value.NewInteger(v.Ratio.Ceil()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "ceil expects a number, found "+v.TypeName())
	}
}

func fnFloor(args []value.Value) (value.Value, error) {
	return floorNumber(args[0])
}

func fnRound(args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Kind {
	case value.KindInteger:
		return v, nil
	case value.KindFloat:
		return value.NewFloat(math.Round(v.Float)), nil
	case value.KindRatio:
		return value.NewInteger(v.Ratio.Round()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "round expects a number, found "+v.TypeName())
	}
}

func fnTrunc(args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Kind {
	case value.KindInteger:
		return v, nil
	case value.KindFloat:
		return value.NewFloat(math.Trunc(v.Float)), nil
	case value.KindRatio:
		return value.NewInteger(v.Ratio.Trunc()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "trunc expects a number, found "+v.TypeName())
	}
}

// fnFract returns the fractional portion of a float or ratio; integers
// have none, so (unlike ceil/floor/round/trunc) fnFract rejects them.
func fnFract(args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Kind {
	case value.KindFloat:
		return value.NewFloat(v.Float - math.Trunc(v.Float)), nil
	case value.KindRatio:
		return value.NewRatio(v.Ratio.Fract()), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "fract expects a float or ratio, found "+v.TypeName())
	}
}

// fnRecip returns the reciprocal of a number; an Integer argument
// produces a Ratio, matching ketos's fn_recip.
func fnRecip(args []value.Value) (value.Value, error) {
	switch v := args[0]; v.Kind {
	case value.KindFloat:
		return value.NewFloat(1 / v.Float), nil
	case value.KindInteger:
		if v.Int.IsZero() {
			return value.Unit, value.New(value.ErrDivideByZero, "division by zero")
		}
		r, _ := numeric.NewRatio(numeric.NewInteger(1), v.Int)
		return value.NewRatio(r), nil
	case value.KindRatio:
		r, err := v.Ratio.Recip()
		if err != nil {
			return value.Unit, value.New(value.ErrDivideByZero, "division by zero")
		}
		return value.NewRatio(r), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "recip expects a number, found "+v.TypeName())
	}
}

func fnInt(args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind {
	case value.KindInteger:
		return v, nil
	case value.KindRatio:
		return value.NewInteger(v.Ratio.Trunc()), nil
	case value.KindFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return value.Unit, value.New(value.ErrOverflow, "float is not finite")
		}
		return value.NewInteger(numeric.NewInteger(int64(v.Float))), nil
	default:
		return value.Unit, value.New(value.ErrTypeMismatch, "int expects a number, found "+v.TypeName())
	}
}

func fnXor(args []value.Value) (value.Value, error) {
	a, b := args[0], args[1]
	if a.Kind != value.KindBool || b.Kind != value.KindBool {
		return value.Unit, value.New(value.ErrTypeMismatch, "xor expects two bools")
	}
	return value.NewBool(a.Bool != b.Bool), nil
}
