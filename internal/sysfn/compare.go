package sysfn

import "quill/internal/value"

// chainCompare applies op pairwise across consecutive arguments (so
// (< 1 2 3) is (and (< 1 2) (< 2 3))), matching ketos's own comparison
// system functions.
func chainCompare(args []value.Value, ok func(c int) bool) (value.Value, error) {
	for i := 0; i+1 < len(args); i++ {
		c, err := value.Compare(args[i], args[i+1])
		if err != nil {
			return value.Unit, err
		}
		if !ok(c) {
			return value.NewBool(false), nil
		}
	}
	return value.NewBool(true), nil
}

func fnLt(args []value.Value) (value.Value, error) {
	return chainCompare(args, func(c int) bool { return c < 0 })
}

func fnLe(args []value.Value) (value.Value, error) {
	return chainCompare(args, func(c int) bool { return c <= 0 })
}

func fnGt(args []value.Value) (value.Value, error) {
	return chainCompare(args, func(c int) bool { return c > 0 })
}

func fnGe(args []value.Value) (value.Value, error) {
	return chainCompare(args, func(c int) bool { return c >= 0 })
}

func fnEq(args []value.Value) (value.Value, error) {
	for i := 0; i+1 < len(args); i++ {
		if !value.IsEqual(args[i], args[i+1]) {
			return value.NewBool(false), nil
		}
	}
	return value.NewBool(true), nil
}

func fnNe(args []value.Value) (value.Value, error) {
	for i := 0; i < len(args); i++ {
		for j := i + 1; j < len(args); j++ {
			if value.IsEqual(args[i], args[j]) {
				return value.NewBool(false), nil
			}
		}
	}
	return value.NewBool(true), nil
}
