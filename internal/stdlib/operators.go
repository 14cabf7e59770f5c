package stdlib

import (
	"reflect"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

// registerOperators wires the arithmetic, comparison, boolean, and
// assignment operators the Additive/Multiplicative/Comparison/Negate/Not/
// Equation evaluation rules dispatch by name, per spec.md 4.5. Operators
// that need to choose between a type-specific behaviour (string "+"
// concatenation) and a generic POD fallback register the specific overload
// first, relying on internal/registry.Call's first-match-wins order.
func registerOperators(reg *registry.Registry, cache *box.Cache) {
	unknown2 := []types.ID{types.Unknown, types.Unknown}
	unknown1 := []types.ID{types.Unknown}
	string2 := []types.ID{stringType, stringType}

	reg.Register("+", registry.NewFunc(string2, func(args []box.Value) (box.Value, error) {
		a, err := box.Cast[string](args[0])
		if err != nil {
			return box.Void, err
		}
		b, err := box.Cast[string](args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(a + b), nil
	}))
	reg.Register("+", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Add(cache, args[0], args[1])
	}))

	reg.Register("-", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Sub(cache, args[0], args[1])
	}))
	reg.Register("-", registry.NewFunc(unknown1, func(args []box.Value) (box.Value, error) {
		return box.Neg(cache, args[0])
	}))

	reg.Register("*", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Mul(cache, args[0], args[1])
	}))
	reg.Register("/", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Div(cache, args[0], args[1])
	}))
	reg.Register("%", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Mod(cache, args[0], args[1])
	}))

	reg.Register("!", registry.NewFunc(unknown1, func(args []box.Value) (box.Value, error) {
		truthy, err := box.Truthy(args[0])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(!truthy), nil
	}))
	reg.Register("&&", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		a, err := box.Truthy(args[0])
		if err != nil {
			return box.Void, err
		}
		b, err := box.Truthy(args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(a && b), nil
	}))
	reg.Register("||", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		a, err := box.Truthy(args[0])
		if err != nil {
			return box.Void, err
		}
		b, err := box.Truthy(args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(a || b), nil
	}))

	registerOrdering(reg, cache, "<", func(c int) bool { return c < 0 })
	registerOrdering(reg, cache, "<=", func(c int) bool { return c <= 0 })
	registerOrdering(reg, cache, ">", func(c int) bool { return c > 0 })
	registerOrdering(reg, cache, ">=", func(c int) bool { return c >= 0 })

	reg.Register("==", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		eq, err := equalValues(args[0], args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(eq), nil
	}))
	reg.Register("!=", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		eq, err := equalValues(args[0], args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(!eq), nil
	}))

	reg.Register("=", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return args[1], nil
	}))
	reg.Register("+=", registry.NewFunc(string2, func(args []box.Value) (box.Value, error) {
		a, err := box.Cast[string](args[0])
		if err != nil {
			return box.Void, err
		}
		b, err := box.Cast[string](args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(a + b), nil
	}))
	reg.Register("+=", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Add(cache, args[0], args[1])
	}))
	reg.Register("-=", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Sub(cache, args[0], args[1])
	}))
	reg.Register("*=", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Mul(cache, args[0], args[1])
	}))
	reg.Register("/=", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		return box.Div(cache, args[0], args[1])
	}))
}

func registerOrdering(reg *registry.Registry, cache *box.Cache, name string, accept func(int) bool) {
	reg.Register(name, registry.NewFunc([]types.ID{types.Unknown, types.Unknown}, func(args []box.Value) (box.Value, error) {
		c, err := box.Compare(args[0], args[1])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(accept(c)), nil
	}))
}

// equalValues implements "==" over any pair of boxed values: numeric PODs
// compare via the POD view, strings compare by value, and everything else
// falls back to structural equality over the raw payload.
func equalValues(a, b box.Value) (bool, error) {
	if box.IsNumeric(a) && box.IsNumeric(b) {
		c, err := box.Compare(a, b)
		if err != nil {
			return false, err
		}
		return c == 0, nil
	}
	if sa, err := box.Cast[string](a); err == nil {
		sb, err := box.Cast[string](b)
		if err != nil {
			return false, nil
		}
		return sa == sb, nil
	}
	if a.IsUnknown() || b.IsUnknown() {
		return a.IsUnknown() == b.IsUnknown(), nil
	}
	return reflect.DeepEqual(a.Raw(), b.Raw()), nil
}
