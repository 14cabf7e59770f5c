// Package stdlib is the bootstrap surface from spec.md 6's "Bootstrap
// (required collaborator)": the set of registry overloads a freshly
// constructed engine needs before any script can do arithmetic, compare
// values, or build a collection literal. Nothing here is part of the CORE
// kernel; it is itself a registry client exactly like a host embedder's
// own add_overload calls would be, split into one file per concern the
// way funvibe-funxy splits its evaluator bootstrap across
// internal/evaluator/builtins_*.go.
package stdlib

import (
	"reflect"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

// Vector is the script-visible growable array, constructed by the
// Inline_Array evaluation rule (constructor + push_back dispatch, per
// SPEC_FULL.md 3) and by the "Vector" builtin directly.
type Vector struct {
	elems []box.Value
}

// Map is the script-visible string-keyed associative container,
// constructed by the Inline_Map evaluation rule (constructor + insert
// dispatch) and by the "Map" builtin directly. Insertion order is recorded
// in order; toGo converts a Map to a plain Go map, so to_yaml output does
// not follow insertion order.
type Map struct {
	order []string
	data  map[string]box.Value
}

// Range is the script-visible half-open numeric range produced by
// Value_Range ("lo..hi") and Inline_Range ("[lo..hi]").
type Range struct {
	Lo, Hi box.Value
}

var (
	vectorType = types.OfType(reflect.TypeOf(Vector{}))
	mapType    = types.OfType(reflect.TypeOf(Map{}))
	rangeType  = types.OfType(reflect.TypeOf(Range{}))
	stringType = types.OfType(reflect.TypeOf(""))
)

// registerContainers wires Vector/Map/Range construction and the handful
// of methods the evaluator's Inline_Array/Inline_Map/Array_Call/Dot_Access
// rules dispatch by name: "Vector", "Map", "Range", "push_back", "insert",
// "size", "begin"/"end" (per spec.md 6's Range.begin/end bootstrap
// requirement), and the binary "[]" index operator.
func registerContainers(reg *registry.Registry, cache *box.Cache) {
	reg.Register("Vector", registry.NewFunc(nil, func(args []box.Value) (box.Value, error) {
		return cache.Wrap(&Vector{}), nil
	}))
	reg.Register("Map", registry.NewFunc(nil, func(args []box.Value) (box.Value, error) {
		return cache.Wrap(&Map{data: map[string]box.Value{}}), nil
	}))
	reg.Register("Range", registry.NewFunc([]types.ID{types.Unknown, types.Unknown}, func(args []box.Value) (box.Value, error) {
		return cache.Wrap(&Range{Lo: args[0], Hi: args[1]}), nil
	}))

	reg.Register("push_back", registry.NewFunc([]types.ID{vectorType, types.Unknown}, func(args []box.Value) (box.Value, error) {
		v, err := box.CastShared[Vector](args[0])
		if err != nil {
			return box.Void, err
		}
		v.elems = append(v.elems, args[1])
		return args[0], nil
	}))

	reg.Register("insert", registry.NewFunc([]types.ID{mapType, types.Unknown, types.Unknown}, func(args []box.Value) (box.Value, error) {
		m, err := box.CastShared[Map](args[0])
		if err != nil {
			return box.Void, err
		}
		key := args[1].String()
		if _, exists := m.data[key]; !exists {
			m.order = append(m.order, key)
		}
		m.data[key] = args[2]
		return args[0], nil
	}))

	reg.Register("size", registry.NewFunc([]types.ID{vectorType}, func(args []box.Value) (box.Value, error) {
		v, err := box.CastShared[Vector](args[0])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(int64(len(v.elems))), nil
	}))
	reg.Register("size", registry.NewFunc([]types.ID{mapType}, func(args []box.Value) (box.Value, error) {
		m, err := box.CastShared[Map](args[0])
		if err != nil {
			return box.Void, err
		}
		return cache.Wrap(int64(len(m.data))), nil
	}))

	reg.Register("[]", registry.NewFunc([]types.ID{vectorType, types.Unknown}, func(args []box.Value) (box.Value, error) {
		v, err := box.CastShared[Vector](args[0])
		if err != nil {
			return box.Void, err
		}
		idx, err := box.Cast[int64](args[1])
		if err != nil {
			return box.Void, err
		}
		if idx < 0 || int(idx) >= len(v.elems) {
			return box.Void, &diag.EvalError{Reason: "index out of range"}
		}
		return v.elems[idx], nil
	}))
	reg.Register("size", registry.NewFunc([]types.ID{rangeType}, func(args []box.Value) (box.Value, error) {
		r, err := box.CastShared[Range](args[0])
		if err != nil {
			return box.Void, err
		}
		return box.Sub(cache, r.Hi, r.Lo)
	}))
	reg.Register("begin", registry.NewFunc([]types.ID{rangeType}, func(args []box.Value) (box.Value, error) {
		r, err := box.CastShared[Range](args[0])
		if err != nil {
			return box.Void, err
		}
		return r.Lo, nil
	}))
	reg.Register("end", registry.NewFunc([]types.ID{rangeType}, func(args []box.Value) (box.Value, error) {
		r, err := box.CastShared[Range](args[0])
		if err != nil {
			return box.Void, err
		}
		return r.Hi, nil
	}))

	reg.Register("[]", registry.NewFunc([]types.ID{mapType, types.Unknown}, func(args []box.Value) (box.Value, error) {
		m, err := box.CastShared[Map](args[0])
		if err != nil {
			return box.Void, err
		}
		key := args[1].String()
		v, ok := m.data[key]
		if !ok {
			return box.Void, &diag.EvalError{Reason: "key not found: " + key}
		}
		return v, nil
	}))
}
