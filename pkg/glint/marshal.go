package glint

import (
	"fmt"
	"reflect"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

// bindReflected converts a Go func into a dispatch overload the same way
// funvibe-funxy/pkg/embed/marshaller.go's ToValue converts a Go func into
// a callable host object: the func is wrapped as a registry.Overload whose
// params are all declared unknown (one per func argument) and whose Invoke
// converts each boxed argument to the func's argument type, reflect-calls
// it, and boxes the first result back out. Any non-func value is rejected
// with an error.
func bindReflected(reg *registry.Registry, cache *box.Cache, name string, goValue any) error {
	rv := reflect.ValueOf(goValue)
	if rv.Kind() != reflect.Func {
		return fmt.Errorf("glint: Bind(%q): only functions are supported, got %T", name, goValue)
	}
	reg.Register(name, &hostFunc{name: name, fn: rv, cache: cache})
	return nil
}

// hostFunc adapts a reflected Go function to registry.Overload.
type hostFunc struct {
	name  string
	fn    reflect.Value
	cache *box.Cache
}

func (h *hostFunc) Arity() int {
	return h.fn.Type().NumIn()
}

func (h *hostFunc) ParamTypes() []types.ID {
	t := h.fn.Type()
	params := make([]types.ID, t.NumIn())
	for i := range params {
		params[i] = types.Unknown
	}
	return params
}

func (h *hostFunc) Invoke(args []box.Value) (box.Value, error) {
	t := h.fn.Type()
	if len(args) != t.NumIn() && !t.IsVariadic() {
		return box.Void, fmt.Errorf("%s: expected %d argument(s), got %d", h.name, t.NumIn(), len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var target reflect.Type
		switch {
		case t.IsVariadic() && i >= t.NumIn()-1:
			target = t.In(t.NumIn() - 1).Elem()
		default:
			target = t.In(i)
		}
		converted, err := toGoTyped(a, target)
		if err != nil {
			return box.Void, fmt.Errorf("%s: argument %d: %w", h.name, i, err)
		}
		in[i] = converted
	}

	out := h.fn.Call(in)
	switch len(out) {
	case 0:
		return box.Void, nil
	case 1:
		return toBoxed(h.cache, out[0]), nil
	default:
		// Multiple returns: box the first, treat a trailing error as the
		// call's error per Go convention.
		last := out[len(out)-1]
		if err, ok := last.Interface().(error); ok && err != nil {
			return box.Void, err
		}
		return toBoxed(h.cache, out[0]), nil
	}
}

func toGoTyped(v box.Value, target reflect.Type) (reflect.Value, error) {
	raw := v.Raw()
	if raw == nil {
		return reflect.Zero(target), nil
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Type().ConvertibleTo(target) {
		return rv.Convert(target), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot convert %s to %s", rv.Type(), target)
}

func toBoxed(cache *box.Cache, rv reflect.Value) box.Value {
	if !rv.IsValid() {
		return box.Void
	}
	return cache.Wrap(rv.Interface())
}
