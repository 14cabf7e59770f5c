package stdlib

import "github.com/glint-lang/glint/internal/box"

// toGo converts a boxed value into a plain Go value suitable for
// yaml.Marshal/json encoding: Vector becomes []interface{}, Map becomes
// map[string]interface{}, host numeric/string/bool primitives pass
// through unwrapped, and an unrecognised or void value degrades to its
// String() rendering (or nil for void), so to_yaml/json_set never fail
// outright on an exotic host type.
func toGo(v box.Value) interface{} {
	if v.IsUnknown() {
		return nil
	}
	if vec, err := box.CastShared[Vector](v); err == nil {
		out := make([]interface{}, len(vec.elems))
		for i, e := range vec.elems {
			out[i] = toGo(e)
		}
		return out
	}
	if m, err := box.CastShared[Map](v); err == nil {
		out := make(map[string]interface{}, len(m.data))
		for _, k := range m.order {
			out[k] = toGo(m.data[k])
		}
		return out
	}
	if s, err := box.Cast[string](v); err == nil {
		return s
	}
	if b, err := box.Cast[bool](v); err == nil {
		return b
	}
	if i, err := box.Cast[int64](v); err == nil {
		return i
	}
	if f, err := box.Cast[float64](v); err == nil {
		return f
	}
	return v.String()
}

// fromGo converts a Go value decoded by yaml.Unmarshal/json.Unmarshal back
// into a boxed value tree: sequences become Vector, string-keyed (and
// yaml.v2-style interface-keyed) mappings become Map, scalars wrap
// directly.
func fromGo(cache *box.Cache, x interface{}) box.Value {
	switch t := x.(type) {
	case nil:
		return box.Void
	case bool, string:
		return cache.Wrap(t)
	case int:
		return cache.Wrap(int64(t))
	case int64, float64:
		return cache.Wrap(t)
	case []interface{}:
		vec := &Vector{}
		for _, e := range t {
			vec.elems = append(vec.elems, fromGo(cache, e))
		}
		return cache.Wrap(vec)
	case map[string]interface{}:
		m := &Map{data: make(map[string]box.Value, len(t))}
		for k, v := range t {
			m.order = append(m.order, k)
			m.data[k] = fromGo(cache, v)
		}
		return cache.Wrap(m)
	case map[interface{}]interface{}:
		m := &Map{data: make(map[string]box.Value, len(t))}
		for k, v := range t {
			key := cache.Wrap(k).String()
			m.order = append(m.order, key)
			m.data[key] = fromGo(cache, v)
		}
		return cache.Wrap(m)
	default:
		return box.Void
	}
}
