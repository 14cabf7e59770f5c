package stdlib

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

// registerYAML wires to_yaml/from_yaml, the boxed-value <-> YAML document
// round-trip. Grounded on funvibe-funxy's builtins_yaml.go
// yamlEncode/yamlDecode pair, retargeted from funxy's own value
// representation onto this kernel's Vector/Map via toGo/fromGo.
func registerYAML(reg *registry.Registry, cache *box.Cache) {
	reg.Register("to_yaml", registry.NewFunc([]types.ID{types.Unknown}, func(args []box.Value) (box.Value, error) {
		out, err := yaml.Marshal(toGo(args[0]))
		if err != nil {
			return box.Void, &diag.EvalError{Reason: "to_yaml: " + err.Error()}
		}
		return cache.Wrap(string(out)), nil
	}))

	reg.Register("from_yaml", registry.NewFunc([]types.ID{stringType}, func(args []box.Value) (box.Value, error) {
		doc, err := box.Cast[string](args[0])
		if err != nil {
			return box.Void, err
		}
		var decoded interface{}
		if err := yaml.Unmarshal([]byte(doc), &decoded); err != nil {
			return box.Void, &diag.EvalError{Reason: "from_yaml: " + err.Error()}
		}
		return fromGo(cache, normalizeYAML(decoded)), nil
	}))
}

// normalizeYAML rewrites yaml.v3's map[string]interface{} decode result
// (and any nested map[interface{}]interface{} a merge key `<<` can still
// produce) so fromGo's type switch handles every level uniformly.
func normalizeYAML(x interface{}) interface{} {
	switch t := x.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			out[k] = normalizeYAML(v)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			out[fmt.Sprintf("%v", k)] = normalizeYAML(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, v := range t {
			out[i] = normalizeYAML(v)
		}
		return out
	default:
		return t
	}
}
