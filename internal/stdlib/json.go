package stdlib

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

// registerJSON wires json_get/json_set, letting a script reach into a
// JSON document by gjson/sjson path syntax without climbing a parsed
// Map/Vector tree first - grounded on CWBudde-go-dws's builtins_json.go
// path-string convention.
func registerJSON(reg *registry.Registry, cache *box.Cache) {
	unknown2 := []types.ID{types.Unknown, types.Unknown}
	unknown3 := []types.ID{types.Unknown, types.Unknown, types.Unknown}

	reg.Register("json_get", registry.NewFunc(unknown2, func(args []box.Value) (box.Value, error) {
		doc, err := box.Cast[string](args[0])
		if err != nil {
			return box.Void, err
		}
		path, err := box.Cast[string](args[1])
		if err != nil {
			return box.Void, err
		}
		res := gjson.Get(doc, path)
		if !res.Exists() {
			return box.Void, &diag.EvalError{Reason: "json path not found: " + path}
		}
		return fromGo(cache, res.Value()), nil
	}))

	reg.Register("json_set", registry.NewFunc(unknown3, func(args []box.Value) (box.Value, error) {
		doc, err := box.Cast[string](args[0])
		if err != nil {
			return box.Void, err
		}
		path, err := box.Cast[string](args[1])
		if err != nil {
			return box.Void, err
		}
		out, err := sjson.Set(doc, path, toGo(args[2]))
		if err != nil {
			return box.Void, &diag.EvalError{Reason: "json_set: " + err.Error()}
		}
		return cache.Wrap(out), nil
	}))
}
