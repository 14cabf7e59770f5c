package stdlib

import (
	"github.com/google/uuid"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/registry"
)

// registerUUID wires the zero-argument "uuid" builtin scripts use to mint
// identifiers for records they build, e.g. map entries destined for
// to_yaml/json_set output.
func registerUUID(reg *registry.Registry, cache *box.Cache) {
	reg.Register("uuid", registry.NewFunc(nil, func(args []box.Value) (box.Value, error) {
		return cache.Wrap(uuid.NewString()), nil
	}))
}
