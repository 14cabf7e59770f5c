package stdlib

import (
	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/registry"
)

// Bootstrap registers the full ambient surface a freshly constructed
// engine needs before any script can run: operators, containers, print,
// uuid, and the JSON/YAML interop builtins. Mirrors funvibe-funxy's
// pattern of a single entry point fanning out to one register call per
// builtins_*.go file.
func Bootstrap(reg *registry.Registry, cache *box.Cache) {
	registerOperators(reg, cache)
	registerContainers(reg, cache)
	registerPrint(reg)
	registerUUID(reg, cache)
	registerJSON(reg, cache)
	registerYAML(reg, cache)
}
