package stdlib

import (
	"fmt"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/types"
)

// registerPrint wires the single-argument "print" builtin every example
// program in spec.md 8 relies on. It writes to stdout directly rather than
// through a host-injected writer, matching the teacher's own top-level
// builtins (print/println print straight to the process's stdout).
func registerPrint(reg *registry.Registry) {
	reg.Register("print", registry.NewFunc([]types.ID{types.Unknown}, func(args []box.Value) (box.Value, error) {
		fmt.Println(args[0].String())
		return box.Void, nil
	}))
}
