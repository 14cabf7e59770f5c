package registry

import (
	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/types"
)

// Func is the common Overload implementation: a fixed parameter-type list
// plus a trampoline closure. The bootstrap surface (internal/stdlib) builds
// its overloads this way; the evaluator's Def handling registers its own
// funcOverload type instead, with parameter types all "unknown" per
// spec.md 4.5.
type Func struct {
	params []types.ID
	fn     func(args []box.Value) (box.Value, error)
}

// NewFunc constructs an Overload with the given declared parameter type
// identities and trampoline. Pass types.Unknown for every parameter to
// accept any argument type, as spec.md 4.5 requires for Def and Lambda.
func NewFunc(params []types.ID, fn func(args []box.Value) (box.Value, error)) *Func {
	return &Func{params: params, fn: fn}
}

func (f *Func) Arity() int               { return len(f.params) }
func (f *Func) ParamTypes() []types.ID   { return f.params }
func (f *Func) Invoke(args []box.Value) (box.Value, error) { return f.fn(args) }
