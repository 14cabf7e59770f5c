// Package registry implements the function registry / dispatcher from
// spec.md 4.3: a name-keyed collection of polymorphic callables, resolved
// over a boxed argument list in registration order.
//
// Grounded on funvibe-funxy/internal/evaluator/ext_registry.go's
// name -> map pattern, turned into a field of an Engine (see pkg/glint)
// instead of a package-level global, per spec.md 9's "explicit context"
// design note.
package registry

import (
	"sync"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/types"
)

// Overload is one concrete callable registered under a name, per spec.md
// 3's "each callable exposes its arity and per-parameter expected type
// identities, and a trampoline that accepts a list of boxed arguments and
// returns a boxed result".
type Overload interface {
	Arity() int
	ParamTypes() []types.ID
	Invoke(args []box.Value) (box.Value, error)
}

// Matches reports whether args' arity and per-argument type identities
// satisfy o's declared signature, per spec.md 4.3's overload resolution
// rule: arity must match and each argument's type identity must match the
// overload's declared parameter identity, with unknown/void parameters
// accepting anything.
func Matches(o Overload, args []box.Value) bool {
	params := o.ParamTypes()
	if len(params) != len(args) {
		return false
	}
	for i, p := range params {
		if !p.AcceptsArgument(args[i].TypeOf()) {
			return false
		}
	}
	return true
}

// Registry is the name -> ordered list of overloads map from spec.md 3.
// It is owned by an Engine, never a package-level singleton.
type Registry struct {
	mu        sync.RWMutex
	overloads map[string][]Overload
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{overloads: make(map[string][]Overload)}
}

// Register appends callable to the overload list for name, per spec.md
// 4.3's register(name, callable). Ordering is stable and insertion-ordered:
// a host-provided overload takes precedence over a later script-defined
// one of the same name and arity only by registering first.
func (r *Registry) Register(name string, callable Overload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overloads[name] = append(r.overloads[name], callable)
}

// Call applies exactly one overload of name to args, per spec.md 4.3's
// call(name, args). It iterates the overload list in registration order
// and invokes the first one whose signature matches; if none matches it
// fails with DispatchError carrying name and the observed argument types.
func (r *Registry) Call(name string, args []box.Value) (box.Value, error) {
	r.mu.RLock()
	list := r.overloads[name]
	r.mu.RUnlock()

	for _, o := range list {
		if Matches(o, args) {
			return o.Invoke(args)
		}
	}

	argTypes := make([]types.ID, len(args))
	for i, a := range args {
		argTypes[i] = a.TypeOf()
	}
	return box.Void, diag.NewDispatchError(name, argTypes)
}

// Has reports whether any overload is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.overloads[name]) > 0
}

// Overloads returns a defensive copy of the overload list registered
// under name, for tooling (e.g. a future "describe" REPL command).
func (r *Registry) Overloads(name string) []Overload {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.overloads[name]
	cp := make([]Overload, len(list))
	copy(cp, list)
	return cp
}

// Names returns every registered name, for tooling.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.overloads))
	for name := range r.overloads {
		names = append(names, name)
	}
	return names
}
