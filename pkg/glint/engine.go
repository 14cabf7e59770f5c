// Package glint implements the host embedding contract of spec.md 6 as a
// concrete Engine type, grounded on funvibe-funxy/pkg/embed.VM: New,
// Bind, Set/Get, and an Eval entry point, retargeted from funxy's own
// bytecode VM onto this kernel's registry + box + scope + eval stack.
package glint

import (
	"os"

	"github.com/google/uuid"

	"github.com/glint-lang/glint/internal/box"
	"github.com/glint-lang/glint/internal/eval"
	"github.com/glint-lang/glint/internal/parser"
	"github.com/glint-lang/glint/internal/registry"
	"github.com/glint-lang/glint/internal/scope"
	"github.com/glint-lang/glint/internal/stdlib"
)

// Engine is one independent instance of the language: its own dispatch
// table, value cache, and global scope, per spec.md 9's "Engine as
// explicit context" design note - nothing here is a package-level
// global, so two Engines in one process never share state. ID tags the
// instance for log/error correlation, the way a host embedding multiple
// script contexts needs to tell them apart.
type Engine struct {
	ID      uuid.UUID
	reg     *registry.Registry
	cache   *box.Cache
	globals *scope.Stack
}

// New constructs an Engine with the stdlib bootstrap surface already
// registered, per spec.md 6's "bootstrap (required collaborator)".
func New() *Engine {
	reg := registry.New()
	cache := box.NewCache()
	stdlib.Bootstrap(reg, cache)
	return &Engine{
		ID:      uuid.New(),
		reg:     reg,
		cache:   cache,
		globals: scope.New(cache),
	}
}

// AddOverload registers a host-provided dispatch overload under name,
// spec.md 6's add_overload.
func (e *Engine) AddOverload(name string, fn registry.Overload) error {
	e.reg.Register(name, fn)
	return nil
}

// Bind wraps a Go function as a dispatch overload via reflection, the same
// conversion funvibe-funxy/pkg/embed/marshaller.go performs for ToValue on
// a host func, and registers it under name - the "host provides
// add_overload" contract of spec.md 6 made concrete rather than left
// abstract. Binding a non-function value returns an error.
func (e *Engine) Bind(name string, goValue any) error {
	return bindReflected(e.reg, e.cache, name, goValue)
}

// EvalString parses and evaluates src as a standalone unit against this
// Engine's live dispatch table, cache, and global scope, spec.md 6's
// eval_string.
func (e *Engine) EvalString(src string) (box.Value, error) {
	n, err := parser.Parse("<eval>", src)
	if err != nil {
		return box.Void, err
	}
	ev := eval.New(e.reg, e.cache, e.globals, "<eval>", src)
	return ev.EvalProgram(n)
}

// EvalFile reads, parses, and evaluates the file at path, spec.md 6's
// eval_file.
func (e *Engine) EvalFile(path string) (box.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return box.Void, err
	}
	src := string(data)
	n, err := parser.Parse(path, src)
	if err != nil {
		return box.Void, err
	}
	ev := eval.New(e.reg, e.cache, e.globals, path, src)
	return ev.EvalProgram(n)
}

// Cache exposes the Engine's value cache so a host can box primitives
// (e.g. a loaded project file's default globals) before calling Set.
func (e *Engine) Cache() *box.Cache {
	return e.cache
}

// Get reads a global binding, spec.md 6's get global.
func (e *Engine) Get(name string) (box.Value, bool) {
	cell, ok := e.globals.Lookup(name)
	if !ok {
		return box.Void, false
	}
	return *cell, true
}

// Set writes a global binding, spec.md 6's set global.
func (e *Engine) Set(name string, v box.Value) error {
	e.globals.Declare(name, v)
	return nil
}
