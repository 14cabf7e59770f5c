// Package scope implements the scope stack from spec.md 4.6: an ordered
// stack of frames, each a mapping from identifier to boxed value, with
// lookups scanning top-to-bottom and assignment mutating the nearest
// enclosing binding.
//
// Grounded on funvibe-funxy/internal/evaluator/environment.go
// (Get/Set/Update against a store + an outer pointer chain), kept as a
// linked chain of frames rather than a slice so that a closure can retain
// a reference to the exact frame chain active at its definition even
// after the ambient call/block stack has popped past it - per spec.md 9's
// design note that closures must hold scopes by shared ownership and that
// captured frame lifetime extends to the last surviving closure. Set is
// split into Declare (funxy's Set: always binds in the current frame) and
// Assign (funxy's Update: mutates the nearest existing binding).
package scope

import "github.com/glint-lang/glint/internal/box"

// Frame is one layer of identifier -> boxed-value bindings. Cells are
// pointers so that Equation evaluation can alias a scope binding directly
// (see internal/box.Value.Assign and DESIGN.md OQ-2) instead of copying.
type Frame struct {
	vars  map[string]*box.Value
	outer *Frame
}

func newFrame(outer *Frame) *Frame {
	return &Frame{vars: make(map[string]*box.Value), outer: outer}
}

// Stack tracks the currently active frame chain. "Stack" names the API
// shape spec.md 4.6 describes (push_frame/pop_frame/declare/lookup/assign);
// internally it is the head of a linked chain of Frames so closures can
// snapshot and later resume an arbitrary point in that chain.
type Stack struct {
	cur   *Frame
	cache *box.Cache
}

// New constructs a stack with a single bottom frame, per spec.md 4.5's
// File evaluation running "in the bottom frame". cache may be nil for
// callers (tests) that do not need value-cache bookkeeping.
func New(cache *box.Cache) *Stack {
	return &Stack{cur: newFrame(nil), cache: cache}
}

// Push creates a fresh frame on top of the stack, per spec.md 4.6's
// push_frame.
func (s *Stack) Push() {
	s.cur = newFrame(s.cur)
}

// Pop discards the top frame, per spec.md 4.6's pop_frame. The frame
// itself is not force-collected: if a closure captured it via Snapshot it
// survives, per spec.md 9's cyclic-closures note.
func (s *Stack) Pop() {
	if s.cur.outer != nil {
		s.cur = s.cur.outer
	}
}

// Depth reports the number of live frames, used by spec.md 8's scope
// discipline property (depth at entry equals depth after eval_string
// returns, success or failure).
func (s *Stack) Depth() int {
	d := 0
	for f := s.cur; f != nil; f = f.outer {
		d++
	}
	return d
}

// Snapshot returns the current frame, for a closure (Def/Lambda) to
// capture by reference at definition time.
func (s *Stack) Snapshot() *Frame {
	return s.cur
}

// EnterClosure pushes a fresh frame whose outer chain is captured, not the
// stack's current chain, then returns a function that restores the
// stack's previous position. Used to invoke a script-callable against the
// frame chain that was live when it was defined, per spec.md 9.
func (s *Stack) EnterClosure(captured *Frame) (leave func()) {
	prev := s.cur
	s.cur = newFrame(captured)
	return func() { s.cur = prev }
}

// Declare binds name to v in the top frame only, per spec.md 4.6's
// declare(name, value). Redeclaration in the same top frame silently
// rebinds, per spec.md 4.6; the previous cell's value is released from the
// cache first.
func (s *Stack) Declare(name string, v box.Value) *box.Value {
	if old, ok := s.cur.vars[name]; ok {
		s.release(*old)
	}
	cell := new(box.Value)
	*cell = v
	s.cur.vars[name] = cell
	return cell
}

// Lookup scans top-to-bottom and returns a mutable cell reference, per
// spec.md 4.6's lookup(name). Shadowing across frames is permitted: the
// innermost binding wins.
func (s *Stack) Lookup(name string) (*box.Value, bool) {
	for f := s.cur; f != nil; f = f.outer {
		if cell, ok := f.vars[name]; ok {
			return cell, true
		}
	}
	return nil, false
}

// Assign mutates the nearest enclosing binding for name in place, per
// spec.md 4.6's assign(name, value); it fails (returns false) if name is
// not bound anywhere on the stack.
func (s *Stack) Assign(name string, v box.Value) bool {
	cell, ok := s.Lookup(name)
	if !ok {
		return false
	}
	s.release(*cell)
	cell.Assign(v)
	return true
}

func (s *Stack) release(v box.Value) {
	if s.cache != nil {
		s.cache.Release(v)
	}
}
