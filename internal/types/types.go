// Package types implements the type identity kernel: a token that uniquely
// identifies a host type at runtime and answers equality and is-this-type
// questions. Identity is resolved from a Go reflect.Type, which already
// gives every distinct host type a stable, comparable descriptor.
package types

import "reflect"

// ID is an opaque handle to a host type descriptor. Two IDs compare equal
// iff they name the same host type. The zero ID is the distinguished
// unknown/void identity.
type ID struct {
	rt reflect.Type
}

// Unknown is the void/unknown type identity: the zero value of ID.
var Unknown = ID{}

// Of returns the type identity for the Go value v. A nil interface value
// yields Unknown.
func Of(v interface{}) ID {
	if v == nil {
		return Unknown
	}
	return ID{rt: reflect.TypeOf(v)}
}

// OfType returns the type identity for an explicit reflect.Type, for
// callers that already hold one (e.g. a host function's declared parameter
// type) rather than a value.
func OfType(rt reflect.Type) ID {
	return ID{rt: rt}
}

// IsUnknown reports whether id is the void/unknown identity.
func (id ID) IsUnknown() bool {
	return id.rt == nil
}

// Equal reports whether id and other name the same host type. Unknown
// never equals a concrete type, even compared to itself it is only equal
// by convention when both sides are explicitly "accept anything" markers;
// callers that need "accepts anything" semantics should check IsUnknown
// directly rather than relying on Equal(Unknown, Unknown).
func (id ID) Equal(other ID) bool {
	return id.rt == other.rt
}

// Name returns a human-readable name for the identity, used in error
// messages (DispatchError, BadBoxedCast).
func (id ID) Name() string {
	if id.rt == nil {
		return "void"
	}
	return id.rt.String()
}

// ReflectType exposes the underlying reflect.Type, for the reflection-based
// marshalling in pkg/glint. Returns nil for Unknown.
func (id ID) ReflectType() reflect.Type {
	return id.rt
}

// AcceptsArgument reports whether a parameter declared with identity id
// accepts an argument of identity arg, per spec.md 4.3: an unknown/void
// parameter accepts anything; otherwise the identities must match exactly.
func (id ID) AcceptsArgument(arg ID) bool {
	if id.IsUnknown() {
		return true
	}
	return id.Equal(arg)
}

func (id ID) String() string {
	return id.Name()
}
