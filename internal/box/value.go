// Package box implements the boxed-value kernel of spec.md 4.1: a uniform
// container carrying any host value together with its runtime type
// identity, the value cache that preserves identity across re-boxings of
// the same underlying object, and the POD coercion view used for
// arithmetic and comparison.
//
// Grounded on original_source/include/chaiscript/dispatchkit/boxed_value.hpp:
// Boxed_Value's Data{m_type_info, m_obj, m_is_ref} maps onto Value's
// {typeID, payload, isRef}; Cast_Helper<T>'s specializations map onto the
// Cast/CastPointer/CastShared/CastSelf functions below.
package box

import (
	"fmt"
	"reflect"

	"github.com/glint-lang/glint/internal/diag"
	"github.com/glint-lang/glint/internal/types"
)

// Value is the boxed value from spec.md 3: type_info + payload + is_ref.
// It is conceptually immutable with respect to its type binding -
// assignment rebinds the whole record via Assign, never by mutating one
// field at a time from the outside.
type Value struct {
	typeID  types.ID
	payload interface{}
	owned   bool
	isRef   bool
}

// Void is the distinguished empty boxed value: type_info is Unknown and
// the payload is empty, per spec.md 3's invariant.
var Void = Value{}

// TypeOf returns v's type identity.
func (v Value) TypeOf() types.ID { return v.typeID }

// IsUnknown reports whether v is void.
func (v Value) IsUnknown() bool { return v.typeID.IsUnknown() }

// IsRef reports whether the payload is a non-owning reference.
func (v Value) IsRef() bool { return v.isRef }

// IsOwned reports whether the payload is an owned shared instance.
func (v Value) IsOwned() bool { return v.owned }

// Assign rebinds the receiver to rhs's record in place. Every other Value
// that aliases the same scope cell (see internal/scope) observes the new
// binding immediately, because Equation evaluation always operates on the
// *Value obtained from the scope frame rather than a copy - this resolves
// spec.md 9's Open Question about the '=' operator's left-evaluation
// protocol the way Boxed_Value::assign does in original_source.
func (v *Value) Assign(rhs Value) {
	v.typeID = rhs.typeID
	v.payload = rhs.payload
	v.owned = rhs.owned
	v.isRef = rhs.isRef
}

// String renders the payload for diagnostics and the print builtin.
func (v Value) String() string {
	if v.IsUnknown() {
		return "void"
	}
	p := v.payload
	if rv := reflect.ValueOf(p); rv.Kind() == reflect.Ptr && !rv.IsNil() {
		p = rv.Elem().Interface()
	}
	return fmt.Sprintf("%v", p)
}

// Raw returns the payload exactly as stored, for callers (the POD view,
// the marshaller in pkg/glint) that already know how to interpret owned
// vs. referenced storage.
func (v Value) Raw() interface{} { return v.payload }

func elemOrSelf(x interface{}) types.ID {
	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Ptr && !rv.IsNil() {
		return types.OfType(rv.Type().Elem())
	}
	return types.Of(x)
}

// Cast recovers a T (or const T&, modelled the same way in Go) from b,
// regardless of whether storage is owned or referenced, per spec.md 4.1's
// cast rule "requesting T or const T&: yields a reference to the
// underlying T regardless of ownership".
func Cast[T any](b Value) (T, error) {
	var zero T
	if b.IsUnknown() {
		return zero, diag.NewBadBoxedCast(b.typeID, types.Of(zero))
	}
	if v, ok := b.payload.(T); ok {
		return v, nil
	}
	if p, ok := b.payload.(*T); ok {
		return *p, nil
	}
	return zero, diag.NewBadBoxedCast(b.typeID, types.Of(zero))
}

// CastPointer recovers a raw pointer to the underlying T, per spec.md
// 4.1's "requesting T* or const T*: yields a raw pointer".
func CastPointer[T any](b Value) (*T, error) {
	if p, ok := b.payload.(*T); ok {
		return p, nil
	}
	var zero *T
	return nil, diag.NewBadBoxedCast(b.typeID, types.Of(zero))
}

// CastShared recovers a shared owner of T. Legal only when storage is
// owned, per spec.md 4.1.
func CastShared[T any](b Value) (*T, error) {
	if !b.owned {
		var zero *T
		return nil, diag.NewBadBoxedCast(b.typeID, types.Of(zero))
	}
	return CastPointer[T](b)
}

// CastSelf returns the boxed value itself - the identity cast.
func CastSelf(b Value) Value { return b }
