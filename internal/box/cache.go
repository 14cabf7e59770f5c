package box

import (
	"reflect"
	"sync"
)

// Cache is the value cache from spec.md 3: a mapping from the raw address
// of an underlying host object to the latest boxed record observed for
// that address, so two boxed values built from the same shared instance
// preserve identity. Per spec.md 9's design note it is not a process
// global - it is a field of pkg/glint's Engine, so two engines never share
// cache state.
//
// Grounded on original_source/boxed_value.hpp's Object_Cache: a
// std::map<void*, Data> plus a cull() pass that erases entries whose sole
// remaining reference is the cache itself. Go's garbage collector already
// reclaims owned payloads with no other holder, so Cache tracks a
// reference count per entry instead of inspecting shared_ptr::unique() -
// see DESIGN.md OQ-1.
type Cache struct {
	mu      sync.Mutex
	entries map[uintptr]*entry
}

type entry struct {
	value    Value
	refcount uint32
}

// NewCache constructs an empty value cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uintptr]*entry)}
}

// Wrap produces a boxed value carrying x with x's type identity and
// owned-shared storage, per spec.md 4.1's wrap(x). When x is a pointer the
// cache is consulted first so that repeated wrapping of the same pointer
// returns a Value sharing identity with every prior wrap of it; every call
// with a non-nil pointer also triggers one cull sweep, mirroring
// Object_Cache::cull being run opportunistically rather than on a timer.
// Non-pointer values are boxed without touching the cache.
func (c *Cache) Wrap(x interface{}) Value {
	if x == nil {
		return Void
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return Value{typeID: elemOrSelf(x), payload: x, owned: true}
	}

	key := rv.Pointer()
	id := elemOrSelf(x)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.refcount++
		c.cullLocked()
		return e.value
	}
	v := Value{typeID: id, payload: x, owned: true}
	c.entries[key] = &entry{value: v, refcount: 1}
	c.cullLocked()
	return v
}

// WrapRef produces a boxed value that borrows ptr; IsRef() is true and no
// cloning or cache bookkeeping happens, per spec.md 4.1's wrap_ref(&x).
func (c *Cache) WrapRef(ptr interface{}) Value {
	if ptr == nil {
		return Void
	}
	return Value{typeID: elemOrSelf(ptr), payload: ptr, isRef: true}
}

// WrapVoid returns the void boxed value, per spec.md 4.1's wrap_void().
func (c *Cache) WrapVoid() Value { return Void }

// Release decrements the refcount of the cache entry backing v, if any,
// and runs a cull sweep. internal/scope calls this whenever a binding
// holding a cache-backed Value is redeclared or reassigned (not when its
// frame is popped), so entries whose only remaining holder was the cache
// itself get collected -
// the refcount-based stand-in for Object_Cache::cull described in
// DESIGN.md OQ-1.
func (c *Cache) Release(v Value) {
	rv := reflect.ValueOf(v.payload)
	if !v.owned || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return
	}
	key := rv.Pointer()

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.refcount > 0 {
		e.refcount--
	}
	c.cullLocked()
}

// cullLocked removes entries whose refcount has reached zero. Callers must
// hold c.mu.
func (c *Cache) cullLocked() {
	for key, e := range c.entries {
		if e.refcount == 0 {
			delete(c.entries, key)
		}
	}
}

// Len reports the number of live cache entries, exposed for tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
