package typegraph

import "binastgen/internal/model"

// Key identifies a model-ID: the owning type and either an attribute name
// or the sequence-length discriminator.
type Key struct {
	Owner         model.Type
	Discriminator string
}

// Allocator hands out dense model-IDs starting at zero, in the order keys
// are first seen. IDs are never freed or reused.
type Allocator struct {
	ids  map[Key]int
	keys []Key
}

// NewAllocator creates an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{ids: make(map[Key]int)}
}

// ID returns the model-ID for k, allocating the next one if k is new.
func (a *Allocator) ID(k Key) int {
	if id, ok := a.ids[k]; ok {
		return id
	}
	id := len(a.keys)
	a.ids[k] = id
	a.keys = append(a.keys, k)
	return id
}

// Lookup returns the model-ID for k without allocating.
func (a *Allocator) Lookup(k Key) (int, bool) {
	id, ok := a.ids[k]
	return id, ok
}

// Len returns the number of IDs allocated so far.
func (a *Allocator) Len() int { return len(a.keys) }

// Keys returns the allocated keys indexed by model-ID.
func (a *Allocator) Keys() []Key { return a.keys }
