// Package store holds the normalized client-side cache of monetr entities.
//
// Every collection in the store is immutable. Writes build new collections and install a new
// State in a single step, so a State obtained from Snapshot never changes underneath a reader
// and pointer equality on collections is a valid change check for memoized selectors.
package store

import (
	"iter"
	"slices"
)

// Entity is anything the store can key by a numeric id.
type Entity interface {
	ID() uint64
}

// PartitionedEntity is an entity that also belongs to a bank account partition.
type PartitionedEntity interface {
	Entity
	PartitionID() uint64
}

// Collection is an immutable, insertion ordered set of entities keyed by id.
// A nil *Collection is a valid empty collection.
type Collection[T Entity] struct {
	items map[uint64]T
	order []uint64
}

// NewCollection builds a collection from items, keeping their order. When an id appears more
// than once the later value replaces the earlier one, keeping the earlier position.
func NewCollection[T Entity](items []T) *Collection[T] {
	c := &Collection[T]{
		items: make(map[uint64]T, len(items)),
		order: make([]uint64, 0, len(items)),
	}
	for _, item := range items {
		id := item.ID()
		if _, exists := c.items[id]; !exists {
			c.order = append(c.order, id)
		}
		c.items[id] = item
	}
	return c
}

// Len returns the number of entities in the collection.
func (c *Collection[T]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get looks up an entity by id.
func (c *Collection[T]) Get(id uint64) (T, bool) {
	var zero T
	if c == nil {
		return zero, false
	}
	item, ok := c.items[id]
	return item, ok
}

// Has reports whether an entity with the id exists.
func (c *Collection[T]) Has(id uint64) bool {
	_, ok := c.Get(id)
	return ok
}

// First returns the first entity in insertion order.
func (c *Collection[T]) First() (T, bool) {
	var zero T
	if c.Len() == 0 {
		return zero, false
	}
	return c.items[c.order[0]], true
}

// IDs returns the ids in insertion order.
func (c *Collection[T]) IDs() []uint64 {
	if c == nil {
		return nil
	}
	return slices.Clone(c.order)
}

// All iterates over the entities in insertion order.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if c == nil {
			return
		}
		for _, id := range c.order {
			if !yield(c.items[id]) {
				return
			}
		}
	}
}

// Slice returns the entities in insertion order as a new slice.
func (c *Collection[T]) Slice() []T {
	return slices.Collect(c.All())
}

// With returns a copy of the collection with item set. An existing entity with the same id is
// replaced entirely and keeps its position; a new one is appended.
func (c *Collection[T]) With(item T) *Collection[T] {
	next := &Collection[T]{
		items: make(map[uint64]T, c.Len()+1),
		order: make([]uint64, 0, c.Len()+1),
	}
	if c != nil {
		for id, existing := range c.items {
			next.items[id] = existing
		}
		next.order = append(next.order, c.order...)
	}
	id := item.ID()
	if _, exists := next.items[id]; !exists {
		next.order = append(next.order, id)
	}
	next.items[id] = item
	return next
}

// Filter returns a new collection with the entities matching keep, in the same order.
func (c *Collection[T]) Filter(keep func(T) bool) *Collection[T] {
	var kept []T
	for item := range c.All() {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return NewCollection(kept)
}
