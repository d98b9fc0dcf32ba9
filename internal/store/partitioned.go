package store

import "maps"

// Partitioned groups collections by the id of the bank account owning them.
// A nil *Partitioned is a valid empty mapping.
type Partitioned[T PartitionedEntity] struct {
	parts map[uint64]*Collection[T]
}

// Get returns the partition for a bank account, nil when it was never loaded.
func (p *Partitioned[T]) Get(bankAccountID uint64) *Collection[T] {
	if p == nil {
		return nil
	}
	return p.parts[bankAccountID]
}

// Has reports whether the partition for a bank account has been loaded.
func (p *Partitioned[T]) Has(bankAccountID uint64) bool {
	if p == nil {
		return false
	}
	_, ok := p.parts[bankAccountID]
	return ok
}

// Len returns the number of loaded partitions.
func (p *Partitioned[T]) Len() int {
	if p == nil {
		return 0
	}
	return len(p.parts)
}

// Find looks an entity up by id across every partition.
func (p *Partitioned[T]) Find(id uint64) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	for _, part := range p.parts {
		if item, ok := part.Get(id); ok {
			return item, true
		}
	}
	return zero, false
}

// Replace returns a copy with the partition for bankAccountID rebuilt from items. Whatever the
// partition held before is discarded. Other partitions keep their identity.
func (p *Partitioned[T]) Replace(bankAccountID uint64, items []T) *Partitioned[T] {
	return p.with(bankAccountID, NewCollection(items))
}

// Upsert returns a copy with item set in the partition of its bank account.
func (p *Partitioned[T]) Upsert(item T) *Partitioned[T] {
	bankAccountID := item.PartitionID()
	return p.with(bankAccountID, p.Get(bankAccountID).With(item))
}

func (p *Partitioned[T]) with(bankAccountID uint64, part *Collection[T]) *Partitioned[T] {
	next := &Partitioned[T]{parts: make(map[uint64]*Collection[T], p.Len()+1)}
	if p != nil {
		maps.Copy(next.parts, p.parts)
	}
	next.parts[bankAccountID] = part
	return next
}
