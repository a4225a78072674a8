package cache

// Bounded is a fixed-capacity map that evicts the oldest inserted entry when
// full. Reads do not refresh an entry's position.
//
// Bounded is not safe for concurrent use; owners that share it across
// goroutines must guard it themselves.
type Bounded[K comparable, V any] struct {
	capacity int
	entries  map[K]V
	order    []K // insertion order, oldest first
}

// NewBounded returns an empty map holding at most capacity entries.
// A capacity below 1 is treated as 1.
func NewBounded[K comparable, V any](capacity int) *Bounded[K, V] {
	capacity = max(capacity, 1)
	return &Bounded[K, V]{
		capacity: capacity,
		entries:  make(map[K]V, capacity),
		order:    make([]K, 0, capacity),
	}
}

// Get returns the value for key.
func (b *Bounded[K, V]) Get(key K) (V, bool) {
	v, ok := b.entries[key]
	return v, ok
}

// Put stores value under key. Updating an existing key keeps its position.
// It reports whether an older entry was evicted to make room.
func (b *Bounded[K, V]) Put(key K, value V) (evicted bool) {
	if _, ok := b.entries[key]; ok {
		b.entries[key] = value
		return false
	}
	if len(b.order) >= b.capacity {
		oldest := b.order[0]
		b.order = b.order[1:]
		delete(b.entries, oldest)
		evicted = true
	}
	b.entries[key] = value
	b.order = append(b.order, key)
	return evicted
}

// Delete removes key if present.
func (b *Bounded[K, V]) Delete(key K) {
	if _, ok := b.entries[key]; !ok {
		return
	}
	delete(b.entries, key)
	for i, k := range b.order {
		if k == key {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (b *Bounded[K, V]) Len() int { return len(b.order) }

// Cap returns the capacity.
func (b *Bounded[K, V]) Cap() int { return b.capacity }

// Keys returns the keys oldest first.
func (b *Bounded[K, V]) Keys() []K {
	out := make([]K, len(b.order))
	copy(out, b.order)
	return out
}

// Clear drops every entry.
func (b *Bounded[K, V]) Clear() {
	clear(b.entries)
	b.order = b.order[:0]
}
