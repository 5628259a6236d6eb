package kset

//spellchecker:words kset

import "github.com/tkw1536/pkglib/iterator"

// Map is a hash store mapping each key to a single value.
//
// The zero value is not ready for use; it must be initialized with [NewMap],
// [NewFixedMap], or a call to [Map.Create] or [Map.CreateFixed].
//
// As an [Interface], a map is the set of its keys.
type Map[K Key, V comparable] struct {
	t table[K, V]
}

// NewMap creates a dynamically allocated map.
// Lookups that miss return notFound.
func NewMap[K Key, V comparable](name string, notFound V, config *Config, alloc Allocator[KeyValue[K, V]]) (*Map[K, V], error) {
	m := new(Map[K, V])
	err := m.Create(name, notFound, config, alloc)
	return m, err
}

// NewFixedMap creates a map backed by the caller-owned buffer.
// The map performs no allocation; inserting a novel key into a full table
// fails with [ErrCouldNotAlloc].
func NewFixedMap[K Key, V comparable](name string, notFound V, config *Config, buffer []KeyValue[K, V]) (*Map[K, V], error) {
	m := new(Map[K, V])
	err := m.CreateFixed(name, notFound, config, buffer)
	return m, err
}

// Create initializes a map after the zero value or a call to [Map.Destroy].
func (m *Map[K, V]) Create(name string, notFound V, config *Config, alloc Allocator[KeyValue[K, V]]) error {
	if alloc == nil {
		alloc = stdAllocator[KeyValue[K, V]]{}
	}
	return m.t.create(name, notFound, config, alloc, nil, false)
}

// CreateFixed is like [Map.Create], but uses the caller-owned buffer as
// storage and never allocates.
func (m *Map[K, V]) CreateFixed(name string, notFound V, config *Config, buffer []KeyValue[K, V]) error {
	return m.t.create(name, notFound, config, nil, buffer, false)
}

// Destroy removes all entries and releases allocated storage.
// It is idempotent; the map may be created again afterwards.
func (m *Map[K, V]) Destroy() { m.t.destroy() }

// Reset removes all entries and returns the table to its minimum size.
func (m *Map[K, V]) Reset() { m.t.reset() }

// Status returns the sticky creation state of this map.
func (m *Map[K, V]) Status() error { return m.t.status() }

// Update runs one grow and one shrink pass on demand.
func (m *Map[K, V]) Update() error { return m.t.update() }

// Name returns the name given at creation.
func (m *Map[K, V]) Name() string { return m.t.name }

// Count returns the number of entries in the map.
func (m *Map[K, V]) Count() int { return m.t.activeCount }

// ChangeCount increases with every mutation of this map.
func (m *Map[K, V]) ChangeCount() int { return m.t.changeCount }

// EnumerationCost returns the number of keys an Enumerate call will push.
func (m *Map[K, V]) EnumerationCost() int { return m.t.activeCount }

// Insert adds a mapping from key to value.
// If key is already present its value is overwritten.
func (m *Map[K, V]) Insert(key K, value V) error {
	return m.t.insert(key, value)
}

// Remove removes key and returns the value it mapped to.
// When key was not present, the not-found value and [ErrNotFound] are
// returned.
func (m *Map[K, V]) Remove(key K) (V, error) {
	if err := m.t.status(); err != nil {
		return m.t.notFound, err
	}

	var zero K
	if key == zero {
		return m.t.notFound, ErrInvalidArguments
	}

	value, removed := m.t.removeAll(key)
	if !removed {
		return m.t.notFound, ErrNotFound
	}

	m.t.changeCount++
	if m.t.autoShrink {
		m.t.shrink()
	}
	return value, nil
}

// Find returns the value key maps to, or the not-found value.
func (m *Map[K, V]) Find(key K) V {
	value, _ := m.t.find(key)
	return value
}

// Get returns the value key maps to.
// The second return value indicates if the key was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	return m.t.find(key)
}

// Contains tests if key is present in the map.
func (m *Map[K, V]) Contains(key K) bool { return m.t.contains(key) }

// Enumerate pushes every key into the collector, filtered by limit if given.
func (m *Map[K, V]) Enumerate(into Collector[K], limit Interface[K]) {
	for i := m.t.firstIndex(); m.t.isValid(i); i = m.t.nextIndex(i) {
		key := m.t.slots[i].Key
		if limit == nil || limit.Contains(key) {
			into.Push(key)
		}
	}
}

// Iterate calls f for every entry in the map.
// When f returns a non-nil error, iteration stops and the error is returned.
// The map must not be mutated during iteration.
func (m *Map[K, V]) Iterate(f func(K, V) error) error {
	for i := m.t.firstIndex(); m.t.isValid(i); i = m.t.nextIndex(i) {
		if err := f(m.t.slots[i].Key, m.t.slots[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns an iterator over the keys of this map.
// There is no guarantee on order; the map must not be mutated while the
// iterator is in use.
func (m *Map[K, V]) Keys() iterator.Iterator[K] {
	return iterator.New(func(sender iterator.Generator[K]) {
		defer sender.Return()

		for i := m.t.firstIndex(); m.t.isValid(i); i = m.t.nextIndex(i) {
			if sender.Yield(m.t.slots[i].Key) {
				return
			}
		}
	})
}
