package kset

//spellchecker:words kset multimap

import "github.com/tkw1536/pkglib/iterator"

// MultiMap is a hash store mapping each key to any number of values.
//
// Identical (key, value) pairs deduplicate; the values of one key occupy
// distinct slots of the same probe run.
//
// The zero value is not ready for use; it must be initialized with
// [NewMultiMap], [NewFixedMultiMap], or a call to [MultiMap.Create] or
// [MultiMap.CreateFixed].
//
// As an [Interface], a multimap is the set of its distinct keys.
type MultiMap[K Key, V comparable] struct {
	t table[K, V]
}

// NewMultiMap creates a dynamically allocated multimap.
// Lookups that miss return notFound.
func NewMultiMap[K Key, V comparable](name string, notFound V, config *Config, alloc Allocator[KeyValue[K, V]]) (*MultiMap[K, V], error) {
	m := new(MultiMap[K, V])
	err := m.Create(name, notFound, config, alloc)
	return m, err
}

// NewFixedMultiMap creates a multimap backed by the caller-owned buffer.
// The multimap performs no allocation; inserting a novel pair into a full
// table fails with [ErrCouldNotAlloc].
func NewFixedMultiMap[K Key, V comparable](name string, notFound V, config *Config, buffer []KeyValue[K, V]) (*MultiMap[K, V], error) {
	m := new(MultiMap[K, V])
	err := m.CreateFixed(name, notFound, config, buffer)
	return m, err
}

// Create initializes a multimap after the zero value or a call to
// [MultiMap.Destroy].
func (m *MultiMap[K, V]) Create(name string, notFound V, config *Config, alloc Allocator[KeyValue[K, V]]) error {
	if alloc == nil {
		alloc = stdAllocator[KeyValue[K, V]]{}
	}
	return m.t.create(name, notFound, config, alloc, nil, true)
}

// CreateFixed is like [MultiMap.Create], but uses the caller-owned buffer as
// storage and never allocates.
func (m *MultiMap[K, V]) CreateFixed(name string, notFound V, config *Config, buffer []KeyValue[K, V]) error {
	return m.t.create(name, notFound, config, nil, buffer, true)
}

// Destroy removes all entries and releases allocated storage.
// It is idempotent; the multimap may be created again afterwards.
func (m *MultiMap[K, V]) Destroy() { m.t.destroy() }

// Reset removes all entries and returns the table to its minimum size.
func (m *MultiMap[K, V]) Reset() { m.t.reset() }

// Status returns the sticky creation state of this multimap.
func (m *MultiMap[K, V]) Status() error { return m.t.status() }

// Update runs one grow and one shrink pass on demand.
func (m *MultiMap[K, V]) Update() error { return m.t.update() }

// Name returns the name given at creation.
func (m *MultiMap[K, V]) Name() string { return m.t.name }

// Count returns the number of (key, value) pairs in the multimap.
func (m *MultiMap[K, V]) Count() int { return m.t.activeCount }

// ChangeCount increases with every mutation of this multimap.
func (m *MultiMap[K, V]) ChangeCount() int { return m.t.changeCount }

// EnumerationCost returns the number of pairs in the multimap, an upper
// bound for the distinct keys an Enumerate call will push.
func (m *MultiMap[K, V]) EnumerationCost() int { return m.t.activeCount }

// Insert adds a mapping from key to value.
// Inserting a pair that is already present leaves the multimap unchanged.
func (m *MultiMap[K, V]) Insert(key K, value V) error {
	return m.t.insert(key, value)
}

// Remove removes every value stored under key.
func (m *MultiMap[K, V]) Remove(key K) error {
	if err := m.t.status(); err != nil {
		return err
	}

	var zero K
	if key == zero {
		return ErrInvalidArguments
	}

	if _, removed := m.t.removeAll(key); !removed {
		return ErrNotFound
	}

	m.t.changeCount++
	if m.t.autoShrink {
		m.t.shrink()
	}
	return nil
}

// RemovePair removes the single (key, value) pair.
func (m *MultiMap[K, V]) RemovePair(key K, value V) error {
	if err := m.t.status(); err != nil {
		return err
	}

	var zero K
	if key == zero {
		return ErrInvalidArguments
	}

	if !m.t.removeOne(key, value) {
		return ErrNotFound
	}

	m.t.changeCount++
	if m.t.autoShrink {
		m.t.shrink()
	}
	return nil
}

// Find returns one of the values stored under key, or the not-found value.
func (m *MultiMap[K, V]) Find(key K) V {
	value, _ := m.t.find(key)
	return value
}

// Contains tests if any value is stored under key.
func (m *MultiMap[K, V]) Contains(key K) bool { return m.t.contains(key) }

// ContainsPair tests if the exact (key, value) pair is stored.
func (m *MultiMap[K, V]) ContainsPair(key K, value V) bool {
	return m.t.containsPair(key, value)
}

// Enumerate pushes every distinct key into the collector, filtered by limit
// if given.
func (m *MultiMap[K, V]) Enumerate(into Collector[K], limit Interface[K]) {
	for i := m.firstDistinctIndex(); m.t.isValid(i); i = m.t.nextDistinctIndex(i) {
		key := m.t.slots[i].Key
		if limit == nil || limit.Contains(key) {
			into.Push(key)
		}
	}
}

// Iterate calls f for every (key, value) pair in the multimap.
// When f returns a non-nil error, iteration stops and the error is returned.
// The multimap must not be mutated during iteration.
func (m *MultiMap[K, V]) Iterate(f func(K, V) error) error {
	for i := m.t.firstIndex(); m.t.isValid(i); i = m.t.nextIndex(i) {
		if err := f(m.t.slots[i].Key, m.t.slots[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// IterateValues calls f for every value stored under key.
// When f returns a non-nil error, iteration stops and the error is returned.
// The multimap must not be mutated during iteration.
func (m *MultiMap[K, V]) IterateValues(key K, f func(V) error) error {
	for i := m.t.firstIndexOf(key); m.t.isValid(i); i = m.t.nextIndexOf(key, i) {
		if err := f(m.t.slots[i].Value); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns an iterator over the distinct keys of this multimap.
// There is no guarantee on order; the multimap must not be mutated while the
// iterator is in use.
func (m *MultiMap[K, V]) Keys() iterator.Iterator[K] {
	return iterator.New(func(sender iterator.Generator[K]) {
		defer sender.Return()

		for i := m.firstDistinctIndex(); m.t.isValid(i); i = m.t.nextDistinctIndex(i) {
			if sender.Yield(m.t.slots[i].Key) {
				return
			}
		}
	})
}

// Values returns an iterator over the values stored under key.
// There is no guarantee on order; the multimap must not be mutated while the
// iterator is in use.
func (m *MultiMap[K, V]) Values(key K) iterator.Iterator[V] {
	return iterator.New(func(sender iterator.Generator[V]) {
		defer sender.Return()

		for i := m.t.firstIndexOf(key); m.t.isValid(i); i = m.t.nextIndexOf(key, i) {
			if sender.Yield(m.t.slots[i].Value) {
				return
			}
		}
	})
}

func (m *MultiMap[K, V]) firstDistinctIndex() int { return m.t.nextDistinctIndex(-1) }
