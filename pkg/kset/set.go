package kset

//spellchecker:words kset

import "github.com/tkw1536/pkglib/iterator"

// Set is a key-only open-addressed hash store.
//
// The zero value is not ready for use; it must be initialized with [NewSet],
// [NewFixedSet], or a call to [Set.Create] or [Set.CreateFixed].
// After [Set.Destroy] a set may be created again.
type Set[K Key] struct {
	name  string
	alloc Allocator[K] // nil in fixed-buffer mode
	keys  []K          // len(keys) is the allocated capacity

	tableCount  int // leading portion of keys participating in hashing
	activeCount int // occupied slots
	changeCount int

	created bool
	err     error // sticky creation state, nil when ok

	allocCountMin   int
	tableCountMin   int
	growThreshold   int
	shrinkThreshold int
	autoGrow        bool
	autoShrink      bool
	dynamicAlloc    bool
}

// NewSet creates a dynamically allocated set.
// A nil config selects [DefaultConfig], a nil alloc the built-in allocator.
func NewSet[K Key](name string, config *Config, alloc Allocator[K]) (*Set[K], error) {
	set := new(Set[K])
	err := set.Create(name, config, alloc)
	return set, err
}

// NewFixedSet creates a set backed by the caller-owned buffer.
// The set performs no allocation; inserting a novel key into a full table
// fails with [ErrCouldNotAlloc].
func NewFixedSet[K Key](name string, config *Config, buffer []K) (*Set[K], error) {
	set := new(Set[K])
	err := set.CreateFixed(name, config, buffer)
	return set, err
}

// Create initializes a set after the zero value or a call to [Set.Destroy].
func (set *Set[K]) Create(name string, config *Config, alloc Allocator[K]) error {
	if alloc == nil {
		alloc = stdAllocator[K]{}
	}
	return set.create(name, config, alloc, nil)
}

// CreateFixed is like [Set.Create], but uses the caller-owned buffer as
// storage and never allocates.
func (set *Set[K]) CreateFixed(name string, config *Config, buffer []K) error {
	return set.create(name, config, nil, buffer)
}

func (set *Set[K]) create(name string, config *Config, alloc Allocator[K], fixed []K) error {
	if config == nil {
		c := DefaultConfig()
		config = &c
	}

	switch {
	case set.created:
		set.err = ErrDoubleInitialized
	case !config.valid(), alloc == nil && len(fixed) < config.TableCountMin:
		set.created = true
		set.err = ErrInvalidArguments
	default:
		set.created = true
		set.err = nil

		set.name = name
		set.alloc = alloc
		set.keys = fixed
		set.activeCount = 0
		set.changeCount = 0

		set.allocCountMin = config.AllocCountMin
		set.tableCountMin = config.TableCountMin
		set.growThreshold = config.GrowThresholdPercent
		set.shrinkThreshold = config.ShrinkThresholdPercent
		set.autoGrow = config.AutoGrow
		set.autoShrink = config.AutoShrink
		set.dynamicAlloc = config.DynamicAlloc && alloc != nil

		if set.keys == nil {
			set.tableCount = 0
			set.resize(set.tableCountMin, max(set.allocCountMin, set.tableCountMin))
			if set.keys == nil {
				set.err = ErrCouldNotAlloc
			}
		} else {
			// A fixed buffer hashes over its full length from the start.
			var zero K
			for i := range set.keys {
				set.keys[i] = zero
			}
			set.tableCount = len(set.keys)
		}
	}
	return set.err
}

// Destroy removes all keys and releases allocated storage.
// It is idempotent; the set may be created again afterwards.
func (set *Set[K]) Destroy() {
	if set.alloc != nil && set.keys != nil {
		set.alloc.Free(set.keys)
	}
	*set = Set[K]{}
}

// Reset removes all keys and returns the table to its minimum size.
func (set *Set[K]) Reset() {
	if set.Status() != nil {
		return
	}

	var zero K
	for i := 0; i < set.tableCount; i++ {
		set.keys[i] = zero
	}
	set.activeCount = 0
	set.changeCount++
	set.resize(set.tableCountMin, max(set.allocCountMin, set.tableCountMin))
}

// Status returns the sticky creation state of this set.
// It is the only way to find out if a constructor failed when the error was
// not checked at creation time.
func (set *Set[K]) Status() error {
	if !set.created {
		return ErrNotInitialized
	}
	return set.err
}

// Name returns the name given at creation.
func (set *Set[K]) Name() string { return set.name }

// Count returns the number of keys in the set.
func (set *Set[K]) Count() int { return set.activeCount }

// ChangeCount increases with every mutation of this set.
func (set *Set[K]) ChangeCount() int { return set.changeCount }

// EnumerationCost returns the number of keys an Enumerate call will push.
func (set *Set[K]) EnumerationCost() int { return set.activeCount }

// Insert adds key to the set. Inserting a key that is already present leaves
// the set unchanged.
func (set *Set[K]) Insert(key K) error {
	if err := set.Status(); err != nil {
		return err
	}

	var zero K
	if key == zero {
		return ErrInvalidArguments
	}

	if set.autoGrow {
		set.grow()
	}

	// A full table has no empty slot left; the probe then only succeeds for
	// keys that are already present.
	index, ok := set.findEmptyOrMatching(key)
	if !ok {
		return ErrCouldNotAlloc
	}
	if set.keys[index] == zero {
		set.keys[index] = key
		set.activeCount++
		set.changeCount++
	}
	return nil
}

// Remove removes key from the set.
func (set *Set[K]) Remove(key K) error {
	if err := set.Status(); err != nil {
		return err
	}

	var zero K
	if key == zero {
		return ErrInvalidArguments
	}

	if !set.removeOne(key) {
		return ErrNotFound
	}

	set.changeCount++
	if set.autoShrink {
		set.shrink()
	}
	return nil
}

// Update runs one grow and one shrink pass on demand.
// This is the only way to adapt table sizes when automatic resizing is
// disabled in the config.
func (set *Set[K]) Update() error {
	if err := set.Status(); err != nil {
		return err
	}
	set.grow()
	set.shrink()
	return nil
}

// Contains tests if key is an element of the set.
func (set *Set[K]) Contains(key K) bool {
	var zero K
	if set.Status() != nil || key == zero {
		return false
	}
	index, ok := set.findEmptyOrMatching(key)
	return ok && set.keys[index] != zero
}

// Enumerate pushes every key into the collector, filtered by limit if given.
func (set *Set[K]) Enumerate(into Collector[K], limit Interface[K]) {
	for i := set.firstIndex(); set.isValid(i); i = set.nextIndex(i) {
		key := set.keys[i]
		if limit == nil || limit.Contains(key) {
			into.Push(key)
		}
	}
}

// Iterate calls f for every key in the set.
// When f returns a non-nil error, iteration stops and the error is returned.
// The set must not be mutated during iteration.
func (set *Set[K]) Iterate(f func(K) error) error {
	for i := set.firstIndex(); set.isValid(i); i = set.nextIndex(i) {
		if err := f(set.keys[i]); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns an iterator over the keys of this set.
// There is no guarantee on order; the set must not be mutated while the
// iterator is in use.
func (set *Set[K]) Keys() iterator.Iterator[K] {
	return iterator.New(func(sender iterator.Generator[K]) {
		defer sender.Return()

		for i := set.firstIndex(); set.isValid(i); i = set.nextIndex(i) {
			if sender.Yield(set.keys[i]) {
				return
			}
		}
	})
}

// firstIndex returns the index of the first occupied slot, or tableCount.
func (set *Set[K]) firstIndex() int { return set.nextIndex(-1) }

// nextIndex returns the index of the next occupied slot after index, or
// tableCount.
func (set *Set[K]) nextIndex(index int) int {
	var zero K
	for i := index + 1; i < set.tableCount; i++ {
		if set.keys[i] != zero {
			return i
		}
	}
	return set.tableCount
}

func (set *Set[K]) isValid(index int) bool {
	return set.Status() == nil && index < set.tableCount
}

// findEmptyOrMatching scans forward from the key's home slot, wrapping at the
// table boundary, and returns the first slot that is either empty or holds
// key. ok is false when the entire table was walked without finding either,
// which can only happen when the table is full and key is absent.
func (set *Set[K]) findEmptyOrMatching(key K) (index int, ok bool) {
	var zero K
	slot := int(key.Hash() % uint32(set.tableCount))
	for i := 0; i < set.tableCount; i++ {
		if set.keys[slot] == zero || set.keys[slot] == key {
			return slot, true
		}
		slot++
		if slot == set.tableCount {
			slot = 0
		}
	}
	return 0, false
}

// reinsert moves the key at index to its probe position, if that differs.
func (set *Set[K]) reinsert(index int) {
	target, ok := set.findEmptyOrMatching(set.keys[index])
	if !ok || target == index {
		return
	}
	var zero K
	set.keys[target] = set.keys[index]
	set.keys[index] = zero
}

// removeOne clears the slot holding key and repairs the displacement chain by
// reinserting the remainder of the run. Reports whether a key was removed.
func (set *Set[K]) removeOne(key K) bool {
	var zero K

	index, ok := set.findEmptyOrMatching(key)
	if !ok || set.keys[index] == zero {
		return false
	}

	set.keys[index] = zero
	set.activeCount--

	// Every key between the cleared slot and the next empty slot may have
	// been displaced past it; re-home each one.
	slot := index
	for i := 1; i < set.tableCount; i++ {
		slot++
		if slot == set.tableCount {
			slot = 0
		}
		if set.keys[slot] == zero {
			break
		}
		set.reinsert(slot)
	}
	return true
}

// grow resizes the table up when the load reaches the grow threshold.
func (set *Set[K]) grow() {
	if set.activeCount*100 >= set.tableCount*set.growThreshold {
		newTableCount := set.tableCount * 2
		newCapacity := max(len(set.keys), newTableCount)
		if !set.dynamicAlloc {
			newCapacity = len(set.keys)
			newTableCount = min(newTableCount, newCapacity)
		}
		set.resize(newTableCount, newCapacity)
	}
}

// shrink resizes the table down when the load falls below the shrink
// threshold and the table is above its minimum size.
func (set *Set[K]) shrink() {
	if set.tableCount > set.tableCountMin && set.activeCount*100 < set.tableCount*set.shrinkThreshold {
		newTableCount := max(set.tableCount/2, set.tableCountMin)
		newCapacity := max(newTableCount, set.allocCountMin)
		if !set.dynamicAlloc {
			newCapacity = len(set.keys)
		}
		set.resize(newTableCount, newCapacity)
	}
}

// resize applies one of the three resize disciplines: reallocate when the
// capacity changes, otherwise shrink or grow the hash region in place.
func (set *Set[K]) resize(newTableCount, newCapacity int) {
	var zero K
	switch {
	case set.alloc != nil && len(set.keys) != newCapacity:
		old := set.keys
		oldTableCount := set.tableCount

		fresh := set.alloc.Allocate(newCapacity, set.name)
		if fresh == nil {
			// The store stays usable at its previous capacity.
			return
		}

		set.keys = fresh
		set.tableCount = newTableCount
		set.activeCount = 0
		for i := 0; i < oldTableCount; i++ {
			if old[i] != zero {
				set.place(old[i])
			}
		}

		if old != nil {
			set.alloc.Free(old)
		}

	case newTableCount < set.tableCount:
		oldTableCount := set.tableCount
		set.tableCount = newTableCount
		for i := 0; i < oldTableCount; i++ {
			if set.keys[i] != zero {
				set.reinsert(i)
			}
		}

	case newTableCount > set.tableCount:
		oldTableCount := set.tableCount
		set.tableCount = newTableCount
		for i := 0; i < oldTableCount; i++ {
			if set.keys[i] != zero {
				set.reinsert(i)
			}
		}
		// The start of the newly exposed region may hold keys that were
		// bumped forward during the pass above; re-home them too.
		for i := oldTableCount; i < newTableCount; i++ {
			if set.keys[i] == zero {
				break
			}
			set.reinsert(i)
		}
	}
}

// place writes key at its probe position during a reallocation rebuild.
func (set *Set[K]) place(key K) {
	index, ok := set.findEmptyOrMatching(key)
	if !ok {
		return
	}
	var zero K
	if set.keys[index] == zero {
		set.keys[index] = key
		set.activeCount++
	}
}
