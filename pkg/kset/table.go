package kset

// table is the open-addressed slot array shared by [Map] and [MultiMap].
// It follows the same probing discipline as [Set]: linear probing with wrap,
// runs bounded by empty slots, and tombstone-free removal.
type table[K Key, V comparable] struct {
	name  string
	alloc Allocator[KeyValue[K, V]] // nil in fixed-buffer mode
	slots []KeyValue[K, V]

	tableCount  int
	activeCount int
	changeCount int

	created bool
	err     error

	notFound V

	allocCountMin   int
	tableCountMin   int
	growThreshold   int
	shrinkThreshold int
	autoGrow        bool
	autoShrink      bool
	dynamicAlloc    bool

	// multi selects pair matching: identical (key, value) pairs deduplicate,
	// and distinct values under one key occupy distinct slots of the same
	// run. Without it the key is unique and inserts overwrite the value.
	multi bool
}

func (t *table[K, V]) create(name string, notFound V, config *Config, alloc Allocator[KeyValue[K, V]], fixed []KeyValue[K, V], multi bool) error {
	if config == nil {
		c := DefaultConfig()
		config = &c
	}

	switch {
	case t.created:
		t.err = ErrDoubleInitialized
	case !config.valid(), alloc == nil && len(fixed) < config.TableCountMin:
		t.created = true
		t.err = ErrInvalidArguments
	default:
		t.created = true
		t.err = nil

		t.name = name
		t.alloc = alloc
		t.slots = fixed
		t.activeCount = 0
		t.changeCount = 0
		t.notFound = notFound
		t.multi = multi

		t.allocCountMin = config.AllocCountMin
		t.tableCountMin = config.TableCountMin
		t.growThreshold = config.GrowThresholdPercent
		t.shrinkThreshold = config.ShrinkThresholdPercent
		t.autoGrow = config.AutoGrow
		t.autoShrink = config.AutoShrink
		t.dynamicAlloc = config.DynamicAlloc && alloc != nil

		if t.slots == nil {
			t.tableCount = 0
			t.resize(t.tableCountMin, max(t.allocCountMin, t.tableCountMin))
			if t.slots == nil {
				t.err = ErrCouldNotAlloc
			}
		} else {
			// A fixed buffer hashes over its full length from the start.
			for i := range t.slots {
				t.slots[i] = KeyValue[K, V]{}
			}
			t.tableCount = len(t.slots)
		}
	}
	return t.err
}

func (t *table[K, V]) destroy() {
	if t.alloc != nil && t.slots != nil {
		t.alloc.Free(t.slots)
	}
	*t = table[K, V]{}
}

func (t *table[K, V]) reset() {
	if t.status() != nil {
		return
	}

	for i := 0; i < t.tableCount; i++ {
		t.slots[i] = KeyValue[K, V]{}
	}
	t.activeCount = 0
	t.changeCount++
	t.resize(t.tableCountMin, max(t.allocCountMin, t.tableCountMin))
}

func (t *table[K, V]) status() error {
	if !t.created {
		return ErrNotInitialized
	}
	return t.err
}

func (t *table[K, V]) update() error {
	if err := t.status(); err != nil {
		return err
	}
	t.grow()
	t.shrink()
	return nil
}

// insert adds the pair, following the matching discipline selected by multi.
func (t *table[K, V]) insert(key K, value V) error {
	if err := t.status(); err != nil {
		return err
	}

	var zero K
	if key == zero {
		return ErrInvalidArguments
	}

	if t.autoGrow {
		t.grow()
	}

	// A full table has no empty slot left; the probe then only succeeds for
	// entries that are already present.
	var index int
	var ok bool
	if t.multi {
		index, ok = t.findEmptyOrMatchingPair(key, value)
	} else {
		index, ok = t.findEmptyOrMatching(key)
	}
	if !ok {
		return ErrCouldNotAlloc
	}

	switch {
	case t.slots[index].Key == zero:
		t.slots[index] = KeyValue[K, V]{Key: key, Value: value}
		t.activeCount++
		t.changeCount++
	case !t.multi && t.slots[index].Value != value:
		// Same key, new value: the mapping is updated in place.
		t.slots[index].Value = value
		t.changeCount++
	}
	return nil
}

// removeAll clears every slot in the run whose key matches and repairs the
// run. It returns the value of the first cleared slot.
func (t *table[K, V]) removeAll(key K) (first V, removed bool) {
	first = t.notFound

	var zero K
	index, ok := t.findEmptyOrMatching(key)
	if !ok || t.slots[index].Key == zero {
		return first, false
	}

	count := 0
	slot := index
	for i := 0; i < t.tableCount; i++ {
		if t.slots[slot].Key == zero {
			break
		}
		if t.slots[slot].Key == key {
			if !removed {
				first = t.slots[slot].Value
				removed = true
			}
			t.slots[slot] = KeyValue[K, V]{}
			t.activeCount--
		}
		count++
		slot++
		if slot == t.tableCount {
			slot = 0
		}
	}
	t.fixUp(index, count)
	return first, removed
}

// removeOne clears only slots where both key and value match.
func (t *table[K, V]) removeOne(key K, value V) (removed bool) {
	var zero K
	index, ok := t.findEmptyOrMatching(key)
	if !ok || t.slots[index].Key == zero {
		return false
	}

	count := 0
	slot := index
	for i := 0; i < t.tableCount; i++ {
		if t.slots[slot].Key == zero {
			break
		}
		if t.slots[slot].Key == key && t.slots[slot].Value == value {
			t.slots[slot] = KeyValue[K, V]{}
			t.activeCount--
			removed = true
		}
		count++
		slot++
		if slot == t.tableCount {
			slot = 0
		}
	}
	t.fixUp(index, count)
	return removed
}

// fixUp re-homes the count slots following index, the run that may hold keys
// displaced past the slots just cleared.
func (t *table[K, V]) fixUp(index, count int) {
	var zero K
	for i := index + 1; i < t.tableCount; i++ {
		if count == 0 {
			return
		}
		count--
		if t.slots[i].Key != zero {
			t.reinsert(i)
		}
	}
	for i := 0; i < index; i++ {
		if count == 0 {
			return
		}
		count--
		if t.slots[i].Key != zero {
			t.reinsert(i)
		}
	}
}

// find returns the value stored under key. For a multi table this is the
// first value in the run.
func (t *table[K, V]) find(key K) (V, bool) {
	var zero K
	if t.status() != nil || key == zero {
		return t.notFound, false
	}
	index, ok := t.findEmptyOrMatching(key)
	if !ok || t.slots[index].Key == zero {
		return t.notFound, false
	}
	return t.slots[index].Value, true
}

func (t *table[K, V]) contains(key K) bool {
	_, ok := t.find(key)
	return ok
}

func (t *table[K, V]) containsPair(key K, value V) bool {
	var zero K
	if t.status() != nil || key == zero {
		return false
	}
	index, ok := t.findEmptyOrMatchingPair(key, value)
	return ok && t.slots[index].Key != zero
}

// findEmptyOrMatching scans forward from the key's home slot, wrapping at the
// table boundary, for the first slot that is empty or holds key. ok is false
// when the entire table was walked without finding either.
func (t *table[K, V]) findEmptyOrMatching(key K) (index int, ok bool) {
	var zero K
	slot := int(key.Hash() % uint32(t.tableCount))
	for i := 0; i < t.tableCount; i++ {
		if t.slots[slot].Key == zero || t.slots[slot].Key == key {
			return slot, true
		}
		slot++
		if slot == t.tableCount {
			slot = 0
		}
	}
	return 0, false
}

// findEmptyOrMatchingPair is like findEmptyOrMatching but requires key and
// value to match, so identical pairs deduplicate and new values of an
// existing key land in fresh slots of the same run.
func (t *table[K, V]) findEmptyOrMatchingPair(key K, value V) (index int, ok bool) {
	var zero K
	slot := int(key.Hash() % uint32(t.tableCount))
	for i := 0; i < t.tableCount; i++ {
		if t.slots[slot].Key == zero || (t.slots[slot].Key == key && t.slots[slot].Value == value) {
			return slot, true
		}
		slot++
		if slot == t.tableCount {
			slot = 0
		}
	}
	return 0, false
}

// reinsert moves the slot at index to its probe position, if that differs.
func (t *table[K, V]) reinsert(index int) {
	var target int
	var ok bool
	if t.multi {
		target, ok = t.findEmptyOrMatchingPair(t.slots[index].Key, t.slots[index].Value)
	} else {
		target, ok = t.findEmptyOrMatching(t.slots[index].Key)
	}
	if !ok || target == index {
		return
	}
	t.slots[target] = t.slots[index]
	t.slots[index] = KeyValue[K, V]{}
}

func (t *table[K, V]) grow() {
	if t.activeCount*100 >= t.tableCount*t.growThreshold {
		newTableCount := t.tableCount * 2
		newCapacity := max(len(t.slots), newTableCount)
		if !t.dynamicAlloc {
			newCapacity = len(t.slots)
			newTableCount = min(newTableCount, newCapacity)
		}
		t.resize(newTableCount, newCapacity)
	}
}

func (t *table[K, V]) shrink() {
	if t.tableCount > t.tableCountMin && t.activeCount*100 < t.tableCount*t.shrinkThreshold {
		newTableCount := max(t.tableCount/2, t.tableCountMin)
		newCapacity := max(newTableCount, t.allocCountMin)
		if !t.dynamicAlloc {
			newCapacity = len(t.slots)
		}
		t.resize(newTableCount, newCapacity)
	}
}

// resize applies one of the three resize disciplines: reallocate when the
// capacity changes, otherwise shrink or grow the hash region in place.
func (t *table[K, V]) resize(newTableCount, newCapacity int) {
	var zero K
	switch {
	case t.alloc != nil && len(t.slots) != newCapacity:
		old := t.slots
		oldTableCount := t.tableCount

		fresh := t.alloc.Allocate(newCapacity, t.name)
		if fresh == nil {
			// The store stays usable at its previous capacity.
			return
		}

		t.slots = fresh
		t.tableCount = newTableCount
		t.activeCount = 0
		for i := 0; i < oldTableCount; i++ {
			if old[i].Key != zero {
				t.place(old[i])
			}
		}

		if old != nil {
			t.alloc.Free(old)
		}

	case newTableCount < t.tableCount:
		oldTableCount := t.tableCount
		t.tableCount = newTableCount
		for i := 0; i < oldTableCount; i++ {
			if t.slots[i].Key != zero {
				t.reinsert(i)
			}
		}

	case newTableCount > t.tableCount:
		oldTableCount := t.tableCount
		t.tableCount = newTableCount
		for i := 0; i < oldTableCount; i++ {
			if t.slots[i].Key != zero {
				t.reinsert(i)
			}
		}
		// The start of the newly exposed region may hold pairs that were
		// bumped forward during the pass above; re-home them too.
		for i := oldTableCount; i < newTableCount; i++ {
			if t.slots[i].Key == zero {
				break
			}
			t.reinsert(i)
		}
	}
}

// place writes a pair at its probe position during a reallocation rebuild.
func (t *table[K, V]) place(pair KeyValue[K, V]) {
	var index int
	var ok bool
	if t.multi {
		index, ok = t.findEmptyOrMatchingPair(pair.Key, pair.Value)
	} else {
		index, ok = t.findEmptyOrMatching(pair.Key)
	}
	if !ok {
		return
	}
	var zero K
	if t.slots[index].Key == zero {
		t.slots[index] = pair
		t.activeCount++
	}
}

// firstIndex returns the index of the first occupied slot, or tableCount.
func (t *table[K, V]) firstIndex() int { return t.nextIndex(-1) }

// nextIndex returns the index of the next occupied slot after index, or
// tableCount.
func (t *table[K, V]) nextIndex(index int) int {
	var zero K
	for i := index + 1; i < t.tableCount; i++ {
		if t.slots[i].Key != zero {
			return i
		}
	}
	return t.tableCount
}

func (t *table[K, V]) isValid(index int) bool {
	return t.status() == nil && index < t.tableCount
}

// nextDistinctIndex returns the next occupied slot after index that is first
// in its run of equal keys, so that scanning with it visits every distinct
// key exactly once.
func (t *table[K, V]) nextDistinctIndex(index int) int {
	var zero K
	for i := index + 1; i < t.tableCount; i++ {
		if t.slots[i].Key != zero && t.isFirstInRun(i) {
			return i
		}
	}
	return t.tableCount
}

// isFirstInRun reports whether no slot between the nearest empty slot and
// index holds the same key, walking backward with wrap.
func (t *table[K, V]) isFirstInRun(index int) bool {
	var zero K
	key := t.slots[index].Key

	for i := index - 1; i >= 0; i-- {
		if t.slots[i].Key == zero {
			return true
		}
		if t.slots[i].Key == key {
			return false
		}
	}
	// Past the wrap an equal key only counts once an empty slot closes the
	// run; a full table has no run start, so its lowest index counts as first.
	seen := false
	for i := t.tableCount - 1; i > index; i-- {
		if t.slots[i].Key == zero {
			return !seen
		}
		if t.slots[i].Key == key {
			seen = true
		}
	}
	return true
}

// firstIndexOf returns the first slot of the run holding key, or tableCount.
func (t *table[K, V]) firstIndexOf(key K) int {
	var zero K
	if t.status() != nil || key == zero {
		return t.tableCount
	}
	index, ok := t.findEmptyOrMatching(key)
	if ok && t.slots[index].Key != zero {
		return index
	}
	return t.tableCount
}

// nextIndexOf returns the next slot after index holding key, scanning the run
// forward with wrap, or tableCount once an empty slot is met or the scan is
// back at the first slot of key.
func (t *table[K, V]) nextIndexOf(key K, index int) int {
	var zero K
	if t.status() != nil || key == zero {
		return t.tableCount
	}

	start := t.firstIndexOf(key)
	for i := index + 1; i < t.tableCount; i++ {
		if t.slots[i].Key == zero || i == start {
			return t.tableCount
		}
		if t.slots[i].Key == key {
			return i
		}
	}
	for i := 0; i < index; i++ {
		if t.slots[i].Key == zero || i == start {
			return t.tableCount
		}
		if t.slots[i].Key == key {
			return i
		}
	}
	return t.tableCount
}
