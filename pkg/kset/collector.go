package kset

// SetCollector writes pushed keys into a concrete [Set].
//
// It is the canonical deduplicating sink: enumerating any expression into a
// SetCollector materializes the semantic set regardless of duplicate pushes.
type SetCollector[K Key] struct {
	set *Set[K]
}

// NewSetCollector creates a collector inserting into set.
func NewSetCollector[K Key](set *Set[K]) SetCollector[K] {
	return SetCollector[K]{set: set}
}

// Push inserts key into the underlying set.
func (c SetCollector[K]) Push(key K) {
	_ = c.set.Insert(key)
}

// SliceCollector appends pushed keys to a slice, in push order and including
// duplicates.
type SliceCollector[K Key] struct {
	Keys []K
}

// Push appends key.
func (c *SliceCollector[K]) Push(key K) {
	c.Keys = append(c.Keys, key)
}
