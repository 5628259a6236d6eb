// Package kset implements open-addressed hash stores over caller-supplied keys.
//
// The stores are [Set], [Map] and [MultiMap]; all three share one table
// discipline: linear probing with wrap, occupied slots forming contiguous runs
// bounded by empty slots, and removal that repairs the displacement chain by
// reinserting the remainder of the run instead of leaving tombstones.
// [Relation] combines a map and a multimap into a consistent many-to-one
// relation.
//
// Every store also implements [Interface], the abstract-set contract shared
// with the expression nodes in the kexpr package.
//
// Stores are not safe for concurrent use.
package kset

//spellchecker:words kset multimap tombstones

// Key is the constraint for anything stored in a hash store.
//
// The zero value of a key type is the null key: it marks empty table slots and
// is never a valid element. Inserting it fails with [ErrInvalidArguments].
type Key interface {
	comparable

	// Hash returns the hash of this key.
	// Equal keys must hash equally.
	Hash() uint32
}

// Interface is the abstract-set contract.
//
// It is implemented by every concrete store as well as by every expression
// node; callers compose and consume both through the same four operations.
type Interface[K Key] interface {
	// Contains tests if key is an element of the set.
	Contains(key K) bool

	// Enumerate pushes every element into the collector.
	// When limit is not nil, only elements also contained in limit are pushed.
	//
	// Some implementations may push the same element more than once; collect
	// into a [SetCollector] to materialize the semantic set.
	Enumerate(into Collector[K], limit Interface[K])

	// EnumerationCost is a heuristic upper bound for the number of pushes an
	// Enumerate call will make, used to pick the cheapest operand to drive a
	// composite enumeration.
	EnumerationCost() int

	// ChangeCount increases with every user-visible mutation of the
	// underlying store(s). Callers may cache a materialized result and
	// invalidate it by comparing a single integer.
	ChangeCount() int
}

// Collector receives elements produced by [Interface.Enumerate].
type Collector[K Key] interface {
	// Push accepts a single element.
	Push(key K)
}

// CollectorFunc is a function implementing [Collector].
type CollectorFunc[K Key] func(key K)

// Push calls f.
func (f CollectorFunc[K]) Push(key K) {
	f(key)
}
