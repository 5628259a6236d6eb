package kexpr

import "github.com/FAU-CDI/mojave/pkg/kset"

// Union is the set of keys contained in at least one of its operands.
type Union[K kset.Key] struct {
	operands []kset.Interface[K]
}

// NewUnion creates the union of the given operands.
func NewUnion[K kset.Key](operands ...kset.Interface[K]) *Union[K] {
	return &Union[K]{operands: operands}
}

// Contains tests if any operand contains key.
func (u *Union[K]) Contains(key K) bool {
	for _, operand := range u.operands {
		if operand.Contains(key) {
			return true
		}
	}
	return false
}

// Enumerate enumerates each operand in turn.
// A key contained in several operands is pushed once per operand; collect
// into a [kset.SetCollector] to deduplicate.
func (u *Union[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	for _, operand := range u.operands {
		operand.Enumerate(into, limit)
	}
}

// EnumerationCost returns the summed cost of all operands.
func (u *Union[K]) EnumerationCost() (cost int) {
	for _, operand := range u.operands {
		cost += operand.EnumerationCost()
	}
	return cost
}

// ChangeCount returns the summed change count of all operands.
func (u *Union[K]) ChangeCount() (count int) {
	for _, operand := range u.operands {
		count += operand.ChangeCount()
	}
	return count
}
