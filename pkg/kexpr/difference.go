package kexpr

import "github.com/FAU-CDI/mojave/pkg/kset"

// Difference is the set of keys contained in the include operand but not in
// the exclude operand.
type Difference[K kset.Key] struct {
	include kset.Interface[K]
	exclude kset.Interface[K]
}

// NewDifference creates the difference include minus exclude.
func NewDifference[K kset.Key](include, exclude kset.Interface[K]) *Difference[K] {
	return &Difference[K]{include: include, exclude: exclude}
}

// Contains tests if include contains key and exclude does not.
func (d *Difference[K]) Contains(key K) bool {
	return d.include.Contains(key) && !d.exclude.Contains(key)
}

// Enumerate drives iteration from include, skipping keys contained in
// exclude.
func (d *Difference[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	d.include.Enumerate(into, &mask[K]{exclude: d.exclude, outer: limit})
}

// EnumerationCost returns the cost of the include operand.
func (d *Difference[K]) EnumerationCost() int {
	return d.include.EnumerationCost()
}

// ChangeCount returns the summed change count of both operands.
func (d *Difference[K]) ChangeCount() int {
	return d.include.ChangeCount() + d.exclude.ChangeCount()
}

// mask is the limit a [Difference] hands its include operand: everything not
// in exclude that also passes the external limit.
type mask[K kset.Key] struct {
	exclude kset.Interface[K]
	outer   kset.Interface[K]
}

func (m *mask[K]) Contains(key K) bool {
	return !m.exclude.Contains(key) && (m.outer == nil || m.outer.Contains(key))
}

// Enumerate is never called while the mask acts as a limit.
func (m *mask[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {}

func (m *mask[K]) EnumerationCost() int {
	if m.outer == nil {
		return 0
	}
	return m.outer.EnumerationCost()
}

func (m *mask[K]) ChangeCount() int {
	count := m.exclude.ChangeCount()
	if m.outer != nil {
		count += m.outer.ChangeCount()
	}
	return count
}
