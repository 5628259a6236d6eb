package kexpr

import "github.com/FAU-CDI/mojave/pkg/kset"

// Intersection is the set of keys contained in every one of its operands.
type Intersection[K kset.Key] struct {
	operands []kset.Interface[K]
}

// NewIntersection creates the intersection of the given operands.
func NewIntersection[K kset.Key](operands ...kset.Interface[K]) *Intersection[K] {
	return &Intersection[K]{operands: operands}
}

// Contains tests if every operand contains key.
func (x *Intersection[K]) Contains(key K) bool {
	for _, operand := range x.operands {
		if !operand.Contains(key) {
			return false
		}
	}
	return len(x.operands) > 0
}

// Enumerate drives iteration from the operand with the lowest enumeration
// cost and filters through the remaining operands and limit.
func (x *Intersection[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	if len(x.operands) == 0 {
		return
	}

	driver := 0
	cost := x.operands[0].EnumerationCost()
	for i, operand := range x.operands[1:] {
		if c := operand.EnumerationCost(); c < cost {
			driver, cost = i+1, c
		}
	}

	x.operands[driver].Enumerate(into, &residual[K]{
		operands: x.operands,
		skip:     driver,
		outer:    limit,
	})
}

// EnumerationCost returns the cost of the cheapest operand, the one
// Enumerate drives from.
func (x *Intersection[K]) EnumerationCost() int {
	if len(x.operands) == 0 {
		return 0
	}
	cost := x.operands[0].EnumerationCost()
	for _, operand := range x.operands[1:] {
		cost = min(cost, operand.EnumerationCost())
	}
	return cost
}

// ChangeCount returns the summed change count of all operands.
func (x *Intersection[K]) ChangeCount() (count int) {
	for _, operand := range x.operands {
		count += operand.ChangeCount()
	}
	return count
}

// residual is the limit an [Intersection] hands its driving operand: the
// intersection of the remaining operands and the external limit.
type residual[K kset.Key] struct {
	operands []kset.Interface[K]
	skip     int
	outer    kset.Interface[K]
}

func (r *residual[K]) Contains(key K) bool {
	for i, operand := range r.operands {
		if i == r.skip {
			continue
		}
		if !operand.Contains(key) {
			return false
		}
	}
	return r.outer == nil || r.outer.Contains(key)
}

// Enumerate is never called while the residual acts as a limit; it falls
// back to enumerating the skipped operand filtered by the residual itself.
func (r *residual[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	if limit != nil {
		combined := limit
		if r.outer != nil {
			combined = NewIntersection[K](r.outer, limit)
		}
		r = &residual[K]{operands: r.operands, skip: r.skip, outer: combined}
	}
	r.operands[r.skip].Enumerate(into, r)
}

func (r *residual[K]) EnumerationCost() int {
	cost, first := 0, true
	for i, operand := range r.operands {
		if i == r.skip {
			continue
		}
		if c := operand.EnumerationCost(); first || c < cost {
			cost, first = c, false
		}
	}
	return cost
}

func (r *residual[K]) ChangeCount() (count int) {
	for _, operand := range r.operands {
		count += operand.ChangeCount()
	}
	if r.outer != nil {
		count += r.outer.ChangeCount()
	}
	return count
}
