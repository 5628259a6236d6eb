package kexpr

//spellchecker:words kexpr kset

import (
	"errors"

	"github.com/FAU-CDI/mojave/pkg/kset"
)

// errFound aborts a relation walk early once a match is known.
var errFound = errors.New("kexpr: found")

// DirectOpen is the set of keys that are a child in the relation and whose
// parent is contained in the operand set.
type DirectOpen[K kset.Key] struct {
	relation *kset.Relation[K]
	operand  kset.Interface[K]
}

// NewDirectOpen creates a [DirectOpen] over relation and operand.
func NewDirectOpen[K kset.Key](relation *kset.Relation[K], operand kset.Interface[K]) *DirectOpen[K] {
	return &DirectOpen[K]{relation: relation, operand: operand}
}

func (d *DirectOpen[K]) Contains(key K) bool {
	var zero K
	parent := d.relation.FindParent(key)
	return parent != zero && d.operand.Contains(parent)
}

// Enumerate pushes, for every key of the operand set, the children that key
// has in the relation.
func (d *DirectOpen[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	d.operand.Enumerate(kset.CollectorFunc[K](func(key K) {
		_ = d.relation.IterateChildren(key, func(child K) error {
			if limit == nil || limit.Contains(child) {
				into.Push(child)
			}
			return nil
		})
	}), nil)
}

func (d *DirectOpen[K]) EnumerationCost() int { return d.operand.EnumerationCost() }

func (d *DirectOpen[K]) ChangeCount() int {
	return d.operand.ChangeCount() + d.relation.ChangeCount()
}

// DirectClosedShallow is the set of parents, in the relation, of the keys of
// the operand set; a key without a parent stands for itself.
type DirectClosedShallow[K kset.Key] struct {
	relation *kset.Relation[K]
	operand  kset.Interface[K]
}

// NewDirectClosedShallow creates a [DirectClosedShallow] over relation and
// operand.
func NewDirectClosedShallow[K kset.Key](relation *kset.Relation[K], operand kset.Interface[K]) *DirectClosedShallow[K] {
	return &DirectClosedShallow[K]{relation: relation, operand: operand}
}

func (d *DirectClosedShallow[K]) Contains(key K) bool {
	err := d.relation.IterateChildren(key, func(child K) error {
		if d.operand.Contains(child) {
			return errFound
		}
		return nil
	})
	if errors.Is(err, errFound) {
		return true
	}
	return !d.relation.Contains(key) && d.operand.Contains(key)
}

// Enumerate pushes, for every key of the operand set, its parent in the
// relation, or the key itself when it has none.
func (d *DirectClosedShallow[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	var zero K
	d.operand.Enumerate(kset.CollectorFunc[K](func(key K) {
		result := d.relation.FindParent(key)
		if result == zero {
			result = key
		}
		if limit == nil || limit.Contains(result) {
			into.Push(result)
		}
	}), nil)
}

func (d *DirectClosedShallow[K]) EnumerationCost() int { return d.operand.EnumerationCost() }

func (d *DirectClosedShallow[K]) ChangeCount() int {
	return d.operand.ChangeCount() + d.relation.ChangeCount()
}

// DirectClosedDeep is the set of topmost ancestors, in the relation, of the
// keys of the operand set; a key without a parent stands for itself.
//
// Enumeration may push duplicates when operand keys share a topmost
// ancestor; collect into a [kset.SetCollector]. The relation must be acyclic
// along the parent direction.
type DirectClosedDeep[K kset.Key] struct {
	relation *kset.Relation[K]
	operand  kset.Interface[K]
}

// NewDirectClosedDeep creates a [DirectClosedDeep] over relation and operand.
func NewDirectClosedDeep[K kset.Key](relation *kset.Relation[K], operand kset.Interface[K]) *DirectClosedDeep[K] {
	return &DirectClosedDeep[K]{relation: relation, operand: operand}
}

// Contains tests if key has no parent and either the operand set contains it
// or some descendant of it is contained in the operand set.
func (d *DirectClosedDeep[K]) Contains(key K) bool {
	if d.relation.Contains(key) {
		// key has a parent and is not a topmost ancestor
		return false
	}
	return d.operand.Contains(key) || d.containsDescendant(key)
}

// containsDescendant tests if any descendant of key is in the operand set.
func (d *DirectClosedDeep[K]) containsDescendant(key K) bool {
	err := d.relation.IterateChildren(key, func(child K) error {
		if d.operand.Contains(child) || d.containsDescendant(child) {
			return errFound
		}
		return nil
	})
	return errors.Is(err, errFound)
}

// Enumerate walks, for every key of the operand set, the parent chain to its
// top, pushing the topmost ancestor; a key without a parent is pushed
// itself.
func (d *DirectClosedDeep[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	var zero K
	d.operand.Enumerate(kset.CollectorFunc[K](func(key K) {
		top := key
		for parent := d.relation.FindParent(top); parent != zero; parent = d.relation.FindParent(top) {
			top = parent
		}
		if limit == nil || limit.Contains(top) {
			into.Push(top)
		}
	}), nil)
}

// EnumerationCost propagates the operand cost unchanged; duplicate pushes of
// shared ancestors are not accounted for.
func (d *DirectClosedDeep[K]) EnumerationCost() int { return d.operand.EnumerationCost() }

func (d *DirectClosedDeep[K]) ChangeCount() int {
	return d.operand.ChangeCount() + d.relation.ChangeCount()
}
