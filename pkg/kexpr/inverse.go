package kexpr

//spellchecker:words kexpr kset

import (
	"errors"

	"github.com/FAU-CDI/mojave/pkg/kset"
)

// InverseOpen is the set of keys that are a parent in the relation and have
// at least one child contained in the operand set.
type InverseOpen[K kset.Key] struct {
	relation *kset.Relation[K]
	operand  kset.Interface[K]
}

// NewInverseOpen creates an [InverseOpen] over relation and operand.
func NewInverseOpen[K kset.Key](relation *kset.Relation[K], operand kset.Interface[K]) *InverseOpen[K] {
	return &InverseOpen[K]{relation: relation, operand: operand}
}

func (n *InverseOpen[K]) Contains(key K) bool {
	err := n.relation.IterateChildren(key, func(child K) error {
		if n.operand.Contains(child) {
			return errFound
		}
		return nil
	})
	return errors.Is(err, errFound)
}

// Enumerate pushes, for every key of the operand set, the parent that key has
// in the relation.
func (n *InverseOpen[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	var zero K
	n.operand.Enumerate(kset.CollectorFunc[K](func(key K) {
		parent := n.relation.FindParent(key)
		if parent != zero && (limit == nil || limit.Contains(parent)) {
			into.Push(parent)
		}
	}), nil)
}

func (n *InverseOpen[K]) EnumerationCost() int { return n.operand.EnumerationCost() }

func (n *InverseOpen[K]) ChangeCount() int {
	return n.operand.ChangeCount() + n.relation.ChangeCount()
}

// InverseClosedShallow is the set of children, in the relation, of the keys
// of the operand set; a key without a child stands for itself.
type InverseClosedShallow[K kset.Key] struct {
	relation *kset.Relation[K]
	operand  kset.Interface[K]
}

// NewInverseClosedShallow creates an [InverseClosedShallow] over relation and
// operand.
func NewInverseClosedShallow[K kset.Key](relation *kset.Relation[K], operand kset.Interface[K]) *InverseClosedShallow[K] {
	return &InverseClosedShallow[K]{relation: relation, operand: operand}
}

func (n *InverseClosedShallow[K]) Contains(key K) bool {
	var zero K
	if parent := n.relation.FindParent(key); parent != zero && n.operand.Contains(parent) {
		return true
	}
	return !n.relation.ContainsParent(key) && n.operand.Contains(key)
}

// Enumerate pushes, for every key of the operand set, its children in the
// relation, or the key itself when it has none.
func (n *InverseClosedShallow[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	n.operand.Enumerate(kset.CollectorFunc[K](func(key K) {
		if !n.relation.ContainsParent(key) {
			if limit == nil || limit.Contains(key) {
				into.Push(key)
			}
			return
		}
		_ = n.relation.IterateChildren(key, func(child K) error {
			if limit == nil || limit.Contains(child) {
				into.Push(child)
			}
			return nil
		})
	}), nil)
}

func (n *InverseClosedShallow[K]) EnumerationCost() int { return n.operand.EnumerationCost() }

func (n *InverseClosedShallow[K]) ChangeCount() int {
	return n.operand.ChangeCount() + n.relation.ChangeCount()
}

// InverseClosedDeep is the set of descendants, in the relation, of the keys
// of the operand set; a key without a child stands for itself.
//
// Enumeration pushes every descendant of every operand key and may therefore
// push duplicates when operand keys share descendants; collect into a
// [kset.SetCollector]. The relation must be acyclic along the child
// direction.
type InverseClosedDeep[K kset.Key] struct {
	relation *kset.Relation[K]
	operand  kset.Interface[K]
}

// NewInverseClosedDeep creates an [InverseClosedDeep] over relation and
// operand.
func NewInverseClosedDeep[K kset.Key](relation *kset.Relation[K], operand kset.Interface[K]) *InverseClosedDeep[K] {
	return &InverseClosedDeep[K]{relation: relation, operand: operand}
}

// Contains tests if any ancestor of key is contained in the operand set, or,
// for a key that is not itself a parent, if the operand set contains it.
func (n *InverseClosedDeep[K]) Contains(key K) bool {
	var zero K
	for parent := n.relation.FindParent(key); parent != zero; parent = n.relation.FindParent(parent) {
		if n.operand.Contains(parent) {
			return true
		}
	}
	return !n.relation.ContainsParent(key) && n.operand.Contains(key)
}

// Enumerate pushes, for every key of the operand set, all of its descendants
// in the relation; a key without a child is pushed itself.
func (n *InverseClosedDeep[K]) Enumerate(into kset.Collector[K], limit kset.Interface[K]) {
	n.operand.Enumerate(kset.CollectorFunc[K](func(key K) {
		if !n.relation.ContainsParent(key) {
			if limit == nil || limit.Contains(key) {
				into.Push(key)
			}
			return
		}
		n.pushDescendants(key, into, limit)
	}), nil)
}

func (n *InverseClosedDeep[K]) pushDescendants(parent K, into kset.Collector[K], limit kset.Interface[K]) {
	_ = n.relation.IterateChildren(parent, func(child K) error {
		if limit == nil || limit.Contains(child) {
			into.Push(child)
		}
		n.pushDescendants(child, into, limit)
		return nil
	})
}

// EnumerationCost propagates the operand cost unchanged; duplicate pushes of
// shared descendants are not accounted for.
func (n *InverseClosedDeep[K]) EnumerationCost() int { return n.operand.EnumerationCost() }

func (n *InverseClosedDeep[K]) ChangeCount() int {
	return n.operand.ChangeCount() + n.relation.ChangeCount()
}
