package kset

//spellchecker:words kset multimap

import "github.com/tkw1536/pkglib/iterator"

// Relation is a many-to-one relation, such as child to parent. Each child
// has at most one parent; a parent may have any number of children.
//
// It is composed of a child-to-parent [Map] and a parent-to-child [MultiMap]
// that every mutation updates together, so that (c, p) is in one exactly when
// (p, c) is in the other.
//
// As an [Interface], a relation is the set of its children.
type Relation[K Key] struct {
	name string

	childToParent Map[K, K]      // a child has at most one parent
	parentToChild MultiMap[K, K] // a parent may have many children
}

// NewRelation creates a dynamically allocated relation.
func NewRelation[K Key](name string, config *Config, alloc Allocator[KeyValue[K, K]]) (*Relation[K], error) {
	r := new(Relation[K])
	err := r.Create(name, config, alloc)
	return r, err
}

// NewFixedRelation creates a relation backed by the caller-owned buffer,
// which is split evenly between the two underlying stores.
func NewFixedRelation[K Key](name string, config *Config, buffer []KeyValue[K, K]) (*Relation[K], error) {
	r := new(Relation[K])
	err := r.CreateFixed(name, config, buffer)
	return r, err
}

// Create initializes a relation after the zero value or a call to
// [Relation.Destroy].
func (r *Relation[K]) Create(name string, config *Config, alloc Allocator[KeyValue[K, K]]) error {
	r.name = name
	var notFound K
	_ = r.childToParent.Create(name, notFound, config, alloc)
	_ = r.parentToChild.Create(name, notFound, config, alloc)
	return r.Status()
}

// CreateFixed is like [Relation.Create], but splits the caller-owned buffer
// between both stores and never allocates.
func (r *Relation[K]) CreateFixed(name string, config *Config, buffer []KeyValue[K, K]) error {
	r.name = name
	var notFound K
	half := len(buffer) / 2
	_ = r.childToParent.CreateFixed(name, notFound, config, buffer[:half])
	_ = r.parentToChild.CreateFixed(name, notFound, config, buffer[half:])
	return r.Status()
}

// Destroy removes all relations and releases allocated storage.
// It is idempotent; the relation may be created again afterwards.
func (r *Relation[K]) Destroy() {
	r.childToParent.Destroy()
	r.parentToChild.Destroy()
	r.name = ""
}

// Reset removes all relations and returns both tables to their minimum size.
func (r *Relation[K]) Reset() {
	r.childToParent.Reset()
	r.parentToChild.Reset()
}

// Status returns the sticky creation state of this relation.
func (r *Relation[K]) Status() error {
	if err := r.parentToChild.Status(); err != nil {
		return err
	}
	return r.childToParent.Status()
}

// Update runs one grow and one shrink pass on both tables on demand.
func (r *Relation[K]) Update() error {
	if err := r.childToParent.Update(); err != nil {
		return err
	}
	return r.parentToChild.Update()
}

// Name returns the name given at creation.
func (r *Relation[K]) Name() string { return r.name }

// Count returns the number of child-parent relations.
func (r *Relation[K]) Count() int { return r.childToParent.Count() }

// ChangeCount increases with every mutation of this relation.
func (r *Relation[K]) ChangeCount() int { return r.childToParent.ChangeCount() }

// EnumerationCost returns the number of children an Enumerate call will push.
func (r *Relation[K]) EnumerationCost() int { return r.Count() }

// Insert relates child to parent. A child's existing parent is replaced.
// A null parent removes the child; a null child is [ErrInvalidArguments].
func (r *Relation[K]) Insert(child, parent K) error {
	var zero K
	switch {
	case parent == zero:
		return r.RemoveChild(child)
	case child == zero:
		return ErrInvalidArguments
	}

	// Replace before inserting so that both sides stay consistent.
	_ = r.RemoveChild(child)
	if err := r.childToParent.Insert(child, parent); err != nil {
		return err
	}
	return r.parentToChild.Insert(parent, child)
}

// RemoveChild removes the child's relation with its parent.
func (r *Relation[K]) RemoveChild(child K) error {
	var zero K
	if child == zero {
		return ErrInvalidArguments
	}

	parent, err := r.childToParent.Remove(child)
	if err != nil {
		return err
	}
	return r.parentToChild.RemovePair(parent, child)
}

// RemoveParent removes every relation in which parent is the parent.
func (r *Relation[K]) RemoveParent(parent K) error {
	var zero K
	if parent == zero {
		return ErrInvalidArguments
	}

	_ = r.parentToChild.IterateValues(parent, func(child K) error {
		_, err := r.childToParent.Remove(child)
		return err
	})
	return r.parentToChild.Remove(parent)
}

// FindParent returns the parent of child, or the null key.
func (r *Relation[K]) FindParent(child K) K {
	return r.childToParent.Find(child)
}

// Contains tests the presence of a child; true means the child has a parent.
func (r *Relation[K]) Contains(child K) bool {
	return r.childToParent.Contains(child)
}

// ContainsParent tests the presence of a parent; true means the parent has at
// least one child.
func (r *Relation[K]) ContainsParent(parent K) bool {
	return r.parentToChild.Contains(parent)
}

// Enumerate pushes every child into the collector, filtered by limit if
// given.
func (r *Relation[K]) Enumerate(into Collector[K], limit Interface[K]) {
	r.childToParent.Enumerate(into, limit)
}

// IterateChildren calls f for every child of parent.
// When f returns a non-nil error, iteration stops and the error is returned.
// The relation must not be mutated during iteration.
func (r *Relation[K]) IterateChildren(parent K, f func(K) error) error {
	return r.parentToChild.IterateValues(parent, f)
}

// Children returns an iterator over the children of parent.
// There is no guarantee on order; the relation must not be mutated while the
// iterator is in use.
func (r *Relation[K]) Children(parent K) iterator.Iterator[K] {
	return r.parentToChild.Values(parent)
}
