package kset_test

//spellchecker:words kset

import (
	"errors"
	"sort"
	"testing"

	"github.com/FAU-CDI/mojave/pkg/kset"
)

// id is a test key hashing to itself.
type id uint32

func (k id) Hash() uint32 { return uint32(k) }

const (
	a id = iota + 1
	b
	c
	d
)

// family builds the relation with the edges c->b, b->a, d->a.
func family(t *testing.T) *kset.Relation[id] {
	t.Helper()

	r, err := kset.NewRelation[id]("family", nil, nil)
	if err != nil {
		t.Fatalf("NewRelation returned error %s", err)
	}
	t.Cleanup(r.Destroy)

	for _, edge := range []struct{ child, parent id }{{c, b}, {b, a}, {d, a}} {
		if err := r.Insert(edge.child, edge.parent); err != nil {
			t.Fatalf("Insert returned error %s", err)
		}
	}
	return r
}

// children returns the sorted children of parent.
func children(t *testing.T, r *kset.Relation[id], parent id) []int {
	t.Helper()

	var got []int
	if err := r.IterateChildren(parent, func(child id) error {
		got = append(got, int(child))
		return nil
	}); err != nil {
		t.Fatalf("IterateChildren returned error %s", err)
	}
	sort.Ints(got)
	return got
}

// checkConsistent verifies that the child and parent views of the relation
// agree: every child's parent lists it as a child, and every listed child
// maps back to its parent.
func checkConsistent(t *testing.T, r *kset.Relation[id]) {
	t.Helper()

	count := 0
	r.Enumerate(kset.CollectorFunc[id](func(child id) {
		count++
		parent := r.FindParent(child)
		if parent == 0 {
			t.Errorf("child %d has no parent", child)
			return
		}
		listed := false
		_ = r.IterateChildren(parent, func(sibling id) error {
			listed = listed || sibling == child
			return nil
		})
		if !listed {
			t.Errorf("parent %d does not list child %d", parent, child)
		}
	}), nil)

	for parent := id(1); parent <= 8; parent++ {
		_ = r.IterateChildren(parent, func(child id) error {
			if r.FindParent(child) != parent {
				t.Errorf("child %d of %d maps to parent %d", child, parent, r.FindParent(child))
			}
			return nil
		})
	}

	if count != r.Count() {
		t.Errorf("enumerated %d children, Count() = %d", count, r.Count())
	}
}

func TestRelationFindParent(t *testing.T) {
	t.Parallel()

	r := family(t)

	if got := r.FindParent(c); got != b {
		t.Errorf("FindParent(c) = %d, want b", got)
	}
	if got := r.FindParent(b); got != a {
		t.Errorf("FindParent(b) = %d, want a", got)
	}
	if got := r.FindParent(a); got != 0 {
		t.Errorf("FindParent(a) = %d, want the null key", got)
	}

	if !r.Contains(c) {
		t.Error("Contains(c) = false, want true")
	}
	if r.Contains(a) {
		t.Error("Contains(a) = true, want false")
	}
	if !r.ContainsParent(a) {
		t.Error("ContainsParent(a) = false, want true")
	}
	if r.ContainsParent(c) {
		t.Error("ContainsParent(c) = true, want false")
	}

	if got := children(t, r, a); len(got) != 2 || got[0] != int(b) || got[1] != int(d) {
		t.Errorf("children(a) = %v, want [b d]", got)
	}

	checkConsistent(t, r)
}

func TestRelationReplaceParent(t *testing.T) {
	t.Parallel()

	r := family(t)

	// c moves from b to a
	if err := r.Insert(c, a); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}
	if got := r.FindParent(c); got != a {
		t.Errorf("FindParent(c) = %d after replace, want a", got)
	}
	if got := children(t, r, b); len(got) != 0 {
		t.Errorf("children(b) = %v after replace, want none", got)
	}
	checkConsistent(t, r)
}

func TestRelationRemoveChild(t *testing.T) {
	t.Parallel()

	r := family(t)

	if err := r.RemoveChild(b); err != nil {
		t.Fatalf("RemoveChild returned error %s", err)
	}
	if r.Contains(b) {
		t.Error("Contains(b) = true after RemoveChild")
	}
	if got := children(t, r, a); len(got) != 1 || got[0] != int(d) {
		t.Errorf("children(a) = %v, want [d]", got)
	}
	if err := r.RemoveChild(b); !errors.Is(err, kset.ErrNotFound) {
		t.Errorf("second RemoveChild returned %v, want ErrNotFound", err)
	}
	checkConsistent(t, r)
}

func TestRelationRemoveParent(t *testing.T) {
	t.Parallel()

	r := family(t)

	if err := r.RemoveParent(a); err != nil {
		t.Fatalf("RemoveParent returned error %s", err)
	}

	if got := r.FindParent(b); got != 0 {
		t.Errorf("FindParent(b) = %d after RemoveParent, want the null key", got)
	}
	if got := r.FindParent(d); got != 0 {
		t.Errorf("FindParent(d) = %d after RemoveParent, want the null key", got)
	}
	if got := r.FindParent(c); got != b {
		t.Errorf("FindParent(c) = %d after RemoveParent, want b", got)
	}
	if r.ContainsParent(a) {
		t.Error("ContainsParent(a) = true after RemoveParent")
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d after RemoveParent, want 1", r.Count())
	}
	checkConsistent(t, r)
}

func TestRelationNullKeys(t *testing.T) {
	t.Parallel()

	r := family(t)
	count, changes := r.Count(), r.ChangeCount()

	if err := r.Insert(0, a); !errors.Is(err, kset.ErrInvalidArguments) {
		t.Errorf("Insert(null, a) returned %v, want ErrInvalidArguments", err)
	}
	if r.Count() != count || r.ChangeCount() != changes {
		t.Error("inserting a null child mutated the relation")
	}

	// a null parent removes the child
	if err := r.Insert(c, 0); err != nil {
		t.Fatalf("Insert(c, null) returned error %s", err)
	}
	if r.Contains(c) {
		t.Error("Contains(c) = true after inserting a null parent")
	}
	checkConsistent(t, r)
}
