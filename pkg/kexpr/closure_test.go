package kexpr_test

//spellchecker:words kexpr kset

import (
	"testing"

	"github.com/FAU-CDI/mojave/pkg/kexpr"
	"github.com/FAU-CDI/mojave/pkg/kset"
	"github.com/stretchr/testify/require"
)

const (
	a key = iota + 1
	b
	c
	d
	e
)

// forest builds the relation with the edges c->b, b->a, d->a.
// e is unrelated.
func forest(t *testing.T) *kset.Relation[key] {
	t.Helper()

	r, err := kset.NewRelation[key]("forest", nil, nil)
	require.NoError(t, err)
	t.Cleanup(r.Destroy)

	for _, edge := range []struct{ child, parent key }{{c, b}, {b, a}, {d, a}} {
		require.NoError(t, r.Insert(edge.child, edge.parent))
	}
	return r
}

func TestDirectOpen(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// children whose parent is in the operand set
	require.Equal(t, []key{b, d}, materialize(t, kexpr.NewDirectOpen[key](r, newSet(t, "s", a))))
	require.Equal(t, []key{c}, materialize(t, kexpr.NewDirectOpen[key](r, newSet(t, "s", b))))
	require.Empty(t, materialize(t, kexpr.NewDirectOpen[key](r, newSet(t, "s", c, e))))

	requireAgreesWithContains(t, kexpr.NewDirectOpen[key](r, newSet(t, "s", a, b)))
}

func TestDirectClosedShallow(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// parents of the operand keys; keys without a parent stand for themselves
	require.Equal(t, []key{b}, materialize(t, kexpr.NewDirectClosedShallow[key](r, newSet(t, "s", c))))
	require.Equal(t, []key{a}, materialize(t, kexpr.NewDirectClosedShallow[key](r, newSet(t, "s", b, d))))
	require.Equal(t, []key{b, e}, materialize(t, kexpr.NewDirectClosedShallow[key](r, newSet(t, "s", c, e))))
	require.Equal(t, []key{a}, materialize(t, kexpr.NewDirectClosedShallow[key](r, newSet(t, "s", a))))

	requireAgreesWithContains(t, kexpr.NewDirectClosedShallow[key](r, newSet(t, "s", c, e)))
	requireAgreesWithContains(t, kexpr.NewDirectClosedShallow[key](r, newSet(t, "s", b, d)))
}

func TestDirectClosedDeep(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// topmost ancestors of the operand keys
	require.Equal(t, []key{a}, materialize(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s", c))))
	require.Equal(t, []key{a}, materialize(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s", b, c, d))))
	require.Equal(t, []key{a, e}, materialize(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s", c, e))))
	require.Equal(t, []key{a}, materialize(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s", a))))

	requireAgreesWithContains(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s", c, e)))
	requireAgreesWithContains(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s", b, d)))
}

func TestInverseOpen(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// parents having a child in the operand set
	require.Equal(t, []key{b}, materialize(t, kexpr.NewInverseOpen[key](r, newSet(t, "s", c))))
	require.Equal(t, []key{a}, materialize(t, kexpr.NewInverseOpen[key](r, newSet(t, "s", b, d))))
	require.Empty(t, materialize(t, kexpr.NewInverseOpen[key](r, newSet(t, "s", a, e))))

	requireAgreesWithContains(t, kexpr.NewInverseOpen[key](r, newSet(t, "s", b, c)))
}

func TestInverseClosedShallow(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// children of the operand keys; keys without a child stand for themselves
	require.Equal(t, []key{b, d}, materialize(t, kexpr.NewInverseClosedShallow[key](r, newSet(t, "s", a))))
	require.Equal(t, []key{c}, materialize(t, kexpr.NewInverseClosedShallow[key](r, newSet(t, "s", b))))
	require.Equal(t, []key{c, e}, materialize(t, kexpr.NewInverseClosedShallow[key](r, newSet(t, "s", c, e))))

	requireAgreesWithContains(t, kexpr.NewInverseClosedShallow[key](r, newSet(t, "s", a, e)))
	requireAgreesWithContains(t, kexpr.NewInverseClosedShallow[key](r, newSet(t, "s", b, c)))
}

func TestInverseClosedDeep(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// transitive descendants of the operand keys
	require.Equal(t, []key{b, c, d}, materialize(t, kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", a))))
	require.Equal(t, []key{c}, materialize(t, kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", b))))
	require.Equal(t, []key{c, e}, materialize(t, kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", c, e))))

	requireAgreesWithContains(t, kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", a)))
	requireAgreesWithContains(t, kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", b, e)))
}

func TestDeepDuplicates(t *testing.T) {
	t.Parallel()
	r := forest(t)

	// descendants of a and of b overlap in c: the raw enumeration pushes it
	// twice, the set collector keeps it once
	expr := kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", a, b))

	var pushed kset.SliceCollector[key]
	expr.Enumerate(&pushed, nil)
	require.Len(t, pushed.Keys, 4)

	require.Equal(t, []key{b, c, d}, materialize(t, expr))
}

func TestClosureChangeCount(t *testing.T) {
	t.Parallel()
	r := forest(t)
	s := newSet(t, "s", c)

	expr := kexpr.NewDirectClosedDeep[key](r, s)
	require.Equal(t, s.ChangeCount()+r.ChangeCount(), expr.ChangeCount())

	before := expr.ChangeCount()
	require.NoError(t, r.Insert(e, d))
	require.Greater(t, expr.ChangeCount(), before)

	// the new edge is observed: c's topmost ancestor is still a, e's is now a
	require.Equal(t, []key{a}, materialize(t, kexpr.NewDirectClosedDeep[key](r, newSet(t, "s2", e))))
}

func TestClosureWithLimit(t *testing.T) {
	t.Parallel()
	r := forest(t)

	var pushed kset.SliceCollector[key]
	kexpr.NewInverseClosedDeep[key](r, newSet(t, "s", a)).Enumerate(&pushed, newSet(t, "limit", b, c))

	require.ElementsMatch(t, []key{b, c}, pushed.Keys)
}
