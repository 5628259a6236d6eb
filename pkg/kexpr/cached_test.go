package kexpr_test

import (
	"testing"

	"github.com/FAU-CDI/mojave/pkg/kexpr"
	"github.com/stretchr/testify/require"
)

func TestCached(t *testing.T) {
	t.Parallel()

	a := newSet(t, "a", 1, 2)
	b := newSet(t, "b", 2, 3)

	cached, err := kexpr.NewCached[key]("cache", kexpr.NewUnion[key](a, b), nil, nil)
	require.NoError(t, err)
	defer cached.Destroy()

	result := cached.Get()
	require.Equal(t, 3, result.Count())
	require.True(t, result.Contains(1))

	// without mutation the materialization is reused
	before := result.ChangeCount()
	require.Same(t, result, cached.Get())
	require.Equal(t, before, cached.Get().ChangeCount())

	// a mutation of an operand invalidates the cache
	require.NoError(t, a.Insert(7))
	result = cached.Get()
	require.Equal(t, 4, result.Count())
	require.True(t, result.Contains(7))

	// removals invalidate too
	require.NoError(t, b.Remove(3))
	require.Equal(t, 3, cached.Get().Count())
	require.False(t, cached.Get().Contains(3))
}
