package kexpr

import "github.com/FAU-CDI/mojave/pkg/kset"

// Cached memoizes the materialization of an expression.
//
// It owns a [kset.Set] holding the materialized result and rebuilds it only
// when the expression's change count has moved since the last call to
// [Cached.Get].
type Cached[K kset.Key] struct {
	expr   kset.Interface[K]
	result *kset.Set[K]

	count int
	valid bool
}

// NewCached creates a cache for expr.
// The result set is created with the given name, config and allocator.
func NewCached[K kset.Key](name string, expr kset.Interface[K], config *kset.Config, alloc kset.Allocator[K]) (*Cached[K], error) {
	result, err := kset.NewSet[K](name, config, alloc)
	if err != nil {
		return nil, err
	}
	return &Cached[K]{expr: expr, result: result}, nil
}

// Get returns the materialized expression.
//
// The returned set is owned by the cache and valid until the next call to
// Get or [Cached.Destroy]; callers must not mutate it.
func (c *Cached[K]) Get() *kset.Set[K] {
	count := c.expr.ChangeCount()
	if !c.valid || count != c.count {
		c.result.Reset()
		c.expr.Enumerate(kset.NewSetCollector(c.result), nil)
		c.count = count
		c.valid = true
	}
	return c.result
}

// Destroy releases the materialized result.
// The cache may not be used afterwards.
func (c *Cached[K]) Destroy() {
	c.result.Destroy()
	c.valid = false
}
