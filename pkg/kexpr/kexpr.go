// Package kexpr composes kset containers into derived sets.
//
// An expression node implements [kset.Interface] and wraps other
// implementations of it: boolean nodes ([Union], [Intersection],
// [Difference]) combine arbitrary operands, closure nodes ([DirectOpen],
// [DirectClosedShallow], [DirectClosedDeep], [InverseOpen],
// [InverseClosedShallow], [InverseClosedDeep]) traverse a [kset.Relation]
// starting from an operand set.
//
// Nodes are stateless non-owning views: they allocate nothing, produce no
// errors of their own, and observe the current state of the underlying
// containers at every call. A node must not outlive its operands. Mutating an
// operand between constructing a node and enumerating it is fine.
//
// Enumerating a node may push the same key more than once; enumerate into a
// [kset.SetCollector] to materialize the semantic set. [Cached] packages this
// pattern together with change-count invalidation.
package kexpr

//spellchecker:words kexpr kset
