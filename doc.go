// Package mojave provides key-addressed containers and a lazy set algebra on top of them.
//
// The containers live in [github.com/FAU-CDI/mojave/pkg/kset]: an open-addressed
// [kset.Set], [kset.Map] and [kset.MultiMap] over a common probing discipline, and a
// [kset.Relation] that keeps a child-to-parent map and a parent-to-child multimap
// consistent.
//
// [github.com/FAU-CDI/mojave/pkg/kexpr] composes these containers into derived sets:
// boolean nodes (union, intersection, difference) and relation-closure nodes that
// traverse a relation one hop or to fixpoint. Expression nodes are cheap views over
// live containers; they allocate nothing and observe the containers' current state at
// enumeration time.
package mojave

//spellchecker:words mojave kset kexpr multimap
