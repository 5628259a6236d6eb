// Command mojave builds a sample key forest and runs set expressions over it.
//
// It is a demonstration and micro-benchmark of the mojave containers: it
// fills a relation with an n-key forest, derives member sets, evaluates
// boolean and closure expressions into set collectors and reports timing,
// counts and heap use along the way.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/FAU-CDI/mojave/internal/stats"
	"github.com/FAU-CDI/mojave/pkg/kexpr"
	"github.com/FAU-CDI/mojave/pkg/kset"
	"github.com/pkg/profile"
	"golang.org/x/exp/slices"
)

//spellchecker:words mojave kset kexpr

// node is a key in the sample forest.
// The zero node is the null key.
type node uint32

func (n node) Hash() uint32 {
	// Knuth multiplicative hashing; good enough for sequential ids.
	return uint32(n) * 2654435761
}

func main() {
	st := stats.NewStats(os.Stderr)

	if debugProfile != "" {
		defer profile.Start(profile.ProfilePath(debugProfile)).Stop()
	}

	if nodeCount < int(branching)+1 {
		st.Log("Usage: mojave [-help] [...flags]")
		st.LogFatal("parse arguments", errTooFewNodes)
	}

	forest, _ := kset.NewRelation[node]("forest", nil, nil)
	evens, _ := kset.NewSet[node]("evens", nil, nil)
	odds, _ := kset.NewSet[node]("odds", nil, nil)
	leaves, _ := kset.NewSet[node]("leaves", nil, nil)

	err := st.DoStage(stats.StageBuild, func() error {
		for i := 1; i <= nodeCount; i++ {
			child := node(i)

			if parent := child / branching; parent >= 1 && parent != child {
				if err := forest.Insert(child, parent); err != nil {
					return fmt.Errorf("failed to insert edge: %w", err)
				}
			}

			members := evens
			if i%2 == 1 {
				members = odds
			}
			if err := members.Insert(child); err != nil {
				return fmt.Errorf("failed to insert member: %w", err)
			}
		}

		for i := 1; i <= nodeCount; i++ {
			if !forest.ContainsParent(node(i)) {
				if err := leaves.Insert(node(i)); err != nil {
					return fmt.Errorf("failed to insert leaf: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		st.LogFatal("build forest", err)
	}

	err = st.DoStage(stats.StageQuery, func() error {
		report := func(name string, expr kset.Interface[node]) error {
			result, err := kset.NewSet[node](name, nil, nil)
			if err != nil {
				return fmt.Errorf("failed to create result set: %w", err)
			}
			defer result.Destroy()

			expr.Enumerate(kset.NewSetCollector(result), nil)

			sample := make([]node, 0, sampleSize)
			_ = result.Iterate(func(key node) error {
				if len(sample) < cap(sample) {
					sample = append(sample, key)
				}
				return nil
			})
			slices.Sort(sample)

			st.Log("query", "name", name, "count", result.Count(), "cost", expr.EnumerationCost(), "changes", expr.ChangeCount(), "sample", fmt.Sprint(sample))
			return nil
		}

		both := kexpr.NewIntersection[node](evens, odds)
		all := kexpr.NewUnion[node](evens, odds)
		inner := kexpr.NewDifference[node](all, leaves)

		if err := report("evens-and-odds", both); err != nil {
			return err
		}
		if err := report("all", all); err != nil {
			return err
		}
		if err := report("inner", inner); err != nil {
			return err
		}

		if err := report("roots", kexpr.NewDirectClosedDeep[node](forest, leaves)); err != nil {
			return err
		}
		if err := report("parents-of-odds", kexpr.NewInverseOpen[node](forest, odds)); err != nil {
			return err
		}
		return report("reachable", kexpr.NewInverseClosedDeep[node](forest, kexpr.NewDifference[node](all, kexpr.NewDirectOpen[node](forest, all))))
	})
	if err != nil {
		st.LogFatal("run queries", err)
	}

	_ = st.DoStage(stats.StageReport, func() error {
		st.Log("store", "relations", forest.Count())
		st.Log("store", "stats", evens.Stats().String())
		st.Log("store", "stats", odds.Stats().String())
		st.Log("store", "stats", leaves.Stats().String())
		return nil
	})

	st.Log("done", "took", st.Diff())
}

var errTooFewNodes = errors.New("need at least branching+1 nodes")

var nodeCount = 100_000
var branching node = 4
var sampleSize = 10
var debugProfile = ""

func init() {
	flag.IntVar(&nodeCount, "nodes", nodeCount, "Number of nodes in the sample forest")
	flag.IntVar(&sampleSize, "sample", sampleSize, "Number of result keys to print per query")

	b := int(branching)
	flag.IntVar(&b, "branching", b, "Children per parent in the sample forest")

	flag.StringVar(&debugProfile, "debug-profile", debugProfile, "write out a debugging profile to the given path")

	flag.Parse()
	branching = node(b)
}
