package kset_test

//spellchecker:words kset

import (
	"fmt"

	"github.com/FAU-CDI/mojave/pkg/kset"
)

// steady is a config that never resizes on its own, keeping slot positions
// (and therefore iteration order) predictable for the examples.
func steady() *kset.Config {
	return &kset.Config{
		AllocCountMin:          16,
		TableCountMin:          16,
		GrowThresholdPercent:   90,
		ShrinkThresholdPercent: 10,
	}
}

func ExampleSet() {
	set, err := kset.NewSet[id]("example", steady(), nil)
	if err != nil {
		panic(err)
	}
	defer set.Destroy()

	fmt.Println(set.Insert(1))
	fmt.Println(set.Insert(2))
	fmt.Println(set.Insert(2))

	fmt.Println(set.Contains(2), set.Contains(3))
	fmt.Println(set.Count())

	fmt.Println(set.Remove(1))
	fmt.Println(set.Remove(1))

	// Output: <nil>
	// <nil>
	// <nil>
	// true false
	// 2
	// <nil>
	// not found
}

func ExampleSetCollector() {
	pets, err := kset.NewMultiMap[id, string]("pets", "", steady(), nil)
	if err != nil {
		panic(err)
	}
	defer pets.Destroy()

	_ = pets.Insert(1, "cat")
	_ = pets.Insert(1, "dog")
	_ = pets.Insert(2, "axolotl")

	// materialize the distinct keys of the multimap into a set
	owners, err := kset.NewSet[id]("owners", steady(), nil)
	if err != nil {
		panic(err)
	}
	defer owners.Destroy()

	pets.Enumerate(kset.NewSetCollector(owners), nil)

	_ = owners.Iterate(func(owner id) error {
		fmt.Println(owner)
		return nil
	})

	// Output: 1
	// 2
}
