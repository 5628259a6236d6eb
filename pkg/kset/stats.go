package kset

//spellchecker:words kset

import (
	"fmt"
	"unsafe"

	"github.com/dustin/go-humanize"
)

// Stats is a point-in-time snapshot of a store's table.
type Stats struct {
	Name string

	// Count is the number of occupied slots.
	Count int

	// TableCount is the number of slots participating in hashing.
	TableCount int

	// Capacity is the number of allocated slots.
	Capacity int

	// Bytes approximates the size of the backing storage.
	Bytes int64
}

// Load returns the table occupancy in percent.
func (stats Stats) Load() int {
	if stats.TableCount == 0 {
		return 0
	}
	return 100 * stats.Count / stats.TableCount
}

func (stats Stats) String() string {
	return fmt.Sprintf(
		"%s: %s of %s slots (%d%% load, %s)",
		stats.Name,
		humanize.Comma(int64(stats.Count)), humanize.Comma(int64(stats.TableCount)),
		stats.Load(), humanize.IBytes(uint64(stats.Bytes)),
	)
}

// Stats returns a snapshot of this set's table.
func (set *Set[K]) Stats() Stats {
	var zero K
	return Stats{
		Name:       set.name,
		Count:      set.activeCount,
		TableCount: set.tableCount,
		Capacity:   len(set.keys),
		Bytes:      int64(len(set.keys)) * int64(unsafe.Sizeof(zero)),
	}
}

// Stats returns a snapshot of this map's table.
func (m *Map[K, V]) Stats() Stats { return m.t.stats() }

// Stats returns a snapshot of this multimap's table.
func (m *MultiMap[K, V]) Stats() Stats { return m.t.stats() }

func (t *table[K, V]) stats() Stats {
	var zero KeyValue[K, V]
	return Stats{
		Name:       t.name,
		Count:      t.activeCount,
		TableCount: t.tableCount,
		Capacity:   len(t.slots),
		Bytes:      int64(len(t.slots)) * int64(unsafe.Sizeof(zero)),
	}
}
