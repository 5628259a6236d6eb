package kset

import (
	"errors"
	"testing"
)

func TestMapInsertFind(t *testing.T) {
	t.Parallel()

	m, err := NewMap[hkey, string]("labels", "", nil, nil)
	if err != nil {
		t.Fatalf("NewMap returned error %s", err)
	}
	defer m.Destroy()

	if err := m.Insert(1, "one"); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}
	if err := m.Insert(2, "two"); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}

	if got := m.Find(1); got != "one" {
		t.Errorf("Find(1) = %q, want %q", got, "one")
	}
	if got := m.Find(3); got != "" {
		t.Errorf("Find(3) = %q, want the not-found value", got)
	}
	if _, ok := m.Get(3); ok {
		t.Error("Get(3) reported a present key")
	}
	if !m.Contains(2) {
		t.Error("Contains(2) = false, want true")
	}
}

func TestMapOverwrite(t *testing.T) {
	t.Parallel()

	m, err := NewMap[hkey, string]("labels", "", nil, nil)
	if err != nil {
		t.Fatalf("NewMap returned error %s", err)
	}
	defer m.Destroy()

	if err := m.Insert(1, "one"); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}
	count, changes := m.Count(), m.ChangeCount()

	if err := m.Insert(1, "eins"); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}
	if got := m.Find(1); got != "eins" {
		t.Errorf("Find(1) = %q after overwrite, want %q", got, "eins")
	}
	if m.Count() != count {
		t.Errorf("Count() = %d after overwrite, want %d", m.Count(), count)
	}
	if m.ChangeCount() <= changes {
		t.Error("overwriting a value did not increase the change count")
	}

	// rewriting the same value is not a change
	changes = m.ChangeCount()
	if err := m.Insert(1, "eins"); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}
	if m.ChangeCount() != changes {
		t.Error("rewriting an identical value increased the change count")
	}
}

func TestMapRemove(t *testing.T) {
	t.Parallel()

	m, err := NewMap[hkey, string]("labels", "missing", nil, nil)
	if err != nil {
		t.Fatalf("NewMap returned error %s", err)
	}
	defer m.Destroy()

	if err := m.Insert(1, "one"); err != nil {
		t.Fatalf("Insert returned error %s", err)
	}

	value, err := m.Remove(1)
	if err != nil {
		t.Fatalf("Remove returned error %s", err)
	}
	if value != "one" {
		t.Errorf("Remove(1) = %q, want %q", value, "one")
	}

	value, err = m.Remove(1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove returned %v, want ErrNotFound", err)
	}
	if value != "missing" {
		t.Errorf("second Remove returned value %q, want the not-found value", value)
	}
}

func TestMapCollisions(t *testing.T) {
	t.Parallel()

	m, err := NewMap[hkey, int]("colliding", -1, collidingConfig(), nil)
	if err != nil {
		t.Fatalf("NewMap returned error %s", err)
	}
	defer m.Destroy()

	// all keys share the home slot 1 mod 4
	for i := 0; i < 8; i++ {
		if err := m.Insert(hkey(1+4*i), i); err != nil {
			t.Fatalf("Insert returned error %s", err)
		}
	}
	for i := 0; i < 8; i++ {
		if got := m.Find(hkey(1 + 4*i)); got != i {
			t.Errorf("Find(%d) = %d, want %d", 1+4*i, got, i)
		}
	}

	// remove from the middle of the run and verify the rest stays reachable
	if _, err := m.Remove(hkey(1 + 4*3)); err != nil {
		t.Fatalf("Remove returned error %s", err)
	}
	for i := 0; i < 8; i++ {
		if i == 3 {
			continue
		}
		if got := m.Find(hkey(1 + 4*i)); got != i {
			t.Errorf("Find(%d) = %d after removal, want %d", 1+4*i, got, i)
		}
	}
}

func TestMapIterate(t *testing.T) {
	t.Parallel()

	m, err := NewMap[hkey, int]("iterated", -1, nil, nil)
	if err != nil {
		t.Fatalf("NewMap returned error %s", err)
	}
	defer m.Destroy()

	want := map[hkey]int{1: 10, 2: 20, 3: 30}
	for key, value := range want {
		if err := m.Insert(key, value); err != nil {
			t.Fatalf("Insert returned error %s", err)
		}
	}

	got := make(map[hkey]int)
	if err := m.Iterate(func(key hkey, value int) error {
		got[key] = value
		return nil
	}); err != nil {
		t.Fatalf("Iterate returned error %s", err)
	}

	if len(got) != len(want) {
		t.Fatalf("Iterate visited %d entries, want %d", len(got), len(want))
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("Iterate visited %d=%d, want %d", key, got[key], value)
		}
	}

	keys := 0
	for it := m.Keys(); it.Next(); {
		if _, ok := want[it.Datum()]; !ok {
			t.Errorf("Keys() produced unexpected key %d", it.Datum())
		}
		keys++
	}
	if keys != len(want) {
		t.Errorf("Keys() produced %d keys, want %d", keys, len(want))
	}
}
