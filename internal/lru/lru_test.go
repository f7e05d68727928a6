package lru

import (
	"slices"
	"testing"
)

func TestCacheGetAdd(t *testing.T) {
	c := New[string, int](2)
	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache reported a hit")
	}
	c.Add("a", 1)
	c.Add("b", 2)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", v, ok)
	}

	// b is now the oldest.
	if !c.Add("c", 3) {
		t.Error("Add past capacity did not evict")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction")
	}
	if got, want := c.Keys(), []string{"c", "a"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestCacheAddExisting(t *testing.T) {
	c := New[int, string](2)
	c.Add(1, "one")
	c.Add(2, "two")
	if c.Add(1, "uno") {
		t.Error("replacing a key evicted an entry")
	}
	if v, _ := c.Get(1); v != "uno" {
		t.Errorf("Get(1) = %q, want uno", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if got, want := c.Keys(), []int{1, 2}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestCacheRemoveClear(t *testing.T) {
	c := New[int, int](3)
	for i := range 3 {
		c.Add(i, i*i)
	}
	if !c.Remove(1) {
		t.Error("Remove(1) = false, want true")
	}
	if c.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}
	if got, want := c.Keys(), []int{2, 0}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	c.Clear()
	if c.Len() != 0 || len(c.Keys()) != 0 {
		t.Errorf("after Clear Len() = %d, Keys() = %v", c.Len(), c.Keys())
	}
	c.Add(7, 49)
	if v, ok := c.Get(7); !ok || v != 49 {
		t.Errorf("Get(7) after Clear = %d, %v", v, ok)
	}
}

func TestCacheDisabled(t *testing.T) {
	c := New[int, int](0)
	c.Add(1, 1)
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}
