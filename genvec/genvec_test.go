package genvec

import (
	"testing"
)

type testKind struct{}

func TestInsertGetRemove(t *testing.T) {
	g := New[testKind, string]()

	h0 := g.Insert("foo")
	h1 := g.Insert("bar")

	if v, ok := g.Get(h0); !ok || v != "foo" {
		t.Errorf("Get(h0) = %q, %v, want %q, true", v, ok, "foo")
	}

	if v, ok := g.Remove(h0); !ok || v != "foo" {
		t.Errorf("Remove(h0) = %q, %v, want %q, true", v, ok, "foo")
	}

	if v, ok := g.Get(h0); ok {
		t.Errorf("Get(h0) after Remove = %q, want not found", v)
	}
	if v, ok := g.Get(h1); !ok || v != "bar" {
		t.Errorf("Get(h1) = %q, %v, want %q, true", v, ok, "bar")
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestRemoveAndReinsert(t *testing.T) {
	g := WithCapacity[testKind, int](10)
	handles := make([]Handle[testKind], 10)
	for i := range handles {
		handles[i] = g.Insert(i)
	}

	removed := []Handle[testKind]{handles[0], handles[5], handles[7]}
	for _, h := range removed {
		if _, ok := g.Remove(h); !ok {
			t.Fatalf("Remove(%v) = false, want true", h)
		}
	}

	fresh := []int{100, 105, 107}
	var inserted []Handle[testKind]
	for _, v := range fresh {
		inserted = append(inserted, g.Insert(v))
	}

	for i, h := range inserted {
		if v, ok := g.Get(h); !ok || v != fresh[i] {
			t.Errorf("Get(%v) = %d, %v, want %d, true", h, v, ok, fresh[i])
		}
	}
	for _, h := range removed {
		if v, ok := g.Get(h); ok {
			t.Errorf("Get(%v) = %d on removed handle, want not found", h, v)
		}
	}
	if g.Cap() != 10 {
		t.Errorf("Cap() = %d, want 10 (slots reused)", g.Cap())
	}
	if g.Len() != 10 {
		t.Errorf("Len() = %d, want 10", g.Len())
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	g := New[testKind, string]()
	old := g.Insert("a")
	g.Remove(old)
	reused := g.Insert("b")

	if reused.Index() != old.Index() {
		t.Fatalf("Index() = %d, want reused index %d", reused.Index(), old.Index())
	}
	if reused == old {
		t.Fatal("reused handle compares equal to stale handle")
	}
	if reused.Generation() <= old.Generation() {
		t.Errorf("Generation() = %d, want > %d", reused.Generation(), old.Generation())
	}
	if _, ok := g.Get(old); ok {
		t.Error("stale handle resolves after slot reuse")
	}
}

func TestRemoveInvalidHandle(t *testing.T) {
	g := New[testKind, int]()
	h := g.Insert(1)
	g.Remove(h)

	if _, ok := g.Remove(h); ok {
		t.Error("second Remove() = true, want false")
	}
	if _, ok := g.Remove(Handle[testKind]{index: 42, generation: 1}); ok {
		t.Error("Remove() of out-of-range handle = true, want false")
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}

	// Removing twice must not push the index onto the free list twice.
	a := g.Insert(10)
	b := g.Insert(20)
	if a.Index() == b.Index() {
		t.Errorf("two live handles share index %d", a.Index())
	}
}

func TestZeroHandle(t *testing.T) {
	g := New[testKind, int]()
	g.Insert(7)

	var zero Handle[testKind]
	if !zero.IsZero() {
		t.Error("IsZero() = false for zero handle")
	}
	if _, ok := g.Get(zero); ok {
		t.Error("zero handle resolves")
	}
	if g.GetMut(zero) != nil {
		t.Error("GetMut(zero) != nil")
	}
}

func TestGetMut(t *testing.T) {
	g := New[testKind, int]()
	h := g.Insert(1)

	p := g.GetMut(h)
	if p == nil {
		t.Fatal("GetMut() = nil")
	}
	*p = 2

	if v, _ := g.Get(h); v != 2 {
		t.Errorf("Get() = %d after mutation, want 2", v)
	}
}

func TestClearInvalidatesHandles(t *testing.T) {
	g, handles := FromValues[testKind]("a", "b", "c")

	var released []string
	g.Clear(func(v string) { released = append(released, v) })

	if len(released) != 3 {
		t.Fatalf("released %d values, want 3", len(released))
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}

	// New inserts reuse the slots but never resurrect old handles.
	for range handles {
		g.Insert("new")
	}
	for _, h := range handles {
		if g.Contains(h) {
			t.Errorf("Contains(%v) = true after Clear", h)
		}
	}
}

func TestAll(t *testing.T) {
	g, handles := FromValues[testKind](1, 2, 3, 4)
	g.Remove(handles[1])

	var sum int
	var count int
	for h, v := range g.All() {
		if h == handles[1] {
			t.Errorf("All() yielded removed handle %v", h)
		}
		sum += v
		count++
	}
	if count != 3 || sum != 8 {
		t.Errorf("All() yielded %d values summing to %d, want 3 and 8", count, sum)
	}
}

func TestGenerationWrapRetiresSlot(t *testing.T) {
	g := New[testKind, int]()
	h := g.Insert(1)
	g.slots[h.index].generation = ^uint32(0)
	h = Handle[testKind]{index: h.index, generation: ^uint32(0)}

	if _, ok := g.Remove(h); !ok {
		t.Fatal("Remove() = false")
	}
	next := g.Insert(2)
	if next.Index() == h.Index() {
		t.Error("slot with exhausted generation was reused")
	}
}
