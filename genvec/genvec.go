// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package genvec provides a generational arena: a slot vector that hands out
// typed handles and detects stale ones without tracking their holders.
//
// A Handle records the slot index and the generation of the slot at the time
// of insertion. Removing a value bumps the slot generation, so every handle
// issued for that value stops resolving, even after the slot is reused.
//
//	type meshKind struct{}
//
//	meshes := genvec.New[meshKind, *Mesh]()
//	h := meshes.Insert(m)
//	if m, ok := meshes.Get(h); ok {
//	    // use m
//	}
//	meshes.Remove(h) // h never resolves again
package genvec

import (
	"fmt"
	"iter"
)

// Handle references a value stored in a GenVec[K, V].
//
// K is a phantom kind tag: handles of different kinds are distinct types even
// though they carry the same fields. Handles are comparable and cheap to copy.
// The zero Handle never resolves.
type Handle[K any] struct {
	index      uint32
	generation uint32
}

// Index returns the slot index of the handle.
func (h Handle[K]) Index() uint32 { return h.index }

// Generation returns the slot generation the handle was issued for.
func (h Handle[K]) Generation() uint32 { return h.generation }

// IsZero reports whether h is the zero handle.
func (h Handle[K]) IsZero() bool { return h.generation == 0 }

func (h Handle[K]) String() string {
	return fmt.Sprintf("Handle(%d:%d)", h.index, h.generation)
}

type slot[V any] struct {
	generation uint32
	occupied   bool
	value      V
}

// GenVec is a generational slot vector. The zero value is ready to use.
//
// GenVec is not safe for concurrent use.
type GenVec[K, V any] struct {
	slots []slot[V]
	free  []uint32
	live  int
}

// New returns an empty GenVec.
func New[K, V any]() *GenVec[K, V] {
	return &GenVec[K, V]{}
}

// WithCapacity returns an empty GenVec with storage reserved for n values.
func WithCapacity[K, V any](n int) *GenVec[K, V] {
	if n < 0 {
		n = 0
	}
	return &GenVec[K, V]{
		slots: make([]slot[V], 0, n),
		free:  make([]uint32, 0, n),
	}
}

// FromValues returns a GenVec holding values, together with their handles in
// the same order.
func FromValues[K, V any](values ...V) (*GenVec[K, V], []Handle[K]) {
	g := WithCapacity[K, V](len(values))
	handles := make([]Handle[K], len(values))
	for i, v := range values {
		handles[i] = g.Insert(v)
	}
	return g, handles
}

// Insert stores v and returns its handle. A freed slot is reused before the
// storage grows.
func (g *GenVec[K, V]) Insert(v V) Handle[K] {
	g.live++
	if n := len(g.free); n > 0 {
		idx := g.free[n-1]
		g.free = g.free[:n-1]
		s := &g.slots[idx]
		s.occupied = true
		s.value = v
		return Handle[K]{index: idx, generation: s.generation}
	}
	idx := uint32(len(g.slots))
	g.slots = append(g.slots, slot[V]{generation: 1, occupied: true, value: v})
	return Handle[K]{index: idx, generation: 1}
}

func (g *GenVec[K, V]) slot(h Handle[K]) *slot[V] {
	if int(h.index) >= len(g.slots) {
		return nil
	}
	s := &g.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil
	}
	return s
}

// Get returns the value for h. The boolean is false when h is stale, was
// issued by another GenVec of the same kind, or is the zero handle.
func (g *GenVec[K, V]) Get(h Handle[K]) (V, bool) {
	if s := g.slot(h); s != nil {
		return s.value, true
	}
	var zero V
	return zero, false
}

// GetMut returns a pointer to the stored value, or nil when h does not
// resolve. The pointer is invalidated by the next Insert.
func (g *GenVec[K, V]) GetMut(h Handle[K]) *V {
	if s := g.slot(h); s != nil {
		return &s.value
	}
	return nil
}

// Contains reports whether h resolves.
func (g *GenVec[K, V]) Contains(h Handle[K]) bool {
	return g.slot(h) != nil
}

// Remove takes the value for h out of the vector. Invalid handles are ignored
// and report false.
func (g *GenVec[K, V]) Remove(h Handle[K]) (V, bool) {
	var zero V
	s := g.slot(h)
	if s == nil {
		return zero, false
	}
	v := s.value
	g.vacate(h.index)
	return v, true
}

func (g *GenVec[K, V]) vacate(idx uint32) {
	var zero V
	s := &g.slots[idx]
	s.value = zero
	s.occupied = false
	s.generation++
	if s.generation == 0 {
		// Wrapped: retire the slot instead of recycling generation 0.
		s.generation = ^uint32(0)
		g.live--
		return
	}
	g.free = append(g.free, idx)
	g.live--
}

// Clear removes every live value, calling release (if non-nil) on each in
// slot order. Storage is kept and every previously issued handle is
// invalidated.
func (g *GenVec[K, V]) Clear(release func(V)) {
	for i := range g.slots {
		if !g.slots[i].occupied {
			continue
		}
		if release != nil {
			release(g.slots[i].value)
		}
		g.vacate(uint32(i))
	}
}

// Len returns the number of live values.
func (g *GenVec[K, V]) Len() int { return g.live }

// Cap returns the number of slots the vector can hold without growing.
func (g *GenVec[K, V]) Cap() int { return cap(g.slots) }

// All iterates over live values in slot order.
func (g *GenVec[K, V]) All() iter.Seq2[Handle[K], V] {
	return func(yield func(Handle[K], V) bool) {
		for i := range g.slots {
			s := &g.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Handle[K]{index: uint32(i), generation: s.generation}, s.value) {
				return
			}
		}
	}
}
