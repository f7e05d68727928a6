// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides a windowless platform for glctx.
//
// A Surface reports a fixed size through gpucontext.WindowProvider and has
// no native entry points, so it pairs with the soft backend:
//
//	ctx, err := glctx.New(headless.New(800, 600), glctx.WithBackend(native.BackendSoft))
package headless

import (
	"unsafe"

	"github.com/gogpu/gpucontext"
)

// Surface is an offscreen platform of a given size.
type Surface struct {
	gpucontext.NullWindowProvider

	frames  int
	redraws int
}

var _ gpucontext.WindowProvider = (*Surface)(nil)

// New returns a surface of width x height logical points at scale 1.
func New(width, height int) *Surface {
	return &Surface{NullWindowProvider: gpucontext.NullWindowProvider{W: width, H: height}}
}

// WithScale returns a surface with the given DPI scale factor.
func WithScale(width, height int, scale float64) *Surface {
	return &Surface{NullWindowProvider: gpucontext.NullWindowProvider{W: width, H: height, SF: scale}}
}

// SwapBuffers counts a presented frame.
func (s *Surface) SwapBuffers() { s.frames++ }

// ProcAddress always returns nil; there is no native library behind a
// headless surface.
func (s *Surface) ProcAddress(string) unsafe.Pointer { return nil }

// RequestRedraw counts the request.
func (s *Surface) RequestRedraw() { s.redraws++ }

// Frames returns how many times SwapBuffers was called.
func (s *Surface) Frames() int { return s.frames }

// Redraws returns how many redraws were requested.
func (s *Surface) Redraws() int { return s.redraws }
