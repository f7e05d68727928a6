// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package desktop provides a GLFW window with an OpenGL 4.3 core context
// as a glctx platform.
//
// GLFW and OpenGL require every call to come from the main OS thread.
// Programs call runtime.LockOSThread in an init function of package main and
// create and use the window from main.
package desktop

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpucontext"
)

// ErrInit is returned when GLFW cannot be initialized.
var ErrInit = errors.New("desktop: glfw init failed")

// Option configures a Window.
type Option func(*options)

type options struct {
	title     string
	width     int
	height    int
	resizable bool
	vsync     bool
	debug     bool
}

func defaultOptions() options {
	return options{
		title:  "glctx",
		width:  800,
		height: 600,
		vsync:  true,
		debug:  true,
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithSize sets the initial client area size in screen coordinates.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithResizable lets the user resize the window.
func WithResizable(resizable bool) Option {
	return func(o *options) {
		o.resizable = resizable
	}
}

// WithVSync enables or disables waiting for vertical blank on swap.
func WithVSync(enabled bool) Option {
	return func(o *options) {
		o.vsync = enabled
	}
}

// WithDebugContext requests a debug context, which is needed for driver
// messages to reach glctx diagnostics. On by default.
func WithDebugContext(enabled bool) Option {
	return func(o *options) {
		o.debug = enabled
	}
}

// Window is a GLFW window whose OpenGL context is current on the calling
// thread.
type Window struct {
	win    *glfw.Window
	redraw bool
}

var _ gpucontext.WindowProvider = (*Window)(nil)

// NewWindow initializes GLFW, opens a window and makes its context current.
func NewWindow(opts ...Option) (*Window, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolHint(o.debug))
	glfw.WindowHint(glfw.Resizable, boolHint(o.resizable))

	win, err := glfw.CreateWindow(o.width, o.height, o.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("desktop: create window: %w", err)
	}
	win.MakeContextCurrent()
	if o.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	return &Window{win: win}, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// ProcAddress resolves an OpenGL entry point for the current context.
func (w *Window) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() (width, height int) {
	return w.win.GetFramebufferSize()
}

// ScaleFactor returns the horizontal content scale of the window.
func (w *Window) ScaleFactor() float64 {
	x, _ := w.win.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// RequestRedraw wakes up a blocked WaitEvents.
func (w *Window) RequestRedraw() {
	w.redraw = true
	glfw.PostEmptyEvent()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// Close asks the event loop to stop.
func (w *Window) Close() { w.win.SetShouldClose(true) }

// PollEvents processes pending window events. It reports whether a redraw
// was requested since the previous call.
func (w *Window) PollEvents() bool {
	glfw.PollEvents()
	r := w.redraw
	w.redraw = false
	return r
}

// Destroy closes the window and terminates GLFW.
func (w *Window) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
