// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glctx

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/glctx/genvec"
	"github.com/gogpu/glctx/native"
)

// Platform is the window system side of a Context.
//
// A Platform that also implements gpucontext.WindowProvider reports the
// window size used by Viewport and to size the device at creation.
type Platform interface {
	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// ProcAddress returns the address of a native entry point, or nil.
	ProcAddress(name string) unsafe.Pointer
}

// Context owns a loaded device and every resource created on it.
//
// A Context and its resources must be used from the goroutine that created
// it; with the opengl backend that goroutine must also be locked to its OS
// thread.
type Context struct {
	platform Platform
	dev      native.Device

	buffers *BufferPool
	layouts *layoutPool
	stages  *stagePool
	shaders *shaderPool
	targets *renderTargetPool

	bound    bindState
	diag     *diagnostics
	viewport Rect
}

// New loads a device for p and returns a Context using it.
//
// The device is chosen by WithDevice, then WithBackend, then the best
// registered backend. Any failure to obtain, load or accept the device is
// reported as ErrInvalidContext.
func New(p Platform, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	dev, err := selectDevice(o)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContext, err)
	}
	propagateLogger(dev)

	if err := dev.Load(native.ProcAddressFunc(p.ProcAddress)); err != nil {
		dev.Release()
		return nil, fmt.Errorf("%w: %w", ErrInvalidContext, &ExternalError{Op: "load " + dev.Name() + " device", Err: err})
	}
	major, minor := dev.Version()
	if major < o.minMajor || (major == o.minMajor && minor < o.minMinor) {
		dev.Release()
		return nil, &VersionError{Major: major, Minor: minor, WantMajor: o.minMajor, WantMinor: o.minMinor}
	}

	if wp, ok := p.(gpucontext.WindowProvider); ok {
		if r, ok := dev.(native.Resizer); ok {
			w, h := wp.Size()
			r.Resize(w, h)
		}
	}

	c := &Context{
		platform: p,
		dev:      dev,
		buffers:  genvec.WithCapacity[bufferKind, *NativeBuffer](o.poolCapacity),
		layouts:  genvec.WithCapacity[layoutKind, *NativeLayout](o.poolCapacity),
		stages:   genvec.WithCapacity[stageKind, *NativeStage](o.poolCapacity),
		shaders:  genvec.WithCapacity[shaderKind, *NativeShader](o.poolCapacity),
		targets:  genvec.WithCapacity[renderTargetKind, *NativeRenderTarget](o.poolCapacity),
		diag:     newDiagnostics(o.diagCapacity),
	}
	x, y, w, h := dev.CurrentViewport()
	c.viewport = NewRect(uint32(max(x, 0)), uint32(max(y, 0)), uint32(max(w, 0)), uint32(max(h, 0)))
	dev.SetDebugCallback(c.diag.receive)

	Logger().Info("glctx: context created",
		"backend", dev.Name(),
		"version", fmt.Sprintf("%d.%d", major, minor),
		"viewport", c.Viewport().String(),
	)
	return c, nil
}

func selectDevice(o options) (native.Device, error) {
	switch {
	case o.device != nil:
		return o.device, nil
	case o.backend != "":
		return native.Open(o.backend)
	default:
		return native.Best()
	}
}

// Device returns the underlying device.
func (c *Context) Device() native.Device { return c.dev }

// Viewport returns the window size when the platform reports one, otherwise
// the viewport the device started with.
func (c *Context) Viewport() Rect {
	if wp, ok := c.platform.(gpucontext.WindowProvider); ok {
		w, h := wp.Size()
		return NewRect(0, 0, uint32(max(w, 0)), uint32(max(h, 0)))
	}
	return c.viewport
}

// Update presents the frame.
func (c *Context) Update() {
	c.platform.SwapBuffers()
}

// PollErrors returns the driver messages received since the last call, or
// nil when there are none.
func (c *Context) PollErrors() []string {
	return c.diag.drain()
}

// Reset releases every resource, forgets what is bound and discards pending
// driver messages. Handles issued before Reset never resolve again.
func (c *Context) Reset() {
	c.buffers.Clear((*NativeBuffer).release)
	c.layouts.Clear((*NativeLayout).release)
	c.stages.Clear((*NativeStage).release)
	c.shaders.Clear((*NativeShader).release)
	c.targets.Clear(func(*NativeRenderTarget) {})
	c.bound = bindState{}
	c.diag.reset()
	Logger().Debug("glctx: context reset")
}

// Close releases every resource and the device. The Context must not be
// used afterwards.
func (c *Context) Close() {
	c.Reset()
	c.dev.SetDebugCallback(nil)
	c.dev.Release()
	Logger().Debug("glctx: context closed")
}

// CreateBuffer uploads desc and returns a handle to the new buffer.
func (c *Context) CreateBuffer(desc Buffer) (BufferHandle, error) {
	b, err := newNativeBuffer(c.dev, desc)
	if err != nil {
		return BufferHandle{}, err
	}
	h := c.buffers.Insert(b)
	Logger().Debug("glctx: buffer created", "handle", h.String(), "bytes", b.length)
	return h, nil
}

// CreateLayout creates a vertex array from desc. The new layout is left
// bound.
func (c *Context) CreateLayout(desc VertexLayout) (LayoutHandle, error) {
	l, err := newNativeLayout(c, desc)
	if err != nil {
		return LayoutHandle{}, err
	}
	h := c.layouts.Insert(l)
	l.handle = h
	c.bound.layout = h
	Logger().Debug("glctx: layout created", "handle", h.String(), "sets", len(l.sets))
	return h, nil
}

// CreateStage compiles a shader stage.
func (c *Context) CreateStage(desc Stage) (StageHandle, error) {
	s, err := compileStage(c.dev, desc)
	if err != nil {
		return StageHandle{}, err
	}
	h := c.stages.Insert(s)
	Logger().Debug("glctx: stage created", "handle", h.String(), "kind", s.kind.String())
	return h, nil
}

// CreateShader links a program from pooled stages and inline sources.
func (c *Context) CreateShader(desc Shader) (ShaderHandle, error) {
	s, err := linkShader(c.dev, c.stages, desc)
	if err != nil {
		return ShaderHandle{}, err
	}
	h := c.shaders.Insert(s)
	Logger().Debug("glctx: shader created", "handle", h.String())
	return h, nil
}

// CreateRenderTarget registers a region of the default framebuffer.
func (c *Context) CreateRenderTarget(desc RenderTarget) (RenderTargetHandle, error) {
	t, err := newNativeRenderTarget(c, desc)
	if err != nil {
		return RenderTargetHandle{}, err
	}
	h := c.targets.Insert(t)
	t.handle = h
	Logger().Debug("glctx: render target created", "handle", h.String(), "viewport", t.viewport.String())
	return h, nil
}

// Buffer returns the buffer for h without touching bind state.
func (c *Context) Buffer(h BufferHandle) (*NativeBuffer, bool) { return c.buffers.Get(h) }

// Layout returns the layout for h without touching bind state.
func (c *Context) Layout(h LayoutHandle) (*NativeLayout, bool) { return c.layouts.Get(h) }

// Stage returns the stage for h.
func (c *Context) Stage(h StageHandle) (*NativeStage, bool) { return c.stages.Get(h) }

// Shader returns the shader for h without touching bind state.
func (c *Context) Shader(h ShaderHandle) (*NativeShader, bool) { return c.shaders.Get(h) }

// RenderTarget returns the render target for h without touching bind state.
func (c *Context) RenderTarget(h RenderTargetHandle) (*NativeRenderTarget, bool) {
	return c.targets.Get(h)
}

// BufferMut returns the buffer for h for modification. Buffers have no bind
// slot, so nothing is bound.
func (c *Context) BufferMut(h BufferHandle) (*NativeBuffer, error) {
	b, ok := c.buffers.Get(h)
	if !ok {
		return nil, notFound("buffer", h)
	}
	return b, nil
}

// LayoutMut binds the layout for h and returns it.
func (c *Context) LayoutMut(h LayoutHandle) (*NativeLayout, error) {
	if err := c.bindLayout(h); err != nil {
		return nil, err
	}
	l, _ := c.layouts.Get(h)
	return l, nil
}

// LayoutMutAndBuffers binds the layout for h and returns it together with
// the buffer pool, so attribute sets can be pointed at other buffers.
func (c *Context) LayoutMutAndBuffers(h LayoutHandle) (*NativeLayout, *BufferPool, error) {
	l, err := c.LayoutMut(h)
	if err != nil {
		return nil, nil, err
	}
	return l, c.buffers, nil
}

// BindLayoutBuffer points attribute set index of layout at buffer.
func (c *Context) BindLayoutBuffer(layout LayoutHandle, index int, buffer BufferHandle, stride Stride, offset int) error {
	l, buffers, err := c.LayoutMutAndBuffers(layout)
	if err != nil {
		return err
	}
	return l.SetBuffer(buffers, index, buffer, stride, offset)
}

// ShaderMut binds the shader for h and returns it.
func (c *Context) ShaderMut(h ShaderHandle) (*NativeShader, error) {
	if err := c.bindShader(h); err != nil {
		return nil, err
	}
	s, _ := c.shaders.Get(h)
	return s, nil
}

// RenderTargetMut binds the render target for h and returns it.
func (c *Context) RenderTargetMut(h RenderTargetHandle) (*NativeRenderTarget, error) {
	if err := c.bindRenderTarget(h); err != nil {
		return nil, err
	}
	t, _ := c.targets.Get(h)
	return t, nil
}

// RemoveBuffer releases the buffer for h. It reports whether h resolved.
func (c *Context) RemoveBuffer(h BufferHandle) bool {
	b, ok := c.buffers.Remove(h)
	if ok {
		b.release()
	}
	return ok
}

// RemoveLayout releases the layout for h. It reports whether h resolved.
func (c *Context) RemoveLayout(h LayoutHandle) bool {
	l, ok := c.layouts.Remove(h)
	if !ok {
		return false
	}
	l.release()
	if c.bound.layout == h {
		c.bound.layout = LayoutHandle{}
	}
	return true
}

// RemoveStage releases the stage for h. Shaders already linked from it are
// unaffected.
func (c *Context) RemoveStage(h StageHandle) bool {
	s, ok := c.stages.Remove(h)
	if ok {
		s.release()
	}
	return ok
}

// RemoveShader releases the shader for h. It reports whether h resolved.
func (c *Context) RemoveShader(h ShaderHandle) bool {
	s, ok := c.shaders.Remove(h)
	if !ok {
		return false
	}
	s.release()
	if c.bound.shader == h {
		c.bound.shader = ShaderHandle{}
	}
	return true
}

// RemoveRenderTarget forgets the render target for h. It reports whether h
// resolved.
func (c *Context) RemoveRenderTarget(h RenderTargetHandle) bool {
	if _, ok := c.targets.Remove(h); !ok {
		return false
	}
	if c.bound.target == h {
		c.bound.target = RenderTargetHandle{}
	}
	return true
}
