package glctx

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx/native"
	"github.com/gogpu/glctx/snapshot"
)

// RenderTarget describes a region of the default framebuffer. Binding it
// sets both viewport and scissor to Viewport.
type RenderTarget struct {
	Viewport Rect
	// ClearColor is used by Clear; nil makes Clear a no-op.
	ClearColor *gputypes.Color
}

// WithClearColor returns a RenderTarget that clears to c.
func WithClearColor(viewport Rect, c gputypes.Color) RenderTarget {
	return RenderTarget{Viewport: viewport, ClearColor: &c}
}

// NativeRenderTarget is a render target owned by a Context.
type NativeRenderTarget struct {
	ctx      *Context
	handle   RenderTargetHandle
	viewport Rect
	clear    *gputypes.Color
}

func newNativeRenderTarget(ctx *Context, desc RenderTarget) (*NativeRenderTarget, error) {
	if _, _, _, _, err := desc.Viewport.int32s("viewport"); err != nil {
		return nil, err
	}
	t := &NativeRenderTarget{ctx: ctx, viewport: desc.Viewport}
	t.SetClearColor(desc.ClearColor)
	return t, nil
}

func (t *NativeRenderTarget) bind() error {
	x, y, w, h, err := t.viewport.int32s("viewport")
	if err != nil {
		return err
	}
	dev := t.ctx.dev
	dev.Viewport(x, y, w, h)
	dev.Scissor(x, y, w, h)
	return nil
}

// current makes the target the bound one through the bind-state cache.
func (t *NativeRenderTarget) current() error {
	return t.ctx.bindRenderTarget(t.handle)
}

// Viewport returns the viewport rectangle.
func (t *NativeRenderTarget) Viewport() Rect { return t.viewport }

// ClearColor returns the clear color, or nil when Clear does nothing.
func (t *NativeRenderTarget) ClearColor() *gputypes.Color {
	if t.clear == nil {
		return nil
	}
	c := *t.clear
	return &c
}

// SetClearColor replaces the clear color. Nil disables clearing.
func (t *NativeRenderTarget) SetClearColor(c *gputypes.Color) {
	if c == nil {
		t.clear = nil
		return
	}
	cc := *c
	t.clear = &cc
}

// SetViewport moves the target. When the target is bound the new viewport
// and scissor are applied at once.
func (t *NativeRenderTarget) SetViewport(r Rect) error {
	if _, _, _, _, err := r.int32s("viewport"); err != nil {
		return err
	}
	t.viewport = r
	if t.ctx.bound.target == t.handle {
		return t.bind()
	}
	return nil
}

// Clear binds the target and fills its viewport with the clear color.
func (t *NativeRenderTarget) Clear() error {
	if err := t.current(); err != nil {
		return err
	}
	if t.clear == nil {
		return nil
	}
	c := t.clear
	t.ctx.dev.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	t.ctx.dev.Clear()
	return nil
}

// ReadPixels reads rect of the framebuffer into an image with row 0 at the
// top.
func (t *NativeRenderTarget) ReadPixels(format snapshot.Format, rect Rect) (*snapshot.Image, error) {
	x, y, w, h, err := rect.int32s("read rect")
	if err != nil {
		return nil, err
	}
	pf := native.PixelRGBA
	if format.Channels() == 3 {
		pf = native.PixelRGB
	}
	pt := native.PixelUint8
	if format.IsFloat() {
		pt = native.PixelFloat32
	}
	raw := make([]byte, int(w)*int(h)*format.BytesPerPixel())
	t.ctx.dev.ReadPixels(x, y, w, h, pf, pt, raw)

	img, err := snapshot.FromRaw(int(w), int(h), format, raw, true)
	if err != nil {
		return nil, &ExternalError{Op: "read pixels", Err: err}
	}
	return img, nil
}
