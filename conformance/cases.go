// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package conformance

import (
	"bytes"
	"errors"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx"
	"github.com/gogpu/glctx/native"
	"github.com/gogpu/glctx/snapshot"
)

// Cases returns the built-in cases in run order.
func Cases() []Case {
	return []Case{
		{Name: "context::viewport_is_window_size", Run: viewportIsWindowSize},
		{Name: "render_target::clear_color", Run: clearColor},
		{Name: "render_target::screen_viewport", Run: screenViewport},
		{Name: "buffer::round_trip", Run: bufferRoundTrip},
		{Name: "draw::unknown_target", Run: drawUnknownTarget},
		{Name: "draw::removed_shader", Run: drawRemovedShader},
		{Name: "draw::repeated", Run: drawRepeated},
	}
}

func viewportIsWindowSize(env *Env) error {
	vp := env.Ctx.Viewport()
	want := glctx.NewRect(0, 0, uint32(env.Width), uint32(env.Height))
	return check(vp == want, "Viewport() = %v, want %v", vp, want)
}

func clearColor(env *Env) error {
	ctx := env.Ctx
	h, err := ctx.CreateRenderTarget(glctx.WithClearColor(ctx.Viewport(), glctx.Red))
	if err != nil {
		return err
	}
	rt, err := ctx.RenderTargetMut(h)
	if err != nil {
		return err
	}
	if err := rt.Clear(); err != nil {
		return err
	}

	shot, err := rt.ReadPixels(snapshot.RGBF32, ctx.Viewport())
	if err != nil {
		return err
	}
	ctx.Update()
	golden := snapshot.WithColor(8, 8, glctx.Red, snapshot.RGBF32)
	return compare(shot, golden, [][2]int{{4, 3}})
}

// screenViewport clears each quarter of the window through one render target
// by moving its viewport.
func screenViewport(env *Env) error {
	ctx := env.Ctx
	w, h := uint32(env.Width), uint32(env.Height)
	screen, err := ctx.CreateRenderTarget(glctx.RenderTarget{Viewport: glctx.NewRect(0, 0, w, h)})
	if err != nil {
		return err
	}
	rt, err := ctx.RenderTargetMut(screen)
	if err != nil {
		return err
	}

	for _, q := range quarters(w, h) {
		c := q.color
		rt.SetClearColor(&c)
		if err := rt.SetViewport(q.rect); err != nil {
			return err
		}
		if err := rt.Clear(); err != nil {
			return err
		}
	}

	shot, err := rt.ReadPixels(snapshot.RGBU8, ctx.Viewport())
	if err != nil {
		return err
	}
	ctx.Update()

	last := [2]int{shot.Width - 1, shot.Height - 1}
	return compare(shot, quarterGolden(env.Width, env.Height), [][2]int{
		{0, 0}, last, {last[0], 0}, {0, last[1]},
	})
}

type quarter struct {
	rect  glctx.Rect
	color gputypes.Color
}

// quarters splits a w x h window into four rectangles that cover it.
func quarters(w, h uint32) []quarter {
	lw, bh := w/2, h/2
	return []quarter{
		{glctx.NewRect(0, 0, lw, bh), glctx.Gainsboro},
		{glctx.NewRect(lw, 0, w-lw, bh), glctx.PersianIndigo},
		{glctx.NewRect(0, bh, lw, h-bh), glctx.UnityYellow},
		{glctx.NewRect(lw, bh, w-lw, h-bh), glctx.DarkJungleGreen},
	}
}

// quarterGolden is the expected screenViewport image. The framebuffer origin
// is bottom-left and the image origin top-left, so the first quarter lands
// at the bottom-left of the image.
func quarterGolden(width, height int) *snapshot.Image {
	img := snapshot.New(width, height, snapshot.RGBU8)
	for _, q := range quarters(uint32(width), uint32(height)) {
		x, y := int(q.rect.X), int(q.rect.Y)
		qw, qh := int(q.rect.Width), int(q.rect.Height)
		img.Fill(image.Rect(x, height-(y+qh), x+qw, height-y), q.color)
	}
	return img
}

// compare checks that two images have nearly the same perceptual hash and
// equal pixels at the given points.
func compare(got, want *snapshot.Image, points [][2]int) error {
	hg, err := got.Hash()
	if err != nil {
		return err
	}
	hw, err := want.Hash()
	if err != nil {
		return err
	}
	if err := check(hg.Distance(hw) <= 1, "hash %v differs from %v by %d bits", hg, hw, hg.Distance(hw)); err != nil {
		return err
	}

	// The golden may be smaller than the screenshot.
	sx := float64(want.Width) / float64(got.Width)
	sy := float64(want.Height) / float64(got.Height)
	for _, p := range points {
		pg, ok := got.Sample(p[0], p[1])
		if err := check(ok, "sample (%d, %d) outside %dx%d", p[0], p[1], got.Width, got.Height); err != nil {
			return err
		}
		pw, _ := want.Sample(int(float64(p[0])*sx), int(float64(p[1])*sy))
		if err := check(pg.Equal(pw), "pixel (%d, %d) = %v, want %v", p[0], p[1], pg, pw); err != nil {
			return err
		}
	}
	return nil
}

func bufferRoundTrip(env *Env) error {
	ctx := env.Ctx
	values := []float32{0.5, -1, 3.25, 1e6}
	desc := glctx.BufferOf(glctx.ArrayBuffer, glctx.AccessOnce, glctx.UsageRead, values)
	h, err := ctx.CreateBuffer(desc)
	if err != nil {
		return err
	}
	b, err := ctx.BufferMut(h)
	if err != nil {
		return err
	}
	got := b.ReadBack()
	if err := check(bytes.Equal(got, desc.Data), "ReadBack() = %v, want %v", got, desc.Data); err != nil {
		return err
	}

	if err := b.SetData(desc.Data[:8]); err != nil {
		return err
	}
	got = b.ReadBack()
	return check(bytes.Equal(got, desc.Data[:8]), "ReadBack() after SetData = %v, want %v", got, desc.Data[:8])
}

func drawUnknownTarget(env *Env) error {
	ctx := env.Ctx
	d, err := newDrawable(ctx)
	if err != nil {
		return err
	}
	err = ctx.Draw(glctx.RenderTargetHandle{}, gputypes.PrimitiveTopologyTriangleList, d.shader, d.layout, 0, 3)
	if err := check(errors.Is(err, glctx.ErrResourceNotFound), "Draw(zero target) error = %v, want ErrResourceNotFound", err); err != nil {
		return err
	}

	ctx.RemoveRenderTarget(d.target)
	err = ctx.Draw(d.target, gputypes.PrimitiveTopologyTriangleList, d.shader, d.layout, 0, 3)
	return check(errors.Is(err, glctx.ErrResourceNotFound), "Draw(removed target) error = %v, want ErrResourceNotFound", err)
}

func drawRemovedShader(env *Env) error {
	ctx := env.Ctx
	d, err := newDrawable(ctx)
	if err != nil {
		return err
	}
	if err := d.draw(ctx); err != nil {
		return err
	}

	ctx.RemoveShader(d.shader)
	err = d.draw(ctx)
	if err := check(errors.Is(err, glctx.ErrResourceNotFound), "Draw(removed shader) error = %v, want ErrResourceNotFound", err); err != nil {
		return err
	}

	d.shader, err = ctx.CreateShader(shaderFor(ctx.Device()))
	if err != nil {
		return err
	}
	return d.draw(ctx)
}

func drawRepeated(env *Env) error {
	d, err := newDrawable(env.Ctx)
	if err != nil {
		return err
	}
	for range 3 {
		if err := d.draw(env.Ctx); err != nil {
			return err
		}
	}
	return nil
}

// drawable is a triangle ready to draw.
type drawable struct {
	target glctx.RenderTargetHandle
	layout glctx.LayoutHandle
	shader glctx.ShaderHandle
}

func newDrawable(ctx *glctx.Context) (*drawable, error) {
	vertices := []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0, 0.5, 0,
	}
	buf, err := ctx.CreateBuffer(glctx.BufferOf(glctx.ArrayBuffer, glctx.AccessOnce, glctx.UsageWrite, vertices))
	if err != nil {
		return nil, err
	}
	var set glctx.AttributeSet
	set.Buffer = buf
	set.Push(glctx.VertexAttribute{Location: 0, Components: 3, Type: glctx.Float32})

	d := &drawable{}
	if d.layout, err = ctx.CreateLayout(glctx.VertexLayout{Sets: []glctx.AttributeSet{set}}); err != nil {
		return nil, err
	}
	if d.shader, err = ctx.CreateShader(shaderFor(ctx.Device())); err != nil {
		return nil, err
	}
	if d.target, err = ctx.CreateRenderTarget(glctx.WithClearColor(ctx.Viewport(), glctx.Black)); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *drawable) draw(ctx *glctx.Context) error {
	return ctx.Draw(d.target, gputypes.PrimitiveTopologyTriangleList, d.shader, d.layout, 0, 3)
}

// shaderFor returns a solid color shader in the language of dev.
func shaderFor(dev native.Device) glctx.Shader {
	vs, fs := glslVertex, glslFragment
	if dev.Name() == native.BackendSoft {
		vs, fs = wgslVertex, wgslFragment
	}
	return glctx.Shader{Sources: []glctx.Stage{
		{Kind: glctx.VertexStage, Sources: []string{vs}},
		{Kind: glctx.FragmentStage, Sources: []string{fs}},
	}}
}

const (
	glslVertex = `#version 430 core
layout(location = 0) in vec3 position;
void main() {
    gl_Position = vec4(position, 1.0);
}
`
	glslFragment = `#version 430 core
out vec4 color;
void main() {
    color = vec4(1.0, 0.0, 0.0, 1.0);
}
`
	wgslVertex = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`
	wgslFragment = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
)
