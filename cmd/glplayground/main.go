// Command glplayground opens a Context, clears the window in four colors and
// draws a triangle on top.
//
// With -headless it renders one frame on the software backend and writes it
// to -output instead of opening a window.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx"
	"github.com/gogpu/glctx/native"
	_ "github.com/gogpu/glctx/native/opengl"
	_ "github.com/gogpu/glctx/native/soft"
	"github.com/gogpu/glctx/platform/desktop"
	"github.com/gogpu/glctx/platform/headless"
	"github.com/gogpu/glctx/snapshot"
)

func init() {
	runtime.LockOSThread()
}

var (
	width     = flag.Int("width", 800, "window width")
	height    = flag.Int("height", 600, "window height")
	offscreen = flag.Bool("headless", false, "render one frame on the software backend")
	output    = flag.String("output", "playground.png", "output file for -headless")
	verbose   = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	if *verbose {
		glctx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *offscreen {
		if err := renderOnce(); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		log.Printf("Saved %s (%dx%d)", *output, *width, *height)
		return
	}

	win, err := desktop.NewWindow(
		desktop.WithTitle("glplayground"),
		desktop.WithSize(*width, *height),
		desktop.WithDebugContext(true),
	)
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	defer win.Destroy()

	ctx, err := glctx.New(win, glctx.WithBackend(native.BackendOpenGL))
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer ctx.Close()

	s, err := newScene(ctx, glslVertex, glslFragment)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}
	for !win.ShouldClose() {
		win.PollEvents()
		if err := s.render(ctx); err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
		for _, msg := range ctx.PollErrors() {
			log.Printf("driver: %s", msg)
		}
		ctx.Update()
	}
}

func renderOnce() error {
	ctx, err := glctx.New(headless.New(*width, *height), glctx.WithBackend(native.BackendSoft))
	if err != nil {
		return err
	}
	defer ctx.Close()

	s, err := newScene(ctx, wgslVertex, wgslFragment)
	if err != nil {
		return err
	}
	if err := s.render(ctx); err != nil {
		return err
	}
	rt, err := ctx.RenderTargetMut(s.screen)
	if err != nil {
		return err
	}
	shot, err := rt.ReadPixels(snapshot.RGBAU8, ctx.Viewport())
	if err != nil {
		return err
	}
	return shot.Save(*output)
}

type scene struct {
	screen glctx.RenderTargetHandle
	layout glctx.LayoutHandle
	shader glctx.ShaderHandle
}

func newScene(ctx *glctx.Context, vertex, fragment string) (*scene, error) {
	buf, err := ctx.CreateBuffer(glctx.BufferOf(glctx.ArrayBuffer, glctx.AccessOnce, glctx.UsageWrite, []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0, 0.5, 0,
	}))
	if err != nil {
		return nil, err
	}
	var set glctx.AttributeSet
	set.Buffer = buf
	set.Push(glctx.VertexAttribute{Location: 0, Components: 3, Type: glctx.Float32})

	s := &scene{}
	if s.layout, err = ctx.CreateLayout(glctx.VertexLayout{Sets: []glctx.AttributeSet{set}}); err != nil {
		return nil, err
	}
	if s.shader, err = ctx.CreateShader(glctx.Shader{Sources: []glctx.Stage{
		{Kind: glctx.VertexStage, Sources: []string{vertex}},
		{Kind: glctx.FragmentStage, Sources: []string{fragment}},
	}}); err != nil {
		return nil, err
	}
	s.screen, err = ctx.CreateRenderTarget(glctx.RenderTarget{Viewport: ctx.Viewport()})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// render clears each quarter of the window in its own color, then draws the
// triangle over the whole viewport.
func (s *scene) render(ctx *glctx.Context) error {
	rt, err := ctx.RenderTargetMut(s.screen)
	if err != nil {
		return err
	}
	vp := ctx.Viewport()
	lw, bh := vp.Width/2, vp.Height/2
	quarters := []struct {
		rect  glctx.Rect
		color gputypes.Color
	}{
		{glctx.NewRect(0, 0, lw, bh), glctx.Gainsboro},
		{glctx.NewRect(lw, 0, vp.Width-lw, bh), glctx.PersianIndigo},
		{glctx.NewRect(0, bh, lw, vp.Height-bh), glctx.UnityYellow},
		{glctx.NewRect(lw, bh, vp.Width-lw, vp.Height-bh), glctx.DarkJungleGreen},
	}
	for _, q := range quarters {
		c := q.color
		rt.SetClearColor(&c)
		if err := rt.SetViewport(q.rect); err != nil {
			return err
		}
		if err := rt.Clear(); err != nil {
			return err
		}
	}
	if err := rt.SetViewport(vp); err != nil {
		return err
	}
	return ctx.Draw(s.screen, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3)
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
    color = vec4(0.9, 0.3, 0.1, 1.0);
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
    return vec4<f32>(0.9, 0.3, 0.1, 1.0);
}
`
)
