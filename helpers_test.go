package glctx

import (
	"testing"
	"unsafe"

	"github.com/gogpu/glctx/native/soft"
	"github.com/gogpu/glctx/platform/headless"
)

const (
	vertexWGSL = `
@vertex
fn vs_main(@location(0) position: vec3<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 1.0);
}
`
	fragmentWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
	blueFragmentWGSL = `
@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(0.0, 0.0, 1.0, 1.0);
}
`
)

// window is a platform that does not report a size.
type window struct {
	swaps int
}

func (w *window) SwapBuffers()                       { w.swaps++ }
func (w *window) ProcAddress(string) unsafe.Pointer { return nil }

func newTestContext(t *testing.T, opts ...soft.Option) (*Context, *soft.Device) {
	t.Helper()
	dev := soft.New(opts...)
	ctx, err := New(headless.New(400, 300), WithDevice(dev))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(ctx.Close)
	return ctx, dev
}

var triangle = []float32{
	-1, -1, 0,
	1, -1, 0,
	0, 1, 0,
}

func positionLayout(buf BufferHandle) VertexLayout {
	var set AttributeSet
	set.Buffer = buf
	set.Push(VertexAttribute{Location: 0, Components: 3, Type: Float32})
	var l VertexLayout
	l.Push(set)
	return l
}

func mustShader(t *testing.T, ctx *Context, fragment string) ShaderHandle {
	t.Helper()
	h, err := ctx.CreateShader(Shader{Sources: []Stage{
		{Kind: VertexStage, Sources: []string{vertexWGSL}},
		{Kind: FragmentStage, Sources: []string{fragment}},
	}})
	if err != nil {
		t.Fatalf("CreateShader() = %v", err)
	}
	return h
}

// scene holds everything one draw needs.
type scene struct {
	buffer BufferHandle
	layout LayoutHandle
	shader ShaderHandle
	target RenderTargetHandle
}

func newScene(t *testing.T, ctx *Context) scene {
	t.Helper()
	var s scene
	var err error
	s.buffer, err = ctx.CreateBuffer(BufferOf(ArrayBuffer, AccessOnce, UsageWrite, triangle))
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	s.layout, err = ctx.CreateLayout(positionLayout(s.buffer))
	if err != nil {
		t.Fatalf("CreateLayout() = %v", err)
	}
	s.shader = mustShader(t, ctx, fragmentWGSL)
	s.target, err = ctx.CreateRenderTarget(WithClearColor(ctx.Viewport(), Black))
	if err != nil {
		t.Fatalf("CreateRenderTarget() = %v", err)
	}
	return s
}
