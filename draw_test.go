package glctx

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestDrawUnknownTarget(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)

	err := ctx.Draw(RenderTargetHandle{}, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("Draw() error = %v, want ErrResourceNotFound", err)
	}
	if got := dev.Stats().DrawArrays; got != 0 {
		t.Errorf("DrawArrays calls = %d, want 0", got)
	}
	if !ctx.bound.target.IsZero() {
		t.Errorf("bound target = %v, want none", ctx.bound.target)
	}
}

func TestDrawBindsOnce(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)
	dev.ResetStats()

	for range 3 {
		if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3); err != nil {
			t.Fatalf("Draw() = %v", err)
		}
	}

	st := dev.Stats()
	if st.Viewport != 1 || st.Scissor != 1 {
		t.Errorf("Viewport, Scissor calls = %d, %d, want 1, 1", st.Viewport, st.Scissor)
	}
	// The layout was left bound by CreateLayout.
	if st.BindVertexArray != 0 {
		t.Errorf("BindVertexArray calls = %d, want 0", st.BindVertexArray)
	}
	if st.UseProgram != 1 {
		t.Errorf("UseProgram calls = %d, want 1", st.UseProgram)
	}
	if st.DrawArrays != 3 {
		t.Errorf("DrawArrays calls = %d, want 3", st.DrawArrays)
	}
	if errs := ctx.PollErrors(); errs != nil {
		t.Errorf("PollErrors() = %v, want nil", errs)
	}
}

func TestDrawRecordsCall(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)

	if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyLineStrip, s.shader, s.layout, 1, 2); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	draws := dev.Draws()
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	sh, _ := ctx.Shader(s.shader)
	l, _ := ctx.Layout(s.layout)
	want := struct {
		topology     gputypes.PrimitiveTopology
		first, count int32
		program, vao uint32
	}{gputypes.PrimitiveTopologyLineStrip, 1, 2, sh.ID(), l.ID()}
	d := draws[0]
	if d.Topology != want.topology || d.First != want.first || d.Count != want.count ||
		d.Program != want.program || d.VertexArray != want.vao {
		t.Errorf("draw = %+v, want %+v", d, want)
	}
}

func TestDrawSwitchesShader(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)
	blue := mustShader(t, ctx, blueFragmentWGSL)
	dev.ResetStats()

	sequence := []ShaderHandle{s.shader, s.shader, blue, blue, s.shader}
	for _, sh := range sequence {
		if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, sh, s.layout, 0, 3); err != nil {
			t.Fatalf("Draw() = %v", err)
		}
	}
	if got := dev.Stats().UseProgram; got != 3 {
		t.Errorf("UseProgram calls = %d, want 3", got)
	}
}

func TestDrawStaleShaderKeepsEarlierBinds(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)
	if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	other, err := ctx.CreateRenderTarget(RenderTarget{Viewport: NewRect(0, 0, 10, 10)})
	if err != nil {
		t.Fatalf("CreateRenderTarget() = %v", err)
	}
	ctx.RemoveShader(s.shader)
	if !ctx.bound.shader.IsZero() {
		t.Errorf("bound shader = %v after removal, want none", ctx.bound.shader)
	}
	dev.ResetStats()

	err = ctx.Draw(other, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3)
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("Draw() error = %v, want ErrResourceNotFound", err)
	}
	if ctx.bound.target != other {
		t.Errorf("bound target = %v, want %v", ctx.bound.target, other)
	}
	if ctx.bound.layout != s.layout {
		t.Errorf("bound layout = %v, want %v", ctx.bound.layout, s.layout)
	}
	if !ctx.bound.shader.IsZero() {
		t.Errorf("bound shader = %v, want none", ctx.bound.shader)
	}
	if got := dev.Stats().DrawArrays; got != 0 {
		t.Errorf("DrawArrays calls = %d, want 0", got)
	}

	// A later draw with a live shader binds it.
	fresh := mustShader(t, ctx, fragmentWGSL)
	if err := ctx.Draw(other, gputypes.PrimitiveTopologyTriangleList, fresh, s.layout, 0, 3); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if got := dev.Stats().UseProgram; got != 1 {
		t.Errorf("UseProgram calls = %d, want 1", got)
	}
}

func TestDrawReusedSlotRebinds(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)
	if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	ctx.RemoveLayout(s.layout)
	if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, 0, 3); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("Draw() with removed layout error = %v, want ErrResourceNotFound", err)
	}

	layout, err := ctx.CreateLayout(positionLayout(s.buffer))
	if err != nil {
		t.Fatalf("CreateLayout() = %v", err)
	}
	if layout.Index() != s.layout.Index() {
		t.Fatalf("new layout slot = %d, want %d", layout.Index(), s.layout.Index())
	}
	dev.ResetStats()
	if err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, s.shader, layout, 0, 3); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	l, _ := ctx.Layout(layout)
	if got := dev.Draws()[0].VertexArray; got != l.ID() {
		t.Errorf("drawn vertex array = %d, want %d", got, l.ID())
	}
}

func TestDrawConversion(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)
	big := math.MaxInt32
	big++

	tests := []struct {
		name         string
		start, count int
		field        string
	}{
		{"negative start", -1, 3, "draw start into i32"},
		{"negative count", 0, -3, "draw count into i32"},
		{"count too large", 0, big, "draw count into i32"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctx.Draw(s.target, gputypes.PrimitiveTopologyTriangleList, s.shader, s.layout, tt.start, tt.count)
			var cerr *ConversionError
			if !errors.As(err, &cerr) {
				t.Fatalf("Draw() error = %v, want *ConversionError", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cerr.Field, tt.field)
			}
		})
	}
	if got := dev.Stats().DrawArrays; got != 0 {
		t.Errorf("DrawArrays calls = %d, want 0", got)
	}
}

func TestDrawTopologies(t *testing.T) {
	ctx, dev := newTestContext(t)
	s := newScene(t, ctx)

	supported := []gputypes.PrimitiveTopology{
		gputypes.PrimitiveTopologyPointList,
		gputypes.PrimitiveTopologyLineList,
		gputypes.PrimitiveTopologyLineStrip,
		gputypes.PrimitiveTopologyTriangleList,
		gputypes.PrimitiveTopologyTriangleStrip,
	}
	for _, topo := range supported {
		if err := ctx.Draw(s.target, topo, s.shader, s.layout, 0, 3); err != nil {
			t.Errorf("Draw(%v) = %v", topo, err)
		}
	}
	dev.ResetStats()
	if err := ctx.Draw(s.target, gputypes.PrimitiveTopology(42), s.shader, s.layout, 0, 3); !errors.Is(err, ErrUnsupportedTopology) {
		t.Errorf("Draw(42) error = %v, want ErrUnsupportedTopology", err)
	}
	if got := dev.Stats().DrawArrays; got != 0 {
		t.Errorf("DrawArrays calls = %d, want 0", got)
	}
}
