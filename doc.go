// Package glctx provides a resource context for immediate-mode graphics
// devices.
//
// # Overview
//
// A Context owns a loaded device (see package native) and every object
// created on it: buffers, vertex layouts, shader stages, linked shaders and
// render targets. Objects live in typed generational pools and are addressed
// by small copyable handles. A handle whose object was removed, or that was
// issued before Reset, never resolves again; using it returns
// ErrResourceNotFound instead of touching a recycled object.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/glctx"
//	    "github.com/gogpu/glctx/platform/headless"
//	    _ "github.com/gogpu/glctx/native/soft"
//	)
//
//	ctx, err := glctx.New(headless.New(800, 600))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	target, _ := ctx.CreateRenderTarget(glctx.WithClearColor(ctx.Viewport(), glctx.PersianIndigo))
//	rt, _ := ctx.RenderTargetMut(target)
//	rt.Clear()
//
// # Bind State
//
// The Context remembers the bound render target, layout and shader. Binding
// something that is already bound issues no device call, so Draw can be
// called with the same arguments every frame at no extra cost. Removing a
// bound object unbinds it.
//
// # Diagnostics
//
// Driver debug messages are logged through Logger and, when they describe a
// real problem, kept until PollErrors collects them.
//
// # Backends
//
// The opengl backend needs a current OpenGL 4.3 core context on the calling
// OS thread (see platform/desktop). The soft backend is pure Go and runs
// anywhere; it validates WGSL instead of GLSL.
package glctx
