// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package opengl implements native.Device on desktop OpenGL 4.3 core
// through go-gl.
//
// All methods must be called on the OS thread that owns the current GL
// context. Programs using this backend typically call runtime.LockOSThread
// from an init function.
//
// Importing the package registers it as the "opengl" backend.
package opengl

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx/native"
)

func init() {
	native.Register(native.BackendOpenGL, func() native.Device { return New() })
}

// Device is an OpenGL 4.3 core device. Create with New.
type Device struct {
	loaded bool
	major  int
	minor  int
	debug  native.DebugFunc
	// hooked is set once glDebugMessageCallback has been installed.
	hooked bool
	log    *slog.Logger
}

var _ native.Device = (*Device)(nil)

// New creates an unloaded device.
func New() *Device {
	return &Device{log: slog.New(discardHandler{})}
}

// Name returns "opengl".
func (d *Device) Name() string { return native.BackendOpenGL }

// SetLogger sets the logger used for device lifecycle messages.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	d.log = l
}

// Load resolves every 4.3 core entry point, reads the context version and
// enables the scissor test. Debug output is left alone until
// SetDebugCallback, which the caller issues only once it has accepted the
// version.
func (d *Device) Load(getProcAddress native.ProcAddressFunc) error {
	if getProcAddress == nil {
		return fmt.Errorf("opengl: nil proc address loader")
	}
	if err := gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		return getProcAddress(name)
	}); err != nil {
		return fmt.Errorf("opengl: load entry points: %w", err)
	}

	var major, minor int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	d.major, d.minor = int(major), int(minor)
	d.loaded = true

	gl.Enable(gl.SCISSOR_TEST)

	d.log.Info("opengl: device loaded",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)),
	)
	return nil
}

// Version returns the context version reported by the driver.
func (d *Device) Version() (major, minor int) { return d.major, d.minor }

// SetDebugCallback installs the receiver for driver messages. The first
// non-nil receiver enables synchronous debug output; nil disables it.
func (d *Device) SetDebugCallback(fn native.DebugFunc) {
	d.debug = fn
	if !d.loaded {
		return
	}
	if fn == nil {
		if d.hooked {
			gl.Disable(gl.DEBUG_OUTPUT)
		}
		return
	}
	gl.Enable(gl.DEBUG_OUTPUT)
	gl.Enable(gl.DEBUG_OUTPUT_SYNCHRONOUS)
	if !d.hooked {
		gl.DebugMessageCallback(d.onDebug, nil)
		d.hooked = true
	}
}

// Release detaches the debug callback. Objects are owned by the GL context
// and go away with it.
func (d *Device) Release() {
	d.debug = nil
	if d.loaded {
		gl.UseProgram(0)
		gl.BindVertexArray(0)
	}
}

func (d *Device) onDebug(source, gltype, id, severity uint32, _ int32, message string, _ unsafe.Pointer) {
	if d.debug == nil {
		return
	}
	d.debug(native.DebugMessage{
		Source:   debugSource(source),
		Type:     debugType(gltype),
		ID:       id,
		Severity: debugSeverity(severity),
		Message:  message,
	})
}

// CreateBuffer allocates a buffer name.
func (d *Device) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

// BufferData binds buffer to target and uploads data.
func (d *Device) BufferData(target native.BufferTarget, buffer uint32, data []byte, usage native.BufferUsage) {
	t := bufferTarget(target)
	gl.BindBuffer(t, buffer)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(t, len(data), ptr, bufferUsage(usage))
}

// ReadBuffer reads len(dst) bytes of buffer starting at offset.
func (d *Device) ReadBuffer(target native.BufferTarget, buffer uint32, offset int, dst []byte) {
	if len(dst) == 0 {
		return
	}
	t := bufferTarget(target)
	gl.BindBuffer(t, buffer)
	gl.GetBufferSubData(t, offset, len(dst), gl.Ptr(dst))
}

// DeleteBuffer deletes a buffer name.
func (d *Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

// CreateVertexArray allocates a vertex array name.
func (d *Device) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

// BindVertexArray binds vao.
func (d *Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

// EnableVertexAttrib enables location on the bound vertex array.
func (d *Device) EnableVertexAttrib(location uint32) { gl.EnableVertexAttribArray(location) }

// VertexAttribFormat specifies the layout of one attribute.
func (d *Device) VertexAttribFormat(location uint32, components int32, typ native.AttribType, normalized bool, offset uint32) {
	gl.VertexAttribFormat(location, components, attribType(typ), normalized, offset)
}

// VertexAttribBinding associates location with a binding point.
func (d *Device) VertexAttribBinding(location, binding uint32) {
	gl.VertexAttribBinding(location, binding)
}

// BindVertexBuffer binds buffer to a binding point.
func (d *Device) BindVertexBuffer(binding, buffer uint32, offset int, stride int32) {
	gl.BindVertexBuffer(binding, buffer, offset, stride)
}

// DeleteVertexArray deletes a vertex array name.
func (d *Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

// CreateShader creates a shader object for stage.
func (d *Device) CreateShader(stage native.ShaderStage) uint32 {
	return gl.CreateShader(shaderType(stage))
}

// CompileShader uploads GLSL sources and compiles them.
func (d *Device) CompileShader(shader uint32, sources []string) (string, bool) {
	terminated := make([]string, len(sources))
	for i, s := range sources {
		terminated[i] = s + "\x00"
	}
	csources, free := gl.Strs(terminated...)
	gl.ShaderSource(shader, int32(len(terminated)), csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return "", true
	}
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00"), false
}

// DeleteShader deletes a shader object.
func (d *Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

// CreateProgram creates a program object.
func (d *Device) CreateProgram() uint32 { return gl.CreateProgram() }

// AttachShader attaches shader to program.
func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

// DetachShader detaches shader from program.
func (d *Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

// LinkProgram links program.
func (d *Device) LinkProgram(program uint32) (string, bool) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return "", true
	}
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00"), false
}

// UseProgram installs program.
func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

// DeleteProgram deletes a program object.
func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

// Viewport sets the viewport.
func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

// Scissor sets the scissor box.
func (d *Device) Scissor(x, y, width, height int32) { gl.Scissor(x, y, width, height) }

// CurrentViewport queries GL_VIEWPORT.
func (d *Device) CurrentViewport() (x, y, width, height int32) {
	var v [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &v[0])
	return v[0], v[1], v[2], v[3]
}

// ClearColor sets the clear color.
func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

// Clear clears the color buffer.
func (d *Device) Clear() { gl.Clear(gl.COLOR_BUFFER_BIT) }

// ReadPixels reads a rectangle of the color buffer into dst.
func (d *Device) ReadPixels(x, y, width, height int32, format native.PixelFormat, typ native.PixelType, dst []byte) {
	if len(dst) == 0 {
		return
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, pixelFormat(format), pixelType(typ), gl.Ptr(dst))
}

// DrawArrays draws from the bound vertex array with the installed program.
func (d *Device) DrawArrays(topology gputypes.PrimitiveTopology, first, count int32) {
	gl.DrawArrays(primitiveMode(topology), first, count)
}
