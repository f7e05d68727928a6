// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package native defines the immediate-mode device primitives the glctx
// resource registry is built on, and a registry of device backends.
//
// Object identifiers are the device's own names (OpenGL object names for the
// opengl backend). They are never exposed to glctx clients, which address
// resources through generational handles instead.
//
// Backends register themselves from init functions:
//
//	import _ "github.com/gogpu/glctx/native/opengl" // cgo, desktop OpenGL 4.3
//	import _ "github.com/gogpu/glctx/native/soft"   // pure Go, headless
package native

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// ProcAddressFunc resolves a native entry point by name. It returns nil when
// the entry point is not available.
type ProcAddressFunc func(name string) unsafe.Pointer

// Device is an immediate-mode graphics device.
//
// Methods that create objects return a device object name; zero is never a
// valid name. Methods that act on an object name that does not exist report
// the problem through the debug callback, the way a driver would, and
// otherwise do nothing.
//
// A Device is used from one goroutine at a time and must stay on the thread
// that owns its native context.
type Device interface {
	// Name returns the backend identifier (e.g., "opengl", "soft").
	Name() string

	// Load resolves entry points through getProcAddress. It fails when a
	// mandatory entry point is missing.
	Load(getProcAddress ProcAddressFunc) error

	// Version returns the native API version after Load.
	Version() (major, minor int)

	// SetDebugCallback installs fn as the receiver of driver messages.
	// Passing nil disables message delivery. It is called only after the
	// version reported by Version has been accepted, so backends may enable
	// version-dependent debug output here.
	SetDebugCallback(fn DebugFunc)

	// Release frees device-level state. The device must not be used after.
	Release()

	// CreateBuffer allocates a buffer object.
	CreateBuffer() uint32

	// BufferData binds buffer to target and replaces its storage with data.
	BufferData(target BufferTarget, buffer uint32, data []byte, usage BufferUsage)

	// ReadBuffer copies len(dst) bytes starting at offset out of buffer.
	ReadBuffer(target BufferTarget, buffer uint32, offset int, dst []byte)

	// DeleteBuffer frees a buffer object.
	DeleteBuffer(buffer uint32)

	// CreateVertexArray allocates a vertex array object.
	CreateVertexArray() uint32

	// BindVertexArray makes vao current. Zero unbinds.
	BindVertexArray(vao uint32)

	// EnableVertexAttrib enables an attribute location on the current vertex array.
	EnableVertexAttrib(location uint32)

	// VertexAttribFormat describes one attribute of the current vertex array.
	VertexAttribFormat(location uint32, components int32, typ AttribType, normalized bool, offset uint32)

	// VertexAttribBinding associates an attribute location with a binding point.
	VertexAttribBinding(location, binding uint32)

	// BindVertexBuffer attaches buffer to a binding point of the current vertex array.
	BindVertexBuffer(binding, buffer uint32, offset int, stride int32)

	// DeleteVertexArray frees a vertex array object.
	DeleteVertexArray(vao uint32)

	// CreateShader allocates a shader stage object.
	CreateShader(stage ShaderStage) uint32

	// CompileShader compiles the concatenated sources into shader. On failure
	// ok is false and log holds the compiler output.
	CompileShader(shader uint32, sources []string) (log string, ok bool)

	// DeleteShader frees a shader stage object.
	DeleteShader(shader uint32)

	// CreateProgram allocates a program object.
	CreateProgram() uint32

	// AttachShader attaches a compiled stage to program.
	AttachShader(program, shader uint32)

	// DetachShader detaches a stage from program.
	DetachShader(program, shader uint32)

	// LinkProgram links program. On failure ok is false and log holds the
	// linker output.
	LinkProgram(program uint32) (log string, ok bool)

	// UseProgram makes program current. Zero unbinds.
	UseProgram(program uint32)

	// DeleteProgram frees a program object.
	DeleteProgram(program uint32)

	// Viewport sets the viewport rectangle.
	Viewport(x, y, width, height int32)

	// Scissor sets the scissor rectangle.
	Scissor(x, y, width, height int32)

	// CurrentViewport returns the viewport rectangle.
	CurrentViewport() (x, y, width, height int32)

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear fills the scissor rectangle of the color buffer with the clear color.
	Clear()

	// ReadPixels copies a rectangle of the color buffer into dst, bottom row
	// first. dst must hold width*height*format.Channels()*typ.Size() bytes.
	ReadPixels(x, y, width, height int32, format PixelFormat, typ PixelType, dst []byte)

	// DrawArrays draws count vertices starting at first from the current
	// vertex array with the current program.
	DrawArrays(topology gputypes.PrimitiveTopology, first, count int32)
}

// Resizer is implemented by devices that own their framebuffer and need to
// be told the window size.
type Resizer interface {
	Resize(width, height int)
}

// BufferTarget is the binding target of a buffer.
type BufferTarget uint8

// Buffer targets.
const (
	TargetArray BufferTarget = iota
	TargetElementArray
)

func (t BufferTarget) String() string {
	switch t {
	case TargetArray:
		return "array"
	case TargetElementArray:
		return "element_array"
	}
	return "unknown"
}

// BufferUsage is the storage hint of a buffer: how often it is written and
// what it is used for.
type BufferUsage uint8

// Buffer usage hints.
const (
	StaticDraw BufferUsage = iota
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy
	StreamDraw
	StreamRead
	StreamCopy
)

func (u BufferUsage) String() string {
	names := [...]string{
		"static_draw", "static_read", "static_copy",
		"dynamic_draw", "dynamic_read", "dynamic_copy",
		"stream_draw", "stream_read", "stream_copy",
	}
	if int(u) < len(names) {
		return names[u]
	}
	return "unknown"
}

// AttribType is the element type of a vertex attribute.
type AttribType uint8

// Attribute element types.
const (
	AttribFloat32 AttribType = iota
	AttribUint8
	AttribInt8
	AttribUint16
	AttribInt16
	AttribUint32
	AttribInt32
)

// ShaderStage is the pipeline stage of a shader object.
type ShaderStage uint8

// Shader stages.
const (
	StageVertex ShaderStage = iota
	StageFragment
	StageGeometry
	StageCompute
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageCompute:
		return "compute"
	}
	return "unknown"
}

// PixelFormat is the channel layout of pixel read-back.
type PixelFormat uint8

// Pixel formats.
const (
	PixelRGB PixelFormat = iota
	PixelRGBA
)

// Channels returns the number of channels per pixel.
func (f PixelFormat) Channels() int {
	if f == PixelRGB {
		return 3
	}
	return 4
}

// PixelType is the channel type of pixel read-back.
type PixelType uint8

// Pixel types.
const (
	PixelUint8 PixelType = iota
	PixelFloat32
)

// Size returns the size of one channel in bytes.
func (t PixelType) Size() int {
	if t == PixelFloat32 {
		return 4
	}
	return 1
}
