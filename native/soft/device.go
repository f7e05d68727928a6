// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft implements native.Device in pure Go.
//
// The device keeps buffers and vertex arrays in memory, validates WGSL
// stages with naga, and owns an RGBA framebuffer that honours viewport,
// scissor, clear and read-back. Draw calls are recorded, not rasterized.
// Misuse is reported through the debug callback with the message types a
// desktop driver would use, which makes the device suitable for testing the
// layers above it without a window or GPU.
//
// Importing the package registers it as the "soft" backend.
package soft

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx/internal/lru"
	"github.com/gogpu/glctx/native"
)

func init() {
	native.Register(native.BackendSoft, func() native.Device { return New() })
}

// Stats counts the state-changing calls a Device has received.
type Stats struct {
	BufferData       int
	BindVertexArray  int
	BindVertexBuffer int
	UseProgram       int
	Viewport         int
	Scissor          int
	Clear            int
	DrawArrays       int
	// Compiles counts WGSL sources parsed and validated. Sources served
	// from the compile cache are not counted.
	Compiles int
}

// Draw is one recorded draw call.
type Draw struct {
	Topology    gputypes.PrimitiveTopology
	First       int32
	Count       int32
	Program     uint32
	VertexArray uint32
}

type buffer struct {
	data  []byte
	usage native.BufferUsage
}

type attrib struct {
	components int32
	typ        native.AttribType
	normalized bool
	offset     uint32
	binding    uint32
	enabled    bool
}

type vertexBinding struct {
	buffer uint32
	offset int
	stride int32
}

type vertexArray struct {
	attribs  map[uint32]*attrib
	bindings map[uint32]vertexBinding
}

// Device is a software native.Device. Create with New.
type Device struct {
	opts   options
	log    *slog.Logger
	loaded bool
	debug  native.DebugFunc

	nextID   uint32
	buffers  map[uint32]*buffer
	arrays   map[uint32]*vertexArray
	shaders  map[uint32]*shader
	programs map[uint32]*program
	compiled *lru.Cache[compileKey, compileResult]

	vertexArray uint32
	program     uint32

	fb framebuffer

	stats Stats
	draws []Draw
}

var _ native.Device = (*Device)(nil)
var _ native.Resizer = (*Device)(nil)

// New creates a software device.
func New(opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		opts:     o,
		log:      newNopLogger(),
		buffers:  make(map[uint32]*buffer),
		arrays:   make(map[uint32]*vertexArray),
		shaders:  make(map[uint32]*shader),
		programs: make(map[uint32]*program),
		compiled: lru.New[compileKey, compileResult](o.compileCache),
	}
	d.fb.resize(o.width, o.height)
	return d
}

// Name returns "soft".
func (d *Device) Name() string { return native.BackendSoft }

// Load accepts any loader; the device has no native entry points. It fails
// for entry points configured with WithMissingEntryPoints.
func (d *Device) Load(native.ProcAddressFunc) error {
	if len(d.opts.missing) > 0 {
		return fmt.Errorf("soft: failed to load entry points: %s", strings.Join(d.opts.missing, ", "))
	}
	d.loaded = true
	d.log.Debug("soft: device loaded",
		"width", d.fb.width,
		"height", d.fb.height,
		"version", fmt.Sprintf("%d.%d", d.opts.major, d.opts.minor),
	)
	return nil
}

// Version returns the configured API version, or 0.0 before Load.
func (d *Device) Version() (major, minor int) {
	if !d.loaded {
		return 0, 0
	}
	return d.opts.major, d.opts.minor
}

// SetDebugCallback installs the debug message receiver.
func (d *Device) SetDebugCallback(fn native.DebugFunc) { d.debug = fn }

// Release drops every object.
func (d *Device) Release() {
	clear(d.buffers)
	clear(d.arrays)
	clear(d.shaders)
	clear(d.programs)
	d.compiled.Clear()
	d.vertexArray = 0
	d.program = 0
	d.debug = nil
}

// Resize replaces the framebuffer and resets viewport and scissor to cover it.
func (d *Device) Resize(width, height int) {
	d.fb.resize(width, height)
}

// Stats returns the call counters.
func (d *Device) Stats() Stats { return d.stats }

// ResetStats zeroes the call counters and forgets recorded draws.
func (d *Device) ResetStats() {
	d.stats = Stats{}
	d.draws = nil
}

// Draws returns the recorded draw calls.
func (d *Device) Draws() []Draw {
	out := make([]Draw, len(d.draws))
	copy(out, d.draws)
	return out
}

// Live returns the number of live buffers, vertex arrays, shaders and programs.
func (d *Device) Live() (buffers, vertexArrays, shaders, programs int) {
	return len(d.buffers), len(d.arrays), len(d.shaders), len(d.programs)
}

func (d *Device) emit(typ native.DebugType, severity native.DebugSeverity, id uint32, format string, args ...any) {
	if d.debug == nil {
		return
	}
	d.debug(native.DebugMessage{
		Source:   native.SourceAPI,
		Type:     typ,
		ID:       id,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	})
}

// invalidOperation and invalidValue mirror the GL error codes.
func (d *Device) invalidOperation(format string, args ...any) {
	d.emit(native.TypeError, native.SeverityHigh, 0x0502, "GL_INVALID_OPERATION: "+format, args...)
}

func (d *Device) invalidValue(format string, args ...any) {
	d.emit(native.TypeError, native.SeverityHigh, 0x0501, "GL_INVALID_VALUE: "+format, args...)
}

func (d *Device) allocID() uint32 {
	d.nextID++
	return d.nextID
}

// CreateBuffer allocates an empty buffer.
func (d *Device) CreateBuffer() uint32 {
	id := d.allocID()
	d.buffers[id] = &buffer{}
	return id
}

// BufferData replaces the buffer storage with a copy of data.
func (d *Device) BufferData(target native.BufferTarget, id uint32, data []byte, usage native.BufferUsage) {
	b, ok := d.buffers[id]
	if !ok {
		d.invalidOperation("buffer %d bound to %s does not exist", id, target)
		return
	}
	d.stats.BufferData++
	b.data = append(b.data[:0:0], data...)
	b.usage = usage
	if d.opts.notifications {
		d.emit(native.TypeOther, native.SeverityNotification, 131185,
			"Buffer detailed info: Buffer object %d (bound to %s, usage hint is %s) will use SYSTEM HEAP memory as the source for buffer object operations.",
			id, target, usage)
	}
}

// ReadBuffer copies buffer contents into dst.
func (d *Device) ReadBuffer(target native.BufferTarget, id uint32, offset int, dst []byte) {
	b, ok := d.buffers[id]
	if !ok {
		d.invalidOperation("buffer %d bound to %s does not exist", id, target)
		return
	}
	if offset < 0 || offset+len(dst) > len(b.data) {
		d.invalidValue("read of %d bytes at offset %d exceeds buffer %d size %d", len(dst), offset, id, len(b.data))
		return
	}
	copy(dst, b.data[offset:])
}

// DeleteBuffer frees a buffer. Unknown names are ignored.
func (d *Device) DeleteBuffer(id uint32) {
	delete(d.buffers, id)
}

// CreateVertexArray allocates a vertex array.
func (d *Device) CreateVertexArray() uint32 {
	id := d.allocID()
	d.arrays[id] = &vertexArray{
		attribs:  make(map[uint32]*attrib),
		bindings: make(map[uint32]vertexBinding),
	}
	return id
}

// BindVertexArray makes vao current.
func (d *Device) BindVertexArray(vao uint32) {
	if _, ok := d.arrays[vao]; vao != 0 && !ok {
		d.invalidOperation("vertex array %d does not exist", vao)
		return
	}
	d.stats.BindVertexArray++
	d.vertexArray = vao
}

func (d *Device) currentArray(call string) *vertexArray {
	va, ok := d.arrays[d.vertexArray]
	if !ok {
		d.invalidOperation("%s with no vertex array bound", call)
		return nil
	}
	return va
}

func (va *vertexArray) attrib(location uint32) *attrib {
	a, ok := va.attribs[location]
	if !ok {
		a = &attrib{binding: location}
		va.attribs[location] = a
	}
	return a
}

// EnableVertexAttrib enables an attribute of the current vertex array.
func (d *Device) EnableVertexAttrib(location uint32) {
	if va := d.currentArray("EnableVertexAttribArray"); va != nil {
		va.attrib(location).enabled = true
	}
}

// VertexAttribFormat records the attribute format on the current vertex array.
func (d *Device) VertexAttribFormat(location uint32, components int32, typ native.AttribType, normalized bool, offset uint32) {
	if components < 1 || components > 4 {
		d.invalidValue("attribute %d size %d is not in 1..4", location, components)
		return
	}
	va := d.currentArray("VertexAttribFormat")
	if va == nil {
		return
	}
	a := va.attrib(location)
	a.components = components
	a.typ = typ
	a.normalized = normalized
	a.offset = offset
}

// VertexAttribBinding records the attribute's binding point.
func (d *Device) VertexAttribBinding(location, binding uint32) {
	if va := d.currentArray("VertexAttribBinding"); va != nil {
		va.attrib(location).binding = binding
	}
}

// BindVertexBuffer attaches buffer to a binding point of the current vertex array.
func (d *Device) BindVertexBuffer(binding, buf uint32, offset int, stride int32) {
	if _, ok := d.buffers[buf]; buf != 0 && !ok {
		d.invalidOperation("buffer %d does not exist", buf)
		return
	}
	if offset < 0 || stride < 0 {
		d.invalidValue("negative offset %d or stride %d", offset, stride)
		return
	}
	va := d.currentArray("BindVertexBuffer")
	if va == nil {
		return
	}
	d.stats.BindVertexBuffer++
	va.bindings[binding] = vertexBinding{buffer: buf, offset: offset, stride: stride}
}

// VertexBinding returns what buffer, offset and stride are attached to a
// binding point of vao.
func (d *Device) VertexBinding(vao, binding uint32) (buf uint32, offset int, stride int32, ok bool) {
	va, found := d.arrays[vao]
	if !found {
		return 0, 0, 0, false
	}
	b, found := va.bindings[binding]
	return b.buffer, b.offset, b.stride, found
}

// DeleteVertexArray frees a vertex array. Deleting the current one unbinds it.
func (d *Device) DeleteVertexArray(vao uint32) {
	delete(d.arrays, vao)
	if d.vertexArray == vao {
		d.vertexArray = 0
	}
}

// UseProgram makes program current. The program must be linked.
func (d *Device) UseProgram(id uint32) {
	if id != 0 {
		p, ok := d.programs[id]
		if !ok {
			d.invalidOperation("program %d does not exist", id)
			return
		}
		if !p.linked {
			d.invalidOperation("program %d has not been linked successfully", id)
			return
		}
	}
	d.stats.UseProgram++
	d.program = id
}

// DrawArrays records a draw call after checking that the device state can
// serve it.
func (d *Device) DrawArrays(topology gputypes.PrimitiveTopology, first, count int32) {
	if first < 0 || count < 0 {
		d.invalidValue("negative first %d or count %d", first, count)
		return
	}
	if topology > gputypes.PrimitiveTopologyTriangleStrip {
		d.emit(native.TypeError, native.SeverityHigh, 0x0500, "GL_INVALID_ENUM: unknown primitive mode %d", topology)
		return
	}
	if d.program == 0 {
		d.invalidOperation("DrawArrays with no program bound")
		return
	}
	va := d.currentArray("DrawArrays")
	if va == nil {
		return
	}
	for loc, a := range va.attribs {
		if !a.enabled {
			continue
		}
		if _, ok := va.bindings[a.binding]; !ok {
			d.emit(native.TypeUndefinedBehavior, native.SeverityMedium, 0x0502,
				"attribute %d is enabled but binding point %d has no buffer", loc, a.binding)
		}
	}
	d.stats.DrawArrays++
	d.draws = append(d.draws, Draw{
		Topology:    topology,
		First:       first,
		Count:       count,
		Program:     d.program,
		VertexArray: d.vertexArray,
	})
}
