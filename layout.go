package glctx

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx/native"
)

// ElementType is the scalar type of one attribute component.
type ElementType uint8

// Element types.
const (
	Float32 ElementType = iota
	Uint8
	Int8
	Uint16
	Int16
	Uint32
	Int32
)

// Size returns the size of one component in bytes.
func (t ElementType) Size() int {
	switch t {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	}
	return 4
}

func (t ElementType) native() native.AttribType {
	switch t {
	case Uint8:
		return native.AttribUint8
	case Int8:
		return native.AttribInt8
	case Uint16:
		return native.AttribUint16
	case Int16:
		return native.AttribInt16
	case Uint32:
		return native.AttribUint32
	case Int32:
		return native.AttribInt32
	}
	return native.AttribFloat32
}

// VertexAttribute describes one attribute of a vertex record.
type VertexAttribute struct {
	// Location is the shader input location.
	Location uint32
	// Components is the number of components, 1 to 4.
	Components int
	Type       ElementType
	// Normalized maps integer components to [0, 1] or [-1, 1].
	Normalized bool
	// Offset is the byte offset of the attribute within one vertex.
	Offset uint32
}

// Size returns the size of the attribute in bytes.
func (a VertexAttribute) Size() int { return a.Type.Size() * a.Components }

type formatKey struct {
	t    ElementType
	n    int
	norm bool
}

var vertexFormats = map[formatKey]gputypes.VertexFormat{
	{Float32, 1, false}: gputypes.VertexFormatFloat32,
	{Float32, 2, false}: gputypes.VertexFormatFloat32x2,
	{Float32, 3, false}: gputypes.VertexFormatFloat32x3,
	{Float32, 4, false}: gputypes.VertexFormatFloat32x4,
	{Uint8, 2, false}:   gputypes.VertexFormatUint8x2,
	{Uint8, 4, false}:   gputypes.VertexFormatUint8x4,
	{Uint8, 2, true}:    gputypes.VertexFormatUnorm8x2,
	{Uint8, 4, true}:    gputypes.VertexFormatUnorm8x4,
	{Int8, 2, false}:    gputypes.VertexFormatSint8x2,
	{Int8, 4, false}:    gputypes.VertexFormatSint8x4,
	{Int8, 2, true}:     gputypes.VertexFormatSnorm8x2,
	{Int8, 4, true}:     gputypes.VertexFormatSnorm8x4,
	{Uint16, 2, false}:  gputypes.VertexFormatUint16x2,
	{Uint16, 4, false}:  gputypes.VertexFormatUint16x4,
	{Uint16, 2, true}:   gputypes.VertexFormatUnorm16x2,
	{Uint16, 4, true}:   gputypes.VertexFormatUnorm16x4,
	{Int16, 2, false}:   gputypes.VertexFormatSint16x2,
	{Int16, 4, false}:   gputypes.VertexFormatSint16x4,
	{Int16, 2, true}:    gputypes.VertexFormatSnorm16x2,
	{Int16, 4, true}:    gputypes.VertexFormatSnorm16x4,
	{Uint32, 1, false}:  gputypes.VertexFormatUint32,
	{Uint32, 2, false}:  gputypes.VertexFormatUint32x2,
	{Uint32, 3, false}:  gputypes.VertexFormatUint32x3,
	{Uint32, 4, false}:  gputypes.VertexFormatUint32x4,
	{Int32, 1, false}:   gputypes.VertexFormatSint32,
	{Int32, 2, false}:   gputypes.VertexFormatSint32x2,
	{Int32, 3, false}:   gputypes.VertexFormatSint32x3,
	{Int32, 4, false}:   gputypes.VertexFormatSint32x4,
}

// Format returns the equivalent WebGPU vertex format, or
// gputypes.VertexFormatUndefined when there is none.
func (a VertexAttribute) Format() gputypes.VertexFormat {
	norm := a.Normalized && a.Type != Float32
	if f, ok := vertexFormats[formatKey{a.Type, a.Components, norm}]; ok {
		return f
	}
	return gputypes.VertexFormatUndefined
}

// Stride is the byte distance between consecutive vertices of an attribute
// set. The zero value is Interleaved.
type Stride struct {
	bytes    int
	explicit bool
}

// Interleaved computes the stride from the attributes of the set.
func Interleaved() Stride { return Stride{} }

// Bytes is an explicit stride of n bytes.
func Bytes(n int) Stride { return Stride{bytes: n, explicit: true} }

// IsInterleaved reports whether the stride is computed.
func (s Stride) IsInterleaved() bool { return !s.explicit }

func (s Stride) String() string {
	if s.explicit {
		return fmt.Sprintf("Bytes(%d)", s.bytes)
	}
	return "Interleaved"
}

// AttributeSet is a group of attributes read from one buffer binding point.
type AttributeSet struct {
	Attributes []VertexAttribute
	// Buffer is the vertex buffer; the zero handle leaves the binding empty.
	Buffer BufferHandle
	Stride Stride
	// Offset is the byte offset of the first vertex in Buffer.
	Offset int
}

// Push appends attributes to the set.
func (s *AttributeSet) Push(attrs ...VertexAttribute) {
	s.Attributes = append(s.Attributes, attrs...)
}

// ByteStride returns the explicit stride, or the sum of the attribute sizes
// for an interleaved set. It is computed on every call.
func (s AttributeSet) ByteStride() int {
	if s.Stride.explicit {
		return s.Stride.bytes
	}
	n := 0
	for _, a := range s.Attributes {
		n += a.Size()
	}
	return n
}

// BufferLayout describes the set as a WebGPU vertex buffer layout.
func (s AttributeSet) BufferLayout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(s.Attributes))
	for i, a := range s.Attributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format(),
			Offset:         uint64(a.Offset),
			ShaderLocation: a.Location,
		}
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(max(s.ByteStride(), 0)),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// VertexLayout describes the vertex inputs of a draw: one attribute set per
// buffer binding point, in binding order.
type VertexLayout struct {
	Sets []AttributeSet
}

// Push appends an attribute set and returns its binding index.
func (l *VertexLayout) Push(set AttributeSet) int {
	l.Sets = append(l.Sets, set)
	return len(l.Sets) - 1
}

// NativeLayout is a vertex array object owned by a Context.
type NativeLayout struct {
	ctx    *Context
	handle LayoutHandle
	vao    uint32
	sets   []AttributeSet
}

// vertexBinding holds the checked native arguments of one buffer binding.
type vertexBinding struct {
	buffer uint32
	offset int
	stride int32
}

func resolveBinding(buffers *BufferPool, set AttributeSet) (vertexBinding, error) {
	b, ok := buffers.Get(set.Buffer)
	if !ok {
		return vertexBinding{}, notFound("buffer", set.Buffer)
	}
	if set.Offset < 0 {
		return vertexBinding{}, conversionError("buffer offset into isize")
	}
	stride, err := int32Field(set.ByteStride(), "stride into i32")
	if err != nil {
		return vertexBinding{}, err
	}
	return vertexBinding{buffer: b.id, offset: set.Offset, stride: stride}, nil
}

func newNativeLayout(ctx *Context, desc VertexLayout) (*NativeLayout, error) {
	dev, buffers := ctx.dev, ctx.buffers
	bindings := make([]*vertexBinding, len(desc.Sets))
	for i, set := range desc.Sets {
		for _, a := range set.Attributes {
			if a.Components < 1 || a.Components > 4 {
				return nil, conversionError("attribute components into 1..4")
			}
		}
		if set.Buffer.IsZero() {
			continue
		}
		vb, err := resolveBinding(buffers, set)
		if err != nil {
			return nil, err
		}
		bindings[i] = &vb
	}

	l := &NativeLayout{
		ctx:  ctx,
		vao:  dev.CreateVertexArray(),
		sets: cloneSets(desc.Sets),
	}
	dev.BindVertexArray(l.vao)
	for i, set := range l.sets {
		for _, a := range set.Attributes {
			dev.VertexAttribFormat(a.Location, int32(a.Components), a.Type.native(), a.Normalized, a.Offset)
			dev.VertexAttribBinding(a.Location, uint32(i))
			dev.EnableVertexAttrib(a.Location)
		}
		if vb := bindings[i]; vb != nil {
			dev.BindVertexBuffer(uint32(i), vb.buffer, vb.offset, vb.stride)
		}
	}
	return l, nil
}

func cloneSets(sets []AttributeSet) []AttributeSet {
	out := make([]AttributeSet, len(sets))
	for i, s := range sets {
		out[i] = s
		out[i].Attributes = append([]VertexAttribute(nil), s.Attributes...)
	}
	return out
}

// ID returns the device object name.
func (l *NativeLayout) ID() uint32 { return l.vao }

// Sets returns a copy of the attribute sets.
func (l *NativeLayout) Sets() []AttributeSet { return cloneSets(l.sets) }

// SetBuffer points attribute set index at another buffer. The layout is
// bound through the bind-state cache first, so a layout obtained with
// Context.Layout can be re-pointed too. A removed layout fails with
// ErrResourceNotFound.
func (l *NativeLayout) SetBuffer(buffers *BufferPool, index int, buffer BufferHandle, stride Stride, offset int) error {
	if err := l.ctx.bindLayout(l.handle); err != nil {
		return err
	}
	if index < 0 || index >= len(l.sets) {
		return fmt.Errorf("%w: attribute set %d of %d", ErrResourceNotFound, index, len(l.sets))
	}
	set := l.sets[index]
	set.Buffer = buffer
	set.Stride = stride
	set.Offset = offset
	vb, err := resolveBinding(buffers, set)
	if err != nil {
		return err
	}
	l.ctx.dev.BindVertexBuffer(uint32(index), vb.buffer, vb.offset, vb.stride)
	l.sets[index] = set
	return nil
}

func (l *NativeLayout) bind() {
	l.ctx.dev.BindVertexArray(l.vao)
}

func (l *NativeLayout) release() {
	l.ctx.dev.DeleteVertexArray(l.vao)
}
