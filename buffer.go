package glctx

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/gogpu/glctx/native"
)

// BufferKind is the binding target of a buffer.
type BufferKind uint8

// Buffer kinds.
const (
	// ArrayBuffer holds vertex attribute data.
	ArrayBuffer BufferKind = iota
	// ElementArrayBuffer holds vertex indices.
	ElementArrayBuffer
)

func (k BufferKind) native() native.BufferTarget {
	if k == ElementArrayBuffer {
		return native.TargetElementArray
	}
	return native.TargetArray
}

// Access is how often the buffer contents are replaced.
type Access uint8

// Access frequencies.
const (
	// AccessOnce: written once, used many times.
	AccessOnce Access = iota
	// AccessFrequent: rewritten occasionally, used many times.
	AccessFrequent
	// AccessAlways: rewritten for about every use.
	AccessAlways
)

// Usage is what the buffer contents are used for.
type Usage uint8

// Buffer usages.
const (
	// UsageWrite: written by the application, read by the device.
	UsageWrite Usage = iota
	// UsageRead: written by the device, read back by the application.
	UsageRead
	// UsageCopy: written and read by the device.
	UsageCopy
)

func bufferUsage(a Access, u Usage) native.BufferUsage {
	if a > AccessAlways {
		a = AccessOnce
	}
	if u > UsageCopy {
		u = UsageWrite
	}
	// native usages are laid out access-major, usage-minor.
	return native.BufferUsage(uint8(a)*3 + uint8(u))
}

// Buffer describes a buffer to create. Data, when non-empty, is uploaded at
// creation.
type Buffer struct {
	Kind   BufferKind
	Access Access
	Usage  Usage
	Data   []byte
}

// Flat is the element constraint of BufferOf: fixed-size numbers and
// arrays of up to four of them, none of which hold pointers.
type Flat interface {
	Scalar | [2]float32 | [3]float32 | [4]float32 |
		[2]int32 | [3]int32 | [4]int32 | [2]uint32 | [3]uint32 | [4]uint32 |
		[2]uint16 | [4]uint16 | [2]uint8 | [4]uint8
}

// Scalar is a fixed-size number.
type Scalar interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 |
		~int64 | ~uint64 | ~float32 | ~float64
}

// BufferOf returns a Buffer whose Data aliases the memory of values.
func BufferOf[T Flat](kind BufferKind, access Access, usage Usage, values []T) Buffer {
	return bufferOf(kind, access, usage, values)
}

// VertexBufferOf is BufferOf for vertex structs. T must contain only
// numbers, bools, and arrays or structs of them; any pointer, slice, string,
// map, channel, function or interface fails with a ConversionError.
func VertexBufferOf[T any](kind BufferKind, access Access, usage Usage, values []T) (Buffer, error) {
	typ := reflect.TypeFor[T]()
	if !flatType(typ) {
		return Buffer{}, conversionError(typ.String() + " into bytes")
	}
	return bufferOf(kind, access, usage, values), nil
}

func bufferOf[T any](kind BufferKind, access Access, usage Usage, values []T) Buffer {
	var zero T
	n := len(values) * int(unsafe.Sizeof(zero))
	var data []byte
	if n > 0 {
		data = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(values))), n)
	}
	return Buffer{Kind: kind, Access: access, Usage: usage, Data: data}
}

// flatType reports whether values of t hold no references to other memory.
func flatType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Array:
		return flatType(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !flatType(t.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

// int32Field converts n for a native parameter of type int32.
func int32Field(n int, field string) (int32, error) {
	if n < 0 || n > math.MaxInt32 {
		return 0, conversionError(field)
	}
	return int32(n), nil
}

// NativeBuffer is a buffer object owned by a Context.
type NativeBuffer struct {
	dev    native.Device
	id     uint32
	kind   BufferKind
	usage  native.BufferUsage
	length int
}

func newNativeBuffer(dev native.Device, desc Buffer) (*NativeBuffer, error) {
	if _, err := int32Field(len(desc.Data), "buffer length into i32"); err != nil {
		return nil, err
	}
	b := &NativeBuffer{
		dev:   dev,
		id:    dev.CreateBuffer(),
		kind:  desc.Kind,
		usage: bufferUsage(desc.Access, desc.Usage),
	}
	if len(desc.Data) > 0 {
		dev.BufferData(b.kind.native(), b.id, desc.Data, b.usage)
		b.length = len(desc.Data)
	}
	return b, nil
}

// ID returns the device object name.
func (b *NativeBuffer) ID() uint32 { return b.id }

// Kind returns the binding target.
func (b *NativeBuffer) Kind() BufferKind { return b.kind }

// Len returns the size of the buffer storage in bytes.
func (b *NativeBuffer) Len() int { return b.length }

// SetData replaces the buffer storage with data.
func (b *NativeBuffer) SetData(data []byte) error {
	if _, err := int32Field(len(data), "buffer length into i32"); err != nil {
		return err
	}
	b.dev.BufferData(b.kind.native(), b.id, data, b.usage)
	b.length = len(data)
	return nil
}

// ReadBack copies the buffer storage out of the device.
func (b *NativeBuffer) ReadBack() []byte {
	out := make([]byte, b.length)
	b.dev.ReadBuffer(b.kind.native(), b.id, 0, out)
	return out
}

func (b *NativeBuffer) release() {
	b.dev.DeleteBuffer(b.id)
}
