package glctx

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glctx/native"
)

func TestBufferUsage(t *testing.T) {
	tests := []struct {
		access Access
		usage  Usage
		want   native.BufferUsage
	}{
		{AccessOnce, UsageWrite, native.StaticDraw},
		{AccessOnce, UsageRead, native.StaticRead},
		{AccessOnce, UsageCopy, native.StaticCopy},
		{AccessFrequent, UsageWrite, native.DynamicDraw},
		{AccessFrequent, UsageRead, native.DynamicRead},
		{AccessFrequent, UsageCopy, native.DynamicCopy},
		{AccessAlways, UsageWrite, native.StreamDraw},
		{AccessAlways, UsageRead, native.StreamRead},
		{AccessAlways, UsageCopy, native.StreamCopy},
	}
	for _, tt := range tests {
		if got := bufferUsage(tt.access, tt.usage); got != tt.want {
			t.Errorf("bufferUsage(%d, %d) = %v, want %v", tt.access, tt.usage, got, tt.want)
		}
	}
}

func TestBufferOf(t *testing.T) {
	b := BufferOf(ArrayBuffer, AccessOnce, UsageWrite, [][3]float32{{1, 2, 3}, {4, 5, 6}})
	if len(b.Data) != 24 {
		t.Errorf("len(Data) = %d, want 24", len(b.Data))
	}

	empty := BufferOf[float32](ElementArrayBuffer, AccessOnce, UsageWrite, nil)
	if empty.Data != nil || empty.Kind != ElementArrayBuffer {
		t.Errorf("BufferOf(nil) = %+v", empty)
	}
}

func TestVertexBufferOf(t *testing.T) {
	type vertex struct {
		X, Y float32
		RGBA [4]uint8
	}
	b, err := VertexBufferOf(ArrayBuffer, AccessOnce, UsageWrite, []vertex{{1, 2, [4]uint8{3, 4, 5, 6}}, {}})
	if err != nil {
		t.Fatalf("VertexBufferOf() = %v", err)
	}
	if len(b.Data) != 24 {
		t.Errorf("len(Data) = %d, want 24", len(b.Data))
	}
	if b.Data[8] != 3 || b.Data[11] != 6 {
		t.Errorf("color bytes = %v, want [3 4 5 6]", b.Data[8:12])
	}
}

func TestVertexBufferOfRejectsReferences(t *testing.T) {
	type named struct {
		Pos  [3]float32
		Name string
	}
	type linked struct {
		Pos  [3]float32
		Next *linked
	}
	type nested struct {
		Inner struct{ Weights []float32 }
	}
	check := func(name string, err error) {
		t.Helper()
		var cerr *ConversionError
		if !errors.As(err, &cerr) {
			t.Errorf("VertexBufferOf(%s) error = %v, want *ConversionError", name, err)
		}
	}
	_, err := VertexBufferOf(ArrayBuffer, AccessOnce, UsageWrite, []named{{}})
	check("string field", err)
	_, err = VertexBufferOf(ArrayBuffer, AccessOnce, UsageWrite, []linked{{}})
	check("pointer field", err)
	_, err = VertexBufferOf(ArrayBuffer, AccessOnce, UsageWrite, []nested{{}})
	check("nested slice", err)
	_, err = VertexBufferOf(ArrayBuffer, AccessOnce, UsageWrite, []any{1})
	check("interface", err)
}

func TestInt32Field(t *testing.T) {
	big := math.MaxInt32
	if n, err := int32Field(big, "x"); err != nil || n != math.MaxInt32 {
		t.Errorf("int32Field(MaxInt32) = %d, %v", n, err)
	}
	big++
	for _, n := range []int{-1, big} {
		_, err := int32Field(n, "buffer length into i32")
		var cerr *ConversionError
		if !errors.As(err, &cerr) || cerr.Field != "buffer length into i32" {
			t.Errorf("int32Field(%d) error = %v", n, err)
		}
	}
}

func TestCreateEmptyBuffer(t *testing.T) {
	ctx, dev := newTestContext(t)
	dev.ResetStats()

	h, err := ctx.CreateBuffer(Buffer{Kind: ElementArrayBuffer})
	if err != nil {
		t.Fatalf("CreateBuffer() = %v", err)
	}
	b, _ := ctx.Buffer(h)
	if b.Len() != 0 || b.Kind() != ElementArrayBuffer {
		t.Errorf("buffer = len %d kind %d, want empty element array", b.Len(), b.Kind())
	}
	if got := dev.Stats().BufferData; got != 0 {
		t.Errorf("BufferData calls = %d, want 0", got)
	}
	if got := b.ReadBack(); len(got) != 0 {
		t.Errorf("ReadBack() = %v, want empty", got)
	}
}
