package opengl

import (
	"context"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/glctx/native"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func bufferTarget(t native.BufferTarget) uint32 {
	if t == native.TargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

var bufferUsages = [...]uint32{
	native.StaticDraw:  gl.STATIC_DRAW,
	native.StaticRead:  gl.STATIC_READ,
	native.StaticCopy:  gl.STATIC_COPY,
	native.DynamicDraw: gl.DYNAMIC_DRAW,
	native.DynamicRead: gl.DYNAMIC_READ,
	native.DynamicCopy: gl.DYNAMIC_COPY,
	native.StreamDraw:  gl.STREAM_DRAW,
	native.StreamRead:  gl.STREAM_READ,
	native.StreamCopy:  gl.STREAM_COPY,
}

func bufferUsage(u native.BufferUsage) uint32 {
	if int(u) < len(bufferUsages) {
		return bufferUsages[u]
	}
	return gl.STATIC_DRAW
}

func attribType(t native.AttribType) uint32 {
	switch t {
	case native.AttribUint8:
		return gl.UNSIGNED_BYTE
	case native.AttribInt8:
		return gl.BYTE
	case native.AttribUint16:
		return gl.UNSIGNED_SHORT
	case native.AttribInt16:
		return gl.SHORT
	case native.AttribUint32:
		return gl.UNSIGNED_INT
	case native.AttribInt32:
		return gl.INT
	}
	return gl.FLOAT
}

func shaderType(s native.ShaderStage) uint32 {
	switch s {
	case native.StageFragment:
		return gl.FRAGMENT_SHADER
	case native.StageGeometry:
		return gl.GEOMETRY_SHADER
	case native.StageCompute:
		return gl.COMPUTE_SHADER
	}
	return gl.VERTEX_SHADER
}

func pixelFormat(f native.PixelFormat) uint32 {
	if f == native.PixelRGB {
		return gl.RGB
	}
	return gl.RGBA
}

func pixelType(t native.PixelType) uint32 {
	if t == native.PixelFloat32 {
		return gl.FLOAT
	}
	return gl.UNSIGNED_BYTE
}

func primitiveMode(t gputypes.PrimitiveTopology) uint32 {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func debugSource(s uint32) native.DebugSource {
	switch s {
	case gl.DEBUG_SOURCE_API:
		return native.SourceAPI
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		return native.SourceWindowSystem
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		return native.SourceShaderCompiler
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		return native.SourceThirdParty
	case gl.DEBUG_SOURCE_APPLICATION:
		return native.SourceApplication
	}
	return native.SourceOther
}

func debugType(t uint32) native.DebugType {
	switch t {
	case gl.DEBUG_TYPE_ERROR:
		return native.TypeError
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		return native.TypeDeprecatedBehavior
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		return native.TypeUndefinedBehavior
	case gl.DEBUG_TYPE_PORTABILITY:
		return native.TypePortability
	case gl.DEBUG_TYPE_PERFORMANCE:
		return native.TypePerformance
	case gl.DEBUG_TYPE_MARKER:
		return native.TypeMarker
	case gl.DEBUG_TYPE_PUSH_GROUP:
		return native.TypePushGroup
	case gl.DEBUG_TYPE_POP_GROUP:
		return native.TypePopGroup
	}
	return native.TypeOther
}

func debugSeverity(s uint32) native.DebugSeverity {
	switch s {
	case gl.DEBUG_SEVERITY_HIGH:
		return native.SeverityHigh
	case gl.DEBUG_SEVERITY_MEDIUM:
		return native.SeverityMedium
	case gl.DEBUG_SEVERITY_LOW:
		return native.SeverityLow
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		return native.SeverityNotification
	}
	return native.SeverityUnknown
}
