package glctx

import "github.com/gogpu/glctx/genvec"

type (
	bufferKind       struct{}
	layoutKind       struct{}
	stageKind        struct{}
	shaderKind       struct{}
	renderTargetKind struct{}
)

// Handles address pooled resources. A handle of one kind cannot be passed
// where another kind is expected. The zero handle never resolves.
type (
	BufferHandle       = genvec.Handle[bufferKind]
	LayoutHandle       = genvec.Handle[layoutKind]
	StageHandle        = genvec.Handle[stageKind]
	ShaderHandle       = genvec.Handle[shaderKind]
	RenderTargetHandle = genvec.Handle[renderTargetKind]
)

// BufferPool is the pool of buffers owned by a Context.
type BufferPool = genvec.GenVec[bufferKind, *NativeBuffer]

type (
	layoutPool       = genvec.GenVec[layoutKind, *NativeLayout]
	stagePool        = genvec.GenVec[stageKind, *NativeStage]
	shaderPool       = genvec.GenVec[shaderKind, *NativeShader]
	renderTargetPool = genvec.GenVec[renderTargetKind, *NativeRenderTarget]
)
