package glctx

import (
	"github.com/gogpu/glctx/native"
)

// Shader stage kinds.
const (
	VertexStage   = native.StageVertex
	FragmentStage = native.StageFragment
	GeometryStage = native.StageGeometry
	ComputeStage  = native.StageCompute
)

// Stage describes one shader stage. Sources are concatenated in order; the
// shading language is the device's (GLSL for opengl, WGSL for soft).
type Stage struct {
	Kind    native.ShaderStage
	Sources []string
}

// Shader describes a program linked from pooled stages and inline stage
// sources. Inline stages are compiled for the link and released after it.
type Shader struct {
	Stages  []StageHandle
	Sources []Stage
}

// NativeStage is a compiled stage owned by a Context.
type NativeStage struct {
	dev  native.Device
	id   uint32
	kind native.ShaderStage
}

func compileStage(dev native.Device, desc Stage) (*NativeStage, error) {
	id := dev.CreateShader(desc.Kind)
	log, ok := dev.CompileShader(id, desc.Sources)
	if !ok {
		dev.DeleteShader(id)
		if log == "" {
			log = "no compiler output"
		}
		return nil, &CompileError{Stage: desc.Kind, Log: log}
	}
	return &NativeStage{dev: dev, id: id, kind: desc.Kind}, nil
}

// ID returns the device object name.
func (s *NativeStage) ID() uint32 { return s.id }

// Kind returns the pipeline stage.
func (s *NativeStage) Kind() native.ShaderStage { return s.kind }

func (s *NativeStage) release() {
	s.dev.DeleteShader(s.id)
}

// NativeShader is a linked program owned by a Context.
type NativeShader struct {
	dev native.Device
	id  uint32
}

func linkShader(dev native.Device, stages *stagePool, desc Shader) (*NativeShader, error) {
	attached := make([]*NativeStage, 0, len(desc.Stages)+len(desc.Sources))
	for _, h := range desc.Stages {
		s, ok := stages.Get(h)
		if !ok {
			return nil, notFound("stage", h)
		}
		attached = append(attached, s)
	}

	temporary := make([]*NativeStage, 0, len(desc.Sources))
	defer func() {
		for _, s := range temporary {
			s.release()
		}
	}()
	for _, src := range desc.Sources {
		s, err := compileStage(dev, src)
		if err != nil {
			return nil, err
		}
		temporary = append(temporary, s)
		attached = append(attached, s)
	}

	prog := dev.CreateProgram()
	for _, s := range attached {
		dev.AttachShader(prog, s.id)
	}
	log, ok := dev.LinkProgram(prog)
	for _, s := range attached {
		dev.DetachShader(prog, s.id)
	}
	if !ok {
		dev.DeleteProgram(prog)
		if log == "" {
			log = "no linker output"
		}
		return nil, &LinkError{Log: log}
	}
	return &NativeShader{dev: dev, id: prog}, nil
}

// ID returns the device object name.
func (s *NativeShader) ID() uint32 { return s.id }

func (s *NativeShader) bind() {
	s.dev.UseProgram(s.id)
}

func (s *NativeShader) release() {
	s.dev.DeleteProgram(s.id)
}
