package soft

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"

	"github.com/gogpu/glctx/native"
)

// Stages are written in WGSL. Each stage object must declare an entry point
// for its own pipeline stage.

type shader struct {
	stage    native.ShaderStage
	compiled bool
	entry    string
}

type program struct {
	attached map[uint32]*shader
	linked   bool
}

var irStages = map[native.ShaderStage]ir.ShaderStage{
	native.StageVertex:   ir.StageVertex,
	native.StageFragment: ir.StageFragment,
	native.StageCompute:  ir.StageCompute,
}

// CreateShader allocates a stage object.
func (d *Device) CreateShader(stage native.ShaderStage) uint32 {
	id := d.allocID()
	d.shaders[id] = &shader{stage: stage}
	return id
}

// CompileShader parses, lowers and validates the concatenated WGSL sources.
func (d *Device) CompileShader(id uint32, sources []string) (string, bool) {
	s, ok := d.shaders[id]
	if !ok {
		d.invalidValue("shader %d does not exist", id)
		return "", false
	}
	entry, err := d.compile(s.stage, strings.Join(sources, ""))
	if err != nil {
		s.compiled = false
		d.log.Debug("soft: stage compile failed", "shader", id, "stage", s.stage.String(), "err", err)
		return err.Error(), false
	}
	s.compiled = true
	s.entry = entry
	return "", true
}

type compileKey struct {
	stage  native.ShaderStage
	source string
}

type compileResult struct {
	entry string
	err   error
}

// compile returns the entry point of source for stage, reusing the outcome
// of an earlier compile of the same source.
func (d *Device) compile(stage native.ShaderStage, source string) (string, error) {
	key := compileKey{stage, source}
	if r, ok := d.compiled.Get(key); ok {
		return r.entry, r.err
	}
	d.stats.Compiles++
	entry, err := compileWGSL(stage, source)
	d.compiled.Add(key, compileResult{entry, err})
	return entry, err
}

func compileWGSL(stage native.ShaderStage, source string) (string, error) {
	want, ok := irStages[stage]
	if !ok {
		return "", fmt.Errorf("%s stages are not supported", stage)
	}
	ast, err := naga.Parse(source)
	if err != nil {
		return "", err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return "", err
	}
	verrs, err := naga.Validate(module)
	if err != nil {
		return "", err
	}
	if len(verrs) > 0 {
		return "", fmt.Errorf("validation failed: %s", verrs[0].Error())
	}
	for _, ep := range module.EntryPoints {
		if ep.Stage == want {
			return ep.Name, nil
		}
	}
	return "", fmt.Errorf("no %s entry point", stage)
}

// DeleteShader frees a stage object. Programs it is attached to keep it
// until it is detached.
func (d *Device) DeleteShader(id uint32) {
	delete(d.shaders, id)
}

// CreateProgram allocates a program object.
func (d *Device) CreateProgram() uint32 {
	id := d.allocID()
	d.programs[id] = &program{attached: make(map[uint32]*shader)}
	return id
}

// AttachShader attaches a stage to a program.
func (d *Device) AttachShader(prog, sh uint32) {
	p, ok := d.programs[prog]
	if !ok {
		d.invalidValue("program %d does not exist", prog)
		return
	}
	s, ok := d.shaders[sh]
	if !ok {
		d.invalidValue("shader %d does not exist", sh)
		return
	}
	if _, dup := p.attached[sh]; dup {
		d.invalidOperation("shader %d is already attached to program %d", sh, prog)
		return
	}
	p.attached[sh] = s
}

// DetachShader detaches a stage from a program.
func (d *Device) DetachShader(prog, sh uint32) {
	p, ok := d.programs[prog]
	if !ok {
		d.invalidValue("program %d does not exist", prog)
		return
	}
	if _, ok := p.attached[sh]; !ok {
		d.invalidOperation("shader %d is not attached to program %d", sh, prog)
		return
	}
	delete(p.attached, sh)
}

// LinkProgram links the attached stages. A program needs either a vertex
// and a fragment stage, or a single compute stage.
func (d *Device) LinkProgram(prog uint32) (string, bool) {
	p, ok := d.programs[prog]
	if !ok {
		d.invalidValue("program %d does not exist", prog)
		return "", false
	}
	p.linked = false

	ids := make([]uint32, 0, len(p.attached))
	for id := range p.attached {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	stages := make(map[native.ShaderStage]int)
	for _, id := range ids {
		s := p.attached[id]
		if !s.compiled {
			return fmt.Sprintf("error: shader %d has not been compiled successfully", id), false
		}
		stages[s.stage]++
	}
	for stage, n := range stages {
		if n > 1 {
			return fmt.Sprintf("error: %d %s stages attached, want one", n, stage), false
		}
	}

	switch {
	case stages[native.StageCompute] == 1:
		if len(stages) > 1 {
			return "error: compute stage linked with graphics stages", false
		}
	case stages[native.StageVertex] == 0:
		return "error: program has no vertex stage", false
	case stages[native.StageFragment] == 0:
		return "error: program has no fragment stage", false
	}
	p.linked = true
	return "", true
}

// DeleteProgram frees a program. Deleting the current one unbinds it.
func (d *Device) DeleteProgram(prog uint32) {
	delete(d.programs, prog)
	if d.program == prog {
		d.program = 0
	}
}
