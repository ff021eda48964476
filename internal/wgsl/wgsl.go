// Package wgsl validates and compiles WGSL programs with naga.
//
// Check is run before a program reaches the GPU so that a broken shader
// fails with a source-level message instead of a pipeline creation error.
package wgsl

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/quad"
)

// Program is a validated WGSL module.
type Program struct {
	Source string
	Module *ir.Module
}

// Check parses, lowers and validates source, then verifies the entry points
// the cell pipeline binds: vertexEntry must be a vertex stage taking a
// vec2<f32> at @location(0), fragmentEntry must be a fragment stage.
//
// All errors wrap quad.ErrInvalidShader.
func Check(source, vertexEntry, fragmentEntry string) (*Program, error) {
	ast, err := naga.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quad.ErrInvalidShader, err)
	}

	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quad.ErrInvalidShader, err)
	}

	verrs, err := naga.Validate(module)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quad.ErrInvalidShader, err)
	}
	if len(verrs) > 0 {
		return nil, fmt.Errorf("%w: %w", quad.ErrInvalidShader, verrs[0])
	}

	vs, err := entryPoint(module, vertexEntry, ir.StageVertex)
	if err != nil {
		return nil, err
	}
	if err := checkVertexInput(module, vs); err != nil {
		return nil, err
	}
	if _, err := entryPoint(module, fragmentEntry, ir.StageFragment); err != nil {
		return nil, err
	}

	return &Program{Source: source, Module: module}, nil
}

// CheckCell validates source against the cell entry point names.
func CheckCell(source string) (*Program, error) {
	return Check(source, quad.VertexEntryPoint, quad.FragmentEntryPoint)
}

// CompileSPIRVBinary compiles source to a SPIR-V module in its file
// encoding: little-endian 32-bit words.
func CompileSPIRVBinary(source string) ([]byte, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", quad.ErrInvalidShader, err)
	}
	if len(spirv)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V size %d is not word aligned", quad.ErrInvalidShader, len(spirv))
	}
	return spirv, nil
}

// CompileSPIRV compiles source to SPIR-V words.
func CompileSPIRV(source string) ([]uint32, error) {
	spirv, err := CompileSPIRVBinary(source)
	if err != nil {
		return nil, err
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return words, nil
}

// StageName returns the WGSL attribute name of a stage.
func StageName(s ir.ShaderStage) string {
	switch s {
	case ir.StageVertex:
		return "vertex"
	case ir.StageFragment:
		return "fragment"
	case ir.StageCompute:
		return "compute"
	default:
		return fmt.Sprintf("stage(%d)", s)
	}
}

func entryPoint(m *ir.Module, name string, stage ir.ShaderStage) (*ir.EntryPoint, error) {
	for i := range m.EntryPoints {
		ep := &m.EntryPoints[i]
		if ep.Name != name {
			continue
		}
		if ep.Stage != stage {
			return nil, fmt.Errorf("%w: entry point %q is @%s, want @%s",
				quad.ErrInvalidShader, name, StageName(ep.Stage), StageName(stage))
		}
		return ep, nil
	}
	return nil, fmt.Errorf("%w: missing @%s entry point %q", quad.ErrInvalidShader, StageName(stage), name)
}

// checkVertexInput verifies that ep reads a vec2<f32> at @location(0),
// the only attribute the cell vertex buffer provides. Any other located
// input would have no buffer behind it.
func checkVertexInput(m *ir.Module, ep *ir.EntryPoint) error {
	found := false
	for _, arg := range ep.Function.Arguments {
		if arg.Binding == nil {
			continue
		}
		loc, ok := (*arg.Binding).(ir.LocationBinding)
		if !ok {
			continue
		}
		if loc.Location != 0 {
			return fmt.Errorf("%w: %q reads @location(%d), only @location(0) is provided",
				quad.ErrInvalidShader, ep.Name, loc.Location)
		}
		if !isVec2f(m, arg.Type) {
			return fmt.Errorf("%w: %q @location(0) must be vec2<f32>", quad.ErrInvalidShader, ep.Name)
		}
		found = true
	}
	if !found {
		return fmt.Errorf("%w: %q does not read @location(0)", quad.ErrInvalidShader, ep.Name)
	}
	return nil
}

func isVec2f(m *ir.Module, h ir.TypeHandle) bool {
	if int(h) >= len(m.Types) {
		return false
	}
	v, ok := m.Types[h].Inner.(ir.VectorType)
	return ok && v.Size == ir.Vec2 && v.Scalar.Kind == ir.ScalarFloat && v.Scalar.Width == 4
}
