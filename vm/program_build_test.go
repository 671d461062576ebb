package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

func TestBuildLinearProgramSlicesAtModuleDefBoundaries(t *testing.T) {
	lib := instr.NewLibrary()
	RegisterDefaultInstructions(lib)

	tagA := tag.FromUint64(1)
	tagB := tag.FromUint64(2)
	flat := []program.Instruction{
		{ID: uint32(OpModuleDef), Tags: [program.NumTags]tag.Tag{tagA}},
		{ID: uint32(OpInc)},
		{ID: uint32(OpDec)},
		{ID: uint32(OpModuleDef), Tags: [program.NumTags]tag.Tag{tagB}},
		{ID: uint32(OpInc)},
	}

	p := BuildLinearProgram(flat, lib)
	require.Equal(t, 2, p.NumModules())
	assert.Equal(t, 5, p.Size(), "Size is the whole flat sequence, never a single module's length")

	m0 := p.Module(0)
	assert.Equal(t, tagA, m0.Tag())
	assert.Equal(t, 3, m0.Size(), "module 0 spans its ModuleDef plus the two instructions before the next one")

	m1 := p.Module(1)
	assert.Equal(t, tagB, m1.Tag())
	assert.Equal(t, 2, m1.Size())
}

func TestBuildLinearProgramNoDelimitersYieldsNoModules(t *testing.T) {
	lib := instr.NewLibrary()
	RegisterDefaultInstructions(lib)
	flat := []program.Instruction{{ID: uint32(OpInc)}, {ID: uint32(OpDec)}}

	p := BuildLinearProgram(flat, lib)
	assert.Equal(t, 0, p.NumModules())
	assert.Equal(t, 2, p.Size())
}

func TestBuildLinearProgramSingleTrailingModule(t *testing.T) {
	lib := instr.NewLibrary()
	RegisterDefaultInstructions(lib)
	tagA := tag.FromUint64(9)
	flat := []program.Instruction{
		{ID: uint32(OpInc)}, // instructions before the first delimiter belong to no module
		{ID: uint32(OpModuleDef), Tags: [program.NumTags]tag.Tag{tagA}},
		{ID: uint32(OpInc)},
	}

	p := BuildLinearProgram(flat, lib)
	require.Equal(t, 1, p.NumModules())
	m0 := p.Module(0)
	assert.Equal(t, 2, m0.Size())
	assert.Equal(t, uint32(OpModuleDef), m0.Instr(0).ID)
}
