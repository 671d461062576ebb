package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amlalejini/signalgp-lite/exec"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

func TestRegulationByTagSetAdjustClearSense(t *testing.T) {
	targetTag := tag.FromUint64(5)
	mod0 := &program.Function{Body: []program.Instruction{
		{ID: uint32(OpSetMem), Args: [program.NumArgs]int{0, 3}},
		{ID: uint32(OpSetRegulator), Args: [program.NumArgs]int{0}, Tags: [program.NumTags]tag.Tag{targetTag}},
		{ID: uint32(OpSetMem), Args: [program.NumArgs]int{0, 1}},
		{ID: uint32(OpAdjRegulator), Args: [program.NumArgs]int{0}, Tags: [program.NumTags]tag.Tag{targetTag}},
		{ID: uint32(OpSenseRegulator), Args: [program.NumArgs]int{1}, Tags: [program.NumTags]tag.Tag{targetTag}},
	}}
	mod1 := &program.Function{FnTag: targetTag, Body: []program.Instruction{{ID: uint32(OpInc)}}}
	prog := program.NewFunctionProgram([]*program.Function{mod0, mod1})
	s := newTestStepper(t, prog)
	s.Matches.SetModules([]uint64{0, 1}, []tag.Tag{tag.Tag{}, targetTag})

	es := exec.NewExecState()
	require.True(t, s.InitThread(es, 0))
	for i := 0; i < 5; i++ {
		died := s.Step(es)
		require.False(t, died)
	}

	assert.Equal(t, 4.0, es.TopCall().Memory.GetWorking(1), "SenseRegulator should read the accumulated 3+1 bias")
	assert.Equal(t, 4.0, s.Matches.ViewRegulator(1))
}

func TestRegulationClearResetsToZero(t *testing.T) {
	targetTag := tag.FromUint64(6)
	mod0 := &program.Function{Body: []program.Instruction{
		{ID: uint32(OpSetMem), Args: [program.NumArgs]int{0, 9}},
		{ID: uint32(OpSetRegulator), Args: [program.NumArgs]int{0}, Tags: [program.NumTags]tag.Tag{targetTag}},
		{ID: uint32(OpClearRegulator), Tags: [program.NumTags]tag.Tag{targetTag}},
	}}
	mod1 := &program.Function{FnTag: targetTag, Body: []program.Instruction{{ID: uint32(OpInc)}}}
	prog := program.NewFunctionProgram([]*program.Function{mod0, mod1})
	s := newTestStepper(t, prog)
	s.Matches.SetModules([]uint64{0, 1}, []tag.Tag{tag.Tag{}, targetTag})

	es := exec.NewExecState()
	require.True(t, s.InitThread(es, 0))
	for i := 0; i < 3; i++ {
		died := s.Step(es)
		require.False(t, died)
	}
	assert.Equal(t, 0.0, s.Matches.ViewRegulator(1))
}

func TestRegulationOwnVariantActsOnExecutingModule(t *testing.T) {
	mod0 := &program.Function{Body: []program.Instruction{
		{ID: uint32(OpSetMem), Args: [program.NumArgs]int{0, 2}},
		{ID: uint32(OpSetOwnRegulator), Args: [program.NumArgs]int{0}},
	}}
	prog := program.NewFunctionProgram([]*program.Function{mod0})
	s := newTestStepper(t, prog)
	s.Matches.SetModules([]uint64{0}, []tag.Tag{tag.Tag{}})

	es := runInstructions(t, s, 2)
	_ = es
	assert.Equal(t, 2.0, s.Matches.ViewRegulator(0), "OwnRegulator variants target the currently executing module, not a tag lookup")
}

func TestRegulationByTagNoMatchIsNoop(t *testing.T) {
	mod0 := &program.Function{Body: []program.Instruction{
		{ID: uint32(OpSetRegulator), Args: [program.NumArgs]int{0}, Tags: [program.NumTags]tag.Tag{tag.FromUint64(777)}},
	}}
	prog := program.NewFunctionProgram([]*program.Function{mod0})
	s := newTestStepper(t, prog) // empty match store: nothing can ever match
	es := runInstructions(t, s, 1)
	_ = es
	assert.Equal(t, 0.0, s.Matches.ViewRegulator(0))
}
