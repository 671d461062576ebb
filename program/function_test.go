package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amlalejini/signalgp-lite/tag"
)

func TestFunctionProgramLayout(t *testing.T) {
	fnA := &Function{FnTag: tag.FromUint64(1), Body: []Instruction{{ID: 1}, {ID: 2}}}
	fnB := &Function{FnTag: tag.FromUint64(2), Body: []Instruction{{ID: 3}}}
	p := NewFunctionProgram([]*Function{fnA, fnB})

	require.Equal(t, 2, p.NumModules())
	assert.Equal(t, 3, p.Size())

	m0 := p.Module(0)
	assert.True(t, m0.Tag().Equal(tag.FromUint64(1)))
	assert.Equal(t, 2, m0.Size())
	assert.True(t, m0.IsValidPosition(0))
	assert.False(t, m0.IsValidPosition(2))
	assert.Equal(t, uint32(2), m0.Instr(1).ID)
}
