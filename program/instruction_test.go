package program

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amlalejini/signalgp-lite/tag"
)

func TestInstructionAccessors(t *testing.T) {
	tg := tag.FromUint64(7)
	inst := Instruction{ID: 3, Args: [NumArgs]int{1, 2, 3}, Tags: [NumTags]tag.Tag{tg}}
	assert.Equal(t, 1, inst.Arg(0))
	assert.Equal(t, 2, inst.Arg(1))
	assert.Equal(t, 3, inst.Arg(2))
	assert.True(t, tg.Equal(inst.Tag(0)))
}
