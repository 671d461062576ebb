package vm

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

// RegisterDefaultInstructions registers every built-in instruction in
// the fixed order opcodes.go declares them, so each Def.ID lines up
// with its Opcode constant.
func RegisterDefaultInstructions(lib *instr.Library) {
	lib.Register(instr.Def{ID: uint32(OpModuleDef), Name: "ModuleDef", Description: "demarcates a module boundary in a linear program; no-op at dispatch time", Properties: instr.Module, Run: func(ctx instr.Context, inst program.Instruction) {}})

	registerArithmetic(lib)
	registerComparisons(lib)
	registerMemoryBridges(lib)
	registerControl(lib)
	registerRegulation(lib)
}
