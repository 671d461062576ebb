package vm

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

// BuildLinearProgram scans flat for instructions carrying the MODULE
// property (ModuleDef by default) and slices the sequence into modules
// at each boundary, tagging each module with its delimiter's first tag
// (§4.C). This scan needs the instruction library's property table, so
// it lives here rather than in the leaf program package.
func BuildLinearProgram(flat []program.Instruction, lib *instr.Library) *program.LinearProgram {
	var bounds []program.ModuleBound
	var start = -1
	for i, inst := range flat {
		def, ok := lib.Get(inst.ID)
		if !ok || !def.Properties.Has(instr.Module) {
			continue
		}
		if start >= 0 {
			bounds = append(bounds, program.ModuleBound{Tag: flat[start].Tags[0], Begin: start, End: i})
		}
		start = i
	}
	if start >= 0 {
		bounds = append(bounds, program.ModuleBound{Tag: flat[start].Tags[0], Begin: start, End: len(flat)})
	}
	return program.NewLinearProgram(flat, bounds)
}
