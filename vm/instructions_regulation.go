package vm

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

// registerRegulation wires the twelve regulation instructions §6 names
// only in outline; concrete arg wiring is this port's choice, recorded
// in DESIGN.md. By-tag variants resolve their target module id via
// match_raw (so regulation decisions are never themselves regulated,
// §6); "own" variants act on the currently executing call's own module
// directly, bypassing tag lookup entirely. Set and Adj take their value
// from W[a0], Sense writes the regulator's value into W[a0], and Inc/Dec
// adjust by +1/-1.
func registerRegulation(lib *instr.Library) {
	byTag := func(op Opcode, name string, apply func(ctx instr.Context, id uint64, inst program.Instruction)) {
		lib.Register(instr.Def{ID: uint32(op), Name: name, Run: func(ctx instr.Context, inst program.Instruction) {
			hits := ctx.MatchRaw(inst.Tag(0), 1)
			if len(hits) == 0 {
				return
			}
			apply(ctx, hits[0], inst)
		}})
	}
	own := func(op Opcode, name string, apply func(ctx instr.Context, id uint64, inst program.Instruction)) {
		lib.Register(instr.Def{ID: uint32(op), Name: name, Run: func(ctx instr.Context, inst program.Instruction) {
			apply(ctx, uint64(ctx.CurrentModule()), inst)
		}})
	}

	setFn := func(ctx instr.Context, id uint64, inst program.Instruction) {
		ctx.SetRegulator(id, ctx.Working(inst.Arg(0)))
	}
	adjFn := func(ctx instr.Context, id uint64, inst program.Instruction) {
		ctx.AdjustRegulator(id, ctx.Working(inst.Arg(0)))
	}
	incFn := func(ctx instr.Context, id uint64, inst program.Instruction) {
		ctx.AdjustRegulator(id, 1)
	}
	decFn := func(ctx instr.Context, id uint64, inst program.Instruction) {
		ctx.AdjustRegulator(id, -1)
	}
	clearFn := func(ctx instr.Context, id uint64, inst program.Instruction) {
		ctx.ClearRegulator(id)
	}
	senseFn := func(ctx instr.Context, id uint64, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(0), ctx.ViewRegulator(id))
	}

	byTag(OpSetRegulator, "SetRegulator", setFn)
	byTag(OpAdjRegulator, "AdjRegulator", adjFn)
	byTag(OpIncRegulator, "IncRegulator", incFn)
	byTag(OpDecRegulator, "DecRegulator", decFn)
	byTag(OpClearRegulator, "ClearRegulator", clearFn)
	byTag(OpSenseRegulator, "SenseRegulator", senseFn)

	own(OpSetOwnRegulator, "SetOwnRegulator", setFn)
	own(OpAdjOwnRegulator, "AdjOwnRegulator", adjFn)
	own(OpIncOwnRegulator, "IncOwnRegulator", incFn)
	own(OpDecOwnRegulator, "DecOwnRegulator", decFn)
	own(OpClearOwnRegulator, "ClearOwnRegulator", clearFn)
	own(OpSenseOwnRegulator, "SenseOwnRegulator", senseFn)
}
