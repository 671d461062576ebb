package vm

import (
	"math"

	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

func registerArithmetic(lib *instr.Library) {
	lib.Register(instr.Def{ID: uint32(OpInc), Name: "Inc", Description: "W[a0] += 1", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(0), ctx.Working(inst.Arg(0))+1)
	}})
	lib.Register(instr.Def{ID: uint32(OpDec), Name: "Dec", Description: "W[a0] -= 1", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(0), ctx.Working(inst.Arg(0))-1)
	}})
	lib.Register(instr.Def{ID: uint32(OpNot), Name: "Not", Description: "W[a0] = (W[a0]==0 ? 1 : 0)", Run: func(ctx instr.Context, inst program.Instruction) {
		if ctx.Working(inst.Arg(0)) == 0 {
			ctx.SetWorking(inst.Arg(0), 1)
		} else {
			ctx.SetWorking(inst.Arg(0), 0)
		}
	}})
	lib.Register(instr.Def{ID: uint32(OpAdd), Name: "Add", Description: "W[c] = W[a] + W[b]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(2), ctx.Working(inst.Arg(0))+ctx.Working(inst.Arg(1)))
	}})
	lib.Register(instr.Def{ID: uint32(OpSub), Name: "Sub", Description: "W[c] = W[a] - W[b]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(2), ctx.Working(inst.Arg(0))-ctx.Working(inst.Arg(1)))
	}})
	lib.Register(instr.Def{ID: uint32(OpMult), Name: "Mult", Description: "W[c] = W[a] * W[b]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(2), ctx.Working(inst.Arg(0))*ctx.Working(inst.Arg(1)))
	}})
	lib.Register(instr.Def{ID: uint32(OpDiv), Name: "Div", Description: "W[c] = W[a] / W[b]; no-op if W[b]==0", Run: func(ctx instr.Context, inst program.Instruction) {
		b := ctx.Working(inst.Arg(1))
		if b == 0 {
			return
		}
		ctx.SetWorking(inst.Arg(2), ctx.Working(inst.Arg(0))/b)
	}})
	lib.Register(instr.Def{ID: uint32(OpMod), Name: "Mod", Description: "W[c] = trunc(W[a]) mod trunc(W[b]); no-op if W[b]==0", Run: func(ctx instr.Context, inst program.Instruction) {
		b := int64(math.Trunc(ctx.Working(inst.Arg(1))))
		if b == 0 {
			return
		}
		a := int64(math.Trunc(ctx.Working(inst.Arg(0))))
		ctx.SetWorking(inst.Arg(2), float64(a%b))
	}})
}
