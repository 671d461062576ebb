package vm

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

func registerMemoryBridges(lib *instr.Library) {
	lib.Register(instr.Def{ID: uint32(OpSetMem), Name: "SetMem", Description: "W[a0] = a1", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(0), float64(inst.Arg(1)))
	}})
	lib.Register(instr.Def{ID: uint32(OpCopyMem), Name: "CopyMem", Description: "W[a1] = W[a0]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(1), ctx.Working(inst.Arg(0)))
	}})
	lib.Register(instr.Def{ID: uint32(OpSwapMem), Name: "SwapMem", Description: "swap W[a0], W[a1]", Run: func(ctx instr.Context, inst program.Instruction) {
		a, b := inst.Arg(0), inst.Arg(1)
		av, bv := ctx.Working(a), ctx.Working(b)
		ctx.SetWorking(a, bv)
		ctx.SetWorking(b, av)
	}})
	lib.Register(instr.Def{ID: uint32(OpInputToWorking), Name: "InputToWorking", Description: "W[a1] = I[a0]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(1), ctx.Input(inst.Arg(0)))
	}})
	lib.Register(instr.Def{ID: uint32(OpWorkingToOutput), Name: "WorkingToOutput", Description: "O[a1] = W[a0]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetOutput(inst.Arg(1), ctx.Working(inst.Arg(0)))
	}})
	lib.Register(instr.Def{ID: uint32(OpWorkingToGlobal), Name: "WorkingToGlobal", Description: "G[a1] = W[a0]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetGlobal(inst.Arg(1), ctx.Working(inst.Arg(0)))
	}})
	lib.Register(instr.Def{ID: uint32(OpGlobalToWorking), Name: "GlobalToWorking", Description: "W[a1] = G[a0]", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.SetWorking(inst.Arg(1), ctx.Global(inst.Arg(0)))
	}})
	lib.Register(instr.Def{ID: uint32(OpFullWorkingToGlobal), Name: "FullWorkingToGlobal", Description: "bulk copy working into global, overwriting conflicts", Run: func(ctx instr.Context, inst program.Instruction) {
		for k, v := range ctx.BulkWorking() {
			ctx.SetGlobal(k, v)
		}
	}})
	lib.Register(instr.Def{ID: uint32(OpFullGlobalToWorking), Name: "FullGlobalToWorking", Description: "bulk copy global into working, overwriting conflicts", Run: func(ctx instr.Context, inst program.Instruction) {
		for k, v := range ctx.BulkGlobal() {
			ctx.SetWorking(k, v)
		}
	}})
}
