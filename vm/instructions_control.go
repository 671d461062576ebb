package vm

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

// blockGeometry computes (begin, end) for a newly opened BASIC or
// WHILE_LOOP flow: begin is the position of the opening instruction
// itself, end is the matching Close. Grounded on
// original_source/include/sgp/inst/lpbm/impls_ctrl_insts.hpp and
// lfpbm/impls_ctrl_insts.hpp's Inst_If/While/Countdown.
//
// §9 Open Question 1: the linear-program shape computes begin from the
// *whole program's* instruction count when ip==0, not the enclosing
// module's — this port preserves that behavior exactly (DESIGN.md).
func blockGeometry(ctx instr.Context, mp, ip int) (begin, end int) {
	if _, isLinear := ctx.Program().(*program.LinearProgram); isLinear {
		if ip == 0 {
			begin = ctx.Program().Size() - 1
		} else {
			begin = ip - 1
		}
	} else {
		if ip == 0 {
			begin = ctx.Program().Module(mp).Size() - 1
		} else {
			begin = ip - 1
		}
	}
	end = ctx.FindEndOfBlock(mp, ip)
	return
}

// skipBlock sets ip to eob and advances one step past it if that
// position is still in-module, matching every BLOCK_DEF instruction's
// skip-on-false path (§6).
func skipBlock(ctx instr.Context, mp, eob int) {
	ctx.SetInstructionPointer(eob)
	if ctx.Program().Module(mp).IsValidPosition(eob) {
		ctx.SetInstructionPointer(eob + 1)
	}
}

func registerControl(lib *instr.Library) {
	lib.Register(instr.Def{ID: uint32(OpIf), Name: "If", Description: "skip block if W[a0]==0, else OpenFlow BASIC", Properties: instr.BlockDef, Run: func(ctx instr.Context, inst program.Instruction) {
		mp, ip := ctx.CurrentModule(), ctx.CurrentInstruction()
		if ctx.Working(inst.Arg(0)) == 0 {
			skipBlock(ctx, mp, ctx.FindEndOfBlock(mp, ip))
			return
		}
		begin, end := blockGeometry(ctx, mp, ip)
		ctx.OpenFlow(instr.Basic, mp, ip, begin, end)
	}})

	lib.Register(instr.Def{ID: uint32(OpWhile), Name: "While", Description: "skip block if W[a0]==0, else OpenFlow WHILE_LOOP", Properties: instr.BlockDef, Run: func(ctx instr.Context, inst program.Instruction) {
		mp, ip := ctx.CurrentModule(), ctx.CurrentInstruction()
		if ctx.Working(inst.Arg(0)) == 0 {
			skipBlock(ctx, mp, ctx.FindEndOfBlock(mp, ip))
			return
		}
		begin, end := blockGeometry(ctx, mp, ip)
		ctx.OpenFlow(instr.WhileLoop, mp, ip, begin, end)
	}})

	lib.Register(instr.Def{ID: uint32(OpCountdown), Name: "Countdown", Description: "skip iff W[a0]<=0, else decrement and OpenFlow WHILE_LOOP", Properties: instr.BlockDef, Run: func(ctx instr.Context, inst program.Instruction) {
		mp, ip := ctx.CurrentModule(), ctx.CurrentInstruction()
		if ctx.Working(inst.Arg(0)) <= 0 {
			skipBlock(ctx, mp, ctx.FindEndOfBlock(mp, ip))
			return
		}
		ctx.SetWorking(inst.Arg(0), ctx.Working(inst.Arg(0))-1)
		begin, end := blockGeometry(ctx, mp, ip)
		ctx.OpenFlow(instr.WhileLoop, mp, ip, begin, end)
	}})

	lib.Register(instr.Def{ID: uint32(OpClose), Name: "Close", Description: "CloseFlow the top flow if it is BASIC or WHILE_LOOP", Properties: instr.BlockClose, Run: func(ctx instr.Context, inst program.Instruction) {
		kind, ok := ctx.TopFlowKind()
		if !ok {
			return
		}
		if kind == instr.Basic || kind == instr.WhileLoop {
			ctx.CloseFlow()
		}
	}})

	lib.Register(instr.Def{ID: uint32(OpBreak), Name: "Break", Description: "unwind BASIC frames to the nearest WHILE_LOOP and BreakFlow it; no-op otherwise", Run: func(ctx instr.Context, inst program.Instruction) {
		depth := 0
		for {
			kind, ok := ctx.FlowKindAt(depth)
			if !ok {
				return
			}
			if kind == instr.Basic {
				depth++
				continue
			}
			if kind != instr.WhileLoop {
				return
			}
			break
		}
		for i := 0; i < depth; i++ {
			ctx.CloseFlow()
		}
		ctx.BreakFlow()
	}})

	lib.Register(instr.Def{ID: uint32(OpCall), Name: "Call", Description: "dispatch t0 via regulated match and CallModule the hit", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.CallModuleByTag(inst.Tag(0), false)
	}})

	lib.Register(instr.Def{ID: uint32(OpRoutine), Name: "Routine", Description: "dispatch t0 via regulated match and OpenFlow ROUTINE", Run: func(ctx instr.Context, inst program.Instruction) {
		hits := ctx.Match(inst.Tag(0), 1)
		if len(hits) == 0 {
			return
		}
		target := int(hits[0])
		size := ctx.Program().Module(target).Size()
		ctx.OpenFlow(instr.Routine, target, 0, 0, size)
	}})

	lib.Register(instr.Def{ID: uint32(OpReturn), Name: "Return", Description: "unwind flows up to and including the nearest CALL, then ReturnCall", Run: func(ctx instr.Context, inst program.Instruction) {
		for {
			kind, ok := ctx.TopFlowKind()
			if !ok {
				return
			}
			ctx.CloseFlow()
			if kind == instr.Call {
				ctx.ReturnCall()
				return
			}
		}
	}})

	lib.Register(instr.Def{ID: uint32(OpFork), Name: "Fork", Description: "dispatch t0 via regulated match and spawn a thread inheriting working memory as input", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.Fork(inst.Tag(0), 0)
	}})

	lib.Register(instr.Def{ID: uint32(OpTerminate), Name: "Terminate", Description: "mark the executing thread dead", Run: func(ctx instr.Context, inst program.Instruction) {
		ctx.Terminate()
	}})

	lib.Register(instr.Def{ID: uint32(OpTerminal), Name: "Terminal", Description: "W[a0] = frac(t0)*(max-min) - min, frac(t0) in [0, 1)", Run: func(ctx instr.Context, inst program.Instruction) {
		min, max := ctx.TerminalRange()
		ctx.SetWorking(inst.Arg(0), projectTerminal(inst.Tag(0), min, max))
	}})
}
