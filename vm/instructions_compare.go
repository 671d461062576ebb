package vm

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
)

func registerComparisons(lib *instr.Library) {
	reg := func(op Opcode, name string, pred func(a, b float64) bool) {
		lib.Register(instr.Def{ID: uint32(op), Name: name, Description: name + ": W[a2] = pred(W[a0], W[a1]) ? 1 : 0", Run: func(ctx instr.Context, inst program.Instruction) {
			a := ctx.Working(inst.Arg(0))
			b := ctx.Working(inst.Arg(1))
			if pred(a, b) {
				ctx.SetWorking(inst.Arg(2), 1)
			} else {
				ctx.SetWorking(inst.Arg(2), 0)
			}
		}})
	}
	reg(OpTestEqu, "TestEqu", func(a, b float64) bool { return a == b })
	reg(OpTestNEqu, "TestNEqu", func(a, b float64) bool { return a != b })
	reg(OpTestLess, "TestLess", func(a, b float64) bool { return a < b })
	reg(OpTestLessEqu, "TestLessEqu", func(a, b float64) bool { return a <= b })
	reg(OpTestGreater, "TestGreater", func(a, b float64) bool { return a > b })
	reg(OpTestGreaterEqu, "TestGreaterEqu", func(a, b float64) bool { return a >= b })
}
