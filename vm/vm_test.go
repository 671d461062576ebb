package vm

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/amlalejini/signalgp-lite/exec"
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/match"
	"github.com/amlalejini/signalgp-lite/memory"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

// newTestStepper wires a Stepper with every built-in instruction
// registered, backing prog, for exercising instruction semantics
// end-to-end without the scheduling machinery of Hardware/thread.Manager.
func newTestStepper(t *testing.T, prog program.Program) *exec.Stepper {
	t.Helper()
	lib := instr.NewLibrary()
	RegisterDefaultInstructions(lib)
	global := memory.NewGlobalBuffer()
	matches := match.NewStore(tag.HammingMetric{}, tag.NearestSelector{}, 0, 0)
	s := exec.NewStepper(prog, global, matches, lib, nil, 0)
	s.TerminalMin = 0
	s.TerminalMax = 1
	return s
}

// runInstructions starts a thread at module 0 and calls Step numSteps
// times (each call dispatches at most one real instruction), failing
// the test if the thread dies along the way, and returns the thread's
// ExecState for inspection.
func runInstructions(t *testing.T, s *exec.Stepper, numSteps int) *exec.ExecState {
	t.Helper()
	es := exec.NewExecState()
	require.True(t, s.InitThread(es, 0))
	for i := 0; i < numSteps; i++ {
		died := s.Step(es)
		if died {
			t.Fatalf("thread died early at step %d/%d; flow stack at death:\n%s", i+1, numSteps, spew.Sdump(es.CallStack))
		}
	}
	return es
}

func fn(body ...program.Instruction) *program.Function {
	return &program.Function{Body: body}
}

func inst(id Opcode, args ...int) program.Instruction {
	var i program.Instruction
	i.ID = uint32(id)
	for n, a := range args {
		i.Args[n] = a
	}
	return i
}
