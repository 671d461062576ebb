package exec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

// stubSpawner is a minimal ThreadSpawner for exercising Fork in
// isolation from the thread package.
type stubSpawner struct {
	nextID   uint64
	states   map[uint64]*ExecState
	spawnOK  bool
	stepper  *Stepper
}

func newStubSpawner(s *Stepper) *stubSpawner {
	return &stubSpawner{states: map[uint64]*ExecState{}, spawnOK: true, stepper: s}
}

func (sp *stubSpawner) SpawnThreadWithID(mp int, priority int) (uint64, bool) {
	if !sp.spawnOK {
		return 0, false
	}
	id := sp.nextID
	sp.nextID++
	es := NewExecState()
	sp.stepper.InitThread(es, mp)
	sp.states[id] = es
	return id, true
}

func (sp *stubSpawner) ExecStateOf(id uint64) (*ExecState, bool) {
	es, ok := sp.states[id]
	return es, ok
}

func newCtxFixture(t *testing.T) (*threadContext, *Stepper, *ExecState) {
	t.Helper()
	mod := &program.Function{FnTag: tag.FromUint64(1), Body: []program.Instruction{{ID: 0}, {ID: 0}}}
	prog := program.NewFunctionProgram([]*program.Function{mod})
	s := newTestStepper(prog, 0)
	s.Matches.SetModules([]uint64{0}, []tag.Tag{tag.FromUint64(1)})
	es := NewExecState()
	require.True(t, s.InitThread(es, 0))
	return &threadContext{s: s, es: es}, s, es
}

func TestContextMemoryAccessors(t *testing.T) {
	ctx, _, _ := newCtxFixture(t)
	ctx.SetWorking(1, 10)
	ctx.SetInput(2, 20)
	ctx.SetOutput(3, 30)
	assert.Equal(t, 10.0, ctx.Working(1))
	assert.Equal(t, 20.0, ctx.Input(2))
	assert.Equal(t, 30.0, ctx.Output(3))
	assert.Contains(t, ctx.BulkWorking(), 1)
}

func TestContextGlobalAccessors(t *testing.T) {
	ctx, _, _ := newCtxFixture(t)
	ctx.SetGlobal(9, 99)
	assert.Equal(t, 99.0, ctx.Global(9))
	assert.Contains(t, ctx.BulkGlobal(), 9)
}

func TestContextProgramPosition(t *testing.T) {
	ctx, _, es := newCtxFixture(t)
	assert.Equal(t, 0, ctx.CurrentModule())
	assert.Equal(t, 0, ctx.CurrentInstruction())
	assert.NotNil(t, ctx.Program())
	_ = es
}

func TestContextFlowControl(t *testing.T) {
	ctx, _, _ := newCtxFixture(t)
	kind, ok := ctx.TopFlowKind()
	require.True(t, ok)
	assert.Equal(t, instr.Call, kind)

	ctx.OpenFlow(instr.Basic, 0, 0, 0, 2)
	kind, ok = ctx.TopFlowKind()
	require.True(t, ok)
	assert.Equal(t, instr.Basic, kind)

	parentKind, ok := ctx.FlowKindAt(1)
	require.True(t, ok)
	assert.Equal(t, instr.Call, parentKind)

	ctx.SetInstructionPointer(5)
	assert.Equal(t, 5, ctx.CurrentInstruction())

	ctx.CloseFlow()
	kind, ok = ctx.TopFlowKind()
	require.True(t, ok)
	assert.Equal(t, instr.Call, kind)
}

func TestContextTerminalRange(t *testing.T) {
	ctx, s, _ := newCtxFixture(t)
	s.TerminalMin = -1
	s.TerminalMax = 1
	min, max := ctx.TerminalRange()
	assert.Equal(t, -1.0, min)
	assert.Equal(t, 1.0, max)
}

func TestContextCallAndReturn(t *testing.T) {
	mod0 := &program.Function{Body: []program.Instruction{{ID: 0}}}
	mod1 := &program.Function{Body: []program.Instruction{{ID: 0}}}
	prog := program.NewFunctionProgram([]*program.Function{mod0, mod1})
	s := newTestStepper(prog, 0)
	es := NewExecState()
	require.True(t, s.InitThread(es, 0))
	ctx := &threadContext{s: s, es: es}

	ctx.SetWorking(1, 55)
	ctx.CallModule(1, false)
	assert.Equal(t, 55.0, ctx.Input(1), "callee's input inherits the caller's working memory")

	ctx.SetOutput(2, 66)
	ctx.ReturnCall()
	assert.Equal(t, 66.0, ctx.Working(2), "caller's working memory inherits the callee's output")
}

func TestContextMatchAndRegulation(t *testing.T) {
	ctx, _, _ := newCtxFixture(t)
	hits := ctx.Match(tag.FromUint64(1), 1)
	require.Len(t, hits, 1)
	assert.Equal(t, uint64(0), hits[0])

	ctx.SetRegulator(0, 5)
	assert.Equal(t, 5.0, ctx.ViewRegulator(0))
	ctx.AdjustRegulator(0, 1)
	assert.Equal(t, 6.0, ctx.ViewRegulator(0))
	ctx.ClearRegulator(0)
	assert.Equal(t, 0.0, ctx.ViewRegulator(0))
}

func TestContextForkInheritsWorkingAsInput(t *testing.T) {
	mod := &program.Function{FnTag: tag.FromUint64(1), Body: []program.Instruction{{ID: 0}}}
	prog := program.NewFunctionProgram([]*program.Function{mod})
	s := newTestStepper(prog, 0)
	s.Matches.SetModules([]uint64{0}, []tag.Tag{tag.FromUint64(1)})
	spawner := newStubSpawner(s)
	s.Spawner = spawner

	es := NewExecState()
	require.True(t, s.InitThread(es, 0))
	ctx := &threadContext{s: s, es: es}
	ctx.SetWorking(3, 77)

	ctx.Fork(tag.FromUint64(1), 0)

	require.Len(t, spawner.states, 1)
	spawned := spawner.states[0]
	assert.Equal(t, 77.0, spawned.TopCall().Memory.GetInput(3))
}

func TestContextForkNoMatchIsNoop(t *testing.T) {
	// An empty match store (no modules registered) never matches.
	mod := &program.Function{Body: []program.Instruction{{ID: 0}}}
	prog := program.NewFunctionProgram([]*program.Function{mod})
	s := newTestStepper(prog, 0)
	spawner := newStubSpawner(s)
	s.Spawner = spawner

	es := NewExecState()
	require.True(t, s.InitThread(es, 0))
	ctx := &threadContext{s: s, es: es}

	ctx.Fork(tag.FromUint64(999), 0)
	assert.Empty(t, spawner.states)
}

func TestContextTerminate(t *testing.T) {
	ctx, _, es := newCtxFixture(t)
	require.False(t, es.Dead())
	ctx.Terminate()
	assert.True(t, es.Dead())
}
