package exec

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/memory"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

// threadContext adapts a (Stepper, ExecState) pair to instr.Context for
// the duration of exactly one instruction dispatch. It is cheap to
// construct and never retained past Step, avoiding the long-lived
// back-references the original source's "hardware passed into every
// instruction" pattern relied on (SPEC_FULL.md's redesign note).
type threadContext struct {
	s  *Stepper
	es *ExecState
}

func (c *threadContext) call() *CallState { return c.es.TopCall() }

func (c *threadContext) Working(k int) float64     { return c.call().Memory.GetWorking(k) }
func (c *threadContext) SetWorking(k int, v float64) { c.call().Memory.SetWorking(k, v) }
func (c *threadContext) Input(k int) float64       { return c.call().Memory.GetInput(k) }
func (c *threadContext) SetInput(k int, v float64) { c.call().Memory.SetInput(k, v) }
func (c *threadContext) Output(k int) float64      { return c.call().Memory.GetOutput(k) }
func (c *threadContext) SetOutput(k int, v float64) { c.call().Memory.SetOutput(k, v) }
func (c *threadContext) BulkWorking() map[int]float64 { return c.call().Memory.Working() }
func (c *threadContext) BulkInput() map[int]float64   { return c.call().Memory.Input() }
func (c *threadContext) BulkOutput() map[int]float64  { return c.call().Memory.Output() }

func (c *threadContext) Global(k int) float64       { return c.s.Global.Get(k) }
func (c *threadContext) SetGlobal(k int, v float64) { c.s.Global.Set(k, v) }
func (c *threadContext) BulkGlobal() map[int]float64 { return c.s.Global.Values() }

func (c *threadContext) Program() program.Program { return c.s.Program }
func (c *threadContext) CurrentModule() int        { return c.call().TopFlow().MP }
func (c *threadContext) CurrentInstruction() int   { return c.call().TopFlow().IP }
func (c *threadContext) FindEndOfBlock(mp, ip int) int { return c.s.FindEndOfBlock(mp, ip) }

func (c *threadContext) OpenFlow(kind instr.FlowKind, mp, ip, begin, end int) {
	c.s.OpenFlow(c.call(), kind, mp, ip, begin, end)
}
func (c *threadContext) CloseFlow() { c.s.CloseFlow(c.call()) }
func (c *threadContext) BreakFlow() { c.s.BreakFlow(c.call()) }
func (c *threadContext) TopFlowKind() (instr.FlowKind, bool) {
	cs := c.call()
	if len(cs.FlowStack) == 0 {
		return 0, false
	}
	return cs.TopFlow().Kind, true
}
func (c *threadContext) FlowKindAt(depth int) (instr.FlowKind, bool) {
	cs := c.call()
	idx := len(cs.FlowStack) - 1 - depth
	if idx < 0 {
		return 0, false
	}
	return cs.FlowStack[idx].Kind, true
}
func (c *threadContext) SetInstructionPointer(ip int) {
	c.call().TopFlow().IP = ip
}
func (c *threadContext) TerminalRange() (float64, float64) {
	return c.s.TerminalMin, c.s.TerminalMax
}

func (c *threadContext) CallModule(mp int, circular bool) { c.s.CallModule(c.es, mp, circular) }
func (c *threadContext) CallModuleByTag(q tag.Tag, circular bool) {
	c.s.CallModuleByTag(c.es, q, circular)
}
func (c *threadContext) ReturnCall() { c.s.ReturnCall(c.es) }

func (c *threadContext) Match(q tag.Tag, n int) []uint64    { return c.s.Matches.Match(q, n) }
func (c *threadContext) MatchRaw(q tag.Tag, n int) []uint64 { return c.s.Matches.MatchRaw(q, n) }
func (c *threadContext) SetRegulator(id uint64, v float64)      { c.s.Matches.SetRegulator(id, v) }
func (c *threadContext) AdjustRegulator(id uint64, delta float64) { c.s.Matches.AdjustRegulator(id, delta) }
func (c *threadContext) ClearRegulator(id uint64)               { c.s.Matches.ClearRegulator(id) }
func (c *threadContext) ViewRegulator(id uint64) float64        { return c.s.Matches.ViewRegulator(id) }

func (c *threadContext) Fork(q tag.Tag, priority int) {
	hits := c.s.Matches.Match(q, 1)
	if len(hits) == 0 {
		return
	}
	id, ok := c.s.Spawner.SpawnThreadWithID(int(hits[0]), priority)
	if !ok {
		return
	}
	spawned, ok := c.s.Spawner.ExecStateOf(id)
	if !ok || spawned.Dead() {
		return
	}
	// The forked thread's top call state inherits the forking thread's
	// working memory as its input, exactly like a regular call (§6).
	memory.OnCall(c.call().Memory, spawned.TopCall().Memory)
}

func (c *threadContext) Terminate() {
	c.es.Clear()
}
