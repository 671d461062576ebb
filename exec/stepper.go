package exec

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/match"
	"github.com/amlalejini/signalgp-lite/memory"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

// ThreadSpawner is the capability the Fork instruction needs: spawning
// a new thread without the exec package depending on the thread
// package (which depends on exec for ExecState). Implemented by
// thread.Manager; wired in by the vm package.
type ThreadSpawner interface {
	SpawnThreadWithID(mp int, priority int) (uint64, bool)
	ExecStateOf(id uint64) (*ExecState, bool)
}

// Stepper holds everything shared across every thread of one VM
// instance: the program, the process-global memory buffer, the match
// store, the instruction library, and the thread spawner. Grounded on
// LinearFunctionsProgramCPU.hpp's SingleExecutionStep / CallModule /
// ReturnCall / FindEndOfBlock / FindModuleMatch.
type Stepper struct {
	Program      program.Program
	Global       *memory.GlobalBuffer
	Matches      *match.Store
	Library      *instr.Library
	Spawner      ThreadSpawner
	MaxCallDepth int

	// TerminalMin and TerminalMax parameterize the Terminal instruction's
	// tag-to-double projection, frac*(max-min) - min (§6).
	TerminalMin float64
	TerminalMax float64
}

// NewStepper constructs a Stepper. MaxCallDepth <= 0 is treated as
// unbounded (no cap on call_stack growth).
func NewStepper(prog program.Program, global *memory.GlobalBuffer, matches *match.Store, lib *instr.Library, spawner ThreadSpawner, maxCallDepth int) *Stepper {
	return &Stepper{
		Program:      prog,
		Global:       global,
		Matches:      matches,
		Library:      lib,
		Spawner:      spawner,
		MaxCallDepth: maxCallDepth,
	}
}

// InitThread clears es's call stack (if non-empty) and calls mp,
// matching the original source's InitThread (§4.F's spawn operation).
// Returns false if the module could not be called (empty module).
func (s *Stepper) InitThread(es *ExecState, mp int) bool {
	es.Clear()
	return s.CallModule(es, mp, false)
}

// CallModule pushes a fresh CallState bound to module mp onto es,
// refusing (silent no-op, returns false) at max call depth or an empty
// module (§4.E).
func (s *Stepper) CallModule(es *ExecState, mp int, circular bool) bool {
	if s.MaxCallDepth > 0 && len(es.CallStack) >= s.MaxCallDepth {
		return false
	}
	mod := s.Program.Module(mp)
	if mod.Size() == 0 {
		return false
	}

	var caller *CallState
	hadCaller := len(es.CallStack) > 0
	if hadCaller {
		caller = es.TopCall()
	}

	next := NewCallState(circular)
	es.pushCall(next)
	next.pushFlow(FlowInfo{Kind: instr.Call, MP: mp, IP: 0, Begin: 0, End: mod.Size()})

	// The new state must be top-of-stack before the memory copy; order
	// matters here (§4.E).
	if hadCaller {
		memory.OnCall(caller.Memory, next.Memory)
	}
	return true
}

// CallModuleByTag consults the match store for the best-matching module
// to q and calls it; no match is a silent no-op (§4.E).
func (s *Stepper) CallModuleByTag(es *ExecState, q tag.Tag, circular bool) bool {
	hits := s.Matches.Match(q, 1)
	if len(hits) == 0 {
		return false
	}
	return s.CallModule(es, int(hits[0]), circular)
}

// ReturnCall pops the top call state, copying its output into the
// caller's working memory first if a caller exists (§4.E).
func (s *Stepper) ReturnCall(es *ExecState) {
	if len(es.CallStack) == 0 {
		return
	}
	top := es.TopCall()
	if len(es.CallStack) >= 2 {
		caller := es.CallStack[len(es.CallStack)-2]
		memory.OnReturn(top.Memory, caller.Memory)
	}
	es.popCall()
}

// FindEndOfBlock scans forward from ip in module mp, tracking nesting
// depth starting at 1: BLOCK_DEF increments it, BLOCK_CLOSE decrements
// it. Returns the ip at which depth reaches 0, or module.Size() if none
// is found (§4.E).
func (s *Stepper) FindEndOfBlock(mp, ip int) int {
	mod := s.Program.Module(mp)
	depth := 1
	for cur := ip; cur < mod.Size(); cur++ {
		def, ok := s.Library.Get(mod.Instr(cur).ID)
		if !ok {
			continue
		}
		if def.Properties.Has(instr.BlockDef) {
			depth++
		} else if def.Properties.Has(instr.BlockClose) {
			depth--
			if depth == 0 {
				return cur
			}
		}
	}
	return mod.Size()
}

// OpenFlow pushes a new flow of the given kind onto cs's flow stack
// (§4.E: every kind's OpenFlow is identical — push).
func (s *Stepper) OpenFlow(cs *CallState, kind instr.FlowKind, mp, ip, begin, end int) {
	cs.pushFlow(FlowInfo{Kind: kind, MP: mp, IP: ip, Begin: begin, End: end})
}

// CloseFlow closes cs's top flow per the per-kind contract of §4.E's
// table.
func (s *Stepper) CloseFlow(cs *CallState) {
	if len(cs.FlowStack) == 0 {
		return
	}
	closed := cs.popFlow()
	switch closed.Kind {
	case instr.Basic, instr.WhileLoop:
		if len(cs.FlowStack) == 0 {
			return
		}
		enclosing := cs.TopFlow()
		if closed.Kind == instr.Basic {
			// Propagate (ip, mp) of the popped flow down so the enclosing
			// flow resumes right after the block.
			enclosing.IP = closed.IP
			enclosing.MP = closed.MP
		} else {
			// WHILE_LOOP: re-enter the loop header so it re-tests.
			enclosing.IP = closed.Begin
			enclosing.MP = closed.MP
		}
	case instr.Routine:
		// Pop only; do not propagate ip/mp down, caller resumes where it was.
	case instr.Call:
		if cs.Circular {
			// Loop the module: push the same flow back with ip reset to begin.
			cs.pushFlow(FlowInfo{Kind: instr.Call, MP: closed.MP, IP: closed.Begin, Begin: closed.Begin, End: closed.End})
		}
		// Non-circular: stays popped; the next step sees an empty flow
		// stack and triggers ReturnCall.
	}
}

// BreakFlow closes cs's top flow the same way Close does, except the
// enclosing flow's ip jumps to the closed flow's end and advances one
// step past it if still in-module (§4.E's table: "same as Close" row
// plus this extra advance, matching Inst_Break's phase-2 unwind).
func (s *Stepper) BreakFlow(cs *CallState) {
	if len(cs.FlowStack) == 0 {
		return
	}
	closed := cs.popFlow()
	if len(cs.FlowStack) == 0 {
		return
	}
	enclosing := cs.TopFlow()
	enclosing.IP = closed.End
	enclosing.MP = closed.MP
	if s.Program.Module(enclosing.MP).IsValidPosition(enclosing.IP) {
		enclosing.IP++
	}
}

// Step runs exactly one SingleExecutionStep for es (§4.E): the
// algorithm may fall through an empty block and execute a second, real
// instruction within the same step; it executes at most one real
// instruction. Returns true if the thread died as a result (its call
// stack became empty).
func (s *Stepper) Step(es *ExecState) bool {
	for {
		if es.Dead() {
			return true
		}
		cs := es.TopCall()
		if len(cs.FlowStack) == 0 {
			s.ReturnCall(es)
			return es.Dead()
		}
		f := cs.TopFlow()
		mod := s.Program.Module(f.MP)
		if !mod.IsValidPosition(f.IP) {
			s.CloseFlow(cs)
			continue
		}
		// Increment ip before dispatch, so a flow/call mutation inside the
		// instruction cannot leave a stale reference (§4.E rationale).
		inst := mod.Instr(f.IP)
		f.IP++
		ctx := &threadContext{s: s, es: es}
		s.Library.Run(ctx, inst)
		return es.Dead()
	}
}
