// Copyright 2024 The SignalGP-Lite Authors
// This file is part of signalgp-lite.
//
// signalgp-lite is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// signalgp-lite is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with signalgp-lite. If not, see <http://www.gnu.org/licenses/>.

// Package vm composes components A–F (tag/match, memory, program,
// instruction library, execution stepper, thread manager) into a single
// Hardware instance, and hosts the concrete instruction-set behaviors of
// §6.
package vm

import (
	"errors"

	"github.com/amlalejini/signalgp-lite/exec"
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/match"
	"github.com/amlalejini/signalgp-lite/memory"
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/sgplog"
	"github.com/amlalejini/signalgp-lite/tag"
	"github.com/amlalejini/signalgp-lite/thread"
	"github.com/amlalejini/signalgp-lite/vmconfig"
)

// ErrProgramNotValid is returned by SetProgram when the program carries
// no modules at all (programmatic misuse: operating a VM with nothing
// to run) — §7's "programmatic misuse aborts with a descriptive error".
var ErrProgramNotValid = errors.New("vm: program has no modules")

// ErrReentrantSingleProcess is returned by SingleProcess if called while
// another SingleProcess on the same Hardware is already in flight.
var ErrReentrantSingleProcess = errors.New("vm: reentrant SingleProcess call")

// Hardware is one VM instance: components A–F wired together, plus the
// registered instruction set (§6). Hardware instances share no state
// with one another (§5).
type Hardware struct {
	cfg vmconfig.Config
	log sgplog.Logger

	program program.Program
	global  *memory.GlobalBuffer
	matches *match.Store
	library *instr.Library
	stepper *exec.Stepper
	threads *thread.Manager

	stepping bool

	terminalMin float64
	terminalMax float64
}

// NewHardware constructs an idle Hardware with no program installed.
// Call SetProgram before spawning any threads.
func NewHardware(cfg vmconfig.Config) *Hardware {
	log := cfg.Log
	if log == nil {
		log = sgplog.Root()
	}

	global := memory.NewGlobalBuffer()
	matches := match.NewStore(tag.HammingMetric{}, tag.NearestSelector{}, cfg.RegulatorDecayStep, cfg.MatchCacheSize)
	library := instr.NewLibrary()

	hw := &Hardware{
		cfg:         cfg,
		log:         log,
		global:      global,
		matches:     matches,
		library:     library,
		terminalMin: cfg.TerminalMin,
		terminalMax: cfg.TerminalMax,
	}
	RegisterDefaultInstructions(library)
	return hw
}

// Library exposes the instruction library, e.g. for callers that want
// to register custom instructions before the first SetProgram.
func (hw *Hardware) Library() *instr.Library { return hw.library }

// Matches exposes the match store for direct inspection in tests and
// tooling.
func (hw *Hardware) Matches() *match.Store { return hw.matches }

// Global exposes the process-global buffer.
func (hw *Hardware) Global() *memory.GlobalBuffer { return hw.global }

// Program returns the currently installed program, or nil.
func (hw *Hardware) Program() program.Program { return hw.program }

// SetProgram resets all hardware state, installs p, and rebuilds the
// match store from p's module tags (§6's "Program load" contract).
func (hw *Hardware) SetProgram(p program.Program) error {
	if p == nil || p.NumModules() == 0 {
		return ErrProgramNotValid
	}
	hw.program = p
	hw.global.Reset()

	ids := make([]uint64, p.NumModules())
	tags := make([]tag.Tag, p.NumModules())
	for i := 0; i < p.NumModules(); i++ {
		ids[i] = uint64(i)
		tags[i] = p.Module(i).Tag()
	}
	hw.matches.SetModules(ids, tags)

	maxCallDepth := hw.cfg.MaxCallDepth
	hw.stepper = exec.NewStepper(p, hw.global, hw.matches, hw.library, nil, maxCallDepth)
	hw.stepper.TerminalMin = hw.terminalMin
	hw.stepper.TerminalMax = hw.terminalMax

	threadCapacity := hw.cfg.ThreadCapacity
	maxActive := hw.cfg.MaxActive
	hw.threads = thread.NewManager(hw.stepper, threadCapacity, maxActive)
	hw.stepper.Spawner = hw.threads

	hw.log.Debug("program installed", "modules", p.NumModules(), "instructions", p.Size())
	return nil
}

// SpawnThreadWithID allocates a thread calling module mp at priority.
func (hw *Hardware) SpawnThreadWithID(mp int, priority int) (uint64, bool) {
	id, ok := hw.threads.SpawnThreadWithID(mp, priority)
	if ok {
		hw.log.Debug("thread spawned", "id", id, "module", mp, "priority", priority)
	}
	return id, ok
}

// SpawnThreadWithTag allocates a thread calling the module that best
// matches q.
func (hw *Hardware) SpawnThreadWithTag(q tag.Tag, priority int) (uint64, bool) {
	id, ok := hw.threads.SpawnThreadWithTag(q, priority)
	if ok {
		hw.log.Debug("thread spawned", "id", id, "tag", q, "priority", priority)
	}
	return id, ok
}

// ActiveThreadIDs returns the current active execution order.
func (hw *Hardware) ActiveThreadIDs() []uint64 { return hw.threads.ActiveThreadIDs() }

// PendingThreadIDs returns the current pending set.
func (hw *Hardware) PendingThreadIDs() []uint64 { return hw.threads.PendingThreadIDs() }

// Thread returns the thread slot for id, or nil.
func (hw *Hardware) Thread(id uint64) *thread.Thread { return hw.threads.Thread(id) }

// SingleProcess runs exactly one step_cycle across every active thread,
// then ticks every module's regulator decay once (§4.F, §4.A).
func (hw *Hardware) SingleProcess() error {
	if hw.stepping {
		return ErrReentrantSingleProcess
	}
	hw.stepping = true
	defer func() { hw.stepping = false }()

	hw.threads.StepCycle()
	hw.matches.Tick()
	return nil
}

// OnBeforeInstExec installs the single instruction-dispatch observer
// hook (§4.D). Passing nil removes it.
func (hw *Hardware) OnBeforeInstExec(hook instr.Hook) {
	hw.library.SetHook(hook)
}

// Reset clears every piece of hardware state: threads, global memory,
// and (if a program is installed) the match store is rebuilt from it.
func (hw *Hardware) Reset() {
	if hw.threads != nil {
		hw.threads.Reset()
	}
	hw.global.Reset()
	if hw.program != nil {
		_ = hw.SetProgram(hw.program)
	}
}
