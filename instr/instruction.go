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

// Package instr implements the instruction library: the name↔id↔behavior
// registry and property flags the execution stepper dispatches through
// (§4.D), plus the Context capability handle every instruction behavior
// is given instead of a raw pointer to the whole VM (see SPEC_FULL.md's
// "VmContext" redesign note).
package instr

import (
	"fmt"

	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
)

// Property is a set of flags the stepper consults when dispatching an
// instruction (§4.D).
type Property uint8

const (
	// BlockDef marks an instruction that opens a block (If, While, Countdown).
	BlockDef Property = 1 << iota
	// BlockClose marks an instruction that closes a block (Close).
	BlockClose
	// Module marks a linear-program module delimiter (ModuleDef).
	Module
)

// Has reports whether p includes flag f.
func (p Property) Has(f Property) bool { return p&f != 0 }

// FlowKind is the tag of a control-flow frame (§3's FlowInfo.kind).
type FlowKind uint8

const (
	Basic FlowKind = iota
	WhileLoop
	Routine
	Call
)

// String implements fmt.Stringer for debug logging.
func (k FlowKind) String() string {
	switch k {
	case Basic:
		return "BASIC"
	case WhileLoop:
		return "WHILE_LOOP"
	case Routine:
		return "ROUTINE"
	case Call:
		return "CALL"
	default:
		return fmt.Sprintf("FlowKind(%d)", uint8(k))
	}
}

// Context is the minimal capability set an instruction's behavior
// function needs, exposed instead of a raw handle to the whole VM (the
// source passes "hardware" into every instruction; this redesign note
// scopes that down to current thread, memory, program, match store, and
// flow control, per SPEC_FULL.md).
type Context interface {
	// Per-call memory (§4.B), scoped to the currently executing call state.
	Working(k int) float64
	SetWorking(k int, v float64)
	Input(k int) float64
	SetInput(k int, v float64)
	Output(k int) float64
	SetOutput(k int, v float64)
	BulkWorking() map[int]float64
	BulkInput() map[int]float64
	BulkOutput() map[int]float64

	// Process-global memory, shared by every thread of the VM instance.
	Global(k int) float64
	SetGlobal(k int, v float64)
	BulkGlobal() map[int]float64

	// Program and flow position of the instruction being dispatched.
	Program() program.Program
	CurrentModule() int
	CurrentInstruction() int
	FindEndOfBlock(mp, ip int) int

	// Flow control (§4.E).
	OpenFlow(kind FlowKind, mp, ip, begin, end int)
	CloseFlow()
	BreakFlow()
	TopFlowKind() (FlowKind, bool)
	// FlowKindAt peeks depth frames below the top of the current call's
	// flow stack (0 is the top itself) without mutating it, used by
	// Break to find its enclosing WHILE_LOOP.
	FlowKindAt(depth int) (FlowKind, bool)
	// SetInstructionPointer overwrites the current flow's ip directly,
	// used by If/While/Countdown's skip-on-false path.
	SetInstructionPointer(ip int)
	// TerminalRange returns the configured min and max the Terminal
	// instruction uses to project a tag's integer value, as
	// frac*(max-min) - min (§6).
	TerminalRange() (min, max float64)

	// Calls and routines (§4.E).
	CallModule(mp int, circular bool)
	CallModuleByTag(q tag.Tag, circular bool)
	ReturnCall()

	// Tag-matching dispatch and regulation (§4.A, §6).
	Match(q tag.Tag, n int) []uint64
	MatchRaw(q tag.Tag, n int) []uint64
	SetRegulator(id uint64, v float64)
	AdjustRegulator(id uint64, delta float64)
	ClearRegulator(id uint64)
	ViewRegulator(id uint64) float64

	// Thread control (§4.F, §6).
	Fork(q tag.Tag, priority int)
	Terminate()
}

// Def is one instruction's registered definition: its name, doc string,
// behavior, and property flags (§4.D).
type Def struct {
	ID          uint32
	Name        string
	Description string
	Run         func(ctx Context, inst program.Instruction)
	Properties  Property
}
