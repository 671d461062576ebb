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

// Package exec implements the per-thread execution stepper: the call
// stack of flow stacks, instruction-pointer discipline, and the flow
// open/close/break state machine (§4.E). Grounded on
// original_source/include/sgp/cpu/LinearFunctionsProgramCPU.hpp.
package exec

import (
	"github.com/amlalejini/signalgp-lite/instr"
	"github.com/amlalejini/signalgp-lite/internal/assert"
	"github.com/amlalejini/signalgp-lite/memory"
)

// FlowInfo is one frame of in-module control context (§3).
type FlowInfo struct {
	Kind  instr.FlowKind
	MP    int
	IP    int
	Begin int
	End   int
}

// CallState is one stack frame for a function invocation: a memory
// state plus a stack of flows (§3).
type CallState struct {
	Memory    *memory.State
	FlowStack []FlowInfo
	Circular  bool
}

// NewCallState returns a fresh CallState with an empty flow stack.
func NewCallState(circular bool) *CallState {
	return &CallState{Memory: memory.NewState(), Circular: circular}
}

// TopFlow returns a pointer to the live top-of-stack flow. Panics if the
// flow stack is empty; callers must check first (invariant 2, §3).
func (cs *CallState) TopFlow() *FlowInfo {
	return &cs.FlowStack[len(cs.FlowStack)-1]
}

func (cs *CallState) pushFlow(f FlowInfo) {
	cs.FlowStack = append(cs.FlowStack, f)
}

func (cs *CallState) popFlow() FlowInfo {
	n := len(cs.FlowStack)
	assert.Check(n > 0, "popFlow called on an empty flow stack")
	f := cs.FlowStack[n-1]
	cs.FlowStack = cs.FlowStack[:n-1]
	return f
}

// ExecState is a thread's private execution context: a stack of call
// states. An empty call stack means the owning thread is dead (§3).
type ExecState struct {
	CallStack []*CallState
}

// NewExecState returns an empty ExecState.
func NewExecState() *ExecState {
	return &ExecState{}
}

// Dead reports whether the call stack is empty.
func (es *ExecState) Dead() bool { return len(es.CallStack) == 0 }

// TopCall returns the live top-of-stack call state. Panics if the call
// stack is empty; callers must check Dead first.
func (es *ExecState) TopCall() *CallState {
	return es.CallStack[len(es.CallStack)-1]
}

func (es *ExecState) pushCall(cs *CallState) {
	es.CallStack = append(es.CallStack, cs)
}

func (es *ExecState) popCall() *CallState {
	n := len(es.CallStack)
	assert.Check(n > 0, "popCall called on an empty call stack")
	cs := es.CallStack[n-1]
	es.CallStack = es.CallStack[:n-1]
	return cs
}

// Clear empties the call stack, as InitThread does before its initial
// CallModule (§4.E).
func (es *ExecState) Clear() {
	es.CallStack = nil
}
