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

// Package memory implements the per-call memory state and the
// process-global buffer, and the dataflow between caller and callee at
// call/return time (§4.B, the BasicMemoryModel of the original source).
package memory

// State holds one call's three key→value buffers. All three are
// dense-keyless: an absent key reads as 0.0 and the first access (read
// or write) creates the entry, matching original_source's
// BasicMemoryState (working_mem/input_mem/output_mem as
// unordered_map<int,double>).
type State struct {
	working map[int]float64
	input   map[int]float64
	output  map[int]float64
}

// NewState returns a fresh State with empty buffers.
func NewState() *State {
	return &State{
		working: make(map[int]float64),
		input:   make(map[int]float64),
		output:  make(map[int]float64),
	}
}

// GetWorking reads W[k], creating the zero entry if absent.
func (s *State) GetWorking(k int) float64 { return access(s.working, k) }

// SetWorking unconditionally overwrites W[k].
func (s *State) SetWorking(k int, v float64) { s.working[k] = v }

// GetInput reads I[k], creating the zero entry if absent.
func (s *State) GetInput(k int) float64 { return access(s.input, k) }

// SetInput unconditionally overwrites I[k].
func (s *State) SetInput(k int, v float64) { s.input[k] = v }

// GetOutput reads O[k], creating the zero entry if absent.
func (s *State) GetOutput(k int) float64 { return access(s.output, k) }

// SetOutput unconditionally overwrites O[k].
func (s *State) SetOutput(k int, v float64) { s.output[k] = v }

// Working returns the live working map for bulk operations
// (FullWorkingToGlobal and friends). Callers must not retain it beyond
// the current instruction dispatch.
func (s *State) Working() map[int]float64 { return s.working }

// Input returns the live input map for bulk operations.
func (s *State) Input() map[int]float64 { return s.input }

// Output returns the live output map for bulk operations.
func (s *State) Output() map[int]float64 { return s.output }

func access(m map[int]float64, k int) float64 {
	v, ok := m[k]
	if !ok {
		m[k] = 0
		return 0
	}
	return v
}

// OnCall copies every (k,v) from the caller's working buffer into the
// callee's input buffer, unconditionally overwriting. Output and
// working of the callee remain empty (§4.B).
func OnCall(caller, callee *State) {
	for k, v := range caller.working {
		callee.input[k] = v
	}
}

// OnReturn copies every (k,v) from the callee's output buffer into the
// caller's working buffer, unconditionally overwriting existing keys
// (§4.B).
func OnReturn(callee, caller *State) {
	for k, v := range callee.output {
		caller.working[k] = v
	}
}
