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

package main

import (
	"github.com/amlalejini/signalgp-lite/program"
	"github.com/amlalejini/signalgp-lite/tag"
	"github.com/amlalejini/signalgp-lite/vm"
)

// demoProgram builds a small two-module function-of-instructions
// program exercising the pieces most worth watching cycle by cycle:
// module 0 counts a working-memory cell down from 3 and calls module 1
// by tag once per loop iteration (three calls in all), module 1 bumps a
// global counter and returns. No program-file format exists yet (out of scope per
// spec.md §1's "surrounding evolutionary framework" non-goal), so this
// fixture stands in for a loaded genome.
func demoProgram() program.Program {
	counterTag := tag.FromUint64(7)

	main := &program.Function{
		Body: []program.Instruction{
			{ID: uint32(vm.OpSetMem), Args: [program.NumArgs]int{0, 3}},
			{ID: uint32(vm.OpCountdown), Args: [program.NumArgs]int{0}},
			{ID: uint32(vm.OpCall), Tags: [program.NumTags]tag.Tag{counterTag}},
			{ID: uint32(vm.OpClose)},
		},
	}
	counter := &program.Function{
		FnTag: counterTag,
		Body: []program.Instruction{
			{ID: uint32(vm.OpGlobalToWorking), Args: [program.NumArgs]int{0, 0}},
			{ID: uint32(vm.OpInc), Args: [program.NumArgs]int{0}},
			{ID: uint32(vm.OpWorkingToGlobal), Args: [program.NumArgs]int{0, 0}},
		},
	}
	return program.NewFunctionProgram([]*program.Function{main, counter})
}
