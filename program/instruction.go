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

// Package program implements the two canonical program shapes (§4.C):
// a flat linear sequence with delimiter instructions, and a vector of
// tagged functions-of-instructions.
package program

import "github.com/amlalejini/signalgp-lite/tag"

// NumArgs is the program-wide constant number of integer arguments every
// instruction carries.
const NumArgs = 3

// NumTags is the program-wide constant number of tags every instruction
// carries. One is enough for every built-in instruction in §6; programs
// may carry more for custom dispatching instructions.
const NumTags = 1

// Instruction is one opcode with its arguments and dispatch tags (§3).
type Instruction struct {
	ID   uint32
	Args [NumArgs]int
	Tags [NumTags]tag.Tag
}

// Arg returns args[i], matching the original source's inst.arg(i)
// accessor used throughout §6.
func (i Instruction) Arg(n int) int { return i.Args[n] }

// Tag returns tags[i].
func (i Instruction) Tag(n int) tag.Tag { return i.Tags[n] }

// Module is an addressable code unit: either a tagged function (the
// function-of-instructions shape) or a delimited slice of a flat linear
// sequence. Both representations expose the same surface (§4.C).
type Module interface {
	Tag() tag.Tag
	Size() int
	Instr(ip int) Instruction
	IsValidPosition(ip int) bool
}

// Program is an ordered collection of modules, indexed by module
// pointer (mp). Instructions within a module are indexed by instruction
// pointer (ip).
type Program interface {
	NumModules() int
	Module(mp int) Module
	// Size returns the total instruction count across the whole program,
	// as consumed by the linear shape's §9 Open-Question-1 bob
	// computation (program length, not module length).
	Size() int
}
