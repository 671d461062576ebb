package program

import "github.com/amlalejini/signalgp-lite/tag"

// ToyProgram is a single-module, no-tag program, the simplest possible
// program shape. Ported from original_source's ToyCPU.hpp test fixture;
// used only by stepper unit tests that don't need the full linear or
// function-of-instructions machinery.
type ToyProgram struct {
	body []Instruction
}

// NewToyProgram wraps body as a single-module program.
func NewToyProgram(body []Instruction) *ToyProgram {
	return &ToyProgram{body: body}
}

func (p *ToyProgram) NumModules() int { return 1 }

func (p *ToyProgram) Module(mp int) Module {
	if mp != 0 {
		panic("program: ToyProgram has exactly one module")
	}
	return (*toyModule)(p)
}

func (p *ToyProgram) Size() int { return len(p.body) }

type toyModule ToyProgram

func (m *toyModule) Tag() tag.Tag { return tag.Tag{} }
func (m *toyModule) Size() int    { return len(m.body) }
func (m *toyModule) Instr(ip int) Instruction {
	return m.body[ip]
}
func (m *toyModule) IsValidPosition(ip int) bool {
	return ip >= 0 && ip < len(m.body)
}
