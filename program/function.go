package program

import "github.com/amlalejini/signalgp-lite/tag"

// Function is one module of the function-of-instructions shape: a tag
// plus a body of instructions, addressed module-locally (§4.C).
type Function struct {
	FnTag  tag.Tag
	Body   []Instruction
}

func (f *Function) Tag() tag.Tag { return f.FnTag }
func (f *Function) Size() int    { return len(f.Body) }
func (f *Function) Instr(ip int) Instruction {
	return f.Body[ip]
}
func (f *Function) IsValidPosition(ip int) bool {
	return ip >= 0 && ip < len(f.Body)
}

// FunctionProgram is a vector of tagged Functions; modules are functions
// (§4.C's "function-of-instructions" shape).
type FunctionProgram struct {
	Functions []*Function
}

// NewFunctionProgram builds a FunctionProgram from the given functions.
func NewFunctionProgram(fns []*Function) *FunctionProgram {
	return &FunctionProgram{Functions: fns}
}

func (p *FunctionProgram) NumModules() int { return len(p.Functions) }

func (p *FunctionProgram) Module(mp int) Module { return p.Functions[mp] }

func (p *FunctionProgram) Size() int {
	total := 0
	for _, f := range p.Functions {
		total += len(f.Body)
	}
	return total
}
