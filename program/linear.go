package program

import "github.com/amlalejini/signalgp-lite/tag"

// linearModule is a contiguous [begin, end) slice of a flat instruction
// sequence, addressed module-locally via an offset from begin.
type linearModule struct {
	program *LinearProgram
	tag     tag.Tag
	begin   int
	end     int
}

func (m *linearModule) Tag() tag.Tag { return m.tag }
func (m *linearModule) Size() int    { return m.end - m.begin }
func (m *linearModule) Instr(ip int) Instruction {
	return m.program.Flat[m.begin+ip]
}
func (m *linearModule) IsValidPosition(ip int) bool {
	return ip >= 0 && ip < m.Size()
}

// ModuleBound names one module's tag and its [begin, end) slice of the
// flat instruction sequence, as identified by scanning for ModuleDef
// delimiters (that scan needs the instruction library's property table,
// so it lives in the vm package, not here; see vm.BuildLinearProgram).
type ModuleBound struct {
	Tag   tag.Tag
	Begin int
	End   int
}

// LinearProgram is a single flat instruction sequence; modules are
// slices delimited by instructions carrying the MODULE property
// (§4.C's "linear" shape).
type LinearProgram struct {
	Flat    []Instruction
	modules []*linearModule
}

// NewLinearProgram builds a LinearProgram from a flat sequence and its
// precomputed module boundaries.
func NewLinearProgram(flat []Instruction, bounds []ModuleBound) *LinearProgram {
	p := &LinearProgram{Flat: flat}
	p.modules = make([]*linearModule, len(bounds))
	for i, b := range bounds {
		p.modules[i] = &linearModule{program: p, tag: b.Tag, begin: b.Begin, end: b.End}
	}
	return p
}

func (p *LinearProgram) NumModules() int { return len(p.modules) }

func (p *LinearProgram) Module(mp int) Module { return p.modules[mp] }

// Size returns the whole program's flat instruction count, consumed by
// the linear-shape If/While/Countdown bob computation (§9 Open Question
// 1): the original source literally uses program length here, not
// module length, and this port preserves that behavior.
func (p *LinearProgram) Size() int { return len(p.Flat) }
