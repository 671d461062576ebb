package instr

import "github.com/amlalejini/signalgp-lite/program"

// Hook is the single before-dispatch observer signature (§4.D). A
// subscriber may read but must not mutate the instruction, matching the
// original source's emp::Signal<void(hardware_t&, const inst_t&)>
// before_inst_exec — ported here as one slot rather than an observer
// list per SPEC_FULL.md's redesign note.
type Hook func(ctx Context, inst program.Instruction)

// Library is the id↔name↔definition registry (§4.D), styled on
// probe-lang/lang/vm/opcodes.go's array-indexed opcodeTable: a dense
// slice indexed by id backs lookup, with a side map for name lookup.
type Library struct {
	defs    []Def
	byName  map[string]uint32
	hook    Hook
}

// NewLibrary returns an empty Library.
func NewLibrary() *Library {
	return &Library{byName: make(map[string]uint32)}
}

// Register adds def to the library. def.ID must equal the library's
// current length (ids are assigned densely in registration order);
// panics otherwise, since a gap would break the slice-indexed lookup —
// an implementation bug, not a program-level condition.
func (l *Library) Register(def Def) {
	if int(def.ID) != len(l.defs) {
		panic("instr: Register: id must equal next free slot")
	}
	l.defs = append(l.defs, def)
	l.byName[def.Name] = def.ID
}

// Get returns the definition for id, or false if unregistered.
func (l *Library) Get(id uint32) (Def, bool) {
	if int(id) >= len(l.defs) {
		return Def{}, false
	}
	return l.defs[id], true
}

// GetByName returns the definition registered under name.
func (l *Library) GetByName(name string) (Def, bool) {
	id, ok := l.byName[name]
	if !ok {
		return Def{}, false
	}
	return l.Get(id)
}

// Len returns the number of registered instructions.
func (l *Library) Len() int { return len(l.defs) }

// SetHook installs the single before-dispatch observer, replacing any
// previously installed hook. Passing nil removes it.
func (l *Library) SetHook(h Hook) { l.hook = h }

// Run dispatches inst: fires the before-exec hook (if any), then the
// registered behavior for inst.ID. An unregistered id is a programmatic
// misuse (the program references an instruction the library never
// defined) and panics, rather than silently doing nothing — distinct
// from the program-level mis-execution cases that are silent no-ops
// (§7).
func (l *Library) Run(ctx Context, inst program.Instruction) {
	def, ok := l.Get(inst.ID)
	if !ok {
		panic("instr: Run: unregistered instruction id")
	}
	if l.hook != nil {
		l.hook(ctx, inst)
	}
	def.Run(ctx, inst)
}
