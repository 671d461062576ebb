package thread

import (
	mapset "github.com/deckarep/golang-set"
	"github.com/google/uuid"

	"github.com/amlalejini/signalgp-lite/exec"
	"github.com/amlalejini/signalgp-lite/tag"
)

type pendingEntry struct {
	id       uint64
	priority int
}

// Manager owns the fixed-capacity thread-slot pool and every piece of
// per-cycle bookkeeping §4.F names: threads, active_ids, pending_ids,
// unused_ids, max_active.
type Manager struct {
	stepper *exec.Stepper

	capacity  int
	maxActive int

	slots      []*Thread
	activeIDs  []uint64
	pendingIDs []pendingEntry
	unusedIDs  []uint64

	// demotedThisCycle tracks ids evicted from active back to pending
	// during the current promotion pass, so the pass never re-admits one
	// within the same step_cycle. Grounded on miner/worker.go's
	// mapset.Set-backed ancestors/family/uncles bookkeeping fields.
	demotedThisCycle mapset.Set
}

// NewManager constructs a Manager with capacity thread slots, of which
// at most maxActive may be active simultaneously.
func NewManager(stepper *exec.Stepper, capacity, maxActive int) *Manager {
	if maxActive > capacity {
		maxActive = capacity
	}
	m := &Manager{
		stepper:   stepper,
		capacity:  capacity,
		maxActive: maxActive,
		slots:     make([]*Thread, capacity),
	}
	for i := 0; i < capacity; i++ {
		m.unusedIDs = append(m.unusedIDs, uint64(i))
	}
	return m
}

// SpawnThreadWithID allocates a slot (from unused_ids, or by evicting
// the lowest-priority pending thread if there is none free and the new
// priority strictly exceeds it), initializes its ExecState by calling
// mp, and appends it to pending_ids. Fails (returns false) if no slot
// can be found or mp has no valid module to call (§4.F).
func (m *Manager) SpawnThreadWithID(mp int, priority int) (uint64, bool) {
	id, ok := m.allocateSlot(priority)
	if !ok {
		return 0, false
	}

	es := exec.NewExecState()
	if !m.stepper.InitThread(es, mp) {
		m.unusedIDs = append(m.unusedIDs, id)
		return 0, false
	}

	m.slots[id] = &Thread{ID: id, Priority: priority, Status: Pending, Exec: es, TraceID: uuid.New()}
	m.pendingIDs = append(m.pendingIDs, pendingEntry{id: id, priority: priority})
	return id, true
}

// SpawnThreadWithTag matches q against the (regulated) match store and
// spawns the best hit, mirroring §6's event-injection pathway.
func (m *Manager) SpawnThreadWithTag(q tag.Tag, priority int) (uint64, bool) {
	hits := m.stepper.Matches.Match(q, 1)
	if len(hits) == 0 {
		return 0, false
	}
	return m.SpawnThreadWithID(int(hits[0]), priority)
}

func (m *Manager) allocateSlot(priority int) (uint64, bool) {
	if len(m.unusedIDs) > 0 {
		id := m.unusedIDs[len(m.unusedIDs)-1]
		m.unusedIDs = m.unusedIDs[:len(m.unusedIDs)-1]
		return id, true
	}
	if len(m.pendingIDs) == 0 {
		return 0, false
	}
	lowIdx := lowestPriorityIndex(m.pendingIDs)
	if priority <= m.pendingIDs[lowIdx].priority {
		return 0, false
	}
	evicted := m.pendingIDs[lowIdx]
	m.pendingIDs = append(m.pendingIDs[:lowIdx], m.pendingIDs[lowIdx+1:]...)
	return evicted.id, true
}

func lowestPriorityIndex(entries []pendingEntry) int {
	lowest := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].priority < entries[lowest].priority {
			lowest = i
		}
	}
	return lowest
}

// ExecStateOf returns id's ExecState, implementing exec.ThreadSpawner
// for the Fork instruction.
func (m *Manager) ExecStateOf(id uint64) (*exec.ExecState, bool) {
	if int(id) >= len(m.slots) || m.slots[id] == nil {
		return nil, false
	}
	return m.slots[id].Exec, true
}

// Thread returns the slot for id, or nil if unallocated.
func (m *Manager) Thread(id uint64) *Thread {
	if int(id) >= len(m.slots) {
		return nil
	}
	return m.slots[id]
}

// ActiveThreadIDs returns the current active execution order.
func (m *Manager) ActiveThreadIDs() []uint64 {
	out := make([]uint64, len(m.activeIDs))
	copy(out, m.activeIDs)
	return out
}

// PendingThreadIDs returns the current pending set (unordered).
func (m *Manager) PendingThreadIDs() []uint64 {
	out := make([]uint64, len(m.pendingIDs))
	for i, e := range m.pendingIDs {
		out[i] = e.id
	}
	return out
}

// StepCycle runs exactly one step_cycle (§4.F): steps every thread in
// activeIDs as it stood at the start of the cycle, then promotes
// pending threads by priority (ties FIFO), evicting lower-priority
// active threads if needed, then reaps dead threads.
func (m *Manager) StepCycle() {
	order := make([]uint64, len(m.activeIDs))
	copy(order, m.activeIDs)

	for _, id := range order {
		th := m.slots[id]
		if th == nil || th.Status != Active {
			continue
		}
		if m.stepper.Step(th.Exec) {
			th.Status = Dead
		}
	}

	m.demotedThisCycle = mapset.NewSet()
	m.promotePending()

	m.reapDead()
}

func (m *Manager) promotePending() {
	for len(m.pendingIDs) > 0 {
		idx := highestPriorityIndex(m.pendingIDs, m.demotedThisCycle)
		if idx < 0 {
			return
		}
		candidate := m.pendingIDs[idx]

		if len(m.activeIDs) < m.maxActive {
			m.pendingIDs = append(m.pendingIDs[:idx], m.pendingIDs[idx+1:]...)
			m.admit(candidate)
			continue
		}

		lowIdx, lowPriority := m.lowestActivePriority()
		if candidate.priority <= lowPriority {
			// Nothing in the remaining pending set can beat this either
			// (candidate was the best available), so admission is done.
			return
		}
		m.pendingIDs = append(m.pendingIDs[:idx], m.pendingIDs[idx+1:]...)
		m.demote(lowIdx)
		m.admit(candidate)
	}
}

func (m *Manager) admit(e pendingEntry) {
	th := m.slots[e.id]
	th.Status = Active
	m.activeIDs = append(m.activeIDs, e.id)
}

func (m *Manager) demote(activeIdx int) {
	id := m.activeIDs[activeIdx]
	th := m.slots[id]
	th.Status = Pending
	m.activeIDs = append(m.activeIDs[:activeIdx], m.activeIDs[activeIdx+1:]...)
	m.pendingIDs = append(m.pendingIDs, pendingEntry{id: id, priority: th.Priority})
	m.demotedThisCycle.Add(id)
}

func (m *Manager) lowestActivePriority() (int, int) {
	lowIdx := 0
	lowPriority := m.slots[m.activeIDs[0]].Priority
	for i := 1; i < len(m.activeIDs); i++ {
		p := m.slots[m.activeIDs[i]].Priority
		if p < lowPriority {
			lowPriority = p
			lowIdx = i
		}
	}
	return lowIdx, lowPriority
}

func highestPriorityIndex(entries []pendingEntry, skip mapset.Set) int {
	best := -1
	for i, e := range entries {
		if skip != nil && skip.Contains(e.id) {
			continue
		}
		if best == -1 || e.priority > entries[best].priority {
			best = i
		}
	}
	return best
}

func (m *Manager) reapDead() {
	kept := m.activeIDs[:0]
	for _, id := range m.activeIDs {
		th := m.slots[id]
		if th.Status == Dead {
			m.slots[id] = nil
			m.unusedIDs = append(m.unusedIDs, id)
			continue
		}
		kept = append(kept, id)
	}
	m.activeIDs = kept
}

// Reset returns every thread slot to unused and clears all bookkeeping
// (§4.F).
func (m *Manager) Reset() {
	m.slots = make([]*Thread, m.capacity)
	m.activeIDs = nil
	m.pendingIDs = nil
	m.unusedIDs = nil
	for i := 0; i < m.capacity; i++ {
		m.unusedIDs = append(m.unusedIDs, uint64(i))
	}
}
