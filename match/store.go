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

// Package match implements the cache-backed tag similarity search that
// sits behind module dispatch, plus the per-module regulators that bias
// it (§4.A of the core design).
package match

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/amlalejini/signalgp-lite/tag"
)

const defaultCacheSize = 1024

// entry is one module's dispatch-relevant state: its tag and the
// regulator biasing its selection.
type entry struct {
	tag       tag.Tag
	regulator tag.Regulator
}

// Store owns the id→(tag, regulator) table and a query cache, matching
// the MatchStore data model of §3. It is grounded on
// consensus/pob/snapshot.go's sigcache *lru.ARCCache field: an ARC cache
// keyed on the query, invalidated wholesale on any write to the
// underlying table (the teacher invalidates per-block-hash; here we
// invalidate on every mutation of the module set or a regulator).
type Store struct {
	mu        sync.RWMutex
	metric    tag.Metric
	selector  tag.Selector
	decayStep float64

	modules map[uint64]*entry
	order   []uint64 // stable insertion order, for deterministic iteration

	cache *lru.ARCCache
	sf    singleflight.Group
	dirty bool
}

// NewStore constructs an empty Store. cacheSize <= 0 uses a sane default.
func NewStore(metric tag.Metric, selector tag.Selector, decayStep float64, cacheSize int) *Store {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which cacheSize
		// can no longer be at this point; an implementation bug if hit.
		panic(fmt.Sprintf("match: failed to allocate ARC cache: %v", err))
	}
	return &Store{
		metric:   metric,
		selector: selector,

		decayStep: decayStep,
		modules:   make(map[uint64]*entry),
		cache:     cache,
	}
}

// SetModules replaces the entire module table, as happens whenever a
// program is (re)installed (§3: "the MatchStore cache is invalidated
// whenever the program is assigned and repopulated lazily on the next
// dispatch"). Existing regulators for ids no longer present are
// discarded; regulators for surviving ids are preserved.
func (s *Store) SetModules(ids []uint64, tags []tag.Tag) {
	if len(ids) != len(tags) {
		panic("match: SetModules: ids and tags length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[uint64]*entry, len(ids))
	order := make([]uint64, len(ids))
	for i, id := range ids {
		if old, ok := s.modules[id]; ok {
			old.tag = tags[i]
			next[id] = old
		} else {
			next[id] = &entry{tag: tags[i], regulator: tag.NewAdditiveCountdownRegulator(s.decayStep)}
		}
		order[i] = id
	}
	s.modules = next
	s.order = order
	s.invalidateLocked()
}

// Match returns up to n module ids ordered by regulated similarity to
// query, ties broken by ascending id.
func (s *Store) Match(query tag.Tag, n int) []uint64 {
	return s.lookup(query, n, true)
}

// MatchRaw is the same search ignoring regulators, used by regulation
// instructions so that a module's own bias cannot distort the lookup
// used to find it (§4.A, §6).
func (s *Store) MatchRaw(query tag.Tag, n int) []uint64 {
	return s.lookup(query, n, false)
}

func (s *Store) lookup(query tag.Tag, n int, regulated bool) []uint64 {
	key := cacheKey(query, n, regulated)
	if v, ok := s.cache.Get(key); ok {
		return v.([]uint64)
	}
	v, _, _ := s.sf.Do(key, func() (interface{}, error) {
		if v, ok := s.cache.Get(key); ok {
			return v, nil
		}
		result := s.recompute(query, n, regulated)
		s.cache.Add(key, result)
		return result, nil
	})
	return v.([]uint64)
}

func (s *Store) recompute(query tag.Tag, n int, regulated bool) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]tag.Candidate, 0, len(s.order))
	for _, id := range s.order {
		e := s.modules[id]
		reg := 0.0
		if regulated {
			reg = e.regulator.Value()
		}
		candidates = append(candidates, tag.Candidate{ID: id, Tag: e.tag, Regulator: reg})
	}
	return s.selector.Select(s.metric, query, candidates, n)
}

// SetRegulator overwrites module id's regulator bias outright. A no-op
// (silent) if id is unknown — regulation by a stale module id is a
// program-level mis-execution, not an error (§7).
func (s *Store) SetRegulator(id uint64, v float64) {
	s.mutateRegulator(id, func(r tag.Regulator) { r.Set(v) })
}

// AdjustRegulator adds delta to module id's regulator bias.
func (s *Store) AdjustRegulator(id uint64, delta float64) {
	s.mutateRegulator(id, func(r tag.Regulator) { r.Adjust(delta) })
}

// ClearRegulator resets module id's regulator bias to neutral.
func (s *Store) ClearRegulator(id uint64) {
	s.mutateRegulator(id, func(r tag.Regulator) { r.Clear() })
}

// ViewRegulator reads module id's current regulator bias. Returns 0 for
// an unknown id.
func (s *Store) ViewRegulator(id uint64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.modules[id]; ok {
		return e.regulator.Value()
	}
	return 0
}

func (s *Store) mutateRegulator(id uint64, fn func(tag.Regulator)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.modules[id]
	if !ok {
		return
	}
	fn(e.regulator)
	s.invalidateLocked()
}

// Tick advances every module's regulator by one step-cycle of decay.
// Invoked once per vm.Hardware.SingleProcess, after the thread
// manager's step-cycle.
func (s *Store) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.modules {
		e.regulator.Tick()
	}
	s.invalidateLocked()
}

func (s *Store) invalidateLocked() {
	s.dirty = true
	s.cache.Purge()
	s.dirty = false
}

// Dirty reports whether the cache is out of sync with the module table.
// Always false between calls in this implementation, since invalidation
// is applied eagerly; exposed for the invariant-4 test in §8.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func cacheKey(q tag.Tag, n int, regulated bool) string {
	b := q.Bytes()
	mode := byte(0)
	if regulated {
		mode = 1
	}
	return fmt.Sprintf("%x:%d:%d", b, n, mode)
}
