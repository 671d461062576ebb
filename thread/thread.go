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

// Package thread implements the thread pool: spawning, priority-based
// admission, pending→active promotion, reaping dead threads, and
// fairness of execution order (§4.F). No BaseCPU.hpp source for this
// component was retrieved; it is built directly from the spec's
// contract, styled on miner/worker.go's channel/set-bookkeeping idiom.
package thread

import (
	"github.com/google/uuid"

	"github.com/amlalejini/signalgp-lite/exec"
)

// Status is a thread's lifecycle state (§3).
type Status uint8

const (
	Pending Status = iota
	Active
	Dead
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Active:
		return "active"
	case Dead:
		return "dead"
	default:
		return "unknown"
	}
}

// Thread is one logical concurrent program: an execution state, a
// scheduling priority, and a lifecycle status (§3).
type Thread struct {
	ID       uint64
	Priority int
	Status   Status
	Exec     *exec.ExecState
	TraceID  uuid.UUID
}
