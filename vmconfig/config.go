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

// Package vmconfig holds the VM's tunable parameters: thread pool
// sizing, call-depth caps, match cache sizing, and regulator decay,
// loadable from TOML. Styled on probe/probeconfig.Config's
// package-level Defaults pattern and consensus/pob.Config's
// non-serializable Log field.
package vmconfig

import (
	"os"

	"github.com/naoina/toml"

	"github.com/amlalejini/signalgp-lite/sgplog"
)

// Config holds every tunable of one Hardware instance.
type Config struct {
	// MaxCallDepth caps call_stack growth per thread; CallModule becomes
	// a silent no-op at this depth (§3 invariant 1, §4.E). Zero means
	// unbounded.
	MaxCallDepth int

	// ThreadCapacity is the fixed number of thread slots C (§4.F).
	ThreadCapacity int

	// MaxActive is the scheduler's concurrency cap A, A <= ThreadCapacity
	// (§4.F).
	MaxActive int

	// MatchCacheSize bounds the match store's ARC query cache.
	MatchCacheSize int

	// RegulatorDecayStep is the per-tick decay applied by
	// AdditiveCountdownRegulator. Zero disables decay.
	RegulatorDecayStep float64

	// TerminalMin and TerminalMax parameterize the Terminal instruction's
	// tag-to-double projection, frac*(max-min) - min (§6); defaults 0
	// and 1.
	TerminalMin float64
	TerminalMax float64

	Log sgplog.Logger `toml:"-"`
}

// Defaults is a ready-to-use configuration for small test programs.
var Defaults = Config{
	MaxCallDepth:       64,
	ThreadCapacity:     64,
	MaxActive:          16,
	MatchCacheSize:     1024,
	RegulatorDecayStep: 0,
	TerminalMin:        0,
	TerminalMax:        1,
}

// Load reads a TOML config file at path, starting from Defaults for any
// field the file omits.
func Load(path string) (Config, error) {
	cfg := Defaults
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
