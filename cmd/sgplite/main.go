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

// sgplite is a minimal driver over the VM core: it installs a fixture
// program, spawns a handful of threads against it, and runs step-cycles
// printing thread and memory state as it goes. It is not a genetic
// programming harness — evolving, mutating, and serializing programs is
// explicitly out of scope (spec.md §1) — this is the idiomatic "run the
// core and look at it" entry point the way cmd/gprobe and cmd/devp2p
// front their packages.
package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v1"

	"github.com/amlalejini/signalgp-lite/sgplog"
	"github.com/amlalejini/signalgp-lite/vm"
	"github.com/amlalejini/signalgp-lite/vmconfig"
)

var (
	cyclesFlag = cli.IntFlag{
		Name:  "cycles",
		Usage: "number of step-cycles to run",
		Value: 10,
	}
	threadsFlag = cli.IntFlag{
		Name:  "threads",
		Usage: "number of threads to spawn against module 0 before running",
		Value: 1,
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML file overriding vmconfig.Defaults",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "loglevel",
		Usage: "trace|debug|info|warn|error|crit",
		Value: "info",
	}
	quietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "suppress per-cycle state dumps",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "sgplite"
	app.Usage = "run the SignalGP-Lite VM core against a fixture program"
	app.Flags = []cli.Flag{cyclesFlag, threadsFlag, configFlag, logLevelFlag, quietFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "sgplite:", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	sgplog.SetRoot(sgplog.New(os.Stderr, parseLevel(ctx.String(logLevelFlag.Name))))

	cfg := vmconfig.Defaults
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := vmconfig.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	hw := vm.NewHardware(cfg)
	if err := hw.SetProgram(demoProgram()); err != nil {
		return fmt.Errorf("installing fixture program: %w", err)
	}

	n := ctx.Int(threadsFlag.Name)
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		if _, ok := hw.SpawnThreadWithID(0, 1); !ok {
			return fmt.Errorf("thread pool exhausted after %d of %d spawns", i, n)
		}
	}

	quiet := ctx.Bool(quietFlag.Name)
	cycles := ctx.Int(cyclesFlag.Name)
	for c := 1; c <= cycles; c++ {
		if err := hw.SingleProcess(); err != nil {
			return fmt.Errorf("cycle %d: %w", c, err)
		}
		if !quiet {
			dumpCycle(c, hw)
		}
	}
	return nil
}

func dumpCycle(cycle int, hw *vm.Hardware) {
	fmt.Printf("cycle %d: active=%v pending=%v global[0]=%v\n",
		cycle, hw.ActiveThreadIDs(), hw.PendingThreadIDs(), hw.Global().Get(0))

	for _, id := range hw.ActiveThreadIDs() {
		th := hw.Thread(id)
		if th == nil || th.Exec == nil || th.Exec.Dead() {
			continue
		}
		working := th.Exec.TopCall().Memory.Working()
		keys := make([]int, 0, len(working))
		for k := range working {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		fmt.Printf("  thread %d (priority %d): working=%v\n", th.ID, th.Priority, keysValues(working, keys))
	}
}

func keysValues(m map[int]float64, keys []int) map[int]float64 {
	out := make(map[int]float64, len(keys))
	for _, k := range keys {
		out[k] = m[k]
	}
	return out
}

func parseLevel(s string) sgplog.Level {
	switch s {
	case "trace":
		return sgplog.LvlTrace
	case "debug":
		return sgplog.LvlDebug
	case "warn":
		return sgplog.LvlWarn
	case "error":
		return sgplog.LvlError
	case "crit":
		return sgplog.LvlCrit
	default:
		return sgplog.LvlInfo
	}
}
