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

// Package sgplog provides the structured, leveled logger used
// throughout the core, styled on the log.Logger call-site convention
// seen across consensus/pob and miner/worker.go
// (log.Info("msg", "key", val, ...)), colorized when writing to a
// terminal.
package sgplog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Level is a logging severity, ordered least to most severe.
type Level int

const (
	LvlTrace Level = iota
	LvlDebug
	LvlInfo
	LvlWarn
	LvlError
	LvlCrit
)

func (l Level) String() string {
	switch l {
	case LvlTrace:
		return "TRACE"
	case LvlDebug:
		return "DEBUG"
	case LvlInfo:
		return "INFO"
	case LvlWarn:
		return "WARN"
	case LvlError:
		return "ERROR"
	case LvlCrit:
		return "CRIT"
	default:
		return "?????"
	}
}

func (l Level) color() *color.Color {
	switch l {
	case LvlTrace, LvlDebug:
		return color.New(color.FgHiBlack)
	case LvlInfo:
		return color.New(color.FgGreen)
	case LvlWarn:
		return color.New(color.FgYellow)
	case LvlError, LvlCrit:
		return color.New(color.FgRed)
	default:
		return color.New()
	}
}

// Logger is the structured logging surface every VM component uses
// instead of calling the stdlib log package directly.
type Logger interface {
	Trace(msg string, ctx ...interface{})
	Debug(msg string, ctx ...interface{})
	Info(msg string, ctx ...interface{})
	Warn(msg string, ctx ...interface{})
	Error(msg string, ctx ...interface{})
	Crit(msg string, ctx ...interface{})
	With(ctx ...interface{}) Logger
}

type logger struct {
	out      io.Writer
	mu       *sync.Mutex
	colorize bool
	minLevel Level
	ctx      []interface{}
}

// New returns a Logger writing to w at minLevel and above. Coloring is
// enabled automatically when w is a terminal (grounded on
// mattn/go-isatty's Fd-based check, with mattn/go-colorable wrapping
// Windows terminals that don't natively understand ANSI codes).
func New(w io.Writer, minLevel Level) Logger {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		if colorize {
			w = colorable.NewColorable(f)
		}
	}
	return &logger{out: w, mu: &sync.Mutex{}, colorize: colorize, minLevel: minLevel}
}

var root = New(os.Stderr, LvlInfo)

// Root returns the package-level default logger.
func Root() Logger { return root }

// SetRoot replaces the package-level default logger.
func SetRoot(l Logger) { root = l }

func (l *logger) log(lvl Level, msg string, ctx []interface{}) {
	if lvl < l.minLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format("15:04:05.000")
	label := lvl.String()
	if l.colorize {
		label = l.colorize_(lvl, label)
	}
	fmt.Fprintf(l.out, "%s [%s] %s", ts, label, msg)
	all := append(append([]interface{}{}, l.ctx...), ctx...)
	for i := 0; i+1 < len(all); i += 2 {
		fmt.Fprintf(l.out, " %v=%v", all[i], all[i+1])
	}
	fmt.Fprintln(l.out)
}

func (l *logger) colorize_(lvl Level, label string) string {
	return lvl.color().Sprint(label)
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.log(LvlTrace, msg, ctx) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.log(LvlDebug, msg, ctx) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.log(LvlInfo, msg, ctx) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.log(LvlWarn, msg, ctx) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.log(LvlError, msg, ctx) }
func (l *logger) Crit(msg string, ctx ...interface{})  { l.log(LvlCrit, msg, ctx) }

func (l *logger) With(ctx ...interface{}) Logger {
	next := &logger{out: l.out, mu: l.mu, colorize: l.colorize, minLevel: l.minLevel}
	next.ctx = append(append([]interface{}{}, l.ctx...), ctx...)
	return next
}
