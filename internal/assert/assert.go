// Package assert implements the core's invariant-violation checks,
// ported from the original source's emp_assert: a violation indicates
// an implementation bug, never a program-level condition (§7), and is
// only fatal when AssertionsEnabled is true — tests can toggle this
// rather than relying on a build tag.
package assert

import "fmt"

// AssertionsEnabled gates whether Check panics. Defaults to true so
// tests catch invariant violations; a release build can flip it off.
var AssertionsEnabled = true

// Check panics with msg if cond is false and assertions are enabled.
func Check(cond bool, msg string, args ...interface{}) {
	if cond || !AssertionsEnabled {
		return
	}
	panic("assert: " + fmt.Sprintf(msg, args...))
}
