package vm

import "github.com/amlalejini/signalgp-lite/tag"

// projectTerminal implements the Terminal instruction's tag-to-double
// projection (§6): W[a0] = (as_integer(t0)/(2^bits(t0)-1)) * (max-min) -
// min, preserved literally (including the trailing subtraction rather
// than the addition one might expect) per the spec's explicit formula.
//
// tag.Tag.Float64 divides by 2^bits rather than 2^bits-1; at 256 bits
// the difference is far below float64 precision, so it is used here
// directly rather than reimplementing a 256-bit division.
func projectTerminal(t tag.Tag, min, max float64) float64 {
	frac := t.Float64()
	return frac*(max-min) - min
}
