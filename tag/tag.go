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

// Package tag implements the fixed-width bit-pattern tags used for
// approximate-match module dispatch, and the default metric/selector/
// regulator policies that back the match store.
package tag

import (
	"crypto/rand"

	"github.com/holiman/uint256"
)

// Bits is the fixed width of a Tag, in bits. The core treats this as a
// program-wide constant; 256 bits matches the width of the backing
// uint256.Int exactly so As Integer never truncates.
const Bits = 256

// Tag is an opaque fixed-width bit pattern used as an approximate-match
// key. It is comparable by value and safe to copy.
type Tag struct {
	bits uint256.Int
}

// FromUint64 builds a Tag whose low 64 bits are v and whose remaining
// bits are zero. Convenient for tests and small fixtures.
func FromUint64(v uint64) Tag {
	var t Tag
	t.bits.SetUint64(v)
	return t
}

// FromBytes builds a Tag from up to 32 big-endian bytes.
func FromBytes(b []byte) Tag {
	var t Tag
	t.bits.SetBytes(b)
	return t
}

// Random returns a Tag drawn uniformly from the space of all possible
// bit patterns using a cryptographically strong source, per §6's
// "construction-from-random" contract on the Tag type.
func Random() Tag {
	var buf [Bits / 8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is an environment-level invariant violation,
		// not a program-level mis-execution; it is reasonable to panic.
		panic("tag: crypto/rand unavailable: " + err.Error())
	}
	return FromBytes(buf[:])
}

// Equal reports whether two tags hold the same bit pattern.
func (t Tag) Equal(o Tag) bool {
	return t.bits.Eq(&o.bits)
}

// Less imposes the strict order the core requires for stable tie-breaks.
func (t Tag) Less(o Tag) bool {
	return t.bits.Lt(&o.bits)
}

// SizeBits returns the fixed width of this tag type.
func (t Tag) SizeBits() int {
	return Bits
}

// AsInteger projects the tag onto its unsigned integer value.
func (t Tag) AsInteger() *uint256.Int {
	v := t.bits
	return &v
}

// Float64 normalizes the tag's integer value into [0, 1), dividing by
// 2^Bits. Used by the Terminal instruction (§6) as the fraction it
// scales by a configurable min and max.
func (t Tag) Float64() float64 {
	// 2^256 has no exact float64 representation; scale down to the top
	// 53 bits (float64's mantissa width) before converting, which keeps
	// the result inside [0, 1) without losing ordering precision.
	var shifted uint256.Int
	shifted.Rsh(&t.bits, Bits-53)
	return float64(shifted.Uint64()) / float64(uint64(1)<<53)
}

// Bytes returns the tag's big-endian byte representation, used as the
// match store's cache key.
func (t Tag) Bytes() [Bits / 8]byte {
	return t.bits.Bytes32()
}

// String implements fmt.Stringer for debug logging.
func (t Tag) String() string {
	return t.bits.Hex()
}
