package expr

import "math/bits"

// ByteSet is a 256-bit membership table for bytes, with an optional
// negation flag used to keep large negated classes compact: when a
// class's raw population is >= 128 and it wasn't already negated, the
// parser stores its complement instead and flips Negative, matching
// the reference grammar's compaction rule (see CharClass parsing in
// spec.md §4.B).
type ByteSet struct {
	bits     [4]uint64
	Negative bool
}

// NewByteSet returns an empty class.
func NewByteSet() *ByteSet { return &ByteSet{} }

// Set marks byte b as a raw member of the table (independent of
// Negative — Test is what applies the negation).
func (s *ByteSet) Set(b byte) {
	s.bits[b>>6] |= 1 << (b & 63)
}

// SetRange marks [lo, hi] inclusive.
func (s *ByteSet) SetRange(lo, hi byte) {
	for i := int(lo); i <= int(hi); i++ {
		s.Set(byte(i))
	}
}

// rawTest reports raw table membership, ignoring Negative.
func (s *ByteSet) rawTest(b byte) bool {
	return s.bits[b>>6]&(1<<(b&63)) != 0
}

// Test reports whether b is matched by this class, honoring Negative.
func (s *ByteSet) Test(b byte) bool {
	return s.rawTest(b) != s.Negative
}

// Count returns the number of bytes matched (honoring Negative).
func (s *ByteSet) Count() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	if s.Negative {
		return 256 - n
	}
	return n
}

// RawCount returns the population of the raw table, ignoring Negative.
func (s *ByteSet) RawCount() int {
	n := 0
	for _, w := range s.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// Flip inverts the raw table in place (used when compacting a
// large negated class: flip the table, flip Negative, net effect is
// unchanged membership but a smaller raw representation isn't actually
// smaller in this bitset — Flip exists to mirror the reference
// std::bitset::flip call and keep Negative meaningful after it).
func (s *ByteSet) Flip() {
	for i := range s.bits {
		s.bits[i] = ^s.bits[i]
	}
}

// Clone returns a deep copy.
func (s *ByteSet) Clone() *ByteSet {
	cp := *s
	return &cp
}
