package dfa

// ByteRange is one compressed [lo, hi] -> next edge within a row (both
// ends inclusive).
type ByteRange struct {
	Lo, Hi byte
	Next   State
	Valid  bool
}

// AlterTransRow is a row compressed to at most two byte-ranges plus a
// default fallback, the shape DFA.Step and the jit package's O2/O3
// closures test against instead of a raw 256-entry array (the O0
// interpreter always walks the full table). Rows that don't compress this tightly keep Compressed false
// and fall back to the full table.
type AlterTransRow struct {
	Default    State
	R1, R2     ByteRange
	Compressed bool
}

// CompressTransitions populates d's AlterTrans rows: for each state,
// pick the most common successor as Default, then check whether the
// remaining bytes partition into at most two contiguous ranges each
// going to a single successor. Patterns with highly irregular
// character classes won't compress; those rows are simply left
// uncompressed (Compressed == false) and callers keep using Row/Next.
//
// Grounded on the reference implementation's AlterTrans struct in
// original_source/src/dfa.h/dfa.cc (two explicit range/next pairs plus
// a default), carried over unchanged in shape since it's a pure
// space/branch optimisation orthogonal to language choice.
func CompressTransitions(d *DFA) {
	d.alter = make([]AlterTransRow, d.Size())
	for s := 0; s < d.Size(); s++ {
		d.alter[s] = compressRow(&d.transition[s], d.defaultNxt[s])
	}
}

func compressRow(row *[256]State, def State) AlterTransRow {
	var ranges []ByteRange
	c := 0
	for c < 256 {
		next := row[c]
		if next == def {
			c++
			continue
		}
		begin := c
		for c+1 < 256 && row[c+1] == next {
			c++
		}
		ranges = append(ranges, ByteRange{Lo: byte(begin), Hi: byte(c), Next: next, Valid: true})
		c++
	}
	out := AlterTransRow{Default: def}
	switch len(ranges) {
	case 0:
		out.Compressed = true
	case 1:
		out.R1 = ranges[0]
		out.Compressed = true
	case 2:
		out.R1, out.R2 = ranges[0], ranges[1]
		out.Compressed = true
	default:
		out.Compressed = false
	}
	return out
}

// Alter returns the compressed row for s and whether CompressTransitions
// has run and succeeded for it.
func (d *DFA) Alter(s State) (AlterTransRow, bool) {
	if d.alter == nil {
		return AlterTransRow{}, false
	}
	row := d.alter[s]
	return row, row.Compressed
}

// Step evaluates a compressed row for byte b, falling back to the raw
// table when the row didn't compress.
func (d *DFA) Step(s State, b byte) State {
	if row, ok := d.Alter(s); ok {
		if row.R1.Valid && b >= row.R1.Lo && b <= row.R1.Hi {
			return row.R1.Next
		}
		if row.R2.Valid && b >= row.R2.Lo && b <= row.R2.Hi {
			return row.R2.Next
		}
		return row.Default
	}
	return d.transition[s][b]
}

// ComputeInlineLevels populates d.inlineLevel: for each state, the
// length of the longest chain of single-successor states reachable by
// always following that successor's own single outgoing edge. The jit
// package fuses a chain this long into one closure instead of one per
// state, cutting the per-byte dispatch overhead of a long run of
// unambiguous transitions (a literal run, a fixed-width class chain).
//
// Grounded on the reference implementation's Reduce/inline_level
// handling in original_source/src/dfa.cc, which computes the same
// notion of "chain of states with one real out-edge" to decide how
// many states XbyakCompiler fuses into one emitted basic block; this
// version measures the chain length instead of emitting code, and the
// jit package consumes the count directly.
func ComputeInlineLevels(d *DFA) {
	if d.alter == nil {
		CompressTransitions(d)
	}
	n := d.Size()
	d.inlineLevel = make([]int, n)
	memo := make([]int, n)
	for i := range memo {
		memo[i] = -1
	}
	var level func(s State) int
	level = func(s State) int {
		if memo[s] >= 0 {
			return memo[s]
		}
		memo[s] = 0 // break cycles conservatively
		next, ok := singleSuccessor(d, s)
		if !ok {
			memo[s] = 1
			return 1
		}
		memo[s] = 1 + level(next)
		return memo[s]
	}
	for s := 0; s < n; s++ {
		d.inlineLevel[s] = level(State(s))
	}
}

// singleSuccessor reports the one non-Reject, non-self successor of s
// when the row has exactly one such target, per AlterTrans.
func singleSuccessor(d *DFA, s State) (State, bool) {
	row, ok := d.Alter(s)
	if !ok {
		return 0, false
	}
	targets := map[State]bool{}
	if row.Default != Reject && row.Default != s {
		targets[row.Default] = true
	}
	if row.R1.Valid && row.R1.Next != Reject && row.R1.Next != s {
		targets[row.R1.Next] = true
	}
	if row.R2.Valid && row.R2.Next != Reject && row.R2.Next != s {
		targets[row.R2.Next] = true
	}
	if len(targets) != 1 {
		return 0, false
	}
	for t := range targets {
		return t, true
	}
	return 0, false
}

// InlineLevel returns the chain length computed by ComputeInlineLevels
// for state s (1 if it hasn't run or s doesn't chain).
func (d *DFA) InlineLevel(s State) int {
	if d.inlineLevel == nil {
		return 1
	}
	return d.inlineLevel[s]
}
