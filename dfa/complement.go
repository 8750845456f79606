package dfa

// Complement returns a DFA accepting exactly the strings d rejects.
// Because d's transition table uses Reject as a sentinel rather than
// an explicit trap state, complementing first has to "totalize" the
// table: every Reject edge is redirected to a fresh absorbing trap
// state that accepts (a byte that kills the original match makes the
// complement match, and no further byte can undo that), then every
// original accept bit is flipped.
//
// Grounded on the reference implementation's DFA::Complement in
// original_source/src/dfa.cc, which inserts the same kind of
// catch-all sink state before inverting acceptance.
func Complement(d *DFA) *DFA {
	n := d.Size()
	trap := State(n)
	out := newState(n + 1)
	for s := 0; s < n; s++ {
		for c := 0; c < 256; c++ {
			to := d.transition[s][c]
			if to == Reject {
				to = trap
			}
			out.transition[s][c] = to
		}
		out.accept[s] = !d.accept[s]
	}
	for c := range out.transition[trap] {
		out.transition[trap][c] = trap
	}
	out.accept[trap] = true

	for s := 0; s <= n; s++ {
		out.defaultNxt[s] = computeDefault(&out.transition[s])
		var dst []State
		for c := 0; c < 256; c++ {
			dst = append(dst, out.transition[s][c])
		}
		out.dst[s] = sortedUnique(dst)
	}
	for s := 0; s <= n; s++ {
		for _, to := range out.dst[s] {
			out.src[to] = append(out.src[to], State(s))
		}
	}
	for s := range out.src {
		out.src[s] = sortedUnique(out.src[s])
	}
	return out
}
