package dfa

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/coregx/regena/expr"
)

// ErrStateLimit is returned by Construct when subset construction would
// exceed the configured cap — the engine's signal to fall back to the
// cached-NFA simulator instead of building a DFA for this pattern.
var ErrStateLimit = errors.New("dfa: state limit exceeded during subset construction")

// defaultStateLimit mirrors the reference implementation's rule of
// thumb (cube of the position count), clamped so a pathological
// pattern can't force a multi-gigabyte table before Construct notices.
func defaultStateLimit(numPositions int) int {
	n := numPositions * numPositions * numPositions
	if n <= 0 || n > 1<<20 {
		return 1 << 20
	}
	return n
}

// AcceptFunc decides whether a subset of positions is accepting. Single
// patterns accept when the subset contains their one EOP position;
// intersection realises conjunctive acceptance (every operand's EOP
// must be present) by supplying a different AcceptFunc — see
// AcceptsAny/AcceptsAll.
type AcceptFunc func(expr.StateSet) bool

// AcceptsAny builds an AcceptFunc that accepts a subset containing at
// least one of the given positions.
func AcceptsAny(eops ...expr.StateID) AcceptFunc {
	return func(ss expr.StateSet) bool {
		for _, e := range eops {
			if ss.Contains(e) {
				return true
			}
		}
		return false
	}
}

// AcceptsAll builds an AcceptFunc that accepts a subset only when every
// given position is present — the conjunctive acceptance rule used to
// realise intersection (&): a string matches e1&e2&...&en iff every
// operand's own EOP is simultaneously reachable.
func AcceptsAll(eops ...expr.StateID) AcceptFunc {
	return func(ss expr.StateSet) bool {
		for _, e := range eops {
			if !ss.Contains(e) {
				return false
			}
		}
		return true
	}
}

func keyOf(ss expr.StateSet) string {
	buf := make([]byte, 4*len(ss))
	for i, s := range ss {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(s))
	}
	return string(buf)
}

// Construct runs Glushkov subset construction over the position
// automaton rooted at root (already Number'd and FillTransition'd),
// bounded by stateLimit (0 selects a size-derived default). It returns
// ErrStateLimit if the frontier would grow past the cap.
//
// Grounded on the reference implementation's DFA::Reduce/Transition
// construction loop in original_source/src/regex.cc (the NFA→DFA
// subset loop preceding AlterTrans compression), re-expressed with a
// hash-consed map keyed by the sorted position set instead of a
// std::map<std::set<state_t>, state_t>.
func Construct(t *expr.Tree, root expr.NodeID, accept AcceptFunc, stateLimit int) (*DFA, error) {
	if stateLimit <= 0 {
		stateLimit = defaultStateLimit(t.NumStates())
	}

	start := t.Node(root).First()
	index := map[string]State{}
	subsets := []expr.StateSet{}

	getOrCreate := func(ss expr.StateSet) (State, bool, error) {
		k := keyOf(ss)
		if s, ok := index[k]; ok {
			return s, false, nil
		}
		if len(subsets) >= stateLimit {
			return 0, false, fmt.Errorf("%w: limit %d", ErrStateLimit, stateLimit)
		}
		s := State(len(subsets))
		index[k] = s
		subsets = append(subsets, ss)
		return s, true, nil
	}

	if _, _, err := getOrCreate(start); err != nil { // always becomes state 0
		return nil, err
	}

	var rows [][256]State
	frontier := []State{0}
	for len(frontier) > 0 {
		s := frontier[0]
		frontier = frontier[1:]
		for len(rows) <= int(s) {
			rows = append(rows, [256]State{})
		}
		ss := subsets[s]
		for c := 0; c < 256; c++ {
			var next expr.StateSet
			for _, p := range ss {
				if t.MatchByte(p, byte(c)) {
					next = expr.Union(next, t.Follow(p))
				}
			}
			if len(next) == 0 {
				rows[s][c] = Reject
				continue
			}
			ns, created, err := getOrCreate(next)
			if err != nil {
				return nil, err
			}
			rows[s][c] = ns
			if created {
				frontier = append(frontier, ns)
			}
		}
	}

	d := newState(len(subsets))
	for s := 0; s < len(subsets); s++ {
		if s < len(rows) {
			d.transition[s] = rows[s]
		} else {
			for c := range d.transition[s] {
				d.transition[s][c] = Reject
			}
		}
		d.accept[s] = accept(subsets[s])
		d.defaultNxt[s] = computeDefault(&d.transition[s])

		var dst []State
		for c := 0; c < 256; c++ {
			dst = append(dst, d.transition[s][c])
		}
		d.dst[s] = sortedUnique(dst)
	}
	for s := 0; s < len(subsets); s++ {
		for _, to := range d.dst[s] {
			if to == Reject {
				continue
			}
			d.src[to] = append(d.src[to], State(s))
		}
	}
	for s := range d.src {
		d.src[s] = sortedUnique(d.src[s])
	}
	return d, nil
}
