// Package dfa implements DFA construction and algebra over the
// position-automaton built by package expr: capped subset construction
// (component C), table-based minimisation, structural complement, and
// a DFA→regex back-converter built on generalised-NFA state
// elimination (component D). It also holds the transition optimiser
// (component E) that compresses rows into the AlterTrans
// two-successor form the match engine and JIT backend consume.
//
// Grounded on the reference implementation's DFA class (original_source
// /src/dfa.cc: Minimize, Complement, EliminateBranch, Reduce) and on
// CreateRegexFromDFA in original_source/src/regex.cc (GNFA state
// elimination), re-expressed with Go value slices and integer
// sentinels instead of std::deque/std::set of raw state numbers.
package dfa

// State identifies a DFA state. Dense in [0, N).
type State int32

// Reject is the sentinel "no transition, fail" state.
const Reject State = -1

// None is the "no compressed alternate transition" sentinel.
// AlterTransRow does not use it: an absent range there has Valid false.
const None State = -2

// DFA is a row-major transition table plus the auxiliary arrays the
// algebra and optimiser passes need.
type DFA struct {
	transition [][256]State
	accept     []bool
	defaultNxt []State
	dst        [][]State // distinct successors per state, Reject included when present
	src        [][]State // inverse adjacency, Reject excluded

	alter       []AlterTransRow // populated by CompressTransitions
	inlineLevel []int           // populated by ComputeInlineLevels

	minimal bool
}

// Size returns the number of states.
func (d *DFA) Size() int { return len(d.transition) }

// Start returns the start state id, always 0.
func (d *DFA) Start() State { return 0 }

// Next returns the transition for (s, b).
func (d *DFA) Next(s State, b byte) State { return d.transition[s][b] }

// Row returns the raw 256-entry transition row for state s. Callers
// must not mutate it.
func (d *DFA) Row(s State) *[256]State { return &d.transition[s] }

// Accepting reports whether s is an accept state.
func (d *DFA) Accepting(s State) bool { return d.accept[s] }

// DefaultNext returns the most common successor in s's row (a hint
// used by row compression; not authoritative on its own).
func (d *DFA) DefaultNext(s State) State { return d.defaultNxt[s] }

// Dst returns the distinct successor set of s (Reject included if any
// byte rejects).
func (d *DFA) Dst(s State) []State { return d.dst[s] }

// Src returns the states with a transition into s.
func (d *DFA) Src(s State) []State { return d.src[s] }

// IsMinimal reports whether Minimize has already run to a fixed point.
func (d *DFA) IsMinimal() bool { return d.minimal }

// FullMatch walks the full table from the start state over [b:e),
// returning the final state or Reject if the walk died.
func (d *DFA) FullMatch(s []byte) (State, bool) {
	state := d.Start()
	for _, c := range s {
		state = d.transition[state][c]
		if state == Reject {
			return Reject, false
		}
	}
	return state, true
}

func newState(n int) *DFA {
	return &DFA{
		transition: make([][256]State, n),
		accept:     make([]bool, n),
		defaultNxt: make([]State, n),
		dst:        make([][]State, n),
		src:        make([][]State, n),
	}
}

func computeDefault(row *[256]State) State {
	counts := map[State]int{}
	best, bestN := Reject, -1
	for _, s := range row {
		counts[s]++
		if counts[s] > bestN {
			best, bestN = s, counts[s]
		}
	}
	return best
}

func sortedUnique(xs []State) []State {
	seen := map[State]bool{}
	out := xs[:0:0]
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
