package match

import "github.com/coregx/regena/dfa"

// Interp is the O0 backend: a direct walk of a fully-constructed DFA's
// transition table, one array index per byte. No per-call allocation,
// no map lookups — this is the engine level the optimizer escalates
// to once a pattern's DFA is small enough to build eagerly (within
// dfa.Construct's state_limit).
type Interp struct {
	d *dfa.DFA
}

// NewInterp wraps a constructed DFA for O0 execution.
func NewInterp(d *dfa.DFA) *Interp { return &Interp{d: d} }

// Match reports whether s, taken as a whole, matches.
func (in *Interp) Match(s []byte) bool {
	state, ok := in.d.FullMatch(s)
	return ok && in.d.Accepting(state)
}
