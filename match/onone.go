package match

import "github.com/coregx/regena/expr"

// Onone runs whole-match simulation directly against the position
// automaton through a Cache, with no upfront DFA construction at all —
// the level a pattern falls back to when dfa.Construct reports
// ErrStateLimit. Because the Cache memoizes every transition it
// computes, repeated Match calls on the same Regex amortize the
// simulation cost down toward O0's table-lookup speed without ever
// paying subset construction's worst-case blowup up front.
type Onone struct {
	cache *Cache
}

// NewOnone builds an Onone engine over tree's root, accepting whenever
// the live subset satisfies accept.
func NewOnone(tree *expr.Tree, root expr.NodeID, accept func(expr.StateSet) bool, maxCacheStates int) *Onone {
	start := tree.Node(root).First()
	return &Onone{cache: NewCache(tree, start, accept, maxCacheStates)}
}

// Match reports whether s, taken as a whole, matches.
func (o *Onone) Match(s []byte) bool {
	state := o.cache.Start()
	for _, b := range s {
		state = o.cache.Step(state, b)
		if state == nil {
			return false
		}
	}
	return state.Accepting()
}

// ClearCount exposes the underlying cache's clear counter, mostly for
// tests and diagnostics.
func (o *Onone) ClearCount() int { return o.cache.ClearCount() }
