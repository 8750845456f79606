package match

import (
	"sort"
	"sync"

	"github.com/coregx/regena/expr"
	"github.com/coregx/regena/internal/sparse"
)

// stateKey hashes a sorted position set into a map key. Mirrors
// dfa.keyOf but lives separately since match's cache keys subsets of
// a specific tree, not dfa.DFA rows.
func stateKey(ss expr.StateSet) string {
	buf := make([]byte, 4*len(ss))
	for i, s := range ss {
		buf[i*4] = byte(s >> 24)
		buf[i*4+1] = byte(s >> 16)
		buf[i*4+2] = byte(s >> 8)
		buf[i*4+3] = byte(s)
	}
	return string(buf)
}

// Cache is the Onone engine's memoization table: synthetic states
// discovered while simulating matches against the position automaton,
// indexed by their defining subset. A single Cache is shared by every
// Match call against the same compiled pattern (via Regex), so
// transitions discovered serving one input benefit every later call.
//
// Thread safety: safe for concurrent Match calls on the same Regex, at
// the cost of an RWMutex per state lookup — grounded on the reference
// implementation's dfa/lazy cache, which makes the identical
// trade-off for the same reason (a compiled pattern is commonly shared
// across goroutines).
type Cache struct {
	mu         sync.RWMutex
	tree       *expr.Tree
	accept     func(expr.StateSet) bool
	start      expr.StateSet
	states     map[string]*cachedState
	nextID     StateID
	maxStates  int
	clearCount int
}

// MaxClears is a clear-count threshold. Neither Cache nor Onone
// consults it: a Cache clears and continues every time it reaches
// maxStates, with no limit on how often, and ClearCount reports how
// many times that happened.
const MaxClears = 8

// NewCache creates a cache over tree for the position set start (the
// root's First()), bounded at maxStates synthetic states before it
// clears and continues. Clearing only resets the discovery map; any
// *cachedState a caller is still holding stays perfectly usable, since
// a cachedState is self-contained: its subset and accept bit never
// change, and its transition row only gains entries.
func NewCache(tree *expr.Tree, start expr.StateSet, accept func(expr.StateSet) bool, maxStates int) *Cache {
	if maxStates <= 0 {
		maxStates = 4096
	}
	c := &Cache{tree: tree, accept: accept, start: start, maxStates: maxStates}
	c.resetLocked()
	return c
}

func (c *Cache) resetLocked() {
	c.states = make(map[string]*cachedState, 64)
	c.nextID = 0
}

// Start returns the cache's start state, creating it on first use.
func (c *Cache) Start() *cachedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getOrCreateLocked(c.start)
}

// getOrCreateLocked requires c.mu to already be held for writing.
func (c *Cache) getOrCreateLocked(subset expr.StateSet) *cachedState {
	key := stateKey(subset)
	if s, ok := c.states[key]; ok {
		return s
	}
	if len(c.states) >= c.maxStates {
		c.resetLocked()
		c.clearCount++
	}
	s := newCachedState(c.nextID, subset, c.accept(subset))
	c.nextID++
	c.states[key] = s
	return s
}

// Step returns the synthetic state reached from s on byte b (nil if
// the byte kills the match), computing and caching the transition the
// first time it's asked for.
func (c *Cache) Step(s *cachedState, b byte) *cachedState {
	c.mu.RLock()
	cached := s.trans[b]
	c.mu.RUnlock()
	if cached == deadEdge {
		return nil
	}
	if cached != nil {
		return cached
	}

	// Accumulate the union of follow sets via a sparse set rather than
	// repeated pairwise expr.Union: a subset can carry several
	// positions whose follow sets overlap heavily (e.g. inside a
	// repetition), and membership-then-insert here is O(1) against
	// expr.Union's O(len) merge per position.
	acc := sparse.NewSparseSet(uint32(c.tree.NumStates()))
	for _, p := range s.subset {
		if !c.tree.MatchByte(p, b) {
			continue
		}
		for _, f := range c.tree.Follow(p) {
			acc.Insert(uint32(f))
		}
	}
	var next expr.StateSet
	if !acc.IsEmpty() {
		vals := append([]uint32(nil), acc.Values()...)
		sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
		next = make(expr.StateSet, len(vals))
		for i, v := range vals {
			next[i] = expr.StateID(v)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(next) == 0 {
		s.trans[b] = deadEdge
		return nil
	}
	ns := c.getOrCreateLocked(next)
	s.trans[b] = ns
	return ns
}

// ClearCount reports how many times the cache has been cleared and
// continued during this Cache's lifetime.
func (c *Cache) ClearCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.clearCount
}
