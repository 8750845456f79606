// Package match implements the four-level whole-string match engine:
// Onone, a memoizing NFA-subset simulator that builds its transition
// table lazily and caches it across calls; O0, a full 256-entry-table
// DFA interpreter; and O1-O3, escalating closure-compiled backends
// (package jit) that fuse AlterTrans ranges and inline_level chains.
//
// Grounded on the position-automaton primitives in package expr and
// the capped subset construction in package dfa; the lazy cache design
// (state key hashing, bounded growth, clear-and-continue instead of
// permanent NFA fallback) is grounded on the reference implementation's
// lazy-DFA cache (dfa/lazy/cache.go's Cache type), adapted from a
// general substring-search cache to a whole-match-only, single-pattern
// cache with no eviction needed once the state space is small enough
// to stabilize.
package match

import "github.com/coregx/regena/expr"

// StateID identifies a synthetic (subset) state inside the Onone
// cache, assigned in discovery order. Mostly useful for diagnostics;
// the cache itself dispatches via *cachedState pointers, not ids.
type StateID int32

// cachedState is one lazily-discovered subset: its defining position
// set (used to compute further transitions and as the cache key),
// whether it accepts, and a 256-entry transition row populated on
// demand, one byte at a time, the first time that byte is actually
// queried for this state. A nil entry means "not yet computed"; the
// deadEdge sentinel means "this byte always fails from here".
type cachedState struct {
	id     StateID
	subset expr.StateSet
	accept bool
	trans  [256]*cachedState
}

// deadEdge is a unique non-nil sentinel distinguishing "computed, and
// it's dead" from "not yet computed". It is never returned to a
// caller as a real state — Cache.Step translates it to nil.
var deadEdge = &cachedState{}

func newCachedState(id StateID, subset expr.StateSet, accept bool) *cachedState {
	return &cachedState{id: id, subset: subset, accept: accept}
}

// Accepting reports whether this synthetic state accepts.
func (s *cachedState) Accepting() bool { return s.accept }
