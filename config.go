package regena

// Config bounds the resources a compiled Regex is allowed to consume
// and which optimizer tier it targets. Mirrors the teacher's
// meta.Config/meta.DefaultConfig shape: exported knobs with
// doc-commented, conservative defaults, constructed via
// DefaultConfig rather than requiring every caller to fill in a
// zero-value struct correctly.
type Config struct {
	// StateLimit caps how many DFA states subset construction may
	// create, both for the pattern's own top-level DFA and for the
	// scratch DFAs & and ! build internally. 0 selects a size-derived
	// default (see package dfa's defaultStateLimit). Exceeding it
	// during top-level compilation is not fatal: Compile still
	// succeeds, but the resulting Regex runs on the Onone cached-NFA
	// path and CapacityExceeded is reported alongside it.
	StateLimit int

	// RecursiveLimit caps how many nested (?R) self-recursion sites
	// may expand before a site degrades to matching the empty
	// language. 0 selects a conservative default.
	RecursiveLimit int

	// MaxOptimise caps which optimizer tier Compile will attempt:
	// LevelOnone disables DFA construction entirely (always cached-NFA
	// simulation); LevelO0 allows a full-table DFA but no jit
	// compilation; LevelO1/O2/O3 allow progressively more aggressive
	// jit closure compilation. Compile never exceeds this tier even
	// when resources would allow it.
	MaxOptimise Level
}

// DefaultConfig returns the engine's stand-alone defaults: size-derived
// state limit, a recursion cap generous enough for realistic (?R)
// patterns without risking runaway expansion, and the highest
// optimizer tier.
func DefaultConfig() Config {
	return Config{
		StateLimit:     0,
		RecursiveLimit: 32,
		MaxOptimise:    LevelO3,
	}
}
