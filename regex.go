// Package regena provides a whole-match regex engine over an extended
// algebra: literals, classes, repetition, union, intersection (&),
// complement (!) and bounded self-recursion ((?R)).
//
// regena compiles a pattern into a position automaton (package expr),
// subset-constructs and minimises a DFA over it (package dfa, which
// also realises & and ! internally via its own DFA algebra), then
// hands the result to whichever engine tier Config selects: a
// memoizing NFA-subset simulator for patterns too large to
// subset-construct, a full-table DFA interpreter, or one of three
// closure-compiled jit tiers.
//
// Basic usage:
//
//	re, err := regena.Compile(`(ab|ba)*&!a.*a`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if re.Match("abab") {
//	    fmt.Println("matched!")
//	}
//
// Advanced usage:
//
//	config := regena.DefaultConfig()
//	config.MaxOptimise = regena.LevelO0
//	re, err := regena.CompileWithConfig(`a{2,5}`, config)
//
// Limitations:
//   - No leftmost/partial match: Match always tests the whole input.
//   - No capture extraction: group boundaries are parsed and tracked
//     internally but never surfaced as spans.
package regena

import (
	"errors"

	"github.com/coregx/regena/dfa"
	"github.com/coregx/regena/expr"
	"github.com/coregx/regena/jit"
	"github.com/coregx/regena/match"
	"github.com/coregx/regena/parse"
)

// Level names an engine tier, from the always-available cached-NFA
// simulator up through the most aggressive closure-compiled backend.
type Level int

const (
	LevelOnone Level = iota // memoizing NFA-subset simulation, no DFA built
	LevelO0                 // full-table DFA interpreter
	LevelO1                 // closure per state, 256-entry row index
	LevelO2                 // closure per state, compressed AlterTrans ranges
	LevelO3                 // fused inline_level closure chains
)

func (l Level) String() string {
	switch l {
	case LevelOnone:
		return "Onone"
	case LevelO0:
		return "O0"
	case LevelO1:
		return "O1"
	case LevelO2:
		return "O2"
	case LevelO3:
		return "O3"
	default:
		return "Level(?)"
	}
}

// matcher is the minimal surface every engine level implements.
// match.Onone, match.Interp and *jit.Program all satisfy it
// structurally, with no import from those packages back onto this
// one.
type matcher interface {
	Match(s []byte) bool
}

// Regex is a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines, except
// for Optimise, which swaps the engine in place.
type Regex struct {
	pattern     string
	tree        *expr.Tree
	root        expr.NodeID
	eop         expr.StateID
	cfg         Config
	level       Level
	matcher     matcher
	d           *dfa.DFA // nil at LevelOnone: no DFA was ever built
	numCaptures int
}

// Compile compiles pattern at the default Config.
//
// Example:
//
//	re, err := regena.Compile(`a(b|c)+d`)
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles pattern and panics if it fails. Useful for
// patterns known to be valid at init time.
//
// Example:
//
//	var id = regena.MustCompile(`[a-z]+-[0-9]{4}`)
func MustCompile(pattern string) *Regex {
	r, err := Compile(pattern)
	if err != nil {
		panic("regena: Compile(" + pattern + "): " + err.Error())
	}
	return r
}

// CompileWithConfig compiles pattern under cfg. A non-nil *Regex may be
// returned together with a non-nil error: the error wraps one or more
// *CapacityExceeded diagnostics, and the Regex is still fully usable on
// whatever tier it actually reached. Any other error means compilation
// failed outright (a *ParseError).
//
// Example:
//
//	cfg := regena.DefaultConfig()
//	cfg.MaxOptimise = regena.LevelO1
//	re, err := regena.CompileWithConfig(`(a&b)|c`, cfg)
func CompileWithConfig(pattern string, cfg Config) (*Regex, error) {
	pr, err := parse.Parse(pattern, parse.Config{StateLimit: cfg.StateLimit, RecursionCap: cfg.RecursiveLimit})
	if err != nil {
		return nil, newParseError(pattern, err)
	}

	// A pattern whose body is None collapses the root to None, which has
	// no EOP child; InvalidState then makes accept reject every subset.
	eopState := expr.InvalidState
	if _, eopNode := pr.Tree.Node(pr.Root).Children(); eopNode != expr.InvalidNode {
		eopState = pr.Tree.Node(eopNode).State()
	}
	accept := func(ss expr.StateSet) bool { return ss.Contains(eopState) }

	r := &Regex{
		pattern:     pattern,
		tree:        pr.Tree,
		root:        pr.Root,
		eop:         eopState,
		cfg:         cfg,
		numCaptures: pr.NumCaptures,
	}

	var diags []error
	if pr.RecursionDegraded {
		diags = append(diags, &CapacityExceeded{Kind: "recursion-limit", Limit: cfg.RecursiveLimit})
	}

	if cfg.MaxOptimise == LevelOnone {
		r.matcher = match.NewOnone(pr.Tree, pr.Root, accept, 0)
		r.level = LevelOnone
		return r, errors.Join(diags...)
	}

	d, err := dfa.Construct(pr.Tree, pr.Root, accept, cfg.StateLimit)
	if err != nil {
		r.matcher = match.NewOnone(pr.Tree, pr.Root, accept, 0)
		r.level = LevelOnone
		diags = append(diags, &CapacityExceeded{Kind: "dfa-state-limit", Limit: cfg.StateLimit})
		return r, errors.Join(diags...)
	}
	r.d = dfa.Minimize(d)
	r.buildAt(cfg.MaxOptimise)

	return r, errors.Join(diags...)
}

// buildAt sets r.matcher/r.level. Every level above LevelOnone
// requires the already-constructed r.d.
func (r *Regex) buildAt(level Level) {
	switch level {
	case LevelOnone:
		accept := func(ss expr.StateSet) bool { return ss.Contains(r.eop) }
		r.matcher = match.NewOnone(r.tree, r.root, accept, 0)
	case LevelO0:
		r.matcher = match.NewInterp(r.d)
	case LevelO1:
		r.matcher = jit.Compile(r.d, jit.O1)
	case LevelO2:
		r.matcher = jit.Compile(r.d, jit.O2)
	default:
		r.matcher = jit.Compile(r.d, jit.O3)
	}
	r.level = level
}

// Optimise rebuilds the engine at level, capped at the Regex's
// Config.MaxOptimise. It's a no-op if level is already the current
// tier. Returns *OptimisationUnavailable if level can't be reached —
// currently only when the Regex never built a DFA at all (LevelOnone),
// since every jit level is always reachable from a constructed DFA.
func (r *Regex) Optimise(level Level) error {
	if level == r.level {
		return nil
	}
	if r.d == nil {
		return &OptimisationUnavailable{Requested: level, Achieved: r.level}
	}
	if level > r.cfg.MaxOptimise {
		level = r.cfg.MaxOptimise
	}
	r.buildAt(level)
	if r.level != level {
		return &OptimisationUnavailable{Requested: level, Achieved: r.level}
	}
	return nil
}

// Match reports whether s, taken as a whole, matches the pattern.
//
// Example:
//
//	re := regena.MustCompile(`\d+`)
//	re.Match("123") // true
func (r *Regex) Match(s string) bool {
	return r.matcher.Match([]byte(s))
}

// MatchBytes is Match for a []byte input, avoiding the string
// conversion when the caller already holds bytes.
func (r *Regex) MatchBytes(s []byte) bool {
	return r.matcher.Match(s)
}

// String returns the source text used to compile the regular
// expression.
func (r *Regex) String() string {
	return r.pattern
}

// Level reports the engine tier this Regex actually runs on, which may
// be lower than Config.MaxOptimise requested (see CapacityExceeded).
func (r *Regex) Level() Level {
	return r.level
}

// NumCaptures reports how many capture groups the pattern declared.
// Group boundaries are tracked internally but never exposed as
// extracted spans; this exists for callers checking pattern shape, not
// for retrieving submatches.
func (r *Regex) NumCaptures() int {
	return r.numCaptures
}
