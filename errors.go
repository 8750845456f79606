package regena

import (
	"fmt"

	"github.com/coregx/regena/parse"
)

// ParseError reports a pattern that failed to parse; no Regex was
// constructed. It wraps the underlying parse.Error (position plus a
// sentinel cause) the way the teacher's nfa/error.go's CompileError
// wraps ErrInvalidState and friends.
type ParseError struct {
	Pattern string
	Pos     int
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("regena: parse error in %q at position %d: %v", e.Pattern, e.Pos, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(pattern string, err error) *ParseError {
	if pe, ok := err.(*parse.Error); ok {
		return &ParseError{Pattern: pe.Pattern, Pos: pe.Pos, Err: pe.Err}
	}
	return &ParseError{Pattern: pattern, Err: err}
}

// CapacityExceeded is a non-fatal diagnostic: the Regex it accompanies
// is still fully usable. With Kind "dfa-state-limit" it runs on the
// Onone cached-NFA path instead of the requested tier; with Kind
// "recursion-limit" it keeps its tier, and the (?R) sites past the
// limit match nothing. Compile returns it alongside a valid *Regex
// rather than in place of one.
type CapacityExceeded struct {
	Kind  string // "dfa-state-limit" or "recursion-limit"
	Limit int
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("regena: %s exceeded (limit %d); falling back to a lower optimisation tier", e.Kind, e.Limit)
}

// OptimisationUnavailable reports that (*Regex).Optimise couldn't
// reach the requested tier. In this build jit is always available
// (pure Go, no platform dependency), so this can currently only fire
// if Achieved < Requested because the DFA itself never built (see
// CapacityExceeded) — the type exists to keep the contract stable for
// any future build that restricts jit availability.
type OptimisationUnavailable struct {
	Requested, Achieved Level
}

func (e *OptimisationUnavailable) Error() string {
	return fmt.Sprintf("regena: requested optimisation level %v, achieved %v", e.Requested, e.Achieved)
}
