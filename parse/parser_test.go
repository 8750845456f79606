package parse

import (
	"testing"

	"github.com/coregx/regena/expr"
)

func mustParse(t *testing.T, pattern string) *Result {
	t.Helper()
	res, err := Parse(pattern, DefaultConfig())
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return res
}

func TestParseLiteralConcat(t *testing.T) {
	res := mustParse(t, "abc")
	if res.Tree.NumStates() != 4 { // a, b, c, EOP
		t.Errorf("expected 4 states, got %d", res.Tree.NumStates())
	}
}

func TestParseUnionCombinesLeaves(t *testing.T) {
	res := mustParse(t, "a|b")
	n := res.Tree.Node(res.Root)
	left, _ := n.Children()
	ln := res.Tree.Node(left)
	if ln.Kind() != expr.KCharClass {
		t.Errorf("expected a|b to combine into a CharClass, got %v", ln.Kind())
	}
}

func TestParseRepetitionExact(t *testing.T) {
	res := mustParse(t, "a{3}")
	// a{3} = aaa, then EOP: 4 states.
	if res.Tree.NumStates() != 4 {
		t.Errorf("expected 4 states for a{3}, got %d", res.Tree.NumStates())
	}
}

func TestParseRepetitionRange(t *testing.T) {
	res := mustParse(t, "a{2,4}")
	// 2 mandatory + 2 optional + EOP = 5 states.
	if res.Tree.NumStates() != 5 {
		t.Errorf("expected 5 states for a{2,4}, got %d", res.Tree.NumStates())
	}
}

func TestParseRepetitionUnbounded(t *testing.T) {
	res := mustParse(t, "a{2,}")
	// 2 mandatory + 1 starred copy + EOP = 4 states.
	if res.Tree.NumStates() != 4 {
		t.Errorf("expected 4 states for a{2,}, got %d", res.Tree.NumStates())
	}
}

func TestParseBadRepetitionIsHardError(t *testing.T) {
	_, err := Parse("a{3,1}", DefaultConfig())
	if err == nil {
		t.Fatalf("expected a{3,1} to fail to parse")
	}
}

func TestParseIntersectionEliminatesOperator(t *testing.T) {
	res := mustParse(t, "(a|b)(a|b)&ab")
	// The realised fragment must be pure structural/leaf kinds — no
	// intersection operator exists in package expr to begin with, so
	// this mostly documents that parsing succeeds and the DFA algebra
	// actually narrowed the language (checked at the dfa layer).
	if res.Root == expr.InvalidNode {
		t.Fatalf("expected a valid root")
	}
}

func TestParseComplement(t *testing.T) {
	res := mustParse(t, "!a")
	if res.Root == expr.InvalidNode {
		t.Fatalf("expected a valid root")
	}
}

func TestParseDoubleComplementCancels(t *testing.T) {
	res := mustParse(t, "!!a")
	left, _ := res.Tree.Node(res.Root).Children()
	if res.Tree.Node(left).Kind() != expr.KLiteral {
		t.Errorf("expected !!a to cancel straight to Literal, got %v", res.Tree.Node(left).Kind())
	}
}

func TestParseUnmatchedParen(t *testing.T) {
	if _, err := Parse("(a", DefaultConfig()); err == nil {
		t.Fatalf("expected unmatched paren error")
	}
}

func TestParseUnterminatedClass(t *testing.T) {
	if _, err := Parse("[abc", DefaultConfig()); err == nil {
		t.Fatalf("expected unterminated class error")
	}
}

func TestParseCharClassCollapsesToLiteral(t *testing.T) {
	res := mustParse(t, "[a]")
	left, _ := res.Tree.Node(res.Root).Children()
	if res.Tree.Node(left).Kind() != expr.KLiteral {
		t.Errorf("expected [a] to collapse to Literal, got %v", res.Tree.Node(left).Kind())
	}
}

func TestParseSelfRecursionBounded(t *testing.T) {
	res, err := Parse("a(?R)?", Config{RecursionCap: 4})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !res.RecursionDegraded && res.Tree.NumStates() < 4 {
		t.Errorf("expected bounded self-recursion to expand several copies")
	}
}
