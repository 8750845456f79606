package dfa

import (
	"testing"

	"github.com/coregx/regena/expr"
)

// buildPattern is a tiny test helper that builds literal/union/concat
// trees directly (bypassing package parse, which depends on this
// package) and appends a trailing EOP.
func buildPattern(t *expr.Tree, root expr.NodeID) (expr.NodeID, expr.StateID) {
	eop := t.NewEOP()
	full := t.NewConcat(root, eop)
	t.Number(full)
	t.FillTransition(full)
	return full, t.Node(eop).State()
}

func literalChain(t *expr.Tree, s string) expr.NodeID {
	var cur expr.NodeID = expr.InvalidNode
	for i := 0; i < len(s); i++ {
		lit := t.NewLiteral(s[i])
		if cur == expr.InvalidNode {
			cur = lit
		} else {
			cur = t.NewConcat(cur, lit)
		}
	}
	return cur
}

func TestConstructAcceptsExactLiteral(t *testing.T) {
	tree := expr.NewTree()
	root := literalChain(tree, "ab")
	full, eop := buildPattern(tree, root)

	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if s, ok := d.FullMatch([]byte("ab")); !ok || !d.Accepting(s) {
		t.Errorf("expected \"ab\" to match")
	}
	if _, ok := d.FullMatch([]byte("ac")); ok {
		t.Errorf("expected \"ac\" to reject")
	}
	if s, ok := d.FullMatch([]byte("a")); ok && d.Accepting(s) {
		t.Errorf("expected \"a\" (prefix only) to not accept")
	}
}

func TestMinimizeDoesNotGrowRedundantStates(t *testing.T) {
	tree := expr.NewTree()
	// (a|a)b — two distinct positions recognising 'a' that should merge
	// under subset construction's unioned follow sets.
	a1 := tree.NewLiteral('a')
	a2 := tree.NewLiteral('a')
	alt := tree.NewUnion(a1, a2)
	b := tree.NewLiteral('b')
	root := tree.NewConcat(alt, b)
	full, eop := buildPattern(tree, root)

	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	min := Minimize(d)
	if min.Size() > d.Size() {
		t.Errorf("Minimize grew the DFA: %d -> %d", d.Size(), min.Size())
	}
	if s, ok := min.FullMatch([]byte("ab")); !ok || !min.Accepting(s) {
		t.Errorf("minimized DFA should still accept \"ab\"")
	}
}

func TestComplementInvertsAcceptance(t *testing.T) {
	tree := expr.NewTree()
	root := literalChain(tree, "ab")
	full, eop := buildPattern(tree, root)

	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	comp := Complement(d)
	if s, ok := comp.FullMatch([]byte("ab")); ok && comp.Accepting(s) {
		t.Errorf("complement must reject \"ab\"")
	}
	if s, ok := comp.FullMatch([]byte("ac")); !ok || !comp.Accepting(s) {
		t.Errorf("complement must accept \"ac\"")
	}
	if s, ok := comp.FullMatch([]byte("")); !ok || !comp.Accepting(s) {
		t.Errorf("complement must accept the empty string")
	}
}

func TestToRegexRoundTrips(t *testing.T) {
	tree := expr.NewTree()
	root := literalChain(tree, "ab")
	full, eop := buildPattern(tree, root)

	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	frag := ToRegex(tree, d)

	full2, eop2 := buildPattern(tree, frag)
	d2, err := Construct(tree, full2, AcceptsAny(eop2), 0)
	if err != nil {
		t.Fatalf("Construct(round-trip): %v", err)
	}
	if s, ok := d2.FullMatch([]byte("ab")); !ok || !d2.Accepting(s) {
		t.Errorf("round-tripped regex should still match \"ab\"")
	}
	if _, ok := d2.FullMatch([]byte("ac")); ok {
		t.Errorf("round-tripped regex should still reject \"ac\"")
	}
}

func TestRealizeIntersection(t *testing.T) {
	tree := expr.NewTree()
	// (a|b)(a|b) & ab  should equal just "ab"
	op1 := tree.NewConcat(
		tree.NewUnion(tree.NewLiteral('a'), tree.NewLiteral('b')),
		tree.NewUnion(tree.NewLiteral('a'), tree.NewLiteral('b')),
	)
	op2 := literalChain(tree, "ab")

	frag, err := RealizeIntersection(tree, []expr.NodeID{op1, op2}, 0)
	if err != nil {
		t.Fatalf("RealizeIntersection: %v", err)
	}
	full, eop := buildPattern(tree, frag)
	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	for _, s := range []string{"ab"} {
		if st, ok := d.FullMatch([]byte(s)); !ok || !d.Accepting(st) {
			t.Errorf("intersection should accept %q", s)
		}
	}
	for _, s := range []string{"aa", "ba", "bb", "a", ""} {
		if st, ok := d.FullMatch([]byte(s)); ok && d.Accepting(st) {
			t.Errorf("intersection should reject %q", s)
		}
	}
}

func TestRealizeComplement(t *testing.T) {
	tree := expr.NewTree()
	op := literalChain(tree, "ab")
	frag, err := RealizeComplement(tree, op, 0)
	if err != nil {
		t.Fatalf("RealizeComplement: %v", err)
	}
	full, eop := buildPattern(tree, frag)
	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if s, ok := d.FullMatch([]byte("ab")); ok && d.Accepting(s) {
		t.Errorf("!ab should reject \"ab\"")
	}
	if s, ok := d.FullMatch([]byte("ac")); !ok || !d.Accepting(s) {
		t.Errorf("!ab should accept \"ac\"")
	}
}

func TestCompressTransitionsDot(t *testing.T) {
	tree := expr.NewTree()
	root := tree.NewDot()
	full, eop := buildPattern(tree, root)
	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	CompressTransitions(d)
	row, ok := d.Alter(d.Start())
	if !ok {
		t.Fatalf("expected a compressible row for Dot")
	}
	if row.R1.Valid && row.R1.Lo == 0 && row.R1.Hi == 255 {
		// also fine: the whole row kept as one explicit range instead
		// of being folded into the default.
	}
}

func TestComputeInlineLevelsOnChain(t *testing.T) {
	tree := expr.NewTree()
	root := literalChain(tree, "abcd")
	full, eop := buildPattern(tree, root)
	d, err := Construct(tree, full, AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	ComputeInlineLevels(d)
	if d.InlineLevel(d.Start()) < 2 {
		t.Errorf("expected a literal chain to report inline_level >= 2, got %d", d.InlineLevel(d.Start()))
	}
}

func TestStateLimitExceeded(t *testing.T) {
	tree := expr.NewTree()
	root := literalChain(tree, "abcdefgh")
	full, eop := buildPattern(tree, root)
	if _, err := Construct(tree, full, AcceptsAny(eop), 1); err == nil {
		t.Errorf("expected a state-limit error with a cap of 1")
	}
}
