package expr

import "testing"

func build(t *Tree) NodeID {
	// (a|b)*c, followed by EOP, mirrors the shape the parser produces
	// for top-level patterns.
	a := t.NewLiteral('a')
	b := t.NewLiteral('b')
	ab := t.NewUnion(a, b)
	star := t.NewStar(ab)
	c := t.NewLiteral('c')
	body := t.NewConcat(star, c)
	eop := t.NewEOP()
	return t.NewConcat(body, eop)
}

func TestFillTransitionBasic(t *testing.T) {
	tree := NewTree()
	root := build(tree)
	tree.Number(root)
	tree.FillTransition(root)

	if tree.NumStates() != 4 { // a, b, c, EOP
		t.Fatalf("NumStates = %d, want 4", tree.NumStates())
	}

	// first(root) must contain both 'a' and 'b' positions (loop) and 'c'.
	first := tree.Node(root).First()
	if len(first) != 3 {
		t.Fatalf("first(root) = %v, want 3 positions", first)
	}

	// last(root) must be exactly {EOP}.
	last := tree.Node(root).Last()
	if len(last) != 1 {
		t.Fatalf("last(root) = %v, want {EOP}", last)
	}
	eopState := tree.Node(root).Last()[0]
	if tree.Node(tree.StateNode(eopState)).Kind() != KEOP {
		t.Fatalf("last(root) does not point at EOP")
	}
}

func TestNullable(t *testing.T) {
	tree := NewTree()
	star := tree.NewStar(tree.NewLiteral('a'))
	if !tree.Nullable(star) {
		t.Error("a* should be nullable")
	}
	plus := tree.NewPlus(tree.NewLiteral('a'))
	if tree.Nullable(plus) {
		t.Error("a+ should not be nullable")
	}
	none := tree.NewNone()
	if tree.Nullable(none) {
		t.Error("None should not be nullable")
	}
}

func TestCloneIndependent(t *testing.T) {
	tree := NewTree()
	orig := tree.NewLiteral('x')
	clone := tree.Clone(orig)
	if clone == orig {
		t.Fatal("Clone returned the same id")
	}
	if tree.Node(clone).Literal() != 'x' {
		t.Fatal("Clone did not copy literal value")
	}
}

func TestByteSetNegation(t *testing.T) {
	cc := NewByteSet()
	cc.SetRange('a', 'z')
	if cc.Count() != 26 {
		t.Fatalf("Count() = %d, want 26", cc.Count())
	}
	cc.Negative = true
	if cc.Count() != 256-26 {
		t.Fatalf("negated Count() = %d, want %d", cc.Count(), 256-26)
	}
	if cc.Test('a') {
		t.Error("negated class should not match 'a'")
	}
	if !cc.Test('0') {
		t.Error("negated class should match '0'")
	}
}

func TestConcatAbsorbsNone(t *testing.T) {
	tree := NewTree()
	none := tree.NewNone()
	lit := tree.NewLiteral('a')
	if tree.Node(tree.NewConcat(none, lit)).Kind() != KNone {
		t.Error("Concat(None, X) should collapse to None")
	}
	if tree.Node(tree.NewUnion(none, lit)).Kind() != KLiteral {
		t.Error("Union(None, X) should collapse to X")
	}
}
