package match

import (
	"testing"

	"github.com/coregx/regena/dfa"
	"github.com/coregx/regena/expr"
)

func buildAB(t *testing.T) (*expr.Tree, expr.NodeID, expr.StateID) {
	t.Helper()
	tree := expr.NewTree()
	a := tree.NewLiteral('a')
	b := tree.NewLiteral('b')
	body := tree.NewConcat(a, b)
	eop := tree.NewEOP()
	root := tree.NewConcat(body, eop)
	tree.Number(root)
	tree.FillTransition(root)
	return tree, root, tree.Node(eop).State()
}

func TestOnoneMatch(t *testing.T) {
	tree, root, eop := buildAB(t)
	o := NewOnone(tree, root, func(ss expr.StateSet) bool { return ss.Contains(eop) }, 0)

	if !o.Match([]byte("ab")) {
		t.Errorf("expected \"ab\" to match")
	}
	if o.Match([]byte("ac")) {
		t.Errorf("expected \"ac\" to reject")
	}
	if o.Match([]byte("a")) {
		t.Errorf("expected a prefix-only string to reject")
	}
	// repeat queries should hit the cache, not recompute
	if !o.Match([]byte("ab")) {
		t.Errorf("expected cached \"ab\" to still match")
	}
}

func TestInterpMatch(t *testing.T) {
	tree, root, eop := buildAB(t)
	d, err := dfa.Construct(tree, root, dfa.AcceptsAny(eop), 0)
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	in := NewInterp(d)
	if !in.Match([]byte("ab")) {
		t.Errorf("expected \"ab\" to match")
	}
	if in.Match([]byte("ba")) {
		t.Errorf("expected \"ba\" to reject")
	}
}
