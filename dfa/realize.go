package dfa

import "github.com/coregx/regena/expr"

// RealizeIntersection builds e1 & e2 & ... & en as a single regex
// fragment: union the operands each marked with their own EOP,
// subset-construct with conjunctive acceptance (a subset accepts only
// once every operand's EOP is simultaneously live), minimise, and
// convert back to a regex tree via GNFA state elimination. The
// temporary EOP markers and the union scaffold are local to this
// construction; only the resulting fragment (built from ordinary
// Literal/CharClass/Concat/Union/Star nodes) is returned, ready to be
// embedded anywhere else in the caller's tree and renumbered along
// with it.
//
// This is the concrete resolution of the accept-predicate open
// question spec.md §9 flags for intersection: acceptance is
// conjunctive over the operand EOPs, not the default single-EOP rule
// subset construction uses for an ordinary pattern.
func RealizeIntersection(t *expr.Tree, operands []expr.NodeID, stateLimit int) (expr.NodeID, error) {
	if len(operands) == 1 {
		return operands[0], nil
	}
	var root expr.NodeID = expr.InvalidNode
	eopNodes := make([]expr.NodeID, len(operands))
	for i, op := range operands {
		e := t.NewEOP()
		eopNodes[i] = e
		branch := t.NewConcat(op, e)
		if root == expr.InvalidNode {
			root = branch
		} else {
			root = t.NewUnion(root, branch)
		}
	}
	t.Number(root)
	t.FillTransition(root)

	eopIDs := make([]expr.StateID, len(eopNodes))
	for i, e := range eopNodes {
		eopIDs[i] = t.Node(e).State()
	}

	d, err := Construct(t, root, AcceptsAll(eopIDs...), stateLimit)
	if err != nil {
		return expr.InvalidNode, err
	}
	d = Minimize(d)
	return ToRegex(t, d), nil
}

// RealizeComplement builds !e as a regex fragment: subset-construct
// e·EOP, structurally complement (trap-state totalization plus accept
// inversion), minimise, and convert back via GNFA state elimination.
func RealizeComplement(t *expr.Tree, operand expr.NodeID, stateLimit int) (expr.NodeID, error) {
	eop := t.NewEOP()
	root := t.NewConcat(operand, eop)
	t.Number(root)
	t.FillTransition(root)

	d, err := Construct(t, root, AcceptsAny(t.Node(eop).State()), stateLimit)
	if err != nil {
		return expr.InvalidNode, err
	}
	d = Complement(d)
	d = Minimize(d)
	return ToRegex(t, d), nil
}
