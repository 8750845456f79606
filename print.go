package regena

import (
	"strings"

	"github.com/coregx/regena/expr"
)

// PrintRegex renders the regex fragment the pattern was parsed into
// back out as regex syntax. Since intersection and complement are
// eliminated during parsing (their DFA-algebra realisation is folded
// back into ordinary union/concat/repetition via package dfa's
// RealizeIntersection/RealizeComplement), the printed text is
// generally not identical to the source pattern even though it
// matches the same language.
func (r *Regex) PrintRegex() string {
	return expr.Print(r.tree, r.root)
}

// PrintParseTree renders a parenthesised s-expression view of the
// parse tree, naming each node by Kind only (no state ids or
// first/last sets — see DumpExprTree for that). Useful for eyeballing
// tree shape without the numbering noise.
func (r *Regex) PrintParseTree() string {
	var b strings.Builder
	printParseRec(r.tree, r.root, &b)
	return b.String()
}

func printParseRec(t *expr.Tree, id expr.NodeID, b *strings.Builder) {
	if id == expr.InvalidNode {
		return
	}
	n := t.Node(id)
	left, right := n.Children()
	if left == expr.InvalidNode && right == expr.InvalidNode {
		b.WriteString(n.Kind().String())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind().String())
	if left != expr.InvalidNode {
		b.WriteByte(' ')
		printParseRec(t, left, b)
	}
	if right != expr.InvalidNode {
		b.WriteByte(' ')
		printParseRec(t, right, b)
	}
	b.WriteByte(')')
}

// DumpExprTree renders the full parse tree structure rooted at the
// pattern's root node, for debugging and tests.
func (r *Regex) DumpExprTree() string {
	return expr.Dump(r.tree, r.root)
}
