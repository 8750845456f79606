package dfa

import "github.com/coregx/regena/expr"

// gEps marks a generalised-NFA edge labelled with the empty string
// (epsilon), distinct both from "no edge" (key absent from the map)
// and from a real expr.NodeID (always >= 0). Used only within this
// file's state-elimination bookkeeping.
const gEps expr.NodeID = -2

// ToRegex converts d back into an expr.Tree fragment describing the
// same language, via classic GNFA state elimination: wrap d with a
// fresh start and accept state joined by epsilon, then eliminate each
// original state in turn, folding its incoming/outgoing/self-loop
// edges into a regex fragment on every remaining edge.
//
// Grounded on CreateRegexFromDFA in original_source/src/regex.cc,
// which performs the identical elimination order over
// std::map<state_t, Expr*> rows; the reference clones each surviving
// subexpression before reinserting it to avoid double-ownership of a
// single Expr* under two parents. That concern doesn't apply here —
// t's arena lets two parents share a child NodeID safely, since nodes
// are immutable after construction and the Go runtime manages their
// lifetime — so this version skips the clone step the C++ original
// needed purely for memory-safety reasons.
func ToRegex(t *expr.Tree, d *DFA) expr.NodeID {
	n := d.Size()
	gstart := n
	gaccept := n + 1
	trans := make([]map[int]expr.NodeID, gaccept+1)
	for i := range trans {
		trans[i] = map[int]expr.NodeID{}
	}

	for s := 0; s < n; s++ {
		row := &d.transition[s]
		for c := 0; c < 256; c++ {
			next := row[c]
			if next == Reject {
				continue
			}
			var edge expr.NodeID
			if c < 255 && row[c+1] == next {
				begin := c
				for c+1 < 256 && row[c+1] == next {
					c++
				}
				end := c
				if begin == 0 && end == 255 {
					edge = t.NewDot()
				} else {
					cc := expr.NewByteSet()
					cc.SetRange(byte(begin), byte(end))
					if cc.RawCount() >= 128 {
						cc.Negative = true
						cc.Flip()
					}
					edge = t.NewCharClass(cc)
				}
			} else {
				edge = t.NewLiteral(byte(c))
			}
			mergeEdge(t, trans[s], int(next), edge)
		}
	}

	for s := 0; s < n; s++ {
		if d.accept[s] {
			setOrMergeEps(t, trans[s], gaccept)
		}
	}
	trans[gstart][0] = gEps

	for i := 0; i < n; i++ {
		var loop expr.NodeID
		hasLoop := false
		if e, ok := trans[i][i]; ok {
			loop = t.NewStar(e)
			hasLoop = true
			delete(trans[i], i)
		}
		for j := i + 1; j <= gstart; j++ {
			regex1, ok := trans[j][i]
			if !ok {
				continue
			}
			delete(trans[j], i)
			for k, regex2 := range trans[i] {
				combined := regex2
				if hasLoop {
					combined = gConcat(t, loop, combined)
				}
				combined = gConcat(t, regex1, combined)
				mergeGEdge(t, trans[j], k, combined)
			}
		}
	}

	result, ok := trans[gstart][gaccept]
	if !ok || result == gEps {
		return t.NewNone()
	}
	return result
}

// mergeEdge folds a real (never epsilon) byte-transition edge into m,
// combining two leaf edges to the same target with Combine/Union the
// same way the parser's union rule does.
func mergeEdge(t *expr.Tree, m map[int]expr.NodeID, k int, edge expr.NodeID) {
	if existing, ok := m[k]; ok {
		m[k] = gUnionOrCombine(t, existing, edge)
		return
	}
	m[k] = edge
}

func setOrMergeEps(t *expr.Tree, m map[int]expr.NodeID, k int) {
	if existing, ok := m[k]; ok {
		m[k] = gUnionOrCombine(t, existing, gEps)
		return
	}
	m[k] = gEps
}

// mergeGEdge is mergeEdge's counterpart during state elimination, where
// the incoming value may itself be gEps.
func mergeGEdge(t *expr.Tree, m map[int]expr.NodeID, k int, val expr.NodeID) {
	if existing, ok := m[k]; ok {
		m[k] = gUnionOrCombine(t, existing, val)
		return
	}
	m[k] = val
}

// gConcat concatenates two (possibly epsilon) edge labels.
func gConcat(t *expr.Tree, a, b expr.NodeID) expr.NodeID {
	switch {
	case a == gEps && b == gEps:
		return gEps
	case a == gEps:
		return b
	case b == gEps:
		return a
	default:
		return t.NewConcat(a, b)
	}
}

// gUnionOrCombine unions two (possibly epsilon) edge labels. Unioning
// a real edge with epsilon makes it optional (X|ε = X?); unioning two
// real leaves folds them with the same CombineStateExpr rule the
// parser's e0 uses; otherwise it's a plain Union node.
func gUnionOrCombine(t *expr.Tree, a, b expr.NodeID) expr.NodeID {
	switch {
	case a == gEps && b == gEps:
		return gEps
	case a == gEps:
		return t.NewQmark(b)
	case b == gEps:
		return t.NewQmark(a)
	}
	an, bn := t.Node(a), t.Node(b)
	if expr.IsLeafCombinable(an.Kind()) && expr.IsLeafCombinable(bn.Kind()) {
		return expr.Combine(t, a, b)
	}
	return t.NewUnion(a, b)
}
