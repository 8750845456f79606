package expr

// IsLeafCombinable reports whether a node of this kind can be folded
// into a CharClass when unioned with another combinable leaf — the
// "CombineStateExpr" optimisation from the reference grammar, used by
// the parser's union rule and by DFA→regex state elimination to keep
// generated expressions compact.
func IsLeafCombinable(k Kind) bool {
	switch k {
	case KLiteral, KDot, KCharClass:
		return true
	default:
		return false
	}
}

// leafTestByte reports whether the (not yet numbered) leaf id matches
// byte c, using the same rules as Tree.MatchByte but without requiring
// a StateID (Combine runs before/without Number in some call sites).
func leafTestByte(t *Tree, id NodeID, c byte) bool {
	n := t.Node(id)
	switch n.kind {
	case KLiteral:
		return n.lit == c
	case KDot:
		return true
	case KCharClass:
		return n.class.Test(c)
	default:
		panic("expr: leafTestByte: not combinable")
	}
}

// Combine merges two combinable leaves into the smallest equivalent
// node: Dot if the union covers all 256 bytes, Literal if it covers
// exactly one, else a CharClass.
func Combine(t *Tree, a, b NodeID) NodeID {
	cc := NewByteSet()
	for c := 0; c < 256; c++ {
		if leafTestByte(t, a, byte(c)) || leafTestByte(t, b, byte(c)) {
			cc.Set(byte(c))
		}
	}
	switch cc.Count() {
	case 256:
		return t.NewDot()
	case 1:
		for c := 0; c < 256; c++ {
			if cc.Test(byte(c)) {
				return t.NewLiteral(byte(c))
			}
		}
		panic("unreachable")
	default:
		return t.NewCharClass(cc)
	}
}
