package expr

import "github.com/coregx/regena/internal/conv"

// Number walks the tree rooted at root and assigns a dense StateID to
// every state-bearing node, in left-to-right leaf order. It must run
// once, before FillTransition, and the tree must not gain new
// state-bearing nodes afterward.
func (t *Tree) Number(root NodeID) {
	t.stateNodes = t.stateNodes[:0]
	t.numberRec(root)
	t.follow = make([]StateSet, len(t.stateNodes))
}

func (t *Tree) numberRec(id NodeID) {
	n := t.Node(id)
	switch n.kind {
	case KConcat, KUnion:
		t.numberRec(n.left)
		t.numberRec(n.right)
	case KStar, KPlus, KQmark:
		t.numberRec(n.left)
	default:
		if n.kind.IsStateBearing() {
			sid := StateID(conv.IntToInt32(len(t.stateNodes)))
			t.stateNodes = append(t.stateNodes, id)
			t.Node(id).state = sid
		}
	}
}

// Nullable reports whether the subexpression rooted at id may match
// the empty string. EOP is deliberately not nullable: it is a marked
// end-of-pattern position, not an epsilon, so it behaves like any
// other position in the Glushkov construction. BegLine/EndLine are
// zero-width assertions that hold unconditionally in this whole-match
// engine (see Kind.IsStateBearing), so they are nullable like an
// empty concatenation identity.
func (t *Tree) Nullable(id NodeID) bool {
	n := t.Node(id)
	switch n.kind {
	case KBegLine, KEndLine:
		return true
	case KNone, KLiteral, KDot, KCharClass, KEOP:
		return false
	case KConcat:
		return t.Nullable(n.left) && t.Nullable(n.right)
	case KUnion:
		return t.Nullable(n.left) || t.Nullable(n.right)
	case KStar, KQmark:
		return true
	case KPlus:
		return t.Nullable(n.left)
	default:
		panic("expr: Nullable: unhandled kind")
	}
}

// FillTransition computes first/last for every node and follow for
// every state, per spec.md §4.A:
//
//	Concat(L,R): first = first(L) ∪ (L nullable ? first(R) : ∅)
//	             last  = last(R)  ∪ (R nullable ? last(L)  : ∅)
//	             ∀p∈last(L): follow(p) ⊇ first(R)
//	Star/Plus(X): first = first(X), last = last(X)
//	              ∀p∈last(X): follow(p) ⊇ first(X)
//	Qmark(X): first = first(X), last = last(X), no follow addition.
//
// Must run once, after Number.
func (t *Tree) FillTransition(root NodeID) {
	t.fillRec(root)
}

func (t *Tree) fillRec(id NodeID) {
	n := t.Node(id)
	switch n.kind {
	case KLiteral, KDot, KCharClass, KEOP:
		single := StateSet{n.state}
		t.Node(id).first = single
		t.Node(id).last = single
	case KNone, KBegLine, KEndLine:
		t.Node(id).first = nil
		t.Node(id).last = nil
	case KConcat:
		t.fillRec(n.left)
		t.fillRec(n.right)
		l, r := t.Node(n.left), t.Node(n.right)
		first := StateSet(append(StateSet(nil), l.first...))
		if t.Nullable(n.left) {
			first = Union(first, r.first)
		}
		last := append(StateSet(nil), r.last...)
		if t.Nullable(n.right) {
			last = Union(last, l.last)
		}
		for _, p := range l.last {
			t.follow[p] = UnionInto(t.follow[p], r.first)
		}
		cur := t.Node(id)
		cur.first, cur.last = first, last
	case KUnion:
		t.fillRec(n.left)
		t.fillRec(n.right)
		l, r := t.Node(n.left), t.Node(n.right)
		cur := t.Node(id)
		cur.first = Union(l.first, r.first)
		cur.last = Union(l.last, r.last)
	case KStar, KPlus:
		t.fillRec(n.left)
		x := t.Node(n.left)
		for _, p := range x.last {
			t.follow[p] = UnionInto(t.follow[p], x.first)
		}
		cur := t.Node(id)
		cur.first = append(StateSet(nil), x.first...)
		cur.last = append(StateSet(nil), x.last...)
	case KQmark:
		t.fillRec(n.left)
		x := t.Node(n.left)
		cur := t.Node(id)
		cur.first = append(StateSet(nil), x.first...)
		cur.last = append(StateSet(nil), x.last...)
	default:
		panic("expr: FillTransition: unhandled kind")
	}
}
