// Package expr implements the tagged expression tree that represents a
// regen-style position automaton: literals, character classes, and the
// structural combinators (concatenation, union, star, plus, qmark) that
// glue them together.
//
// Every leaf kind that can consume a byte of input ("state-bearing")
// carries a dense StateID once FillTransition has run; every node
// (leaf or interior) carries a NodeID that is stable for the lifetime
// of the owning Tree. The tree is an arena: nodes are never freed
// individually, and Clone duplicates a subtree by copying nodes into
// the same arena.
package expr

import (
	"fmt"

	"github.com/coregx/regena/internal/conv"
)

// NodeID identifies a node within a Tree's arena.
type NodeID int32

// InvalidNode marks the absence of a node.
const InvalidNode NodeID = -1

// StateID identifies a position in the position-automaton, i.e. a
// state-bearing leaf. Dense in [0, N) once FillTransition has run.
type StateID int32

// InvalidState marks a node that is not state-bearing.
const InvalidState StateID = -1

// Kind tags the variant a Node represents.
type Kind uint8

const (
	KLiteral   Kind = iota // a single byte
	KDot                   // any byte
	KCharClass             // bitset[256] with optional negation
	KBegLine               // '^' position marker
	KEndLine               // '$' position marker
	KNone                  // the empty language — matches nothing
	KEOP                   // synthetic end-of-pattern marker
	KConcat                // L then R
	KUnion                 // L or R
	KStar                  // X*
	KPlus                  // X+
	KQmark                 // X?
)

func (k Kind) String() string {
	switch k {
	case KLiteral:
		return "Literal"
	case KDot:
		return "Dot"
	case KCharClass:
		return "CharClass"
	case KBegLine:
		return "BegLine"
	case KEndLine:
		return "EndLine"
	case KNone:
		return "None"
	case KEOP:
		return "EOP"
	case KConcat:
		return "Concat"
	case KUnion:
		return "Union"
	case KStar:
		return "Star"
	case KPlus:
		return "Plus"
	case KQmark:
		return "Qmark"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// IsStateBearing reports whether nodes of this kind occupy a position
// in the position automaton (i.e. carry a StateID once numbered).
//
// KBegLine/KEndLine are deliberately excluded: this engine only ever
// matches a whole input against a whole pattern (no leftmost search),
// so "start of text" and "end of text" hold unconditionally at the
// ends of any candidate match. They are modelled as zero-width
// assertions (see Tree.Nullable) rather than positions that consume a
// byte.
func (k Kind) IsStateBearing() bool {
	switch k {
	case KLiteral, KDot, KCharClass, KEOP:
		return true
	default:
		return false
	}
}

// Node is a tagged variant. Only the fields relevant to Kind are
// meaningful; the rest are zero.
type Node struct {
	id    NodeID
	kind  Kind
	state StateID // valid iff kind.IsStateBearing(), else InvalidState

	lit     byte     // KLiteral
	class   *ByteSet // KCharClass

	left, right NodeID // KConcat, KUnion share both; KStar/KPlus/KQmark use left only

	// Populated by FillTransition.
	first, last StateSet

	// Capture tags, attached post-hoc onto state-bearing nodes only.
	// Not exposed outside this package's introspection helpers — the
	// engine never extracts submatch spans (see package doc).
	enter, leave []int
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.id }

// Kind returns the node's tag.
func (n *Node) Kind() Kind { return n.kind }

// State returns the node's position id, or InvalidState if the node
// is not state-bearing.
func (n *Node) State() StateID { return n.state }

// Literal returns the byte value for a KLiteral node.
func (n *Node) Literal() byte { return n.lit }

// Class returns the bitset for a KCharClass node.
func (n *Node) Class() *ByteSet { return n.class }

// Children returns the left/right child ids (right is InvalidNode for
// unary/leaf kinds).
func (n *Node) Children() (left, right NodeID) {
	switch n.kind {
	case KConcat, KUnion:
		return n.left, n.right
	case KStar, KPlus, KQmark:
		return n.left, InvalidNode
	default:
		return InvalidNode, InvalidNode
	}
}

// First returns the set of positions that may start matching this
// subexpression.
func (n *Node) First() StateSet { return n.first }

// Last returns the set of positions that may end matching this
// subexpression.
func (n *Node) Last() StateSet { return n.last }

// Tree owns an arena of Nodes plus the dense state numbering produced
// by Number/FillTransition.
type Tree struct {
	nodes      []Node
	stateNodes []NodeID   // StateID -> NodeID, dense after Number
	follow     []StateSet // StateID -> follow set, populated by FillTransition
}

// NewTree creates an empty arena.
func NewTree() *Tree {
	return &Tree{nodes: make([]Node, 0, 32)}
}

func (t *Tree) alloc(n Node) NodeID {
	id := NodeID(conv.IntToInt32(len(t.nodes)))
	n.id = id
	n.state = InvalidState
	t.nodes = append(t.nodes, n)
	return id
}

// Node returns a pointer to the node's storage. The pointer is only
// valid until the next allocation (append may reslice the backing
// array), so callers should not retain it across tree mutations.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// NumNodes returns the number of nodes allocated in the arena.
func (t *Tree) NumNodes() int { return len(t.nodes) }

// NumStates returns the number of state-bearing positions, valid after
// Number has run.
func (t *Tree) NumStates() int { return len(t.stateNodes) }

// StateNode maps a StateID back to its owning node.
func (t *Tree) StateNode(s StateID) NodeID { return t.stateNodes[s] }

// Follow returns the follow set for a state, valid after FillTransition.
func (t *Tree) Follow(s StateID) StateSet { return t.follow[s] }

// --- constructors ---

// NewLiteral adds a single-byte literal.
func (t *Tree) NewLiteral(b byte) NodeID {
	return t.alloc(Node{kind: KLiteral, lit: b})
}

// NewDot adds an any-byte node.
func (t *Tree) NewDot() NodeID {
	return t.alloc(Node{kind: KDot})
}

// NewCharClass adds a character-class node. The caller has already
// collapsed full/singleton classes to Dot/Literal (see parse package).
func (t *Tree) NewCharClass(cc *ByteSet) NodeID {
	return t.alloc(Node{kind: KCharClass, class: cc})
}

// NewBegLine adds a '^' position marker.
func (t *Tree) NewBegLine() NodeID { return t.alloc(Node{kind: KBegLine}) }

// NewEndLine adds a '$' position marker.
func (t *Tree) NewEndLine() NodeID { return t.alloc(Node{kind: KEndLine}) }

// NewNone adds the empty-language node.
func (t *Tree) NewNone() NodeID { return t.alloc(Node{kind: KNone}) }

// NewEOP adds the synthetic end-of-pattern marker.
func (t *Tree) NewEOP() NodeID { return t.alloc(Node{kind: KEOP}) }

// NewConcat adds L·R, collapsing None-identities per the parser's
// algebraic simplification rules.
func (t *Tree) NewConcat(l, r NodeID) NodeID {
	if t.Node(l).Kind() == KNone || t.Node(r).Kind() == KNone {
		return t.NewNone()
	}
	return t.alloc(Node{kind: KConcat, left: l, right: r})
}

// NewUnion adds L|R, with None as identity.
func (t *Tree) NewUnion(l, r NodeID) NodeID {
	if t.Node(l).Kind() == KNone {
		return r
	}
	if t.Node(r).Kind() == KNone {
		return l
	}
	return t.alloc(Node{kind: KUnion, left: l, right: r})
}

// NewStar adds X*. There is no special case for X=None: None* is a
// Star node that matches only the empty string (Nullable reports it
// nullable), and NewConcat does not absorb it the way it absorbs None.
// The parser can produce it, e.g. from `()*` or a depth-capped (?R).
func (t *Tree) NewStar(x NodeID) NodeID {
	return t.alloc(Node{kind: KStar, left: x})
}

// NewPlus adds X+.
func (t *Tree) NewPlus(x NodeID) NodeID {
	if t.Node(x).Kind() == KNone {
		return t.NewNone()
	}
	return t.alloc(Node{kind: KPlus, left: x})
}

// NewQmark adds X?. Unlike Plus, this does not collapse X=None to
// None: zero-or-one repetitions of a language that never matches still
// has a viable "zero" branch, so X? is the empty-string language, not
// the empty language. That nullability falls out of the generic
// Star/Qmark rules in FillTransition/Nullable once the node exists, so
// no special case is needed here beyond not wrongly short-circuiting
// it away. This matters for bounded (?R) recursion: the innermost,
// depth-capped occurrence degrades to None, and its enclosing `?`
// (e.g. `a(?R)?b`) must still accept by choosing the zero branch.
func (t *Tree) NewQmark(x NodeID) NodeID {
	return t.alloc(Node{kind: KQmark, left: x})
}

// Clone deep-copies the subtree rooted at id into the same arena and
// returns the id of the copy. Used by the parser to expand bounded
// repetitions ({m,n}) into concatenated copies.
func (t *Tree) Clone(id NodeID) NodeID {
	if id == InvalidNode {
		return InvalidNode
	}
	n := t.Node(id)
	switch n.kind {
	case KLiteral:
		return t.NewLiteral(n.lit)
	case KDot:
		return t.NewDot()
	case KCharClass:
		cp := *n.class
		return t.NewCharClass(&cp)
	case KBegLine:
		return t.NewBegLine()
	case KEndLine:
		return t.NewEndLine()
	case KNone:
		return t.NewNone()
	case KEOP:
		return t.NewEOP()
	case KConcat:
		return t.alloc(Node{kind: KConcat, left: t.Clone(n.left), right: t.Clone(n.right)})
	case KUnion:
		return t.alloc(Node{kind: KUnion, left: t.Clone(n.left), right: t.Clone(n.right)})
	case KStar:
		return t.alloc(Node{kind: KStar, left: t.Clone(n.left)})
	case KPlus:
		return t.alloc(Node{kind: KPlus, left: t.Clone(n.left)})
	case KQmark:
		return t.alloc(Node{kind: KQmark, left: t.Clone(n.left)})
	default:
		panic(fmt.Sprintf("expr: Clone: unhandled kind %v", n.kind))
	}
}

// MatchByte reports whether the state-bearing position s consumes the
// byte c.
func (t *Tree) MatchByte(s StateID, c byte) bool {
	n := t.Node(t.stateNodes[s])
	switch n.kind {
	case KLiteral:
		return n.lit == c
	case KDot:
		return true
	case KCharClass:
		return n.class.Test(c)
	case KEOP:
		return false
	default:
		panic(fmt.Sprintf("expr: MatchByte: non-state-bearing kind %v", n.kind))
	}
}
