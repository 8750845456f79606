package parse

import (
	"github.com/coregx/regena/dfa"
	"github.com/coregx/regena/expr"
)

// Result is everything Parse produces beyond the tree itself: the
// numbered/transitioned root, the count of capture groups seen, and
// whether any (?R) site degraded to an empty match because it hit the
// recursion depth cap.
type Result struct {
	Tree              *expr.Tree
	Root              expr.NodeID
	NumCaptures       int
	RecursionDegraded bool
}

// Config bounds the parser's use of the dfa package when realising &
// and ! (both build an intermediate DFA over their operands) and the
// depth of (?R) self-recursion.
type Config struct {
	StateLimit   int // 0 selects dfa's size-derived default
	RecursionCap int // 0 selects a conservative default
}

// DefaultConfig returns the parser's stand-alone defaults, used when a
// caller doesn't need to thread a project-wide Config through.
func DefaultConfig() Config {
	return Config{StateLimit: 0, RecursionCap: 32}
}

// Parse compiles pattern into an expr.Tree, fully numbered and with
// follow sets computed, ready for dfa.Construct. Capture groups are
// tagged in the same pass. & and ! are eliminated during parsing by
// building a scratch DFA for their operands and converting the result
// back to an ordinary regex fragment (package dfa's RealizeIntersection
// / RealizeComplement), so the returned tree never contains
// intersection or complement nodes — expr has no Kind for either.
func Parse(pattern string, cfg Config) (*Result, error) {
	if cfg.RecursionCap <= 0 {
		cfg.RecursionCap = 32
	}
	p := &parser{
		lx:   newLexer(pattern, cfg.RecursionCap),
		tree: expr.NewTree(),
		cfg:  cfg,
	}
	if _, err := p.lx.lex(); err != nil {
		return nil, err
	}
	body, err := p.e0()
	if err != nil {
		return nil, err
	}
	if p.lx.tok != tEOP {
		return nil, p.lx.errorAt(p.lx.tokStart, ErrExpectedEOP)
	}

	eop := p.tree.NewEOP()
	root := p.tree.NewConcat(body, eop)
	p.tree.Number(root)
	p.tree.FillTransition(root)
	for _, c := range p.pending {
		p.tree.ApplyCapture(c.Group, c.Content)
	}

	return &Result{
		Tree:              p.tree,
		Root:              root,
		NumCaptures:       p.nextGroup,
		RecursionDegraded: p.lx.recursionDegraded,
	}, nil
}

type parser struct {
	lx        *lexer
	tree      *expr.Tree
	cfg       Config
	nextGroup int
	pending   []expr.CaptureRef
}

func (p *parser) advance() error {
	_, err := p.lx.lex()
	return err
}

// e0 := e1 ('|' e1)*
func (p *parser) e0() (expr.NodeID, error) {
	left, err := p.e1()
	if err != nil {
		return expr.InvalidNode, err
	}
	for p.lx.tok == tUnion {
		if err := p.advance(); err != nil {
			return expr.InvalidNode, err
		}
		right, err := p.e1()
		if err != nil {
			return expr.InvalidNode, err
		}
		left = p.union(left, right)
	}
	return left, nil
}

func (p *parser) union(a, b expr.NodeID) expr.NodeID {
	an, bn := p.tree.Node(a), p.tree.Node(b)
	if expr.IsLeafCombinable(an.Kind()) && expr.IsLeafCombinable(bn.Kind()) {
		return expr.Combine(p.tree, a, b)
	}
	return p.tree.NewUnion(a, b)
}

// e1 := e2 ('&' e2)*
func (p *parser) e1() (expr.NodeID, error) {
	left, err := p.e2()
	if err != nil {
		return expr.InvalidNode, err
	}
	operands := []expr.NodeID{left}
	for p.lx.tok == tIntersection {
		if err := p.advance(); err != nil {
			return expr.InvalidNode, err
		}
		right, err := p.e2()
		if err != nil {
			return expr.InvalidNode, err
		}
		operands = append(operands, right)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	frag, err := dfa.RealizeIntersection(p.tree, operands, p.cfg.StateLimit)
	if err != nil {
		return expr.InvalidNode, p.lx.errorAt(p.lx.tokStart, err)
	}
	return frag, nil
}

// e2 := e3+  (concatenation)
func (p *parser) e2() (expr.NodeID, error) {
	left, err := p.e3()
	if err != nil {
		return expr.InvalidNode, err
	}
	for p.startsE3() {
		right, err := p.e3()
		if err != nil {
			return expr.InvalidNode, err
		}
		left = p.tree.NewConcat(left, right)
	}
	return left, nil
}

// startsE3 reports whether the current token can begin another e3
// operand, i.e. concatenation continues.
func (p *parser) startsE3() bool {
	switch p.lx.tok {
	case tLiteral, tDot, tCharClass, tBegLine, tEndLine, tNone, tLpar, tComplement:
		return true
	default:
		return false
	}
}

// e3 := e4 (?|+|*|{m,n})*
func (p *parser) e3() (expr.NodeID, error) {
	operand, err := p.e4()
	if err != nil {
		return expr.InvalidNode, err
	}
	for {
		switch p.lx.tok {
		case tQmark:
			operand = p.tree.NewQmark(operand)
			if err := p.advance(); err != nil {
				return expr.InvalidNode, err
			}
		case tPlus:
			operand = p.tree.NewPlus(operand)
			if err := p.advance(); err != nil {
				return expr.InvalidNode, err
			}
		case tStar:
			operand = p.tree.NewStar(operand)
			if err := p.advance(); err != nil {
				return expr.InvalidNode, err
			}
		case tRepetition:
			lower, upper := p.lx.lowerRep, p.lx.upperRep
			if err := p.advance(); err != nil {
				return expr.InvalidNode, err
			}
			operand = p.expandRepetition(operand, lower, upper)
		default:
			return operand, nil
		}
	}
}

// expandRepetition lowers {m,n} into a concatenation of m mandatory
// copies followed by (n-m) optional copies, or m mandatory copies
// followed by a trailing Star when n is unbounded. Each copy after the
// first is Tree.Clone'd so every copy keeps an independent position in
// the automaton — a{3} isn't the same position tripled, it's three
// distinct positions in sequence.
func (p *parser) expandRepetition(operand expr.NodeID, lower, upper int) expr.NodeID {
	var result expr.NodeID = expr.InvalidNode
	appendCopy := func(id expr.NodeID) {
		if result == expr.InvalidNode {
			result = id
		} else {
			result = p.tree.NewConcat(result, id)
		}
	}
	for i := 0; i < lower; i++ {
		if i == 0 {
			appendCopy(operand)
		} else {
			appendCopy(p.tree.Clone(operand))
		}
	}
	switch {
	case upper == -1:
		tail := operand
		if lower > 0 {
			tail = p.tree.Clone(operand)
		}
		appendCopy(p.tree.NewStar(tail))
	default:
		for i := lower; i < upper; i++ {
			var cp expr.NodeID
			if i == 0 {
				cp = operand
			} else {
				cp = p.tree.Clone(operand)
			}
			appendCopy(p.tree.NewQmark(cp))
		}
	}
	if result == expr.InvalidNode {
		return p.tree.NewNone()
	}
	return result
}

// e4 := ATOM | '(' e0 ')' | '!' e0
func (p *parser) e4() (expr.NodeID, error) {
	switch p.lx.tok {
	case tLiteral:
		id := p.tree.NewLiteral(p.lx.lit)
		return id, p.advance()
	case tDot:
		id := p.tree.NewDot()
		return id, p.advance()
	case tBegLine:
		id := p.tree.NewBegLine()
		return id, p.advance()
	case tEndLine:
		id := p.tree.NewEndLine()
		return id, p.advance()
	case tNone:
		id := p.tree.NewNone()
		return id, p.advance()
	case tCharClass:
		cc, err := p.lx.buildCharClass()
		if err != nil {
			return expr.InvalidNode, err
		}
		if err := p.advance(); err != nil {
			return expr.InvalidNode, err
		}
		return p.charClassNode(cc), nil
	case tComplement:
		negations := 0
		for p.lx.tok == tComplement {
			negations++
			if err := p.advance(); err != nil {
				return expr.InvalidNode, err
			}
		}
		operand, err := p.e0()
		if err != nil {
			return expr.InvalidNode, err
		}
		if negations%2 == 0 {
			return operand, nil
		}
		frag, err := dfa.RealizeComplement(p.tree, operand, p.cfg.StateLimit)
		if err != nil {
			return expr.InvalidNode, p.lx.errorAt(p.lx.tokStart, err)
		}
		return frag, nil
	case tLpar:
		group := p.nextGroup
		p.nextGroup++
		if err := p.advance(); err != nil {
			return expr.InvalidNode, err
		}
		inner, err := p.e0()
		if err != nil {
			return expr.InvalidNode, err
		}
		if p.lx.tok != tRpar {
			return expr.InvalidNode, p.lx.errorAt(p.lx.tokStart, ErrUnmatchedParen)
		}
		if err := p.advance(); err != nil {
			return expr.InvalidNode, err
		}
		p.pending = append(p.pending, expr.CaptureRef{Group: group, Content: inner})
		return inner, nil
	default:
		return expr.InvalidNode, p.lx.errorAt(p.lx.tokStart, ErrEmptyOperand)
	}
}

// charClassNode collapses a parsed ByteSet to Dot/Literal when its
// effective population (honoring Negative) makes it equivalent to one,
// matching the reference grammar's e4 collapse of a CharClass token.
func (p *parser) charClassNode(cc *expr.ByteSet) expr.NodeID {
	switch cc.Count() {
	case 256:
		return p.tree.NewDot()
	case 1:
		for c := 0; c < 256; c++ {
			if cc.Test(byte(c)) {
				return p.tree.NewLiteral(byte(c))
			}
		}
		panic("unreachable")
	default:
		return p.tree.NewCharClass(cc)
	}
}
