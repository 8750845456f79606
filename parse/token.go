// Package parse implements the lexer and recursive-descent parser for
// the extended regex grammar: literals, classes, grouping, repetition,
// union, intersection (&), complement (!) and bounded self-recursion
// ((?R)). It turns pattern source text into an *expr.Tree the dfa
// package can subset-construct over.
//
// Grammar (spec.md §4.B):
//
//	RE  := e0 EOP
//	e0  := e1 ('|' e1)*              -- union
//	e1  := e2 ('&' e2)*              -- intersection
//	e2  := e3+                       -- concatenation
//	e3  := e4 (?+* | {m,n})*         -- repetition
//	e4  := ATOM | '(' e0 ')' | '!' e0
package parse

import "fmt"

type tokenType uint8

const (
	tEOP tokenType = iota
	tLiteral
	tDot
	tCharClass
	tUnion
	tIntersection
	tComplement
	tQmark
	tPlus
	tStar
	tLpar
	tRpar
	tBegLine
	tEndLine
	tNone
	tRepetition
)

func (t tokenType) String() string {
	names := [...]string{
		"EOP", "Literal", "Dot", "CharClass", "Union", "Intersection",
		"Complement", "Qmark", "Plus", "Star", "Lpar", "Rpar",
		"BegLine", "EndLine", "None", "Repetition",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("tokenType(%d)", t)
}
