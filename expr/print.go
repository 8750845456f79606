package expr

import (
	"fmt"
	"strings"
)

// Print renders the subtree rooted at id back into regex source,
// fully parenthesised so precedence is unambiguous. This is the
// "PrintRegex" visitor from spec.md §6, implemented as an exhaustive
// switch over Kind rather than a class hierarchy (see design note §9).
func Print(t *Tree, id NodeID) string {
	var b strings.Builder
	printRec(t, id, &b)
	return b.String()
}

func printRec(t *Tree, id NodeID, b *strings.Builder) {
	if id == InvalidNode {
		return
	}
	n := t.Node(id)
	switch n.kind {
	case KLiteral:
		fmt.Fprintf(b, "%s", escapeLit(n.lit))
	case KDot:
		b.WriteByte('.')
	case KCharClass:
		printClass(n.class, b)
	case KBegLine:
		b.WriteByte('^')
	case KEndLine:
		b.WriteByte('$')
	case KNone:
		b.WriteString("()")
	case KEOP:
		// EOP is synthetic and never appears in source; omit it.
	case KConcat:
		printRec(t, n.left, b)
		printRec(t, n.right, b)
	case KUnion:
		b.WriteByte('(')
		printRec(t, n.left, b)
		b.WriteByte('|')
		printRec(t, n.right, b)
		b.WriteByte(')')
	case KStar:
		b.WriteByte('(')
		printRec(t, n.left, b)
		b.WriteString(")*")
	case KPlus:
		b.WriteByte('(')
		printRec(t, n.left, b)
		b.WriteString(")+")
	case KQmark:
		b.WriteByte('(')
		printRec(t, n.left, b)
		b.WriteString(")?")
	}
}

func escapeLit(c byte) string {
	switch c {
	case '.', '[', ']', '|', '&', '!', '?', '+', '*', '(', ')', '^', '$', '\\':
		return "\\" + string(c)
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	if c < 0x20 || c >= 0x7f {
		return fmt.Sprintf(`\x%02x`, c)
	}
	return string(c)
}

func printClass(cc *ByteSet, b *strings.Builder) {
	b.WriteByte('[')
	if cc.Negative {
		b.WriteByte('^')
	}
	c := 0
	for c < 256 {
		if !cc.rawTest(byte(c)) {
			c++
			continue
		}
		begin := c
		for c < 256 && cc.rawTest(byte(c)) {
			c++
		}
		end := c - 1
		if end == begin {
			b.WriteString(escapeLit(byte(begin)))
		} else {
			b.WriteString(escapeLit(byte(begin)))
			b.WriteByte('-')
			b.WriteString(escapeLit(byte(end)))
		}
	}
	b.WriteByte(']')
}

// Dump renders a structured, deterministic tree dump (node id, kind,
// state id, literal byte, first/last; follow sets are not printed) for
// debugging. Shape is unspecified by
// the spec beyond determinism.
func Dump(t *Tree, id NodeID) string {
	var b strings.Builder
	dumpRec(t, id, &b, 0)
	return b.String()
}

func dumpRec(t *Tree, id NodeID, b *strings.Builder, depth int) {
	if id == InvalidNode {
		return
	}
	n := t.Node(id)
	fmt.Fprintf(b, "%s#%d %s", strings.Repeat("  ", depth), n.id, n.kind)
	if n.kind.IsStateBearing() {
		fmt.Fprintf(b, " state=%d", n.state)
	}
	if n.kind == KLiteral {
		fmt.Fprintf(b, " lit=%s", escapeLit(n.lit))
	}
	if len(n.first) > 0 || len(n.last) > 0 {
		fmt.Fprintf(b, " first=%v last=%v", n.first, n.last)
	}
	b.WriteByte('\n')
	left, right := n.Children()
	dumpRec(t, left, b, depth+1)
	dumpRec(t, right, b, depth+1)
}
