package expr

// CaptureRef records a parenthesised group's content subtree so its
// boundary positions can be tagged once FillTransition has computed
// first/last for the whole tree (tagging can't happen at parse time
// because the subexpression's first/last aren't known until the full
// tree is assembled).
type CaptureRef struct {
	Group   int
	Content NodeID
}

// Enter returns the capture-group numbers whose content may start at
// this state-bearing node.
func (n *Node) Enter() []int { return n.enter }

// Leave returns the capture-group boundary numbers whose content may
// end at this state-bearing node (leave tag is Group+1, matching the
// reference implementation's enter/leave numbering).
func (n *Node) Leave() []int { return n.leave }

// ApplyCapture tags the first/last positions of sub with group's
// enter/leave markers. Must run after FillTransition.
func (t *Tree) ApplyCapture(group int, sub NodeID) {
	n := t.Node(sub)
	for _, p := range n.first {
		node := &t.nodes[t.stateNodes[p]]
		node.enter = append(node.enter, group)
	}
	for _, p := range n.last {
		node := &t.nodes[t.stateNodes[p]]
		node.leave = append(node.leave, group+1)
	}
}
