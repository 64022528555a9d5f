package structure

// Visitor handles every node kind. Accept calls exactly one method and does
// not descend; visitors that need the subtree recurse through Children or
// the typed fields.
type Visitor interface {
	VisitRoot(*Root)
	VisitUnpaired(*Unpaired)
	VisitHelix(*Helix)
	VisitTerminalLoop(*TerminalLoop)
	VisitBulge(*Bulge)
	VisitInternalLoop(*InternalLoop)
	VisitMultiLoop(*MultiLoop)
}

func (r *Root) Accept(v Visitor)         { v.VisitRoot(r) }
func (u *Unpaired) Accept(v Visitor)     { v.VisitUnpaired(u) }
func (h *Helix) Accept(v Visitor)        { v.VisitHelix(h) }
func (l *TerminalLoop) Accept(v Visitor) { v.VisitTerminalLoop(l) }
func (b *Bulge) Accept(v Visitor)        { v.VisitBulge(b) }
func (l *InternalLoop) Accept(v Visitor) { v.VisitInternalLoop(l) }
func (m *MultiLoop) Accept(v Visitor)    { v.VisitMultiLoop(m) }

// Walk visits n and its descendants in preorder. Returning false from fn
// skips the node's subtree.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, fn)
	}
}

// Depth returns the number of ancestors of n.
func Depth(n Node) int {
	d := 0
	for p := n.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// EnclosingLoop returns the loop that directly contains segment s, or nil
// when s hangs off the root.
func EnclosingLoop(s Segment) Loop {
	l, _ := s.Parent().(Loop)
	return l
}
