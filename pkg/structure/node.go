package structure

// Kind identifies a motif type. It exists for display and serialization;
// dispatch over node types goes through [Visitor] or a type switch.
type Kind int

const (
	KindRoot Kind = iota
	KindUnpaired
	KindHelix
	KindTerminalLoop
	KindBulge
	KindInternalLoop
	KindMultiLoop
)

var kindNames = [...]string{
	KindRoot:         "root",
	KindUnpaired:     "unpaired",
	KindHelix:        "helix",
	KindTerminalLoop: "terminal_loop",
	KindBulge:        "bulge",
	KindInternalLoop: "internal_loop",
	KindMultiLoop:    "multi_loop",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// IsLoop reports whether nodes of kind k are drawn on a circle.
func (k Kind) IsLoop() bool {
	return k >= KindTerminalLoop
}

// Node is a motif in the structure tree. The set of implementations is
// closed to this package.
type Node interface {
	// ID is the node's preorder position in its tree.
	ID() int
	Kind() Kind
	// Parent is nil for the root.
	Parent() Node
	// Children are ordered 5' to 3'.
	Children() []Node
	// Span is the inclusive range of sequence positions the node covers,
	// descendants included.
	Span() (lo, hi int)
	Accept(v Visitor)

	base() *nodeBase
}

// Segment is a direct member of a loop or of the root: an unpaired run or a
// helix.
type Segment interface {
	Node
	segment()
}

// Loop is a motif closed by the innermost pair of a helix.
type Loop interface {
	Node
	// Members are the unpaired runs and branching helices of the loop in
	// 5' to 3' order. The closing pair is not a member.
	Members() []Segment
	loop()
}

type nodeBase struct {
	id     int
	parent Node
}

func (b *nodeBase) ID() int         { return b.id }
func (b *nodeBase) Parent() Node    { return b.parent }
func (b *nodeBase) base() *nodeBase { return b }

// BasePair is one pair of a helix, with the letters found at each end.
type BasePair struct {
	Five      int  // 5' position
	Three     int  // 3' position
	FiveBase  byte // Letter at Five
	ThreeBase byte // Letter at Three
}

// String renders the pair as e.g. "G-C".
func (bp BasePair) String() string {
	return string([]byte{bp.FiveBase, '-', bp.ThreeBase})
}

// Root is the synthetic top of the tree.
type Root struct {
	nodeBase
	Segments []Segment
	n        int
}

// Unpaired is a maximal run of contiguous unpaired positions.
type Unpaired struct {
	nodeBase
	Seq string // Letters of the run
	Idx []int  // Sequence positions, ascending and contiguous
}

// Helix is a maximal stack of nested base pairs. Child is nil when the
// helix closes an empty interior.
type Helix struct {
	nodeBase
	Pairs []BasePair // Outermost first
	Child Loop
}

// TerminalLoop is the unpaired run at the tip of a hairpin.
type TerminalLoop struct {
	nodeBase
	Run *Unpaired
}

// Side is the strand of a bulge's unpaired run.
type Side int

const (
	// SideLeft means the run is on the 5' strand and precedes the helix.
	SideLeft Side = iota
	// SideRight means the run is on the 3' strand and follows the helix.
	SideRight
)

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// Bulge has unpaired nucleotides on exactly one strand.
type Bulge struct {
	nodeBase
	Side  Side
	Run   *Unpaired
	Helix *Helix
}

// InternalLoop has unpaired nucleotides on both strands around one helix.
type InternalLoop struct {
	nodeBase
	Left  *Unpaired
	Helix *Helix
	Right *Unpaired
}

// MultiLoop has two or more branching helices.
type MultiLoop struct {
	nodeBase
	Segments []Segment
}

// Kind

func (*Root) Kind() Kind         { return KindRoot }
func (*Unpaired) Kind() Kind     { return KindUnpaired }
func (*Helix) Kind() Kind        { return KindHelix }
func (*TerminalLoop) Kind() Kind { return KindTerminalLoop }
func (*Bulge) Kind() Kind        { return KindBulge }
func (*InternalLoop) Kind() Kind { return KindInternalLoop }
func (*MultiLoop) Kind() Kind    { return KindMultiLoop }

// Markers

func (*Unpaired) segment()  {}
func (*Helix) segment()     {}
func (*TerminalLoop) loop() {}
func (*Bulge) loop()        {}
func (*InternalLoop) loop() {}
func (*MultiLoop) loop()    {}

// Members

func (l *TerminalLoop) Members() []Segment { return []Segment{l.Run} }

func (b *Bulge) Members() []Segment {
	if b.Side == SideLeft {
		return []Segment{b.Run, b.Helix}
	}
	return []Segment{b.Helix, b.Run}
}

func (l *InternalLoop) Members() []Segment { return []Segment{l.Left, l.Helix, l.Right} }
func (m *MultiLoop) Members() []Segment    { return m.Segments }

// Children

func segmentNodes(segs []Segment) []Node {
	out := make([]Node, len(segs))
	for i, s := range segs {
		out[i] = s
	}
	return out
}

func (r *Root) Children() []Node         { return segmentNodes(r.Segments) }
func (*Unpaired) Children() []Node       { return nil }
func (l *TerminalLoop) Children() []Node { return segmentNodes(l.Members()) }
func (b *Bulge) Children() []Node        { return segmentNodes(b.Members()) }
func (l *InternalLoop) Children() []Node { return segmentNodes(l.Members()) }
func (m *MultiLoop) Children() []Node    { return segmentNodes(m.Segments) }

func (h *Helix) Children() []Node {
	if h.Child == nil {
		return nil
	}
	return []Node{h.Child}
}

// Spans

func (r *Root) Span() (int, int) { return 0, r.n - 1 }

func (u *Unpaired) Span() (int, int) { return u.Idx[0], u.Idx[len(u.Idx)-1] }

func (h *Helix) Span() (int, int) { return h.Pairs[0].Five, h.Pairs[0].Three }

func (l *TerminalLoop) Span() (int, int) { return loopSpan(l) }
func (b *Bulge) Span() (int, int)        { return loopSpan(b) }
func (l *InternalLoop) Span() (int, int) { return loopSpan(l) }
func (m *MultiLoop) Span() (int, int)    { return loopSpan(m) }

// loopSpan covers the interior between the closing pair.
func loopSpan(l Loop) (int, int) {
	h := l.Parent().(*Helix)
	inner := h.Innermost()
	return inner.Five + 1, inner.Three - 1
}

// Len returns the number of nucleotides in the run.
func (u *Unpaired) Len() int { return len(u.Idx) }

// Innermost returns the loop-facing pair of the helix.
func (h *Helix) Innermost() BasePair { return h.Pairs[len(h.Pairs)-1] }

// Outermost returns the first pair of the helix.
func (h *Helix) Outermost() BasePair { return h.Pairs[0] }

// Len returns the number of base pairs.
func (h *Helix) Len() int { return len(h.Pairs) }

// Helices returns the helices among segs.
func Helices(segs []Segment) []*Helix {
	var out []*Helix
	for _, s := range segs {
		if h, ok := s.(*Helix); ok {
			out = append(out, h)
		}
	}
	return out
}

// UnpairedCount returns the total number of nucleotides in the unpaired
// runs among segs.
func UnpairedCount(segs []Segment) int {
	n := 0
	for _, s := range segs {
		if u, ok := s.(*Unpaired); ok {
			n += u.Len()
		}
	}
	return n
}
