package layout

import (
	"github.com/matzehuels/stemloop/pkg/geom"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// Nucleotide is one placed position of the sequence.
type Nucleotide struct {
	Index   int
	Base    byte
	Pos     geom.Vec
	Partner int // structure.NoPartner when unpaired
}

// Element is the placed counterpart of a structure node. Implementations
// are [*UnpairedElement], [*HelixElement] and [*LoopElement].
type Element interface {
	// Node is the structure node this element places.
	Node() structure.Node
	// Parent is nil for elements hanging off the root.
	Parent() Element
	Children() []Element

	rotate(center geom.Vec, deg float64)
	reflect(m mirror)
}

// UnpairedElement places an unpaired run, either on the exterior baseline
// or on the arc of its enclosing loop.
type UnpairedElement struct {
	node        *structure.Unpaired
	parent      Element
	Nucleotides []*Nucleotide // 5' to 3'
}

// PairPos is a placed base pair.
type PairPos struct {
	Five  *Nucleotide
	Three *Nucleotide
}

// Center returns the midpoint of the pair.
func (p PairPos) Center() geom.Vec { return p.Five.Pos.Mid(p.Three.Pos) }

// HelixElement places a helix along its axis.
type HelixElement struct {
	node   *structure.Helix
	parent Element

	Pairs      []PairPos // Outermost first
	Anchor     geom.Vec  // Midpoint of the outermost pair
	Axis       geom.Vec  // Unit vector from outermost toward innermost pair
	NextAnchor geom.Vec  // Midpoint of the innermost pair, handed to the child
	Child      *LoopElement
}

// Slot is the arc of a loop assigned to one member.
type Slot struct {
	Element Element
	Start   float64
	End     float64
}

// Mid returns the angle halfway through the slot.
func (s Slot) Mid() float64 { return (s.Start + s.End) / 2 }

// Width returns the angular width of the slot.
func (s Slot) Width() float64 { return s.End - s.Start }

// LoopElement places a loop on a circle.
type LoopElement struct {
	node   structure.Loop
	parent *HelixElement

	Center    geom.Vec
	Radius    float64
	Phi       float64 // Arc consumed by each pair on the circle
	Increment float64 // Arc between neighbouring nucleotides
	// Direction is 1 when slots run 5' to 3' with increasing angle and -1
	// after an odd number of flips.
	Direction int
	// Start and End bound the free arc, i.e. the circle minus the closing pair.
	Start float64
	End   float64
	// Slots are ordered by increasing angle.
	Slots []Slot

	minStep float64 // smallest arc Rearrange leaves between neighbours
}

func (u *UnpairedElement) Node() structure.Node { return u.node }
func (h *HelixElement) Node() structure.Node    { return h.node }
func (l *LoopElement) Node() structure.Node     { return l.node }

// Run returns the placed unpaired run.
func (u *UnpairedElement) Run() *structure.Unpaired { return u.node }

// Helix returns the placed helix.
func (h *HelixElement) Helix() *structure.Helix { return h.node }

// Loop returns the placed loop.
func (l *LoopElement) Loop() structure.Loop { return l.node }

func (u *UnpairedElement) Parent() Element { return u.parent }
func (h *HelixElement) Parent() Element    { return h.parent }

func (l *LoopElement) Parent() Element {
	if l.parent == nil {
		return nil
	}
	return l.parent
}

func (*UnpairedElement) Children() []Element { return nil }

func (h *HelixElement) Children() []Element {
	if h.Child == nil {
		return nil
	}
	return []Element{h.Child}
}

// Children returns the members in 5' to 3' order regardless of Direction.
func (l *LoopElement) Children() []Element {
	out := make([]Element, len(l.Slots))
	for i, s := range l.Slots {
		out[i] = s.Element
	}
	if l.Direction < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Closing returns the helix pair that closes the loop.
func (l *LoopElement) Closing() PairPos {
	return l.parent.Pairs[len(l.parent.Pairs)-1]
}

// SlotOf returns the index of e in l.Slots, or -1.
func (l *LoopElement) SlotOf(e Element) int {
	for i, s := range l.Slots {
		if s.Element == e {
			return i
		}
	}
	return -1
}

// Innermost returns the loop-facing pair.
func (h *HelixElement) Innermost() PairPos { return h.Pairs[len(h.Pairs)-1] }

// Walk visits e and its descendants in preorder.
func Walk(e Element, fn func(Element)) {
	fn(e)
	for _, c := range e.Children() {
		Walk(c, fn)
	}
}
