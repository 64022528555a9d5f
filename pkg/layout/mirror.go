package layout

import (
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/geom"
)

// Flip mirrors the loop with the given node ID, and everything inside it,
// across the axis of its closing helix. The mirror line runs through the
// midpoint of the closing pair, so the closing pair and the loop circle stay
// where they are while the members swap sides. Slot order is reversed and
// the draw direction negated, so flipping twice restores the loop.
func (l *Layout) Flip(loopID int) error {
	lp, ok := l.Loop(loopID)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "no loop with id %d", loopID)
	}
	h := lp.parent
	mid := (lp.Start + lp.End) / 2
	lp.reflect(mirror{
		origin: lp.Closing().Center(),
		dir:    h.Axis.Unit(),
		deg:    mid + geom.AngleDiff(h.Axis.Angle(), mid),
	})
	return nil
}

// FlipAll mirrors the whole layout across y = baselineY.
func (l *Layout) FlipAll(baselineY float64) {
	m := mirror{origin: geom.V(0, baselineY), dir: geom.V(1, 0)}
	for _, e := range l.Forest {
		e.reflect(m)
	}
}

// Baseline returns the y coordinate of the exterior backbone.
func (l *Layout) Baseline() float64 { return l.Config.Origin.Y }

// mirror is a reflection across the line through origin along the unit
// vector dir. deg is the angle of dir in the frame of the loops it touches.
type mirror struct {
	origin geom.Vec
	dir    geom.Vec
	deg    float64
}

func (m mirror) point(v geom.Vec) geom.Vec {
	return m.origin.Add(m.vector(v.Sub(m.origin)))
}

func (m mirror) vector(v geom.Vec) geom.Vec {
	return m.dir.Scale(2 * v.Dot(m.dir)).Sub(v)
}

// angle maps a to 2*deg - a, which turns the interval [s, e] into
// [2*deg - e, 2*deg - s].
func (m mirror) angle(a float64) float64 { return 2*m.deg - a }

func (u *UnpairedElement) reflect(m mirror) {
	for _, n := range u.Nucleotides {
		n.Pos = m.point(n.Pos)
	}
}

func (h *HelixElement) reflect(m mirror) {
	for _, p := range h.Pairs {
		p.Five.Pos = m.point(p.Five.Pos)
		p.Three.Pos = m.point(p.Three.Pos)
	}
	h.Anchor = m.point(h.Anchor)
	h.NextAnchor = m.point(h.NextAnchor)
	h.Axis = m.vector(h.Axis)
	if h.Child != nil {
		h.Child.reflect(m)
	}
}

// reflect reverses the order of the slots, since reflection reverses the
// order of angles.
func (lp *LoopElement) reflect(m mirror) {
	lp.Center = m.point(lp.Center)
	lp.Direction = -lp.Direction
	lp.Start, lp.End = m.angle(lp.End), m.angle(lp.Start)

	n := len(lp.Slots)
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		lp.Slots[i], lp.Slots[j] = lp.Slots[j], lp.Slots[i]
	}
	for i := range lp.Slots {
		s := &lp.Slots[i]
		s.Start, s.End = m.angle(s.End), m.angle(s.Start)
		s.Element.reflect(m)
	}
}
