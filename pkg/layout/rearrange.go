package layout

import (
	"math"

	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/geom"
)

// Rearrange turns the helix with the given node ID about the center of its
// enclosing loop so that its axis points at angle degrees.
//
// The angle is clamped so the helix slot stays between its neighbouring
// helices (or the closing pair) without nucleotides overlapping. The helix
// and everything it encloses move rigidly. Unpaired runs directly before and
// after it are re-spread over the arcs that remain; every other slot keeps
// its interval.
func (l *Layout) Rearrange(helixID int, angle float64) error {
	h, ok := l.Helix(helixID)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "no helix with id %d", helixID)
	}
	loop, ok := h.parent.(*LoopElement)
	if !ok {
		return errs.New(errs.ErrCodeInvalidInput, "helix %d is not inside a loop", helixID)
	}
	return loop.Rearrange(h, angle)
}

// DragTo is Rearrange with the angle taken from the loop center to p.
func (l *Layout) DragTo(helixID int, p geom.Vec) error {
	h, ok := l.Helix(helixID)
	if !ok {
		return errs.New(errs.ErrCodeNotFound, "no helix with id %d", helixID)
	}
	loop, ok := h.parent.(*LoopElement)
	if !ok {
		return errs.New(errs.ErrCodeInvalidInput, "helix %d is not inside a loop", helixID)
	}
	return loop.Rearrange(h, p.Sub(loop.Center).Angle())
}

// Rearrange moves member helix h to angle; see [Layout.Rearrange].
func (lp *LoopElement) Rearrange(h *HelixElement, angle float64) error {
	i := lp.SlotOf(h)
	if i < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "helix %d is not a member of loop %d", h.node.ID(), lp.node.ID())
	}
	slot := lp.Slots[i]
	half := lp.Phi / 2

	// Every neighbour keeps at least minStep per gap: one gap to a helix or
	// the closing pair, k+1 gaps across a run of k nucleotides.
	lo, hi := lp.Start+lp.minStep, lp.End-lp.minStep
	if i > 0 {
		prev := lp.Slots[i-1]
		if u, ok := prev.Element.(*UnpairedElement); ok {
			lo = prev.Start + lp.minStep*float64(len(u.Nucleotides)+1)
		} else {
			lo = prev.End + lp.minStep
		}
	}
	if i < len(lp.Slots)-1 {
		next := lp.Slots[i+1]
		if u, ok := next.Element.(*UnpairedElement); ok {
			hi = next.End - lp.minStep*float64(len(u.Nucleotides)+1)
		} else {
			hi = next.Start - lp.minStep
		}
	}
	lo = math.Min(lo, slot.Start)
	hi = math.Max(hi, slot.End)

	// Unwrap the target next to the current position, then clamp.
	mid := slot.Mid()
	target := mid + geom.AngleDiff(angle, mid)
	target = math.Max(lo+half, math.Min(hi-half, target))

	delta := target - mid
	if delta == 0 {
		return nil
	}
	h.rotate(lp.Center, delta)
	lp.Slots[i].Start, lp.Slots[i].End = target-half, target+half

	if i > 0 {
		if u, ok := lp.Slots[i-1].Element.(*UnpairedElement); ok {
			lp.Slots[i-1].End = target - half
			u.spread(lp.Center, lp.Radius, lp.Slots[i-1].Start, lp.Slots[i-1].End, lp.Direction)
		}
	}
	if i < len(lp.Slots)-1 {
		if u, ok := lp.Slots[i+1].Element.(*UnpairedElement); ok {
			lp.Slots[i+1].Start = target + half
			u.spread(lp.Center, lp.Radius, lp.Slots[i+1].Start, lp.Slots[i+1].End, lp.Direction)
		}
	}
	return nil
}

func (u *UnpairedElement) rotate(center geom.Vec, deg float64) {
	for _, n := range u.Nucleotides {
		n.Pos = n.Pos.RotateAbout(center, deg)
	}
}

func (h *HelixElement) rotate(center geom.Vec, deg float64) {
	for _, p := range h.Pairs {
		p.Five.Pos = p.Five.Pos.RotateAbout(center, deg)
		p.Three.Pos = p.Three.Pos.RotateAbout(center, deg)
	}
	h.Anchor = h.Anchor.RotateAbout(center, deg)
	h.NextAnchor = h.NextAnchor.RotateAbout(center, deg)
	h.Axis = h.Axis.Rotate(deg)
	if h.Child != nil {
		h.Child.rotate(center, deg)
	}
}

func (lp *LoopElement) rotate(center geom.Vec, deg float64) {
	lp.Center = lp.Center.RotateAbout(center, deg)
	lp.Start += deg
	lp.End += deg
	for i := range lp.Slots {
		lp.Slots[i].Start += deg
		lp.Slots[i].End += deg
		lp.Slots[i].Element.rotate(center, deg)
	}
}
