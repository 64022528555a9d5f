package layout

import (
	"github.com/matzehuels/stemloop/pkg/geom"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// layoutHelix places the pairs of h starting at anchor and stepping along
// axis, then lays out whatever loop follows the innermost pair.
//
// Pair k is centered at anchor + k·PairSpacing·axis. Its 5' nucleotide sits
// half a base-pair length to the left of the axis (looking along it) and its
// 3' nucleotide to the right.
func (l *Layout) layoutHelix(h *structure.Helix, parent Element, anchor, axis geom.Vec) (*HelixElement, error) {
	axis = axis.Unit()
	el := &HelixElement{
		node:   h,
		parent: parent,
		Anchor: anchor,
		Axis:   axis,
		Pairs:  make([]PairPos, len(h.Pairs)),
	}
	l.Helices = append(l.Helices, el)
	l.byID[h.ID()] = el

	el.NextAnchor, _ = l.stemLayout(el, anchor, axis)

	if h.Child == nil {
		return el, nil
	}
	child, err := l.layoutLoop(h.Child, el)
	if err != nil {
		return nil, err
	}
	el.Child = child
	return el, nil
}

// stemLayout positions the nucleotides of every pair of el and returns the
// anchor and direction for the helix's child.
func (l *Layout) stemLayout(el *HelixElement, anchor, axis geom.Vec) (geom.Vec, geom.Vec) {
	half := axis.Rotate(-90).Scale(l.Config.BasePairLength / 2)
	center := anchor
	for k, bp := range el.node.Pairs {
		center = anchor.Add(axis.Scale(float64(k) * l.Config.PairSpacing))
		five, three := &l.Nucleotides[bp.Five], &l.Nucleotides[bp.Three]
		five.Pos = center.Add(half)
		three.Pos = center.Sub(half)
		el.Pairs[k] = PairPos{Five: five, Three: three}
	}
	return center, axis
}
