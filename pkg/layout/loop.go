package layout

import (
	"math"

	"github.com/matzehuels/stemloop/pkg/geom"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// Radii returns the tight and the evenly spaced radius of a loop with the
// given members. Both are circumference budgets divided by 2π; the closing
// pair is budgeted like one more helix.
func Radii(members []structure.Segment, cfg Config) (minR, defaultR float64) {
	minC := cfg.BasePairLength + 2*cfg.NucleotideRadius
	defC := cfg.BasePairLength + 2*cfg.NucleotideRadius
	for _, m := range members {
		switch m := m.(type) {
		case *structure.Unpaired:
			gaps := float64(m.Len() + 1)
			minC += 2 * gaps * cfg.NucleotideRadius
			defC += gaps * cfg.NucleotideSpacing
		case *structure.Helix:
			minC += cfg.BasePairLength
			defC += cfg.BasePairLength + 2*cfg.NucleotideRadius
		}
	}
	return minC / (2 * math.Pi), defC / (2 * math.Pi)
}

// SolveCircle finds the center of the circle of radius r through p1 and p2
// that lies to the left of the chord p1→p2 (in SVG orientation), together
// with the angle θ between the chord and the radius at p1, in degrees.
func SolveCircle(p1, p2 geom.Vec, r float64) (geom.Vec, float64, error) {
	v := p2.Sub(p1)
	chord := v.Len()
	if chord < geom.Epsilon {
		return geom.Vec{}, 0, &GeometryError{NodeID: -1, Chord: chord, Radius: r, Reason: "degenerate closing chord"}
	}
	if chord > 2*r {
		return geom.Vec{}, 0, &GeometryError{NodeID: -1, Chord: chord, Radius: r, Reason: "chord longer than loop diameter"}
	}
	theta := geom.Deg(math.Acos(math.Min(1, chord/(2*r))))
	return p1.Add(v.Rotate(-theta).WithLength(r)), theta, nil
}

// Increment is the arc between neighbouring nucleotide slots of a loop with
// nts unpaired nucleotides and bps pairs (closing pair included), where each
// pair consumes phi degrees.
func Increment(phi float64, nts, bps int) float64 {
	return (360 - float64(bps)*phi) / float64(nts+bps)
}

// layoutLoop inscribes loop in the circle through the innermost pair of
// parent and places its members clockwise from the 5' side of that pair.
func (l *Layout) layoutLoop(loop structure.Loop, parent *HelixElement) (*LoopElement, error) {
	closing := parent.Innermost()
	p1, p2 := closing.Five.Pos, closing.Three.Pos
	members := loop.Members()

	minR, defR := Radii(members, l.Config)
	r := defR
	if l.Config.RadiusMode == RadiusMin {
		r = minR
	}

	chord := p1.Dist(p2)
	if chord > 2*r && chord >= geom.Epsilon {
		if !l.Config.ClampRadius {
			return nil, &GeometryError{NodeID: loop.ID(), Kind: loop.Kind(), Chord: chord, Radius: r,
				Reason: "chord longer than loop diameter"}
		}
		l.warn(loop, "radius %.3f raised to %.3f to span the closing pair", r, chord/2)
		r = chord / 2
	}

	center, theta, err := SolveCircle(p1, p2, r)
	if err != nil {
		ge := err.(*GeometryError)
		ge.NodeID, ge.Kind = loop.ID(), loop.Kind()
		return nil, ge
	}

	phi := 180 - 2*theta
	nts := structure.UnpairedCount(members)
	bps := 1 + len(structure.Helices(members))
	inc := Increment(phi, nts, bps)
	if inc <= 0 {
		return nil, &GeometryError{NodeID: loop.ID(), Kind: loop.Kind(), Chord: chord, Radius: r,
			Reason: "no room on the circle for the branching helices"}
	}

	start := p1.Sub(center).Angle()
	el := &LoopElement{
		node:      loop,
		parent:    parent,
		Center:    center,
		Radius:    r,
		Phi:       phi,
		Increment: inc,
		Direction: 1,
		Start:     start,
		End:       start + 360 - phi,
		Slots:     make([]Slot, 0, len(members)),
		minStep:   minStep(r, l.Config.NucleotideRadius, inc),
	}
	l.Loops = append(l.Loops, el)
	l.byID[loop.ID()] = el

	cursor := start
	afterPair := true // the closing pair precedes the first member
	for _, m := range members {
		switch m := m.(type) {
		case *structure.Unpaired:
			end := cursor + inc*float64(m.Len()+1)
			u := l.newUnpaired(m, el)
			u.spread(center, r, cursor, end, 1)
			el.Slots = append(el.Slots, Slot{Element: u, Start: cursor, End: end})
			cursor = end
			afterPair = false

		case *structure.Helix:
			if afterPair {
				cursor += inc
			}
			end := cursor + phi
			p5 := geom.Polar(center, r, cursor)
			p3 := geom.Polar(center, r, end)
			h, err := l.layoutHelix(m, el, p5.Mid(p3), p3.Sub(p5).Rotate(-90))
			if err != nil {
				return nil, err
			}
			el.Slots = append(el.Slots, Slot{Element: h, Start: cursor, End: end})
			cursor = end
			afterPair = true
		}
	}
	return el, nil
}

// minStep is the smallest arc between neighbouring positions on a loop of
// radius r at which nucleotide circles do not overlap, capped at the laid
// out increment.
func minStep(r, ntRadius, inc float64) float64 {
	touch := geom.Deg(2 * math.Asin(math.Min(1, ntRadius/r)))
	return math.Min(inc, touch)
}

// spread places the run's nucleotides evenly inside the arc [start, end],
// leaving one gap at each end. dir -1 places the 5' nucleotide at the end.
func (u *UnpairedElement) spread(center geom.Vec, r, start, end float64, dir int) {
	step := (end - start) / float64(len(u.Nucleotides)+1)
	for k, n := range u.Nucleotides {
		a := start + float64(k+1)*step
		if dir < 0 {
			a = end - float64(k+1)*step
		}
		n.Pos = geom.Polar(center, r, a)
	}
}
