// Package layout computes 2D coordinates for every nucleotide of a
// classified RNA secondary structure.
//
// # Overview
//
// [New] walks a [structure.Tree] once. Exterior unpaired runs are placed on
// a rightward ray from [Config.Origin]; each exterior helix is stood upright
// on that ray. A helix is laid out linearly along its axis, pair after pair.
// The loop that follows it is inscribed in a circle through the two
// nucleotides of the helix's innermost pair:
//
//	θ = acos(|P2-P1| / 2r)         half-angle at P1 between chord and radius
//	C = P1 + rot(P2-P1, -θ)·r       circle center
//	φ = 180 - 2θ                    arc consumed by any pair on the circle
//	inc = (360 - bps·φ)/(nts + bps) arc between consecutive nucleotides
//
// Branching helices take one φ-wide slot each and recurse.
//
// # Placed Elements
//
// The result mirrors the structure tree: one [Element] per motif. Loop
// elements keep their center, radius and the angular [Slot] of every member,
// which [Layout.Rearrange] and [Layout.Flip] use to edit the layout in place
// without recomputing it from scratch.
//
// All angles are in degrees in SVG orientation (see package geom).
// Slot angles are unwrapped: a loop's free arc runs from [LoopElement.Start]
// to [LoopElement.End] = Start + 360 - φ without wrapping at 360.
//
// # Errors
//
// A loop whose closing chord cannot be inscribed yields [*GeometryError].
// With [Config.ClampRadius] set (the default) a too-small radius is raised
// to half the chord instead, and a [Warning] is recorded on the layout.
package layout
