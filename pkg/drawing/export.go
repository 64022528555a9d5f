package drawing

import (
	"fmt"

	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// Export converts a layout to its serialization format.
func Export(l *layout.Layout) Drawing {
	t := l.Tree
	d := Drawing{
		Name:             t.Name,
		Sequence:         t.Sequence,
		Structure:        t.Pairs.DotBracket(),
		NucleotideRadius: l.Config.NucleotideRadius,
		Bounds:           l.Bounds(),
		Nucleotides:      make([]Nucleotide, len(l.Nucleotides)),
		Motif:            ExportMotifs(t),
	}

	for i, n := range l.Nucleotides {
		d.Nucleotides[i] = Nucleotide{
			Index:   n.Index,
			Base:    string(n.Base),
			X:       n.Pos.X,
			Y:       n.Pos.Y,
			Partner: n.Partner,
		}
	}

	for _, h := range l.Helices {
		out := Helix{
			ID:         h.Node().ID(),
			Pairs:      make([][2]int, len(h.Pairs)),
			Anchor:     h.Anchor,
			Axis:       h.Axis,
			NextAnchor: h.NextAnchor,
			Loop:       parentLoopID(h),
		}
		for k, p := range h.Pairs {
			out.Pairs[k] = [2]int{p.Five.Index, p.Three.Index}
		}
		d.Helices = append(d.Helices, out)
	}

	for _, lp := range l.Loops {
		out := Loop{
			ID:        lp.Node().ID(),
			Kind:      lp.Node().Kind().String(),
			Closing:   lp.Parent().Node().ID(),
			Center:    lp.Center,
			Radius:    lp.Radius,
			Phi:       lp.Phi,
			Increment: lp.Increment,
			Direction: lp.Direction,
			Start:     lp.Start,
			End:       lp.End,
			Slots:     make([]Slot, len(lp.Slots)),
		}
		for k, s := range lp.Slots {
			out.Slots[k] = Slot{
				Member: s.Element.Node().ID(),
				Kind:   s.Element.Node().Kind().String(),
				Start:  s.Start,
				End:    s.End,
			}
		}
		d.Loops = append(d.Loops, out)
	}

	for _, u := range l.Runs {
		out := Run{ID: u.Node().ID(), Indices: make([]int, len(u.Nucleotides)), Loop: parentLoopID(u)}
		for k, n := range u.Nucleotides {
			out.Indices[k] = n.Index
		}
		d.Runs = append(d.Runs, out)
	}

	for _, w := range l.Warnings {
		d.Warnings = append(d.Warnings, w.String())
	}
	return d
}

func parentLoopID(e layout.Element) int {
	if lp, ok := e.Parent().(*layout.LoopElement); ok {
		return lp.Node().ID()
	}
	return -1
}

// ExportMotifs converts the structure tree to its display form.
func ExportMotifs(t *structure.Tree) Motif {
	return motifOf(t.Root)
}

func motifOf(n structure.Node) Motif {
	lo, hi := n.Span()
	lv := labeler{}
	n.Accept(&lv)
	m := Motif{ID: n.ID(), Kind: n.Kind().String(), Label: lv.label, Start: lo, End: hi}
	for _, c := range n.Children() {
		m.Children = append(m.Children, motifOf(c))
	}
	return m
}

// labeler produces a one-line description of a node.
type labeler struct{ label string }

func (v *labeler) VisitRoot(r *structure.Root) {
	v.label = fmt.Sprintf("%d segments", len(r.Segments))
}

func (v *labeler) VisitUnpaired(u *structure.Unpaired) {
	v.label = fmt.Sprintf("%s (%d nt)", u.Seq, u.Len())
}

func (v *labeler) VisitHelix(h *structure.Helix) {
	o, i := h.Outermost(), h.Innermost()
	v.label = fmt.Sprintf("%d bp %d-%d..%d-%d", h.Len(), o.Five, o.Three, i.Five, i.Three)
}

func (v *labeler) VisitTerminalLoop(l *structure.TerminalLoop) {
	v.label = fmt.Sprintf("hairpin %s", l.Run.Seq)
}

func (v *labeler) VisitBulge(b *structure.Bulge) {
	v.label = fmt.Sprintf("%s bulge %s", b.Side, b.Run.Seq)
}

func (v *labeler) VisitInternalLoop(l *structure.InternalLoop) {
	v.label = fmt.Sprintf("%dx%d internal loop", l.Left.Len(), l.Right.Len())
}

func (v *labeler) VisitMultiLoop(m *structure.MultiLoop) {
	v.label = fmt.Sprintf("%d-way junction", len(structure.Helices(m.Segments))+1)
}
