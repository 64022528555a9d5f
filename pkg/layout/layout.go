package layout

import (
	"fmt"

	"github.com/matzehuels/stemloop/pkg/geom"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// Layout is a fully placed structure.
type Layout struct {
	Tree   *structure.Tree
	Config Config

	// Nucleotides is indexed by sequence position. Elements point into it,
	// so it is never resized.
	Nucleotides []Nucleotide
	// Forest holds the elements hanging off the root, 5' to 3'.
	Forest []Element

	Helices  []*HelixElement
	Runs     []*UnpairedElement
	Loops    []*LoopElement
	Warnings []Warning

	byID map[int]Element
}

// New lays out tree. cfg is validated first; the tree is not modified.
func New(tree *structure.Tree, cfg Config) (*Layout, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		Tree:        tree,
		Config:      cfg,
		Nucleotides: make([]Nucleotide, tree.Len()),
		byID:        make(map[int]Element),
	}
	for i := range l.Nucleotides {
		l.Nucleotides[i] = Nucleotide{
			Index:   i,
			Base:    tree.Sequence[i],
			Partner: tree.Pairs[i],
		}
	}

	step := geom.V(cfg.NucleotideSpacing, 0)
	cursor := cfg.Origin.Sub(step)
	for _, seg := range tree.Root.Segments {
		switch seg := seg.(type) {
		case *structure.Unpaired:
			u := l.newUnpaired(seg, nil)
			for _, n := range u.Nucleotides {
				cursor = cursor.Add(step)
				n.Pos = cursor
			}
			l.Forest = append(l.Forest, u)

		case *structure.Helix:
			five := cursor.Add(step)
			three := five.Add(geom.V(cfg.BasePairLength, 0))
			h, err := l.layoutHelix(seg, nil, five.Mid(three), geom.V(0, -1))
			if err != nil {
				return nil, err
			}
			l.Forest = append(l.Forest, h)
			cursor = three
		}
	}
	return l, nil
}

func (l *Layout) newUnpaired(run *structure.Unpaired, parent Element) *UnpairedElement {
	u := &UnpairedElement{node: run, parent: parent, Nucleotides: make([]*Nucleotide, run.Len())}
	for k, idx := range run.Idx {
		u.Nucleotides[k] = &l.Nucleotides[idx]
	}
	l.Runs = append(l.Runs, u)
	l.byID[run.ID()] = u
	return u
}

func (l *Layout) warn(n structure.Node, format string, args ...any) {
	l.Warnings = append(l.Warnings, Warning{NodeID: n.ID(), Message: fmt.Sprintf(format, args...)})
}

// Element returns the element placing the node with the given ID.
func (l *Layout) Element(id int) (Element, bool) {
	e, ok := l.byID[id]
	return e, ok
}

// Helix returns the helix element for a node ID.
func (l *Layout) Helix(id int) (*HelixElement, bool) {
	h, ok := l.byID[id].(*HelixElement)
	return h, ok
}

// Loop returns the loop element for a node ID.
func (l *Layout) Loop(id int) (*LoopElement, bool) {
	lp, ok := l.byID[id].(*LoopElement)
	return lp, ok
}

// LoopsOf returns the loops of the given kind in preorder.
func (l *Layout) LoopsOf(kind structure.Kind) []*LoopElement {
	var out []*LoopElement
	for _, lp := range l.Loops {
		if lp.node.Kind() == kind {
			out = append(out, lp)
		}
	}
	return out
}

// Bounds returns the box enclosing every nucleotide circle.
func (l *Layout) Bounds() geom.Rect {
	r := geom.EmptyRect()
	for _, n := range l.Nucleotides {
		r = r.Extend(n.Pos)
	}
	if r.IsEmpty() {
		return geom.Rect{}
	}
	return r.Pad(l.Config.NucleotideRadius)
}
