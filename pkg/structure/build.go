package structure

import (
	errs "github.com/matzehuels/stemloop/pkg/errors"
)

// Tree is a classified secondary structure.
type Tree struct {
	Name     string
	Sequence string
	Pairs    Pairs
	Root     *Root

	nodes []Node // preorder, nodes[i].ID() == i
}

// Parse matches the brackets of dotBracket and builds the tree.
func Parse(name, sequence, dotBracket string) (*Tree, error) {
	if len(sequence) != len(dotBracket) {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"sequence length %d does not match structure length %d", len(sequence), len(dotBracket))
	}
	pairs, err := MatchPairs(dotBracket)
	if err != nil {
		return nil, err
	}
	return Build(name, sequence, pairs)
}

// Build classifies pairs into a motif tree. The pairing array is validated
// first; a malformed array yields [*MalformedStructureError] and no tree.
func Build(name, sequence string, pairs Pairs) (*Tree, error) {
	if len(sequence) != len(pairs) {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"sequence length %d does not match pairing length %d", len(sequence), len(pairs))
	}
	if len(pairs) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty structure")
	}
	if err := pairs.Validate(); err != nil {
		return nil, err
	}

	b := builder{seq: sequence, pairs: pairs}
	root := &Root{n: len(pairs)}
	root.Segments = b.dispatch(0, len(pairs)-1)

	t := &Tree{Name: name, Sequence: sequence, Pairs: pairs, Root: root}
	t.index()
	return t, nil
}

type builder struct {
	seq   string
	pairs Pairs
}

// dispatch splits the flat region [left, right] into unpaired runs and the
// helices that start in it.
func (b *builder) dispatch(left, right int) []Segment {
	var segs []Segment
	for i := left; i <= right; {
		if j := b.pairs[i]; j != NoPartner {
			segs = append(segs, b.classifyRegion(i, j))
			i = j + 1
			continue
		}
		end := i
		for end+1 <= right && b.pairs[end+1] == NoPartner {
			end++
		}
		segs = append(segs, b.unpaired(i, end))
		i = end + 1
	}
	return segs
}

// classifyRegion consumes the maximal helix closed by (left, right) and
// classifies its interior.
func (b *builder) classifyRegion(left, right int) *Helix {
	h := &Helix{}
	for left < right && b.pairs[left] == right {
		h.Pairs = append(h.Pairs, BasePair{
			Five:      left,
			Three:     right,
			FiveBase:  b.seq[left],
			ThreeBase: b.seq[right],
		})
		left++
		right--
	}
	if left <= right {
		h.Child = b.classifyInterior(left, right)
	}
	return h
}

// classifyInterior decides the loop kind of the non-empty interior
// [left, right] of a helix. Because the helix is maximal, left and right are
// never paired to each other.
func (b *builder) classifyInterior(left, right int) Loop {
	first := b.pairs.firstPaired(left, right)
	if first < 0 {
		return &TerminalLoop{Run: b.unpaired(left, right)}
	}

	// Left bulge: the 5' strand is a single run that ends right where the
	// only inner helix starts, and that helix closes at the boundary.
	if b.pairs[left] == NoPartner && b.pairs[right] != NoPartner && b.pairs[right] == first {
		return &Bulge{
			Side:  SideLeft,
			Run:   b.unpaired(left, first-1),
			Helix: b.classifyRegion(first, right),
		}
	}

	// Right bulge: mirror image on the 3' strand.
	if b.pairs[right] == NoPartner && b.pairs[left] != NoPartner {
		last := b.pairs.lastPaired(left, right)
		if b.pairs[left] == last {
			return &Bulge{
				Side:  SideRight,
				Helix: b.classifyRegion(left, last),
				Run:   b.unpaired(last+1, right),
			}
		}
	}

	segs := b.dispatch(left, right)
	if helices := Helices(segs); len(helices) == 1 && len(segs) == 3 {
		return &InternalLoop{
			Left:  segs[0].(*Unpaired),
			Helix: helices[0],
			Right: segs[2].(*Unpaired),
		}
	}
	return &MultiLoop{Segments: segs}
}

func (b *builder) unpaired(left, right int) *Unpaired {
	idx := make([]int, right-left+1)
	for i := range idx {
		idx[i] = left + i
	}
	return &Unpaired{Seq: b.seq[left : right+1], Idx: idx}
}

// index numbers nodes in preorder and links parents.
func (t *Tree) index() {
	var visit func(n, parent Node)
	visit = func(n, parent Node) {
		nb := n.base()
		nb.id = len(t.nodes)
		nb.parent = parent
		t.nodes = append(t.nodes, n)
		for _, c := range n.Children() {
			visit(c, n)
		}
	}
	visit(t.Root, nil)
}

// Len returns the sequence length.
func (t *Tree) Len() int { return len(t.Pairs) }

// Nodes returns every node in preorder.
func (t *Tree) Nodes() []Node { return t.nodes }

// Node returns the node with the given preorder ID.
func (t *Tree) Node(id int) (Node, bool) {
	if id < 0 || id >= len(t.nodes) {
		return nil, false
	}
	return t.nodes[id], true
}

// Helices returns every helix in preorder.
func (t *Tree) Helices() []*Helix {
	var out []*Helix
	for _, n := range t.nodes {
		if h, ok := n.(*Helix); ok {
			out = append(out, h)
		}
	}
	return out
}

// Loops returns every loop in preorder.
func (t *Tree) Loops() []Loop {
	var out []Loop
	for _, n := range t.nodes {
		if l, ok := n.(Loop); ok {
			out = append(out, l)
		}
	}
	return out
}

// Runs returns every unpaired run in preorder.
func (t *Tree) Runs() []*Unpaired {
	var out []*Unpaired
	for _, n := range t.nodes {
		if u, ok := n.(*Unpaired); ok {
			out = append(out, u)
		}
	}
	return out
}

// CountKinds tallies nodes per kind.
func (t *Tree) CountKinds() map[Kind]int {
	counts := make(map[Kind]int)
	for _, n := range t.nodes {
		counts[n.Kind()]++
	}
	return counts
}

// Flatten reassembles the sequence from the unpaired runs and helix pairs of
// the tree. For a correctly built tree it equals t.Sequence.
func (t *Tree) Flatten() string {
	out := make([]byte, t.Len())
	for _, n := range t.nodes {
		switch n := n.(type) {
		case *Unpaired:
			copy(out[n.Idx[0]:], n.Seq)
		case *Helix:
			for _, bp := range n.Pairs {
				out[bp.Five] = bp.FiveBase
				out[bp.Three] = bp.ThreeBase
			}
		}
	}
	return string(out)
}

// DotBracket reassembles the dot-bracket string from the tree.
func (t *Tree) DotBracket() string {
	out := make([]byte, t.Len())
	for _, n := range t.nodes {
		switch n := n.(type) {
		case *Unpaired:
			for _, i := range n.Idx {
				out[i] = '.'
			}
		case *Helix:
			for _, bp := range n.Pairs {
				out[bp.Five] = '('
				out[bp.Three] = ')'
			}
		}
	}
	return string(out)
}
