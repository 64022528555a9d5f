package drawing

import (
	"github.com/matzehuels/stemloop/pkg/geom"
)

// =============================================================================
// Drawing - Placed Structure Serialization
// =============================================================================

// Drawing is the canonical serialization format for a laid-out structure.
type Drawing struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty" bson:"name,omitempty"`
	Sequence  string `json:"sequence" yaml:"sequence" bson:"sequence"`
	Structure string `json:"structure" yaml:"structure" bson:"structure"`

	// Geometry used to produce the coordinates; renderers size circles
	// and text from it.
	NucleotideRadius float64   `json:"nucleotide_radius" yaml:"nucleotide_radius" bson:"nucleotide_radius"`
	Bounds           geom.Rect `json:"bounds" yaml:"bounds" bson:"bounds"`

	Nucleotides []Nucleotide `json:"nucleotides" yaml:"nucleotides" bson:"nucleotides"`
	Helices     []Helix      `json:"helices,omitempty" yaml:"helices,omitempty" bson:"helices,omitempty"`
	Loops       []Loop       `json:"loops,omitempty" yaml:"loops,omitempty" bson:"loops,omitempty"`
	Runs        []Run        `json:"runs,omitempty" yaml:"runs,omitempty" bson:"runs,omitempty"`

	Motif    Motif    `json:"motif" yaml:"motif" bson:"motif"`
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty" bson:"warnings,omitempty"`
}

// Width returns the width of the bounding box.
func (d *Drawing) Width() float64 { return d.Bounds.Width() }

// Height returns the height of the bounding box.
func (d *Drawing) Height() float64 { return d.Bounds.Height() }

// =============================================================================
// Elements
// =============================================================================

// Nucleotide is one placed position.
type Nucleotide struct {
	Index   int     `json:"index" yaml:"index" bson:"index"`
	Base    string  `json:"base" yaml:"base" bson:"base"`
	X       float64 `json:"x" yaml:"x" bson:"x"`
	Y       float64 `json:"y" yaml:"y" bson:"y"`
	Partner int     `json:"partner" yaml:"partner" bson:"partner"` // -1 when unpaired
}

// Pos returns the nucleotide center.
func (n Nucleotide) Pos() geom.Vec { return geom.V(n.X, n.Y) }

// Paired reports whether the nucleotide has a partner.
func (n Nucleotide) Paired() bool { return n.Partner >= 0 }

// Helix is a placed helix. Pairs hold sequence indices, outermost first.
type Helix struct {
	ID         int      `json:"id" yaml:"id" bson:"id"`
	Pairs      [][2]int `json:"pairs" yaml:"pairs" bson:"pairs"`
	Anchor     geom.Vec `json:"anchor" yaml:"anchor" bson:"anchor"`
	Axis       geom.Vec `json:"axis" yaml:"axis" bson:"axis"`
	NextAnchor geom.Vec `json:"next_anchor" yaml:"next_anchor" bson:"next_anchor"`
	Loop       int      `json:"loop" yaml:"loop" bson:"loop"` // Enclosing loop ID, -1 on the exterior
}

// Loop is a placed loop circle.
type Loop struct {
	ID        int      `json:"id" yaml:"id" bson:"id"`
	Kind      string   `json:"kind" yaml:"kind" bson:"kind"`
	Closing   int      `json:"closing" yaml:"closing" bson:"closing"` // ID of the closing helix
	Center    geom.Vec `json:"center" yaml:"center" bson:"center"`
	Radius    float64  `json:"radius" yaml:"radius" bson:"radius"`
	Phi       float64  `json:"phi" yaml:"phi" bson:"phi"`
	Increment float64  `json:"increment" yaml:"increment" bson:"increment"`
	Direction int      `json:"direction" yaml:"direction" bson:"direction"`
	Start     float64  `json:"start" yaml:"start" bson:"start"`
	End       float64  `json:"end" yaml:"end" bson:"end"`
	Slots     []Slot   `json:"slots" yaml:"slots" bson:"slots"`
}

// Slot is the arc of a loop assigned to one member.
type Slot struct {
	Member int     `json:"member" yaml:"member" bson:"member"`
	Kind   string  `json:"kind" yaml:"kind" bson:"kind"`
	Start  float64 `json:"start" yaml:"start" bson:"start"`
	End    float64 `json:"end" yaml:"end" bson:"end"`
}

// Run is a placed unpaired run.
type Run struct {
	ID      int   `json:"id" yaml:"id" bson:"id"`
	Indices []int `json:"indices" yaml:"indices" bson:"indices"`
	Loop    int   `json:"loop" yaml:"loop" bson:"loop"` // -1 on the exterior
}

// =============================================================================
// Motif - Display Tree
// =============================================================================

// Motif is one node of the classified structure, for display.
type Motif struct {
	ID       int     `json:"id" yaml:"id" bson:"id"`
	Kind     string  `json:"kind" yaml:"kind" bson:"kind"`
	Label    string  `json:"label" yaml:"label" bson:"label"`
	Start    int     `json:"start" yaml:"start" bson:"start"`
	End      int     `json:"end" yaml:"end" bson:"end"`
	Children []Motif `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// Find returns the motif with the given ID in m's subtree.
func (m *Motif) Find(id int) (*Motif, bool) {
	if m.ID == id {
		return m, true
	}
	for i := range m.Children {
		if found, ok := m.Children[i].Find(id); ok {
			return found, true
		}
	}
	return nil, false
}

// Count returns the number of motifs in m's subtree, m included.
func (m *Motif) Count() int {
	n := 1
	for i := range m.Children {
		n += m.Children[i].Count()
	}
	return n
}
