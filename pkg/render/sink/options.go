package sink

import (
	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/geom"
	"github.com/matzehuels/stemloop/pkg/render/style"
)

// Option configures a sink.
type Option func(*options)

type options struct {
	palette   style.Palette
	loops     bool
	numbers   int
	padding   float64
	scale     float64
	noLetters bool
}

// WithPalette sets the colours.
func WithPalette(p style.Palette) Option { return func(o *options) { o.palette = p } }

// WithLoops draws the loop circles behind the nucleotides.
func WithLoops() Option { return func(o *options) { o.loops = true } }

// WithNumbers labels every n-th position (1-based); 0 disables numbering.
func WithNumbers(n int) Option { return func(o *options) { o.numbers = n } }

// WithPadding sets the margin around the drawing.
func WithPadding(p float64) Option { return func(o *options) { o.padding = p } }

// WithScale sets the PNG scale factor (default 2.0). Vector sinks ignore it.
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

// WithoutLetters leaves the nucleotide circles unlabelled.
func WithoutLetters() Option { return func(o *options) { o.noLetters = true } }

func newOptions(opts ...Option) options {
	o := options{palette: style.Default(), padding: 20, scale: 2}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scale <= 0 {
		o.scale = 2
	}
	return o
}

// frame maps drawing coordinates into the output canvas.
type frame struct {
	origin        geom.Vec
	width, height float64
}

func newFrame(d drawing.Drawing, pad float64) frame {
	return frame{
		origin: geom.V(d.Bounds.Min.X-pad, d.Bounds.Min.Y-pad),
		width:  d.Width() + 2*pad,
		height: d.Height() + 2*pad,
	}
}

func (f frame) at(p geom.Vec) geom.Vec { return p.Sub(f.origin) }

// numberOffset places a position label outside the structure, pushing away
// from the loop centre or helix axis the nucleotide belongs to.
func numberOffset(d drawing.Drawing, idx int, r float64) geom.Vec {
	n := d.Nucleotides[idx]
	var away geom.Vec
	if n.Paired() {
		away = n.Pos().Sub(d.Nucleotides[n.Partner].Pos())
	} else {
		away = geom.V(0, 1)
		for _, run := range d.Runs {
			if run.Loop < 0 {
				continue
			}
			for _, k := range run.Indices {
				if k == idx {
					if lp := findLoop(d, run.Loop); lp != nil {
						away = n.Pos().Sub(lp.Center)
					}
				}
			}
		}
	}
	if away.Len() < geom.Epsilon {
		away = geom.V(0, 1)
	}
	return away.WithLength(2.2 * r)
}

func findLoop(d drawing.Drawing, id int) *drawing.Loop {
	for i := range d.Loops {
		if d.Loops[i].ID == id {
			return &d.Loops[i]
		}
	}
	return nil
}

func fontSize(r float64) float64 { return r * 1.1 }
