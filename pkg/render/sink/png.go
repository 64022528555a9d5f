package sink

import (
	"bytes"
	"math"
	"strconv"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/render/style"
)

var (
	regularFont     *opentype.Font
	regularFontErr  error
	regularFontOnce sync.Once
)

func fontFace(size float64) (font.Face, error) {
	regularFontOnce.Do(func() {
		regularFont, regularFontErr = opentype.Parse(goregular.TTF)
	})
	if regularFontErr != nil {
		return nil, regularFontErr
	}
	return opentype.NewFace(regularFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// RenderPNG rasterizes d. The image is the SVG canvas size times the scale
// set with [WithScale].
func RenderPNG(d drawing.Drawing, opts ...Option) ([]byte, error) {
	o := newOptions(opts...)
	f := newFrame(d, o.padding)
	p := o.palette
	r := d.NucleotideRadius

	w := int(math.Ceil(f.width * o.scale))
	h := int(math.Ceil(f.height * o.scale))
	if w <= 0 || h <= 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "empty drawing")
	}

	dc := gg.NewContext(w, h)
	dc.Scale(o.scale, o.scale)
	dc.SetColor(style.MustHex(p.Background))
	dc.Clear()

	if o.loops {
		dc.SetColor(style.MustHex(p.Loop))
		dc.SetLineWidth(1)
		dc.SetDash(4, 4)
		for _, lp := range d.Loops {
			c := f.at(lp.Center)
			dc.DrawCircle(c.X, c.Y, lp.Radius)
			dc.Stroke()
		}
		dc.SetDash()
	}

	if len(d.Nucleotides) > 1 {
		dc.SetColor(style.MustHex(p.Backbone))
		dc.SetLineWidth(2)
		for i, n := range d.Nucleotides {
			q := f.at(n.Pos())
			if i == 0 {
				dc.MoveTo(q.X, q.Y)
			} else {
				dc.LineTo(q.X, q.Y)
			}
		}
		dc.Stroke()
	}

	dc.SetColor(style.MustHex(p.Bond))
	dc.SetLineWidth(2)
	for _, n := range d.Nucleotides {
		if !n.Paired() || n.Partner < n.Index {
			continue
		}
		a, b := f.at(n.Pos()), f.at(d.Nucleotides[n.Partner].Pos())
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}

	face, err := fontFace(fontSize(r) * o.scale)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "load font")
	}
	dc.SetFontFace(face)

	dc.SetLineWidth(1)
	for _, n := range d.Nucleotides {
		q := f.at(n.Pos())
		dc.DrawCircle(q.X, q.Y, r)
		dc.SetColor(style.MustHex(p.Fill(n.Base)))
		dc.FillPreserve()
		dc.SetColor(style.MustHex(p.Stroke))
		dc.Stroke()
		if !o.noLetters {
			dc.SetColor(style.MustHex(p.Text))
			dc.DrawStringAnchored(n.Base, q.X, q.Y, 0.5, 0.35)
		}
	}

	if o.numbers > 0 {
		small, err := fontFace(fontSize(r) * 0.8 * o.scale)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "load font")
		}
		dc.SetFontFace(small)
		dc.SetColor(style.MustHex(p.Text))
		for i := o.numbers - 1; i < len(d.Nucleotides); i += o.numbers {
			q := f.at(d.Nucleotides[i].Pos().Add(numberOffset(d, i, r)))
			dc.DrawStringAnchored(strconv.Itoa(i+1), q.X, q.Y, 0.5, 0.35)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
