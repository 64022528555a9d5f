package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/stemloop/pkg/drawing"
)

const nucleotideCSS = `
    .nt { transition: stroke-width 0.2s ease; }
    .nt.highlight { stroke-width: 3; }
    .bond.highlight { stroke-width: 4; }`

const nucleotideJS = `
    function highlight(ids) {
      document.querySelectorAll('.nt, .bond').forEach(el => el.classList.toggle('highlight', ids.includes(el.dataset.nt)));
    }
    document.querySelectorAll('.nt').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([el.dataset.nt, el.dataset.partner]));
      el.addEventListener('mouseleave', () => highlight([]));
    });`

// RenderSVG draws d as a standalone SVG document.
func RenderSVG(d drawing.Drawing, opts ...Option) []byte {
	o := newOptions(opts...)
	f := newFrame(d, o.padding)
	p := o.palette
	r := d.NucleotideRadius

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.width, f.height, f.width, f.height)
	if d.Name != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(d.Name))
	}
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", p.Background)

	if o.loops {
		buf.WriteString(`  <g class="loops" fill="none">` + "\n")
		for _, lp := range d.Loops {
			c := f.at(lp.Center)
			fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" stroke="%s" stroke-dasharray="4 4"/>`+"\n",
				c.X, c.Y, lp.Radius, p.Loop)
		}
		buf.WriteString("  </g>\n")
	}

	if len(d.Nucleotides) > 1 {
		fmt.Fprintf(&buf, `  <polyline class="backbone" fill="none" stroke="%s" stroke-width="2" points="`, p.Backbone)
		for i, n := range d.Nucleotides {
			q := f.at(n.Pos())
			if i > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(&buf, "%.2f,%.2f", q.X, q.Y)
		}
		buf.WriteString(`"/>` + "\n")
	}

	for _, n := range d.Nucleotides {
		if !n.Paired() || n.Partner < n.Index {
			continue
		}
		a, b := f.at(n.Pos()), f.at(d.Nucleotides[n.Partner].Pos())
		fmt.Fprintf(&buf, `  <line class="bond" data-nt="%d" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2"/>`+"\n",
			n.Index, a.X, a.Y, b.X, b.Y, p.Bond)
	}

	for _, n := range d.Nucleotides {
		q := f.at(n.Pos())
		fmt.Fprintf(&buf, `  <circle class="nt" id="nt-%d" data-nt="%d" data-partner="%d" cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s"/>`+"\n",
			n.Index, n.Index, n.Partner, q.X, q.Y, r, p.Fill(n.Base), p.Stroke)
		if !o.noLetters {
			fmt.Fprintf(&buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central" fill="%s" pointer-events="none">%s</text>`+"\n",
				q.X, q.Y, fontSize(r), p.Text, escapeXML(n.Base))
		}
	}

	if o.numbers > 0 {
		for i := o.numbers - 1; i < len(d.Nucleotides); i += o.numbers {
			q := f.at(d.Nucleotides[i].Pos().Add(numberOffset(d, i, r)))
			fmt.Fprintf(&buf, `  <text class="number" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central" fill="%s">%d</text>`+"\n",
				q.X, q.Y, fontSize(r)*0.8, p.Text, i+1)
		}
	}

	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", nucleotideCSS)
	fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", nucleotideJS)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
