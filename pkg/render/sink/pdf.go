package sink

import (
	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/render"
)

// RenderPDF renders d as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(d drawing.Drawing, opts ...Option) ([]byte, error) {
	return render.ToPDF(RenderSVG(d, opts...))
}
