// Package sink writes a [drawing.Drawing] to output formats.
//
// SVG is written directly. PNG is rasterized natively with gg and the Go
// fonts, so it works without external tools. PDF goes through rsvg-convert
// via [render.ToPDF]. JSON and YAML emit the drawing document itself.
//
// All raster and vector sinks share the same [Option] set:
//
//	svg := sink.RenderSVG(d, sink.WithLoops(), sink.WithNumbers(10))
//	png, err := sink.RenderPNG(d, sink.WithScale(3))
//
// [drawing.Drawing]: github.com/matzehuels/stemloop/pkg/drawing.Drawing
// [render.ToPDF]: github.com/matzehuels/stemloop/pkg/render.ToPDF
package sink
