// Package render turns laid-out structures into pictures.
//
// # Overview
//
// Rendering is split by output family:
//
//   - [sink]: structure drawings as SVG, PNG, PDF, JSON and YAML
//   - [treeviz]: the motif tree as a Graphviz diagram
//   - [style]: colour palettes shared by both
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg). The sink package draws PNG natively and only needs
// rsvg-convert for PDF; treeviz uses it for both.
//
//	svg := sink.RenderSVG(d, sink.WithLoops())
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/matzehuels/stemloop/pkg/render/sink
// [treeviz]: github.com/matzehuels/stemloop/pkg/render/treeviz
// [style]: github.com/matzehuels/stemloop/pkg/render/style
package render
