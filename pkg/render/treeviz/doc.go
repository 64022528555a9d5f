// Package treeviz draws the motif tree of a structure as a Graphviz diagram.
//
// Each node of the classified structure (root, helices, loops and unpaired
// runs) becomes a box; edges point from parent to child. Loop kinds get
// distinct fill colours so hairpins, bulges and junctions stand out.
//
//	dot := treeviz.ToDOT(d.Motif, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(dot)
//
// Rendering uses the WebAssembly build of Graphviz bundled by go-graphviz,
// so no system installation is needed for SVG. PDF and PNG go through
// rsvg-convert.
package treeviz
