// Package pkg provides the core libraries for stemloop RNA secondary-structure
// drawing.
//
// # Overview
//
// stemloop turns a sequence and its dot-bracket structure into a 2D drawing
// in which helices are straight ladders and every loop sits on a circle. The
// pkg directory is organized into these areas:
//
//  1. [structure] - Pair matching and the motif tree (helices, loops, runs)
//  2. [layout] - Stem/loop geometry, helix rotation and loop flipping
//  3. [drawing] - The serializable drawing document
//  4. [render] - SVG, PNG, PDF and Graphviz renderers
//  5. [pipeline] - Orchestration (parse → layout → render) with caching
//  6. [cache] - File, Redis and MongoDB caches
//
// # Architecture
//
// The typical data flow:
//
//	Vienna file or sequence + dot-bracket
//	         ↓
//	    [io/vienna] package (read records)
//	         ↓
//	    [structure] package (pairs + motif tree)
//	         ↓
//	    [layout] package (place nucleotides)
//	         ↓
//	    [drawing] package (export document)
//	         ↓
//	    [render/sink] or [render/treeviz]
//	         ↓
//	    SVG/PNG/PDF/DOT/JSON/YAML output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/stemloop/pkg/drawing"
//	    "github.com/matzehuels/stemloop/pkg/layout"
//	    "github.com/matzehuels/stemloop/pkg/render/sink"
//	    "github.com/matzehuels/stemloop/pkg/structure"
//	)
//
//	// 1. Build the motif tree
//	t, _ := structure.Parse("hairpin", "GGGAAACCC", "(((...)))")
//
//	// 2. Compute the layout
//	l, _ := layout.New(t, layout.DefaultConfig())
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(drawing.Export(l))
//
// Most callers go through [pipeline.Runner], which adds validation, caching
// and observability hooks around the same steps.
//
// # Supporting Packages
//
// [errors] - Coded errors shared by the CLI exit codes and the HTTP API.
//
// [geom] - 2D vectors, angles and rectangles.
//
// [observability] - Hook interfaces for logging and metrics around the
// pipeline, cache and HTTP server.
//
// [buildinfo] - Version information set by ldflags or module build info.
//
// [structure]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/structure
// [layout]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/layout
// [drawing]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/drawing
// [render]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/render/sink
// [render/treeviz]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/render/treeviz
// [io/vienna]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/io/vienna
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/pipeline#Runner
// [cache]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/errors
// [geom]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/geom
// [observability]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/stemloop/pkg/buildinfo
package pkg
