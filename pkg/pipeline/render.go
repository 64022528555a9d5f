package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/observability"
	"github.com/matzehuels/stemloop/pkg/render/sink"
	"github.com/matzehuels/stemloop/pkg/render/treeviz"
)

// Render generates output artifacts in the requested formats.
// Options must have been through ValidateForRender.
func Render(ctx context.Context, d drawing.Drawing, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	var (
		artifacts map[string][]byte
		err       error
	)
	if opts.IsTree() {
		artifacts, err = renderTree(d, opts)
	} else {
		artifacts, err = renderStructure(d, opts)
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// renderStructure draws the molecule itself.
func renderStructure(d drawing.Drawing, opts Options) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(d, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(d, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(d, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(d)
		case FormatYAML:
			data, err = sink.RenderYAML(d)
		case FormatDOT:
			data = []byte(treeviz.ToDOT(d.Motif, treeviz.Options{Detailed: opts.Detailed}))
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported structure format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderTree draws the motif tree through Graphviz.
func renderTree(d drawing.Drawing, opts Options) (map[string][]byte, error) {
	dot := treeviz.ToDOT(d.Motif, treeviz.Options{Detailed: opts.Detailed})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = treeviz.RenderSVG(dot)
		case FormatPNG:
			data, err = treeviz.RenderPNG(dot, opts.Scale)
		case FormatPDF:
			data, err = treeviz.RenderPDF(dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = sink.RenderJSON(d)
		case FormatYAML:
			data, err = sink.RenderYAML(d)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported tree format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSinkOptions maps pipeline options to sink options.
func buildSinkOptions(opts Options) []sink.Option {
	sinkOpts := []sink.Option{
		sink.WithPalette(opts.palette()),
		sink.WithScale(opts.Scale),
	}
	if opts.Loops {
		sinkOpts = append(sinkOpts, sink.WithLoops())
	}
	if opts.Numbers > 0 {
		sinkOpts = append(sinkOpts, sink.WithNumbers(opts.Numbers))
	}
	return sinkOpts
}

// RenderFromDrawingData renders output from a serialized drawing (JSON or
// YAML). This is useful when the layout was computed elsewhere.
func RenderFromDrawingData(ctx context.Context, data []byte, opts Options) (map[string][]byte, error) {
	d, err := drawing.Unmarshal(data)
	if err != nil {
		var yerr error
		if d, yerr = drawing.UnmarshalYAML(data); yerr != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse drawing")
		}
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	return Render(ctx, d, opts)
}
