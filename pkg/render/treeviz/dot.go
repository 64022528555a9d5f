package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/render"
)

// Options configures motif tree rendering.
type Options struct {
	// Detailed adds the node ID and sequence span to each label.
	Detailed bool
	// SkipRuns leaves unpaired runs out of the diagram.
	SkipRuns bool
}

var kindFill = map[string]string{
	"root":          "white",
	"helix":         "\"#c8e6c9\"",
	"unpaired":      "\"#f5f5f5\"",
	"terminal_loop": "\"#ffcdd2\"",
	"bulge":         "\"#fff9c4\"",
	"internal_loop": "\"#ffe0b2\"",
	"multi_loop":    "\"#bbdefb\"",
}

// ToDOT converts a motif tree to Graphviz DOT format.
func ToDOT(root drawing.Motif, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges []string
	var walk func(m drawing.Motif)
	walk = func(m drawing.Motif) {
		fmt.Fprintf(&buf, "  n%d [%s];\n", m.ID, strings.Join(fmtAttrs(m, opts.Detailed), ", "))
		for _, c := range m.Children {
			if opts.SkipRuns && c.Kind == "unpaired" {
				continue
			}
			edges = append(edges, fmt.Sprintf("  n%d -> n%d;\n", m.ID, c.ID))
			walk(c)
		}
	}
	walk(root)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(m drawing.Motif, detailed bool) string {
	if !detailed {
		return m.Label
	}
	return fmt.Sprintf("#%d %s\n%d..%d", m.ID, m.Label, m.Start+1, m.End+1)
}

func fmtAttrs(m drawing.Motif, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(m, detailed))}
	if fill, ok := kindFill[m.Kind]; ok && m.Kind != "root" {
		attrs = append(attrs, "fillcolor="+fill)
	}
	if m.Kind == "unpaired" {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=\"#616161\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
