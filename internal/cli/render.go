package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stemloop/pkg/pipeline"
	"github.com/matzehuels/stemloop/pkg/render/style"
)

// styleFlags holds the render options shared by render and visualize.
type styleFlags struct {
	formats  string
	vizTypes string
	palette  string
	loops    bool
	numbers  int
	scale    float64
	detailed bool
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.vizTypes, "type", "t", "", "visualization type(s): structure (default), tree (comma-separated)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, yaml, dot (comma-separated)")
	cmd.Flags().StringVar(&f.palette, "palette", "", "palette TOML file merged over the configured palette")
	cmd.Flags().BoolVar(&f.loops, "loops", false, "outline loop circles")
	cmd.Flags().IntVar(&f.numbers, "numbers", 10, "label every nth nucleotide (0 disables)")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG pixels per drawing unit")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show node IDs and spans in the motif tree")
}

// apply copies the flags into opts and returns the requested viz types.
func (f *styleFlags) apply(opts *pipeline.Options) ([]string, error) {
	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}
	vizTypes := parseVizTypes(f.vizTypes)
	for _, v := range vizTypes {
		if err := pipeline.ValidateVizType(v); err != nil {
			return nil, err
		}
	}
	if f.palette != "" {
		p, err := style.LoadFile(f.palette)
		if err != nil {
			return nil, err
		}
		if opts.Palette != nil {
			p = opts.Palette.Merge(p)
		}
		opts.Palette = &p
	}
	opts.Loops = f.loops
	opts.Numbers = f.numbers
	opts.Scale = f.scale
	opts.Detailed = f.detailed
	return vizTypes, nil
}

// renderCommand creates the render command, which runs the whole pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in      inputFlags
		edits   editFlags
		geo     geometryFlags
		sf      styleFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render [file.dbn | -]",
		Short: "Render a structure to SVG, PNG, PDF or a motif tree",
		Long: `Render a structure to SVG, PNG, PDF or a motif tree.

Helices can be turned about their loop with --move id:angle (degrees, y
down) and loops mirrored across their closing helix with --flip id (0
mirrors the whole drawing); node IDs are shown by 'stemloop parse'.
Moves are applied first, in order, then flips.

Examples:
  stemloop render trna.dbn
  stemloop render trna.dbn -f svg,png --loops --numbers 5
  stemloop render trna.dbn --move 4:135 --flip 0
  stemloop render trna.dbn -t structure,tree -o out/trna`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			if err := in.apply(args, cmd.InOrStdin(), &opts); err != nil {
				return err
			}
			if err := edits.apply(&opts); err != nil {
				return err
			}
			geo.apply(opts.Layout)
			vizTypes, err := sf.apply(&opts)
			if err != nil {
				return err
			}
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), opts, vizTypes, outputTarget{
				output: output,
				base:   outputBase(args, in.name),
			}, noCache)
		},
	}

	in.register(cmd)
	edits.register(cmd)
	geo.register(cmd)
	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runRender executes the pipeline once per viz type and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, vizTypes []string, target outputTarget, noCache bool) error {
	if err := opts.ValidateForParse(); err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	target.multiType = len(vizTypes) > 1
	for _, vizType := range vizTypes {
		opts.VizType = vizType

		spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", vizType))
		spinner.Start()
		res, err := runner.Execute(ctx, opts)
		if err != nil {
			spinner.StopWithError("Render failed")
			return err
		}
		spinner.Stop()

		if err := writeArtifacts(res.Artifacts, opts.Formats, vizType, target); err != nil {
			return err
		}
		printStats(res.Stats.Length, res.Stats.Pairs, res.Stats.Warnings, res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit)
		printWarnings(res.Drawing.Warnings)
	}
	return nil
}

// outputTarget decides where artifacts are written.
type outputTarget struct {
	output    string // explicit -o value
	base      string // derived from the input
	multiType bool
}

// path returns the file for one artifact. A single artifact goes to -o as
// given; otherwise -o (minus a format extension) is the base path.
func (t outputTarget) path(vizType, format string, single bool) string {
	if single && t.output != "" {
		return t.output
	}
	base := basePath(t.output, t.base)
	if t.multiType {
		return fmt.Sprintf("%s_%s.%s", base, vizType, format)
	}
	return base + "." + format
}

// writeArtifacts writes each rendered format to disk.
func writeArtifacts(artifacts map[string][]byte, formats []string, vizType string, target outputTarget) error {
	single := len(formats) == 1 && !target.multiType
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := target.path(vizType, format, single)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// parseVizTypes parses the --type flag. If empty, defaults to ["structure"].
func parseVizTypes(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultVizType}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// basePath strips a known format extension from output, or falls back to
// the input-derived base.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
