package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/pipeline"
)

// geometryFlags overrides the configured layout geometry.
type geometryFlags struct {
	basePairLength float64
	pairSpacing    float64
	ntSpacing      float64
	ntRadius       float64
	radiusMode     string
	noClamp        bool
}

func (f *geometryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.basePairLength, "bp-length", 0, "distance between paired nucleotides")
	cmd.Flags().Float64Var(&f.pairSpacing, "pair-spacing", 0, "distance between stacked base pairs")
	cmd.Flags().Float64Var(&f.ntSpacing, "nt-spacing", 0, "backbone distance between loop nucleotides")
	cmd.Flags().Float64Var(&f.ntRadius, "nt-radius", 0, "nucleotide circle radius")
	cmd.Flags().StringVar(&f.radiusMode, "radius-mode", "", "loop radius mode: default, min")
	cmd.Flags().BoolVar(&f.noClamp, "no-clamp", false, "fail instead of enlarging loops too small for their closing pair")
}

// apply overlays the non-zero flags on cfg.
func (f *geometryFlags) apply(cfg *layout.Config) {
	set := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	set(&cfg.BasePairLength, f.basePairLength)
	set(&cfg.PairSpacing, f.pairSpacing)
	set(&cfg.NucleotideSpacing, f.ntSpacing)
	set(&cfg.NucleotideRadius, f.ntRadius)
	if f.radiusMode != "" {
		cfg.RadiusMode = layout.RadiusMode(f.radiusMode)
	}
	if f.noClamp {
		cfg.ClampRadius = false
	}
}

// layoutCommand creates the layout command for computing drawing documents.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		in      inputFlags
		edits   editFlags
		geo     geometryFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file.dbn | -]",
		Short: "Compute the layout of a structure",
		Long: `Compute the layout of a structure.

The layout command writes a drawing document: every nucleotide position plus
the helix, loop and motif records behind them. The document is JSON by
default and YAML when the output ends in .yaml or .yml. Use 'visualize' to
render it later.

Results are cached locally for faster subsequent runs.`,
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
			opts.Refresh = refresh
			if output == "" {
				output = outputBase(args, in.name) + ".layout.json"
			}
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	in.register(cmd)
	edits.register(cmd)
	geo.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runLayout parses, lays out and writes the drawing document.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	d, hit, err := c.computeDrawing(ctx, opts, noCache)
	if err != nil {
		return err
	}

	if output == "-" {
		return drawing.Write(d, os.Stdout)
	}
	if err := drawing.WriteFile(d, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(d.Nucleotides), (len(d.Nucleotides)-countUnpaired(d))/2, len(d.Warnings), hit)
	printWarnings(d.Warnings)
	printNewline()
	printNextStep("Render", appName+" visualize "+output)
	return nil
}

// computeDrawing runs parse and layout with a spinner.
func (c *CLI) computeDrawing(ctx context.Context, opts pipeline.Options, noCache bool) (drawing.Drawing, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return drawing.Drawing{}, false, err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return drawing.Drawing{}, false, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, err := runner.Parse(ctx, opts)
	if err != nil {
		return drawing.Drawing{}, false, err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Laying out %s...", opts.String()))
	spinner.Start()

	d, hit, err := runner.ComputeLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return drawing.Drawing{}, false, fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return drawing.Drawing{}, false, ctx.Err()
	}
	return d, hit, nil
}

// countUnpaired counts nucleotides without a partner.
func countUnpaired(d drawing.Drawing) int {
	n := 0
	for _, nt := range d.Nucleotides {
		if !nt.Paired() {
			n++
		}
	}
	return n
}
