package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering a drawing document.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		sf      styleFlags
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render a drawing document written by 'layout'",
		Long: `Render a drawing document written by 'layout'.

The document holds every position, so this step only draws. It accepts the
JSON or YAML form.

Use 'render' as a shortcut to go directly from a structure to output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.baseOptions()
			if err != nil {
				return err
			}
			vizTypes, err := sf.apply(&opts)
			if err != nil {
				return err
			}
			base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			base = strings.TrimSuffix(base, ".layout")
			return c.runVisualize(cmd.Context(), args[0], opts, vizTypes, outputTarget{output: output, base: base}, noCache)
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single type/format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runVisualize loads the drawing and renders it.
func (c *CLI) runVisualize(ctx context.Context, input string, opts pipeline.Options, vizTypes []string, target outputTarget, noCache bool) error {
	d, err := drawing.ReadFile(input)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "load drawing %s", input)
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

		artifacts, hit, err := runner.RenderWithCacheInfo(ctx, d, opts)
		if err != nil {
			spinner.StopWithError("Visualization failed")
			return fmt.Errorf("visualize: %w", err)
		}
		spinner.Stop()

		if err := writeArtifacts(artifacts, opts.Formats, vizType, target); err != nil {
			return err
		}
		printStats(len(d.Nucleotides), (len(d.Nucleotides)-countUnpaired(d))/2, len(d.Warnings), hit)
	}
	return nil
}
