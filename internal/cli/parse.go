package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/io/vienna"
	"github.com/matzehuels/stemloop/pkg/pipeline"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// motifKindStyles colours tree rows by motif kind.
var motifKindStyles = map[string]lipgloss.Style{
	structure.KindHelix.String():        lipgloss.NewStyle().Foreground(colorCyan),
	structure.KindTerminalLoop.String(): lipgloss.NewStyle().Foreground(colorGreen),
	structure.KindBulge.String():        lipgloss.NewStyle().Foreground(colorYellow),
	structure.KindInternalLoop.String(): lipgloss.NewStyle().Foreground(colorYellow),
	structure.KindMultiLoop.String():    lipgloss.NewStyle().Foreground(colorRed),
	structure.KindUnpaired.String():     StyleDim,
}

// parseCommand creates the parse command, which prints the motif tree of
// every record in the input.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		in     inputFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse [file.dbn | -]",
		Short: "Print the motif tree of a dot-bracket structure",
		Long: `Print the motif tree of a dot-bracket structure.

The input is a Vienna-style file (optional ">name" header, sequence line,
structure line, optional "(energy)") or an inline --seq/--structure pair.
Every record in the file is parsed.

Examples:
  stemloop parse trna.dbn
  stemloop parse -s GGGAAACCC -d "(((...)))"
  stemloop parse trna.dbn -f json -o trna.motifs.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", pipeline.FormatJSON, pipeline.FormatYAML:
			default:
				return errs.New(errs.ErrCodeInvalidFormat, "invalid format %q (want text, json or yaml)", format)
			}
			return c.runParse(cmd.Context(), args, cmd.InOrStdin(), in, format, output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runParse parses each record and writes its motif tree.
func (c *CLI) runParse(ctx context.Context, args []string, stdin io.Reader, in inputFlags, format, output string) error {
	records, err := readRecords(args, stdin, in)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	var motifs []drawing.Motif
	for _, rec := range records {
		prog := newProgress(c.Logger)
		opts := pipeline.Options{Name: rec.Name, Sequence: rec.Sequence, Structure: rec.Structure, Logger: c.Logger}
		if err := opts.ValidateForParse(); err != nil {
			return fmt.Errorf("%s: %w", rec.Name, err)
		}
		t, err := pipeline.Parse(ctx, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", rec.Name, err)
		}
		c.Logger.Debugf("Parsed %s: %d nt, %d pairs", rec.Name, t.Len(), t.Pairs.Count())
		if format == "text" {
			fmt.Fprintln(out, renderMotifTree(t))
			prog.done(fmt.Sprintf("Parsed %s", rec.Name))
			continue
		}
		motifs = append(motifs, drawing.ExportMotifs(t))
	}

	var data []byte
	switch format {
	case pipeline.FormatJSON:
		data, err = json.MarshalIndent(motifs, "", "  ")
	case pipeline.FormatYAML:
		data, err = yaml.Marshal(motifs)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	_, err = out.Write(append(data, '\n'))
	return err
}

// readRecords returns every record named by args, or the single inline record.
func readRecords(args []string, stdin io.Reader, in inputFlags) ([]vienna.Record, error) {
	var opts pipeline.Options
	if err := in.apply(args, stdin, &opts); err != nil {
		return nil, err
	}
	if opts.Input == "" {
		return []vienna.Record{{Name: opts.Name, Sequence: opts.Sequence, Structure: opts.Structure}}, nil
	}
	records, err := vienna.ParseString(opts.Input)
	if err != nil {
		return nil, err
	}
	if in.name != "" && len(records) == 1 {
		records[0].Name = in.name
	}
	return records, nil
}

// renderMotifTree draws t as a lipgloss tree headed by its summary line.
func renderMotifTree(t *structure.Tree) string {
	m := drawing.ExportMotifs(t)
	header := fmt.Sprintf("%s  %s",
		StyleTitle.Render(nameOr(t.Name, "(unnamed)")),
		StyleDim.Render(fmt.Sprintf("%d nt · %d bp", t.Len(), t.Pairs.Count())))

	root := tree.Root(header).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	for _, child := range m.Children {
		root.Child(motifNode(child))
	}
	return root.String()
}

func motifNode(m drawing.Motif) any {
	label := fmt.Sprintf("%s %s %s",
		StyleNumber.Render(fmt.Sprintf("#%d", m.ID)),
		motifStyle(m.Kind).Render(m.Label),
		StyleDim.Render(fmt.Sprintf("%d..%d", m.Start+1, m.End+1)))
	if len(m.Children) == 0 {
		return label
	}
	node := tree.Root(label)
	for _, child := range m.Children {
		node.Child(motifNode(child))
	}
	return node
}

func motifStyle(kind string) lipgloss.Style {
	if s, ok := motifKindStyles[kind]; ok {
		return s
	}
	return StyleValue
}

func nameOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}
