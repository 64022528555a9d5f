package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/pipeline"
)

// inputFlags selects the structure to work on: a Vienna file argument
// ("-" for stdin) or --seq/--structure given inline.
type inputFlags struct {
	name      string
	sequence  string
	structure string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "", "molecule name (overrides the file header)")
	cmd.Flags().StringVarP(&f.sequence, "seq", "s", "", "nucleotide sequence")
	cmd.Flags().StringVarP(&f.structure, "structure", "d", "", "dot-bracket structure")
}

// readText returns the Vienna text named by args, or "" when no argument
// was given.
func readText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	if args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", errs.Wrap(errs.ErrCodeInvalidInput, err, "read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.Wrap(errs.ErrCodeFileNotFound, err, "input %s", args[0])
		}
		return "", err
	}
	return string(data), nil
}

// apply copies the selected input into opts.
func (f *inputFlags) apply(args []string, stdin io.Reader, opts *pipeline.Options) error {
	if f.sequence != "" || f.structure != "" {
		if len(args) > 0 {
			return errs.New(errs.ErrCodeInvalidInput, "give either an input file or --seq/--structure, not both")
		}
		if f.sequence == "" || f.structure == "" {
			return errs.New(errs.ErrCodeInvalidInput, "--seq and --structure must be given together")
		}
		opts.Name, opts.Sequence, opts.Structure = f.name, f.sequence, strings.TrimSpace(f.structure)
		return nil
	}
	text, err := readText(args, stdin)
	if err != nil {
		return err
	}
	if text == "" {
		return errs.New(errs.ErrCodeInvalidInput, "no input: pass a Vienna file, '-' for stdin, or --seq and --structure")
	}
	opts.Name, opts.Input = f.name, text
	return nil
}

// outputBase derives the default output path stem.
func outputBase(args []string, name string) string {
	if len(args) > 0 && args[0] != "-" {
		return strings.TrimSuffix(args[0], filepath.Ext(args[0]))
	}
	if name != "" {
		return name
	}
	return "structure"
}

// editFlags carries --move and --flip.
type editFlags struct {
	moves []string
	flips []int
}

func (f *editFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.moves, "move", nil, "rotate helix to angle in degrees, as id:angle (repeatable)")
	cmd.Flags().IntSliceVar(&f.flips, "flip", nil, "mirror loop id across its closing helix; 0 mirrors everything across the baseline (repeatable)")
}

func (f *editFlags) apply(opts *pipeline.Options) error {
	for _, s := range f.moves {
		m, err := pipeline.ParseMove(s)
		if err != nil {
			return err
		}
		opts.Moves = append(opts.Moves, m)
	}
	opts.Flips = append(opts.Flips, f.flips...)
	return nil
}
