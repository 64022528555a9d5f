// Package vienna reads and writes dot-bracket records in the format printed
// by RNAfold and accepted by most secondary-structure tools:
//
//	>tRNA-Phe yeast
//	GCGGAUUUAGCUCAGUUGGGAGAGCGCCAGACUGAAGAUCUGGAGGUCCUGUGUUCGAUCCACAGAAUUCGCACCA
//	(((((((..((((........)))).(((((.......))))).....(((((.......))))))))))))....  (-21.60)
//
// The header line and the trailing free energy are optional. Sequence and
// structure may each wrap over several lines. Lines starting with '#' or
// ';' are comments.
package vienna

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

// Record is one named sequence with its structure.
type Record struct {
	Name        string
	Description string
	Sequence    string
	Structure   string
	Energy      *float64 // kcal/mol, nil when absent
}

type file struct {
	Records []*record `parser:"EOL* ( @@ EOL* )*"`
}

type record struct {
	Header    string   `parser:"( @Header EOL+ )?"`
	Sequence  []string `parser:"( @Sequence EOL* )+"`
	Structure []string `parser:"( @Structure EOL* )+"`
	Energy    string   `parser:"( @Energy EOL* )?"`
}

var parser = participle.MustBuild[file](
	participle.Lexer(viennaLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)

// Parse reads every record from r.
func Parse(r io.Reader) ([]Record, error) {
	f, err := parser.Parse("", r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse dot-bracket file")
	}
	return convert(f)
}

// ParseString reads every record from s.
func ParseString(s string) ([]Record, error) {
	f, err := parser.ParseString("", s)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse dot-bracket input")
	}
	return convert(f)
}

// ParseFile reads every record from the file at path.
func ParseFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

func convert(f *file) ([]Record, error) {
	if len(f.Records) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no records found")
	}
	out := make([]Record, 0, len(f.Records))
	for i, r := range f.Records {
		rec := Record{
			Sequence:  strings.Join(r.Sequence, ""),
			Structure: strings.Join(r.Structure, ""),
		}
		if h := strings.TrimSpace(strings.TrimPrefix(r.Header, ">")); h != "" {
			name, desc, _ := strings.Cut(h, " ")
			rec.Name, rec.Description = name, strings.TrimSpace(desc)
		}
		if rec.Name == "" {
			rec.Name = fmt.Sprintf("record%d", i+1)
		}
		if r.Energy != "" {
			v, err := strconv.ParseFloat(strings.TrimSpace(strings.Trim(r.Energy, "()")), 64)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "%s: bad energy %q", rec.Name, r.Energy)
			}
			rec.Energy = &v
		}
		if len(rec.Sequence) != len(rec.Structure) {
			return nil, errs.New(errs.ErrCodeInvalidInput,
				"%s: sequence has %d nucleotides but structure has %d", rec.Name, len(rec.Sequence), len(rec.Structure))
		}
		out = append(out, rec)
	}
	return out, nil
}

// Write formats records in the layout Parse accepts, one line per field.
func Write(w io.Writer, records ...Record) error {
	for _, r := range records {
		header := ">" + r.Name
		if r.Description != "" {
			header += " " + r.Description
		}
		line := r.Structure
		if r.Energy != nil {
			line += fmt.Sprintf(" (%.2f)", *r.Energy)
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n%s\n", header, r.Sequence, line); err != nil {
			return err
		}
	}
	return nil
}
