package drawing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Drawing Serialization API
// =============================================================================

// Marshal encodes a drawing as indented JSON.
func Marshal(d Drawing) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a JSON drawing.
func Unmarshal(data []byte) (Drawing, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a drawing as indented JSON to w.
func Write(d Drawing, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON drawing from r.
func Read(r io.Reader) (Drawing, error) {
	var d Drawing
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Drawing{}, fmt.Errorf("decode: %w", err)
	}
	return d, validate(d)
}

// MarshalYAML encodes a drawing as YAML.
func MarshalYAML(d Drawing) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML drawing.
func UnmarshalYAML(data []byte) (Drawing, error) {
	var d Drawing
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Drawing{}, fmt.Errorf("decode yaml: %w", err)
	}
	return d, validate(d)
}

// WriteFile writes d to path, as YAML when the extension is .yaml or .yml
// and as JSON otherwise.
func WriteFile(d Drawing, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = MarshalYAML(d)
	} else {
		data, err = Marshal(d)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadFile reads a drawing written by [WriteFile].
func ReadFile(path string) (Drawing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Drawing{}, fmt.Errorf("open %s: %w", path, err)
	}
	if isYAML(path) {
		return UnmarshalYAML(data)
	}
	return Unmarshal(data)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// validate checks the cross references a renderer relies on.
func validate(d Drawing) error {
	n := len(d.Nucleotides)
	if len(d.Sequence) != n {
		return fmt.Errorf("drawing has %d nucleotides for a sequence of %d", n, len(d.Sequence))
	}
	for i, nt := range d.Nucleotides {
		if nt.Index != i {
			return fmt.Errorf("nucleotide %d has index %d", i, nt.Index)
		}
		if nt.Partner >= n {
			return fmt.Errorf("nucleotide %d has partner %d out of range", i, nt.Partner)
		}
	}
	for _, h := range d.Helices {
		for _, p := range h.Pairs {
			if p[0] < 0 || p[0] >= n || p[1] < 0 || p[1] >= n {
				return fmt.Errorf("helix %d pair %v out of range", h.ID, p)
			}
		}
	}
	return nil
}
