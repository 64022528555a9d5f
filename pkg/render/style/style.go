// Package style holds the colour palette used to draw structures.
//
// A palette is plain data so it can be loaded from the [palette] table of the
// config file, sent over the API, or overridden per invocation:
//
//	[palette]
//	background = "#ffffff"
//	[palette.bases]
//	G = "#2e7d32"
//	C = "#1565c0"
package style

import (
	"fmt"
	"image/color"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

// Palette assigns colours to the parts of a drawing. Colours are CSS hex
// strings (#rgb, #rrggbb or #rrggbbaa).
type Palette struct {
	Background string            `json:"background" toml:"background"`
	Backbone   string            `json:"backbone" toml:"backbone"`
	Bond       string            `json:"bond" toml:"bond"`
	Loop       string            `json:"loop" toml:"loop"`
	Stroke     string            `json:"stroke" toml:"stroke"`
	Text       string            `json:"text" toml:"text"`
	Unknown    string            `json:"unknown" toml:"unknown"` // fill for letters not in Bases
	Bases      map[string]string `json:"bases" toml:"bases"`
}

// Default returns the built-in palette.
func Default() Palette {
	return Palette{
		Background: "#ffffff",
		Backbone:   "#9e9e9e",
		Bond:       "#424242",
		Loop:       "#bdbdbd",
		Stroke:     "#333333",
		Text:       "#212121",
		Unknown:    "#eeeeee",
		Bases: map[string]string{
			"A": "#fff59d",
			"C": "#90caf9",
			"G": "#a5d6a7",
			"U": "#ef9a9a",
			"T": "#ef9a9a",
		},
	}
}

// Fill returns the fill colour for a nucleotide letter. Lookup is
// case-insensitive.
func (p Palette) Fill(base string) string {
	if c, ok := p.Bases[strings.ToUpper(base)]; ok {
		return c
	}
	return p.Unknown
}

// Merge returns p with every non-empty field of o applied on top.
func (p Palette) Merge(o Palette) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Background, o.Background)
	set(&p.Backbone, o.Backbone)
	set(&p.Bond, o.Bond)
	set(&p.Loop, o.Loop)
	set(&p.Stroke, o.Stroke)
	set(&p.Text, o.Text)
	set(&p.Unknown, o.Unknown)
	if len(o.Bases) > 0 {
		bases := make(map[string]string, len(p.Bases)+len(o.Bases))
		for k, v := range p.Bases {
			bases[k] = v
		}
		for k, v := range o.Bases {
			bases[strings.ToUpper(k)] = v
		}
		p.Bases = bases
	}
	return p
}

// Validate checks that every colour parses.
func (p Palette) Validate() error {
	named := map[string]string{
		"background": p.Background,
		"backbone":   p.Backbone,
		"bond":       p.Bond,
		"loop":       p.Loop,
		"stroke":     p.Stroke,
		"text":       p.Text,
		"unknown":    p.Unknown,
	}
	for k, v := range p.Bases {
		named["bases."+k] = v
	}
	for field, v := range named {
		if _, err := ParseHex(v); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "palette %s", field)
		}
	}
	return nil
}

// Decode reads a palette from TOML text and merges it over the default.
func Decode(data string) (Palette, error) {
	var p Palette
	md, err := toml.Decode(data, &p)
	if err != nil {
		return Palette{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "decode palette")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return Palette{}, errs.New(errs.ErrCodeInvalidConfig, "unknown palette key %q", keys[0].String())
	}
	out := Default().Merge(p)
	return out, out.Validate()
}

// LoadFile reads a palette from a TOML file.
func LoadFile(path string) (Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Palette{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "read palette %s", path)
	}
	return Decode(string(data))
}

// ParseHex parses a #rgb, #rrggbb or #rrggbbaa colour.
func ParseHex(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	if !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("colour %q must start with #", s)
	}
	h := s[1:]
	var err error
	switch len(h) {
	case 3:
		_, err = fmt.Sscanf(h, "%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R, c.G, c.B = c.R*17, c.G*17, c.B*17
	case 6:
		_, err = fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(h, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = fmt.Errorf("colour %q has %d hex digits", s, len(h))
	}
	if err != nil {
		return c, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for colours already validated; bad input yields black.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
