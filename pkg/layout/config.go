package layout

import (
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/geom"
)

// RadiusMode selects how loop radii are derived from their contents.
type RadiusMode string

const (
	// RadiusDefault spaces loop nucleotides at the configured pitch.
	RadiusDefault RadiusMode = "default"
	// RadiusMin packs loop nucleotides as tightly as their circles allow.
	RadiusMin RadiusMode = "min"
)

// Default geometry, in drawing units.
const (
	DefaultNucleotideRadius  = 10.0
	DefaultNucleotideSpacing = 25.0
	DefaultBasePairLength    = 30.0
	DefaultPairSpacing       = 25.0
)

// Config holds every geometric constant the layout uses. It is passed by
// value; there is no package-level mutable configuration.
type Config struct {
	NucleotideRadius  float64    `json:"nucleotide_radius" toml:"nucleotide_radius"`
	NucleotideSpacing float64    `json:"nucleotide_spacing" toml:"nucleotide_spacing"`
	BasePairLength    float64    `json:"base_pair_length" toml:"base_pair_length"`
	PairSpacing       float64    `json:"pair_spacing" toml:"pair_spacing"`
	RadiusMode        RadiusMode `json:"radius_mode" toml:"radius_mode"`
	// ClampRadius raises a radius that cannot span its closing chord
	// instead of failing.
	ClampRadius bool     `json:"clamp_radius" toml:"clamp_radius"`
	Origin      geom.Vec `json:"origin" toml:"origin"`
}

// DefaultConfig returns the standard geometry.
func DefaultConfig() Config {
	return Config{
		NucleotideRadius:  DefaultNucleotideRadius,
		NucleotideSpacing: DefaultNucleotideSpacing,
		BasePairLength:    DefaultBasePairLength,
		PairSpacing:       DefaultPairSpacing,
		RadiusMode:        RadiusDefault,
		ClampRadius:       true,
	}
}

// SetDefaults fills zero-valued fields from [DefaultConfig]. ClampRadius
// and Origin are left alone since their zero values are meaningful.
func (c *Config) SetDefaults() {
	d := DefaultConfig()
	if c.NucleotideRadius == 0 {
		c.NucleotideRadius = d.NucleotideRadius
	}
	if c.NucleotideSpacing == 0 {
		c.NucleotideSpacing = d.NucleotideSpacing
	}
	if c.BasePairLength == 0 {
		c.BasePairLength = d.BasePairLength
	}
	if c.PairSpacing == 0 {
		c.PairSpacing = d.PairSpacing
	}
	if c.RadiusMode == "" {
		c.RadiusMode = d.RadiusMode
	}
}

// Validate checks that all lengths are positive and the radius mode is known.
func (c Config) Validate() error {
	lengths := []struct {
		name string
		v    float64
	}{
		{"nucleotide_radius", c.NucleotideRadius},
		{"nucleotide_spacing", c.NucleotideSpacing},
		{"base_pair_length", c.BasePairLength},
		{"pair_spacing", c.PairSpacing},
	}
	for _, l := range lengths {
		if !(l.v > 0) {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be positive, got %v", l.name, l.v)
		}
	}
	switch c.RadiusMode {
	case RadiusDefault, RadiusMin:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unknown radius mode %q (want %q or %q)", c.RadiusMode, RadiusDefault, RadiusMin)
	}
	return nil
}
