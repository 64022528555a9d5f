// Package pipeline provides the parse → layout → render pipeline for stemloop.
//
// The CLI and the API server both drive drawings through this package, so
// defaults, validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: match brackets and classify the structure into a motif tree
//  2. Layout: place helices and loops, then apply any moves and flips
//  3. Render: produce SVG, PNG, PDF, DOT, JSON or YAML
//
// Layouts and artifacts are cached; parsing is cheap and never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Name:      "hairpin",
//	    Sequence:  "GGGAAACCC",
//	    Structure: "(((...)))",
//	    Formats:   []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	tree, err := runner.Parse(ctx, opts)
//	d, err := runner.ComputeLayout(ctx, tree, opts)
//	artifacts, err := runner.Render(ctx, d, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stemloop/pkg/cache"
	"github.com/matzehuels/stemloop/pkg/drawing"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/render/style"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Visualization types.
const (
	VizTypeStructure = "structure" // the laid-out molecule
	VizTypeTree      = "tree"      // the motif tree as a Graphviz diagram
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeStructure

// DefaultScale is the default PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeStructure: true,
	VizTypeTree:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Move rotates a helix about the center of its enclosing loop.
type Move struct {
	Helix int     `json:"helix"`
	Angle float64 `json:"angle"` // degrees, SVG orientation
}

// ParseMove parses "id:angle", for example "4:135".
func ParseMove(s string) (Move, error) {
	id, angle, ok := strings.Cut(s, ":")
	if !ok {
		return Move{}, errs.New(errs.ErrCodeInvalidInput, "move %q: want helix:angle", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return Move{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "move %q: bad helix id", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(angle), 64)
	if err != nil {
		return Move{}, errs.Wrap(errs.ErrCodeInvalidInput, err, "move %q: bad angle", s)
	}
	return Move{Helix: h, Angle: a}, nil
}

// String formats m the way ParseMove reads it.
func (m Move) String() string {
	return strconv.Itoa(m.Helix) + ":" + strconv.FormatFloat(m.Angle, 'g', -1, 64)
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options
	Name      string `json:"name,omitempty"`
	Sequence  string `json:"sequence,omitempty"`
	Structure string `json:"structure,omitempty"`
	// Input is Vienna-format text, used when Sequence is empty.
	// Only its first record is drawn.
	Input string `json:"input,omitempty"`

	// Layout options. A nil Layout means layout.DefaultConfig.
	Layout  *layout.Config `json:"layout,omitempty"`
	Moves   []Move         `json:"moves,omitempty"`
	Flips   []int          `json:"flips,omitempty"` // loop IDs; 0 flips the whole drawing
	Refresh bool           `json:"refresh,omitempty"`

	// Render options
	VizType  string         `json:"viz_type,omitempty"`
	Formats  []string       `json:"formats,omitempty"`
	Palette  *style.Palette `json:"palette,omitempty"` // merged over style.Default
	Loops    bool           `json:"loops,omitempty"`
	Numbers  int            `json:"numbers,omitempty"`
	Scale    float64        `json:"scale,omitempty"`
	Detailed bool           `json:"detailed,omitempty"` // tree labels with IDs and spans

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Tree      *structure.Tree
	Drawing   drawing.Drawing
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Length     int
	Pairs      int
	NodeCount  int
	Warnings   int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the drawing came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(sortedKeys(ValidFormats), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: structure, tree)", vizType)
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Sequence == "" {
		if o.Input == "" {
			return errs.New(errs.ErrCodeInvalidInput, "sequence or input is required")
		}
		if err := o.readInput(); err != nil {
			return err
		}
	}
	if err := errs.ValidateSequence(o.Sequence); err != nil {
		return err
	}
	if err := errs.ValidateDotBracket(o.Structure); err != nil {
		return err
	}
	if len(o.Sequence) != len(o.Structure) {
		return errs.New(errs.ErrCodeInvalidInput, "sequence has %d nucleotides but structure has %d", len(o.Sequence), len(o.Structure))
	}
	if err := errs.ValidateName(o.Name); err != nil {
		return err
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Layout == nil {
		cfg := layout.DefaultConfig()
		o.Layout = &cfg
	} else {
		o.Layout.SetDefaults()
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Layout.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Numbers < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "numbers must not be negative")
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be positive")
	}
	return o.palette().Validate()
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// IsTree returns true if this is a motif tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == VizTypeTree
}

func (o *Options) palette() style.Palette {
	if o.Palette == nil {
		return style.Default()
	}
	return style.Default().Merge(*o.Palette)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	moves := make([]string, len(o.Moves))
	for i, m := range o.Moves {
		moves[i] = m.String()
	}
	return cache.LayoutKeyOpts{
		Geometry: o.Layout,
		Moves:    moves,
		Flips:    o.Flips,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		VizType: o.VizType,
		Format:  format,
	}
	if o.IsTree() {
		k.Detailed = o.Detailed
		if format == FormatPNG {
			k.Scale = o.Scale
		}
		return k
	}
	k.Palette = o.palette()
	k.Loops = o.Loops
	k.Numbers = o.Numbers
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

// String summarizes the input for log lines.
func (o *Options) String() string {
	name := o.Name
	if name == "" {
		name = "(unnamed)"
	}
	return fmt.Sprintf("%s [%d nt]", name, len(o.Sequence))
}
