package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/stemloop/pkg/cache"
	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/render/style"
	"github.com/matzehuels/stemloop/pkg/structure"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"yaml", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"structure", false},
		{"tree", false},
		{"tower", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"4:135", Move{Helix: 4, Angle: 135}, false},
		{" 2 : -90.5 ", Move{Helix: 2, Angle: -90.5}, false},
		{"4", Move{}, true},
		{"x:90", Move{}, true},
		{"4:east", Move{}, true},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMove(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if !tt.wantErr {
			if back, _ := ParseMove(got.String()); back != got {
				t.Errorf("String() = %q does not parse back", got.String())
			}
		}
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"empty", Options{}, errs.ErrCodeInvalidInput},
		{"length mismatch", Options{Sequence: "GGG", Structure: "(.)."}, errs.ErrCodeInvalidInput},
		{"bad letter", Options{Sequence: "GG1", Structure: "(.)"}, errs.ErrCodeInvalidSequence},
		{"bad bracket", Options{Sequence: "GGG", Structure: "[.]"}, errs.ErrCodeInvalidStructure},
		{"bad name", Options{Name: "../x", Sequence: "GGG", Structure: "(.)"}, errs.ErrCodeInvalidInput},
		{"bad input", Options{Input: ">x\nGGG\n"}, errs.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		err := tt.opts.ValidateForParse()
		if !errs.Is(err, tt.code) {
			t.Errorf("%s: error = %v, want %s", tt.name, err, tt.code)
		}
	}
}

func TestOptionsInput(t *testing.T) {
	opts := Options{Input: ">hp hairpin\nGGGAAACCC\n(((...))) (-1.2)\n"}
	if err := opts.ValidateForParse(); err != nil {
		t.Fatalf("ValidateForParse: %v", err)
	}
	if opts.Name != "hp" || opts.Sequence != "GGGAAACCC" || opts.Structure != "(((...)))" {
		t.Errorf("input not applied: %+v", opts)
	}

	named := Options{Name: "kept", Input: ">hp\nGC\n()\n"}
	if err := named.ValidateForParse(); err != nil || named.Name != "kept" {
		t.Errorf("explicit name overwritten: %q, %v", named.Name, err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Sequence: "GGGAAACCC", Structure: "(((...)))"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	layoutCfg := *opts.Layout
	vizType := opts.VizType

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if *opts.Layout != layoutCfg {
		t.Error("Layout changed on second call")
	}
	if opts.VizType != vizType {
		t.Error("VizType changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	if *opts.Layout != layout.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", *opts.Layout)
	}

	opts = Options{Layout: &layout.Config{BasePairLength: 50}}
	opts.SetLayoutDefaults()
	if opts.Layout.BasePairLength != 50 || opts.Layout.NucleotideRadius != layout.DefaultNucleotideRadius {
		t.Errorf("partial config not completed: %+v", *opts.Layout)
	}

	bad := Options{Layout: &layout.Config{BasePairLength: -1}}
	if err := bad.ValidateForLayout(); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("negative length error = %v", err)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
}

func TestValidateForRenderPalette(t *testing.T) {
	opts := Options{Palette: &style.Palette{Bond: "red"}}
	if err := opts.ValidateForRender(); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("bad palette error = %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Loops: true}
	opts.SetRenderDefaults()
	svg := opts.ArtifactKeyOpts(FormatSVG)
	png := opts.ArtifactKeyOpts(FormatPNG)
	if svg.Scale != 0 || png.Scale != DefaultScale {
		t.Errorf("scale only matters for png: svg %v png %v", svg.Scale, png.Scale)
	}
	if !svg.Loops {
		t.Error("Loops missing from key")
	}

	opts.VizType = VizTypeTree
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Loops || k.Palette != nil {
		t.Errorf("tree key carries structure options: %+v", k)
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(c, nil, nil)
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Name:      "hp",
		Sequence:  "GGGAAACCCGGGGAACCCC",
		Structure: "(((...)))((((..))))",
		Formats:   []string{FormatSVG, FormatJSON, FormatDOT},
	}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.Length != 19 || res.Stats.Pairs != 7 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Error("first run should miss the cache")
	}
	for _, f := range opts.Formats {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("missing %s artifact", f)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "digraph G") {
		t.Error("dot artifact is not a graph")
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.CacheInfo.LayoutHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run cache info = %+v, want hits", again.CacheInfo)
	}
	if string(again.Artifacts[FormatSVG]) != string(res.Artifacts[FormatSVG]) {
		t.Error("cached svg differs")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if fresh.CacheInfo.LayoutHit {
		t.Error("Refresh should bypass the layout cache")
	}
}

func TestExecuteMovesAndFlips(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	base := Options{Sequence: "GGAGGAAACCAGGAAACCACC", Structure: "((.((...)).((...)).))", Formats: []string{FormatJSON}}

	plain, err := r.Execute(ctx, base)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	flipped := base
	flipped.Flips = []int{0}
	res, err := r.Execute(ctx, flipped)
	if err != nil {
		t.Fatalf("Execute with flip: %v", err)
	}
	for i, n := range res.Drawing.Nucleotides {
		if want := -plain.Drawing.Nucleotides[i].Y; abs(n.Y-want) > 1e-6 {
			t.Fatalf("nucleotide %d y = %v, want %v", i, n.Y, want)
		}
	}

	bad := base
	bad.Moves = []Move{{Helix: 999, Angle: 0}}
	if _, err := r.Execute(ctx, bad); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("move of unknown helix error = %v", err)
	}
	bad = base
	bad.Flips = []int{999}
	if _, err := r.Execute(ctx, bad); !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("flip of unknown loop error = %v", err)
	}
}

func TestFlipKeepsLoopsOnCircles(t *testing.T) {
	tests := []struct {
		name      string
		structure string
	}{
		{"nested internal loops", "(((..(((...)))...)))"},
		{"multiloop", "((.((...)).((...)).))"},
	}

	for _, tt := range tests {
		tree, err := structure.Parse(tt.name, strings.Repeat("A", len(tt.structure)), tt.structure)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		for _, lp := range tree.Loops() {
			if lp.ID() == tree.Root.ID() {
				continue
			}
			opts := Options{Flips: []int{lp.ID()}}
			if err := opts.ValidateForLayout(); err != nil {
				t.Fatal(err)
			}
			l, err := GenerateLayout(context.Background(), tree, opts)
			if err != nil {
				t.Fatalf("%s: flip %d: %v", tt.name, lp.ID(), err)
			}
			for _, el := range l.Loops {
				c := el.Closing()
				for _, n := range []*layout.Nucleotide{c.Five, c.Three} {
					if d := el.Center.Dist(n.Pos); abs(d-el.Radius) > 1e-6 {
						t.Errorf("%s: flip %d: loop %d closing nucleotide %d is %v from center, want %v",
							tt.name, lp.ID(), el.Node().ID(), n.Index, d, el.Radius)
					}
				}
				for _, s := range el.Slots {
					u, ok := s.Element.(*layout.UnpairedElement)
					if !ok {
						continue
					}
					for _, n := range u.Nucleotides {
						if d := el.Center.Dist(n.Pos); abs(d-el.Radius) > 1e-6 {
							t.Errorf("%s: flip %d: loop %d nucleotide %d off circle by %v",
								tt.name, lp.ID(), el.Node().ID(), n.Index, d-el.Radius)
						}
					}
				}
			}
		}
	}
}

func TestExecuteErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := r.Execute(ctx, Options{Sequence: "GGGAAACC", Structure: "(((...))"})
	if !errs.Is(err, errs.ErrCodeUnbalancedBracket) {
		t.Errorf("unbalanced error = %v", err)
	}
	_, err = r.Execute(ctx, Options{Sequence: "GGG", Structure: "(.)", Formats: []string{"gif"}})
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v", err)
	}
}

func TestRenderTreeDOT(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Sequence:  "GGGAAACCC",
		Structure: "(((...)))",
		VizType:   VizTypeTree,
		Formats:   []string{FormatDOT, FormatYAML},
		Detailed:  true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "#2 hairpin AAA") {
		t.Errorf("detailed label missing:\n%s", res.Artifacts[FormatDOT])
	}
	if !strings.Contains(string(res.Artifacts[FormatYAML]), "(((...)))") {
		t.Errorf("yaml drawing missing structure:\n%s", res.Artifacts[FormatYAML])
	}
}

func TestRenderFromDrawingData(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()
	res, err := r.Execute(ctx, Options{Sequence: "GGGAAACCC", Structure: "(((...)))", Formats: []string{FormatJSON, FormatYAML}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, f := range []string{FormatJSON, FormatYAML} {
		out, err := RenderFromDrawingData(ctx, res.Artifacts[f], Options{Formats: []string{FormatSVG}})
		if err != nil {
			t.Fatalf("RenderFromDrawingData(%s): %v", f, err)
		}
		if !strings.HasPrefix(string(out[FormatSVG]), "<svg") {
			t.Errorf("from %s: not svg", f)
		}
	}
	if _, err := RenderFromDrawingData(ctx, []byte("{{"), Options{}); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("garbage drawing error = %v", err)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
