package drawing

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/structure"
)

func exportOf(t *testing.T, seq, db string) Drawing {
	t.Helper()
	tree, err := structure.Parse("sample", seq, db)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	l, err := layout.New(tree, layout.DefaultConfig())
	if err != nil {
		t.Fatalf("layout error: %v", err)
	}
	return Export(l)
}

func TestExport(t *testing.T) {
	d := exportOf(t, "AGCAAGCA", ".((..)).")

	if d.Name != "sample" || d.Structure != ".((..))." || d.Sequence != "AGCAAGCA" {
		t.Errorf("header = %q %q %q", d.Name, d.Sequence, d.Structure)
	}
	if len(d.Nucleotides) != 8 {
		t.Fatalf("nucleotides = %d, want 8", len(d.Nucleotides))
	}
	if d.Nucleotides[1].Partner != 6 || d.Nucleotides[0].Paired() {
		t.Errorf("partners = %d, %d", d.Nucleotides[1].Partner, d.Nucleotides[0].Partner)
	}
	if len(d.Helices) != 1 || d.Helices[0].Loop != -1 {
		t.Fatalf("helices = %+v", d.Helices)
	}
	if got := d.Helices[0].Pairs; len(got) != 2 || got[0] != [2]int{1, 6} || got[1] != [2]int{2, 5} {
		t.Errorf("helix pairs = %v", got)
	}
	if len(d.Loops) != 1 {
		t.Fatalf("loops = %d, want 1", len(d.Loops))
	}
	lp := d.Loops[0]
	if lp.Kind != "terminal_loop" || lp.Closing != d.Helices[0].ID || len(lp.Slots) != 1 {
		t.Errorf("loop = %+v", lp)
	}
	if len(d.Runs) != 3 {
		t.Errorf("runs = %d, want 3", len(d.Runs))
	}
	exterior := 0
	for _, r := range d.Runs {
		if r.Loop == -1 {
			exterior++
		}
	}
	if exterior != 2 {
		t.Errorf("exterior runs = %d, want 2", exterior)
	}
	if d.Width() <= 0 || d.Height() <= 0 {
		t.Errorf("bounds = %+v", d.Bounds)
	}
}

func TestExportMotifs(t *testing.T) {
	d := exportOf(t, "GAGAACUC", "(.(..).)")

	m := d.Motif
	if m.Kind != "root" || len(m.Children) != 1 {
		t.Fatalf("root motif = %+v", m)
	}
	var kinds []string
	for cur := &m; ; {
		kinds = append(kinds, cur.Kind)
		if len(cur.Children) == 0 {
			break
		}
		// Follow the helix branch.
		next := &cur.Children[0]
		for i := range cur.Children {
			if cur.Children[i].Kind == "helix" || strings.HasSuffix(cur.Children[i].Kind, "loop") {
				next = &cur.Children[i]
				break
			}
		}
		cur = next
	}
	want := []string{"root", "helix", "internal_loop", "helix", "terminal_loop", "unpaired"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("motif path = %v, want %v", kinds, want)
	}

	il, ok := m.Find(2)
	if !ok || il.Label != "1x1 internal loop" {
		t.Errorf("Find(2) = %+v", il)
	}
	if got := m.Count(); got != 8 {
		t.Errorf("Count() = %d, want 8", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d := exportOf(t, strings.Repeat("G", 18), "((.((..)).((..))))")

	data, err := Marshal(d)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Error("JSON round trip changed the drawing")
	}
}

func TestFileFormats(t *testing.T) {
	d := exportOf(t, "GGGAAACCC", "(((...)))")
	dir := t.TempDir()

	for _, name := range []string{"hairpin.json", "hairpin.yaml", "hairpin.YML"} {
		path := filepath.Join(dir, name)
		if err := WriteFile(d, path); err != nil {
			t.Fatalf("WriteFile(%s) error: %v", name, err)
		}
		got, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s) error: %v", name, err)
		}
		if !reflect.DeepEqual(got, d) {
			t.Errorf("%s round trip changed the drawing", name)
		}
	}

	yml, err := MarshalYAML(d)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(yml), "(((...)))") {
		t.Errorf("YAML output missing structure:\n%s", yml)
	}
}

func TestReadRejectsInconsistentDrawing(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"length mismatch", `{"sequence":"AC","structure":"..","nucleotides":[{"index":0,"base":"A","partner":-1}]}`},
		{"bad index", `{"sequence":"A","structure":".","nucleotides":[{"index":3,"base":"A","partner":-1}]}`},
		{"bad partner", `{"sequence":"A","structure":".","nucleotides":[{"index":0,"base":"A","partner":9}]}`},
		{"bad helix", `{"sequence":"A","structure":".","nucleotides":[{"index":0,"base":"A","partner":-1}],"helices":[{"id":1,"pairs":[[0,4]]}]}`},
		{"not json", `nope`},
	}
	for _, tt := range tests {
		if _, err := Unmarshal([]byte(tt.data)); err == nil {
			t.Errorf("%s: Unmarshal succeeded", tt.name)
		}
	}
}
