package treeviz

import (
	"strings"
	"testing"

	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/structure"
)

func motifs(t *testing.T, seq, db string) drawing.Motif {
	t.Helper()
	tree, err := structure.Parse("m", seq, db)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return drawing.ExportMotifs(tree)
}

func TestToDOT_Basic(t *testing.T) {
	m := motifs(t, "GGGAAACCC", "(((...)))")
	dot := ToDOT(m, Options{})

	if !strings.Contains(dot, "digraph G") {
		t.Error("ToDOT() output missing digraph declaration")
	}
	for _, want := range []string{"n0 -> n1;", "n1 -> n2;", `label="hairpin AAA"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q:\n%s", want, dot)
		}
	}
	if got := strings.Count(dot, "->"); got != m.Count()-1 {
		t.Errorf("edges = %d, want %d", got, m.Count()-1)
	}
}

func TestToDOT_SkipRuns(t *testing.T) {
	m := motifs(t, "AGGGAAACCCA", ".(((...))).")
	all := ToDOT(m, Options{})
	skipped := ToDOT(m, Options{SkipRuns: true})

	if !strings.Contains(all, "dashed") {
		t.Error("unpaired runs not drawn dashed")
	}
	if strings.Contains(skipped, "dashed") {
		t.Error("SkipRuns still draws unpaired runs")
	}
	if strings.Count(skipped, "->") != strings.Count(all, "->")-3 {
		t.Errorf("SkipRuns removed the wrong edges:\n%s", skipped)
	}
}

func TestFmtLabel(t *testing.T) {
	m := drawing.Motif{ID: 4, Kind: "bulge", Label: "left bulge A", Start: 2, End: 9}
	if got := fmtLabel(m, false); got != "left bulge A" {
		t.Errorf("fmtLabel() simple = %q", got)
	}
	if got := fmtLabel(m, true); got != "#4 left bulge A\n3..10" {
		t.Errorf("fmtLabel() detailed = %q", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 62.00 116.00" width="62" height="116"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(motifs(t, "GGGAAACCC", "(((...)))"), Options{Detailed: true})
	svg, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not svg")
	}
}
