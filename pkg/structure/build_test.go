package structure

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

func mustParse(t *testing.T, seq, db string) *Tree {
	t.Helper()
	tree, err := Parse("test", seq, db)
	if err != nil {
		t.Fatalf("Parse(%q, %q) error: %v", seq, db, err)
	}
	return tree
}

func TestBuildHairpin(t *testing.T) {
	tree := mustParse(t, "GCAAGC", "((..))")

	if len(tree.Root.Segments) != 1 {
		t.Fatalf("root segments = %d, want 1", len(tree.Root.Segments))
	}
	h, ok := tree.Root.Segments[0].(*Helix)
	if !ok {
		t.Fatalf("root child = %T, want *Helix", tree.Root.Segments[0])
	}
	want := []BasePair{{0, 5, 'G', 'C'}, {1, 4, 'C', 'G'}}
	if len(h.Pairs) != len(want) {
		t.Fatalf("helix pairs = %v, want %v", h.Pairs, want)
	}
	for i := range want {
		if h.Pairs[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, h.Pairs[i], want[i])
		}
	}
	tl, ok := h.Child.(*TerminalLoop)
	if !ok {
		t.Fatalf("helix child = %T, want *TerminalLoop", h.Child)
	}
	if tl.Run.Seq != "AA" {
		t.Errorf("terminal loop run = %q, want %q", tl.Run.Seq, "AA")
	}
	if tl.Run.Idx[0] != 2 || tl.Run.Idx[1] != 3 {
		t.Errorf("terminal loop indices = %v, want [2 3]", tl.Run.Idx)
	}
}

func TestBuildLeftBulge(t *testing.T) {
	tree := mustParse(t, "GACAAGC", "(.(..))")

	outer := tree.Root.Segments[0].(*Helix)
	if outer.Len() != 1 {
		t.Fatalf("outer helix pairs = %d, want 1", outer.Len())
	}
	b, ok := outer.Child.(*Bulge)
	if !ok {
		t.Fatalf("outer child = %T, want *Bulge", outer.Child)
	}
	if b.Side != SideLeft {
		t.Errorf("bulge side = %v, want left", b.Side)
	}
	if b.Run.Len() != 1 || b.Run.Idx[0] != 1 {
		t.Errorf("bulge run = %v, want [1]", b.Run.Idx)
	}
	if b.Helix.Len() != 1 {
		t.Errorf("inner helix pairs = %d, want 1", b.Helix.Len())
	}
	if _, ok := b.Helix.Child.(*TerminalLoop); !ok {
		t.Errorf("inner helix child = %T, want *TerminalLoop", b.Helix.Child)
	}
	if m := b.Members(); m[0] != Segment(b.Run) || m[1] != Segment(b.Helix) {
		t.Errorf("left bulge members out of order")
	}
}

func TestBuildRightBulge(t *testing.T) {
	tree := mustParse(t, "GGAAGCAC", "((..)..)")

	b, ok := tree.Root.Segments[0].(*Helix).Child.(*Bulge)
	if !ok {
		t.Fatalf("child = %T, want *Bulge", tree.Root.Segments[0].(*Helix).Child)
	}
	if b.Side != SideRight {
		t.Errorf("bulge side = %v, want right", b.Side)
	}
	if b.Run.Seq != "CA" {
		t.Errorf("bulge run = %q, want %q", b.Run.Seq, "CA")
	}
	if m := b.Members(); m[0] != Segment(b.Helix) || m[1] != Segment(b.Run) {
		t.Errorf("right bulge members out of order")
	}
}

func TestBuildInternalLoop(t *testing.T) {
	tree := mustParse(t, "GAGAACUC", "(.(..).)")

	il, ok := tree.Root.Segments[0].(*Helix).Child.(*InternalLoop)
	if !ok {
		t.Fatalf("child = %T, want *InternalLoop", tree.Root.Segments[0].(*Helix).Child)
	}
	if il.Left.Seq != "A" || il.Right.Seq != "U" {
		t.Errorf("internal loop runs = %q/%q, want A/U", il.Left.Seq, il.Right.Seq)
	}
	if il.Helix.Outermost() != (BasePair{2, 5, 'G', 'C'}) {
		t.Errorf("inner helix = %+v", il.Helix.Outermost())
	}
}

func TestBuildMultiLoop(t *testing.T) {
	db := "((.((..))..((..)).((..))))"
	seq := strings.Repeat("A", len(db))
	tree := mustParse(t, seq, db)

	ml, ok := tree.Root.Segments[0].(*Helix).Child.(*MultiLoop)
	if !ok {
		t.Fatalf("child = %T, want *MultiLoop", tree.Root.Segments[0].(*Helix).Child)
	}
	var kinds []Kind
	for _, s := range ml.Segments {
		kinds = append(kinds, s.Kind())
	}
	want := []Kind{KindUnpaired, KindHelix, KindUnpaired, KindHelix, KindUnpaired, KindHelix}
	if len(kinds) != len(want) {
		t.Fatalf("multiloop members = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("member %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if got := len(Helices(ml.Segments)); got != 3 {
		t.Errorf("branches = %d, want 3", got)
	}
}

func TestBuildTwoBranchMultiLoop(t *testing.T) {
	// Two helices with no unpaired nucleotides between them.
	tree := mustParse(t, strings.Repeat("G", 10), "((..)(..))")
	ml, ok := tree.Root.Segments[0].(*Helix).Child.(*MultiLoop)
	if !ok {
		t.Fatalf("child = %T, want *MultiLoop", tree.Root.Segments[0].(*Helix).Child)
	}
	if len(ml.Segments) != 2 {
		t.Errorf("members = %d, want 2", len(ml.Segments))
	}
}

func TestBuildExterior(t *testing.T) {
	tree := mustParse(t, "AAGCAAGCAUUGAUU", "..((..))..(.)..")
	var kinds []Kind
	for _, s := range tree.Root.Segments {
		kinds = append(kinds, s.Kind())
	}
	want := []Kind{KindUnpaired, KindHelix, KindUnpaired, KindHelix, KindUnpaired}
	if len(kinds) != len(want) {
		t.Fatalf("root members = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("member %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestBuildEmptyInterior(t *testing.T) {
	tree := mustParse(t, "GGCC", "(())")
	h := tree.Root.Segments[0].(*Helix)
	if h.Child != nil {
		t.Errorf("helix child = %T, want nil", h.Child)
	}
	if h.Len() != 2 {
		t.Errorf("pairs = %d, want 2", h.Len())
	}
}

func TestBuildUnpairedOnly(t *testing.T) {
	tree := mustParse(t, "ACGU", "....")
	if len(tree.Root.Segments) != 1 {
		t.Fatalf("root segments = %d, want 1", len(tree.Root.Segments))
	}
	if u := tree.Root.Segments[0].(*Unpaired); u.Seq != "ACGU" {
		t.Errorf("run = %q, want ACGU", u.Seq)
	}
}

func TestBuildPreorderAndParents(t *testing.T) {
	tree := mustParse(t, strings.Repeat("A", 17), "..((.((..)).))...")

	for i, n := range tree.Nodes() {
		if n.ID() != i {
			t.Errorf("node %d has ID %d", i, n.ID())
		}
		for _, c := range n.Children() {
			if c.Parent() != n {
				t.Errorf("child %d of %d has parent %v", c.ID(), n.ID(), c.Parent())
			}
			if c.ID() <= n.ID() {
				t.Errorf("child %d numbered before parent %d", c.ID(), n.ID())
			}
		}
	}
	if tree.Root.Parent() != nil {
		t.Error("root has a parent")
	}
	if n, ok := tree.Node(0); !ok || n != Node(tree.Root) {
		t.Error("Node(0) is not the root")
	}
	if _, ok := tree.Node(len(tree.Nodes())); ok {
		t.Error("Node(out of range) succeeded")
	}
}

func TestBuildSpans(t *testing.T) {
	tree := mustParse(t, strings.Repeat("A", 10), ".((...))..")
	h := tree.Helices()[0]
	if lo, hi := h.Span(); lo != 1 || hi != 7 {
		t.Errorf("helix span = [%d, %d], want [1, 7]", lo, hi)
	}
	if lo, hi := h.Child.Span(); lo != 3 || hi != 5 {
		t.Errorf("loop span = [%d, %d], want [3, 5]", lo, hi)
	}
	if lo, hi := tree.Root.Span(); lo != 0 || hi != 9 {
		t.Errorf("root span = [%d, %d], want [0, 9]", lo, hi)
	}
}

func TestBuildErrors(t *testing.T) {
	t.Run("length mismatch", func(t *testing.T) {
		_, err := Parse("x", "GGG", "((..))")
		if !errs.Is(err, errs.ErrCodeInvalidInput) {
			t.Errorf("error = %v, want INVALID_INPUT", err)
		}
	})
	t.Run("unbalanced", func(t *testing.T) {
		_, err := Parse("x", "GGG", "(((")
		var ube *UnbalancedBracketError
		if !errors.As(err, &ube) {
			t.Errorf("error = %v, want *UnbalancedBracketError", err)
		}
	})
	t.Run("crossing", func(t *testing.T) {
		_, err := Build("x", "GGCC", Pairs{2, 3, 0, 1})
		var mse *MalformedStructureError
		if !errors.As(err, &mse) {
			t.Errorf("error = %v, want *MalformedStructureError", err)
		}
	})
	t.Run("empty", func(t *testing.T) {
		if _, err := Build("x", "", Pairs{}); err == nil {
			t.Error("Build on empty input succeeded")
		}
	})
}

// randomDotBracket generates a balanced, non-crossing structure of length n.
func randomDotBracket(r *rand.Rand, n int) string {
	out := make([]byte, n)
	open := 0
	for i := 0; i < n; i++ {
		remaining := n - i
		switch {
		case open == remaining:
			out[i] = ')'
			open--
		case open > 0 && r.Intn(3) == 0:
			out[i] = ')'
			open--
		case remaining-open >= 2 && r.Intn(3) == 0:
			out[i] = '('
			open++
		default:
			out[i] = '.'
		}
	}
	return string(out)
}

func TestFlattenRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	letters := "ACGU"
	for n := 1; n < 120; n++ {
		db := randomDotBracket(r, n)
		seq := make([]byte, n)
		for i := range seq {
			seq[i] = letters[r.Intn(4)]
		}
		tree, err := Parse("random", string(seq), db)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", db, err)
		}
		if got := tree.Flatten(); got != string(seq) {
			t.Errorf("Flatten() = %q, want %q (structure %q)", got, seq, db)
		}
		if got := tree.DotBracket(); got != db {
			t.Errorf("DotBracket() = %q, want %q", got, db)
		}
	}
}

func TestLoopKindsInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 4; n < 200; n += 3 {
		db := randomDotBracket(r, n)
		tree, err := Parse("random", strings.Repeat("A", n), db)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", db, err)
		}
		for _, l := range tree.Loops() {
			helices := len(Helices(l.Members()))
			switch l := l.(type) {
			case *TerminalLoop:
				if helices != 0 {
					t.Errorf("%q: terminal loop with %d helices", db, helices)
				}
			case *Bulge:
				if helices != 1 || l.Run.Len() == 0 {
					t.Errorf("%q: malformed bulge", db)
				}
			case *InternalLoop:
				if l.Left.Len() == 0 || l.Right.Len() == 0 {
					t.Errorf("%q: internal loop with empty side", db)
				}
			case *MultiLoop:
				if helices < 2 {
					t.Errorf("%q: multiloop with %d helices", db, helices)
				}
			}
		}
	}
}

func TestOuterLoopKind(t *testing.T) {
	tests := []struct {
		db   string
		want Kind
	}{
		{"(.(..))", KindBulge},
		{"(..(..))", KindBulge},
		{"((..).)", KindBulge},
		{"((..)..)", KindBulge},
		{"(.(..).)", KindInternalLoop},
		{"(..(..).)", KindInternalLoop},
		{"(.(..)(..))", KindMultiLoop},
		{"((..)(..).)", KindMultiLoop},
		{"((..)(..))", KindMultiLoop},
		{"(...)", KindTerminalLoop},
	}

	for _, tt := range tests {
		t.Run(tt.db, func(t *testing.T) {
			tree := mustParse(t, strings.Repeat("A", len(tt.db)), tt.db)
			h := tree.Root.Segments[0].(*Helix)
			if h.Child == nil {
				t.Fatal("outer helix has no loop")
			}
			if got := h.Child.Kind(); got != tt.want {
				t.Errorf("outer loop = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindRoot, "root"},
		{KindHelix, "helix"},
		{KindInternalLoop, "internal_loop"},
		{Kind(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
