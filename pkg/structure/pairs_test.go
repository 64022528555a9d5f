package structure

import (
	"errors"
	"strings"
	"testing"

	errs "github.com/matzehuels/stemloop/pkg/errors"
)

func TestMatchPairs(t *testing.T) {
	tests := []struct {
		in   string
		want Pairs
	}{
		{"", Pairs{}},
		{"...", Pairs{-1, -1, -1}},
		{"()", Pairs{1, 0}},
		{"((..))", Pairs{5, 4, -1, -1, 1, 0}},
		{"(.)(.)", Pairs{2, -1, 0, 5, -1, 3}},
		{".((.).).", Pairs{-1, 6, 4, -1, 2, -1, 1, -1}},
	}

	for _, tt := range tests {
		got, err := MatchPairs(tt.in)
		if err != nil {
			t.Fatalf("MatchPairs(%q) error: %v", tt.in, err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("MatchPairs(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("MatchPairs(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestNoPartnerMatchesRuns(t *testing.T) {
	tests := []string{"(..)", ".(.)..", "((.))..((..))"}

	for _, db := range tests {
		tree, err := Parse("runs", strings.Repeat("A", len(db)), db)
		if err != nil {
			t.Fatalf("Parse(%q): %v", db, err)
		}
		inRun := make(map[int]bool)
		for _, u := range tree.Runs() {
			for _, i := range u.Idx {
				inRun[i] = true
			}
		}
		for i, j := range tree.Pairs {
			if (j == NoPartner) != inRun[i] {
				t.Errorf("%q: position %d partner %d, in run %v", db, i, j, inRun[i])
			}
		}
	}
}

func TestMatchPairsSymmetric(t *testing.T) {
	inputs := []string{
		"((((....))))",
		"..((..((...))..((...))..))..",
		"(((.((...)).((...)).((...)).)))",
		"((.(..).))",
		".(.).(.).",
	}
	for _, in := range inputs {
		p, err := MatchPairs(in)
		if err != nil {
			t.Fatalf("MatchPairs(%q) error: %v", in, err)
		}
		seen := make(map[int]int)
		for i, j := range p {
			if j == NoPartner {
				continue
			}
			if p[j] != i {
				t.Errorf("MatchPairs(%q): p[%d]=%d but p[%d]=%d", in, i, j, j, p[j])
			}
			if prev, ok := seen[j]; ok {
				t.Errorf("MatchPairs(%q): %d is partner of both %d and %d", in, j, prev, i)
			}
			seen[j] = i
		}
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v", in, err)
		}
		if got := p.DotBracket(); got != in {
			t.Errorf("DotBracket() = %q, want %q", got, in)
		}
	}
}

func TestMatchPairsUnbalanced(t *testing.T) {
	tests := []struct {
		in           string
		wantPos      int
		wantUnclosed int
	}{
		{")((", 0, 0},
		{"(((", 0, 3},
		{"(.))", 3, 0},
		{"..((.)", 2, 1},
	}

	for _, tt := range tests {
		_, err := MatchPairs(tt.in)
		var ube *UnbalancedBracketError
		if !errors.As(err, &ube) {
			t.Fatalf("MatchPairs(%q) error = %v, want *UnbalancedBracketError", tt.in, err)
		}
		if ube.Pos != tt.wantPos || ube.Unclosed != tt.wantUnclosed {
			t.Errorf("MatchPairs(%q) = {Pos:%d Unclosed:%d}, want {Pos:%d Unclosed:%d}",
				tt.in, ube.Pos, ube.Unclosed, tt.wantPos, tt.wantUnclosed)
		}
		if !errs.Is(err, errs.ErrCodeUnbalancedBracket) {
			t.Errorf("MatchPairs(%q) code = %v", tt.in, errs.GetCode(err))
		}
	}
}

func TestMatchPairsInvalidCharacter(t *testing.T) {
	_, err := MatchPairs("((.[.))")
	if !errs.Is(err, errs.ErrCodeInvalidStructure) {
		t.Errorf("MatchPairs with '[' code = %v, want %v", errs.GetCode(err), errs.ErrCodeInvalidStructure)
	}
}

func TestPairsValidate(t *testing.T) {
	tests := []struct {
		name  string
		pairs Pairs
		ok    bool
	}{
		{"nested", Pairs{5, 4, -1, -1, 1, 0}, true},
		{"all unpaired", Pairs{-1, -1}, true},
		{"out of range", Pairs{7, -1}, false},
		{"negative", Pairs{-4, -1}, false},
		{"self pair", Pairs{-1, 1, -1}, false},
		{"asymmetric", Pairs{3, -1, -1, -1}, false},
		{"crossing", Pairs{2, 3, 0, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pairs.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate(%v) = %v, want ok=%v", tt.pairs, err, tt.ok)
			}
			if err != nil {
				var mse *MalformedStructureError
				if !errors.As(err, &mse) {
					t.Errorf("Validate(%v) error type = %T", tt.pairs, err)
				}
			}
		})
	}
}

func TestPairsCount(t *testing.T) {
	p, _ := MatchPairs("((..)).(.)")
	if got := p.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
}
