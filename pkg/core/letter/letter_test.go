package letter

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/hierletters/pkg/core/segment"
)

func TestLookupCatalog(t *testing.T) {
	tests := []struct {
		sym  Symbol
		want segment.Set
	}{
		{A, segment.Set{segment.Left, segment.Right, segment.Top, segment.HorizontalCenter}},
		{O, segment.Set{segment.Left, segment.Right, segment.Top, segment.Bottom}},
		{S, segment.Set{segment.Top, segment.UpperLeft, segment.HorizontalCenter, segment.LowerRight, segment.Bottom}},
		{Y, segment.Set{segment.UpperV, segment.LowerVerticalCenter}},
		{All, segment.Set{segment.Fill}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sym), func(t *testing.T) {
			got, ok := Lookup(tt.sym)
			if !ok {
				t.Fatalf("Lookup(%s) reported unknown", tt.sym)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Lookup(%s) = %v, want %v", tt.sym, got, tt.want)
			}
		})
	}
}

func TestEveryLetterLooksUp(t *testing.T) {
	for _, sym := range Letters() {
		set, ok := Lookup(sym)
		if !ok {
			t.Errorf("Lookup(%s) reported unknown", sym)
			continue
		}
		if len(set) == 0 {
			t.Errorf("Lookup(%s) returned an empty set", sym)
		}
		if set.Contains(segment.Fill) || set.Contains(segment.Reset) {
			t.Errorf("Lookup(%s) = %v should not contain Fill or Reset", sym, set)
		}
		seen := map[segment.Segment]bool{}
		for _, s := range set {
			if seen[s] {
				t.Errorf("Lookup(%s) repeats %v", sym, s)
			}
			seen[s] = true
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, sym := range []Symbol{"Q", "", "alpha", Random} {
		got, ok := Lookup(sym)
		if ok {
			t.Errorf("Lookup(%q) should report unknown", sym)
		}
		if !slices.Equal(got, segment.Set{segment.Fill}) {
			t.Errorf("Lookup(%q) = %v, want [Fill]", sym, got)
		}
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	set, _ := Lookup(A)
	set[0] = segment.Bottom

	again, _ := Lookup(A)
	if again[0] != segment.Left {
		t.Error("mutating a resolved set must not change the catalog")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Symbol
	}{
		{"a", A},
		{" E ", E},
		{"all", All},
		{"RANDOM", Random},
		{"q", "Q"},
		{"Alpha", "Alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Parse(tt.in); got != tt.want {
				t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	if !A.Known() || !All.Known() || !Random.Known() {
		t.Error("catalog symbols should be known")
	}
	if Symbol("Q").Known() {
		t.Error("Q should be unknown")
	}
}

func TestSampleClampsCount(t *testing.T) {
	tests := []struct {
		k    int
		want int
	}{
		{-3, 0},
		{0, 0},
		{4, 4},
		{7, 7},
		{12, 7},
	}

	for _, tt := range tests {
		rng := rand.New(rand.NewPCG(1, 2))
		if got := len(Sample(tt.k, rng)); got != tt.want {
			t.Errorf("len(Sample(%d)) = %d, want %d", tt.k, got, tt.want)
		}
	}
}

func TestSampleDistinctFromRepertoire(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 50 {
		set := Sample(5, rng)
		seen := map[segment.Segment]bool{}
		for _, s := range set {
			if seen[s] {
				t.Fatalf("Sample returned duplicate %v in %v", s, set)
			}
			seen[s] = true
			if !slices.Contains(randomRepertoire[:], s) {
				t.Fatalf("Sample returned %v outside the repertoire", s)
			}
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := Sample(4, rand.New(rand.NewPCG(42, 42^0xdeadbeef)))
	b := Sample(4, rand.New(rand.NewPCG(42, 42^0xdeadbeef)))
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}

func TestResolve(t *testing.T) {
	t.Run("catalog", func(t *testing.T) {
		got, ok := Resolve(H, 4, nil)
		want, _ := Lookup(H)
		if !ok || !slices.Equal(got, want) {
			t.Errorf("Resolve(H) = %v, %v, want %v, true", got, ok, want)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		got, ok := Resolve("Q", 4, rand.New(rand.NewPCG(1, 2)))
		if ok || !slices.Equal(got, segment.Set{segment.Fill}) {
			t.Errorf("Resolve(Q) = %v, %v, want [Fill], false", got, ok)
		}
	})

	t.Run("random consumes the source", func(t *testing.T) {
		got, ok := Resolve(Random, 4, rand.New(rand.NewPCG(9, 9)))
		if !ok {
			t.Fatal("Resolve(Random) reported unknown")
		}
		want := Sample(4, rand.New(rand.NewPCG(9, 9)))
		if !slices.Equal(got, want) {
			t.Errorf("Resolve(Random) = %v, want %v", got, want)
		}
	})

	t.Run("random without source", func(t *testing.T) {
		got, ok := Resolve(Random, 3, nil)
		if !ok || len(got) != 3 {
			t.Errorf("Resolve(Random, 3, nil) = %v, %v", got, ok)
		}
	})
}

func TestSymbols(t *testing.T) {
	if got := len(Letters()); got != 16 {
		t.Errorf("len(Letters()) = %d, want 16", got)
	}
	syms := Symbols()
	if syms[len(syms)-2] != All || syms[len(syms)-1] != Random {
		t.Errorf("Symbols() should end with All, Random: %v", syms)
	}
}
