// Package letter maps letter symbols to the stroke sets that draw them.
//
// The catalog is a closed, static table: every supported symbol has exactly
// one ordered [segment.Set]. "All" draws a filled box. Unrecognized symbols
// also resolve to a filled box, but [Resolve] reports them as unknown so the
// caller can emit a diagnostic. "Random" has no table entry; [Resolve] samples
// its strokes from a seven-segment repertoire using a caller-owned source.
package letter

import (
	"math/rand/v2"
	"strings"

	"github.com/matzehuels/hierletters/pkg/core/segment"
)

// Symbol names a letter shape. Values outside the catalog are allowed and
// resolve to [segment.Fill].
type Symbol string

// Catalog symbols.
const (
	A      Symbol = "A"
	C      Symbol = "C"
	E      Symbol = "E"
	F      Symbol = "F"
	H      Symbol = "H"
	L      Symbol = "L"
	M      Symbol = "M"
	N      Symbol = "N"
	O      Symbol = "O"
	P      Symbol = "P"
	S      Symbol = "S"
	T      Symbol = "T"
	U      Symbol = "U"
	X      Symbol = "X"
	Y      Symbol = "Y"
	Z      Symbol = "Z"
	All    Symbol = "All"
	Random Symbol = "Random"
)

// MaxRandomSegments is the size of the random repertoire.
const MaxRandomSegments = 7

var shapes = map[Symbol]segment.Set{
	A:   {segment.Left, segment.Right, segment.Top, segment.HorizontalCenter},
	C:   {segment.Top, segment.Left, segment.Bottom},
	E:   {segment.Top, segment.Left, segment.HorizontalCenter, segment.Bottom},
	F:   {segment.Top, segment.Left, segment.HorizontalCenter},
	H:   {segment.Left, segment.Right, segment.HorizontalCenter},
	L:   {segment.Left, segment.Bottom},
	M:   {segment.Left, segment.Right, segment.UpperV},
	N:   {segment.Left, segment.LeftDiagonal, segment.Right},
	O:   {segment.Left, segment.Right, segment.Top, segment.Bottom},
	P:   {segment.Top, segment.Left, segment.UpperRight, segment.HorizontalCenter},
	S:   {segment.Top, segment.UpperLeft, segment.HorizontalCenter, segment.LowerRight, segment.Bottom},
	T:   {segment.Top, segment.VerticalCenter},
	U:   {segment.Left, segment.Right, segment.Bottom},
	X:   {segment.LeftDiagonal, segment.RightDiagonal},
	Y:   {segment.UpperV, segment.LowerVerticalCenter},
	Z:   {segment.Top, segment.RightDiagonal, segment.Bottom},
	All: {segment.Fill},
}

// randomRepertoire is the candidate pool for Random letters.
var randomRepertoire = [MaxRandomSegments]segment.Segment{
	segment.Top,
	segment.UpperLeft,
	segment.UpperRight,
	segment.HorizontalCenter,
	segment.LowerLeft,
	segment.LowerRight,
	segment.Bottom,
}

// Parse normalizes user input into a Symbol. Single letters are upper-cased,
// "all" and "random" match case-insensitively; anything else is kept as typed
// so diagnostics can quote it.
func Parse(s string) Symbol {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(All)):
		return All
	case strings.EqualFold(s, string(Random)):
		return Random
	case len(s) == 1:
		return Symbol(strings.ToUpper(s))
	}
	return Symbol(s)
}

// Known reports whether sym has a catalog entry or is Random.
func (sym Symbol) Known() bool {
	if sym == Random {
		return true
	}
	_, ok := shapes[sym]
	return ok
}

// Lookup returns the catalog stroke set for sym. The boolean is false when
// sym has no table entry, in which case the returned set is {Fill}. Random
// has no table entry.
func Lookup(sym Symbol) (segment.Set, bool) {
	set, ok := shapes[sym]
	if !ok {
		return segment.Set{segment.Fill}, false
	}
	return append(segment.Set(nil), set...), true
}

// Resolve returns the stroke set that draws sym. Random consumes rng to draw
// k segments, see [Sample]; every other symbol goes through [Lookup] and
// leaves rng untouched, so rng may be nil for them. The boolean is false only
// for symbols outside the catalog.
func Resolve(sym Symbol, k int, rng *rand.Rand) (segment.Set, bool) {
	if sym != Random {
		return Lookup(sym)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	return Sample(k, rng), true
}

// Sample draws k distinct segments without replacement from the seven-segment
// repertoire. k is clamped to [0, MaxRandomSegments].
func Sample(k int, rng *rand.Rand) segment.Set {
	k = max(0, min(k, MaxRandomSegments))
	set := make(segment.Set, 0, k)
	for _, i := range rng.Perm(MaxRandomSegments)[:k] {
		set = append(set, randomRepertoire[i])
	}
	return set
}

// Symbols returns the catalog symbols in display order, followed by All and
// Random.
func Symbols() []Symbol {
	return []Symbol{A, C, E, F, H, L, M, N, O, P, S, T, U, X, Y, Z, All, Random}
}

// Letters returns only the single-letter catalog symbols.
func Letters() []Symbol {
	return Symbols()[:16]
}
