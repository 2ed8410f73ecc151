package grid

import (
	"strings"
	"testing"

	"github.com/matzehuels/hierletters/pkg/core/segment"
)

// parseMask builds a mask from rows of '#' and '.'.
func parseMask(t *testing.T, rows ...string) *Mask {
	t.Helper()
	m := NewMask(len(rows[0]), len(rows))
	for r, line := range rows {
		for c, ch := range line {
			m.Set(c, r, ch == '#')
		}
	}
	return m
}

func TestStrokes5x5(t *testing.T) {
	tests := []struct {
		name string
		set  segment.Set
		want []string
	}{
		{
			name: "A",
			set:  segment.Set{segment.Left, segment.Right, segment.Top, segment.HorizontalCenter},
			want: []string{
				"#####",
				"#...#",
				"#####",
				"#...#",
				"#...#",
			},
		},
		{
			name: "S",
			set:  segment.Set{segment.Top, segment.UpperLeft, segment.HorizontalCenter, segment.LowerRight, segment.Bottom},
			want: []string{
				"#####",
				"#....",
				"#####",
				"....#",
				"#####",
			},
		},
		{
			name: "P",
			set:  segment.Set{segment.Top, segment.Left, segment.UpperRight, segment.HorizontalCenter},
			want: []string{
				"#####",
				"#...#",
				"#####",
				"#....",
				"#....",
			},
		},
		{
			name: "X",
			set:  segment.Set{segment.LeftDiagonal, segment.RightDiagonal},
			want: []string{
				"#...#",
				".#.#.",
				"..#..",
				".#.#.",
				"#...#",
			},
		},
		{
			name: "Y",
			set:  segment.Set{segment.UpperV, segment.LowerVerticalCenter},
			want: []string{
				"#...#",
				".#.#.",
				"..#..",
				"..#..",
				"..#..",
			},
		},
		{
			name: "T",
			set:  segment.Set{segment.Top, segment.VerticalCenter},
			want: []string{
				"#####",
				"..#..",
				"..#..",
				"..#..",
				"..#..",
			},
		},
		{
			name: "lower halves",
			set:  segment.Set{segment.LowerLeft, segment.LowerRight},
			want: []string{
				".....",
				".....",
				".....",
				"#...#",
				"#...#",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(5, 5)
			segment.Apply(r, tt.set)
			want := parseMask(t, tt.want...)
			if !r.Mask().Equal(want) {
				t.Errorf("mask =\n%s\nwant\n%s", r.Mask(), want)
			}
		})
	}
}

func TestReferenceLetterACount(t *testing.T) {
	r := NewRenderer(5, 5)
	segment.Apply(r, segment.Set{segment.Left, segment.Right, segment.Top, segment.HorizontalCenter})

	m := r.Mask()
	for row := 0; row < 5; row++ {
		if !m.At(0, row) || !m.At(4, row) {
			t.Errorf("columns 0 and 4 must be active at row %d", row)
		}
	}
	for col := 0; col < 5; col++ {
		if !m.At(col, 0) || !m.At(col, 2) {
			t.Errorf("rows 0 and 2 must be active at column %d", col)
		}
	}
	if got := m.Count(); got != 16 {
		t.Errorf("Count() = %d, want 16", got)
	}
}

func TestHalvesPartitionEdges(t *testing.T) {
	for rows := 1; rows <= 9; rows++ {
		upper := NewRenderer(3, rows)
		upper.UpperLeft()
		lower := NewRenderer(3, rows)
		lower.LowerLeft()
		full := NewRenderer(3, rows)
		full.Left()

		for row := 0; row < rows; row++ {
			u, l := upper.Mask().At(0, row), lower.Mask().At(0, row)
			if u && l {
				t.Errorf("rows=%d: row %d in both halves", rows, row)
			}
			if (u || l) != full.Mask().At(0, row) {
				t.Errorf("rows=%d: row %d halves do not cover Left", rows, row)
			}
		}
	}
}

func TestDiagonalNonSquare(t *testing.T) {
	r := NewRenderer(7, 3)
	r.LeftDiagonal()
	m := r.Mask()

	if !m.At(0, 0) || !m.At(6, 2) {
		t.Fatalf("diagonal must touch both corners:\n%s", m)
	}
	for col := 0; col < 7; col++ {
		n := 0
		for row := 0; row < 3; row++ {
			if m.At(col, row) {
				n++
			}
		}
		if n != 1 {
			t.Errorf("column %d has %d active cells, want 1:\n%s", col, n, m)
		}
	}
}

func TestFillReset(t *testing.T) {
	r := NewRenderer(4, 3)
	r.Fill()
	if got := r.Mask().Count(); got != 12 {
		t.Errorf("after Fill Count() = %d, want 12", got)
	}
	r.Reset()
	if got := r.Mask().Count(); got != 0 {
		t.Errorf("after Reset Count() = %d, want 0", got)
	}
}

func TestStrokesIdempotent(t *testing.T) {
	set := segment.Set{segment.Top, segment.LeftDiagonal, segment.UpperV}

	once := NewRenderer(6, 8)
	segment.Apply(once, set)
	twice := NewRenderer(6, 8)
	segment.Apply(twice, set)
	segment.Apply(twice, set)

	if !once.Mask().Equal(twice.Mask()) {
		t.Errorf("applying twice changed the mask:\n%s\nvs\n%s", once.Mask(), twice.Mask())
	}
}

func TestDegenerateMask(t *testing.T) {
	r := NewRenderer(0, 0)
	segment.Apply(r, segment.All())
	if r.Mask().Count() != 0 {
		t.Error("empty mask should stay empty")
	}
}

func TestMaskHelpers(t *testing.T) {
	m := parseMask(t, "#.", ".#")

	if m.At(-1, 0) || m.At(5, 5) {
		t.Error("out-of-range cells must be inactive")
	}
	m.Set(9, 9, true)

	clone := m.Clone()
	clone.Set(1, 0, true)
	if m.At(1, 0) {
		t.Error("Clone must not share storage")
	}
	if m.Equal(clone) {
		t.Error("Equal should detect differing cells")
	}
	if m.Equal(NewMask(3, 2)) {
		t.Error("Equal should detect differing shapes")
	}

	var visited []string
	m.Each(func(col, row int) {
		visited = append(visited, string(rune('0'+col))+string(rune('0'+row)))
	})
	if strings.Join(visited, " ") != "00 11" {
		t.Errorf("Each visited %v", visited)
	}

	if got := m.Format("X", " "); got != "X \n X\n" {
		t.Errorf("Format() = %q", got)
	}
}
