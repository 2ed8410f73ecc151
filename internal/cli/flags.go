package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/config"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/errors"
)

// paramFlags are the compositor settings every rendering command accepts.
// Only flags given on the command line override the loaded config.
type paramFlags struct {
	large      string
	small      string
	layout     string
	thickness  int
	offset     float64
	foreground string
	background string
	random     int
	seed       uint64
}

func (f *paramFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.large, "large", "", "composite size as WIDTHxHEIGHT (e.g. 190x250)")
	fs.StringVar(&f.small, "small", "", "tile size as WIDTHxHEIGHT (e.g. 28x36)")
	fs.StringVar(&f.layout, "layout", "", "tile grid as COLUMNSxROWS (e.g. 5x5)")
	fs.IntVar(&f.thickness, "thickness", 0, "stroke thickness in tile pixels")
	fs.Float64Var(&f.offset, "diagonal-offset", 0, "diagonal stroke inset in pixels")
	fs.StringVar(&f.foreground, "fg", "", "stroke color (hex)")
	fs.StringVar(&f.background, "bg", "", "background color (hex)")
	fs.IntVar(&f.random, "random-segments", 0, "segments drawn for the Random letter")
	fs.Uint64Var(&f.seed, "seed", 0, "random seed")
}

// apply writes the flags that were set on cmd into cfg and revalidates it.
func (f *paramFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("large") {
		w, h, err := parseDims("large", f.large)
		if err != nil {
			return err
		}
		cfg.Large = config.Size{Width: w, Height: h}
	}
	if fs.Changed("small") {
		w, h, err := parseDims("small", f.small)
		if err != nil {
			return err
		}
		cfg.Small = config.Size{Width: w, Height: h}
	}
	if fs.Changed("layout") {
		c, r, err := parseDims("layout", f.layout)
		if err != nil {
			return err
		}
		cfg.Layout = config.Layout{Columns: c, Rows: r}
	}
	if fs.Changed("thickness") {
		cfg.Thickness.Horizontal = f.thickness
		cfg.Thickness.Vertical = f.thickness
	}
	if fs.Changed("diagonal-offset") {
		cfg.DiagonalOffset = f.offset
	}
	if fs.Changed("fg") {
		cfg.Foreground = f.foreground
	}
	if fs.Changed("bg") {
		cfg.Background = f.background
	}
	if fs.Changed("random-segments") {
		cfg.RandomSegments = f.random
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	return cfg.Validate()
}

// parseDims parses "AxB" into two positive integers.
func parseDims(name, s string) (int, int, error) {
	a, b, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "--%s must look like 5x5, got %q", name, s)
	}
	x, errA := strconv.Atoi(a)
	y, errB := strconv.Atoi(b)
	if errA != nil || errB != nil || x < 1 || y < 1 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "--%s must be two positive integers, got %q", name, s)
	}
	return x, y, nil
}

// parseSymbols splits a comma-separated letter list. An empty list selects
// every catalog letter.
func parseSymbols(s string) ([]letter.Symbol, error) {
	if strings.TrimSpace(s) == "" {
		return letter.Letters(), nil
	}
	var out []letter.Symbol
	for _, part := range strings.Split(s, ",") {
		sym := letter.Parse(part)
		if err := errors.ValidateSymbol(string(sym)); err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}
