// Package compose builds hierarchical letter images.
//
// # Overview
//
// A [Compositor] owns two stroke pipelines driven by the same segment
// dispatch: a grid pipeline that turns the large (macro) letter into an
// activation mask, and a pixel pipeline that renders the small (micro) letter
// as a glyph image. [Compositor.Render] pastes the glyph into every placement
// cell whose mask flag is set.
//
// # Lifecycle
//
//	c, err := compose.New(params)        // placement grid computed once
//	c.SetLarge(letter.A)                  // mask cleared and redrawn
//	c.SetSmall(letter.E)                  // glyph cleared and redrawn
//	if err := c.Render(); err != nil {}   // composite repainted
//	img := c.Image()
//
// The compositor can be reused for any number of letter pairs. It is not safe
// for concurrent use; parallel callers create one compositor per pair.
package compose

import (
	"image"
	"image/color"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hierletters/pkg/core/layout"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/core/render/canvas"
	"github.com/matzehuels/hierletters/pkg/core/render/grid"
	"github.com/matzehuels/hierletters/pkg/core/render/raster"
	"github.com/matzehuels/hierletters/pkg/core/segment"
	"github.com/matzehuels/hierletters/pkg/errors"
)

// DefaultSeed seeds the random source when no option provides one.
const DefaultSeed = uint64(42)

// Params holds the validated geometry and colors of a compositor.
type Params struct {
	LargeSize      image.Point // composite canvas size in pixels
	SmallSize      image.Point // glyph tile size in pixels
	Layout         image.Point // tile columns (X) and rows (Y)
	Thickness      raster.Thickness
	DiagonalOffset float64
	Background     color.Color
	Foreground     color.Color
	RandomSegments int // strokes drawn for letter.Random, clamped to [0,7]
}

// Diagnostic is a non-fatal problem met while drawing.
type Diagnostic struct {
	Code    errors.Code
	Message string
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Compositor) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRand sets the random source used for Random letters.
// The compositor takes ownership of rng.
func WithRand(rng *rand.Rand) Option {
	return func(c *Compositor) {
		if rng != nil {
			c.rng = rng
		}
	}
}

// WithSeed seeds a private PCG source for Random letters.
func WithSeed(seed uint64) Option {
	return func(c *Compositor) { c.rng = NewRand(seed) }
}

// WithCanvas sets the factory used for the glyph and composite canvases.
func WithCanvas(f canvas.Factory) Option {
	return func(c *Compositor) {
		if f != nil {
			c.newCanvas = f
		}
	}
}

// NewRand returns the PCG source used for a seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Compositor renders hierarchical letters for one macro/micro pair at a time.
type Compositor struct {
	params    Params
	logger    *log.Logger
	rng       *rand.Rand
	newCanvas canvas.Factory

	placement layout.Grid
	mask      *grid.Renderer
	glyph     canvas.Canvas
	composite canvas.Canvas

	// macro and micro receive the stroke calls of the two pipelines.
	macro segment.Renderer
	micro segment.Renderer

	large, small       letter.Symbol
	largeSet, smallSet segment.Set
	hasLarge, hasSmall bool

	diagnostics []Diagnostic
}

// New validates p, computes the placement grid and allocates the canvases.
// Tiles that do not fit the large canvas fail with INVALID_LAYOUT naming the
// axis.
func New(p Params, opts ...Option) (*Compositor, error) {
	if p.Background == nil {
		p.Background = color.White
	}
	if p.Foreground == nil {
		p.Foreground = color.Black
	}
	if err := validate(p); err != nil {
		return nil, err
	}

	placement, err := layout.NewGrid(p.LargeSize, p.SmallSize, p.Layout)
	if err != nil {
		return nil, err
	}

	c := &Compositor{
		params:    p,
		logger:    log.NewWithOptions(io.Discard, log.Options{}),
		newCanvas: canvas.New,
		placement: placement,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = NewRand(DefaultSeed)
	}

	c.mask = grid.NewRenderer(p.Layout.X, p.Layout.Y)
	c.glyph = c.newCanvas(p.SmallSize.X, p.SmallSize.Y, p.Background)
	c.composite = c.newCanvas(p.LargeSize.X, p.LargeSize.Y, p.Background)
	c.macro = c.mask
	c.micro = raster.New(c.glyph, raster.Style{
		Thickness:      p.Thickness,
		DiagonalOffset: p.DiagonalOffset,
		Foreground:     p.Foreground,
		Background:     p.Background,
	})
	return c, nil
}

func validate(p Params) error {
	switch {
	case p.LargeSize.X < 1 || p.LargeSize.Y < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "large size must be positive, got %dx%d", p.LargeSize.X, p.LargeSize.Y)
	case p.SmallSize.X < 1 || p.SmallSize.Y < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "small size must be positive, got %dx%d", p.SmallSize.X, p.SmallSize.Y)
	case p.Thickness.Horizontal < 0 || p.Thickness.Vertical < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "stroke thickness cannot be negative")
	}
	return nil
}

// SetLarge clears the activation mask and draws sym into it.
func (c *Compositor) SetLarge(sym letter.Symbol) {
	set := c.resolve(sym)
	c.macro.Reset()
	segment.Apply(c.macro, set)
	c.large, c.largeSet, c.hasLarge = sym, set, true
	c.logger.Debug("Drew macro letter", "letter", sym, "segments", set.String(), "cells", c.mask.Mask().Count())
}

// SetSmall clears the glyph and draws sym into it.
func (c *Compositor) SetSmall(sym letter.Symbol) {
	set := c.resolve(sym)
	c.micro.Reset()
	segment.Apply(c.micro, set)
	c.small, c.smallSet, c.hasSmall = sym, set, true
	c.logger.Debug("Drew micro letter", "letter", sym, "segments", set.String())
}

func (c *Compositor) resolve(sym letter.Symbol) segment.Set {
	set, ok := letter.Resolve(sym, c.params.RandomSegments, c.rng)
	if !ok {
		c.record(unknownLetter(sym))
	}
	return set
}

// LetterDiagnostics returns the diagnostics that drawing macro and micro
// would record for unknown letters, without drawing anything.
func LetterDiagnostics(macro, micro letter.Symbol) []Diagnostic {
	var diags []Diagnostic
	for _, sym := range []letter.Symbol{macro, micro} {
		if !sym.Known() {
			diags = append(diags, unknownLetter(sym))
		}
	}
	return diags
}

func unknownLetter(sym letter.Symbol) Diagnostic {
	err := errors.New(errors.ErrCodeUnknownLetter, "unknown letter %q drawn as filled box", string(sym))
	return Diagnostic{Code: err.Code, Message: err.Message}
}

func (c *Compositor) record(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
	c.logger.Warn(d.Message, "code", d.Code)
}

func (c *Compositor) diagnose(code errors.Code, format string, args ...any) {
	err := errors.New(code, format, args...)
	c.record(Diagnostic{Code: code, Message: err.Message})
}

// Render repaints the composite: background everywhere, then the glyph in
// every active cell. A placement the canvas rejects is skipped and recorded
// as a diagnostic; the remaining cells are still drawn.
func (c *Compositor) Render() error {
	if !c.hasLarge || !c.hasSmall {
		return errors.New(errors.ErrCodeInvalidState, "both letters must be set before rendering")
	}

	c.composite.FillRect(c.composite.Bounds(), c.params.Background)
	glyph := c.glyph.Image()
	c.mask.Mask().Each(func(col, row int) {
		r := c.placement.At(col, row).Image()
		if err := c.composite.Paste(glyph, r); err != nil {
			c.diagnose(errors.GetCode(err), "cell (%d,%d): %s", col, row, errors.UserMessage(err))
		}
	})
	return nil
}

// Compose draws large and small and renders the composite.
func (c *Compositor) Compose(large, small letter.Symbol) (image.Image, error) {
	c.SetLarge(large)
	c.SetSmall(small)
	if err := c.Render(); err != nil {
		return nil, err
	}
	return c.Image(), nil
}

// Image returns the composite canvas pixels. The image is owned by the
// compositor and changes on the next Render.
func (c *Compositor) Image() image.Image { return c.composite.Image() }

// Save writes the composite to path.
func (c *Compositor) Save(path string) error { return c.composite.Save(path) }

// Glyph returns the current micro glyph pixels.
func (c *Compositor) Glyph() image.Image { return c.glyph.Image() }

// Mask returns a copy of the current activation mask.
func (c *Compositor) Mask() *grid.Mask { return c.mask.Mask().Clone() }

// Placement returns the placement grid.
func (c *Compositor) Placement() layout.Grid { return c.placement }

// Params returns the compositor parameters with defaults applied.
func (c *Compositor) Params() Params { return c.params }

// Large returns the macro letter and its stroke set.
func (c *Compositor) Large() (letter.Symbol, segment.Set) { return c.large, c.largeSet }

// Small returns the micro letter and its stroke set.
func (c *Compositor) Small() (letter.Symbol, segment.Set) { return c.small, c.smallSet }

// Diagnostics returns the diagnostics recorded so far.
func (c *Compositor) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.diagnostics...)
}

// ClearDiagnostics forgets recorded diagnostics.
func (c *Compositor) ClearDiagnostics() { c.diagnostics = nil }
