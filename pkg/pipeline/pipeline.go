// Package pipeline renders batches of hierarchical letters to files.
//
// This package implements the batch driver shared by the CLI and the HTTP
// server: it enumerates macro × micro letter pairs, composites each pair,
// encodes the result and writes it into an output directory. By centralizing
// this logic, every entry point names, caches and seeds files the same way.
//
// # Architecture
//
// For every pair the runner:
//
//  1. Computes the artifact cache key from the pair, the compositor
//     parameters, the pair seed, the format and the scale
//  2. Serves the encoded bytes from the cache when present
//  3. Otherwise builds a fresh [compose.Compositor], renders, scales and
//     encodes the composite, and stores the bytes in the cache
//  4. Writes "{macro}-{micro}{suffix}.{ext}" into the output directory
//
// Pairs run on a bounded worker pool. Each pair owns its compositor and its
// random source, seeded from the run seed and the pair, so output does not
// depend on scheduling.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Params: params,
//	    Macros: []letter.Symbol{letter.A, letter.H},
//	    Micros: letter.Letters(),
//	    OutDir: "out",
//	})
//
// A failing pair does not stop the batch; its error is recorded in the
// result and joined into the returned error. Cancelling ctx stops the batch
// between pairs.
package pipeline

import (
	"fmt"
	"hash/fnv"
	"runtime"
	"time"

	"github.com/matzehuels/hierletters/pkg/cache"
	"github.com/matzehuels/hierletters/pkg/core/compose"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/errors"
	hio "github.com/matzehuels/hierletters/pkg/io"
	"github.com/matzehuels/hierletters/pkg/observability"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultOutDir is the default output directory.
	DefaultOutDir = "out"

	// DefaultFormat is the default output format.
	DefaultFormat = hio.PNG

	// DefaultSeed is the default run seed.
	DefaultSeed = compose.DefaultSeed

	// DefaultTTL is how long encoded artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// =============================================================================
// Options - Batch Configuration
// =============================================================================

// Options configures one batch run.
type Options struct {
	Params compose.Params
	Macros []letter.Symbol
	Micros []letter.Symbol

	OutDir string
	Format hio.Format
	Suffix string
	Scale  int

	Seed    uint64
	Workers int

	// Refresh bypasses cache reads; fresh results are still stored.
	Refresh bool

	// CacheTTL is the lifetime of stored artifacts. Zero uses DefaultTTL.
	CacheTTL time.Duration
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Layout fit is checked later by compose.New.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Macros) == 0 || len(o.Micros) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one macro and one micro letter are required")
	}
	for _, s := range append(append([]letter.Symbol(nil), o.Macros...), o.Micros...) {
		if err := errors.ValidateSymbol(string(s)); err != nil {
			return err
		}
	}
	if o.OutDir == "" {
		o.OutDir = DefaultOutDir
	}
	if err := errors.ValidatePath(o.OutDir); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	f, err := hio.ParseFormat(string(o.Format))
	if err != nil {
		return err
	}
	o.Format = f
	if err := errors.ValidateSuffix(o.Suffix); err != nil {
		return err
	}
	if o.Scale < 1 {
		o.Scale = 1
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Workers < 1 {
		o.Workers = runtime.NumCPU()
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultTTL
	}
	return nil
}

// =============================================================================
// Pairs
// =============================================================================

// Pair is one macro/micro letter combination.
type Pair struct {
	Macro letter.Symbol
	Micro letter.Symbol
}

// String returns "macro-micro".
func (p Pair) String() string { return fmt.Sprintf("%s-%s", p.Macro, p.Micro) }

// Pairs returns the cross product of macros and micros, macro-major.
func Pairs(macros, micros []letter.Symbol) []Pair {
	out := make([]Pair, 0, len(macros)*len(micros))
	for _, m := range macros {
		for _, s := range micros {
			out = append(out, Pair{Macro: m, Micro: s})
		}
	}
	return out
}

// FileName returns "{macro}-{micro}{suffix}.{ext}".
func FileName(p Pair, suffix string, f hio.Format) string {
	return fmt.Sprintf("%s-%s%s.%s", p.Macro, p.Micro, suffix, f.Ext())
}

// PairSeed derives the random seed of a pair from the run seed.
func PairSeed(seed uint64, p Pair) uint64 {
	h := fnv.New64a()
	h.Write([]byte(p.String()))
	return seed ^ h.Sum64()
}

// artifactKey returns the cache key of one pair.
func (o *Options) artifactKey(p Pair) string {
	return cache.ArtifactKey(cache.ArtifactKeyOpts{
		Macro:  string(p.Macro),
		Micro:  string(p.Micro),
		Format: string(o.Format),
		Scale:  o.Scale,
		Seed:   PairSeed(o.Seed, p),
		Params: o.Params,
	})
}

// =============================================================================
// Results
// =============================================================================

// Output describes one written file.
type Output struct {
	Pair        Pair
	Path        string
	Size        int
	Cached      bool
	Diagnostics []compose.Diagnostic
	Duration    time.Duration
	Err         error
}

// Result contains the outputs of a batch run, in pair order.
type Result struct {
	RunID    string
	Outputs  []Output
	Stats    observability.BatchStats
	Duration time.Duration
}
