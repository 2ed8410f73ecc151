package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hierletters/pkg/cache"
	"github.com/matzehuels/hierletters/pkg/core/compose"
	"github.com/matzehuels/hierletters/pkg/errors"
	hio "github.com/matzehuels/hierletters/pkg/io"
	"github.com/matzehuels/hierletters/pkg/observability"
)

// cacheKeyType labels artifact events in cache hooks.
const cacheKeyType = "artifact"

// Runner executes batches with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Cache:  c,
		Logger: logger,
	}
}

// Execute renders every macro × micro pair of opts into opts.OutDir.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	// Fail fast on a misfit layout instead of once per pair.
	if _, err := compose.New(opts.Params); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", opts.OutDir)
	}

	pairs := Pairs(opts.Macros, opts.Micros)
	result := &Result{
		RunID:   uuid.NewString(),
		Outputs: make([]Output, len(pairs)),
	}
	logger := r.Logger.With("run", result.RunID[:8])
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnBatchStart(ctx, result.RunID, len(pairs))
	logger.Debug("Batch started", "pairs", len(pairs), "workers", opts.Workers, "dir", opts.OutDir)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	var mu sync.Mutex
	for i, p := range pairs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := r.writePair(gctx, opts, p, logger)
			hooks.OnPairComplete(gctx, string(p.Macro), string(p.Micro), out.Cached, out.Duration, out.Err)

			mu.Lock()
			defer mu.Unlock()
			result.Outputs[i] = out
			switch {
			case out.Err != nil:
				result.Stats.Failed++
			case out.Cached:
				result.Stats.Cached++
				result.Stats.Bytes += int64(out.Size)
			default:
				result.Stats.Rendered++
				result.Stats.Bytes += int64(out.Size)
			}
			return nil
		})
	}
	waitErr := g.Wait()

	result.Duration = time.Since(start)
	hooks.OnBatchComplete(ctx, result.RunID, result.Stats, result.Duration)
	logger.Debug("Batch finished",
		"rendered", result.Stats.Rendered,
		"cached", result.Stats.Cached,
		"failed", result.Stats.Failed,
		"duration", result.Duration)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	if waitErr != nil {
		return result, waitErr
	}
	var failures []error
	for _, out := range result.Outputs {
		if out.Err != nil {
			failures = append(failures, fmt.Errorf("%s: %w", out.Pair, out.Err))
		}
	}
	return result, stderrors.Join(failures...)
}

// writePair renders or fetches one pair and writes it to disk.
func (r *Runner) writePair(ctx context.Context, opts Options, p Pair, logger *log.Logger) Output {
	start := time.Now()
	out := Output{
		Pair: p,
		Path: filepath.Join(opts.OutDir, FileName(p, opts.Suffix, opts.Format)),
	}

	data, cached, diags, err := r.encodePair(ctx, opts, p, logger)
	out.Cached, out.Diagnostics = cached, diags
	if err == nil {
		err = hio.WriteFile(out.Path, data)
	}
	out.Size = len(data)
	out.Err = err
	out.Duration = time.Since(start)
	return out
}

// RenderPair returns the encoded composite of one pair, using the cache.
// The boolean reports whether the bytes came from the cache.
func (r *Runner) RenderPair(ctx context.Context, opts Options, p Pair) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	data, cached, _, err := r.encodePair(ctx, opts, p, r.Logger)
	return data, cached, err
}

func (r *Runner) encodePair(ctx context.Context, opts Options, p Pair, logger *log.Logger) ([]byte, bool, []compose.Diagnostic, error) {
	key := opts.artifactKey(p)
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("Cache read failed", "pair", p, "err", err)
		}
		if err == nil && hit {
			hooks.OnCacheHit(ctx, cacheKeyType)
			return data, true, compose.LetterDiagnostics(p.Macro, p.Micro), nil
		}
		hooks.OnCacheMiss(ctx, cacheKeyType)
	}

	c, err := compose.New(opts.Params,
		compose.WithSeed(PairSeed(opts.Seed, p)),
		compose.WithLogger(logger.With("pair", p.String())))
	if err != nil {
		return nil, false, nil, err
	}
	img, err := c.Compose(p.Macro, p.Micro)
	if err != nil {
		return nil, false, nil, err
	}
	data, err := hio.Bytes(hio.Scale(img, opts.Scale), opts.Format)
	if err != nil {
		return nil, false, nil, err
	}

	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		logger.Warn("Cache write failed", "pair", p, "err", err)
	} else {
		hooks.OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return data, false, c.Diagnostics(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
