package cli

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/config"
	hio "github.com/matzehuels/hierletters/pkg/io"
	"github.com/matzehuels/hierletters/pkg/observability"
	"github.com/matzehuels/hierletters/pkg/pipeline"
)

// batchFlags holds flags for the batch command.
type batchFlags struct {
	params  paramFlags
	macros  string
	micros  string
	output  string
	suffix  string
	format  string
	scale   int
	workers int
	noCache bool
	refresh bool
}

// batchCommand creates the batch command for rendering every letter pair.
func (c *CLI) batchCommand() *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render every macro × micro letter pair into a directory",
		Long: `Render the cross product of macro and micro letters.

Files are named {macro}-{micro}{suffix}.{ext}. A pair that fails is reported
and the batch continues with the remaining pairs.`,
		Example: `  hierletters batch
  hierletters batch --macros A,H,S --micros E,T -o stimuli
  hierletters batch --format jpg --scale 2 --suffix _big`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.params.apply(cmd, &cfg); err != nil {
				return err
			}
			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			return c.runBatch(cmd, cfg, opts, flags.noCache)
		},
	}

	flags.params.register(cmd)
	cmd.Flags().StringVar(&flags.macros, "macros", "", "comma-separated macro letters (default all letters)")
	cmd.Flags().StringVar(&flags.micros, "micros", "", "comma-separated micro letters (default all letters)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&flags.suffix, "suffix", "", "file name suffix")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: png, jpg, gif, tif, bmp")
	cmd.Flags().IntVar(&flags.scale, "scale", 0, "nearest-neighbour upscale factor")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "parallel renders")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render even if cached")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// options merges cfg with the flags set on cmd.
func (f *batchFlags) options(cmd *cobra.Command, cfg config.Config) (pipeline.Options, error) {
	macros, err := parseSymbols(f.macros)
	if err != nil {
		return pipeline.Options{}, err
	}
	micros, err := parseSymbols(f.micros)
	if err != nil {
		return pipeline.Options{}, err
	}
	params, err := cfg.Params()
	if err != nil {
		return pipeline.Options{}, err
	}

	out := cfg.Output
	fs := cmd.Flags()
	if fs.Changed("output") {
		out.Dir = f.output
	}
	if fs.Changed("suffix") {
		out.Suffix = f.suffix
	}
	if fs.Changed("format") {
		out.Format = f.format
	}
	if fs.Changed("scale") {
		out.Scale = f.scale
	}
	if fs.Changed("workers") {
		out.Workers = f.workers
	}

	opts := pipeline.Options{
		Params:   params,
		Macros:   macros,
		Micros:   micros,
		OutDir:   out.Dir,
		Suffix:   out.Suffix,
		Scale:    out.Scale,
		Seed:     cfg.Seed,
		Workers:  out.Workers,
		Refresh:  f.refresh,
		CacheTTL: cfg.Cache.TTL,
	}
	if out.Format != "" {
		format, err := hio.ParseFormat(out.Format)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Format = format
	}
	return opts, opts.ValidateAndSetDefaults()
}

func (c *CLI) runBatch(cmd *cobra.Command, cfg config.Config, opts pipeline.Options, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, cfg.Cache, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if c.verbose() {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	} else {
		spinner = newSpinner(ctx, os.Stderr, len(opts.Macros)*len(opts.Micros))
		observability.SetPipelineHooks(spinner)
		spinner.Start()
	}
	defer observability.Reset()

	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if result == nil {
		return err
	}

	printBatchResult(result, opts.OutDir)
	return err
}

// printBatchResult summarizes a batch: counts, the output directory, each
// distinct diagnostic and each failed pair.
func printBatchResult(result *pipeline.Result, dir string) {
	written := result.Stats.Rendered + result.Stats.Cached
	if written > 0 {
		printSuccess("Wrote %d images", written)
	} else {
		printError("No images written")
	}
	printFile(dir)
	printStats(result.Stats, result.Duration)

	seen := map[string]bool{}
	var warnings []string
	for _, out := range result.Outputs {
		for _, d := range out.Diagnostics {
			if !seen[d.Message] {
				seen[d.Message] = true
				warnings = append(warnings, d.Message)
			}
		}
	}
	sort.Strings(warnings)
	for _, w := range warnings {
		printWarning("%s", w)
	}

	for _, out := range result.Outputs {
		if out.Err != nil {
			printError("%s: %v", out.Pair, out.Err)
		}
	}
}
