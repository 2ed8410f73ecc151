package cli

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/config"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	hio "github.com/matzehuels/hierletters/pkg/io"
	"github.com/matzehuels/hierletters/pkg/pipeline"
)

// renderFlags holds flags for the render command.
type renderFlags struct {
	params      paramFlags
	output      string
	format      string
	scale       int
	noCache     bool
	refresh     bool
	interactive bool
	preview     bool
}

// renderCommand creates the render command for writing one composite.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [macro] [micro]",
		Short: "Render one hierarchical letter",
		Long: `Render a large (macro) letter built from small (micro) letters.

The output format follows the --output extension unless --format is given.
Use -i to pick both letters interactively.`,
		Example: `  hierletters render A E
  hierletters render H S -o stimuli/H-S.jpg --scale 2
  hierletters render All Random --seed 7
  hierletters render -i`,
		Args:              cobra.RangeArgs(0, 2),
		ValidArgsFunction: completeLetters(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.params.apply(cmd, &cfg); err != nil {
				return err
			}

			pair, ok, err := c.choosePair(args, flags.interactive)
			if err != nil || !ok {
				return err
			}
			return c.runRender(cmd, cfg, pair, flags)
		},
	}

	flags.params.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (default {dir}/{macro}-{micro}{suffix}.{ext})")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: png, jpg, gif, tif, bmp")
	cmd.Flags().IntVar(&flags.scale, "scale", 0, "nearest-neighbour upscale factor")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "pick letters interactively")
	cmd.Flags().BoolVar(&flags.preview, "preview", false, "print the tile mask after rendering")
	cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// choosePair returns the pair named by args, or asks for it interactively.
// The boolean is false when the user quit the picker.
func (c *CLI) choosePair(args []string, interactive bool) (pipeline.Pair, bool, error) {
	if len(args) == 2 {
		return pipeline.Pair{Macro: letter.Parse(args[0]), Micro: letter.Parse(args[1])}, true, nil
	}
	if !interactive {
		return pipeline.Pair{}, false, fmt.Errorf("render needs a macro and a micro letter (or -i)")
	}

	final, err := tea.NewProgram(NewLetterPickerModel()).Run()
	if err != nil {
		return pipeline.Pair{}, false, fmt.Errorf("letter picker: %w", err)
	}
	m := final.(LetterPickerModel)
	if m.Selected == nil {
		printInfo("Cancelled")
		return pipeline.Pair{}, false, nil
	}
	return *m.Selected, true, nil
}

func (c *CLI) runRender(cmd *cobra.Command, cfg config.Config, pair pipeline.Pair, flags renderFlags) error {
	ctx := cmd.Context()

	format, err := renderFormat(cfg, flags)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}
	scale := cfg.Output.Scale
	if cmd.Flags().Changed("scale") {
		scale = flags.scale
	}

	runner, err := c.newRunner(ctx, cfg.Cache, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	data, cached, err := runner.RenderPair(ctx, pipeline.Options{
		Params:   params,
		Macros:   []letter.Symbol{pair.Macro},
		Micros:   []letter.Symbol{pair.Micro},
		OutDir:   cfg.Output.Dir,
		Format:   format,
		Scale:    scale,
		Seed:     cfg.Seed,
		Refresh:  flags.refresh,
		CacheTTL: cfg.Cache.TTL,
	}, pair)
	if err != nil {
		return err
	}

	path := flags.output
	if path == "" {
		path = filepath.Join(cfg.Output.Dir, pipeline.FileName(pair, cfg.Output.Suffix, format))
	}
	if err := hio.WriteFile(path, data); err != nil {
		return err
	}
	prog.done("Rendered " + pair.String())

	printSuccess("Rendered %s", StyleHighlight.Render(pair.String()))
	printFile(path)
	printSource(len(data), cached)

	for _, sym := range uniqueSymbols(pair.Macro, pair.Micro) {
		if !sym.Known() {
			printWarning("Unknown letter %q drawn as a filled block", sym)
		}
	}

	if flags.preview {
		mask := letterMask(pair.Macro, cfg)
		fmt.Fprintln(cmd.OutOrStdout(), formatMask(mask))
	}
	return nil
}

// renderFormat picks the format from --format, then the --output extension,
// then the config.
func renderFormat(cfg config.Config, flags renderFlags) (hio.Format, error) {
	switch {
	case flags.format != "":
		return hio.ParseFormat(flags.format)
	case flags.output != "":
		return hio.FormatFromPath(flags.output)
	}
	return cfg.Format()
}
