package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/config"
	"github.com/matzehuels/hierletters/pkg/core/compose"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/core/render/grid"
	"github.com/matzehuels/hierletters/pkg/core/segment"
)

var (
	styleCellOn  = lipgloss.NewStyle().Foreground(colorCyan)
	styleCellOff = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	cellOn  = "██"
	cellOff = "· "
)

// maskFlags holds flags for the mask command.
type maskFlags struct {
	params paramFlags
	plain  bool
}

// maskCommand creates the mask command for previewing tile placement.
func (c *CLI) maskCommand() *cobra.Command {
	var flags maskFlags

	cmd := &cobra.Command{
		Use:   "mask <letter>",
		Short: "Print which grid cells a macro letter activates",
		Long: `Print the tile mask of a macro letter on the configured layout.

Each cell that will receive a small letter is drawn as a block.`,
		Example: `  hierletters mask A
  hierletters mask S --layout 7x9
  hierletters mask Random --seed 3 --plain`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLetters(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.params.apply(cmd, &cfg); err != nil {
				return err
			}

			sym := letter.Parse(args[0])
			mask := letterMask(sym, cfg)
			if flags.plain {
				fmt.Fprint(cmd.OutOrStdout(), mask.String())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), StyleTitle.Render(string(sym))+" "+
				StyleDim.Render(fmt.Sprintf("%dx%d · %d cells", mask.Cols(), mask.Rows(), mask.Count())))
			fmt.Fprintln(cmd.OutOrStdout(), formatMask(mask))
			if !sym.Known() {
				printWarning("Unknown letter %q drawn as a filled block", sym)
			}
			return nil
		},
	}

	flags.params.register(cmd)
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print # and . without colors")

	return cmd
}

// letterMask rasterizes sym on the configured layout. Random samples its
// segments with the configured seed.
func letterMask(sym letter.Symbol, cfg config.Config) *grid.Mask {
	r := grid.NewRenderer(cfg.Layout.Columns, cfg.Layout.Rows)
	set, _ := letter.Resolve(sym, cfg.RandomSegments, compose.NewRand(cfg.Seed))
	segment.Apply(r, set)
	return r.Mask()
}

// formatMask renders m with colored blocks, one line per row.
func formatMask(m *grid.Mask) string {
	lines := strings.Split(strings.TrimSuffix(m.Format(cellOn, cellOff), "\n"), "\n")
	for i, line := range lines {
		line = strings.ReplaceAll(line, cellOn, styleCellOn.Render(cellOn))
		lines[i] = strings.ReplaceAll(line, cellOff, styleCellOff.Render(cellOff))
	}
	return strings.Join(lines, "\n")
}

// uniqueSymbols returns syms without repeats, in order.
func uniqueSymbols(syms ...letter.Symbol) []letter.Symbol {
	seen := make(map[letter.Symbol]bool, len(syms))
	var out []letter.Symbol
	for _, s := range syms {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
