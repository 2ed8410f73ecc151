package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hierletters/pkg/core/letter"
)

// letterInfo describes one catalog entry. It is also the JSON shape served
// by GET /letters.
type letterInfo struct {
	Symbol   string   `json:"symbol"`
	Segments []string `json:"segments"`
	Random   bool     `json:"random,omitempty"`
}

// catalog lists every symbol with its stroke set. Random has no fixed set.
func catalog() []letterInfo {
	syms := letter.Symbols()
	out := make([]letterInfo, 0, len(syms))
	for _, sym := range syms {
		info := letterInfo{Symbol: string(sym), Segments: []string{}}
		if sym == letter.Random {
			info.Random = true
		} else {
			set, _ := letter.Lookup(sym)
			info.Segments = set.Strings()
		}
		out = append(out, info)
	}
	return out
}

// lettersCommand creates the letters command listing the catalog.
func (c *CLI) lettersCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "letters",
		Short: "List the supported letters and their strokes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			infos := catalog()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(infos)
			}

			rows := make([][]string, 0, len(infos))
			for _, info := range infos {
				var strokes, cells string
				if info.Random {
					cells = "-"
					strokes = fmt.Sprintf("%d of %d at random", cfg.RandomSegments, letter.MaxRandomSegments)
				} else {
					set, _ := letter.Lookup(letter.Symbol(info.Symbol))
					strokes = set.String()
					cells = strconv.Itoa(letterMask(letter.Symbol(info.Symbol), cfg).Count())
				}
				rows = append(rows, []string{info.Symbol, strokes, cells})
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Letter", "Segments", fmt.Sprintf("Cells (%dx%d)", cfg.Layout.Columns, cfg.Layout.Rows)).
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == -1:
						return headerStyle
					case col == 0:
						return listSelectedStyle
					case col == 2:
						return listDimStyle
					}
					return listNormalStyle
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the catalog as JSON")

	return cmd
}
