package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/hierletters/pkg/config"
	"github.com/matzehuels/hierletters/pkg/core/letter"
	"github.com/matzehuels/hierletters/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LetterPickerModel - Interactive macro/micro selection
// =============================================================================

// pickStage is the letter currently being chosen.
type pickStage int

const (
	pickMacro pickStage = iota
	pickMicro
)

// LetterPickerModel is the bubbletea model for choosing a letter pair. The
// first selection picks the macro letter, the second the micro letter.
type LetterPickerModel struct {
	Symbols  []letter.Symbol
	Cursor   int
	Stage    pickStage
	Macro    letter.Symbol
	Selected *pipeline.Pair

	preview config.Config
}

// NewLetterPickerModel creates a picker over the whole catalog, previewing
// masks on the default layout.
func NewLetterPickerModel() LetterPickerModel {
	return LetterPickerModel{
		Symbols: letter.Symbols(),
		preview: config.Default(),
	}
}

func (m LetterPickerModel) Init() tea.Cmd {
	return nil
}

func (m LetterPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Symbols)-1 {
			m.Cursor++
		}
	case "backspace":
		if m.Stage == pickMicro {
			m.Stage = pickMacro
		}
	case "enter":
		sym := m.Symbols[m.Cursor]
		if m.Stage == pickMacro {
			m.Macro = sym
			m.Stage = pickMicro
			return m, nil
		}
		m.Selected = &pipeline.Pair{Macro: m.Macro, Micro: sym}
		return m, tea.Quit
	}
	return m, nil
}

func (m LetterPickerModel) View() string {
	var b strings.Builder

	title := "Select Macro Letter"
	if m.Stage == pickMicro {
		title = fmt.Sprintf("Select Micro Letter for %s", m.Macro)
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  ⌫ back  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.Symbols))
	for i, sym := range m.Symbols {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		strokes := "random"
		if sym != letter.Random {
			set, _ := letter.Lookup(sym)
			strokes = set.String()
		}
		rows[i] = []string{cursor, string(sym), strokes}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Letter", "Segments").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return listSelectedStyle
			}
			return listNormalStyle
		})

	preview := formatMask(letterMask(m.Symbols[m.Cursor], m.preview))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, t.Render(), "  ", preview))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Symbols))))

	return b.String()
}
