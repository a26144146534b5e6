package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/kintree/pkg/layout"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// StrategyPicker - Interactive strategy selection
// =============================================================================

// StrategyPicker is the bubbletea model for interactive strategy selection.
type StrategyPicker struct {
	Strategies []layout.Strategy
	Cursor     int
	Selected   layout.Strategy
}

// NewStrategyPicker creates a picker with the cursor on initial, when it is
// one of the strategies.
func NewStrategyPicker(strategies []layout.Strategy, initial string) StrategyPicker {
	m := StrategyPicker{Strategies: strategies}
	for i, s := range strategies {
		if string(s) == initial {
			m.Cursor = i
		}
	}
	return m
}

func (m StrategyPicker) Init() tea.Cmd {
	return nil
}

func (m StrategyPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Strategies)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Strategies) > 0 {
				m.Selected = m.Strategies[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StrategyPicker) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Strategy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(m.Strategies))
	for i, s := range m.Strategies {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, string(s), describeStrategy(s)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Strategy", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Strategies))))

	return b.String()
}

// pickStrategy runs the picker and returns the chosen strategy, or "" when
// the user quit without choosing.
func pickStrategy(initial string) (layout.Strategy, error) {
	m := NewStrategyPicker(layout.Strategies(), initial)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", fmt.Errorf("strategy picker: %w", err)
	}
	return final.(StrategyPicker).Selected, nil
}
