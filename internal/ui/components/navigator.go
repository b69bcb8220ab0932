package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"physiq/internal/ui/theme"
)

// Navigator renders the question jump strip: one cell per question,
// marking the current position and which questions are answered.
type Navigator struct {
	Total    int
	Current  int
	Answered func(i int) bool
	PerRow   int
}

// NewNavigator creates a navigator over total questions.
func NewNavigator(total, current int, answered func(i int) bool) Navigator {
	return Navigator{
		Total:    total,
		Current:  current,
		Answered: answered,
		PerRow:   10,
	}
}

// View renders the navigator grid.
func (n Navigator) View() string {
	if n.Total == 0 {
		return ""
	}

	perRow := n.PerRow
	if perRow <= 0 {
		perRow = 10
	}

	var rows []string
	var row []string
	for i := range n.Total {
		cell := fmt.Sprintf(" %2d ", i+1)

		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if n.Answered != nil && n.Answered(i) {
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		if i == n.Current {
			style = lipgloss.NewStyle().
				Foreground(theme.Text).
				Background(theme.Primary).
				Bold(true)
		}

		row = append(row, style.Render(cell))
		if len(row) == perRow {
			rows = append(rows, strings.Join(row, ""))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, strings.Join(row, ""))
	}

	return strings.Join(rows, "\n")
}
