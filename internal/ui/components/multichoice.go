package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"physiq/internal/ui/theme"
)

// optionLabels letters the four answer options.
var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is the answer selector for one exam question. The
// correct answer is never revealed while the exam runs; Reveal turns
// on the review rendering.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int

	// Cursor is the highlighted option.
	Cursor int

	// Chosen is the recorded answer, -1 when unanswered.
	Chosen int

	// Reveal renders correct/incorrect colors (results review).
	Reveal bool
}

// NewMultiChoice creates an unanswered selector.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Chosen:       -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and choosing.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Reveal {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", " ":
		m.Chosen = m.Cursor
	case "a", "b", "c", "d":
		idx := int(kmsg.String()[0] - 'a')
		if idx < len(m.Options) {
			m.Cursor = idx
			m.Chosen = idx
		}
	}

	return m, nil
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Reveal {
			prefix = "▸ "
		}

		marker := " "
		if i == m.Chosen {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, optionLabels[i], opt)

		switch {
		case m.Reveal && i == m.CorrectIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case m.Reveal && i == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case m.Reveal:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case i == m.Chosen:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// Answered reports whether an option has been chosen.
func (m MultiChoice) Answered() bool {
	return m.Chosen >= 0
}

// IsCorrect reports whether the chosen answer is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Chosen == m.CorrectIndex
}
