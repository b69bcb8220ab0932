// Package app assembles the exam TUI: router, screens, and the
// surrounding frame.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	examcore "physiq/internal/exam"
	"physiq/internal/quizgen"
	"physiq/internal/router"
	"physiq/internal/screen"
	examscreen "physiq/internal/screens/exam"
	"physiq/internal/screens/results"
	"physiq/internal/screens/welcome"
	"physiq/internal/store"
	"physiq/internal/ui/layout"
)

// Options configures an app run.
type Options struct {
	// Bank is the loaded question bank the exam draws from.
	Bank *examcore.Bank

	// Attempts persists finished exams. Nil disables persistence.
	Attempts store.AttemptRepo
}

// Model is the root Bubble Tea model.
type Model struct {
	router *router.Router
	width  int
	height int
}

// newModel wires the screen graph: setup → exam → results.
func newModel(opts Options) Model {
	resultsFactory := func(s *examcore.Session, r examcore.Result, saveErr error) screen.Screen {
		return results.New(s, r, saveErr)
	}
	examFactory := func(pool []quizgen.Question, timeLimit time.Duration) screen.Screen {
		return examscreen.New(pool, timeLimit, opts.Bank.Path, opts.Attempts, resultsFactory)
	}

	setup := welcome.New(&welcome.Bank{
		Source:    opts.Bank.Path,
		Questions: opts.Bank.Questions,
		Counts:    opts.Bank.Counts(),
	}, examFactory)

	return Model{router: router.New(setup)}
}

func (m Model) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	status := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
