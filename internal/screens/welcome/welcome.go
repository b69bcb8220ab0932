// Package welcome is the exam setup screen: it shows what the loaded
// question bank holds and collects exam size and time limit before
// starting a session.
package welcome

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"physiq/internal/exam"
	"physiq/internal/quizgen"
	"physiq/internal/router"
	"physiq/internal/screen"
	"physiq/internal/ui/components"
	"physiq/internal/ui/layout"
	"physiq/internal/ui/theme"
)

const (
	fieldQuestions = iota
	fieldMinutes
	fieldCount
)

const (
	defaultQuestions = 10
	defaultMinutes   = 30
)

// ExamFactory builds the exam screen once setup is confirmed.
type ExamFactory func(questions []quizgen.Question, timeLimit time.Duration) screen.Screen

// WelcomeScreen collects exam parameters.
type WelcomeScreen struct {
	bank        *Bank
	examFactory ExamFactory

	inputs  [fieldCount]components.TextInput
	focused int
	errMsg  string
}

// Bank is the subset of the loaded question bank the setup form shows
// and draws from.
type Bank struct {
	Source    string
	Questions []quizgen.Question
	Counts    map[quizgen.Difficulty]int
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the setup screen over a loaded bank.
func New(bank *Bank, examFactory ExamFactory) *WelcomeScreen {
	w := &WelcomeScreen{bank: bank, examFactory: examFactory}

	w.inputs[fieldQuestions] = components.NewTextInput(fmt.Sprintf("%d", defaultQuestions), true, 3)
	w.inputs[fieldMinutes] = components.NewTextInput(fmt.Sprintf("%d", defaultMinutes), true, 3)
	w.inputs[fieldMinutes].Model.Blur()

	return w
}

func (w *WelcomeScreen) Title() string { return "Exam Setup" }

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.inputs[fieldQuestions].Init()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w.forward(msg)
	}

	switch kmsg.String() {
	case "tab", "shift+tab", "up", "down":
		w.inputs[w.focused].Model.Blur()
		if kmsg.String() == "shift+tab" || kmsg.String() == "up" {
			w.focused = (w.focused + fieldCount - 1) % fieldCount
		} else {
			w.focused = (w.focused + 1) % fieldCount
		}
		return w, w.inputs[w.focused].Model.Focus()

	case "enter":
		return w.start()
	}

	return w.forward(msg)
}

func (w *WelcomeScreen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	w.inputs[w.focused], cmd = w.inputs[w.focused].Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) start() (screen.Screen, tea.Cmd) {
	total := defaultQuestions
	if v, err := w.inputs[fieldQuestions].NumericValue(); err == nil {
		total = v
	}
	minutes := defaultMinutes
	if v, err := w.inputs[fieldMinutes].NumericValue(); err == nil {
		minutes = v
	}

	if total <= 0 {
		w.errMsg = "exam needs at least one question"
		return w, nil
	}

	bank := &exam.Bank{Path: w.bank.Source, Questions: w.bank.Questions}
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	pool, err := exam.SelectPool(bank, total,
		quizgen.Distribution{quizgen.Easy: 0.5, quizgen.Medium: 0.3, quizgen.Hard: 0.2}, rng)
	if err != nil {
		w.errMsg = err.Error()
		return w, nil
	}

	examScreen := w.examFactory(pool, time.Duration(minutes)*time.Minute)
	return w, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: examScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	title := theme.Title.Render("Physics Exam")
	subtitle := theme.Subtitle.Render(w.bank.Source)

	var mix []string
	for _, d := range quizgen.Difficulties {
		if n := w.bank.Counts[d]; n > 0 {
			badge := lipgloss.NewStyle().
				Foreground(theme.DifficultyColor(string(d))).
				Render(fmt.Sprintf("%s: %d", d, n))
			mix = append(mix, badge)
		}
	}
	bankLine := fmt.Sprintf("%d questions loaded   %s",
		len(w.bank.Questions), strings.Join(mix, "   "))

	form := strings.Join([]string{
		w.fieldLabel("Questions", fieldQuestions) + w.inputs[fieldQuestions].View(),
		w.fieldLabel("Time limit (min, 0 = none)", fieldMinutes) + w.inputs[fieldMinutes].View(),
	}, "\n\n")

	sections := []string{
		title,
		subtitle,
		"",
		theme.Body.Render(bankLine),
		"",
		theme.Card.Render(form),
		"",
		theme.Hint.Render("Tab to switch fields, Enter to start"),
	}
	if w.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (w *WelcomeScreen) fieldLabel(label string, field int) string {
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if field == w.focused {
		style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	}
	return style.Render(fmt.Sprintf("%-28s", label+":"))
}

// KeyHints implements screen.KeyHintProvider.
func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Start exam"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
