// Package results shows a finished exam's score and a per-question
// review with the correct answers revealed.
package results

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	examcore "physiq/internal/exam"
	"physiq/internal/quizgen"
	"physiq/internal/screen"
	"physiq/internal/ui/components"
	"physiq/internal/ui/layout"
	"physiq/internal/ui/theme"
)

// ResultsScreen shows the score summary and lets the candidate page
// through their answers.
type ResultsScreen struct {
	session *examcore.Session
	result  examcore.Result
	saveErr error

	// reviewing switches from the summary to the question review.
	reviewing bool
	reviewIdx int
}

var _ screen.Screen = (*ResultsScreen)(nil)

// New creates the results screen for a finished session.
func New(session *examcore.Session, result examcore.Result, saveErr error) *ResultsScreen {
	return &ResultsScreen{session: session, result: result, saveErr: saveErr}
}

func (r *ResultsScreen) Title() string {
	if r.reviewing {
		return fmt.Sprintf("Review %d of %d", r.reviewIdx+1, r.result.TotalQuestions)
	}
	return "Results"
}

func (r *ResultsScreen) Init() tea.Cmd { return nil }

func (r *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch kmsg.String() {
	case "r":
		r.reviewing = !r.reviewing
	case "left", "p", "up", "k":
		if r.reviewing && r.reviewIdx > 0 {
			r.reviewIdx--
		}
	case "right", "n", "down", "j":
		if r.reviewing && r.reviewIdx < r.result.TotalQuestions-1 {
			r.reviewIdx++
		}
	case "q":
		return r, tea.Quit
	}

	return r, nil
}

func (r *ResultsScreen) View(width, height int) string {
	if r.reviewing {
		return r.reviewView(width, height)
	}
	return r.summaryView(width, height)
}

func (r *ResultsScreen) summaryView(width, height int) string {
	verdict := theme.Correct
	if r.result.Percentage < 50 {
		verdict = theme.Incorrect
	}

	lines := []string{
		theme.Title.Render("Exam Complete"),
		"",
		verdict.Render(fmt.Sprintf("Score: %d / %d  (%.1f%%)",
			r.result.Correct, r.result.TotalQuestions, r.result.Percentage)),
		theme.Body.Render(fmt.Sprintf("Answered %d   Incorrect %d   Skipped %d",
			r.result.Answered, r.result.Incorrect, r.result.Skipped)),
		theme.Body.Render("Time: " + layout.FormatClock(int(r.session.Elapsed().Seconds()))),
		"",
	}

	for _, d := range quizgen.Difficulties {
		ds, ok := r.result.ByDifficulty[d]
		if !ok || ds.Total == 0 {
			continue
		}
		pct := float64(ds.Correct) / float64(ds.Total)
		label := lipgloss.NewStyle().
			Foreground(theme.DifficultyColor(string(d))).
			Render(fmt.Sprintf("%-7s %d/%d", d, ds.Correct, ds.Total))
		bar := components.NewProgressBar("", pct, true, 30).View()
		lines = append(lines, label+"  "+bar)
	}

	if r.saveErr != nil {
		lines = append(lines, "",
			theme.Incorrect.Render("attempt not saved: "+r.saveErr.Error()))
	}

	lines = append(lines, "", theme.Hint.Render("r to review answers, q to quit"))

	box := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (r *ResultsScreen) reviewView(width, height int) string {
	q := r.session.Questions[r.reviewIdx]

	choice := components.NewMultiChoice(q.QuestionText, q.Options, q.CorrectIndex)
	choice.Reveal = true
	if answer, ok := r.session.Answers[r.reviewIdx]; ok {
		choice.Chosen = answer
	}

	var verdict string
	answer, answered := r.session.Answers[r.reviewIdx]
	switch {
	case !answered:
		verdict = theme.Hint.Render("skipped")
	case answer == q.CorrectIndex:
		verdict = theme.Correct.Render("correct")
	default:
		verdict = theme.Incorrect.Render("incorrect")
	}

	badge := lipgloss.NewStyle().
		Foreground(theme.DifficultyColor(string(q.Difficulty))).
		Bold(true).
		Render(fmt.Sprintf("[%s]", q.Difficulty))

	sections := []string{
		badge + "  " + verdict,
		"",
		theme.Card.Width(min(width-4, 90)).Render(choice.View()),
		"",
		theme.Body.Render("Explanation: " + q.Explanation),
		"",
		theme.Hint.Render("←→ browse, r for summary, q to quit"),
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// KeyHints implements screen.KeyHintProvider.
func (r *ResultsScreen) KeyHints() []layout.KeyHint {
	if r.reviewing {
		return []layout.KeyHint{
			{Key: "←→", Description: "Browse"},
			{Key: "R", Description: "Summary"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "R", Description: "Review"},
		{Key: "Q", Description: "Quit"},
	}
}
