package exam

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"physiq/internal/ui/components"
	"physiq/internal/ui/theme"
)

func (e *ExamScreen) View(width, height int) string {
	if e.confirmSubmit {
		return e.confirmView(width, height)
	}

	q := e.session.Current()

	badge := lipgloss.NewStyle().
		Foreground(theme.DifficultyColor(string(q.Difficulty))).
		Bold(true).
		Render(fmt.Sprintf("[%s]", q.Difficulty))
	topicLine := theme.Hint.Render(fmt.Sprintf("%s · %s", q.Topic, q.Subtopic))

	imageLine := ""
	if q.ImageFilename != "" {
		imageLine = theme.Hint.Render("Diagram: " + q.ImageFilename)
	}

	card := theme.Card.Width(min(width-4, 90)).Render(e.choice.View())

	nav := components.NewNavigator(len(e.session.Questions), e.session.CurrentIndex,
		e.session.Answered).View()

	progress := components.NewProgressBar("Answered",
		float64(len(e.session.Answers))/float64(len(e.session.Questions)),
		true, min(width-8, 60)).View()

	sections := []string{
		badge + "  " + topicLine,
	}
	if imageLine != "" {
		sections = append(sections, imageLine)
	}
	sections = append(sections, "", card, "", nav, "", progress)

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (e *ExamScreen) confirmView(width, height int) string {
	answered := len(e.session.Answers)
	total := len(e.session.Questions)

	lines := []string{
		theme.Title.Render("Submit exam?"),
		"",
		theme.Body.Render(fmt.Sprintf("%d of %d questions answered", answered, total)),
	}
	if answered < total {
		lines = append(lines,
			theme.Incorrect.Render(fmt.Sprintf("%d unanswered questions will score zero", total-answered)))
	}
	lines = append(lines, "", theme.Hint.Render("y to submit, n to keep going"))

	box := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
