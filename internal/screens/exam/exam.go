// Package exam renders a running exam session: one question at a time,
// a jump navigator, the countdown clock, and the submit flow.
package exam

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	examcore "physiq/internal/exam"
	"physiq/internal/quizgen"
	"physiq/internal/router"
	"physiq/internal/screen"
	"physiq/internal/store"
	"physiq/internal/ui/components"
	"physiq/internal/ui/layout"
)

const tickInterval = time.Second

type tickMsg time.Time

// ResultsFactory builds the results screen for a finished session.
type ResultsFactory func(session *examcore.Session, result examcore.Result, saveErr error) screen.Screen

// ExamScreen drives one exam session.
type ExamScreen struct {
	session  *examcore.Session
	choice   components.MultiChoice
	attempts store.AttemptRepo
	results  ResultsFactory

	questionFile  string
	confirmSubmit bool
}

var _ screen.Screen = (*ExamScreen)(nil)

// New starts an exam screen over a selected question pool. attempts
// may be nil, in which case the run is not persisted.
func New(pool []quizgen.Question, timeLimit time.Duration, questionFile string, attempts store.AttemptRepo, results ResultsFactory) *ExamScreen {
	s := examcore.NewSession(pool, timeLimit)
	e := &ExamScreen{
		session:      s,
		attempts:     attempts,
		results:      results,
		questionFile: questionFile,
	}
	e.syncChoice()
	return e
}

func (e *ExamScreen) Title() string {
	return fmt.Sprintf("Question %d of %d", e.session.CurrentIndex+1, len(e.session.Questions))
}

// Status implements screen.StatusProvider: the header clock.
func (e *ExamScreen) Status() string {
	if e.session.TimeLimit > 0 {
		return "⏱ " + layout.FormatClock(int(e.session.Remaining().Seconds()))
	}
	return "⏱ " + layout.FormatClock(int(e.session.Elapsed().Seconds()))
}

func (e *ExamScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (e *ExamScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if e.session.Expired() {
			return e.finish()
		}
		return e, tick()

	case tea.KeyMsg:
		return e.handleKey(msg)
	}

	return e, nil
}

func (e *ExamScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if e.confirmSubmit {
		switch msg.String() {
		case "y", "enter":
			return e.finish()
		case "n", "esc":
			e.confirmSubmit = false
		}
		return e, nil
	}

	switch msg.String() {
	case "left", "p":
		e.storeAnswer()
		e.session.Prev()
		e.syncChoice()
		return e, nil

	case "right", "n":
		e.storeAnswer()
		e.session.Next()
		e.syncChoice()
		return e, nil

	case "s":
		e.storeAnswer()
		e.confirmSubmit = true
		return e, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		e.storeAnswer()
		e.session.Jump(int(msg.String()[0]-'1'))
		e.syncChoice()
		return e, nil

	case "0":
		e.storeAnswer()
		e.session.Jump(9)
		e.syncChoice()
		return e, nil
	}

	var cmd tea.Cmd
	e.choice, cmd = e.choice.Update(msg)
	e.storeAnswer()
	return e, cmd
}

// storeAnswer copies the component's chosen option into the session.
func (e *ExamScreen) storeAnswer() {
	if e.choice.Answered() {
		e.session.Answer(e.choice.Chosen)
	}
}

// syncChoice rebuilds the selector for the current question, restoring
// a previously recorded answer.
func (e *ExamScreen) syncChoice() {
	q := e.session.Current()
	e.choice = components.NewMultiChoice(q.QuestionText, q.Options, q.CorrectIndex)
	if prev, ok := e.session.Answers[e.session.CurrentIndex]; ok {
		e.choice.Chosen = prev
		e.choice.Cursor = prev
	}
}

func (e *ExamScreen) finish() (screen.Screen, tea.Cmd) {
	e.storeAnswer()
	e.session.Submit()
	result := examcore.Score(e.session)

	var saveErr error
	if e.attempts != nil {
		attempt := examcore.ToAttempt(e.session, result, e.questionFile)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		saveErr = e.attempts.Save(ctx, attempt)
	}

	resultsScreen := e.results(e.session, result, saveErr)
	return e, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: resultsScreen}
	}
}

// KeyHints implements screen.KeyHintProvider.
func (e *ExamScreen) KeyHints() []layout.KeyHint {
	if e.confirmSubmit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Submit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Option"},
		{Key: "Enter", Description: "Answer"},
		{Key: "←→", Description: "Question"},
		{Key: "1-9", Description: "Jump"},
		{Key: "S", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
