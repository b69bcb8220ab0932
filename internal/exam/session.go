package exam

import (
	"time"

	"github.com/google/uuid"

	"physiq/internal/quizgen"
)

// Session is one in-progress exam run. Not safe for concurrent use;
// the UI drives it from a single goroutine.
type Session struct {
	ID        string
	Questions []quizgen.Question

	// CurrentIndex is the question the candidate is looking at.
	CurrentIndex int

	// Answers maps question index to the selected option index.
	// Unanswered questions have no entry.
	Answers map[int]int

	StartTime time.Time

	// TimeLimit of zero means untimed.
	TimeLimit time.Duration

	// Finished is set by Submit and never cleared.
	Finished   bool
	FinishedAt time.Time

	now func() time.Time
}

// NewSession starts an exam over the given questions.
func NewSession(questions []quizgen.Question, timeLimit time.Duration) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Questions: questions,
		Answers:   make(map[int]int),
		StartTime: time.Now(),
		TimeLimit: timeLimit,
		now:       time.Now,
	}
}

// Current returns the question under the cursor.
func (s *Session) Current() quizgen.Question {
	return s.Questions[s.CurrentIndex]
}

// Answer records the selected option for the current question.
// Re-answering overwrites.
func (s *Session) Answer(option int) {
	if s.Finished || option < 0 || option > 3 {
		return
	}
	s.Answers[s.CurrentIndex] = option
}

// Answered reports whether the question at index has an answer.
func (s *Session) Answered(index int) bool {
	_, ok := s.Answers[index]
	return ok
}

// Next moves the cursor forward, stopping at the last question.
func (s *Session) Next() {
	if s.CurrentIndex < len(s.Questions)-1 {
		s.CurrentIndex++
	}
}

// Prev moves the cursor back, stopping at the first question.
func (s *Session) Prev() {
	if s.CurrentIndex > 0 {
		s.CurrentIndex--
	}
}

// Jump moves the cursor to an arbitrary question.
func (s *Session) Jump(index int) {
	if index >= 0 && index < len(s.Questions) {
		s.CurrentIndex = index
	}
}

// Elapsed returns time since the exam started, frozen once submitted.
func (s *Session) Elapsed() time.Duration {
	if s.Finished {
		return s.FinishedAt.Sub(s.StartTime)
	}
	return s.now().Sub(s.StartTime)
}

// Remaining returns time left on a timed exam, never negative.
// Untimed sessions report zero.
func (s *Session) Remaining() time.Duration {
	if s.TimeLimit <= 0 {
		return 0
	}
	left := s.TimeLimit - s.Elapsed()
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether a timed exam has run out of time.
func (s *Session) Expired() bool {
	return s.TimeLimit > 0 && s.Elapsed() >= s.TimeLimit
}

// Submit finishes the exam and freezes the clock. Idempotent.
func (s *Session) Submit() {
	if s.Finished {
		return
	}
	s.Finished = true
	s.FinishedAt = s.now()
}
