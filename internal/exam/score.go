package exam

import (
	"physiq/internal/quizgen"
	"physiq/internal/store"
)

// DifficultyScore is the correct/total tally for one difficulty.
type DifficultyScore struct {
	Correct int
	Total   int
}

// Result is the scored outcome of a finished session.
type Result struct {
	TotalQuestions int
	Answered       int
	Correct        int
	Incorrect      int
	Skipped        int
	Percentage     float64
	ByDifficulty   map[quizgen.Difficulty]DifficultyScore
}

// Score tallies a session's answers against the correct indices.
func Score(s *Session) Result {
	r := Result{
		TotalQuestions: len(s.Questions),
		ByDifficulty:   make(map[quizgen.Difficulty]DifficultyScore),
	}

	for i, q := range s.Questions {
		ds := r.ByDifficulty[q.Difficulty]
		ds.Total++

		answer, ok := s.Answers[i]
		if !ok {
			r.Skipped++
			r.ByDifficulty[q.Difficulty] = ds
			continue
		}
		r.Answered++
		if answer == q.CorrectIndex {
			r.Correct++
			ds.Correct++
		} else {
			r.Incorrect++
		}
		r.ByDifficulty[q.Difficulty] = ds
	}

	if r.TotalQuestions > 0 {
		r.Percentage = float64(r.Correct) / float64(r.TotalQuestions) * 100
	}
	return r
}

// ToAttempt converts a finished session and its score into a storable
// attempt record.
func ToAttempt(s *Session, r Result, questionFile string) *store.Attempt {
	byDiff := make(map[string][2]int, len(r.ByDifficulty))
	for d, ds := range r.ByDifficulty {
		byDiff[string(d)] = [2]int{ds.Correct, ds.Total}
	}

	answers := make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		answers[k] = v
	}

	return &store.Attempt{
		ID:               s.ID,
		QuestionFile:     questionFile,
		StartedAt:        s.StartTime,
		FinishedAt:       s.FinishedAt,
		TimeLimitSeconds: int(s.TimeLimit.Seconds()),
		TotalQuestions:   r.TotalQuestions,
		Answered:         r.Answered,
		Correct:          r.Correct,
		ScorePercent:     r.Percentage,
		ByDifficulty:     byDiff,
		Answers:          answers,
	}
}
