// Package exam turns a generated question bank into timed, scored exam
// sessions.
package exam

import (
	"encoding/json"
	"fmt"
	"os"

	"physiq/internal/quizgen"
)

// Bank is a loaded question file, indexed by difficulty for pool
// selection.
type Bank struct {
	Path      string
	Questions []quizgen.Question
}

// LoadBank reads and validates a question JSON file.
func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}

	var questions []quizgen.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse question file %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question file %s is empty", path)
	}

	for i, q := range questions {
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex > 3 {
			return nil, fmt.Errorf("question %d has correct index %d, want 0-3", i+1, q.CorrectIndex)
		}
	}

	return &Bank{Path: path, Questions: questions}, nil
}

// ByDifficulty groups the bank's questions by difficulty label.
func (b *Bank) ByDifficulty() map[quizgen.Difficulty][]quizgen.Question {
	out := make(map[quizgen.Difficulty][]quizgen.Question)
	for _, q := range b.Questions {
		out[q.Difficulty] = append(out[q.Difficulty], q)
	}
	return out
}

// Counts returns how many questions the bank holds per difficulty.
func (b *Bank) Counts() map[quizgen.Difficulty]int {
	out := make(map[quizgen.Difficulty]int)
	for _, q := range b.Questions {
		out[q.Difficulty]++
	}
	return out
}
