package quizgen

import (
	"fmt"
	"time"
)

// Difficulty is the difficulty label attached to a question.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists all difficulty labels in canonical order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty converts a string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be Easy, Medium, or Hard", s)
}

// Question is a validated multiple-choice question generated from a
// diagram image. Immutable once created; a batch serializes its
// questions as a flat JSON array.
type Question struct {
	// QuestionText is the question prompt shown to the candidate.
	QuestionText string `json:"question_text"`

	// ImagePath is the canonical URL or local path of the diagram.
	// Always overwritten by the pipeline; the model's value is ignored.
	ImagePath string `json:"image_path"`

	// ImageFilename is the diagram's base filename, kept for reference.
	ImageFilename string `json:"image_filename,omitempty"`

	// Options holds exactly 4 answer options.
	Options []string `json:"option_text"`

	// CorrectIndex is the index (0-3) of the correct option.
	CorrectIndex int `json:"correct_answer_index"`

	// Difficulty is the difficulty assigned by the allocator. The
	// model's self-reported difficulty is overwritten to match.
	Difficulty Difficulty `json:"difficulty_level"`

	// Explanation says why the correct answer is right.
	Explanation string `json:"explanation"`

	// Topic is the main concept covered. Defaults to "Physics".
	Topic string `json:"topic"`

	// Subtopic is the specific area within Topic. Defaults to "General".
	Subtopic string `json:"subtopic"`
}

// Distribution maps difficulty labels to the desired proportion of
// questions. Ratios are expected to sum to roughly 1.0 but are
// tolerated when they do not; allocation corrects the drift.
type Distribution map[Difficulty]float64

// ImageOutcome records how a single image fared in a batch run.
type ImageOutcome struct {
	Status        string `json:"status"` // "success" or "failed"
	Key           string `json:"key"`
	URL           string `json:"url"`
	QuestionCount int    `json:"question_count"`
	Error         string `json:"error,omitempty"`
}

// ProcessingStats aggregates counters for one batch run. Created fresh
// per run and written once at the end, next to the question file.
type ProcessingStats struct {
	TotalImages    int                     `json:"total_images"`
	Successful     int                     `json:"successful"`
	Failed         int                     `json:"failed"`
	TotalQuestions int                     `json:"total_questions"`
	StartTime      time.Time               `json:"start_time"`
	EndTime        time.Time               `json:"end_time"`
	Source         string                  `json:"source"`
	Distribution   map[Difficulty]int      `json:"difficulty_distribution"`
	ImageResults   map[string]ImageOutcome `json:"image_results"`
	SuccessRate    float64                 `json:"success_rate"`
}
