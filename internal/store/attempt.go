package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// attemptRepo implements AttemptRepo over the exam_attempts table.
type attemptRepo struct {
	db *sql.DB
}

func (r *attemptRepo) Save(ctx context.Context, a *Attempt) error {
	byDiff, err := json.Marshal(a.ByDifficulty)
	if err != nil {
		return fmt.Errorf("encode difficulty breakdown: %w", err)
	}
	answers, err := json.Marshal(stringKeys(a.Answers))
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO exam_attempts
			(id, question_file, started_at, finished_at, time_limit_seconds,
			 total_questions, answered, correct, score_percent,
			 by_difficulty, answers)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.QuestionFile, a.StartedAt, a.FinishedAt, a.TimeLimitSeconds,
		a.TotalQuestions, a.Answered, a.Correct, a.ScorePercent,
		string(byDiff), string(answers),
	)
	if err != nil {
		return fmt.Errorf("save exam attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) List(ctx context.Context, limit int) ([]Attempt, error) {
	query := `SELECT id, question_file, started_at, finished_at,
		time_limit_seconds, total_questions, answered, correct,
		score_percent, by_difficulty, answers
		FROM exam_attempts ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list exam attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		a, err := scanAttempt(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*Attempt, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, question_file, started_at, finished_at,
			time_limit_seconds, total_questions, answered, correct,
			score_percent, by_difficulty, answers
		FROM exam_attempts WHERE id = ?`, id)

	a, err := scanAttempt(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func scanAttempt(scan func(...any) error) (*Attempt, error) {
	var (
		a       Attempt
		byDiff  string
		answers string
	)
	if err := scan(&a.ID, &a.QuestionFile, &a.StartedAt, &a.FinishedAt,
		&a.TimeLimitSeconds, &a.TotalQuestions, &a.Answered, &a.Correct,
		&a.ScorePercent, &byDiff, &answers); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(byDiff), &a.ByDifficulty); err != nil {
		return nil, fmt.Errorf("decode difficulty breakdown: %w", err)
	}
	var strAnswers map[string]int
	if err := json.Unmarshal([]byte(answers), &strAnswers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	a.Answers = intKeys(strAnswers)

	return &a, nil
}

// JSON objects key on strings, so answer indices round-trip through
// string keys.
func stringKeys(m map[int]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[strconv.Itoa(k)] = v
	}
	return out
}

func intKeys(m map[string]int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[i] = v
	}
	return out
}
