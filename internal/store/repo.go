package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // filter by purpose when non-empty
	Model   string // filter by model when non-empty
	Failed  bool   // only failed requests
}

// LLMRequestRecord is one row of the model request log.
type LLMRequestRecord struct {
	ID           int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// UsageRow aggregates request log rows for one purpose and model pair.
type UsageRow struct {
	Purpose      string
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to the model request log.
type EventRepo interface {
	// AppendLLMRequest records one model API call.
	AppendLLMRequest(ctx context.Context, rec LLMRequestRecord) error

	// QueryLLMEvents returns log rows, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMEvent returns one log row with full request and response
	// bodies, or nil when the id is unknown.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestRecord, error)

	// UsageSummary aggregates the log by purpose and model.
	UsageSummary(ctx context.Context) ([]UsageRow, error)
}

// Attempt is one finished exam run.
type Attempt struct {
	ID               string
	QuestionFile     string
	StartedAt        time.Time
	FinishedAt       time.Time
	TimeLimitSeconds int
	TotalQuestions   int
	Answered         int
	Correct          int
	ScorePercent     float64

	// ByDifficulty maps difficulty label to correct/total counts.
	ByDifficulty map[string][2]int

	// Answers maps question index to the selected option index.
	Answers map[int]int
}

// AttemptRepo persists finished exam attempts.
type AttemptRepo interface {
	// Save stores a finished attempt.
	Save(ctx context.Context, a *Attempt) error

	// List returns attempts, most recent first.
	List(ctx context.Context, limit int) ([]Attempt, error)

	// Get returns one attempt by id, or nil when unknown.
	Get(ctx context.Context, id string) (*Attempt, error)
}
