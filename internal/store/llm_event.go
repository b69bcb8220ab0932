package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// eventRepo implements EventRepo over the llm_requests table.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, rec LLMRequestRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, request_body, response_body, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Provider, rec.Model, rec.Purpose,
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		rec.Success, rec.RequestBody, rec.ResponseBody, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save model request: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error) {
	var (
		conds []string
		args  []any
	)
	if opts.Purpose != "" {
		conds = append(conds, "purpose = ?")
		args = append(args, opts.Purpose)
	}
	if opts.Model != "" {
		conds = append(conds, "model = ?")
		args = append(args, opts.Model)
	}
	if opts.Failed {
		conds = append(conds, "success = 0")
	}

	query := `SELECT id, timestamp, provider, model, purpose,
		input_tokens, output_tokens, latency_ms, success, error_message
		FROM llm_requests`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query model requests: %w", err)
	}
	defer rows.Close()

	var recs []LLMRequestRecord
	for rows.Next() {
		var rec LLMRequestRecord
		if err := rows.Scan(&rec.ID, &rec.Timestamp, &rec.Provider, &rec.Model,
			&rec.Purpose, &rec.InputTokens, &rec.OutputTokens,
			&rec.LatencyMs, &rec.Success, &rec.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan model request: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestRecord, error) {
	var rec LLMRequestRecord
	err := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, provider, model, purpose,
			input_tokens, output_tokens, latency_ms, success,
			request_body, response_body, error_message
		FROM llm_requests WHERE id = ?`, id,
	).Scan(&rec.ID, &rec.Timestamp, &rec.Provider, &rec.Model, &rec.Purpose,
		&rec.InputTokens, &rec.OutputTokens, &rec.LatencyMs, &rec.Success,
		&rec.RequestBody, &rec.ResponseBody, &rec.ErrorMessage)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get model request %d: %w", id, err)
	}
	return &rec, nil
}

func (r *eventRepo) UsageSummary(ctx context.Context) ([]UsageRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, model,
			COUNT(*),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END),
			COALESCE(SUM(input_tokens), 0),
			COALESCE(SUM(output_tokens), 0),
			COALESCE(CAST(AVG(latency_ms) AS INTEGER), 0)
		FROM llm_requests
		GROUP BY purpose, model
		ORDER BY purpose, model`)
	if err != nil {
		return nil, fmt.Errorf("usage summary: %w", err)
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var u UsageRow
		if err := rows.Scan(&u.Purpose, &u.Model, &u.Requests, &u.Failures,
			&u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
