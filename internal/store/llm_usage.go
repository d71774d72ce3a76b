package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) LLMUsage(ctx context.Context, since time.Time) ([]UsageRow, error) {
	q := `SELECT purpose, model, COUNT(*),
		COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END), 0),
		COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0),
		CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)
		FROM llm_events`
	var args []any
	if !since.IsZero() {
		q += ` WHERE timestamp >= ?`
		args = append(args, formatTS(since))
	}
	q += ` GROUP BY purpose, model ORDER BY purpose, model`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var u UsageRow
		if err := rows.Scan(&u.Purpose, &u.Model, &u.Calls, &u.Failures,
			&u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
