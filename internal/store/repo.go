package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Get when the key has no value.
var ErrNotFound = errors.New("store: key not found")

// KV is a minimal byte-blob key-value store.
type KV interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	Purpose string // exact purpose match, empty for all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event by ID, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	// LLMUsage aggregates events at or after since (zero for all) per
	// purpose and model, ordered by purpose then model.
	LLMUsage(ctx context.Context, since time.Time) ([]UsageRow, error)
}

// UsageRow is aggregated usage for one purpose and model pair.
type UsageRow struct {
	Purpose      string
	Model        string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
