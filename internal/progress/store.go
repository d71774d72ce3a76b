package progress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/store"
)

// Persisted blob keys.
const (
	ProgressKey = "econiz:progress:v1"
	HistoryKey  = "econiz:history:v1"
)

// Store reads and writes learner progress through a KV. It never returns
// storage errors: an unavailable or failing KV degrades every operation to
// its default result and logs a warning.
type Store struct {
	kv  store.KV
	log *zap.Logger
	now func() time.Time

	mu      sync.Mutex
	entropy io.Reader
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for storage warnings.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore returns a Store over kv. A nil kv yields a Store that persists
// nothing.
func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.entropy = ulid.Monotonic(rand.New(rand.NewSource(s.now().UnixNano())), 0)
	return s
}

// Read returns the record for conceptID, or a zero default.
func (s *Store) Read(ctx context.Context, conceptID string) ConceptProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProgress(ctx).Get(conceptID)
}

// Snapshot returns every stored record keyed by concept ID.
func (s *Store) Snapshot(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadProgress(ctx)
}

// RecordAnswer applies one answer to conceptID and returns the new record.
// The record is returned even when it could not be persisted.
func (s *Store) RecordAnswer(ctx context.Context, conceptID string, correct bool) ConceptProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.loadProgress(ctx)
	updated := snap.Get(conceptID).Record(correct, s.now())
	snap[conceptID] = updated
	s.save(ctx, ProgressKey, snap)
	return updated
}

// Reset deletes all progress and history.
func (s *Store) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, ProgressKey, HistoryKey); err != nil {
		s.log.Warn("progress reset failed", zap.Error(err))
	}
}

// AddHistory records an answered question at the head of the history log.
func (s *Store) AddHistory(ctx context.Context, in NewHistoryEntry) HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry := HistoryEntry{
		ID:            ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		Timestamp:     now,
		ConceptID:     in.ConceptID,
		ConceptName:   in.ConceptName,
		Question:      in.Question,
		Options:       in.Options,
		StudentAnswer: in.StudentAnswer,
		CorrectAnswer: in.CorrectAnswer,
		IsCorrect:     in.StudentAnswer == in.CorrectAnswer,
		TimeTaken:     in.TimeTaken,
		Explanation:   in.Explanation,
	}

	history := append([]HistoryEntry{entry}, s.loadHistory(ctx)...)
	if len(history) > MaxHistory {
		history = history[:MaxHistory]
	}
	s.save(ctx, HistoryKey, history)
	return entry
}

// History returns the history log, most recent first.
func (s *Store) History(ctx context.Context) []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadHistory(ctx)
}

// AttachExplanation stores a personalized explanation on the entry with the
// given ID. It reports false when no such entry exists.
func (s *Store) AttachExplanation(ctx context.Context, id string, explanation any) bool {
	raw, err := json.Marshal(explanation)
	if err != nil {
		s.log.Warn("encode explanation", zap.String("history_id", id), zap.Error(err))
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.loadHistory(ctx)
	for i := range history {
		if history[i].ID == id {
			history[i].PersonalizedExplanation = raw
			s.save(ctx, HistoryKey, history)
			return true
		}
	}
	return false
}

// ClearHistory deletes the history log only.
func (s *Store) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, HistoryKey); err != nil {
		s.log.Warn("clear history failed", zap.Error(err))
	}
}

func (s *Store) loadProgress(ctx context.Context) Snapshot {
	var snap Snapshot
	if !s.load(ctx, ProgressKey, &snap) || snap == nil {
		return Snapshot{}
	}
	return snap
}

func (s *Store) loadHistory(ctx context.Context) []HistoryEntry {
	var history []HistoryEntry
	if !s.load(ctx, HistoryKey, &history) {
		return nil
	}
	return history
}

// load decodes the blob at key into dst. It reports false when the blob is
// absent, unreadable or corrupt.
func (s *Store) load(ctx context.Context, key string, dst any) bool {
	if s.kv == nil {
		return false
	}
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		s.log.Warn("storage read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Warn("discarding corrupt blob", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Store) save(ctx context.Context, key string, v any) {
	if s.kv == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("encode blob", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		s.log.Warn("storage write failed", zap.String("key", key), zap.Error(err))
	}
}
