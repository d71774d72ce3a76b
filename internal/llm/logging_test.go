package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/econiz/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "econiz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLogging_RecordsEvents(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 120, OutputTokens: 80}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, ProviderMock, repo, nil)

	ctx := WithPurpose(context.Background(), PurposeQuestion)
	_, err := p.Generate(ctx, Request{})
	require.NoError(t, err)
	_, err = p.Generate(WithPurpose(context.Background(), PurposeReview), Request{})
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	// Newest first.
	assert.Equal(t, PurposeReview, events[0].Purpose)
	assert.False(t, events[0].Success)
	assert.Contains(t, events[0].ErrorMessage, "rate limited")

	assert.Equal(t, PurposeQuestion, events[1].Purpose)
	assert.True(t, events[1].Success)
	assert.Equal(t, "mock", events[1].Model)
	assert.Equal(t, 120, events[1].InputTokens)
	assert.Equal(t, 80, events[1].OutputTokens)
}

func TestLogging_NilRepoStillLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, zap.New(core))

	_, err := p.Generate(WithPurpose(context.Background(), PurposeExplanation), Request{})
	require.NoError(t, err)

	entries := logs.FilterMessage("LLM request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, PurposeExplanation, entries[0].ContextMap()["purpose"])
}

func TestNewProvider_MockStack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())
}

func TestNewProvider_RejectsMissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini

	_, err := NewProvider(context.Background(), cfg, nil, nil)
	assert.Equal(t, KindNotConfigured, Classify(err))
}
