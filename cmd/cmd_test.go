package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abhisek/econiz/internal/catalog"
	"github.com/abhisek/econiz/internal/explain"
	"github.com/abhisek/econiz/internal/llm"
	"github.com/abhisek/econiz/internal/progress"
	"github.com/abhisek/econiz/internal/questiongen"
	"github.com/abhisek/econiz/internal/store"
)

const practiceQuestion = `{
	"question": "Which change shifts the demand curve?",
	"options": {"A": "A price fall", "B": "A rise in income", "C": "A fall in costs", "D": "A subsidy"},
	"correct": "B",
	"explanation": "Income is a non-price determinant.",
	"adaptedDifficulty": 2
}`

const practiceExplanation = `{
	"likelyReasoning": "You linked costs to demand.",
	"misconception": "Costs shift supply, not demand.",
	"correctExplanation": "Income changes what buyers are willing to pay.",
	"keyInsight": "Separate buyer-side from seller-side determinants.",
	"practiceAdvice": "List the non-price determinants of demand."
}`

func testEnv() *env {
	cat := catalog.New([]catalog.Concept{
		{ID: "demand", Name: "Demand", Unit: catalog.UnitMicro, Difficulty: 2},
		{ID: "elasticity", Name: "Elasticity", Unit: catalog.UnitMicro, Difficulty: 3, Prerequisites: []string{"demand"}},
	})
	return &env{
		log:      zap.NewNop(),
		catalog:  cat,
		progress: progress.NewStore(store.NewMemoryKV()),
	}
}

func newTestSession(e *env, mock *llm.MockProvider, input string) (*practiceSession, *bytes.Buffer) {
	var out bytes.Buffer
	return &practiceSession{
		env:       e,
		concept:   e.catalog.MustGet("demand"),
		questions: questiongen.New(mock, questiongen.DefaultConfig()),
		explainer: explain.NewService(mock, explain.DefaultConfig()),
		in:        bufio.NewReader(strings.NewReader(input)),
		out:       &out,
	}, &out
}

func TestPracticeRound_Correct(t *testing.T) {
	e := testEnv()
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(practiceQuestion)})
	s, out := newTestSession(e, mock, "b\n")

	require.NoError(t, s.round(context.Background()))

	assert.Contains(t, out.String(), "Correct!")
	assert.Equal(t, 1, mock.CallCount(), "no explanation for a right answer")

	p := e.progress.Read(context.Background(), "demand")
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, 1, p.Correct)

	history := e.progress.History(context.Background())
	require.Len(t, history, 1)
	assert.True(t, history[0].IsCorrect)
	assert.Equal(t, "B", history[0].StudentAnswer)
	require.NotNil(t, history[0].TimeTaken)
}

func TestPracticeRound_WrongAnswerIsExplained(t *testing.T) {
	e := testEnv()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(practiceQuestion)},
		llm.MockResponse{Content: json.RawMessage(practiceExplanation)},
	)
	s, out := newTestSession(e, mock, "x\nc\n")

	require.NoError(t, s.round(context.Background()))

	assert.Contains(t, out.String(), "Not quite. The answer is B.")
	assert.Contains(t, out.String(), "Costs shift supply, not demand.")
	assert.Equal(t, 2, strings.Count(out.String(), "Your answer (A-D): "), "invalid input re-prompts")

	history := e.progress.History(context.Background())
	require.Len(t, history, 1)
	assert.False(t, history[0].IsCorrect)
	assert.Equal(t, "C", history[0].StudentAnswer)
	assert.Contains(t, string(history[0].PersonalizedExplanation), "keyInsight")
}

func TestPracticeRound_ExplainFailureKeepsGoing(t *testing.T) {
	e := testEnv()
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(practiceQuestion)})
	s, out := newTestSession(e, mock, "A\n")

	require.NoError(t, s.round(context.Background()))
	assert.Contains(t, out.String(), "explain answer")
	assert.Equal(t, 1, e.progress.Read(context.Background(), "demand").Attempts)
}

func TestPracticeRound_GenerationError(t *testing.T) {
	e := testEnv()
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	s, _ := newTestSession(e, mock, "A\n")

	err := s.round(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, 0, e.progress.Read(context.Background(), "demand").Attempts)
}

func TestPracticeRound_EOF(t *testing.T) {
	e := testEnv()
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(practiceQuestion)})
	s, _ := newTestSession(e, mock, "")

	err := s.round(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read answer")
}

func TestPickConcept(t *testing.T) {
	e := testEnv()
	ctx := context.Background()

	c, err := pickConcept(ctx, e, []string{"elasticity"})
	require.NoError(t, err)
	assert.Equal(t, "elasticity", c.ID)

	_, err = pickConcept(ctx, e, []string{"nope"})
	assert.Error(t, err)

	c, err = pickConcept(ctx, e, nil)
	require.NoError(t, err)
	assert.Equal(t, "demand", c.ID, "only demand is available before it is learned")
}

func TestParseOutcome(t *testing.T) {
	for _, s := range []string{"correct", "Right", "y", "1"} {
		ok, err := parseOutcome(s)
		require.NoError(t, err, s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"incorrect", "WRONG", "n", "0"} {
		ok, err := parseOutcome(s)
		require.NoError(t, err, s)
		assert.False(t, ok, s)
	}
	_, err := parseOutcome("maybe")
	assert.Error(t, err)
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0012", formatCost(0.00123))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}

func TestDescribeLLMError(t *testing.T) {
	err := describeLLMError("generate question", &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")})
	assert.Contains(t, err.Error(), "unable to reach the AI service")

	err = describeLLMError("generate question", context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "unable to reach the AI service")

	err = describeLLMError("generate question", errors.New("boom"))
	assert.Equal(t, "generate question: boom", err.Error())
}

func TestListenAddr(t *testing.T) {
	t.Cleanup(func() { _ = rootCmd.PersistentFlags().Set("addr", "") })

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		require.NoError(t, c.ParseFlags(nil), c.Name())
		addr, err := listenAddr(c, "127.0.0.1:8080")
		require.NoError(t, err, c.Name())
		assert.Equal(t, "127.0.0.1:8080", addr, c.Name())
	}

	require.NoError(t, rootCmd.ParseFlags([]string{"--addr", ":9090"}))
	addr, err := listenAddr(rootCmd, "127.0.0.1:8080")
	require.NoError(t, err)
	assert.Equal(t, ":9090", addr)

	require.NoError(t, serveCmd.ParseFlags([]string{"--addr", ":9191"}))
	addr, err = listenAddr(serveCmd, "127.0.0.1:8080")
	require.NoError(t, err)
	assert.Equal(t, ":9191", addr)
}
