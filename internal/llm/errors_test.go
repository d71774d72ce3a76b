package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"not configured", &ErrNotConfigured{Provider: "gemini", Env: "GEMINI_API_KEY"}, KindNotConfigured},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, KindRateLimit},
		{"wrapped rate limit", fmt.Errorf("generate: %w", &ErrRateLimit{}), KindRateLimit},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("down")}, KindUnavailable},
		{"deadline inside unavailable", &ErrProviderUnavailable{Err: context.DeadlineExceeded}, KindTimeout},
		{"invalid", &ErrInvalidResponse{Err: errors.New("bad")}, KindInvalidResponse},
		{"truncated", &ErrMaxTokensExceeded{}, KindInvalidResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestErrNotConfigured_Message(t *testing.T) {
	err := &ErrNotConfigured{Provider: "gemini", Env: "GEMINI_API_KEY"}
	want := "GEMINI_API_KEY is not configured (required for the gemini provider)"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestErrNotConfigured_RejectedKey(t *testing.T) {
	cause := errors.New("401 invalid x-api-key")
	err := &ErrNotConfigured{Provider: "anthropic", Env: "ECONIZ_ANTHROPIC_API_KEY", Err: cause}
	want := "ECONIZ_ANTHROPIC_API_KEY was rejected by the anthropic provider: 401 invalid x-api-key"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("cause should unwrap")
	}
}

func TestStatusError(t *testing.T) {
	cause := errors.New("upstream")
	tests := []struct {
		status int
		header http.Header
		want   ErrorKind
	}{
		{http.StatusTooManyRequests, http.Header{"Retry-After": {"3"}}, KindRateLimit},
		{http.StatusUnauthorized, nil, KindNotConfigured},
		{http.StatusForbidden, nil, KindNotConfigured},
		{http.StatusBadGateway, nil, KindUnavailable},
		{http.StatusBadRequest, nil, KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := statusError(ProviderGrok, tt.status, tt.header, cause)
			if got := Classify(err); got != tt.want {
				t.Errorf("Classify = %d, want %d", got, tt.want)
			}
			if !errors.Is(err, cause) {
				t.Error("cause should unwrap")
			}
		})
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"12", 12 * time.Second},
		{" 1 ", time.Second},
		{"0", 0},
		{"-4", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
		{"", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		h.Set("Retry-After", tt.value)
		if got := retryAfter(h); got != tt.want {
			t.Errorf("retryAfter(%q) = %s, want %s", tt.value, got, tt.want)
		}
	}
	if got := retryAfter(nil); got != 0 {
		t.Errorf("nil header gave %s", got)
	}
}
