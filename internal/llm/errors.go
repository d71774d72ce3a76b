package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit or quota
// error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrNotConfigured indicates the selected provider has no API key, or that
// the provider rejected the key it was given (Err set).
type ErrNotConfigured struct {
	Provider string
	Env      string
	Err      error
}

func (e *ErrNotConfigured) Error() string {
	switch {
	case e.Env == "":
		return "no LLM provider is configured"
	case e.Err != nil:
		return fmt.Sprintf("%s was rejected by the %s provider: %v", e.Env, e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s is not configured (required for the %s provider)", e.Env, e.Provider)
	}
}

func (e *ErrNotConfigured) Unwrap() error { return e.Err }

// statusError maps an HTTP status returned by a provider SDK onto the
// package error types. Anything unrecognised is treated as unavailability.
func statusError(provider string, status int, header http.Header, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return &ErrNotConfigured{Provider: provider, Env: apiKeyEnv[provider], Err: err}
	default:
		return &ErrProviderUnavailable{Err: err}
	}
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates and
// missing headers yield zero, which leaves the delay to the retry backoff.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// ErrorKind buckets provider errors for callers that report them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotConfigured
	KindRateLimit
	KindUnavailable
	KindTimeout
	KindInvalidResponse
)

// Classify returns the kind of err. Deadline expiry is reported as a
// timeout even when a provider wrapped it as unavailability.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var notCfg *ErrNotConfigured
	var rl *ErrRateLimit
	var inv *ErrInvalidResponse
	var maxTok *ErrMaxTokensExceeded
	var unavail *ErrProviderUnavailable

	switch {
	case errors.As(err, &notCfg):
		return KindNotConfigured
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &inv), errors.As(err, &maxTok):
		return KindInvalidResponse
	case errors.As(err, &unavail):
		return KindUnavailable
	default:
		return KindUnknown
	}
}
