package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"google.golang.org/genai"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return &GeminiProvider{client: client, model: "gemini-2.5-flash"}
}

func geminiReply(body map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}
}

func geminiCandidate(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     120,
			"candidatesTokenCount": 60,
			"totalTokenCount":      180,
		},
	}
}

func geminiError(code int, status string, details ...map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": code, "message": status, "status": status, "details": details},
		})
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply(geminiCandidate(
		`{"question":"Which policy shifts AS to the right?","correct":"C"}`, "STOP",
	)))

	resp, err := p.Generate(context.Background(), questionRequest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 60 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" || resp.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGeminiProvider_Truncated(t *testing.T) {
	p := newTestGeminiProvider(t, geminiReply(geminiCandidate(`{"question":"Outline the J-curve eff`, "MAX_TOKENS")))

	_, err := p.Generate(context.Background(), questionRequest)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_Blocked(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
	}{
		{"prompt feedback", map[string]any{"promptFeedback": map[string]any{"blockReason": "SAFETY"}}},
		{"no candidates", map[string]any{"candidates": []any{}}},
		{"safety stop", geminiCandidate("", "SAFETY")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGeminiProvider(t, geminiReply(tt.body))
			_, err := p.Generate(context.Background(), questionRequest)
			if Classify(err) != KindInvalidResponse {
				t.Fatalf("expected invalid response, got %v", err)
			}
		})
	}
}

func TestGeminiProvider_RateLimitRetryDelay(t *testing.T) {
	p := newTestGeminiProvider(t, geminiError(http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", map[string]any{
		"@type":      "type.googleapis.com/google.rpc.RetryInfo",
		"retryDelay": "32s",
	}))

	_, err := p.Generate(context.Background(), questionRequest)
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
	if rl.RetryAfter != 32*time.Second {
		t.Fatalf("expected a 32s retry hint, got %s", rl.RetryAfter)
	}
}

func TestGeminiProvider_InvalidKey(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    400,
				"message": "API key not valid. Please pass a valid API key.",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}
	p := newTestGeminiProvider(t, handler)

	_, err := p.Generate(context.Background(), questionRequest)
	var notCfg *ErrNotConfigured
	if !errors.As(err, &notCfg) || notCfg.Env != "ECONIZ_GEMINI_API_KEY" {
		t.Fatalf("expected a rejected Gemini key, got: %T (%v)", err, err)
	}
}

func TestGeminiProvider_ServerError(t *testing.T) {
	p := newTestGeminiProvider(t, geminiError(http.StatusServiceUnavailable, "UNAVAILABLE"))

	_, err := p.Generate(context.Background(), questionRequest)
	if Classify(err) != KindUnavailable {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema_Review(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition":     map[string]any{"type": "string", "description": "One-sentence definition"},
			"keyPoints":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
			"correct":        map[string]any{"type": "string", "enum": []any{"A", "B", "C", "D"}},
			"difficulty":     map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
			"hasDiagram":     map[string]any{"type": "boolean"},
			"elasticityEdge": map[string]any{"type": "number"},
		},
		"required": []any{"definition", "keyPoints"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != genai.TypeObject || len(schema.Properties) != 6 {
		t.Fatalf("unexpected top level: %s with %d properties", schema.Type, len(schema.Properties))
	}
	if got := schema.Properties["definition"].Description; got != "One-sentence definition" {
		t.Errorf("description = %q", got)
	}
	if kp := schema.Properties["keyPoints"]; kp.Type != genai.TypeArray || kp.Items.Type != genai.TypeString {
		t.Errorf("keyPoints = %s of %s", kp.Type, kp.Items.Type)
	}
	if got := len(schema.Properties["correct"].Enum); got != 4 {
		t.Errorf("expected 4 answer keys, got %d", got)
	}
	for name, want := range map[string]genai.Type{
		"difficulty":     genai.TypeInteger,
		"hasDiagram":     genai.TypeBoolean,
		"elasticityEdge": genai.TypeNumber,
	} {
		if got := schema.Properties[name].Type; got != want {
			t.Errorf("%s type = %s, want %s", name, got, want)
		}
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_Bounds(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correct":           map[string]any{"type": "string", "minLength": 1},
			"question":          map[string]any{"type": "string"},
			"adaptedDifficulty": map[string]any{"type": "integer", "minimum": float64(1), "maximum": float64(5)},
			"keyPoints":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1, "maxItems": 3},
		},
		"required": []any{"question", "keyPoints", "correct", "adaptedDifficulty"},
	}

	schema := buildGeminiSchema(def)

	d := schema.Properties["adaptedDifficulty"]
	if d.Minimum == nil || *d.Minimum != 1 || d.Maximum == nil || *d.Maximum != 5 {
		t.Errorf("difficulty bounds lost: %v..%v", d.Minimum, d.Maximum)
	}
	kp := schema.Properties["keyPoints"]
	if kp.MinItems == nil || *kp.MinItems != 1 || kp.MaxItems == nil || *kp.MaxItems != 3 {
		t.Errorf("key point bounds lost: %v..%v", kp.MinItems, kp.MaxItems)
	}
	if ml := schema.Properties["correct"].MinLength; ml == nil || *ml != 1 {
		t.Errorf("minLength lost: %v", ml)
	}
	if schema.Properties["question"].Minimum != nil {
		t.Error("unbounded field gained a bound")
	}

	want := []string{"question", "keyPoints", "correct", "adaptedDifficulty"}
	if len(schema.PropertyOrdering) != len(want) {
		t.Fatalf("ordering = %v, want %v", schema.PropertyOrdering, want)
	}
	for i := range want {
		if schema.PropertyOrdering[i] != want[i] {
			t.Fatalf("ordering = %v, want %v", schema.PropertyOrdering, want)
		}
	}
}

func TestBuildGeminiSchema_PartialRequiredHasNoOrdering(t *testing.T) {
	schema := buildGeminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition":       map[string]any{"type": "string"},
			"realWorldExample": map[string]any{"type": "string"},
		},
		"required": []any{"definition"},
	})
	if schema.PropertyOrdering != nil {
		t.Errorf("ordering = %v, want none", schema.PropertyOrdering)
	}
}
