package llm

import (
	"math"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{
			APIKey: "sk-or-test",
			Model:  "google/gemini-2.5-flash",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "google/gemini-2.5-flash" {
			t.Errorf("model = %q, want %q", p.ModelID(), "google/gemini-2.5-flash")
		}
	})

	t.Run("empty API key", func(t *testing.T) {
		if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
			t.Fatal("expected error for empty API key")
		}
	})

	t.Run("friendly names pass through", func(t *testing.T) {
		p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "gpt-4o"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != "gpt-4o" {
			t.Errorf("model = %q, want %q", p.ModelID(), "gpt-4o")
		}
	})
}

func TestNewGrokProvider(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"grok-mini", "grok-3-mini"},
		{"grok", "grok-3"},
		{"grok-4", "grok-4"},
	}
	for _, tt := range tests {
		p, err := NewGrokProvider(GrokConfig{APIKey: "xai-test", Model: tt.model})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ModelID() != tt.want {
			t.Errorf("model %q resolved to %q, want %q", tt.model, p.ModelID(), tt.want)
		}
	}

	if _, err := NewGrokProvider(GrokConfig{Model: "grok"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	got := c.Cost(1_000_000, 1_000_000)
	if math.Abs(got-2.8) > 1e-9 {
		t.Errorf("Cost = %v, want 2.8", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
