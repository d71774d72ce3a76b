package llm

import (
	"context"
	"testing"
	"time"
)

// slowProvider blocks until its context is done.
type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, &ErrProviderUnavailable{Err: ctx.Err()}
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout_CancelsSlowCall(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	if Classify(err) != KindTimeout {
		t.Fatalf("expected timeout, got %v", err)
	}
	if p.ModelID() != "slow" {
		t.Errorf("ModelID = %q, want slow", p.ModelID())
	}
}

func TestWithTimeout_NonPositiveIsPassthrough(t *testing.T) {
	mock := NewMockProvider()
	if p := WithTimeout(mock, 0); p != Provider(mock) {
		t.Fatal("expected the inner provider back")
	}
}
