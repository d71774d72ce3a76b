package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Stock answers served by NewFixtureProvider, keyed by request purpose.
var fixtures = map[string]json.RawMessage{
	PurposeQuestion: json.RawMessage(`{
		"question": "A government sets a maximum price below the equilibrium price of rented housing. Which outcome is most likely?",
		"options": {
			"A": "A surplus of rented housing",
			"B": "A shortage of rented housing",
			"C": "An increase in the quantity of housing supplied",
			"D": "No change, because the ceiling is not binding"
		},
		"correct": "B",
		"explanation": "A binding price ceiling raises quantity demanded and lowers quantity supplied, so excess demand appears at the capped price.",
		"adaptedDifficulty": 2
	}`),
	PurposeExplanation: json.RawMessage(`{
		"likelyReasoning": "You may have read the ceiling as a floor and expected sellers to offer more at the controlled price.",
		"misconception": "A maximum price only binds when it sits below equilibrium, and there it restricts sellers rather than buyers.",
		"correctExplanation": "Below equilibrium, consumers want more housing than landlords are willing to let, so the market shows a shortage equal to Qd minus Qs.",
		"keyInsight": "Ceilings below equilibrium create shortages; floors above equilibrium create surpluses.",
		"practiceAdvice": "Sketch the diagram, draw the ceiling below P*, and label Qs and Qd before answering."
	}`),
	PurposeReview: json.RawMessage(`{
		"definition": "A price ceiling is a legal maximum price set below the market equilibrium to make a good more affordable.",
		"keyPoints": [
			"A binding ceiling creates excess demand because Qd exceeds Qs.",
			"Non-price rationing follows: queues, waiting lists and black markets.",
			"Welfare analysis shows a deadweight loss and a transfer from producers to consumers."
		],
		"diagramExplanation": "Draw standard demand and supply, add a horizontal line below P*, and mark Qs and Qd where it meets each curve. The gap is the shortage.",
		"commonMistakes": [
			"Drawing the ceiling above equilibrium, where it has no effect.",
			"Labelling the shortage as Qe minus Qs instead of Qd minus Qs."
		],
		"examTips": [
			"For evaluate questions, weigh the affordability gain against the shortage and black market.",
			"Always shade the deadweight loss when asked about efficiency."
		],
		"realWorldExample": "Rent control in Berlin (2020) capped rents and was followed by a fall in advertised rental listings."
	}`),
}

// MockProvider is a deterministic Provider for tests and offline runs. It
// replays queued responses in order and records every request. A drained
// queue fails as unavailable, unless the provider serves fixtures.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	fixtures  map[string]json.RawMessage
	Calls     []Request
	// Purposes holds the purpose of each call, in order.
	Purposes []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewFixtureProvider creates a MockProvider that answers question,
// explanation and review requests with stock content once its queue is
// empty. It backs the "mock" provider setting.
func NewFixtureProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses, fixtures: fixtures}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	purpose := PurposeFrom(ctx)
	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, purpose)

	var next MockResponse
	switch {
	case len(m.responses) > 0:
		next = m.responses[0]
		m.responses = m.responses[1:]
	case m.fixtures[purpose] != nil:
		next = MockResponse{Content: m.fixtures[purpose]}
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
