package llm

import (
	"context"
	"strings"
)

// MockBackend answers from a fixed table, matching the first key contained
// in the prompt. Used for offline demos (USE_MOCK_LLM=true) and tests.
type MockBackend struct {
	Responses []MockResponse
	Default   string
}

// MockResponse pairs a prompt substring with its canned answer.
type MockResponse struct {
	Contains string
	Reply    string
}

// Complete implements Backend.
func (m *MockBackend) Complete(ctx context.Context, prompt string, _ int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, r := range m.Responses {
		if strings.Contains(prompt, r.Contains) {
			return r.Reply, nil
		}
	}
	return m.Default, nil
}

// NewDemoBackend returns a MockBackend with well-formed answers for the three
// analysis prompts.
func NewDemoBackend() *MockBackend {
	return &MockBackend{
		Responses: []MockResponse{
			{
				Contains: "Analyze this sales call",
				Reply: "1. Summary: Advisor introduced wealth management plans and discussed investment options\n" +
					"2. Type: Sales\n3. Sentiment: Positive\n4. Next Step: Share plan brochure on WhatsApp",
			},
			{
				Contains: "As sales coach",
				Reply: "Good: Warm greeting, Clear product explanation\n" +
					"Improve: Ask about financial goals, Confirm a follow-up date\nScore: 7/10",
			},
			{
				Contains: "Find objections",
				Reply:    "Answer: Found 0 objections. Main issue: none",
			},
		},
		Default: Placeholder,
	}
}
