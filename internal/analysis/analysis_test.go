package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sales-coach-go/internal/llm"
)

type stubGen struct {
	reply     string
	prompts   []string
	maxTokens []int
}

func (s *stubGen) Generate(_ context.Context, prompt string, maxTokens int) string {
	s.prompts = append(s.prompts, prompt)
	s.maxTokens = append(s.maxTokens, maxTokens)
	return s.reply
}

type panicGen struct{}

func (panicGen) Generate(context.Context, string, int) string {
	panic("tokenizer exploded")
}

func degradedGateway() *llm.Gateway {
	return llm.NewGateway(nil)
}

func TestBudgetPrefixCountsRunes(t *testing.T) {
	t.Parallel()

	b := Budget{InputChars: 3}
	require.Equal(t, "", b.Prefix(""))
	require.Equal(t, "ab", b.Prefix("ab"))
	require.Equal(t, "abc", b.Prefix("abcdef"))
	require.Equal(t, "héé", b.Prefix("héééé"))
	require.Equal(t, "", Budget{}.Prefix("abc"))
}

func TestPassesUseTheirBudgets(t *testing.T) {
	t.Parallel()

	transcript := strings.Repeat("x", 1000)
	tests := []struct {
		name   string
		run    func(Generator)
		budget Budget
	}{
		{"call understanding", func(g Generator) { CallUnderstanding(context.Background(), g, transcript) }, CallUnderstandingBudget},
		{"coaching", func(g Generator) { Coaching(context.Background(), g, transcript) }, CoachingBudget},
		{"objections", func(g Generator) { Objections(context.Background(), g, transcript) }, ObjectionBudget},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gen := &stubGen{}
			tc.run(gen)

			require.Len(t, gen.prompts, 1)
			require.Equal(t, []int{tc.budget.MaxTokens}, gen.maxTokens)
			require.Contains(t, gen.prompts[0], strings.Repeat("x", tc.budget.InputChars))
			require.NotContains(t, gen.prompts[0], strings.Repeat("x", tc.budget.InputChars+1))
		})
	}
	require.Equal(t, 500, CallUnderstandingBudget.InputChars)
	require.Equal(t, 400, CoachingBudget.InputChars)
	require.Equal(t, 300, ObjectionBudget.InputChars)
	require.Equal(t, 80, ObjectionBudget.MaxTokens)
}

func TestPassesRecoverPanics(t *testing.T) {
	t.Parallel()

	call := CallUnderstanding(context.Background(), panicGen{}, "hello")
	require.True(t, call.IsFallback())
	require.Equal(t, "Positive", call.Value.Sentiment)
	require.Contains(t, call.Value.Error, "tokenizer exploded")

	coach := Coaching(context.Background(), panicGen{}, "hello")
	require.True(t, coach.IsFallback())
	require.Equal(t, "6/10", coach.Value.Score)
	require.NotEmpty(t, coach.Value.Error)

	obj := Objections(context.Background(), panicGen{}, "this is too expensive")
	require.True(t, obj.IsFallback())
	require.Equal(t, 0, obj.Value.ObjectionsFound)
	require.NotNil(t, obj.Value.Objections)
	require.Equal(t, []string{"Practice objection handling"}, obj.Value.Recommendations)
	require.NotEmpty(t, obj.Value.Error)
}

func TestPassesFallBackOnCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := &stubGen{reply: "Summary: never used"}
	res := CallUnderstanding(ctx, gen, "hello")
	require.True(t, res.IsFallback())
	require.ErrorIs(t, res.Err, context.Canceled)
	require.Empty(t, gen.prompts)
}

func TestPassesWithDegradedGatewayAreFullyPopulated(t *testing.T) {
	t.Parallel()

	g := degradedGateway()

	call := CallUnderstanding(context.Background(), g, "hello there")
	require.False(t, call.IsFallback())
	require.Equal(t, DefaultSummary, call.Value.Summary)
	require.Equal(t, DefaultCallType, call.Value.CallType)
	require.Equal(t, DefaultSentiment, call.Value.Sentiment)
	require.Equal(t, DefaultNextStep, call.Value.NextStep)
	require.Equal(t, llm.Placeholder, call.Value.Raw)

	coach := Coaching(context.Background(), g, "hello there")
	require.Equal(t, DefaultStrengths, coach.Value.Strengths)
	require.Equal(t, DefaultImprovements, coach.Value.Improvements)
	require.Equal(t, DefaultScore, coach.Value.Score)
	require.Equal(t, DefaultActions, coach.Value.Actions)

	obj := Objections(context.Background(), g, "hello there")
	require.Equal(t, 0, obj.Value.ObjectionsFound)
	require.Empty(t, obj.Value.Objections)
	require.NotNil(t, obj.Value.Objections)
	require.Equal(t, DefaultRecommendations, obj.Value.Recommendations)
}
