package aggregator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sales-coach-go/internal/orchestrator"
	"sales-coach-go/internal/types"
)

func analyzed(id, sentiment, score string, objections ...string) types.BatchResult {
	rep := types.Report{
		TranscriptAnalysis: types.CallUnderstanding{CallType: "Sales", Sentiment: sentiment},
		CoachingFeedback:   types.CoachingFeedback{Score: score},
		ObjectionAnalysis:  types.ObjectionAnalysis{Objections: []types.Objection{}},
		Metadata:           types.Metadata{Status: types.StatusSuccess},
	}
	for _, o := range objections {
		rep.ObjectionAnalysis.Objections = append(rep.ObjectionAnalysis.Objections, types.Objection{Type: o})
	}
	rep.ObjectionAnalysis.ObjectionsFound = len(objections)
	return types.BatchResult{CallRecord: types.CallRecord{CallID: id}, Report: rep}
}

func TestScoreOutOfTen(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"7/10", 7, true},
		{"4/5", 8, true},
		{"8", 8, true},
		{"6.5/10", 6.5, true},
		{"12", 0, false},
		{"n/a", 0, false},
		{"3/0", 0, false},
		{"85", 0, false},
		{"100%", 0, false},
		{"85/10", 0, false},
	}
	for _, tc := range cases {
		got, ok := ScoreOutOfTen(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
		require.InDelta(t, tc.want, got, 0.001, tc.in)
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	fb := types.BatchResult{CallRecord: types.CallRecord{CallID: "f"}, Report: orchestrator.FallbackReport(0)}
	ins := Aggregate([]types.BatchResult{
		analyzed("a", "Positive", "8/10", "Price"),
		analyzed("b", "Negative", "4/10", "Timing", "Price"),
		analyzed("c", "Positive", "unknown"),
		analyzed("d", "Neutral", "6/10"),
		fb,
	})

	require.Equal(t, 5, ins.TotalCalls)
	require.Equal(t, 1, ins.FallbackCalls)
	require.Equal(t, map[string]int{"Positive": 2, "Negative": 1, "Neutral": 1}, ins.SentimentCounts)
	require.Equal(t, map[string]int{"Sales": 4}, ins.CallTypeCounts)
	require.Equal(t, map[string]int{"Price": 2, "Timing": 1}, ins.ObjectionTypeCounts)
	require.InDelta(t, 0.5, ins.PriceObjectionRate, 0.001)
	require.Equal(t, 3, ins.ScoredCalls)
	require.InDelta(t, 6.0, ins.AverageScore, 0.001)
}

func TestAggregateSkipsOffScaleScores(t *testing.T) {
	t.Parallel()

	ins := Aggregate([]types.BatchResult{
		analyzed("a", "Positive", "85/10"),
		analyzed("b", "Positive", "4/10"),
	})
	require.Equal(t, 1, ins.ScoredCalls)
	require.InDelta(t, 4.0, ins.AverageScore, 0.001)
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	ins := Aggregate(nil)
	require.Zero(t, ins.TotalCalls)
	require.Zero(t, ins.PriceObjectionRate)
	require.Zero(t, ins.AverageScore)
	require.NotNil(t, ins.SentimentCounts)
}
