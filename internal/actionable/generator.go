package actionable

import (
	"fmt"

	"sales-coach-go/internal/aggregator"
)

const (
	priceObjectionThreshold = 0.35
	lowScoreThreshold       = 6.0
)

type ActionCard struct {
	Insight string `json:"insight"`
	Action  string `json:"action"`
	Impact  string `json:"impact"`
}

// Generate picks the team-level coaching action for a batch. Price
// objections take priority over low scores.
func Generate(ins aggregator.Insight) ActionCard {
	analyzed := ins.TotalCalls - ins.FallbackCalls
	if analyzed <= 0 {
		return ActionCard{
			Insight: "No calls were analyzed",
			Action:  "Check the transcription and model setup, then rerun the batch",
			Impact:  "No coaching signal yet",
		}
	}
	if ins.PriceObjectionRate >= priceObjectionThreshold {
		return ActionCard{
			Insight: fmt.Sprintf("Price objections in %.0f%% of calls", ins.PriceObjectionRate*100),
			Action:  "Run ROI and value-proposition training; share a fee comparison sheet with advisors",
			Impact:  "Fewer stalled deals on budget concerns",
		}
	}
	if ins.ScoredCalls > 0 && ins.AverageScore < lowScoreThreshold {
		return ActionCard{
			Insight: fmt.Sprintf("Average coaching score %.1f/10", ins.AverageScore),
			Action:  "Schedule call reviews with a senior advisor focused on discovery questions and closing",
			Impact:  "Higher conversion per call",
		}
	}
	return ActionCard{
		Insight: "No strong objection or quality pattern detected",
		Action:  "Monitor and collect more data",
		Impact:  "Low immediate intervention",
	}
}
