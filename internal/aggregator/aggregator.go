package aggregator

import (
	"regexp"
	"strconv"

	"sales-coach-go/internal/analysis"
	"sales-coach-go/internal/types"
)

// Insight is the roll-up of a batch run.
type Insight struct {
	TotalCalls          int            `json:"total_calls"`
	FallbackCalls       int            `json:"fallback_calls"`
	SentimentCounts     map[string]int `json:"sentiment_counts"`
	CallTypeCounts      map[string]int `json:"call_type_counts"`
	ObjectionTypeCounts map[string]int `json:"objection_type_counts"`
	PriceObjectionRate  float64        `json:"price_objection_rate"`
	ScoredCalls         int            `json:"scored_calls"`
	AverageScore        float64        `json:"average_score"`
}

var scorePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:/(\d+))?`)

// ScoreOutOfTen turns "7/10", "4/5" or "8" into a value on a ten point scale.
func ScoreOutOfTen(score string) (float64, bool) {
	m := scorePattern.FindStringSubmatch(score)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] == "" {
		return v, v <= 10
	}
	outOf, err := strconv.ParseFloat(m[2], 64)
	if err != nil || outOf == 0 || v > outOf {
		return 0, false
	}
	return v / outOf * 10, true
}

// Aggregate counts outcomes across results. Fallback reports are counted but
// left out of the score average and the rates.
func Aggregate(results []types.BatchResult) Insight {
	ins := Insight{
		TotalCalls:          len(results),
		SentimentCounts:     map[string]int{},
		CallTypeCounts:      map[string]int{},
		ObjectionTypeCounts: map[string]int{},
	}
	var analyzed, withPrice int
	var scoreSum float64
	for _, r := range results {
		if r.Report.IsFallback() {
			ins.FallbackCalls++
			continue
		}
		analyzed++
		ta := r.Report.TranscriptAnalysis
		ins.SentimentCounts[ta.Sentiment]++
		ins.CallTypeCounts[ta.CallType]++

		price := false
		for _, o := range r.Report.ObjectionAnalysis.Objections {
			ins.ObjectionTypeCounts[o.Type]++
			if o.Type == analysis.PriceObjection.Type {
				price = true
			}
		}
		if price {
			withPrice++
		}
		if v, ok := ScoreOutOfTen(r.Report.CoachingFeedback.Score); ok {
			ins.ScoredCalls++
			scoreSum += v
		}
	}
	if analyzed > 0 {
		ins.PriceObjectionRate = float64(withPrice) / float64(analyzed)
	}
	if ins.ScoredCalls > 0 {
		ins.AverageScore = scoreSum / float64(ins.ScoredCalls)
	}
	return ins
}
