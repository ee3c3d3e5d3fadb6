package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sales-coach-go/internal/result"
	"sales-coach-go/internal/types"
)

const coachingPrompt = `As sales coach, give feedback on:

%s

Feedback:
Good: 
Improve: 
Score: /10`

var coachingFields = []field{
	{name: "strengths", labels: []string{"good", "strength", "went well"}},
	{name: "improvements", labels: []string{"improve", "weakness", "could be better"}},
	{name: "score", labels: []string{"score", "overall score", "rating"}},
	{name: "actions", labels: []string{"action", "recommended action", "next action"}},
}

var (
	DefaultStrengths    = []string{"Clear introduction", "Explained products"}
	DefaultImprovements = []string{"Ask more questions", "Better closing"}
	DefaultActions      = []string{"Confirm the customer's needs before pitching"}
)

const DefaultScore = "7/10"

// "8/10", "8 / 10", "7.5", "8 out of 10"
var scorePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:(?:/|out of)\s*(\d+))?`)

// Coaching grades the rep and lists strengths and improvements.
func Coaching(ctx context.Context, gen Generator, transcript string) result.Result[types.CoachingFeedback] {
	return contain(ctx, "coaching", FallbackCoaching, func() types.CoachingFeedback {
		prompt := fmt.Sprintf(coachingPrompt, CoachingBudget.Prefix(transcript))
		raw := gen.Generate(ctx, prompt, CoachingBudget.MaxTokens)

		rec := withCoachingDefaults(ParseCoaching(raw))
		rec.Raw = raw
		return rec
	})
}

// ParseCoaching extracts labelled coaching fields from text. Missing fields
// are left empty.
func ParseCoaching(text string) types.CoachingFeedback {
	v := parseLabels(text, coachingFields)
	return types.CoachingFeedback{
		Strengths:    splitList(v["strengths"]),
		Improvements: splitList(v["improvements"]),
		Score:        normalizeScore(v["score"]),
		Actions:      splitList(v["actions"]),
	}
}

// normalizeScore returns "N/M", or "" when the value is not a score on its
// own scale (e.g. "85" or "100%").
func normalizeScore(v string) string {
	m := scorePattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return ""
	}
	scale := m[2]
	if scale == "" {
		scale = "10"
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}
	outOf, err := strconv.ParseFloat(scale, 64)
	if err != nil || outOf <= 0 || n > outOf {
		return ""
	}
	return m[1] + "/" + scale
}

func withCoachingDefaults(rec types.CoachingFeedback) types.CoachingFeedback {
	rec.Strengths = listOrDefault(rec.Strengths, DefaultStrengths)
	rec.Improvements = listOrDefault(rec.Improvements, DefaultImprovements)
	rec.Score = orDefault(rec.Score, DefaultScore)
	rec.Actions = listOrDefault(rec.Actions, DefaultActions)
	return rec
}

// FallbackCoaching is returned when the pass itself fails.
func FallbackCoaching(err error) types.CoachingFeedback {
	return types.CoachingFeedback{
		Strengths:    []string{"Professional tone", "Product knowledge"},
		Improvements: []string{"Could engage customer more", "Ask for needs"},
		Score:        "6/10",
		Actions:      []string{"Ask open questions about the customer's goals"},
		Error:        errString(err),
	}
}
