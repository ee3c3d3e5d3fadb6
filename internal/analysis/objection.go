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

const objectionPrompt = `Find objections in sales call:

%s

Answer: Found [0-2] objections. Main issue: [brief]`

// maxObjections caps counts the model makes up.
const maxObjections = 5

var (
	foundPattern     = regexp.MustCompile(`(?i)(?:found\s+(\d+)\s+objections?|objections?\s+found\s*:?\s*(\d+))`)
	issuePattern     = regexp.MustCompile(`(?im)(?:main issue|objection(?:\s*#?\d+)?)\s*:\s*(.+)$`)
	// a second label on the same line starts another issue
	inlineIssueLabel = regexp.MustCompile(`(?i)\b(?:main issue|objection\s*#?\d*)\s*:`)
)

// PriceKeywords force a Price objection when present in the transcript prefix.
var PriceKeywords = []string{"expensive", "cost", "price", "budget"}

// PriceObjection is the synthetic record added by the keyword scan.
var PriceObjection = types.Objection{
	Type:           "Price",
	CustomerQuote:  "Potential budget concern",
	BetterResponse: "Focus on ROI and value proposition",
}

var DefaultRecommendations = []string{"Always ask about budget and timeline"}

type objectionKind struct {
	kind     string
	keywords []string
	response string
}

// checked in order; first hit wins
var objectionKinds = []objectionKind{
	{"Price", []string{"price", "cost", "expensive", "budget", "afford", "fee", "charge"}, "Focus on ROI and value proposition"},
	{"Timing", []string{"later", "busy", "not now", "next month", "time"}, "Agree on a concrete follow-up date"},
	{"Trust", []string{"trust", "risk", "safe", "guarantee", "scam"}, "Share credentials, track record and client references"},
	{"Competition", []string{"competitor", "another bank", "other bank", "elsewhere", "already invest"}, "Differentiate on service and outcomes, not price"},
	{"Need", []string{"not interested", "don't need", "do not need", "no need", "already have"}, "Ask discovery questions to uncover the real need"},
}

const (
	generalObjection = "General"
	generalResponse  = "Acknowledge the concern and ask a clarifying question"
)

// Objections detects customer objections. A price keyword in the transcript
// prefix overrides whatever the generated text said about objections.
func Objections(ctx context.Context, gen Generator, transcript string) result.Result[types.ObjectionAnalysis] {
	return contain(ctx, "objection detection", FallbackObjections, func() types.ObjectionAnalysis {
		short := ObjectionBudget.Prefix(transcript)
		prompt := fmt.Sprintf(objectionPrompt, short)
		raw := gen.Generate(ctx, prompt, ObjectionBudget.MaxTokens)

		rec := withObjectionDefaults(ParseObjections(raw))
		if MentionsPrice(short) {
			// TODO: decide whether generated objections should be kept next to the synthetic one
			rec.ObjectionsFound = 1
			rec.Objections = []types.Objection{PriceObjection}
		}
		rec.Raw = raw
		return rec
	})
}

// MentionsPrice reports whether text contains any PriceKeywords, ignoring case.
func MentionsPrice(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range PriceKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// ParseObjections reads "Found N objections" and every "Main issue: ..." or
// "Objection: ..." line. The count is never lower than the issues listed.
func ParseObjections(text string) types.ObjectionAnalysis {
	rec := types.ObjectionAnalysis{}

	if m := foundPattern.FindStringSubmatch(text); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		rec.ObjectionsFound, _ = strconv.Atoi(digits)
	}

	for _, m := range issuePattern.FindAllStringSubmatch(text, -1) {
		for _, part := range inlineIssueLabel.Split(m[1], -1) {
			issue := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(part), "."))
			if isBlank(issue) || len(rec.Objections) == maxObjections {
				continue
			}
			rec.Objections = append(rec.Objections, classifyObjection(issue))
		}
	}

	rec.ObjectionsFound = max(rec.ObjectionsFound, len(rec.Objections))
	rec.ObjectionsFound = min(rec.ObjectionsFound, maxObjections)
	return rec
}

func classifyObjection(issue string) types.Objection {
	lower := strings.ToLower(issue)
	for _, k := range objectionKinds {
		for _, kw := range k.keywords {
			if strings.Contains(lower, kw) {
				return types.Objection{Type: k.kind, CustomerQuote: issue, BetterResponse: k.response}
			}
		}
	}
	return types.Objection{Type: generalObjection, CustomerQuote: issue, BetterResponse: generalResponse}
}

func withObjectionDefaults(rec types.ObjectionAnalysis) types.ObjectionAnalysis {
	if rec.Objections == nil {
		rec.Objections = []types.Objection{}
	}
	rec.Recommendations = listOrDefault(rec.Recommendations, DefaultRecommendations)
	return rec
}

// FallbackObjections is returned when the pass itself fails.
func FallbackObjections(err error) types.ObjectionAnalysis {
	return types.ObjectionAnalysis{
		ObjectionsFound: 0,
		Objections:      []types.Objection{},
		Recommendations: []string{"Practice objection handling"},
		Error:           errString(err),
	}
}
