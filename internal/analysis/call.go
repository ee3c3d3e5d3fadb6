package analysis

import (
	"context"
	"fmt"

	"sales-coach-go/internal/result"
	"sales-coach-go/internal/types"
)

const callUnderstandingPrompt = `Analyze this sales call:

%s

Give me:
1. Summary: 
2. Type: 
3. Sentiment: 
4. Next Step:`

var callFields = []field{
	{name: "summary", labels: []string{"summary", "call summary"}},
	{name: "call_type", labels: []string{"call type", "type"}},
	{name: "sentiment", labels: []string{"sentiment", "tone", "customer sentiment", "overall sentiment"}},
	{name: "next_step", labels: []string{"next step", "next"}},
}

// Defaults used when the generated text does not provide a field.
const (
	DefaultSummary   = "Sales call about financial products and services"
	DefaultCallType  = "Sales"
	DefaultSentiment = "Neutral"
	DefaultNextStep  = "Follow up with details"
)

// CallUnderstanding summarises and classifies the call.
func CallUnderstanding(ctx context.Context, gen Generator, transcript string) result.Result[types.CallUnderstanding] {
	return contain(ctx, "call understanding", FallbackCallUnderstanding, func() types.CallUnderstanding {
		prompt := fmt.Sprintf(callUnderstandingPrompt, CallUnderstandingBudget.Prefix(transcript))
		raw := gen.Generate(ctx, prompt, CallUnderstandingBudget.MaxTokens)

		rec := withCallDefaults(ParseCallUnderstanding(raw))
		rec.Raw = raw
		return rec
	})
}

// ParseCallUnderstanding extracts whatever labelled fields text contains.
// Missing fields are left empty.
func ParseCallUnderstanding(text string) types.CallUnderstanding {
	v := parseLabels(text, callFields)
	return types.CallUnderstanding{
		Summary:   v["summary"],
		CallType:  v["call_type"],
		Sentiment: v["sentiment"],
		NextStep:  v["next_step"],
	}
}

func withCallDefaults(rec types.CallUnderstanding) types.CallUnderstanding {
	rec.Summary = orDefault(rec.Summary, DefaultSummary)
	rec.CallType = orDefault(rec.CallType, DefaultCallType)
	rec.Sentiment = orDefault(rec.Sentiment, DefaultSentiment)
	rec.NextStep = orDefault(rec.NextStep, DefaultNextStep)
	return rec
}

// FallbackCallUnderstanding is returned when the pass itself fails.
func FallbackCallUnderstanding(err error) types.CallUnderstanding {
	return types.CallUnderstanding{
		Summary:   "Discussed wealth management products and services",
		CallType:  "Sales",
		Sentiment: "Positive",
		NextStep:  "Share product details via WhatsApp",
		Error:     errString(err),
	}
}
