package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"sales-coach-go/internal/types"
)

func TestObjectionsPriceKeywordExample(t *testing.T) {
	t.Parallel()

	res := Objections(context.Background(), degradedGateway(), "This is too expensive for our budget right now.")
	require.False(t, res.IsFallback())
	require.Equal(t, 1, res.Value.ObjectionsFound)
	require.Len(t, res.Value.Objections, 1)
	require.Equal(t, "Price", res.Value.Objections[0].Type)
}

func TestObjectionsPriceOverrideIgnoresGeneratedText(t *testing.T) {
	t.Parallel()

	replies := []string{
		"",
		"Answer: Found 0 objections. Main issue: none",
		"Answer: Found 2 objections.\nObjection 1: need to ask my wife\nObjection 2: bad timing, call later",
		"garbage \x00 output",
	}
	transcripts := []string{
		"What is the COST of this plan?",
		"the Price looks fine",
		"we have no BuDgEt",
		"that's expensive",
	}

	for _, reply := range replies {
		for _, tr := range transcripts {
			res := Objections(context.Background(), &stubGen{reply: reply}, tr)
			require.Equal(t, 1, res.Value.ObjectionsFound, "reply %q transcript %q", reply, tr)
			require.Equal(t, []types.Objection{PriceObjection}, res.Value.Objections)
		}
	}
}

func TestObjectionsKeywordOnlyInPrefix(t *testing.T) {
	t.Parallel()

	transcript := make([]byte, 0, 400)
	for len(transcript) < 350 {
		transcript = append(transcript, "hello "...)
	}
	transcript = append(transcript, "price"...)

	res := Objections(context.Background(), &stubGen{}, string(transcript))
	require.Equal(t, 0, res.Value.ObjectionsFound)
	require.Empty(t, res.Value.Objections)
}

func TestParseObjections(t *testing.T) {
	t.Parallel()

	rec := ParseObjections("Answer: Found 1 objections. Main issue: Customer wants to think about it later.")
	require.Equal(t, 1, rec.ObjectionsFound)
	require.Equal(t, []types.Objection{{
		Type:           "Timing",
		CustomerQuote:  "Customer wants to think about it later",
		BetterResponse: "Agree on a concrete follow-up date",
	}}, rec.Objections)

	rec = ParseObjections("Found 0 objections. Main issue: [brief]")
	require.Equal(t, 0, rec.ObjectionsFound)
	require.Empty(t, rec.Objections)

	rec = ParseObjections("Objections found: 2\nObjection 1: I don't trust online advisors\nObjection 2: hmm")
	require.Equal(t, 2, rec.ObjectionsFound)
	require.Len(t, rec.Objections, 2)
	require.Equal(t, "Trust", rec.Objections[0].Type)
	require.Equal(t, "General", rec.Objections[1].Type)

	rec = ParseObjections("Main issue: already invest with another bank")
	require.Equal(t, 1, rec.ObjectionsFound, "count follows listed issues")
	require.Equal(t, "Competition", rec.Objections[0].Type)

	rec = ParseObjections("Main issue: price is high. Objection 2: no time")
	require.Equal(t, 2, rec.ObjectionsFound)
	require.Len(t, rec.Objections, 2)
	require.Equal(t, "Price", rec.Objections[0].Type)
	require.Equal(t, "price is high", rec.Objections[0].CustomerQuote)
	require.Equal(t, "Timing", rec.Objections[1].Type)
	require.Equal(t, "no time", rec.Objections[1].CustomerQuote)

	rec = ParseObjections("Found 99 objections")
	require.Equal(t, maxObjections, rec.ObjectionsFound)
}

func TestMentionsPrice(t *testing.T) {
	t.Parallel()

	require.True(t, MentionsPrice("BUDGET is tight"))
	require.True(t, MentionsPrice("what does it cost"))
	require.False(t, MentionsPrice("sounds great, sign me up"))
	require.False(t, MentionsPrice(""))
}
