package normalizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \t\n ", want: ""},
		{name: "collapses whitespace", in: "hello   there\n\nfriend", want: "Hello there friend"},
		{name: "strips symbols", in: "price is $500 @ 10% off #deal", want: "Price is 500 10 off deal"},
		{name: "keeps punctuation", in: `he said "no", then - ok?`, want: `He said "no", then - ok?`},
		{name: "whatsapp correction", in: "send it on what's up please", want: "Send it on whatsapp please"},
		{name: "whats up correction", in: "ping me on whats up", want: "Ping me on whatsapp"},
		{name: "pronoun correction", in: "yes i think i i agree", want: "Yes I think I I agree"},
		{name: "contraction correction", in: "well i'm not sure", want: "Well I'm not sure"},
		{name: "capitalizes sentences", in: "hello. how are you. fine", want: "Hello. How are you. Fine"},
		{name: "does not lowercase", in: "call ACME today. ok", want: "Call ACME today. Ok"},
		{name: "drops empty fragments", in: "first. . second.  ", want: "First. Second"},
		{name: "unicode letters survive", in: "señor müller agreed", want: "Señor müller agreed"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotentAndNeverGrows(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"hi",
		"  so   what's up with the budget?? it's too   expensive!!  ",
		"i i i i think. . . i'm done",
		"Agent: hello, this is Priya from ABC Wealth. customer: hi, what is the cost?",
		"Error in transcription: model not loaded",
		"tabs\tand\r\nnewlines and nbsp",
		"émile. ßtraße. ǆ test",
		"...",
		". . .",
	}

	for _, in := range inputs {
		once := Normalize(in)
		require.LessOrEqual(t, len(once), len(in), "input %q", in)
		require.Equal(t, once, Normalize(once), "input %q", in)
	}
}
