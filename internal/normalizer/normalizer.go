// Package normalizer cleans raw transcript text before any analysis pass
// sees it.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	disallowed = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s.,!?'"-]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// correction is a case-sensitive literal replacement. To must never contain
// From, and must not be longer than it.
type correction struct {
	From, To string
}

// corrections run in order; later entries see the output of earlier ones.
var corrections = []correction{
	{"what's up", "whatsapp"},
	{"whats up", "whatsapp"},
	{" i ", " I "},
	{" i'm ", " I'm "},
}

const sentenceSep = ". "

// Normalize collapses whitespace, strips stray symbols, applies the
// transcription correction table and capitalizes sentence fragments. The
// result is never longer than raw and Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) (out string) {
	if raw == "" {
		return ""
	}
	defer func() {
		if recover() != nil {
			out = raw
		}
	}()

	text := disallowed.ReplaceAllString(raw, "")
	text = whitespace.ReplaceAllString(text, " ")
	text = applyCorrections(text)
	text = capitalizeSentences(text)
	return strings.TrimSpace(text)
}

func applyCorrections(text string) string {
	for _, c := range corrections {
		// overlapping matches (" i i ") need more than one pass
		for strings.Contains(text, c.From) {
			text = strings.ReplaceAll(text, c.From, c.To)
		}
	}
	return text
}

func capitalizeSentences(text string) string {
	parts := strings.Split(text, sentenceSep)
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		kept = append(kept, capitalizeFirst(p))
	}
	return strings.Join(kept, sentenceSep)
}

// capitalizeFirst upper-cases the first rune unless doing so would change its
// encoded width.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return s
	}
	up := unicode.ToUpper(r)
	if utf8.RuneLen(up) != size {
		return s
	}
	return string(up) + s[size:]
}
