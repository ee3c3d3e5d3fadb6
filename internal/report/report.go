// Package report renders an analysis report for people: the plain-text
// export and quick transcript stats.
package report

import (
	"fmt"
	"strings"

	"sales-coach-go/internal/types"
)

const rule = "================================"

// RenderText builds the downloadable plain-text export. Every list item gets
// its own "- " bullet line.
func RenderText(rep types.Report) string {
	var b strings.Builder

	ta, cf, oa := rep.TranscriptAnalysis, rep.CoachingFeedback, rep.ObjectionAnalysis

	b.WriteString("Sales Call Analysis Report\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Call Summary: %s\n", orNA(ta.Summary))
	fmt.Fprintf(&b, "Call Type: %s\n", orNA(ta.CallType))
	fmt.Fprintf(&b, "Sentiment: %s\n", orNA(ta.Sentiment))
	fmt.Fprintf(&b, "Next Step: %s\n", orNA(ta.NextStep))
	fmt.Fprintf(&b, "Coaching Score: %s\n", orNA(cf.Score))
	fmt.Fprintf(&b, "Objections Found: %d\n", oa.ObjectionsFound)
	if rep.IsFallback() {
		b.WriteString("Note: generic fallback analysis, review the call manually\n")
	}

	section(&b, "STRENGTHS", cf.Strengths)
	section(&b, "IMPROVEMENTS", cf.Improvements)
	section(&b, "ACTIONS", cf.Actions)

	objections := make([]string, 0, len(oa.Objections))
	for _, o := range oa.Objections {
		objections = append(objections, fmt.Sprintf("%s: %q -> %s", o.Type, o.CustomerQuote, o.BetterResponse))
	}
	section(&b, "OBJECTIONS", objections)
	section(&b, "RECOMMENDATIONS", oa.Recommendations)

	fmt.Fprintf(&b, "\nAnalysis completed in: %s\n", orNA(rep.Metadata.Time))
	return b.String()
}

func section(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	if len(items) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// Stats counts characters and words; estimated duration assumes two words
// per second of speech.
func Stats(transcript string) types.TranscriptStats {
	words := len(strings.Fields(transcript))
	return types.TranscriptStats{
		Characters:       len([]rune(transcript)),
		Words:            words,
		EstimatedSeconds: (words + 1) / 2,
	}
}
