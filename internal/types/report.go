// internal/types/report.go
package types

// Report status values.
const (
	StatusSuccess  = "success"
	StatusFallback = "fallback"
)

// --------------------------------------------
// Call understanding pass
// --------------------------------------------
type CallUnderstanding struct {
	Summary   string `json:"summary"`
	CallType  string `json:"call_type"`
	Sentiment string `json:"sentiment"`
	NextStep  string `json:"next_step"`
	Raw       string `json:"raw,omitempty"`
	Error     string `json:"error,omitempty"`
}

// --------------------------------------------
// Coaching pass
// --------------------------------------------
type CoachingFeedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Score        string   `json:"score"` // "7/10"
	Actions      []string `json:"actions"`
	Raw          string   `json:"raw,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// --------------------------------------------
// Objection detection pass
// --------------------------------------------
type Objection struct {
	Type           string `json:"type"`
	CustomerQuote  string `json:"customer_quote"`
	BetterResponse string `json:"better_response"`
}

type ObjectionAnalysis struct {
	ObjectionsFound int         `json:"objections_found"`
	Objections      []Objection `json:"objections"`
	Recommendations []string    `json:"recommendations"`
	Raw             string      `json:"raw,omitempty"`
	Error           string      `json:"error,omitempty"`
}

// --------------------------------------------
// Run metadata
// --------------------------------------------
type Metadata struct {
	Time      string `json:"time"` // "1.2s"
	ElapsedMs int64  `json:"elapsed_ms"`
	Status    string `json:"status"`
}

// --------------------------------------------
// FINAL output delivered to the reviewer
// --------------------------------------------
type Report struct {
	TranscriptAnalysis CallUnderstanding `json:"transcript_analysis"`
	CoachingFeedback   CoachingFeedback  `json:"coaching_feedback"`
	ObjectionAnalysis  ObjectionAnalysis `json:"objection_analysis"`
	Metadata           Metadata          `json:"metadata"`
	Error              string            `json:"error,omitempty"`
}

// IsFallback reports whether the report is the generic substitute.
func (r Report) IsFallback() bool {
	return r.Metadata.Status == StatusFallback
}
