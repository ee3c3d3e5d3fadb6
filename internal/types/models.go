package types

// CallRecord is one row of a batch dataset.
type CallRecord struct {
	CallID     string `json:"call_id"`
	Agent      string `json:"agent,omitempty"`
	AudioURL   string `json:"audio_url,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

// BatchResult pairs a dataset row with its analysis.
type BatchResult struct {
	CallRecord
	Report Report `json:"report"`
}

// TranscriptStats are cheap counts shown next to a transcript.
type TranscriptStats struct {
	Characters       int `json:"characters"`
	Words            int `json:"words"`
	EstimatedSeconds int `json:"estimated_seconds"`
}
