// internal/processor/processor.go
package processor

import (
	"context"
	"time"

	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/normalizer"
	"sales-coach-go/internal/report"
	"sales-coach-go/internal/types"
)

// Transcriber turns a recording link into text. Failures come back as text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) string
}

// Analyzer produces a complete report for a transcript.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) types.Report
}

// CallResult is returned by /analyze and the CLI.
type CallResult struct {
	AudioURL   string                `json:"audio_url,omitempty"`
	Transcript string                `json:"transcript"`
	Stats      types.TranscriptStats `json:"stats"`
	Report     types.Report          `json:"report"`
	DurationMs int64                 `json:"duration_ms"`
}

// Processor wires transcription, normalization and analysis for one call.
type Processor struct {
	stt      Transcriber
	analyzer Analyzer
	log      *logger.Logger
}

func New(stt Transcriber, analyzer Analyzer, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}
	return &Processor{stt: stt, analyzer: analyzer, log: log.Component("processor")}
}

// ProcessAudio transcribes audioURL and analyzes the result.
func (p *Processor) ProcessAudio(ctx context.Context, audioURL string) CallResult {
	start := time.Now()
	p.log.WithField("audio_url", audioURL).Info("transcribing call")
	raw := p.stt.Transcribe(ctx, audioURL)

	res := p.analyze(ctx, raw)
	res.AudioURL = audioURL
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// ProcessTranscript analyzes text that was transcribed elsewhere.
func (p *Processor) ProcessTranscript(ctx context.Context, raw string) CallResult {
	start := time.Now()
	res := p.analyze(ctx, raw)
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

func (p *Processor) analyze(ctx context.Context, raw string) CallResult {
	transcript := normalizer.Normalize(raw)
	rep := p.analyzer.Analyze(ctx, transcript)
	return CallResult{
		Transcript: transcript,
		Stats:      report.Stats(transcript),
		Report:     rep,
	}
}

// ProcessBatch analyzes every record in order, preferring an existing
// transcript over transcribing the audio again.
func (p *Processor) ProcessBatch(ctx context.Context, records []types.CallRecord) []types.BatchResult {
	out := make([]types.BatchResult, 0, len(records))
	for _, rec := range records {
		log := p.log.WithField("call_id", rec.CallID)
		var res CallResult
		if rec.Transcript != "" {
			res = p.ProcessTranscript(ctx, rec.Transcript)
		} else {
			res = p.ProcessAudio(ctx, rec.AudioURL)
		}
		rec.Transcript = res.Transcript
		out = append(out, types.BatchResult{CallRecord: rec, Report: res.Report})
		log.WithField("status", res.Report.Metadata.Status).WithField("duration_ms", res.DurationMs).Info("batch call processed")
	}
	return out
}
