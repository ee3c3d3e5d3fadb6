// Package orchestrator runs every analysis pass over one transcript and
// assembles the report handed to the reviewer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sales-coach-go/internal/analysis"
	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/result"
	"sales-coach-go/internal/types"
)

// ErrNoTranscript is the reason attached to reports for empty input.
var ErrNoTranscript = errors.New("no transcript")

type (
	callPass      func(context.Context, analysis.Generator, string) result.Result[types.CallUnderstanding]
	coachingPass  func(context.Context, analysis.Generator, string) result.Result[types.CoachingFeedback]
	objectionPass func(context.Context, analysis.Generator, string) result.Result[types.ObjectionAnalysis]
)

// Orchestrator owns one Generator (normally the process-wide llm.Gateway)
// and runs the three passes against it, one after another.
type Orchestrator struct {
	gen analysis.Generator
	log *logger.Logger
	now func() time.Time

	call       callPass
	coaching   coachingPass
	objections objectionPass
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the run logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.log = l
		}
	}
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// New builds an Orchestrator over gen.
func New(gen analysis.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:        gen,
		log:        logger.Discard(),
		now:        time.Now,
		call:       analysis.CallUnderstanding,
		coaching:   analysis.Coaching,
		objections: analysis.Objections,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.Component("orchestrator")
	return o
}

// Analyze always returns a complete report. Empty input and failures that
// escape the passes produce FallbackReport.
func (o *Orchestrator) Analyze(ctx context.Context, transcript string) types.Report {
	return o.AnalyzeResult(ctx, transcript).Value
}

// AnalyzeResult is Analyze with the fallback made explicit.
func (o *Orchestrator) AnalyzeResult(ctx context.Context, transcript string) (res result.Result[types.Report]) {
	start := o.now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("analysis pipeline: %v", r)
			o.log.WithError(err).Error("analysis failed, returning fallback report")
			rep := FallbackReport(o.now().Sub(start))
			rep.Error = err.Error()
			res = result.Fallback(rep, err)
		}
	}()

	if strings.TrimSpace(transcript) == "" {
		o.log.Warn("empty transcript, skipping analysis")
		rep := FallbackReport(0)
		rep.Error = ErrNoTranscript.Error()
		return result.Fallback(rep, ErrNoTranscript)
	}

	log := o.log.With("transcript_chars", len(transcript))
	log.Info("starting analysis")

	call := o.call(ctx, o.gen, transcript)
	warnIfFallback(log, "call understanding", call.Err)
	coaching := o.coaching(ctx, o.gen, transcript)
	warnIfFallback(log, "coaching", coaching.Err)
	objections := o.objections(ctx, o.gen, transcript)
	warnIfFallback(log, "objection detection", objections.Err)

	elapsed := o.now().Sub(start)
	rep := types.Report{
		TranscriptAnalysis: call.Value,
		CoachingFeedback:   coaching.Value,
		ObjectionAnalysis:  objections.Value,
		Metadata:           metadata(elapsed, types.StatusSuccess),
	}
	log.WithField("time", rep.Metadata.Time).Info("analysis done")
	return result.OK(rep)
}

func warnIfFallback(log *logger.Logger, pass string, err error) {
	if err != nil {
		log.WithError(err).WithField("pass", pass).Warn("pass returned fallback record")
	}
}

func metadata(elapsed time.Duration, status string) types.Metadata {
	return types.Metadata{
		Time:      fmt.Sprintf("%.1fs", elapsed.Seconds()),
		ElapsedMs: elapsed.Milliseconds(),
		Status:    status,
	}
}

// FallbackReport is the generic report used when the pipeline cannot run.
func FallbackReport(elapsed time.Duration) types.Report {
	return types.Report{
		TranscriptAnalysis: types.CallUnderstanding{
			Summary:   "Wealth management discussion",
			CallType:  "Sales",
			Sentiment: "Positive",
			NextStep:  "Share details",
		},
		CoachingFeedback: types.CoachingFeedback{
			Strengths:    []string{"Professional", "Knowledgeable"},
			Improvements: []string{"More engagement needed"},
			Score:        "7/10",
			Actions:      []string{"Ask qualifying questions"},
		},
		ObjectionAnalysis: types.ObjectionAnalysis{
			ObjectionsFound: 0,
			Objections:      []types.Objection{},
			Recommendations: []string{"Ask qualifying questions"},
		},
		Metadata: metadata(elapsed, types.StatusFallback),
	}
}
