package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sales-coach-go/internal/actionable"
	"sales-coach-go/internal/aggregator"
	"sales-coach-go/internal/types"
)

// BatchRun is the outcome of analyzing a dataset.
type BatchRun struct {
	ID         string                `json:"batch_id"`
	Results    []types.BatchResult   `json:"results"`
	Insight    aggregator.Insight    `json:"insight"`
	ActionCard actionable.ActionCard `json:"action_card"`
	DurationMs int64                 `json:"duration_ms"`
}

// RunBatch analyzes records in order and rolls the results up.
func (a *App) RunBatch(ctx context.Context, records []types.CallRecord) BatchRun {
	start := time.Now()
	id := uuid.NewString()
	log := a.Log.With("batch_id", id).With("calls", len(records))
	log.Info("batch started")

	results := a.Processor.ProcessBatch(ctx, records)
	ins := aggregator.Aggregate(results)
	run := BatchRun{
		ID:         id,
		Results:    results,
		Insight:    ins,
		ActionCard: actionable.Generate(ins),
		DurationMs: time.Since(start).Milliseconds(),
	}
	log.WithField("fallback_calls", ins.FallbackCalls).WithField("duration_ms", run.DurationMs).Info("batch finished")
	return run
}
