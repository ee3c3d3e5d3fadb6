// Package analysis implements the independent passes run over a call
// transcript. Every pass builds a prompt from a bounded transcript prefix,
// asks the Generator for a continuation and parses it into a fixed-shape
// record. Passes never fail: any panic or cancelled context yields the pass
// fallback record with its Error field set.
package analysis

import (
	"context"
	"fmt"

	"sales-coach-go/internal/result"
)

// Generator is the one operation a pass needs from the generation gateway.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) string
}

// Budget bounds one pass: how much transcript goes into the prompt and how
// many tokens may come back.
type Budget struct {
	InputChars int
	MaxTokens  int
}

// Per-pass budgets.
var (
	CallUnderstandingBudget = Budget{InputChars: 500, MaxTokens: 100}
	CoachingBudget          = Budget{InputChars: 400, MaxTokens: 100}
	ObjectionBudget         = Budget{InputChars: 300, MaxTokens: 80}
)

// Prefix returns the first InputChars characters (runes) of s.
func (b Budget) Prefix(s string) string {
	if b.InputChars <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == b.InputChars {
			return s[:i]
		}
		n++
	}
	return s
}

// contain runs fn and turns a panic or a dead context into the fallback.
func contain[T any](ctx context.Context, pass string, fallback func(error) T, fn func() T) (res result.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s: %v", pass, r)
			res = result.Fallback(fallback(err), err)
		}
	}()
	if err := ctx.Err(); err != nil {
		err = fmt.Errorf("%s: %w", pass, err)
		return result.Fallback(fallback(err), err)
	}
	return result.OK(fn())
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
