// Package llm owns the text-generation side of the pipeline: the Backend
// abstraction over a completion server and the Gateway that every analysis
// pass shares.
package llm

import "context"

// Backend turns a prompt into a continuation. Implementations should honour
// ctx cancellation.
type Backend interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// BackendFunc adapts a plain function to Backend.
type BackendFunc func(ctx context.Context, prompt string, maxTokens int) (string, error)

// Complete implements Backend.
func (f BackendFunc) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return f(ctx, prompt, maxTokens)
}

// Loader builds a Backend on demand. Load is where slow work (connecting,
// probing that the model exists) happens.
type Loader struct {
	Name string
	Load func(ctx context.Context) (Backend, error)
}

// Static returns a Loader that always yields b.
func Static(name string, b Backend) Loader {
	return Loader{
		Name: name,
		Load: func(context.Context) (Backend, error) { return b, nil },
	}
}
