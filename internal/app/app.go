// Package app wires configuration into the shared pipeline objects used by
// both the HTTP service and the CLI.
package app

import (
	"context"

	"sales-coach-go/internal/config"
	"sales-coach-go/internal/llm"
	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/orchestrator"
	"sales-coach-go/internal/processor"
	"sales-coach-go/internal/transcription"
)

// App holds the process-wide pipeline. Gateway is the only stateful piece and
// is shared by every request.
type App struct {
	Config       config.Config
	Log          *logger.Logger
	Gateway      *llm.Gateway
	Orchestrator *orchestrator.Orchestrator
	Transcriber  processor.Transcriber
	Processor    *processor.Processor
}

// Option overrides a collaborator, mostly for tests.
type Option func(*App)

// WithLoaders replaces the loaders derived from the config.
func WithLoaders(loaders ...llm.Loader) Option {
	return func(a *App) {
		a.Gateway = llm.NewGateway(loaders, llm.WithTimeout(a.Config.LLMTimeout), llm.WithLogger(a.Log))
	}
}

// WithTranscriber replaces the HTTP transcription client.
func WithTranscriber(t processor.Transcriber) Option {
	return func(a *App) {
		a.Transcriber = t
	}
}

// New builds the gateway, orchestrator and processor. Nothing is loaded
// until the first generation request.
func New(cfg config.Config, log *logger.Logger, opts ...Option) *App {
	if log == nil {
		log = logger.Discard()
	}
	a := &App{Config: cfg, Log: log}
	a.Gateway = llm.NewGateway(Loaders(cfg), llm.WithTimeout(cfg.LLMTimeout), llm.WithLogger(log))
	a.Transcriber = transcription.NewClient(cfg.TranscribeURL, cfg.UseMockTranscribe, log)
	for _, opt := range opts {
		opt(a)
	}
	a.Orchestrator = orchestrator.New(a.Gateway, orchestrator.WithLogger(log))
	a.Processor = processor.New(a.Transcriber, a.Orchestrator, log)
	return a
}

// Loaders returns the primary then fallback model loaders, or the demo
// backend when USE_MOCK_LLM is set.
func Loaders(cfg config.Config) []llm.Loader {
	if cfg.UseMockLLM {
		return []llm.Loader{llm.Static("mock", llm.NewDemoBackend())}
	}
	loaders := []llm.Loader{llm.OpenAILoader(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)}
	if cfg.LLMFallbackModel != "" && cfg.LLMFallbackModel != cfg.LLMModel {
		loaders = append(loaders, llm.OpenAILoader(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMFallbackModel))
	}
	return loaders
}

// Status reports the gateway state, loading the backend if needed.
func (a *App) Status(ctx context.Context) string {
	return a.Gateway.Status(ctx)
}
