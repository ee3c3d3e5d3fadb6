package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/result"
)

// Placeholder is returned by Generate whenever no real output is available.
const Placeholder = "Analysis completed successfully."

// DefaultTimeout bounds a single backend call and the whole load sequence.
const DefaultTimeout = 60 * time.Second

// ErrDegraded means every loader failed; the gateway will never call a
// backend again.
var ErrDegraded = errors.New("llm: no backend could be loaded")

// Gateway is the single shared handle to a generation backend. The backend
// is loaded on first use, trying each Loader in order, and is never replaced
// afterwards. Generate never fails: errors become Placeholder.
//
// Gateway is safe for concurrent use once constructed.
type Gateway struct {
	loaders []Loader
	timeout time.Duration
	log     *logger.Logger

	once    sync.Once
	backend Backend
	active  string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithLogger sets the logger used for load and generation failures.
func WithLogger(l *logger.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// NewGateway creates a gateway over loaders, primary first.
func NewGateway(loaders []Loader, opts ...Option) *Gateway {
	g := &Gateway{
		loaders: loaders,
		timeout: DefaultTimeout,
		log:     logger.Discard(),
	}
	for _, o := range opts {
		o(g)
	}
	g.log = g.log.Component("llm-gateway")
	return g
}

// Generate returns the backend continuation for prompt, or Placeholder.
func (g *Gateway) Generate(ctx context.Context, prompt string, maxTokens int) string {
	return g.GenerateResult(ctx, prompt, maxTokens).Value
}

// GenerateResult is Generate with the fallback made explicit.
func (g *Gateway) GenerateResult(ctx context.Context, prompt string, maxTokens int) result.Result[string] {
	g.ensureLoaded(ctx)
	if g.backend == nil {
		return result.Fallback(Placeholder, ErrDegraded)
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.complete(callCtx, prompt, maxTokens)
	log := g.log.With("backend", g.active).With("max_tokens", maxTokens).With("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		log.WithError(err).Warn("generation failed, using placeholder")
		return result.Fallback(Placeholder, err)
	}
	log.Debug("generation finished")
	return result.OK(stripEcho(text, prompt))
}

// Status reports "ready:<name>" or "degraded", loading the backend if that
// has not happened yet.
func (g *Gateway) Status(ctx context.Context) string {
	g.ensureLoaded(ctx)
	if g.backend == nil {
		return "degraded"
	}
	return "ready:" + g.active
}

func (g *Gateway) ensureLoaded(ctx context.Context) {
	g.once.Do(func() {
		// a cancelled first caller must not degrade the gateway for everyone
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.timeout)
		defer cancel()
		g.load(loadCtx)
	})
}

func (g *Gateway) load(ctx context.Context) {
	for _, l := range g.loaders {
		log := g.log.With("backend", l.Name)
		b, err := safeLoad(ctx, l)
		if err != nil {
			log.WithError(err).Warn("backend load failed")
			continue
		}
		g.backend = b
		g.active = l.Name
		log.Info("backend loaded")
		return
	}
	g.log.WithError(ErrDegraded).Error("all backends failed to load, running degraded")
}

func safeLoad(ctx context.Context, l Loader) (b Backend, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("load panicked: %v", r)
		}
	}()
	if l.Load == nil {
		return nil, errors.New("loader has no Load func")
	}
	b, err = l.Load(ctx)
	if err == nil && b == nil {
		err = errors.New("loader returned nil backend")
	}
	return b, err
}

func (g *Gateway) complete(ctx context.Context, prompt string, maxTokens int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("backend panicked: %v", r)
		}
	}()
	return g.backend.Complete(ctx, prompt, maxTokens)
}

// stripEcho removes the prompt when the backend echoes it back.
func stripEcho(text, prompt string) string {
	if prompt != "" && strings.HasPrefix(text, prompt) {
		return strings.TrimSpace(text[len(prompt):])
	}
	return text
}
