// Package simulated provides an offline stand-in for the text-analysis
// backends. It reproduces their observable behavior, including latency and
// occasional failures, so the full provider flow can run without network
// access or real credentials.
package simulated

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/question"
	"github.com/phrazzld/scry-notes/internal/textsplit"
)

const (
	// MissingKeyMessage is returned when a request carries no credential.
	MissingKeyMessage = "Missing API key"

	defaultSentences = 3
)

// Config tunes the simulated backend.
type Config struct {
	MinLatency  time.Duration
	MaxLatency  time.Duration
	FailureRate float64

	// Seed makes latency, failures and keyword picks reproducible. Zero seeds
	// from the clock.
	Seed int64
}

// FromConfig converts the application simulation settings.
func FromConfig(c config.SimulationConfig) Config {
	return Config{
		MinLatency:  time.Duration(c.MinLatencyMillis) * time.Millisecond,
		MaxLatency:  time.Duration(c.MaxLatencyMillis) * time.Millisecond,
		FailureRate: c.FailureRate,
		Seed:        c.Seed,
	}
}

// Transport implements generation.Transport without leaving the process.
type Transport struct {
	cfg    Config
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a simulated transport.
func New(cfg Config, logger *slog.Logger) (*Transport, error) {
	if cfg.MinLatency < 0 || cfg.MaxLatency < cfg.MinLatency {
		return nil, fmt.Errorf("%w: latency range [%s, %s] is invalid",
			generation.ErrInvalidConfig, cfg.MinLatency, cfg.MaxLatency)
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		return nil, fmt.Errorf("%w: failure rate %v is outside [0, 1]", generation.ErrInvalidConfig, cfg.FailureRate)
	}
	if logger == nil {
		logger = slog.Default()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Transport{
		cfg:    cfg,
		logger: logger.With("component", "simulated_transport"),
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// Call implements generation.Transport.
func (t *Transport) Call(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	delay, fail := t.draw()
	t.logger.DebugContext(ctx, "simulating backend call",
		"provider", req.Provider,
		"operation", req.Operation,
		"endpoint", req.Endpoint,
		"delay_ms", delay.Milliseconds())

	if err := wait(ctx, delay); err != nil {
		return nil, err
	}

	if req.Credential == "" {
		return nil, fmt.Errorf("%w: %s", generation.ErrBackendUnavailable, MissingKeyMessage)
	}
	if fail {
		return nil, simulatedFailure(req.Provider)
	}

	switch req.Operation {
	case generation.OperationSummarize:
		return &generation.Response{Text: Summarize(req.Text, req.MaxSentences)}, nil
	case generation.OperationQuestion:
		style, err := question.ParseStyle(req.QuestionStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", generation.ErrInvalidConfig, err)
		}
		t.mu.Lock()
		q := question.Generate(t.rng, req.Text, style)
		t.mu.Unlock()
		return &generation.Response{Text: q}, nil
	}
	return nil, fmt.Errorf("%w: %q", generation.ErrUnsupportedOperation, req.Operation)
}

// Summarize joins the first n non-blank sentences of text, as an extractive
// backend would.
func Summarize(text string, n int) string {
	if n <= 0 {
		n = defaultSentences
	}
	return strings.Join(textsplit.Take(textsplit.NonEmptySentences(text), n), ". ") + "."
}

func (t *Transport) draw() (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delay := t.cfg.MinLatency
	if spread := t.cfg.MaxLatency - t.cfg.MinLatency; spread > 0 {
		delay += time.Duration(t.rng.Int63n(int64(spread) + 1))
	}
	return delay, t.rng.Float64() < t.cfg.FailureRate
}

// simulatedFailure mirrors the error each backend is known for. A loading
// model is worth retrying; a rate limit is not.
func simulatedFailure(provider string) error {
	if provider == "huggingface" {
		return fmt.Errorf("%w: Simulated API error: Model is currently loading", generation.ErrTransientFailure)
	}
	return fmt.Errorf("%w: Simulated API error: Rate limit exceeded", generation.ErrBackendUnavailable)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
