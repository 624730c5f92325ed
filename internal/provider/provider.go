package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/fallback"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/question"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/phrazzld/scry-notes/internal/textsplit"
)

// Operation names used in progress events and logs.
const (
	OperationSummary    = "summary"
	OperationFlashcards = "flashcards"
)

const (
	// TooShortSummary is the fallback summary for text below the minimum length.
	TooShortSummary = "The provided text is too short for summarization."

	// EmptySummary replaces a blank backend summary.
	EmptySummary = "No summary generated."

	// EmptyQuestion replaces a blank backend question.
	EmptyQuestion = "What is the main point of this paragraph?"

	// minParagraphLength is the trimmed length a paragraph must exceed to become a card.
	minParagraphLength = 30
)

// TooShortFlashcards returns the fallback card set for text below the minimum length.
func TooShortFlashcards() []domain.Flashcard {
	return []domain.Flashcard{{
		ID:       0,
		Question: "Why is the text too short?",
		Answer:   "The provided text needs to be longer to generate meaningful flashcards.",
	}}
}

// Provider produces summaries and flashcards from one backend variant.
// It is safe for concurrent use.
type Provider struct {
	variant     Variant
	transport   generation.Transport
	credentials config.CredentialSource
	logger      *slog.Logger
	emitter     events.EventEmitter
	rng         question.Rand
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithEmitter sets the progress event emitter. The default discards events.
func WithEmitter(emitter events.EventEmitter) Option {
	return func(p *Provider) {
		if emitter != nil {
			p.emitter = emitter
		}
	}
}

// WithRand sets the random source used to pick question keywords.
// The source is guarded by the Provider, so it need not be concurrency safe.
func WithRand(rng question.Rand) Option {
	return func(p *Provider) {
		if rng != nil {
			p.rng = &lockedRand{src: rng}
		}
	}
}

// New creates a Provider for variant v.
func New(
	v Variant,
	transport generation.Transport,
	credentials config.CredentialSource,
	opts ...Option,
) (*Provider, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, fmt.Errorf("%w: %s: transport cannot be nil", ErrInvalidVariant, v.Name)
	}
	if credentials == nil {
		return nil, fmt.Errorf("%w: %s: credential source cannot be nil", ErrInvalidVariant, v.Name)
	}
	if v.QuestionStyle == "" {
		v.QuestionStyle = question.StyleDetailed
	}

	p := &Provider{
		variant:     v,
		transport:   transport,
		credentials: credentials,
		logger:      slog.Default(),
		emitter:     events.NopEmitter{},
		rng:         &lockedRand{src: rand.New(rand.NewSource(time.Now().UnixNano()))},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "provider", "provider", v.Name)

	return p, nil
}

// Name returns the variant name.
func (p *Provider) Name() string {
	return p.variant.Name
}

// Variant returns a copy of the provider's variant.
func (p *Provider) Variant() Variant {
	return p.variant
}

// IsConfigured reports whether a credential is available for this provider.
func (p *Provider) IsConfigured() bool {
	_, ok := p.credential()
	return ok
}

func (p *Provider) credential() (string, bool) {
	if value, ok := p.credentials.Lookup(p.variant.CredentialKey); ok && strings.TrimSpace(value) != "" {
		return value, true
	}
	if p.variant.DefaultCredential != "" {
		return p.variant.DefaultCredential, true
	}
	return "", false
}

// GenerateSummary summarizes text. It never returns an error: failures are
// reported in the result together with a fallback summary.
func (p *Provider) GenerateSummary(ctx context.Context, text string) domain.SummaryResult {
	p.report(ctx, OperationSummary, events.PhaseValidating, false)

	credential, ok := p.credential()
	if !ok {
		result := domain.NewSummaryFailure(domain.ErrorKindNotConfigured, p.notConfiguredMessage(), fallback.Summary(text))
		p.finish(ctx, OperationSummary, result.Success, result.ErrorKind)
		return result
	}

	if !p.longEnough(text) {
		msg := fmt.Errorf("%w for summarization: please provide more content", ErrInvalidInput).Error()
		result := domain.NewSummaryFailure(domain.ErrorKindInvalidInput, msg, TooShortSummary)
		p.finish(ctx, OperationSummary, result.Success, result.ErrorKind)
		return result
	}

	p.report(ctx, OperationSummary, events.PhaseContactingBackend, false)
	p.logger.DebugContext(ctx, "requesting summary",
		"endpoint", p.variant.SummaryEndpoint,
		"credential", redact.Credential(credential),
		"text_length", len(text))

	resp, err := p.call(ctx, generation.Request{
		Provider:     p.variant.Name,
		Operation:    generation.OperationSummarize,
		Endpoint:     p.variant.SummaryEndpoint,
		Credential:   credential,
		Text:         text,
		MaxSentences: p.variant.SummarySentences,
	})
	if err != nil {
		msg := p.backendMessage(ctx, "summary", err, credential)
		result := domain.NewSummaryFailure(domain.ErrorKindBackendFailure, msg, fallback.Summary(text))
		p.finish(ctx, OperationSummary, result.Success, result.ErrorKind)
		return result
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		summary = EmptySummary
	} else {
		summary = p.variant.SummaryPrefix + summary
	}

	result := domain.NewSummarySuccess(summary)
	p.finish(ctx, OperationSummary, result.Success, result.ErrorKind)
	return result
}

// GenerateFlashcards builds one card per paragraph of text, up to the
// variant's cap. Like GenerateSummary it reports failures in the result.
func (p *Provider) GenerateFlashcards(ctx context.Context, text string) domain.FlashcardResult {
	p.report(ctx, OperationFlashcards, events.PhaseValidating, false)

	credential, ok := p.credential()
	if !ok {
		result := domain.NewFlashcardFailure(domain.ErrorKindNotConfigured, p.notConfiguredMessage(), fallback.Flashcards(text))
		p.finish(ctx, OperationFlashcards, result.Success, result.ErrorKind)
		return result
	}

	if !p.longEnough(text) {
		msg := fmt.Errorf("%w for flashcard generation: please provide more content", ErrInvalidInput).Error()
		result := domain.NewFlashcardFailure(domain.ErrorKindInvalidInput, msg, TooShortFlashcards())
		p.finish(ctx, OperationFlashcards, result.Success, result.ErrorKind)
		return result
	}

	p.report(ctx, OperationFlashcards, events.PhaseContactingBackend, false)

	paragraphs := textsplit.Take(textsplit.Paragraphs(text, minParagraphLength), p.variant.FlashcardCap)
	p.logger.DebugContext(ctx, "generating flashcards",
		"paragraphs", len(paragraphs),
		"question_endpoint", p.variant.QuestionEndpoint,
		"credential", redact.Credential(credential))

	cards := make([]domain.Flashcard, 0, len(paragraphs))
	for i, paragraph := range paragraphs {
		q, err := p.question(ctx, paragraph, credential)
		if err != nil {
			msg := p.backendMessage(ctx, "flashcards", err, credential)
			result := domain.NewFlashcardFailure(domain.ErrorKindBackendFailure, msg, fallback.Flashcards(text))
			p.finish(ctx, OperationFlashcards, result.Success, result.ErrorKind)
			return result
		}
		cards = append(cards, domain.Flashcard{
			ID:       i,
			Question: q,
			Answer:   paragraph,
		})
	}

	result := domain.NewFlashcardSuccess(cards)
	p.finish(ctx, OperationFlashcards, result.Success, result.ErrorKind)
	return result
}

// question asks the backend for a question about paragraph, or generates one
// locally when the variant has no question endpoint.
func (p *Provider) question(ctx context.Context, paragraph, credential string) (string, error) {
	if p.variant.QuestionEndpoint == "" {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return question.Generate(p.rng, paragraph, p.variant.QuestionStyle), nil
	}

	resp, err := p.call(ctx, generation.Request{
		Provider:      p.variant.Name,
		Operation:     generation.OperationQuestion,
		Endpoint:      p.variant.QuestionEndpoint,
		Credential:    credential,
		Text:          paragraph,
		QuestionStyle: string(p.variant.QuestionStyle),
	})
	if err != nil {
		return "", err
	}

	q := strings.TrimSpace(resp.Text)
	if q == "" {
		return EmptyQuestion, nil
	}
	return q, nil
}

// call sends req through the transport, retrying transient failures up to
// MaxRetries additional times with exponential backoff.
func (p *Provider) call(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	base := p.variant.RetryBaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	backoff := retry.WithMaxRetries(uint64(p.variant.MaxRetries), retry.NewExponential(base))

	attempt := 0
	return retry.DoValue(ctx, backoff, func(ctx context.Context) (*generation.Response, error) {
		attempt++
		resp, err := p.transport.Call(ctx, req)
		if err != nil {
			if errors.Is(err, generation.ErrTransientFailure) && ctx.Err() == nil {
				p.logger.WarnContext(ctx, "transient backend failure",
					"operation", req.Operation,
					"attempt", attempt,
					"max_retries", p.variant.MaxRetries,
					"error", redact.Values(err.Error(), req.Credential))
				return nil, retry.RetryableError(err)
			}
			return nil, err
		}
		if resp == nil {
			return nil, fmt.Errorf("%w: empty response", generation.ErrInvalidResponse)
		}
		return resp, nil
	})
}

func (p *Provider) longEnough(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= p.variant.MinLength
}

func (p *Provider) notConfiguredMessage() string {
	return fmt.Errorf("%w: please add your %s API key (%s) to the .env file",
		ErrNotConfigured, p.displayName(), p.variant.CredentialKey).Error()
}

// backendMessage logs a backend failure and returns the redacted message
// placed in the result.
func (p *Provider) backendMessage(ctx context.Context, what string, err error, credential string) string {
	detail := redact.Values(err.Error(), credential)
	p.logger.ErrorContext(ctx, "backend call failed",
		"operation", what,
		"error", detail)
	return fmt.Errorf("%w: failed to generate %s: %s", ErrBackendFailure, what, detail).Error()
}

func (p *Provider) displayName() string {
	if p.variant.DisplayName != "" {
		return p.variant.DisplayName
	}
	return p.variant.Name
}

func (p *Provider) finish(ctx context.Context, operation string, success bool, kind domain.ErrorKind) {
	if success {
		p.logger.InfoContext(ctx, "provider call succeeded", "operation", operation)
	} else {
		p.logger.InfoContext(ctx, "provider call fell back", "operation", operation, "error_kind", kind)
	}
	p.report(ctx, operation, events.PhaseDone, success)
}

func (p *Provider) report(ctx context.Context, operation string, phase events.Phase, success bool) {
	event := events.NewProgressEvent(p.variant.Name, operation, phase)
	event.Success = success
	if err := p.emitter.EmitEvent(ctx, event); err != nil {
		p.logger.WarnContext(ctx, "failed to emit progress event", "phase", phase, "error", err)
	}
}

// lockedRand serializes access to a random source.
type lockedRand struct {
	mu  sync.Mutex
	src question.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}
