package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/provider"
)

// ProviderLookup resolves provider names. *provider.Registry satisfies it.
type ProviderLookup interface {
	// Get returns the named provider, or the default one for an empty name
	Get(name string) (*provider.Provider, error)

	// Info describes every available provider
	Info() []provider.Info
}

// Analysis is the combined result of summarizing a note and building its flashcards.
type Analysis struct {
	Provider   string                 `json:"provider"`
	Summary    domain.SummaryResult   `json:"summary"`
	Flashcards domain.FlashcardResult `json:"flashcards"`
}

// NoteService provides note-analysis operations
type NoteService interface {
	// Providers lists the available providers and whether each is configured
	Providers(ctx context.Context) []provider.Info

	// Summarize produces a summary of the note with the named provider
	Summarize(ctx context.Context, providerName string, req *domain.AnalysisRequest) (domain.SummaryResult, error)

	// Flashcards produces flashcards for the note with the named provider
	Flashcards(ctx context.Context, providerName string, req *domain.AnalysisRequest) (domain.FlashcardResult, error)

	// Analyze runs Summarize and Flashcards concurrently
	Analyze(ctx context.Context, providerName string, req *domain.AnalysisRequest) (*Analysis, error)
}

// noteServiceImpl implements the NoteService interface
type noteServiceImpl struct {
	providers ProviderLookup
	logger    *slog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(providers ProviderLookup, logger *slog.Logger) (NoteService, error) {
	if providers == nil {
		return nil, errors.New("providers cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &noteServiceImpl{
		providers: providers,
		logger:    logger.With("component", "note_service"),
	}, nil
}

// Providers implements NoteService
func (s *noteServiceImpl) Providers(ctx context.Context) []provider.Info {
	return s.providers.Info()
}

// Summarize implements NoteService
func (s *noteServiceImpl) Summarize(
	ctx context.Context,
	providerName string,
	req *domain.AnalysisRequest,
) (domain.SummaryResult, error) {
	p, err := s.resolve(providerName, req)
	if err != nil {
		return domain.SummaryResult{}, err
	}

	s.logger.DebugContext(ctx, "summarizing note", "provider", p.Name(), "text_length", len(req.Text))
	return p.GenerateSummary(ctx, req.Text), nil
}

// Flashcards implements NoteService
func (s *noteServiceImpl) Flashcards(
	ctx context.Context,
	providerName string,
	req *domain.AnalysisRequest,
) (domain.FlashcardResult, error) {
	p, err := s.resolve(providerName, req)
	if err != nil {
		return domain.FlashcardResult{}, err
	}

	s.logger.DebugContext(ctx, "generating flashcards", "provider", p.Name(), "text_length", len(req.Text))
	return p.GenerateFlashcards(ctx, req.Text), nil
}

// Analyze implements NoteService. The two provider calls are independent;
// a failure in one never affects the other.
func (s *noteServiceImpl) Analyze(
	ctx context.Context,
	providerName string,
	req *domain.AnalysisRequest,
) (*Analysis, error) {
	p, err := s.resolve(providerName, req)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{Provider: p.Name()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis.Summary = p.GenerateSummary(gctx, req.Text)
		return nil
	})
	g.Go(func() error {
		analysis.Flashcards = p.GenerateFlashcards(gctx, req.Text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze note: %w", err)
	}

	s.logger.InfoContext(ctx, "note analyzed",
		"provider", p.Name(),
		"summary_success", analysis.Summary.Success,
		"flashcards_success", analysis.Flashcards.Success,
		"flashcard_count", len(analysis.Flashcards.Display()))

	return analysis, nil
}

func (s *noteServiceImpl) resolve(providerName string, req *domain.AnalysisRequest) (*provider.Provider, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	p, err := s.providers.Get(providerName)
	if err != nil {
		if errors.Is(err, provider.ErrUnknownProvider) {
			return nil, fmt.Errorf("%w: %v", ErrProviderNotFound, err)
		}
		return nil, fmt.Errorf("resolve provider: %w", err)
	}
	return p, nil
}
