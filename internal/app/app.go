// Package app assembles the provider registry and note service from
// configuration. Both the HTTP server and the CLI build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/platform/gemini"
	"github.com/phrazzld/scry-notes/internal/platform/huggingface"
	"github.com/phrazzld/scry-notes/internal/platform/meaningcloud"
	"github.com/phrazzld/scry-notes/internal/platform/simulated"
	"github.com/phrazzld/scry-notes/internal/provider"
	"github.com/phrazzld/scry-notes/internal/service"
)

// Transport modes accepted in ProvidersConfig.Transport.
const (
	TransportSimulated = "simulated"
	TransportLive      = "live"
)

// httpTimeout bounds a single live backend request.
const httpTimeout = 30 * time.Second

// App holds the assembled components.
type App struct {
	Config      *config.Config
	Logger      *slog.Logger
	Credentials *config.Credentials
	Registry    *provider.Registry
	Notes       service.NoteService
	Emitter     *events.InMemoryEventEmitter
}

// Options adjusts how New assembles the application.
type Options struct {
	// Credentials, when set, is used instead of loading from the
	// environment and cfg.EnvFile.
	Credentials *config.Credentials

	// Handlers receive every progress event in addition to the debug logger.
	Handlers []events.EventHandler

	// HTTPClient serves live HTTP backends. Nil uses a client with a 30s timeout.
	HTTPClient *http.Client

	// Gemini options are passed to the Gemini transport in live mode.
	Gemini []gemini.Option
}

// New assembles the application from cfg.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	variants := provider.Builtins(cfg.Providers.Gemini.ModelName)

	creds := opts.Credentials
	if creds == nil {
		var err error
		creds, err = config.LoadCredentials(cfg.EnvFile, CredentialKeys(cfg.Providers, variants)...)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials: %w", err)
		}
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(events.NewLoggingHandler(logger.With("component", "progress"), slog.LevelDebug))
	for _, h := range opts.Handlers {
		emitter.RegisterHandler(h)
	}

	factory, err := newTransportFactory(cfg.Providers, logger, opts)
	if err != nil {
		return nil, err
	}

	registry, err := provider.BuildRegistry(cfg.Providers, variants, factory, creds,
		provider.WithLogger(logger),
		provider.WithEmitter(emitter))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}

	notes, err := service.NewNoteService(registry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create note service: %w", err)
	}

	for _, info := range registry.Info() {
		logger.InfoContext(ctx, "provider registered",
			"provider", info.Name,
			"configured", info.Configured,
			"default", info.Default)
	}

	return &App{
		Config:      cfg,
		Logger:      logger,
		Credentials: creds,
		Registry:    registry,
		Notes:       notes,
		Emitter:     emitter,
	}, nil
}

// CredentialKeys lists every credential key the variants read, including
// keys renamed through overrides, sorted and without duplicates.
func CredentialKeys(cfg config.ProvidersConfig, variants []provider.Variant) []string {
	seen := make(map[string]struct{})
	for _, v := range variants {
		seen[v.CredentialKey] = struct{}{}
	}
	for _, o := range cfg.Overrides {
		if o.CredentialKey != "" {
			seen[o.CredentialKey] = struct{}{}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// newTransportFactory returns the factory BuildRegistry uses. Simulated mode
// shares one simulated transport; live mode picks the backend client by
// provider name and simulates providers without a live client.
func newTransportFactory(cfg config.ProvidersConfig, logger *slog.Logger, opts Options) (provider.TransportFactory, error) {
	sim, err := simulated.New(simulated.FromConfig(cfg.Simulation), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulated transport: %w", err)
	}

	switch cfg.Transport {
	case "", TransportSimulated:
		return func(provider.Variant) (generation.Transport, error) { return sim, nil }, nil
	case TransportLive:
	default:
		return nil, fmt.Errorf("%w: unknown transport mode %q", generation.ErrInvalidConfig, cfg.Transport)
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}

	return func(v provider.Variant) (generation.Transport, error) {
		switch v.Name {
		case provider.NameHuggingFace:
			return huggingface.New(client, logger), nil
		case provider.NameMeaningCloud:
			return meaningcloud.New(client, logger), nil
		case provider.NameGemini:
			return gemini.New(logger, cfg.Gemini.ModelName, opts.Gemini...)
		default:
			logger.Warn("no live backend for provider, using simulated transport", "provider", v.Name)
			return sim, nil
		}
	}, nil
}
