package provider

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/generation"
)

// ErrDuplicateProvider is returned when a name is registered twice.
var ErrDuplicateProvider = errors.New("provider already registered")

// Info describes a registered provider for listings.
type Info struct {
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	Description      string `json:"description"`
	CredentialKey    string `json:"credentialKey"`
	Configured       bool   `json:"configured"`
	SummaryEndpoint  string `json:"summaryEndpoint,omitempty"`
	QuestionEndpoint string `json:"questionEndpoint,omitempty"`
	MinLength        int    `json:"minLength"`
	SummarySentences int    `json:"summarySentences"`
	FlashcardCap     int    `json:"flashcardCap"`
	QuestionStyle    string `json:"questionStyle"`
	Default          bool   `json:"default"`
}

// Registry looks providers up by name.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]*Provider
	order       []string
	defaultName string
}

// NewRegistry creates an empty registry. An empty name passed to Get
// resolves to defaultName.
func NewRegistry(defaultName string) *Registry {
	return &Registry{
		providers:   make(map[string]*Provider),
		defaultName: strings.ToLower(strings.TrimSpace(defaultName)),
	}
}

// Register adds p under its variant name.
func (r *Registry) Register(p *Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(p.Name())
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProvider, name)
	}
	r.providers[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get returns the provider registered under name, or the default provider
// when name is empty.
func (r *Registry) Get(name string) (*Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = r.defaultName
	}
	p, ok := r.providers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Default returns the name used when callers do not pick a provider.
func (r *Registry) Default() string {
	return r.defaultName
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Info describes every registered provider in registration order.
func (r *Registry) Info() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, 0, len(r.order))
	for _, name := range r.order {
		p := r.providers[name]
		v := p.Variant()
		out = append(out, Info{
			Name:             v.Name,
			DisplayName:      v.DisplayName,
			Description:      v.Description,
			CredentialKey:    v.CredentialKey,
			Configured:       p.IsConfigured(),
			SummaryEndpoint:  v.SummaryEndpoint,
			QuestionEndpoint: v.QuestionEndpoint,
			MinLength:        v.MinLength,
			SummarySentences: v.SummarySentences,
			FlashcardCap:     v.FlashcardCap,
			QuestionStyle:    string(v.QuestionStyle),
			Default:          name == r.defaultName,
		})
	}
	return out
}

// TransportFactory picks the transport that serves a variant.
type TransportFactory func(v Variant) (generation.Transport, error)

// BuildRegistry creates a provider for every variant, applying the configured
// overrides, and registers them. Overrides naming an unknown variant are an
// error, as is a default that names no variant.
func BuildRegistry(
	cfg config.ProvidersConfig,
	variants []Variant,
	transports TransportFactory,
	credentials config.CredentialSource,
	opts ...Option,
) (*Registry, error) {
	known := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		known[v.Name] = struct{}{}
	}

	names := make([]string, 0, len(cfg.Overrides))
	for name := range cfg.Overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := known[strings.ToLower(name)]; !ok {
			return nil, fmt.Errorf("override for %q: %w", name, ErrUnknownProvider)
		}
	}

	reg := NewRegistry(cfg.Default)
	for _, v := range variants {
		if o, ok := lookupOverride(cfg.Overrides, v.Name); ok {
			var err error
			if v, err = v.WithOverride(o); err != nil {
				return nil, err
			}
		}

		transport, err := transports(v)
		if err != nil {
			return nil, fmt.Errorf("transport for %s: %w", v.Name, err)
		}

		p, err := New(v, transport, credentials, opts...)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(p); err != nil {
			return nil, err
		}
	}

	if _, err := reg.Get(""); err != nil {
		return nil, fmt.Errorf("default provider: %w", err)
	}
	return reg, nil
}

func lookupOverride(overrides map[string]config.VariantOverride, name string) (config.VariantOverride, bool) {
	for k, o := range overrides {
		if strings.EqualFold(k, name) {
			return o, true
		}
	}
	return config.VariantOverride{}, false
}
