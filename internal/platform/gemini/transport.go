package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/phrazzld/scry-notes/internal/generation"
)

// ErrEmptyText is returned when a request has no text to send.
var ErrEmptyText = errors.New("text cannot be empty")

// ContentGenerator is the part of the genai SDK the transport uses.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// ClientFactory creates a content generator for an API key.
type ClientFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// Transport implements generation.Transport using the Gemini API. The
// request Endpoint is the model name.
type Transport struct {
	logger       *slog.Logger
	defaultModel string
	newClient    ClientFactory

	mu      sync.Mutex
	clients map[string]ContentGenerator
}

// Option configures a Transport.
type Option func(*Transport)

// WithClientFactory replaces the SDK client constructor.
func WithClientFactory(f ClientFactory) Option {
	return func(t *Transport) {
		t.newClient = f
	}
}

// New creates a Transport. defaultModel is used for requests that name no model.
func New(logger *slog.Logger, defaultModel string, opts ...Option) (*Transport, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if strings.TrimSpace(defaultModel) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	t := &Transport{
		logger:       logger.With("component", "gemini_transport"),
		defaultModel: defaultModel,
		newClient:    newSDKClient,
		clients:      make(map[string]ContentGenerator),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func newSDKClient(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Call implements generation.Transport.
func (t *Transport) Call(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyText
	}
	if req.Credential == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	prompt, err := renderPrompt(req)
	if err != nil {
		return nil, err
	}

	client, err := t.client(ctx, req.Credential)
	if err != nil {
		return nil, err
	}

	model := req.Endpoint
	if model == "" {
		model = t.defaultModel
	}

	t.logger.DebugContext(ctx, "Making Gemini API call",
		"model", model,
		"operation", req.Operation,
		"prompt_length", len(prompt))

	resp, err := client.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyAPIError(err)
	}

	text, err := extractText(resp)
	if err != nil {
		t.logger.WarnContext(ctx, "Unusable Gemini response", "model", model, "error", err)
		return nil, err
	}

	t.logger.DebugContext(ctx, "Gemini API call successful", "model", model, "response_length", len(text))
	return &generation.Response{Text: text}, nil
}

func (t *Transport) client(ctx context.Context, apiKey string) (ContentGenerator, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c, ok := t.clients[apiKey]; ok {
		return c, nil
	}
	c, err := t.newClient(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}
	t.clients[apiKey] = c
	return c, nil
}

// extractText returns the text of the first candidate or classifies why
// there is none.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String()), nil
}

// classifyAPIError treats client errors other than rate limiting as
// permanent. Everything else may succeed on retry.
func classifyAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429 {
		return fmt.Errorf("%w: gemini: %s (%d)", generation.ErrBackendUnavailable, apiErr.Message, apiErr.Code)
	}
	return fmt.Errorf("%w: gemini: %v", generation.ErrTransientFailure, err)
}
