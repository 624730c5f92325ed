// Package huggingface calls the Hugging Face Inference API for summaries
// (facebook/bart-large-cnn) and questions (valhalla/t5-base-qa-qg-hl).
package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/scry-notes/internal/generation"
)

// Default generation parameters sent with every request.
const (
	SummaryMaxLength  = 100
	SummaryMinLength  = 30
	Temperature       = 0.7
	QuestionMaxLength = 64
)

// MaxResponseBytes caps how much of a response body is read.
const MaxResponseBytes = 1 << 20

// Transport implements generation.Transport against the Inference API.
// The request Endpoint is the full model URL.
type Transport struct {
	client *http.Client
	logger *slog.Logger
}

type parameters struct {
	MaxLength          int     `json:"max_length,omitempty"`
	MinLength          int     `json:"min_length,omitempty"`
	Temperature        float64 `json:"temperature,omitempty"`
	NumReturnSequences int     `json:"num_return_sequences,omitempty"`
}

type inferenceRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type inferenceOutput struct {
	SummaryText   string `json:"summary_text"`
	GeneratedText string `json:"generated_text"`
}

type errorResponse struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time"`
}

// New creates a Transport. A nil client uses http.DefaultClient.
func New(client *http.Client, logger *slog.Logger) *Transport {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transport{
		client: client,
		logger: logger.With("component", "huggingface_transport"),
	}
}

// Call implements generation.Transport.
func (t *Transport) Call(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Endpoint == "" {
		return nil, fmt.Errorf("%w: huggingface: endpoint is required", generation.ErrInvalidConfig)
	}

	body, err := json.Marshal(inferenceRequest{
		Inputs:     req.Text,
		Parameters: parametersFor(req.Operation),
	})
	if err != nil {
		return nil, fmt.Errorf("huggingface: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: huggingface: create request: %v", generation.ErrInvalidConfig, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.Credential)

	t.logger.DebugContext(ctx, "calling inference API", "endpoint", req.Endpoint, "operation", req.Operation)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: huggingface: request: %v", generation.ErrTransientFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: huggingface: read response: %v", generation.ErrTransientFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, raw)
	}
	if len(raw) > MaxResponseBytes {
		return nil, fmt.Errorf("%w: huggingface: response exceeds %d bytes", generation.ErrInvalidResponse, MaxResponseBytes)
	}

	var outputs []inferenceOutput
	if err := json.Unmarshal(raw, &outputs); err != nil {
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%w: huggingface: %s", generation.ErrBackendUnavailable, errResp.Error)
		}
		return nil, fmt.Errorf("%w: huggingface: decode response: %v", generation.ErrInvalidResponse, err)
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("%w: huggingface: empty response", generation.ErrInvalidResponse)
	}

	text := outputs[0].SummaryText
	if text == "" {
		text = outputs[0].GeneratedText
	}
	return &generation.Response{Text: strings.TrimSpace(text)}, nil
}

func parametersFor(op generation.Operation) parameters {
	if op == generation.OperationQuestion {
		return parameters{MaxLength: QuestionMaxLength, NumReturnSequences: 1}
	}
	return parameters{MaxLength: SummaryMaxLength, MinLength: SummaryMinLength, Temperature: Temperature}
}

// statusError classifies a non-200 response. A loading model (503) and rate
// limiting (429) are transient.
func statusError(status int, raw []byte) error {
	msg := fmt.Sprintf("unexpected status %d", status)
	var errResp errorResponse
	if json.Unmarshal(raw, &errResp) == nil && errResp.Error != "" {
		msg = errResp.Error
	}

	switch status {
	case http.StatusServiceUnavailable, http.StatusTooManyRequests, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: huggingface: %s", generation.ErrTransientFailure, msg)
	default:
		return fmt.Errorf("%w: huggingface: %s", generation.ErrBackendUnavailable, msg)
	}
}
