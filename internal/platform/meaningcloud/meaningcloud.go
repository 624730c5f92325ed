// Package meaningcloud calls the MeaningCloud Summarization API
// (summarization-1.0). MeaningCloud has no question endpoint, so only
// summaries are served here.
package meaningcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/phrazzld/scry-notes/internal/generation"
)

// DefaultLanguage is sent as the lang form field.
const DefaultLanguage = "en"

// statusOK is the status code of a successful MeaningCloud response.
const statusOK = "0"

// maxResponseBytes caps how much of a response body is decoded.
const maxResponseBytes = 1 << 20

// statusRateLimited is returned when the request rate limit is exceeded.
const statusRateLimited = "104"

// Transport implements generation.Transport against summarization-1.0.
type Transport struct {
	client   *http.Client
	logger   *slog.Logger
	language string
}

type status struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

type summaryResponse struct {
	Status  status `json:"status"`
	Summary string `json:"summary"`
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
		client:   client,
		logger:   logger.With("component", "meaningcloud_transport"),
		language: DefaultLanguage,
	}
}

// Call implements generation.Transport.
func (t *Transport) Call(ctx context.Context, req generation.Request) (*generation.Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Operation != generation.OperationSummarize {
		return nil, fmt.Errorf("%w: meaningcloud: %s", generation.ErrUnsupportedOperation, req.Operation)
	}
	if req.Endpoint == "" {
		return nil, fmt.Errorf("%w: meaningcloud: endpoint is required", generation.ErrInvalidConfig)
	}

	sentences := req.MaxSentences
	if sentences <= 0 {
		sentences = 3
	}
	form := url.Values{}
	form.Set("key", req.Credential)
	form.Set("txt", req.Text)
	form.Set("sentences", strconv.Itoa(sentences))
	form.Set("lang", t.language)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: meaningcloud: create request: %v", generation.ErrInvalidConfig, err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	t.logger.DebugContext(ctx, "calling summarization API", "endpoint", req.Endpoint, "sentences", sentences)

	resp, err := t.client.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: meaningcloud: request: %v", generation.ErrTransientFailure, err)
	}
	defer resp.Body.Close()

	var body summaryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: meaningcloud: unexpected status %d", generation.ErrBackendUnavailable, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: meaningcloud: decode response: %v", generation.ErrInvalidResponse, err)
	}

	switch body.Status.Code {
	case statusOK:
		return &generation.Response{Text: strings.TrimSpace(body.Summary)}, nil
	case statusRateLimited:
		return nil, fmt.Errorf("%w: meaningcloud: %s", generation.ErrTransientFailure, body.Status.Msg)
	case "":
		return nil, fmt.Errorf("%w: meaningcloud: missing status (HTTP %d)", generation.ErrInvalidResponse, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: meaningcloud: %s (code %s)", generation.ErrBackendUnavailable, body.Status.Msg, body.Status.Code)
	}
}
