package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-notes/internal/platform/logger"
)

func TestRespondWithErrorAndLog_RedactsAndHidesDetails(t *testing.T) {
	t.Parallel()

	log, buf := logger.GetTestLogger(t)

	ctx := logger.WithLogger(WithTraceID(context.Background(), "trace-1"), log)
	req := httptest.NewRequest(http.MethodPost, "/api/summary", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "An unexpected error occurred",
		errors.New("upstream rejected Bearer abcdefghijklmnop"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "An unexpected error occurred", resp.Error)
	assert.Equal(t, "trace-1", resp.TraceID)

	logger.AssertLogContains(t, buf, `"level":"ERROR"`)
	logger.AssertLogNotContains(t, buf, "abcdefghijklmnop")
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Text string `json:"text" validate:"required"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
		empty   bool
	}{
		{name: "valid", body: `{"text":"hi"}`},
		{name: "empty", body: "", wantErr: true, empty: true},
		{name: "unknown field", body: `{"text":"hi","x":1}`, wantErr: true},
		{name: "trailing object", body: `{"text":"a"}{"text":"b"}`, wantErr: true},
		{name: "malformed", body: `{"text":`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var p payload
			err := DecodeJSON(httptest.NewRecorder(), req, &p)
			if !tc.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "hi", p.Text)
				assert.NoError(t, ValidateRequest(&p))
				return
			}
			require.Error(t, err)
			if tc.empty {
				assert.ErrorIs(t, err, ErrEmptyBody)
			}
		})
	}

	assert.Error(t, ValidateRequest(&payload{}))
}
