package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/provider"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	cfg := config.Default()
	cfg.Providers.Simulation = config.SimulationConfig{Seed: 3}
	cfg.Server.ShutdownTimeoutSeconds = 1

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	core, err := app.New(context.Background(), cfg, l, app.Options{Credentials: config.NewCredentials(nil)})
	require.NoError(t, err)
	return newApplication(cfg, l, core)
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRouter_DefaultProviderSummary(t *testing.T) {
	t.Parallel()

	router := newTestApplication(t).setupRouter()
	body := `{"text":"Rivers carry sediment downstream. Deltas form where rivers meet the sea. Floods spread silt."}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/summary", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Provider string `json:"provider"`
		Success  bool   `json:"success"`
		Summary  string `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, provider.NameMeaningCloud, resp.Provider)
	assert.True(t, resp.Success, "meaningcloud ships with a demo key")
	assert.Equal(t, "Rivers carry sediment downstream.  Deltas form where rivers meet the sea.  Floods spread silt.", resp.Summary)
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	application := newTestApplication(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.serve(ctx, ln, application.setupRouter()) }()

	url := fmt.Sprintf("http://%s/health", ln.Addr().String())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
