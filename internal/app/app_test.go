package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/events"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/platform/gemini"
	"github.com/phrazzld/scry-notes/internal/platform/huggingface"
	"github.com/phrazzld/scry-notes/internal/platform/meaningcloud"
	"github.com/phrazzld/scry-notes/internal/platform/simulated"
	"github.com/phrazzld/scry-notes/internal/provider"
)

const noteText = "Tides are caused mainly by the gravitational pull of the moon. " +
	"The sun also contributes a smaller effect. Spring tides occur when both align.\n\n" +
	"Neap tides happen when the sun and moon pull at right angles to each other."

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func instantConfig() *config.Config {
	cfg := config.Default()
	cfg.Providers.Simulation = config.SimulationConfig{Seed: 7}
	return cfg
}

func TestNew_SimulatedAnalysis(t *testing.T) {
	t.Parallel()

	cfg := instantConfig()
	cfg.Providers.Default = provider.NameHuggingFace

	recorder := &events.Recorder{}
	a, err := New(context.Background(), cfg, quietLogger(), Options{
		Credentials: config.NewCredentials(map[string]string{"HUGGINGFACE_API_KEY": "hf_app_test_key"}),
		Handlers:    []events.EventHandler{recorder},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		provider.NameOpenAI, provider.NameHuggingFace, provider.NameMeaningCloud, provider.NameGemini,
	}, a.Registry.Names())

	analysis, err := a.Notes.Analyze(context.Background(), "", &domain.AnalysisRequest{Text: noteText})
	require.NoError(t, err)
	assert.Equal(t, provider.NameHuggingFace, analysis.Provider)
	assert.True(t, analysis.Summary.Success)
	assert.Equal(t, simulated.Summarize(noteText, 3), analysis.Summary.Summary)
	assert.True(t, analysis.Flashcards.Success)
	assert.Len(t, analysis.Flashcards.Flashcards, 2)

	assert.NotEmpty(t, recorder.Events())

	summary, err := a.Notes.Summarize(context.Background(), provider.NameOpenAI, &domain.AnalysisRequest{Text: noteText})
	require.NoError(t, err)
	assert.False(t, summary.Success)
	assert.Equal(t, domain.ErrorKindNotConfigured, summary.ErrorKind)
}

func TestNew_RejectsUnknownDefault(t *testing.T) {
	t.Parallel()

	cfg := instantConfig()
	cfg.Providers.Default = "nope"

	_, err := New(context.Background(), cfg, quietLogger(), Options{Credentials: config.NewCredentials(nil)})
	assert.ErrorIs(t, err, provider.ErrUnknownProvider)
}

func TestCredentialKeys(t *testing.T) {
	t.Parallel()

	cfg := config.ProvidersConfig{Overrides: map[string]config.VariantOverride{
		"openai": {CredentialKey: "MY_OPENAI_KEY"},
	}}

	assert.Equal(t, []string{
		"GEMINI_API_KEY", "HUGGINGFACE_API_KEY", "MEANINGCLOUD_API_KEY", "MY_OPENAI_KEY", "OPENAI_API_KEY",
	}, CredentialKeys(cfg, provider.Builtins("gemini-2.0-flash")))
}

func TestTransportFactory(t *testing.T) {
	t.Parallel()

	cfg := instantConfig().Providers

	cfg.Transport = TransportSimulated
	factory, err := newTransportFactory(cfg, quietLogger(), Options{})
	require.NoError(t, err)
	for _, v := range provider.Builtins(cfg.Gemini.ModelName) {
		tr, err := factory(v)
		require.NoError(t, err)
		assert.IsType(t, &simulated.Transport{}, tr, v.Name)
	}

	cfg.Transport = TransportLive
	factory, err = newTransportFactory(cfg, quietLogger(), Options{})
	require.NoError(t, err)

	want := map[string]generation.Transport{
		provider.NameOpenAI:       &simulated.Transport{},
		provider.NameHuggingFace:  &huggingface.Transport{},
		provider.NameMeaningCloud: &meaningcloud.Transport{},
		provider.NameGemini:       &gemini.Transport{},
	}
	for _, v := range provider.Builtins(cfg.Gemini.ModelName) {
		tr, err := factory(v)
		require.NoError(t, err)
		assert.IsType(t, want[v.Name], tr, v.Name)
	}

	cfg.Transport = "carrier-pigeon"
	_, err = newTransportFactory(cfg, quietLogger(), Options{})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
