package provider_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/generation/generationtest"
	"github.com/phrazzld/scry-notes/internal/provider"
)

func fakeTransports() provider.TransportFactory {
	fake := &generationtest.Fake{Summary: "ok"}
	return func(provider.Variant) (generation.Transport, error) {
		return fake, nil
	}
}

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	cfg := config.ProvidersConfig{
		Default: "meaningcloud",
		Overrides: map[string]config.VariantOverride{
			"huggingface": {FlashcardCap: 4, MaxRetries: 1, RetryDelayMillis: 250},
		},
	}
	creds := config.NewCredentials(map[string]string{"OPENAI_API_KEY": "sk-test"})

	reg, err := provider.BuildRegistry(cfg, provider.Builtins("gemini-test"), fakeTransports(), creds,
		provider.WithLogger(quietLogger()))
	require.NoError(t, err)

	assert.Equal(t, []string{"openai", "huggingface", "meaningcloud", "gemini"}, reg.Names())
	assert.Equal(t, "meaningcloud", reg.Default())

	def, err := reg.Get("")
	require.NoError(t, err)
	assert.Equal(t, provider.NameMeaningCloud, def.Name())

	hf, err := reg.Get("HuggingFace")
	require.NoError(t, err)
	assert.Equal(t, 4, hf.Variant().FlashcardCap)
	assert.Equal(t, 1, hf.Variant().MaxRetries)
	assert.Equal(t, 250*time.Millisecond, hf.Variant().RetryBaseDelay)

	gem, err := reg.Get("gemini")
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", gem.Variant().SummaryEndpoint)

	_, err = reg.Get("claude")
	assert.ErrorIs(t, err, provider.ErrUnknownProvider)

	configuredByName := map[string]bool{}
	for _, info := range reg.Info() {
		configuredByName[info.Name] = info.Configured
		assert.Equal(t, info.Name == "meaningcloud", info.Default)
	}
	assert.Equal(t, map[string]bool{
		"openai":       true,
		"huggingface":  false,
		"meaningcloud": true,
		"gemini":       false,
	}, configuredByName)
}

func TestBuildRegistry_Errors(t *testing.T) {
	t.Parallel()

	creds := config.NewCredentials(nil)
	variants := provider.Builtins("gemini-test")

	t.Run("unknown default", func(t *testing.T) {
		_, err := provider.BuildRegistry(config.ProvidersConfig{Default: "claude"}, variants, fakeTransports(), creds)
		assert.ErrorIs(t, err, provider.ErrUnknownProvider)
	})

	t.Run("override for unknown provider", func(t *testing.T) {
		cfg := config.ProvidersConfig{
			Default:   "openai",
			Overrides: map[string]config.VariantOverride{"claude": {MinLength: 10}},
		}
		_, err := provider.BuildRegistry(cfg, variants, fakeTransports(), creds)
		assert.ErrorIs(t, err, provider.ErrUnknownProvider)
	})

	t.Run("invalid override style", func(t *testing.T) {
		cfg := config.ProvidersConfig{
			Default:   "openai",
			Overrides: map[string]config.VariantOverride{"openai": {QuestionStyle: "poetic"}},
		}
		_, err := provider.BuildRegistry(cfg, variants, fakeTransports(), creds)
		assert.ErrorIs(t, err, provider.ErrInvalidVariant)
	})

	t.Run("transport factory error", func(t *testing.T) {
		boom := errors.New("no transport")
		failing := func(provider.Variant) (generation.Transport, error) { return nil, boom }
		_, err := provider.BuildRegistry(config.ProvidersConfig{Default: "openai"}, variants, failing, creds)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRegistry_Duplicate(t *testing.T) {
	t.Parallel()

	reg := provider.NewRegistry("openai")
	p := newProvider(t, provider.OpenAI(), &generationtest.Fake{}, nil)

	require.NoError(t, reg.Register(p))
	assert.ErrorIs(t, reg.Register(p), provider.ErrDuplicateProvider)
}

func TestVariantWithOverride(t *testing.T) {
	t.Parallel()

	v, err := provider.OpenAI().WithOverride(config.VariantOverride{
		CredentialKey:    "CUSTOM_KEY",
		MinLength:        80,
		SummarySentences: 2,
		QuestionStyle:    "compact",
		SummaryEndpoint:  "https://example.test/summarize",
		QuestionEndpoint: "https://example.test/question",
	})
	require.NoError(t, err)

	assert.Equal(t, "CUSTOM_KEY", v.CredentialKey)
	assert.Equal(t, 80, v.MinLength)
	assert.Equal(t, 2, v.SummarySentences)
	assert.Equal(t, 5, v.FlashcardCap, "zero override fields keep the built-in value")
	assert.Equal(t, "compact", string(v.QuestionStyle))
	assert.Equal(t, "https://example.test/question", v.QuestionEndpoint)
}

func TestKindError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, provider.KindError(""))
}
