package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/platform/simulated"
	"github.com/phrazzld/scry-notes/internal/provider"
	"github.com/phrazzld/scry-notes/internal/service"
)

const note = "Honeybees communicate through a waggle dance that encodes direction.\n\n" +
	"The length of the dance tells other bees how far away the flowers are.\n\n" +
	"Colonies share food through trophallaxis to spread nutrients and signals."

// runCLI executes the root command and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	for _, key := range []string{"OPENAI_API_KEY", "HUGGINGFACE_API_KEY", "GEMINI_API_KEY"} {
		t.Setenv(key, "")
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.Execute()
	return out.String(), err
}

func TestProvidersCommand(t *testing.T) {
	out, err := runCLI(t, "", "providers")
	require.NoError(t, err)

	var infos []provider.Info
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 4)
	for _, info := range infos {
		assert.Equal(t, info.Name == provider.NameMeaningCloud, info.Default, info.Name)
		assert.Equal(t, info.Name == provider.NameMeaningCloud, info.Configured, info.Name)
	}

	out, err = runCLI(t, "", "providers", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "* meaningcloud")
	assert.Contains(t, out, "not configured")
}

func TestSummarizeCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantSuccess bool
		wantSummary string
		wantKind    domain.ErrorKind
	}{
		{
			name:        "default provider from stdin",
			args:        []string{"summarize"},
			wantSuccess: true,
			wantSummary: simulated.Summarize(note, 3),
		},
		{
			name:     "unconfigured provider falls back",
			args:     []string{"summarize", "--provider", "openai"},
			wantKind: domain.ErrorKindNotConfigured,
		},
		{
			name:        "api key flag configures the provider",
			args:        []string{"summarize", "--provider", "openai", "--api-key", "sk-cli-test-key"},
			wantSuccess: true,
			wantSummary: "Summary: " + simulated.Summarize(note, 3),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runCLI(t, note, tc.args...)
			require.NoError(t, err)

			var result domain.SummaryResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, tc.wantSuccess, result.Success)
			if tc.wantSuccess {
				assert.Equal(t, tc.wantSummary, result.Summary)
				return
			}
			assert.Equal(t, tc.wantKind, result.ErrorKind)
			assert.NotEmpty(t, result.FallbackSummary)
		})
	}
}

func TestFlashcardsCommand_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte(note), 0o600))

	out, err := runCLI(t, "", "flashcards", path, "--seed", "11")
	require.NoError(t, err)

	var result domain.FlashcardResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.True(t, result.Success)
	require.Len(t, result.Flashcards, 3)
	assert.NoError(t, domain.ValidateFlashcards(result.Flashcards))
	assert.True(t, strings.HasPrefix(result.Flashcards[0].Answer, "Honeybees"))

	out, err = runCLI(t, "", "flashcards", path, "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "1. Q: ")
	assert.Contains(t, out, "3. Q: ")
}

func TestAnalyzeCommand(t *testing.T) {
	out, err := runCLI(t, note, "analyze", "-")
	require.NoError(t, err)

	var analysis service.Analysis
	require.NoError(t, json.Unmarshal([]byte(out), &analysis))
	assert.Equal(t, provider.NameMeaningCloud, analysis.Provider)
	assert.True(t, analysis.Summary.Success)
	assert.True(t, analysis.Flashcards.Success)

	out, err = runCLI(t, note, "analyze", "-o", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider: meaningcloud")
	assert.Contains(t, out, "Flashcards:")
}

func TestCommandErrors(t *testing.T) {
	_, err := runCLI(t, "   ", "summarize")
	assert.ErrorIs(t, err, domain.ErrEmptyNoteText)

	_, err = runCLI(t, note, "summarize", "--provider", "nope")
	assert.ErrorIs(t, err, service.ErrProviderNotFound)

	_, err = runCLI(t, note, "summarize", "-o", "yaml")
	assert.Error(t, err)

	_, err = runCLI(t, note, "summarize", "--failure-rate", "2")
	assert.Error(t, err)

	_, err = runCLI(t, "", "summarize", filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}
