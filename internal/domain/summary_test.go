package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryResult_Constructors(t *testing.T) {
	t.Parallel()

	ok := NewSummarySuccess("A short summary.")
	require.NoError(t, ok.Validate())
	assert.True(t, ok.Success)
	assert.Equal(t, "A short summary.", ok.Display())

	failed := NewSummaryFailure(ErrorKindBackendFailure, "backend down", "fallback text")
	require.NoError(t, failed.Validate())
	assert.False(t, failed.Success)
	assert.Empty(t, failed.Summary)
	assert.Equal(t, "fallback text", failed.Display())
}

func TestSummaryResult_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		result  SummaryResult
		wantErr bool
	}{
		{
			name:   "success",
			result: SummaryResult{Success: true, Summary: "x"},
		},
		{
			name:    "success with error payload",
			result:  SummaryResult{Success: true, Summary: "x", Error: "boom"},
			wantErr: true,
		},
		{
			name:    "failure without message",
			result:  SummaryResult{FallbackSummary: "y", ErrorKind: ErrorKindInvalidInput},
			wantErr: true,
		},
		{
			name: "failure with summary",
			result: SummaryResult{
				Summary:   "x",
				Error:     "boom",
				ErrorKind: ErrorKindBackendFailure,
			},
			wantErr: true,
		},
		{
			name:    "failure with unknown kind",
			result:  SummaryResult{Error: "boom", ErrorKind: "mystery"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.result.Validate()
			if tc.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidResult), "expected ErrInvalidResult, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSummaryResult_JSONShape(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewSummaryFailure(ErrorKindNotConfigured, "no key", "fb"))
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "no key", decoded["error"])
	assert.Equal(t, "fb", decoded["fallbackSummary"])
	assert.Equal(t, "not_configured", decoded["errorKind"])
	assert.NotContains(t, decoded, "summary")
}

func TestSummaryResult_JSONKeepsEmptyBranch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		result   SummaryResult
		wantKey  string
		omitKeys []string
	}{
		{
			name:     "empty summary",
			result:   NewSummarySuccess(""),
			wantKey:  "summary",
			omitKeys: []string{"error", "fallbackSummary", "errorKind"},
		},
		{
			name:     "empty fallback",
			result:   NewSummaryFailure(ErrorKindInvalidInput, "bad input", ""),
			wantKey:  "fallbackSummary",
			omitKeys: []string{"summary"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.result)
			require.NoError(t, err)

			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, "", decoded[tc.wantKey])
			assert.Contains(t, decoded, tc.wantKey)
			for _, key := range tc.omitKeys {
				assert.NotContains(t, decoded, key)
			}

			var back SummaryResult
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tc.result, back)
		})
	}
}
