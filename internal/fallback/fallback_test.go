package fallback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/phrazzld/scry-notes/internal/domain"
)

func TestSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "empty text",
			text: "",
			want: ". (Fallback summary - API not used)",
		},
		{
			name: "two sentences kept",
			text: "Go is fast. It compiles quickly. It has goroutines.",
			want: "Go is fast.  It compiles quickly. (Fallback summary - API not used)",
		},
		{
			name: "single letter sentences are not blank",
			text: "A. B. C. D.",
			want: "A.  B. (Fallback summary - API not used)",
		},
		{
			name: "blank segments skipped",
			text: "...   !!! First real. Second real?",
			want: " First real.  Second real. (Fallback summary - API not used)",
		},
		{
			name: "no terminator",
			text: "just one clause",
			want: "just one clause. (Fallback summary - API not used)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Summary(tc.text))
		})
	}
}

func TestFlashcards(t *testing.T) {
	t.Parallel()

	text := "Photosynthesis converts light into chemical energy. Short. " +
		"Chlorophyll absorbs mostly blue and red wavelengths of visible light! " +
		"Plants release oxygen. Fourth sentence is dropped."

	cards := Flashcards(text)
	require.Len(t, cards, 3)

	assert.Equal(t, domain.Flashcard{
		ID:       0,
		Question: `What is the main point of: "Photosynthesis converts light into chemi..."?`,
		Answer:   "Photosynthesis converts light into chemical energy (Fallback flashcard - API not used)",
	}, cards[0])
	assert.Equal(t, 1, cards[1].ID)
	assert.Equal(t,
		"Chlorophyll absorbs mostly blue and red wavelengths of visible light (Fallback flashcard - API not used)",
		cards[1].Answer)
	assert.Equal(t, `What is the main point of: "Plants release oxygen..."?`, cards[2].Question)
}

func TestFlashcards_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Flashcards(""))
	assert.Empty(t, Flashcards("A. B. C. D."))
	assert.Empty(t, Flashcards("ééé. ñññ."))
}

func TestFlashcards_AccentedSentenceLength(t *testing.T) {
	t.Parallel()

	cards := Flashcards("ñññññ. Über alles.")
	require.Len(t, cards, 1)
	assert.Equal(t, "Über alles (Fallback flashcard - API not used)", cards[0].Answer)
}

func TestPreview_CountsRunes(t *testing.T) {
	t.Parallel()

	s := strings.Repeat("é", 45)
	assert.Equal(t, strings.Repeat("é", 40), preview(s))
}

// TestFallback_Idempotent verifies that both generators are pure: the same
// input always produces identical output.
func TestFallback_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")

		require.Equal(rt, Summary(text), Summary(text))
		require.Equal(rt, Flashcards(text), Flashcards(text))
	})
}

// TestFlashcards_Invariants verifies the card count bound, dense IDs and
// the answer suffix for arbitrary text.
func TestFlashcards_Invariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[A-Za-z .!?\n]{0,400}`).Draw(rt, "text")

		cards := Flashcards(text)
		require.LessOrEqual(rt, len(cards), 3)
		require.NoError(rt, domain.ValidateFlashcards(cards))
		for i, card := range cards {
			require.Equal(rt, i, card.ID)
			require.True(rt, strings.HasSuffix(card.Answer, "(Fallback flashcard - API not used)"))
		}
	})
}

// TestSummary_AlwaysSuffixed verifies that the summary never fails and is
// always marked as a fallback.
func TestSummary_AlwaysSuffixed(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		require.True(rt, strings.HasSuffix(Summary(text), SummarySuffix))
	})
}
