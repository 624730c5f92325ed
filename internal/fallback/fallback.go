// Package fallback derives a degraded summary and flashcard set directly
// from note text, without credentials, network access or randomness. It is
// the safety net behind every provider failure.
package fallback

import (
	"strings"

	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/textsplit"
)

const (
	// SummarySuffix terminates every fallback summary.
	SummarySuffix = ". (Fallback summary - API not used)"

	// FlashcardSuffix terminates every fallback flashcard answer.
	FlashcardSuffix = " (Fallback flashcard - API not used)"

	summarySentences   = 2
	flashcardCount     = 3
	minSentenceLength  = 5
	questionPreviewLen = 40
)

// Summary joins the first two non-blank sentences of text and marks the
// result as a fallback. Empty text yields just the suffix.
func Summary(text string) string {
	sentences := textsplit.Take(textsplit.NonEmptySentences(text), summarySentences)
	return strings.Join(sentences, ". ") + SummarySuffix
}

// Flashcards builds up to three cards from the first sentences of text that
// are longer than five characters once trimmed.
func Flashcards(text string) []domain.Flashcard {
	sentences := textsplit.Take(textsplit.TrimmedSentences(text, minSentenceLength), flashcardCount)

	cards := make([]domain.Flashcard, 0, len(sentences))
	for i, sentence := range sentences {
		cards = append(cards, domain.Flashcard{
			ID:       i,
			Question: `What is the main point of: "` + preview(sentence) + `..."?`,
			Answer:   sentence + FlashcardSuffix,
		})
	}
	return cards
}

// preview returns the first questionPreviewLen runes of s.
func preview(s string) string {
	runes := []rune(s)
	if len(runes) <= questionPreviewLen {
		return s
	}
	return string(runes[:questionPreviewLen])
}
