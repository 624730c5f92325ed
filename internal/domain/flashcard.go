package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardQuestionEmpty is returned when a flashcard has no question.
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrFlashcardAnswerEmpty is returned when a flashcard has no answer.
	ErrFlashcardAnswerEmpty = errors.New("flashcard answer cannot be empty")

	// ErrFlashcardIDsNotDense is returned when flashcard IDs are not 0..k-1 in order.
	ErrFlashcardIDsNotDense = errors.New("flashcard IDs must be sequential from 0")
)

// Flashcard is a question/answer pair derived from a passage of text.
// IDs are unique within one result set and ordered from 0.
type Flashcard struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Validate checks that the flashcard has both sides.
func (f Flashcard) Validate() error {
	if f.Question == "" {
		return ErrFlashcardQuestionEmpty
	}
	if f.Answer == "" {
		return ErrFlashcardAnswerEmpty
	}
	return nil
}

// ValidateFlashcards checks every card and the dense ID ordering of the set.
func ValidateFlashcards(cards []Flashcard) error {
	for i, card := range cards {
		if card.ID != i {
			return fmt.Errorf("%w: card at position %d has id %d", ErrFlashcardIDsNotDense, i, card.ID)
		}
		if err := card.Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
	}
	return nil
}

// FlashcardResult is the outcome of a flashcard request. Exactly one of the
// success payload (Flashcards) or the failure payload (Error,
// FallbackFlashcards) is populated.
type FlashcardResult struct {
	Success            bool        `json:"success"`
	Flashcards         []Flashcard `json:"flashcards,omitempty"`
	Error              string      `json:"error,omitempty"`
	FallbackFlashcards []Flashcard `json:"fallbackFlashcards,omitempty"`
	ErrorKind          ErrorKind   `json:"errorKind,omitempty"`
}

// NewFlashcardSuccess builds a successful FlashcardResult. A nil slice is
// normalized to an empty one so the payload is always present.
func NewFlashcardSuccess(cards []Flashcard) FlashcardResult {
	if cards == nil {
		cards = []Flashcard{}
	}
	return FlashcardResult{
		Success:    true,
		Flashcards: cards,
	}
}

// NewFlashcardFailure builds a failed FlashcardResult carrying a fallback set.
func NewFlashcardFailure(kind ErrorKind, message string, fallback []Flashcard) FlashcardResult {
	if fallback == nil {
		fallback = []Flashcard{}
	}
	return FlashcardResult{
		Success:            false,
		Error:              message,
		FallbackFlashcards: fallback,
		ErrorKind:          kind,
	}
}

// Display returns the cards a caller should show.
func (r FlashcardResult) Display() []Flashcard {
	if r.Success {
		return r.Flashcards
	}
	return r.FallbackFlashcards
}

// Validate checks the payload invariant and the ID ordering of whichever
// set is present.
func (r FlashcardResult) Validate() error {
	if r.Success {
		if r.Error != "" || len(r.FallbackFlashcards) > 0 || r.ErrorKind != "" {
			return fmt.Errorf("%w: successful flashcards carry failure payload", ErrInvalidResult)
		}
		return ValidateFlashcards(r.Flashcards)
	}

	if r.Error == "" {
		return fmt.Errorf("%w: failed flashcards have no error message", ErrInvalidResult)
	}
	if len(r.Flashcards) > 0 {
		return fmt.Errorf("%w: failed flashcards carry flashcards", ErrInvalidResult)
	}
	if !r.ErrorKind.Valid() {
		return fmt.Errorf("%w: unknown error kind %q", ErrInvalidResult, r.ErrorKind)
	}
	return ValidateFlashcards(r.FallbackFlashcards)
}

// MarshalJSON always writes the card set of the active branch, even when it
// is empty, and never writes the other branch's fields.
func (r FlashcardResult) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success    bool        `json:"success"`
			Flashcards []Flashcard `json:"flashcards"`
		}{
			Success:    true,
			Flashcards: nonNilCards(r.Flashcards),
		})
	}
	return json.Marshal(struct {
		Success            bool        `json:"success"`
		Error              string      `json:"error"`
		FallbackFlashcards []Flashcard `json:"fallbackFlashcards"`
		ErrorKind          ErrorKind   `json:"errorKind,omitempty"`
	}{
		Error:              r.Error,
		FallbackFlashcards: nonNilCards(r.FallbackFlashcards),
		ErrorKind:          r.ErrorKind,
	})
}

func nonNilCards(cards []Flashcard) []Flashcard {
	if cards == nil {
		return []Flashcard{}
	}
	return cards
}
