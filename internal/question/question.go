// Package question turns a passage of note text into a flashcard question
// using keyword and cue-word heuristics.
package question

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultKeyword is used when a passage has no qualifying keyword.
const DefaultKeyword = "concept"

// ErrUnknownStyle is returned when a style name cannot be parsed.
var ErrUnknownStyle = errors.New("unknown question style")

// Style selects the family of question templates.
type Style string

const (
	// StyleDetailed checks because/since, how, what, when and where cues.
	StyleDetailed Style = "detailed"

	// StyleCompact checks only because/since and how cues.
	StyleCompact Style = "compact"
)

// ParseStyle converts a configured style name into a Style.
// An empty name selects StyleDetailed.
func ParseStyle(name string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(name))) {
	case StyleDetailed, "":
		return StyleDetailed, nil
	case StyleCompact:
		return StyleCompact, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// Rand is the source used to pick a keyword. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

var stopwords = map[string]struct{}{
	"about":  {},
	"these":  {},
	"those":  {},
	"their":  {},
	"there":  {},
	"would":  {},
	"could":  {},
	"should": {},
}

// Keywords returns the space-separated words of span that are longer than
// four characters and not in the stoplist, in order of appearance.
func Keywords(span string) []string {
	var words []string
	for _, w := range strings.Split(span, " ") {
		if utf8.RuneCountInString(w) <= 4 {
			continue
		}
		if _, stop := stopwords[strings.ToLower(w)]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

// PickKeyword chooses one keyword of span uniformly at random, or
// DefaultKeyword when there is none.
func PickKeyword(rng Rand, span string) string {
	words := Keywords(span)
	if len(words) == 0 {
		return DefaultKeyword
	}
	return words[rng.Intn(len(words))]
}

// Generate builds a question about span in the given style.
func Generate(rng Rand, span string, style Style) string {
	return Template(style, span, PickKeyword(rng, span))
}

// Template renders the question for keyword, choosing the template from the
// first cue word found in span (case-insensitive).
func Template(style Style, span, keyword string) string {
	lower := strings.ToLower(span)

	switch {
	case strings.Contains(lower, "because") || strings.Contains(lower, "since"):
		return fmt.Sprintf("Why is %s important in this context?", keyword)
	case strings.Contains(lower, "how"):
		return fmt.Sprintf("How does %s function in this scenario?", keyword)
	}

	if style == StyleCompact {
		return fmt.Sprintf("What is the significance of %s in this passage?", keyword)
	}

	switch {
	case strings.Contains(lower, "what"):
		return fmt.Sprintf("What is the significance of %s?", keyword)
	case strings.Contains(lower, "when"):
		return fmt.Sprintf("When does %s occur or apply?", keyword)
	case strings.Contains(lower, "where"):
		return fmt.Sprintf("Where is %s relevant?", keyword)
	default:
		return fmt.Sprintf("What is the main point about %s in this passage?", keyword)
	}
}
