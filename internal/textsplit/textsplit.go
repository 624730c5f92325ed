// Package textsplit breaks note text into the sentence and paragraph
// segments that the fallback generator, providers and transports work on.
package textsplit

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// sentenceTerminators matches one or more consecutive ., ! or ?.
	sentenceTerminators = regexp.MustCompile(`[.!?]+`)

	// blankLines matches a line break followed by at least one empty or
	// whitespace-only line.
	blankLines = regexp.MustCompile(`\r?\n(?:[ \t]*\r?\n)+`)
)

// Sentences splits text on runs of sentence terminators. Segments are
// returned untrimmed and may be empty; callers apply their own filter.
func Sentences(text string) []string {
	return sentenceTerminators.Split(text, -1)
}

// NonEmptySentences returns the segments of Sentences whose trimmed form is
// not empty. Segments are returned as split, without trimming.
func NonEmptySentences(text string) []string {
	return filter(Sentences(text), 0, false)
}

// TrimmedSentences returns the trimmed segments of Sentences whose trimmed
// length in characters is greater than minLen.
func TrimmedSentences(text string, minLen int) []string {
	return filter(Sentences(text), minLen, true)
}

// Paragraphs splits text on blank lines and returns the trimmed paragraphs
// whose length in characters is greater than minLen.
func Paragraphs(text string, minLen int) []string {
	return filter(blankLines.Split(text, -1), minLen, true)
}

func filter(segments []string, minLen int, trim bool) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		trimmed := strings.TrimSpace(s)
		if utf8.RuneCountInString(trimmed) <= minLen {
			continue
		}
		if trim {
			out = append(out, trimmed)
		} else {
			out = append(out, s)
		}
	}
	return out
}

// Take returns at most n leading elements of segments.
func Take(segments []string, n int) []string {
	if n < 0 || len(segments) <= n {
		return segments
	}
	return segments[:n]
}
