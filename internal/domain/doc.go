// Package domain contains the entities exchanged between note-analysis
// callers and providers: the analysis request, summary and flashcard
// results, and the flashcards themselves. It is independent of any backend,
// transport or delivery mechanism.
package domain
