// Package gemini provides an implementation of the generation.Transport
// interface that uses Google's Gemini API for summaries and study questions.
//
// This package is an infrastructure adapter in the hexagonal architecture,
// connecting the provider abstraction to Google's external Gemini service
// without exposing the details of the SDK to the rest of the application.
//
// Key components:
//
// 1. Transport:
//   - Implements the generation.Transport interface
//   - Creates one SDK client per credential on first use
//
// 2. Prompt Management:
//   - Renders one text/template prompt per operation
//
// 3. Response Processing:
//   - Concatenates the text parts of the first candidate
//   - Classifies empty, malformed and safety-blocked responses
//
// Retries are not performed here; API errors are reported as transient and
// the provider decides whether to try again.
package gemini
