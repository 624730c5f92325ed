// Package events provides progress reporting for provider operations.
//
// Providers emit a ProgressEvent at each phase of a call without knowing
// who listens. Callers register handlers on an emitter to drive a progress
// indicator, write log lines, or collect events in tests.
//
// The primary components are:
// - ProgressEvent: One phase transition of a summary or flashcard call
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
