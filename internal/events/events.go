package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Phase is a step in the lifecycle of a provider operation.
type Phase string

const (
	// PhaseValidating covers the configuration and input checks.
	PhaseValidating Phase = "validating"

	// PhaseContactingBackend is reported just before the first backend call.
	PhaseContactingBackend Phase = "contacting_backend"

	// PhaseDone is reported once a result, success or fallback, is ready.
	PhaseDone Phase = "done"
)

// ProgressEvent records that a provider operation entered a new phase.
type ProgressEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Provider is the name of the provider variant performing the operation
	Provider string `json:"provider"`

	// Operation is either "summary" or "flashcards"
	Operation string `json:"operation"`

	Phase Phase `json:"phase"`

	// Success is only meaningful for PhaseDone
	Success bool `json:"success,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewProgressEvent creates a ProgressEvent for the given provider operation and phase.
func NewProgressEvent(provider, operation string, phase Phase) *ProgressEvent {
	return &ProgressEvent{
		ID:        uuid.New(),
		Provider:  provider,
		Operation: operation,
		Phase:     phase,
		CreatedAt: time.Now(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ProgressEvent) error
}

// EventHandlerFunc adapts an ordinary function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *ProgressEvent) error

// HandleEvent implements EventHandler.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *ProgressEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows providers to publish progress without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *ProgressEvent) error
}

// NopEmitter discards every event.
type NopEmitter struct{}

// EmitEvent implements EventEmitter.
func (NopEmitter) EmitEvent(context.Context, *ProgressEvent) error { return nil }
