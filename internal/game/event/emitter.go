package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store defines the interface for persisting events.
type Store interface {
	AppendEvent(ctx context.Context, evt Event) (Event, error)
}

// Emitter provides event emission capabilities for state mutations.
type Emitter struct {
	store Store
	now   func() time.Time
}

// NewEmitter creates a new event emitter.
func NewEmitter(store Store) *Emitter {
	return &Emitter{
		store: store,
		now:   time.Now,
	}
}

// EmitInput describes the input for emitting an event.
type EmitInput struct {
	RoundID    string
	Type       Type
	HoleNumber int
	RequestID  string
	ActorType  ActorType
	ActorID    string
	Payload    any
}

// Emit appends an event to the round journal.
func (e *Emitter) Emit(ctx context.Context, input EmitInput) (Event, error) {
	if e.store == nil {
		return Event{}, fmt.Errorf("event store is not configured")
	}

	payloadJSON, err := json.Marshal(input.Payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event payload: %w", err)
	}

	actorType := input.ActorType
	if actorType == "" {
		actorType = ActorTypeSystem
		if input.ActorID != "" {
			actorType = ActorTypePlayer
		}
	}

	evt := Event{
		RoundID:     input.RoundID,
		Timestamp:   e.now().UTC(),
		Type:        input.Type,
		HoleNumber:  input.HoleNumber,
		RequestID:   input.RequestID,
		ActorType:   actorType,
		ActorID:     input.ActorID,
		PayloadJSON: payloadJSON,
	}

	return e.store.AppendEvent(ctx, evt)
}
