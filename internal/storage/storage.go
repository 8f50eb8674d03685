// Package storage defines the persistence boundaries of the rules engine.
// Implementations live in subpackages; the engine and projections depend
// only on these interfaces.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/goathill/wolfgoatpig/internal/game/event"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Round lifecycle statuses persisted with round records.
const (
	RoundStatusActive   = "active"
	RoundStatusFinished = "finished"
	RoundStatusHalted   = "halted"
)

// RoundRecord is the persisted metadata of one round.
type RoundRecord struct {
	ID          string
	CourseName  string
	PlayerCount int
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventStore owns the round journal that drives replay.
type EventStore interface {
	// AppendEvent atomically appends an event and returns it with its
	// sequence number set.
	AppendEvent(ctx context.Context, evt event.Event) (event.Event, error)
	// ListEvents returns events ordered by sequence ascending, starting
	// after afterSeq, at most limit entries.
	ListEvents(ctx context.Context, roundID string, afterSeq uint64, limit int) ([]event.Event, error)
}

// RoundStore persists round metadata records.
type RoundStore interface {
	PutRound(ctx context.Context, record RoundRecord) error
	GetRound(ctx context.Context, id string) (RoundRecord, error)
	ListRounds(ctx context.Context) ([]RoundRecord, error)
}
