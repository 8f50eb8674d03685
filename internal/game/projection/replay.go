// Package projection rebuilds read models from the round journal.
package projection

import (
	"context"
	"fmt"
	"strings"

	"github.com/goathill/wolfgoatpig/internal/game/event"
	"github.com/goathill/wolfgoatpig/internal/storage"
)

const replayPageSize = 200

// Applier consumes journal entries in sequence order.
type Applier interface {
	Apply(ctx context.Context, evt event.Event) error
}

// ReplayOptions configures event replay behavior.
type ReplayOptions struct {
	AfterSeq uint64
	UntilSeq uint64
	Filter   func(event.Event) bool
}

// ReplayRound replays a round's events and applies projections in order.
func ReplayRound(ctx context.Context, eventStore storage.EventStore, applier Applier, roundID string) (uint64, error) {
	return ReplayRoundWith(ctx, eventStore, applier, roundID, ReplayOptions{})
}

// ReplayRoundWith replays events with additional filtering and bounds. It
// returns the sequence number of the last event visited.
func ReplayRoundWith(ctx context.Context, eventStore storage.EventStore, applier Applier, roundID string, options ReplayOptions) (uint64, error) {
	if eventStore == nil {
		return 0, fmt.Errorf("event store is not configured")
	}
	if strings.TrimSpace(roundID) == "" {
		return 0, fmt.Errorf("round id is required")
	}

	lastSeq := options.AfterSeq
	for {
		events, err := eventStore.ListEvents(ctx, roundID, lastSeq, replayPageSize)
		if err != nil {
			return lastSeq, err
		}
		if len(events) == 0 {
			return lastSeq, nil
		}
		for _, evt := range events {
			if options.UntilSeq > 0 && evt.Seq > options.UntilSeq {
				return lastSeq, nil
			}
			lastSeq = evt.Seq
			if options.Filter != nil && !options.Filter(evt) {
				continue
			}
			if err := applier.Apply(ctx, evt); err != nil {
				return lastSeq, err
			}
		}
	}
}
