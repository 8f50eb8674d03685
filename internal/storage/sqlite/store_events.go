package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goathill/wolfgoatpig/internal/game/event"
)

// AppendEvent atomically appends an event and returns it with its
// sequence number set. Sequences start at 1 and are contiguous per round.
func (s *Store) AppendEvent(ctx context.Context, evt event.Event) (event.Event, error) {
	if err := ctx.Err(); err != nil {
		return event.Event{}, err
	}
	if s == nil || s.sqlDB == nil {
		return event.Event{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(evt.RoundID) == "" {
		return event.Event{}, fmt.Errorf("round id is required")
	}
	if !evt.Type.IsValid() {
		return event.Event{}, fmt.Errorf("event type is required")
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}
	evt.Timestamp = evt.Timestamp.UTC().Truncate(time.Millisecond)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return event.Event{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	row := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE round_id = ?", evt.RoundID)
	if err := row.Scan(&seq); err != nil {
		return event.Event{}, fmt.Errorf("next event seq: %w", err)
	}
	evt.Seq = uint64(seq)

	if _, err := tx.ExecContext(ctx, `
INSERT INTO events (round_id, seq, timestamp, event_type, hole_number, request_id, actor_type, actor_id, payload_json)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		evt.RoundID,
		seq,
		toMillis(evt.Timestamp),
		string(evt.Type),
		evt.HoleNumber,
		evt.RequestID,
		string(evt.ActorType),
		evt.ActorID,
		evt.PayloadJSON,
	); err != nil {
		return event.Event{}, fmt.Errorf("append event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return event.Event{}, fmt.Errorf("commit event: %w", err)
	}
	return evt, nil
}

// ListEvents returns events ordered by sequence ascending, starting after
// afterSeq, at most limit entries.
func (s *Store) ListEvents(ctx context.Context, roundID string, afterSeq uint64, limit int) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(roundID) == "" {
		return nil, fmt.Errorf("round id is required")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT round_id, seq, timestamp, event_type, hole_number, request_id, actor_type, actor_id, payload_json
FROM events
WHERE round_id = ? AND seq > ?
ORDER BY seq ASC
LIMIT ?`,
		roundID, int64(afterSeq), limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []event.Event
	for rows.Next() {
		var evt event.Event
		var seq, ts int64
		var evtType, actorType string
		if err := rows.Scan(
			&evt.RoundID,
			&seq,
			&ts,
			&evtType,
			&evt.HoleNumber,
			&evt.RequestID,
			&actorType,
			&evt.ActorID,
			&evt.PayloadJSON,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		evt.Seq = uint64(seq)
		evt.Timestamp = fromMillis(ts)
		evt.Type = event.Type(evtType)
		evt.ActorType = event.ActorType(actorType)
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}
