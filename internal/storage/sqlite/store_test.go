package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/goathill/wolfgoatpig/internal/game/event"
	"github.com/goathill/wolfgoatpig/internal/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error opening store without a path")
	}
}

func TestAppendEventAssignsContiguousSequences(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 7, 12, 8, 30, 0, 0, time.UTC)

	for i := 1; i <= 3; i++ {
		evt, err := store.AppendEvent(context.Background(), event.Event{
			RoundID:   "round-1",
			Timestamp: now.Add(time.Duration(i) * time.Second),
			Type:      event.TypeHoleStarted,
			ActorType: event.ActorTypeSystem,
		})
		if err != nil {
			t.Fatalf("append event %d: %v", i, err)
		}
		if evt.Seq != uint64(i) {
			t.Fatalf("seq = %d, want %d", evt.Seq, i)
		}
	}

	// Sequences are scoped per round.
	evt, err := store.AppendEvent(context.Background(), event.Event{
		RoundID:   "round-2",
		Timestamp: now,
		Type:      event.TypeRoundInitialized,
		ActorType: event.ActorTypeSystem,
	})
	if err != nil {
		t.Fatalf("append to second round: %v", err)
	}
	if evt.Seq != 1 {
		t.Fatalf("second round seq = %d, want 1", evt.Seq)
	}
}

func TestAppendEventValidatesInput(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.AppendEvent(context.Background(), event.Event{
		Type: event.TypeHoleStarted,
	}); err == nil {
		t.Fatal("expected error without round id")
	}
	if _, err := store.AppendEvent(context.Background(), event.Event{
		RoundID: "round-1",
		Type:    event.Type("bogus"),
	}); err == nil {
		t.Fatal("expected error for invalid event type")
	}
}

func TestListEventsPagesAfterSequence(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 7, 12, 8, 30, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := store.AppendEvent(context.Background(), event.Event{
			RoundID:     "round-1",
			Timestamp:   now.Add(time.Duration(i) * time.Second),
			Type:        event.TypeShotRecorded,
			HoleNumber:  1,
			RequestID:   "req",
			ActorType:   event.ActorTypePlayer,
			ActorID:     "p1",
			PayloadJSON: []byte(`{"player_id":"p1"}`),
		}); err != nil {
			t.Fatalf("append event: %v", err)
		}
	}

	page, err := store.ListEvents(context.Background(), "round-1", 2, 2)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(page) != 2 || page[0].Seq != 3 || page[1].Seq != 4 {
		t.Fatalf("page = %+v, want seqs 3 and 4", page)
	}

	rest, err := store.ListEvents(context.Background(), "round-1", 4, 10)
	if err != nil {
		t.Fatalf("list tail: %v", err)
	}
	if len(rest) != 1 || rest[0].Seq != 5 {
		t.Fatalf("tail = %+v, want seq 5", rest)
	}

	got := rest[0]
	if got.RoundID != "round-1" || got.Type != event.TypeShotRecorded || got.HoleNumber != 1 {
		t.Fatalf("event round-trip mismatch: %+v", got)
	}
	if got.ActorType != event.ActorTypePlayer || got.ActorID != "p1" {
		t.Fatalf("actor mismatch: %+v", got)
	}
	if string(got.PayloadJSON) != `{"player_id":"p1"}` {
		t.Fatalf("payload = %s", got.PayloadJSON)
	}
	if !got.Timestamp.Equal(now.Add(4 * time.Second)) {
		t.Fatalf("timestamp = %v", got.Timestamp)
	}
}

func TestListEventsRequiresRoundID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.ListEvents(context.Background(), "", 0, 10); err == nil {
		t.Fatal("expected error without round id")
	}
}

func TestRoundRecordPutGet(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2026, 7, 12, 8, 30, 0, 0, time.UTC)

	record := storage.RoundRecord{
		ID:          "round-1",
		CourseName:  "Lake Chabot",
		PlayerCount: 4,
		Status:      storage.RoundStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.PutRound(context.Background(), record); err != nil {
		t.Fatalf("put round: %v", err)
	}

	got, err := store.GetRound(context.Background(), "round-1")
	if err != nil {
		t.Fatalf("get round: %v", err)
	}
	if got.ID != record.ID || got.CourseName != record.CourseName || got.PlayerCount != record.PlayerCount {
		t.Fatalf("round mismatch: %+v", got)
	}
	if got.Status != storage.RoundStatusActive {
		t.Fatalf("status = %s", got.Status)
	}
	if !got.CreatedAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Fatalf("timestamps = %v / %v", got.CreatedAt, got.UpdatedAt)
	}

	// Upsert updates the mutable columns in place.
	record.Status = storage.RoundStatusFinished
	record.UpdatedAt = now.Add(time.Hour)
	if err := store.PutRound(context.Background(), record); err != nil {
		t.Fatalf("update round: %v", err)
	}
	got, err = store.GetRound(context.Background(), "round-1")
	if err != nil {
		t.Fatalf("get updated round: %v", err)
	}
	if got.Status != storage.RoundStatusFinished || !got.UpdatedAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("updated round = %+v", got)
	}
}

func TestGetRoundNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetRound(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRoundsMostRecentFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 7, 12, 8, 30, 0, 0, time.UTC)

	for i, id := range []string{"round-old", "round-new"} {
		err := store.PutRound(context.Background(), storage.RoundRecord{
			ID:          id,
			CourseName:  "Lake Chabot",
			PlayerCount: 4,
			Status:      storage.RoundStatusActive,
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
			UpdatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("put round %s: %v", id, err)
		}
	}

	records, err := store.ListRounds(context.Background())
	if err != nil {
		t.Fatalf("list rounds: %v", err)
	}
	if len(records) != 2 || records[0].ID != "round-new" || records[1].ID != "round-old" {
		t.Fatalf("records = %+v", records)
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "store.sqlite")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}
