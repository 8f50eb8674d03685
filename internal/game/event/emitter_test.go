package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

type fakeStore struct {
	appended []Event
	fail     error
}

func (f *fakeStore) AppendEvent(_ context.Context, evt Event) (Event, error) {
	if f.fail != nil {
		return Event{}, f.fail
	}
	evt.Seq = uint64(len(f.appended) + 1)
	f.appended = append(f.appended, evt)
	return evt, nil
}

func TestEmitAppendsWithPayloadAndActor(t *testing.T) {
	store := &fakeStore{}
	emitter := NewEmitter(store)
	emitter.now = func() time.Time { return time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC) }

	evt, err := emitter.Emit(context.Background(), EmitInput{
		RoundID:    "r1",
		Type:       TypePartnershipOffered,
		HoleNumber: 3,
		RequestID:  "req-1",
		ActorID:    "p1",
		Payload:    PartnershipPayload{Captain: "p1", Candidate: "p2"},
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if evt.Seq != 1 || evt.RoundID != "r1" || evt.HoleNumber != 3 {
		t.Fatalf("event = %+v", evt)
	}
	if evt.ActorType != ActorTypePlayer {
		t.Fatalf("actor type = %s, want player (inferred from actor id)", evt.ActorType)
	}
	if evt.Timestamp != time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC) {
		t.Fatalf("timestamp = %s", evt.Timestamp)
	}

	var payload PartnershipPayload
	if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Candidate != "p2" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestEmitInfersSystemActor(t *testing.T) {
	store := &fakeStore{}
	emitter := NewEmitter(store)
	evt, err := emitter.Emit(context.Background(), EmitInput{
		RoundID: "r1",
		Type:    TypeHoleStarted,
		Payload: HoleStartedPayload{Captain: "p1"},
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if evt.ActorType != ActorTypeSystem {
		t.Fatalf("actor type = %s, want system", evt.ActorType)
	}
}

func TestEmitRequiresStore(t *testing.T) {
	emitter := &Emitter{now: time.Now}
	if _, err := emitter.Emit(context.Background(), EmitInput{RoundID: "r1", Type: TypeHoleStarted}); err == nil {
		t.Fatal("expected error without a store")
	}
}

func TestTypeDomain(t *testing.T) {
	if TypeDoubleOffered.Domain() != "wager" {
		t.Fatalf("domain = %s, want wager", TypeDoubleOffered.Domain())
	}
	if TypeRoundInitialized.Domain() != "round" {
		t.Fatalf("domain = %s, want round", TypeRoundInitialized.Domain())
	}
	if !TypeHoleResolved.IsValid() {
		t.Fatal("hole.resolved should be valid")
	}
	if Type("  ").IsValid() {
		t.Fatal("blank type should be invalid")
	}
}
