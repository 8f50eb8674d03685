package team

import (
	"testing"

	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
)

var fourOrder = []string{"p1", "p2", "p3", "p4"}
var fiveOrder = []string{"p1", "p2", "p3", "p4", "p5"}

func TestOfferAndAcceptPartnership(t *testing.T) {
	n := NewNegotiator(fourOrder, false)
	if err := n.OfferPartnership("p1", "p3", Timing{}); err != nil {
		t.Fatalf("offer: %v", err)
	}
	if n.State().Kind != KindOffered {
		t.Fatalf("kind = %s, want offered", n.State().Kind)
	}

	effect, err := n.RespondPartnership("p3", true, Timing{})
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if effect != 1 {
		t.Fatalf("accept effect = %d, want 1", effect)
	}

	state := n.State()
	if state.Kind != KindPartners {
		t.Fatalf("kind = %s, want partners", state.Kind)
	}
	if !state.Final() {
		t.Fatal("partners in a foursome should be final")
	}
	if side, _ := state.SideOf("p3"); side != SideA {
		t.Fatal("partner should join the captain's side")
	}
	if side, _ := state.SideOf("p2"); side != SideB {
		t.Fatal("remaining players should oppose the captain")
	}
}

func TestDeclinedPartnershipForcesSolo(t *testing.T) {
	n := NewNegotiator(fourOrder, false)
	if err := n.OfferPartnership("p1", "p2", Timing{}); err != nil {
		t.Fatalf("offer: %v", err)
	}
	effect, err := n.RespondPartnership("p2", false, Timing{})
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if effect != 2 {
		t.Fatalf("decline effect = %d, want 2", effect)
	}
	state := n.State()
	if !state.IsSolo() || state.Soloist != "p1" {
		t.Fatalf("state = %+v, want captain solo", state)
	}
	if len(state.Opponents) != 3 {
		t.Fatalf("opponents = %v, want 3 players", state.Opponents)
	}
}

func TestOfferWindowClosesWithNextTeeShot(t *testing.T) {
	n := NewNegotiator(fourOrder, false)
	// p3 tees off after p2, so once p3 has hit, p2 can no longer be asked.
	timing := Timing{Strokes: map[string]int{"p1": 1, "p2": 1, "p3": 1}}
	err := n.OfferPartnership("p1", "p2", timing)
	if !apperrors.IsCode(err, apperrors.CodeTeamInvalidTransition) {
		t.Fatalf("expired window: got %v", err)
	}
	// p4 has not hit, so p3 can still be asked.
	if err := n.OfferPartnership("p1", "p3", timing); err != nil {
		t.Fatalf("open window: %v", err)
	}
}

func TestLastPlayerOfferWindowStaysOpen(t *testing.T) {
	n := NewNegotiator(fourOrder, false)
	timing := Timing{Strokes: map[string]int{"p1": 1, "p2": 1, "p3": 1, "p4": 1}}
	if err := n.OfferPartnership("p1", "p4", timing); err != nil {
		t.Fatalf("offering the last hitter after all tee shots: %v", err)
	}
}

func TestDeclareSolo(t *testing.T) {
	n := NewNegotiator(fourOrder, false)
	timing := Timing{Strokes: map[string]int{"p1": 1, "p2": 1, "p3": 1, "p4": 1}}
	effect, err := n.DeclareSolo("p1", timing)
	if err != nil {
		t.Fatalf("solo after tee shots: %v", err)
	}
	if effect != 2 {
		t.Fatalf("solo effect = %d, want 2", effect)
	}

	n = NewNegotiator(fourOrder, false)
	frozen := Timing{Strokes: map[string]int{"p1": 2}}
	if _, err := n.DeclareSolo("p1", frozen); !apperrors.IsCode(err, apperrors.CodeTeamFormationClosed) {
		t.Fatalf("solo after a second stroke: got %v", err)
	}

	n = NewNegotiator(fourOrder, false)
	if _, err := n.DeclareSolo("p2", Timing{}); !apperrors.IsCode(err, apperrors.CodeTeamInvalidTransition) {
		t.Fatalf("solo by non-captain: got %v", err)
	}
}

func settledPartners(t *testing.T, order []string) *Negotiator {
	t.Helper()
	n := NewNegotiator(order, true)
	if err := n.OfferPartnership(order[0], order[1], Timing{}); err != nil {
		t.Fatalf("offer: %v", err)
	}
	if _, err := n.RespondPartnership(order[1], true, Timing{}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	return n
}

func TestAardvarkAccepted(t *testing.T) {
	n := settledPartners(t, fiveOrder)
	if n.State().Final() {
		t.Fatal("formation with a floating aardvark must not be final")
	}

	if err := n.RequestJoinSide("p5", SideA, Timing{}); err != nil {
		t.Fatalf("request join: %v", err)
	}
	effect, err := n.RespondJoinRequest("p1", true, Timing{})
	if err != nil {
		t.Fatalf("accept join: %v", err)
	}
	if effect != 1 {
		t.Fatalf("accept effect = %d, want 1", effect)
	}
	state := n.State()
	if state.Kind != KindJoined || !state.Final() {
		t.Fatalf("state = %+v, want joined and final", state)
	}
	if side, _ := state.SideOf("p5"); side != SideA {
		t.Fatal("aardvark should land on the requested side")
	}
}

func TestAardvarkTossLandsOnOtherSide(t *testing.T) {
	n := settledPartners(t, fiveOrder)
	if err := n.RequestJoinSide("p5", SideA, Timing{}); err != nil {
		t.Fatalf("request join: %v", err)
	}
	effect, err := n.RespondJoinRequest("p2", false, Timing{})
	if err != nil {
		t.Fatalf("toss: %v", err)
	}
	if effect != 2 {
		t.Fatalf("toss effect = %d, want 2", effect)
	}
	// The other side accepts the tossed aardvark.
	effect, err = n.RespondJoinRequest("p3", true, Timing{})
	if err != nil {
		t.Fatalf("accept tossed aardvark: %v", err)
	}
	if effect != 1 {
		t.Fatalf("accept effect = %d, want 1", effect)
	}
	if side, _ := n.State().SideOf("p5"); side != SideB {
		t.Fatal("tossed aardvark should land on the other side")
	}
}

func TestAardvarkCounterTossReturnsToRequestedSide(t *testing.T) {
	n := settledPartners(t, fiveOrder)
	if err := n.RequestJoinSide("p5", SideA, Timing{}); err != nil {
		t.Fatalf("request join: %v", err)
	}
	if _, err := n.RespondJoinRequest("p1", false, Timing{}); err != nil {
		t.Fatalf("toss: %v", err)
	}
	effect, err := n.RespondJoinRequest("p4", false, Timing{})
	if err != nil {
		t.Fatalf("counter-toss: %v", err)
	}
	if effect != 2 {
		t.Fatalf("counter-toss effect = %d, want 2", effect)
	}
	state := n.State()
	if state.Kind != KindJoined {
		t.Fatalf("kind = %s, want joined", state.Kind)
	}
	if side, _ := state.SideOf("p5"); side != SideA {
		t.Fatal("counter-tossed aardvark returns to the side first asked")
	}
}

func TestAardvarkGuards(t *testing.T) {
	n := settledPartners(t, fiveOrder)

	if err := n.RequestJoinSide("p2", SideA, Timing{}); !apperrors.IsCode(err, apperrors.CodeTeamAardvarkUnexpected) {
		t.Fatalf("join by non-aardvark: got %v", err)
	}
	if err := n.RequestJoinSide("p5", "c", Timing{}); !apperrors.IsCode(err, apperrors.CodeTeamInvalidTransition) {
		t.Fatalf("join unknown side: got %v", err)
	}
	if _, err := n.RespondJoinRequest("p1", true, Timing{}); !apperrors.IsCode(err, apperrors.CodeTeamInvalidTransition) {
		t.Fatalf("respond with nothing pending: got %v", err)
	}

	if err := n.RequestJoinSide("p5", SideB, Timing{}); err != nil {
		t.Fatalf("request join: %v", err)
	}
	// Only the requested side may answer first.
	if _, err := n.RespondJoinRequest("p1", true, Timing{}); !apperrors.IsCode(err, apperrors.CodeTeamInvalidTransition) {
		t.Fatalf("respond from wrong side: got %v", err)
	}
}

func TestSoloSwallowsAardvark(t *testing.T) {
	n := NewNegotiator(fiveOrder, true)
	if _, err := n.DeclareSolo("p1", Timing{}); err != nil {
		t.Fatalf("solo: %v", err)
	}
	state := n.State()
	if !state.Final() {
		t.Fatal("solo must be final even with five players")
	}
	if len(state.Opponents) != 4 {
		t.Fatalf("opponents = %v, want 4 players", state.Opponents)
	}
}

func TestFormationFreezesOnScores(t *testing.T) {
	n := NewNegotiator(fourOrder, false)
	frozen := Timing{ScoresSubmitted: true}
	if err := n.OfferPartnership("p1", "p2", frozen); !apperrors.IsCode(err, apperrors.CodeTeamFormationClosed) {
		t.Fatalf("offer after scores: got %v", err)
	}
}
