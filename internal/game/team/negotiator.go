package team

import (
	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
)

// Timing carries the shot observations that gate formation transitions.
// The hole controller owns shot tracking and supplies a snapshot per call.
type Timing struct {
	// Strokes maps player id to strokes taken so far on the hole.
	Strokes map[string]int
	// ScoresSubmitted is true once the hole's scores are in.
	ScoresSubmitted bool
}

func (t Timing) strokes(id string) int {
	if t.Strokes == nil {
		return 0
	}
	return t.Strokes[id]
}

func (t Timing) anySecondStroke() bool {
	for _, n := range t.Strokes {
		if n >= 2 {
			return true
		}
	}
	return false
}

// WagerEffect is the multiplier a formation transition applies to the
// hole's wager. 1 means no change.
type WagerEffect int

// Negotiator drives team formation for one hole.
type Negotiator struct {
	state State
	// order is the hole's tee order, captain first.
	order []string
}

// NewNegotiator starts formation for a hole. order is the tee order with
// the captain at the head. When aardvark is true the last player in the
// order floats and must later request a side.
func NewNegotiator(order []string, aardvark bool) *Negotiator {
	n := &Negotiator{
		order: append([]string(nil), order...),
		state: State{Kind: KindPending, Captain: order[0]},
	}
	if aardvark {
		n.state.Aardvark = order[len(order)-1]
	}
	return n
}

// State returns the current formation state.
func (n *Negotiator) State() State {
	return n.state
}

// frozen reports whether all formation transitions are barred.
func (n *Negotiator) frozen(t Timing) bool {
	return t.ScoresSubmitted || t.anySecondStroke()
}

// OfferPartnership proposes candidate as the captain's partner. The offer
// window for a candidate closes when the next player in the tee order has
// hit: the captain must ask on the strength of the drive just seen.
func (n *Negotiator) OfferPartnership(captain, candidate string, t Timing) error {
	if n.frozen(t) {
		return apperrors.New(apperrors.CodeTeamFormationClosed, "formation is closed for this hole")
	}
	if n.state.Kind != KindPending {
		return apperrors.New(apperrors.CodeTeamInvalidTransition, "partnership can only be offered before formation")
	}
	if captain != n.state.Captain {
		return apperrors.New(apperrors.CodeTeamInvalidTransition, "only the captain may offer a partnership")
	}
	if candidate == captain || candidate == n.state.Aardvark || !n.contains(candidate) {
		return apperrors.WithMetadata(apperrors.CodeTeamCandidateInvalid,
			"candidate cannot be invited",
			map[string]string{"PlayerID": candidate})
	}
	if next, ok := n.nextAfter(candidate); ok && t.strokes(next) >= 1 {
		return apperrors.New(apperrors.CodeTeamInvalidTransition, "the offer window for that player has passed")
	}
	n.state.Kind = KindOffered
	n.state.Candidate = candidate
	return nil
}

// RespondPartnership resolves a pending offer. Accepting settles partners;
// declining sends the captain out alone, which doubles the wager.
func (n *Negotiator) RespondPartnership(responder string, accept bool, t Timing) (WagerEffect, error) {
	if n.frozen(t) {
		return 1, apperrors.New(apperrors.CodeTeamFormationClosed, "formation is closed for this hole")
	}
	if n.state.Kind != KindOffered {
		return 1, apperrors.New(apperrors.CodeTeamInvalidTransition, "no partnership offer is pending")
	}
	if responder != n.state.Candidate {
		return 1, apperrors.New(apperrors.CodeTeamInvalidTransition, "only the invited player may respond")
	}
	if accept {
		n.formPartners(n.state.Candidate)
		return 1, nil
	}
	// Declined: the captain is on their own and the stake doubles.
	n.formSolo()
	return 2, nil
}

// DeclareSolo puts the captain out alone without an offer, doubling the
// wager. A captain may do this even after watching the field's drives, up
// until anyone has hit a second shot.
func (n *Negotiator) DeclareSolo(captain string, t Timing) (WagerEffect, error) {
	if n.frozen(t) {
		return 1, apperrors.New(apperrors.CodeTeamFormationClosed, "formation is closed for this hole")
	}
	if n.state.Kind != KindPending {
		return 1, apperrors.New(apperrors.CodeTeamInvalidTransition, "solo must be declared before other formation")
	}
	if captain != n.state.Captain {
		return 1, apperrors.New(apperrors.CodeTeamInvalidTransition, "only the captain may declare solo")
	}
	n.formSolo()
	return 2, nil
}

// RequestJoinSide is the aardvark asking to join a settled side.
func (n *Negotiator) RequestJoinSide(requester string, side SideID, t Timing) error {
	if n.frozen(t) {
		return apperrors.New(apperrors.CodeTeamFormationClosed, "formation is closed for this hole")
	}
	if n.state.Aardvark == "" || requester != n.state.Aardvark {
		return apperrors.New(apperrors.CodeTeamAardvarkUnexpected, "no aardvark may join a side")
	}
	if n.state.Kind != KindPartners {
		return apperrors.New(apperrors.CodeTeamInvalidTransition, "sides must be settled before the aardvark joins")
	}
	if n.state.Join != nil {
		return apperrors.New(apperrors.CodeTeamInvalidTransition, "a join request is already pending")
	}
	if side != SideA && side != SideB {
		return apperrors.New(apperrors.CodeTeamInvalidTransition, "unknown side")
	}
	n.state.Join = &JoinRequest{Aardvark: requester, Requested: side}
	return nil
}

// RespondJoinRequest resolves a pending aardvark request. The requested
// side may accept or toss the aardvark back (doubling the wager and
// sending them to the other side); after a toss, the other side may accept
// or counter-toss (doubling again and sending the aardvark back where they
// first asked).
func (n *Negotiator) RespondJoinRequest(responder string, accept bool, t Timing) (WagerEffect, error) {
	if n.frozen(t) {
		return 1, apperrors.New(apperrors.CodeTeamFormationClosed, "formation is closed for this hole")
	}
	join := n.state.Join
	if n.state.Kind != KindPartners || join == nil {
		return 1, apperrors.New(apperrors.CodeTeamInvalidTransition, "no join request is pending")
	}

	respondingSide := join.Requested
	landing := join.Requested
	if join.Tossed {
		respondingSide = join.Requested.Other()
		landing = join.Requested.Other()
	}
	if side, ok := n.state.SideOf(responder); !ok || side != respondingSide {
		return 1, apperrors.New(apperrors.CodeTeamInvalidTransition, "only the side holding the request may respond")
	}

	if accept {
		n.placeAardvark(landing)
		return 1, nil
	}
	if !join.Tossed {
		// Tossed back: the aardvark lands on the other side unless that
		// side counter-tosses.
		join.Tossed = true
		return 2, nil
	}
	// Counter-toss: back to the side the aardvark first asked for, with
	// the wager doubled again.
	n.placeAardvark(join.Requested)
	return 2, nil
}

// formPartners settles the captain and partner against the rest, leaving
// the aardvark floating.
func (n *Negotiator) formPartners(partner string) {
	sideA := []string{n.state.Captain, partner}
	var sideB []string
	for _, id := range n.order {
		if id == n.state.Captain || id == partner || id == n.state.Aardvark {
			continue
		}
		sideB = append(sideB, id)
	}
	n.state.Kind = KindPartners
	n.state.Candidate = ""
	n.state.SideA = sideA
	n.state.SideB = sideB
}

// formSolo settles the captain against everyone, aardvark included.
func (n *Negotiator) formSolo() {
	var opponents []string
	for _, id := range n.order {
		if id != n.state.Captain {
			opponents = append(opponents, id)
		}
	}
	n.state.Kind = KindSolo
	n.state.Candidate = ""
	n.state.Aardvark = ""
	n.state.Join = nil
	n.state.Soloist = n.state.Captain
	n.state.Opponents = opponents
}

// placeAardvark finalizes the aardvark onto a side.
func (n *Negotiator) placeAardvark(side SideID) {
	if side == SideA {
		n.state.SideA = append(n.state.SideA, n.state.Aardvark)
	} else {
		n.state.SideB = append(n.state.SideB, n.state.Aardvark)
	}
	n.state.Kind = KindJoined
	n.state.Aardvark = ""
	n.state.Join = nil
}

func (n *Negotiator) contains(id string) bool {
	for _, pid := range n.order {
		if pid == id {
			return true
		}
	}
	return false
}

// nextAfter returns the player who tees off immediately after id.
func (n *Negotiator) nextAfter(id string) (string, bool) {
	for i, pid := range n.order {
		if pid == id && i+1 < len(n.order) {
			return n.order[i+1], true
		}
	}
	return "", false
}
