// Package event defines the immutable journal of everything that happens
// in a round. Collaborators consume the journal for notifications,
// statistics and timeline views; projections rebuild standings from it.
package event

import (
	"strings"
	"time"
)

// Type identifies the type of a round event.
type Type string

// Round lifecycle events.
const (
	// TypeRoundInitialized records the creation of a round.
	TypeRoundInitialized Type = "round.initialized"
	// TypeRoundFinished records the 18th hole resolving.
	TypeRoundFinished Type = "round.finished"
	// TypeRoundHalted records a rules-engine defect freezing the round.
	TypeRoundHalted Type = "round.halted"
)

// Hole lifecycle events.
const (
	// TypeHoleStarted records a hole opening with its captain and phase.
	TypeHoleStarted Type = "hole.started"
	// TypeHoleResolved records a settled hole and its point exchange.
	TypeHoleResolved Type = "hole.resolved"
	// TypePositionSelected records the Goat picking a rotation spot.
	TypePositionSelected Type = "hole.position_selected"
	// TypeJoesSpecialSet records the Goat naming the opening wager.
	TypeJoesSpecialSet Type = "hole.joes_special_set"
	// TypeShotRecorded records a stroke and the resulting ball position.
	TypeShotRecorded Type = "hole.shot_recorded"
	// TypeScoresSubmitted records the hole's gross scores arriving.
	TypeScoresSubmitted Type = "hole.scores_submitted"
)

// Team formation events.
const (
	// TypePartnershipOffered records the captain proposing a partner.
	TypePartnershipOffered Type = "team.partnership_offered"
	// TypePartnershipAccepted records a settled partnership.
	TypePartnershipAccepted Type = "team.partnership_accepted"
	// TypePartnershipDeclined records a turned-down offer and forced solo.
	TypePartnershipDeclined Type = "team.partnership_declined"
	// TypeSoloDeclared records the captain going out alone.
	TypeSoloDeclared Type = "team.solo_declared"
	// TypeAardvarkRequested records the aardvark asking to join a side.
	TypeAardvarkRequested Type = "team.aardvark_requested"
	// TypeAardvarkAccepted records a side taking the aardvark.
	TypeAardvarkAccepted Type = "team.aardvark_accepted"
	// TypeAardvarkTossed records the aardvark thrown back.
	TypeAardvarkTossed Type = "team.aardvark_tossed"
	// TypeAardvarkCounterTossed records a toss answered with a toss.
	TypeAardvarkCounterTossed Type = "team.aardvark_counter_tossed"
)

// Wager events.
const (
	// TypeDoubleOffered records a double put to the opposing side.
	TypeDoubleOffered Type = "wager.double_offered"
	// TypeDoubleAccepted records an accepted double.
	TypeDoubleAccepted Type = "wager.double_accepted"
	// TypeDoubleDeclined records a declined double ending the hole.
	TypeDoubleDeclined Type = "wager.double_declined"
	// TypeFloatInvoked records the captain spending their float.
	TypeFloatInvoked Type = "wager.float_invoked"
	// TypeOptionApplied records the automatic Goat-captain double.
	TypeOptionApplied Type = "wager.option_applied"
	// TypeOptionToggledOff records the captain waving the option off.
	TypeOptionToggledOff Type = "wager.option_toggled_off"
	// TypeWageringClosed records the betting window closing.
	TypeWageringClosed Type = "wager.closed"
)

// ActorType identifies who or what triggered an event.
type ActorType string

const (
	// ActorTypeSystem indicates the event was triggered by the engine.
	ActorTypeSystem ActorType = "system"
	// ActorTypePlayer indicates the event was triggered by a player.
	ActorTypePlayer ActorType = "player"
)

// Event represents an immutable event in the round journal.
type Event struct {
	// RoundID is the round this event belongs to.
	RoundID string
	// Seq is the event sequence number within the round (starts at 1).
	// Assigned by storage on append.
	Seq uint64
	// Timestamp is when the event occurred.
	Timestamp time.Time
	// Type identifies the kind of event.
	Type Type
	// HoleNumber is the hole the event belongs to (0 for round events).
	HoleNumber int
	// RequestID is the idempotency token of the command that produced
	// the event.
	RequestID string
	// ActorType identifies who triggered the event.
	ActorType ActorType
	// ActorID is the player id when ActorType is player.
	ActorID string
	// PayloadJSON holds event-specific data as JSON.
	PayloadJSON []byte
}

// IsValid reports whether the event type is usable.
func (t Type) IsValid() bool {
	return strings.TrimSpace(string(t)) != ""
}

// Domain returns the domain prefix of the event type (e.g., "team",
// "wager").
func (t Type) Domain() string {
	for i, c := range t {
		if c == '.' {
			return string(t[:i])
		}
	}
	return string(t)
}
