package event

import (
	"github.com/goathill/wolfgoatpig/internal/game/points"
)

// RoundInitializedPayload captures the field and stakes of a new round.
type RoundInitializedPayload struct {
	CourseName string             `json:"course_name"`
	PlayerIDs  []string           `json:"player_ids"`
	PlayerName map[string]string  `json:"player_names"`
	BaseWager  points.Quarters    `json:"base_wager"`
	Handicaps  map[string]float64 `json:"handicaps"`
}

// RoundFinishedPayload captures the final standings.
type RoundFinishedPayload struct {
	Totals map[string]points.Quarters `json:"totals"`
}

// RoundHaltedPayload captures the defect that froze a round.
type RoundHaltedPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HoleStartedPayload captures a hole opening.
type HoleStartedPayload struct {
	Captain      string          `json:"captain"`
	Phase        string          `json:"phase"`
	OpeningWager points.Quarters `json:"opening_wager"`
	CarriedOver  points.Quarters `json:"carried_over,omitempty"`
	Order        []string        `json:"order"`
}

// HoleResolvedPayload captures a settled hole.
type HoleResolvedPayload struct {
	Halved      bool                       `json:"halved"`
	WinningSide string                     `json:"winning_side,omitempty"`
	Wager       points.Quarters            `json:"wager"`
	Deltas      map[string]points.Quarters `json:"deltas"`
	Totals      map[string]points.Quarters `json:"totals"`
	CarriedOver points.Quarters            `json:"carried_over,omitempty"`
	ByDecline   bool                       `json:"by_decline,omitempty"`
}

// PositionSelectedPayload captures the Goat picking a rotation spot.
type PositionSelectedPayload struct {
	PlayerID string `json:"player_id"`
	Position int    `json:"position"`
}

// JoesSpecialSetPayload captures the Goat naming the opening wager.
type JoesSpecialSetPayload struct {
	PlayerID string          `json:"player_id"`
	Value    points.Quarters `json:"value"`
}

// ShotRecordedPayload captures a stroke and ball position.
type ShotRecordedPayload struct {
	PlayerID string `json:"player_id"`
	Stroke   int    `json:"stroke"`
	// DistanceRemaining is yards to the hole after the stroke, feeding
	// the line-of-scrimmage restriction.
	DistanceRemaining int `json:"distance_remaining"`
}

// ScoresSubmittedPayload captures the hole's gross scores.
type ScoresSubmittedPayload struct {
	Gross map[string]int `json:"gross"`
}

// PartnershipPayload covers partnership offers and responses.
type PartnershipPayload struct {
	Captain   string `json:"captain"`
	Candidate string `json:"candidate"`
}

// SoloDeclaredPayload captures the captain going out alone.
type SoloDeclaredPayload struct {
	Soloist   string          `json:"soloist"`
	Opponents []string        `json:"opponents"`
	Wager     points.Quarters `json:"wager"`
}

// AardvarkPayload covers aardvark join requests and responses.
type AardvarkPayload struct {
	Aardvark  string          `json:"aardvark"`
	Side      string          `json:"side"`
	Wager     points.Quarters `json:"wager,omitempty"`
	Responder string          `json:"responder,omitempty"`
}

// DoublePayload covers double offers and responses.
type DoublePayload struct {
	Side     string          `json:"side"`
	PlayerID string          `json:"player_id"`
	Wager    points.Quarters `json:"wager"`
}

// WagerPayload covers float, option and closing events.
type WagerPayload struct {
	PlayerID string          `json:"player_id,omitempty"`
	Wager    points.Quarters `json:"wager"`
}
