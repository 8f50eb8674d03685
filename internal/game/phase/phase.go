// Package phase decides which rule variant governs a hole.
package phase

import "fmt"

// Phase identifies the rule variant active for a hole.
type Phase int

const (
	// Unspecified represents an invalid phase value.
	Unspecified Phase = iota
	// Regular is standard play.
	Regular
	// VinnieVariation covers the late holes before Hoepfinger: the opening
	// wager is at least double the base and multi-player sides may not
	// double until every player has teed off.
	VinnieVariation
	// Hoepfinger covers the closing holes: the Goat selects a spot in the
	// rotation and names the opening wager (Joe's Special), with doubling
	// deferred until all tee shots are in.
	Hoepfinger
)

// String returns the phase name used in events and logs.
func (p Phase) String() string {
	switch p {
	case Regular:
		return "regular"
	case VinnieVariation:
		return "vinnie_variation"
	case Hoepfinger:
		return "hoepfinger"
	default:
		return "unspecified"
	}
}

// hoepfingerStart maps player count to the first Hoepfinger hole. Larger
// games enter the closing phase earlier so every player gets a Goat turn.
var hoepfingerStart = map[int]int{
	4: 17,
	5: 16,
	6: 15,
}

// vinnieStart is the first hole of the Vinnie Variation for all formats.
const vinnieStart = 13

// ForHole returns the phase governing the given hole for a player count.
func ForHole(hole, playerCount int) (Phase, error) {
	if hole < 1 || hole > 18 {
		return Unspecified, fmt.Errorf("hole %d out of range", hole)
	}
	start, ok := hoepfingerStart[playerCount]
	if !ok {
		return Unspecified, fmt.Errorf("unsupported player count %d", playerCount)
	}
	switch {
	case hole >= start:
		return Hoepfinger, nil
	case hole >= vinnieStart:
		return VinnieVariation, nil
	default:
		return Regular, nil
	}
}
