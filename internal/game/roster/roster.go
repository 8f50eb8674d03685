// Package roster holds the ordered players of a round, their handicaps and
// running point totals, and supplies the captain rotation.
package roster

import (
	"strconv"
	"strings"

	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/stroke"
)

// Player counts supported by the game formats.
const (
	MinPlayers = 4
	MaxPlayers = 6
)

// Player is one member of the round.
type Player struct {
	ID       string
	Name     string
	Handicap stroke.Half // raw handicap in half-stroke units
}

// Roster is the ordered collection of players for one round.
//
// The rotation order determines the captain: the player at the head of the
// order captains the hole and tees off first.
type Roster struct {
	players []Player
	order   []string
	totals  map[string]points.Quarters
}

// New validates the field and builds a roster in tee-off order.
func New(players []Player) (*Roster, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, apperrors.WithMetadata(apperrors.CodeRoundPlayerCountInvalid,
			"unsupported player count",
			map[string]string{"Count": strconv.Itoa(len(players))})
	}

	r := &Roster{
		players: make([]Player, 0, len(players)),
		order:   make([]string, 0, len(players)),
		totals:  make(map[string]points.Quarters, len(players)),
	}
	for _, p := range players {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, apperrors.New(apperrors.CodeRoundPlayerUnknown, "player id is required")
		}
		if _, dup := r.totals[p.ID]; dup {
			return nil, apperrors.WithMetadata(apperrors.CodeRoundDuplicatePlayer,
				"duplicate player id",
				map[string]string{"PlayerID": p.ID})
		}
		if p.Handicap < 0 {
			return nil, apperrors.WithMetadata(apperrors.CodeRoundHandicapNegative,
				"negative handicap",
				map[string]string{"PlayerID": p.ID})
		}
		r.players = append(r.players, p)
		r.order = append(r.order, p.ID)
		r.totals[p.ID] = 0
	}
	return r, nil
}

// Count returns the number of players.
func (r *Roster) Count() int {
	return len(r.players)
}

// Players returns the players in joining order.
func (r *Roster) Players() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// Player returns the player with the given id.
func (r *Roster) Player(id string) (Player, bool) {
	for _, p := range r.players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Contains reports whether id belongs to the roster.
func (r *Roster) Contains(id string) bool {
	_, ok := r.totals[id]
	return ok
}

// Order returns the current rotation order, captain first.
func (r *Roster) Order() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Captain returns the player at the head of the rotation.
func (r *Roster) Captain() string {
	return r.order[0]
}

// Rotate advances the rotation by one position.
func (r *Roster) Rotate() {
	if len(r.order) < 2 {
		return
	}
	head := r.order[0]
	copy(r.order, r.order[1:])
	r.order[len(r.order)-1] = head
}

// SelectPosition moves a player to the given rotation position (0-based),
// shifting the others. Used when the Goat picks a spot in Hoepfinger.
func (r *Roster) SelectPosition(id string, position int) error {
	if position < 0 || position >= len(r.order) {
		return apperrors.New(apperrors.CodePhaseOperationUnavailable, "rotation position out of range")
	}
	from := -1
	for i, pid := range r.order {
		if pid == id {
			from = i
			break
		}
	}
	if from < 0 {
		return apperrors.WithMetadata(apperrors.CodeRoundPlayerUnknown,
			"player not in rotation",
			map[string]string{"PlayerID": id})
	}
	r.order = append(r.order[:from], r.order[from+1:]...)
	rest := append([]string{id}, r.order[position:]...)
	r.order = append(r.order[:position], rest...)
	return nil
}

// Totals returns a copy of the cumulative point totals.
func (r *Roster) Totals() map[string]points.Quarters {
	out := make(map[string]points.Quarters, len(r.totals))
	for id, q := range r.totals {
		out[id] = q
	}
	return out
}

// TotalFor returns one player's cumulative total.
func (r *Roster) TotalFor(id string) points.Quarters {
	return r.totals[id]
}

// ApplyDeltas adds resolved hole deltas to the running totals.
func (r *Roster) ApplyDeltas(deltas map[string]points.Quarters) error {
	for id := range deltas {
		if !r.Contains(id) {
			return apperrors.WithMetadata(apperrors.CodeRoundPlayerUnknown,
				"delta for unknown player",
				map[string]string{"PlayerID": id})
		}
	}
	for id, d := range deltas {
		r.totals[id] += d
	}
	return nil
}

// Goat returns the player furthest down in cumulative points, ties broken
// by current rotation order.
func (r *Roster) Goat() string {
	goat := r.order[0]
	for _, id := range r.order[1:] {
		if r.totals[id] < r.totals[goat] {
			goat = id
		}
	}
	return goat
}

// FieldMinHandicap returns the lowest raw handicap in the field.
func (r *Roster) FieldMinHandicap() stroke.Half {
	min := r.players[0].Handicap
	for _, p := range r.players[1:] {
		if p.Handicap < min {
			min = p.Handicap
		}
	}
	return min
}
