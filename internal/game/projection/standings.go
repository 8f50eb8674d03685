package projection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goathill/wolfgoatpig/internal/game/event"
	"github.com/goathill/wolfgoatpig/internal/game/points"
)

// HoleOutcome is one resolved hole in the standings read model.
type HoleOutcome struct {
	Hole        int
	Halved      bool
	WinningSide string
	Wager       points.Quarters
	Deltas      map[string]points.Quarters
	CarriedOver points.Quarters
	ByDecline   bool
}

// Standings is a read model of a round rebuilt from its journal: player
// names, running totals and the per-hole outcomes.
type Standings struct {
	RoundID    string
	CourseName string
	Players    []string
	Names      map[string]string
	Totals     map[string]points.Quarters
	Holes      []HoleOutcome
	Finished   bool
	Halted     bool
}

// NewStandings returns an empty standings applier.
func NewStandings() *Standings {
	return &Standings{
		Names:  map[string]string{},
		Totals: map[string]points.Quarters{},
	}
}

// Apply folds one journal entry into the standings. Events that do not
// affect standings are ignored.
func (s *Standings) Apply(_ context.Context, evt event.Event) error {
	switch evt.Type {
	case event.TypeRoundInitialized:
		var payload event.RoundInitializedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		s.RoundID = evt.RoundID
		s.CourseName = payload.CourseName
		s.Players = payload.PlayerIDs
		for id, name := range payload.PlayerName {
			s.Names[id] = name
		}
		for _, id := range payload.PlayerIDs {
			s.Totals[id] = 0
		}

	case event.TypeHoleResolved:
		var payload event.HoleResolvedPayload
		if err := json.Unmarshal(evt.PayloadJSON, &payload); err != nil {
			return fmt.Errorf("decode %s payload: %w", evt.Type, err)
		}
		for id, delta := range payload.Deltas {
			s.Totals[id] += delta
		}
		s.Holes = append(s.Holes, HoleOutcome{
			Hole:        evt.HoleNumber,
			Halved:      payload.Halved,
			WinningSide: payload.WinningSide,
			Wager:       payload.Wager,
			Deltas:      payload.Deltas,
			CarriedOver: payload.CarriedOver,
			ByDecline:   payload.ByDecline,
		})

	case event.TypeRoundFinished:
		s.Finished = true

	case event.TypeRoundHalted:
		s.Halted = true
	}
	return nil
}

// Goat returns the player furthest down in points, ties broken by the
// original joining order. Empty until the round is initialized.
func (s *Standings) Goat() string {
	if len(s.Players) == 0 {
		return ""
	}
	goat := s.Players[0]
	for _, id := range s.Players[1:] {
		if s.Totals[id] < s.Totals[goat] {
			goat = id
		}
	}
	return goat
}
