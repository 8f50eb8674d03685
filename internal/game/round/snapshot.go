package round

import (
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/team"
	"github.com/goathill/wolfgoatpig/internal/game/wager"
)

// Snapshot is a read-only view of a session for presentation layers. It
// copies everything it exposes, so callers cannot mutate the session
// through it.
type Snapshot struct {
	RoundID    string
	CourseName string

	HoleNumber int
	Phase      string
	Captain    string
	Order      []string
	Teams      team.State

	Wager          points.Quarters
	BaseWager      points.Quarters
	CarriedOver    points.Quarters
	WageringClosed bool
	PendingDouble  *wager.DoubleOffer

	Totals  map[string]points.Quarters
	Results []HoleResult

	Completed bool
	Halted    bool
}

// Snapshot captures the session's observable state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		RoundID:     s.roundID,
		CourseName:  s.course.Name,
		BaseWager:   s.ledger.Base(),
		CarriedOver: s.ledger.Carried(),
		Totals:      s.roster.Totals(),
		Results:     s.Results(),
		Completed:   s.completed,
		Halted:      s.halted,
	}
	if s.current != nil {
		snap.HoleNumber = s.current.Number()
		snap.Phase = s.current.Phase().String()
		snap.Captain = s.current.Captain()
		snap.Order = s.current.Order()
		snap.Teams = s.current.Teams()
		snap.Wager = s.ledger.Current()
		snap.WageringClosed = s.ledger.Closed()
		snap.PendingDouble = s.ledger.Pending()
	}
	return snap
}
