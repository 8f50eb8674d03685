package round

import (
	"context"
	"log"
	"time"

	"github.com/goathill/wolfgoatpig/internal/course"
	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
	"github.com/goathill/wolfgoatpig/internal/game/event"
	"github.com/goathill/wolfgoatpig/internal/game/phase"
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/roster"
	"github.com/goathill/wolfgoatpig/internal/game/stroke"
	"github.com/goathill/wolfgoatpig/internal/game/team"
	"github.com/goathill/wolfgoatpig/internal/game/wager"
	"github.com/goathill/wolfgoatpig/internal/id"
)

// Command identifies one mutating request against a session. RequestID is
// the idempotency token: a replayed id returns the recorded outcome
// without reapplying. ActorID is the player issuing the action.
type Command struct {
	RequestID string
	ActorID   string
}

// Config describes a new round.
type Config struct {
	Players   []roster.Player
	Course    course.Course
	BaseWager points.Quarters
	// EventStore receives the round journal. Optional: a nil store keeps
	// the session purely in memory.
	EventStore event.Store
	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() (string, error)
}

// Session owns one round: the roster, the wager ledger's cross-hole
// state, and the sequence of hole controllers. All mutating operations on
// a session must be applied one at a time.
type Session struct {
	roundID string
	roster  *roster.Roster
	course  course.Course
	ledger  *wager.Ledger

	allocations map[string]stroke.Table

	current   *HoleController
	results   []HoleResult
	completed bool
	halted    bool
	haltCause error

	seen map[string]error

	emitter *event.Emitter
	now     func() time.Time
}

// NewSession validates the field and opens hole 1.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = id.NewID
	}
	if err := cfg.Course.Validate(); err != nil {
		return nil, err
	}
	r, err := roster.New(cfg.Players)
	if err != nil {
		return nil, err
	}
	ledger, err := wager.NewLedger(cfg.BaseWager)
	if err != nil {
		return nil, err
	}
	if _, err := phase.ForHole(1, r.Count()); err != nil {
		return nil, err
	}

	roundID, err := cfg.NewID()
	if err != nil {
		return nil, err
	}

	s := &Session{
		roundID: roundID,
		roster:  r,
		course:  cfg.Course,
		ledger:  ledger,
		seen:    map[string]error{},
		now:     cfg.Now,
	}
	if cfg.EventStore != nil {
		s.emitter = event.NewEmitter(cfg.EventStore)
	}

	s.allocations = make(map[string]stroke.Table, r.Count())
	ranks := cfg.Course.Ranks()
	fieldMin := r.FieldMinHandicap()
	names := make(map[string]string, r.Count())
	handicaps := make(map[string]float64, r.Count())
	for _, p := range r.Players() {
		table, err := stroke.Allocate(stroke.NetHandicap(p.Handicap, fieldMin), ranks)
		if err != nil {
			return nil, err
		}
		s.allocations[p.ID] = table
		names[p.ID] = p.Name
		handicaps[p.ID] = float64(p.Handicap) / 2
	}

	if err := s.emit(ctx, event.EmitInput{
		RoundID: s.roundID,
		Type:    event.TypeRoundInitialized,
		Payload: event.RoundInitializedPayload{
			CourseName: cfg.Course.Name,
			PlayerIDs:  r.Order(),
			PlayerName: names,
			BaseWager:  cfg.BaseWager,
			Handicaps:  handicaps,
		},
	}); err != nil {
		return nil, err
	}

	if err := s.startHole(ctx, 1); err != nil {
		return nil, err
	}
	return s, nil
}

// RoundID returns the session's identifier.
func (s *Session) RoundID() string { return s.roundID }

// Completed reports whether the 18th hole has resolved and the session is
// frozen.
func (s *Session) Completed() bool { return s.completed }

// Halted reports whether an engine defect froze the session.
func (s *Session) Halted() bool { return s.halted }

// Results returns the resolved holes in order.
func (s *Session) Results() []HoleResult {
	return append([]HoleResult(nil), s.results...)
}

// Totals returns the cumulative point totals.
func (s *Session) Totals() map[string]points.Quarters {
	return s.roster.Totals()
}

// CurrentHole returns the open hole controller, nil once the round is
// done.
func (s *Session) CurrentHole() *HoleController { return s.current }

// emit appends to the journal when a store is configured.
func (s *Session) emit(ctx context.Context, input event.EmitInput) error {
	if s.emitter == nil {
		return nil
	}
	_, err := s.emitter.Emit(ctx, input)
	return err
}

// guard rejects mutations against frozen sessions.
func (s *Session) guard() error {
	if s.halted {
		return apperrors.New(apperrors.CodeSessionHalted, "the round is halted")
	}
	if s.completed {
		return apperrors.New(apperrors.CodeSessionComplete, "the round is over")
	}
	return nil
}

// apply runs one mutating command with idempotency and halt handling.
func (s *Session) apply(ctx context.Context, cmd Command, op func(context.Context) error) error {
	if cmd.RequestID != "" {
		if prior, ok := s.seen[cmd.RequestID]; ok {
			return prior
		}
	}
	err := s.guard()
	if err == nil {
		err = op(ctx)
	}
	if apperrors.IsCode(err, apperrors.CodeInvariantViolation) {
		s.halt(ctx, err)
	}
	if cmd.RequestID != "" {
		s.seen[cmd.RequestID] = err
	}
	return err
}

// halt freezes the session after an internal defect. Rule violations
// never halt; this path means the engine itself misbehaved.
func (s *Session) halt(ctx context.Context, cause error) {
	s.halted = true
	s.haltCause = cause
	log.Printf("round halted round_id=%s code=%s cause=%q",
		s.roundID, apperrors.GetCode(cause), cause.Error())
	_ = s.emit(ctx, event.EmitInput{
		RoundID:    s.roundID,
		Type:       event.TypeRoundHalted,
		HoleNumber: s.currentHoleNumber(),
		Payload: event.RoundHaltedPayload{
			Code:    string(apperrors.GetCode(cause)),
			Message: cause.Error(),
		},
	})
}

func (s *Session) currentHoleNumber() int {
	if s.current == nil {
		return 0
	}
	return s.current.Number()
}

// startHole opens a hole: phase lookup, captain from the rotation, the
// opening wager with carry-over and phase minimums, and the option when
// the captain is the Goat.
func (s *Session) startHole(ctx context.Context, number int) error {
	ph, err := phase.ForHole(number, s.roster.Count())
	if err != nil {
		return err
	}
	holeData, ok := s.course.Hole(number)
	if !ok {
		return apperrors.New(apperrors.CodeRoundCourseInvalid, "hole missing from course")
	}

	opening := s.ledger.Opening()
	if ph == phase.VinnieVariation && opening < 2*s.ledger.Base() {
		opening = 2 * s.ledger.Base()
	}

	order := s.roster.Order()
	allocated := make(map[string]stroke.Half, len(order))
	for _, pid := range order {
		allocated[pid] = s.allocations[pid][number]
	}

	controller, err := newHoleController(number, holeData.Par, ph, order,
		allocated, s.ledger, opening, s.roster.Count() >= 5)
	if err != nil {
		return err
	}
	s.current = controller

	if err := s.emit(ctx, event.EmitInput{
		RoundID:    s.roundID,
		Type:       event.TypeHoleStarted,
		HoleNumber: number,
		Payload: event.HoleStartedPayload{
			Captain:      controller.Captain(),
			Phase:        ph.String(),
			OpeningWager: opening,
			CarriedOver:  s.ledger.Carried(),
			Order:        order,
		},
	}); err != nil {
		return err
	}

	// The option: an automatic double when the captain is alone at the
	// bottom of the standings. The Goat already names the stakes in
	// Hoepfinger, so it does not stack there.
	if ph != phase.Hoepfinger && s.captainIsUniqueGoat(controller.Captain()) {
		s.ledger.ApplyOption(controller.Captain())
		if err := s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeOptionApplied,
			HoleNumber: number,
			ActorID:    controller.Captain(),
			ActorType:  event.ActorTypeSystem,
			Payload:    event.WagerPayload{PlayerID: controller.Captain(), Wager: s.ledger.Current()},
		}); err != nil {
			return err
		}
	}
	return s.ledger.CheckInvariant()
}

// captainIsUniqueGoat reports whether the captain holds the strictly
// lowest cumulative total.
func (s *Session) captainIsUniqueGoat(captain string) bool {
	totals := s.roster.Totals()
	captainTotal := totals[captain]
	for id, total := range totals {
		if id == captain {
			continue
		}
		if total <= captainTotal {
			return false
		}
	}
	return true
}

// OfferPartnership is the captain proposing candidate as a partner.
func (s *Session) OfferPartnership(ctx context.Context, cmd Command, candidate string) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if err := s.current.OfferPartnership(cmd.ActorID, candidate); err != nil {
			return err
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypePartnershipOffered,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.PartnershipPayload{Captain: cmd.ActorID, Candidate: candidate},
		})
	})
}

// RespondPartnership is the invited player answering the captain.
func (s *Session) RespondPartnership(ctx context.Context, cmd Command, accept bool) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		captain := s.current.Captain()
		if err := s.current.RespondPartnership(cmd.ActorID, accept); err != nil {
			return err
		}
		typ := event.TypePartnershipAccepted
		if !accept {
			typ = event.TypePartnershipDeclined
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       typ,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.PartnershipPayload{Captain: captain, Candidate: cmd.ActorID},
		})
	})
}

// DeclareSolo is the captain going out alone.
func (s *Session) DeclareSolo(ctx context.Context, cmd Command) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if err := s.current.DeclareSolo(cmd.ActorID); err != nil {
			return err
		}
		state := s.current.Teams()
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeSoloDeclared,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload: event.SoloDeclaredPayload{
				Soloist:   state.Soloist,
				Opponents: state.Opponents,
				Wager:     s.ledger.Current(),
			},
		})
	})
}

// RequestJoinSide is the aardvark asking to join a side.
func (s *Session) RequestJoinSide(ctx context.Context, cmd Command, side team.SideID) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if err := s.current.RequestJoinSide(cmd.ActorID, side); err != nil {
			return err
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeAardvarkRequested,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.AardvarkPayload{Aardvark: cmd.ActorID, Side: string(side)},
		})
	})
}

// RespondJoinRequest accepts or tosses a pending aardvark request.
func (s *Session) RespondJoinRequest(ctx context.Context, cmd Command, accept bool) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		join := s.current.Teams().Join
		alreadyTossed := join != nil && join.Tossed
		aardvark := ""
		requested := team.SideID("")
		if join != nil {
			aardvark = join.Aardvark
			requested = join.Requested
		}
		tossed, err := s.current.RespondJoinRequest(cmd.ActorID, accept)
		if err != nil {
			return err
		}
		typ := event.TypeAardvarkAccepted
		if tossed {
			typ = event.TypeAardvarkTossed
			if alreadyTossed {
				typ = event.TypeAardvarkCounterTossed
			}
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       typ,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload: event.AardvarkPayload{
				Aardvark:  aardvark,
				Side:      string(requested),
				Wager:     s.ledger.Current(),
				Responder: cmd.ActorID,
			},
		})
	})
}

// OfferDouble puts a double to the opposing side.
func (s *Session) OfferDouble(ctx context.Context, cmd Command) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if err := s.current.OfferDouble(cmd.ActorID); err != nil {
			return err
		}
		side, _ := s.current.Teams().SideOf(cmd.ActorID)
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeDoubleOffered,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.DoublePayload{Side: string(side), PlayerID: cmd.ActorID, Wager: s.ledger.Current()},
		})
	})
}

// RespondDouble answers a pending double. A decline ends the hole with
// the offering side winning at the prior wager.
func (s *Session) RespondDouble(ctx context.Context, cmd Command, accept bool) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		outcome, err := s.current.RespondDouble(cmd.ActorID, accept)
		if err != nil {
			return err
		}
		side, _ := s.current.Teams().SideOf(cmd.ActorID)
		if outcome == nil {
			return s.emit(ctx, event.EmitInput{
				RoundID:    s.roundID,
				Type:       event.TypeDoubleAccepted,
				HoleNumber: s.current.Number(),
				RequestID:  cmd.RequestID,
				ActorID:    cmd.ActorID,
				Payload:    event.DoublePayload{Side: string(side), PlayerID: cmd.ActorID, Wager: s.ledger.Current()},
			})
		}
		if err := s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeDoubleDeclined,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.DoublePayload{Side: string(side), PlayerID: cmd.ActorID, Wager: outcome.Wager},
		}); err != nil {
			return err
		}
		result, err := s.current.FinalizeByDecline(*outcome, s.roster.Totals(), s.roster.Order())
		if err != nil {
			return err
		}
		return s.recordResult(ctx, cmd, result)
	})
}

// InvokeFloat spends the captain's once-a-round float.
func (s *Session) InvokeFloat(ctx context.Context, cmd Command) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if err := s.current.InvokeFloat(cmd.ActorID); err != nil {
			return err
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeFloatInvoked,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.WagerPayload{PlayerID: cmd.ActorID, Wager: s.ledger.Current()},
		})
	})
}

// ToggleOption turns the automatic option double off.
func (s *Session) ToggleOption(ctx context.Context, cmd Command) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if err := s.current.ToggleOption(cmd.ActorID); err != nil {
			return err
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeOptionToggledOff,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.WagerPayload{PlayerID: cmd.ActorID, Wager: s.ledger.Current()},
		})
	})
}

// RecordShot counts a stroke and updates the ball position.
func (s *Session) RecordShot(ctx context.Context, cmd Command, distanceRemaining int) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		closed, err := s.current.RecordShot(cmd.ActorID, distanceRemaining)
		if err != nil {
			return err
		}
		if err := s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeShotRecorded,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload: event.ShotRecordedPayload{
				PlayerID:          cmd.ActorID,
				Stroke:            s.current.Strokes(cmd.ActorID),
				DistanceRemaining: distanceRemaining,
			},
		}); err != nil {
			return err
		}
		if closed {
			return s.emit(ctx, event.EmitInput{
				RoundID:    s.roundID,
				Type:       event.TypeWageringClosed,
				HoleNumber: s.current.Number(),
				Payload:    event.WagerPayload{Wager: s.ledger.Current()},
			})
		}
		return nil
	})
}

// SubmitHoleScores settles the hole on gross scores.
func (s *Session) SubmitHoleScores(ctx context.Context, cmd Command, gross map[string]int) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		result, err := s.current.SubmitScores(gross, s.roster.Totals(), s.roster.Order())
		if err != nil {
			return err
		}
		if err := s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeScoresSubmitted,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.ScoresSubmittedPayload{Gross: gross},
		}); err != nil {
			return err
		}
		return s.recordResult(ctx, cmd, result)
	})
}

// SelectPosition is the Goat picking a rotation spot in Hoepfinger.
func (s *Session) SelectPosition(ctx context.Context, cmd Command, position int) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if cmd.ActorID != s.roster.Goat() {
			return apperrors.WithMetadata(apperrors.CodePhaseOperationUnavailable,
				"only the goat picks a position",
				map[string]string{"Phase": phase.Hoepfinger.String()})
		}
		if err := s.current.CanReorder(); err != nil {
			return err
		}
		if err := s.roster.SelectPosition(cmd.ActorID, position); err != nil {
			return err
		}
		if err := s.current.Reorder(s.roster.Order()); err != nil {
			return err
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypePositionSelected,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.PositionSelectedPayload{PlayerID: cmd.ActorID, Position: position},
		})
	})
}

// SetJoesSpecial is the Goat naming the hole's opening wager.
func (s *Session) SetJoesSpecial(ctx context.Context, cmd Command, value points.Quarters) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if cmd.ActorID != s.roster.Goat() {
			return apperrors.WithMetadata(apperrors.CodePhaseOperationUnavailable,
				"only the goat names the opening wager",
				map[string]string{"Phase": phase.Hoepfinger.String()})
		}
		if err := s.current.SetJoesSpecial(value); err != nil {
			return err
		}
		return s.emit(ctx, event.EmitInput{
			RoundID:    s.roundID,
			Type:       event.TypeJoesSpecialSet,
			HoleNumber: s.current.Number(),
			RequestID:  cmd.RequestID,
			ActorID:    cmd.ActorID,
			Payload:    event.JoesSpecialSetPayload{PlayerID: cmd.ActorID, Value: value},
		})
	})
}

// AdvanceHole moves to the next hole once the current one is settled,
// rotating the captaincy. After the 18th it freezes the session.
func (s *Session) AdvanceHole(ctx context.Context, cmd Command) error {
	return s.apply(ctx, cmd, func(ctx context.Context) error {
		if !s.current.Resolved() {
			return apperrors.New(apperrors.CodeSessionHoleUnresolved, "finish the current hole first")
		}
		if s.current.Number() >= stroke.Holes {
			s.completed = true
			s.current = nil
			return s.emit(ctx, event.EmitInput{
				RoundID: s.roundID,
				Type:    event.TypeRoundFinished,
				Payload: event.RoundFinishedPayload{Totals: s.roster.Totals()},
			})
		}
		next := s.current.Number() + 1
		s.roster.Rotate()
		return s.startHole(ctx, next)
	})
}

// recordResult applies a settled hole to the standings and journals it.
func (s *Session) recordResult(ctx context.Context, cmd Command, result HoleResult) error {
	if err := s.roster.ApplyDeltas(result.Deltas); err != nil {
		return err
	}
	if err := s.ledger.CheckInvariant(); err != nil {
		return err
	}
	s.results = append(s.results, result)
	log.Printf("hole resolved round_id=%s hole=%d halved=%t winning_side=%s wager=%d",
		s.roundID, result.Hole, result.Halved, result.WinningSide, result.Wager)
	return s.emit(ctx, event.EmitInput{
		RoundID:    s.roundID,
		Type:       event.TypeHoleResolved,
		HoleNumber: result.Hole,
		RequestID:  cmd.RequestID,
		Payload: event.HoleResolvedPayload{
			Halved:      result.Halved,
			WinningSide: string(result.WinningSide),
			Wager:       result.Wager,
			Deltas:      result.Deltas,
			Totals:      s.roster.Totals(),
			CarriedOver: result.CarriedOver,
			ByDecline:   result.ByDecline,
		},
	})
}
