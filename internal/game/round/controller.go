// Package round orchestrates play: the hole controller drives one hole
// through formation, wagering and scoring, and the session runs 18 of
// them while accumulating points.
package round

import (
	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
	"github.com/goathill/wolfgoatpig/internal/game/phase"
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/scoring"
	"github.com/goathill/wolfgoatpig/internal/game/stroke"
	"github.com/goathill/wolfgoatpig/internal/game/team"
	"github.com/goathill/wolfgoatpig/internal/game/wager"
)

// HoleResult is the finalized record of one hole.
type HoleResult struct {
	Hole        int
	Phase       phase.Phase
	Captain     string
	Teams       team.State
	Wager       points.Quarters
	Halved      bool
	WinningSide team.SideID
	Net         map[string]stroke.Half
	Deltas      map[string]points.Quarters
	// ByDecline marks a hole ended by a declined double, with no scores.
	ByDecline   bool
	CarriedOver points.Quarters
}

// HoleController drives a single hole end to end: formation, shots,
// wagers, and scoring.
type HoleController struct {
	number    int
	par       int
	phs       phase.Phase
	order     []string
	allocated map[string]stroke.Half

	negotiator *team.Negotiator
	ledger     *wager.Ledger

	strokes  map[string]int
	distance map[string]int

	scoresIn bool
	result   *HoleResult
}

// newHoleController opens a hole at the given wager. order is the tee
// order with the captain first; aardvark marks a floating last player.
func newHoleController(number, par int, phs phase.Phase, order []string,
	allocated map[string]stroke.Half, ledger *wager.Ledger, opening points.Quarters, aardvark bool) (*HoleController, error) {

	if err := ledger.BeginHole(opening); err != nil {
		return nil, err
	}
	return &HoleController{
		number:     number,
		par:        par,
		phs:        phs,
		order:      append([]string(nil), order...),
		allocated:  allocated,
		negotiator: team.NewNegotiator(order, aardvark),
		ledger:     ledger,
		strokes:    map[string]int{},
		distance:   map[string]int{},
	}, nil
}

// Number returns the hole number.
func (h *HoleController) Number() int { return h.number }

// Phase returns the rule variant governing the hole.
func (h *HoleController) Phase() phase.Phase { return h.phs }

// Captain returns the hole's captain.
func (h *HoleController) Captain() string { return h.negotiator.State().Captain }

// Order returns the hole's tee order.
func (h *HoleController) Order() []string { return append([]string(nil), h.order...) }

// Teams returns the current formation state.
func (h *HoleController) Teams() team.State { return h.negotiator.State() }

// Resolved reports whether the hole has been settled.
func (h *HoleController) Resolved() bool { return h.result != nil }

// Result returns the finalized hole record once resolved.
func (h *HoleController) Result() (HoleResult, bool) {
	if h.result == nil {
		return HoleResult{}, false
	}
	return *h.result, true
}

func (h *HoleController) timing() team.Timing {
	strokes := make(map[string]int, len(h.strokes))
	for id, n := range h.strokes {
		strokes[id] = n
	}
	return team.Timing{Strokes: strokes, ScoresSubmitted: h.scoresIn}
}

func (h *HoleController) guardOpen() error {
	if h.result != nil {
		return apperrors.New(apperrors.CodeSessionHoleResolved, "the hole has already been decided")
	}
	return nil
}

// allTeedOff reports whether every player has hit a first stroke.
func (h *HoleController) allTeedOff() bool {
	for _, id := range h.order {
		if h.strokes[id] < 1 {
			return false
		}
	}
	return true
}

// doublingDeferred reports whether a phase rule postpones doubles until
// all tee shots are in.
func (h *HoleController) doublingDeferred() bool {
	return h.phs != phase.Regular && !h.allTeedOff()
}

// OfferPartnership proposes a partner for the captain.
func (h *HoleController) OfferPartnership(captain, candidate string) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	return h.negotiator.OfferPartnership(captain, candidate, h.timing())
}

// RespondPartnership settles or declines a pending offer. A decline
// forces the captain solo and doubles the wager.
func (h *HoleController) RespondPartnership(responder string, accept bool) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	effect, err := h.negotiator.RespondPartnership(responder, accept, h.timing())
	if err != nil {
		return err
	}
	if effect > 1 {
		h.ledger.ApplyConvention(wager.ConventionPartnershipDeclined, int(effect), responder)
	}
	return nil
}

// DeclareSolo puts the captain out alone and doubles the wager.
func (h *HoleController) DeclareSolo(captain string) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	effect, err := h.negotiator.DeclareSolo(captain, h.timing())
	if err != nil {
		return err
	}
	if effect > 1 {
		h.ledger.ApplyConvention(wager.ConventionOnYourOwn, int(effect), captain)
	}
	return nil
}

// RequestJoinSide is the aardvark asking for a side.
func (h *HoleController) RequestJoinSide(requester string, side team.SideID) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	return h.negotiator.RequestJoinSide(requester, side, h.timing())
}

// RespondJoinRequest accepts or tosses the aardvark. Tosses multiply the
// wager.
func (h *HoleController) RespondJoinRequest(responder string, accept bool) (tossed bool, err error) {
	if err := h.guardOpen(); err != nil {
		return false, err
	}
	join := h.negotiator.State().Join
	alreadyTossed := join != nil && join.Tossed
	effect, err := h.negotiator.RespondJoinRequest(responder, accept, h.timing())
	if err != nil {
		return false, err
	}
	if effect > 1 {
		conv := wager.ConventionAardvarkToss
		if alreadyTossed {
			conv = wager.ConventionAardvarkCounterToss
		}
		h.ledger.ApplyConvention(conv, int(effect), responder)
		return true, nil
	}
	return false, nil
}

// InvokeFloat spends the captain's once-a-round float.
func (h *HoleController) InvokeFloat(playerID string) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	if playerID != h.Captain() {
		return apperrors.New(apperrors.CodeWagerInvalidOffer, "only the captain may invoke the float")
	}
	return h.ledger.InvokeFloat(playerID)
}

// ToggleOption turns the automatic option double off.
func (h *HoleController) ToggleOption(playerID string) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	if playerID != h.Captain() {
		return apperrors.New(apperrors.CodeWagerOptionUnavailable, "only the captain may toggle the option")
	}
	return h.ledger.ToggleOptionOff(playerID)
}

// RecordShot counts a stroke and updates the ball position. It reports
// whether this shot closed the betting window.
func (h *HoleController) RecordShot(playerID string, distanceRemaining int) (closed bool, err error) {
	if err := h.guardOpen(); err != nil {
		return false, err
	}
	if h.scoresIn {
		return false, apperrors.New(apperrors.CodeScoreAlreadySubmitted, "scores are already in")
	}
	if !h.contains(playerID) {
		return false, apperrors.WithMetadata(apperrors.CodeRoundPlayerUnknown,
			"shot by unknown player",
			map[string]string{"PlayerID": playerID})
	}
	if distanceRemaining < 0 {
		return false, apperrors.New(apperrors.CodeWagerInvalidOffer, "distance remaining must not be negative")
	}
	h.strokes[playerID]++
	h.distance[playerID] = distanceRemaining

	// In regular play the betting window shuts when the last tee shot
	// lands; in the late phases doubling opens at that moment instead.
	if h.phs == phase.Regular && !h.ledger.Closed() && h.allTeedOff() {
		h.ledger.Close()
		return true, nil
	}
	return false, nil
}

// Strokes returns the strokes a player has taken on the hole.
func (h *HoleController) Strokes(playerID string) int { return h.strokes[playerID] }

// OfferDouble puts a double to the opposing side on behalf of playerID.
func (h *HoleController) OfferDouble(playerID string) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	state := h.negotiator.State()
	if !state.Final() {
		return apperrors.New(apperrors.CodeWagerInvalidOffer, "sides must be settled before doubling")
	}
	side, ok := state.SideOf(playerID)
	if !ok {
		return apperrors.WithMetadata(apperrors.CodeRoundPlayerUnknown,
			"double by unknown player",
			map[string]string{"PlayerID": playerID})
	}
	return h.ledger.OfferDouble(side, playerID, wager.OfferContext{
		SideIsSolo:       len(state.Members(side)) == 1,
		BehindScrimmage:  h.behindScrimmage(side),
		DoublingDeferred: h.doublingDeferred(),
	})
}

// RespondDouble answers a pending double on behalf of playerID. A decline
// ends the hole; the caller finalizes it with FinalizeByDecline.
func (h *HoleController) RespondDouble(playerID string, accept bool) (*wager.DeclineOutcome, error) {
	if err := h.guardOpen(); err != nil {
		return nil, err
	}
	state := h.negotiator.State()
	side, ok := state.SideOf(playerID)
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeRoundPlayerUnknown,
			"double response by unknown player",
			map[string]string{"PlayerID": playerID})
	}
	return h.ledger.RespondDouble(side, accept)
}

// FinalizeByDecline settles the hole for the side whose double was
// refused, at the wager that stood before the offer.
func (h *HoleController) FinalizeByDecline(outcome wager.DeclineOutcome,
	standings map[string]points.Quarters, order []string) (HoleResult, error) {

	if err := h.guardOpen(); err != nil {
		return HoleResult{}, err
	}
	state := h.negotiator.State()
	deltas, err := scoring.Exchange(state, outcome.WinningSide, outcome.Wager, standings, order)
	if err != nil {
		return HoleResult{}, err
	}
	h.ledger.SettleCarry(false)
	result := HoleResult{
		Hole:        h.number,
		Phase:       h.phs,
		Captain:     state.Captain,
		Teams:       state,
		Wager:       outcome.Wager,
		WinningSide: outcome.WinningSide,
		Deltas:      deltas,
		ByDecline:   true,
	}
	h.result = &result
	return result, nil
}

// SubmitScores settles the hole on gross scores.
func (h *HoleController) SubmitScores(gross map[string]int,
	standings map[string]points.Quarters, order []string) (HoleResult, error) {

	if err := h.guardOpen(); err != nil {
		return HoleResult{}, err
	}
	if h.scoresIn {
		return HoleResult{}, apperrors.New(apperrors.CodeScoreAlreadySubmitted, "scores are already in")
	}
	state := h.negotiator.State()
	if !state.Final() {
		return HoleResult{}, apperrors.New(apperrors.CodeScoreFormationIncomplete,
			"teams must be settled before scores go in")
	}
	if h.ledger.Pending() != nil {
		return HoleResult{}, apperrors.New(apperrors.CodeWagerDoublePending,
			"a double offer must be answered before scoring")
	}

	resolved, err := scoring.Resolve(scoring.Input{
		Teams:     state,
		Wager:     h.ledger.Current(),
		Gross:     gross,
		Allocated: h.allocated,
		Standings: standings,
		Order:     order,
	})
	if err != nil {
		return HoleResult{}, err
	}
	h.scoresIn = true
	h.ledger.SettleCarry(resolved.Halved)

	result := HoleResult{
		Hole:        h.number,
		Phase:       h.phs,
		Captain:     state.Captain,
		Teams:       state,
		Wager:       h.ledger.Current(),
		Halved:      resolved.Halved,
		WinningSide: resolved.WinningSide,
		Net:         resolved.Net,
		Deltas:      resolved.Deltas,
		CarriedOver: h.ledger.Carried(),
	}
	h.result = &result
	return result, nil
}

// CanReorder reports whether a position pick is still legal on the hole.
func (h *HoleController) CanReorder() error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	if h.phs != phase.Hoepfinger {
		return apperrors.WithMetadata(apperrors.CodePhaseOperationUnavailable,
			"position selection is a hoepfinger privilege",
			map[string]string{"Phase": phase.Hoepfinger.String()})
	}
	if len(h.strokes) > 0 || h.negotiator.State().Kind != team.KindPending {
		return apperrors.New(apperrors.CodeTeamInvalidTransition,
			"positions are picked before play begins")
	}
	return nil
}

// Reorder rebuilds the tee order after the Goat picks a position in
// Hoepfinger. Legal only before any stroke or formation action.
func (h *HoleController) Reorder(order []string) error {
	if err := h.CanReorder(); err != nil {
		return err
	}
	h.order = append([]string(nil), order...)
	h.negotiator = team.NewNegotiator(h.order, len(h.order) > 4)
	return nil
}

// SetJoesSpecial reopens the hole at the wager named by the Goat.
func (h *HoleController) SetJoesSpecial(value points.Quarters) error {
	if err := h.guardOpen(); err != nil {
		return err
	}
	if h.phs != phase.Hoepfinger {
		return apperrors.WithMetadata(apperrors.CodePhaseOperationUnavailable,
			"joe's special is a hoepfinger privilege",
			map[string]string{"Phase": phase.Hoepfinger.String()})
	}
	if len(h.strokes) > 0 || len(h.ledger.Log()) > 0 {
		return apperrors.New(apperrors.CodeWagerInvalidOffer,
			"the opening wager is named before play begins")
	}
	if err := h.ledger.ValidateJoesSpecial(value); err != nil {
		return err
	}
	return h.ledger.BeginHole(value)
}

// behindScrimmage reports whether a side's most advanced ball still
// trails the opponents' most advanced ball. Without positions recorded
// for both sides there is no line to enforce.
func (h *HoleController) behindScrimmage(side team.SideID) bool {
	state := h.negotiator.State()
	mine, mineOK := h.closestBall(state.Members(side))
	theirs, theirsOK := h.closestBall(state.Members(side.Other()))
	return mineOK && theirsOK && mine > theirs
}

func (h *HoleController) closestBall(members []string) (int, bool) {
	best := 0
	found := false
	for _, id := range members {
		d, ok := h.distance[id]
		if !ok {
			continue
		}
		if !found || d < best {
			best = d
			found = true
		}
	}
	return best, found
}

func (h *HoleController) contains(id string) bool {
	for _, pid := range h.order {
		if pid == id {
			return true
		}
	}
	return false
}
