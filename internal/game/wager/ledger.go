// Package wager tracks the stake of a hole: the base bet, stacked
// multiplier conventions, the betting window, and the carry-over from
// halved holes.
package wager

import (
	"strconv"
	"strings"

	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/team"
)

// Convention names a wager multiplier in the log.
type Convention string

const (
	// ConventionDouble is an accepted double offer.
	ConventionDouble Convention = "double"
	// ConventionOnYourOwn is the captain going solo.
	ConventionOnYourOwn Convention = "on_your_own"
	// ConventionPartnershipDeclined is a turned-down partnership.
	ConventionPartnershipDeclined Convention = "partnership_declined"
	// ConventionFloat is the captain's once-a-round float.
	ConventionFloat Convention = "float"
	// ConventionOption is the automatic double when the captain is the Goat.
	ConventionOption Convention = "option"
	// ConventionAardvarkToss is an aardvark thrown back.
	ConventionAardvarkToss Convention = "aardvark_toss"
	// ConventionAardvarkCounterToss is a tossed aardvark thrown back again.
	ConventionAardvarkCounterToss Convention = "aardvark_counter_toss"
	// ConventionVinnie is the forced opening double of the Vinnie Variation.
	ConventionVinnie Convention = "vinnie_variation"
)

// Applied is one entry of the hole's multiplier log.
type Applied struct {
	Convention Convention
	Factor     int
	ActorID    string
}

// DoubleOffer is a double waiting on the opposing side.
type DoubleOffer struct {
	Side     team.SideID
	PlayerID string
	// Prior is the wager the offering side wins if the offer is declined.
	Prior points.Quarters
}

// DeclineOutcome reports a hole ended by a declined double.
type DeclineOutcome struct {
	WinningSide team.SideID
	Wager       points.Quarters
}

// OfferContext carries the hole observations that gate a double offer.
// The hole controller owns shot and side tracking and supplies these.
type OfferContext struct {
	// SideIsSolo is true when the offering side is a lone player.
	SideIsSolo bool
	// BehindScrimmage is true when the offering side's furthest ball has
	// not reached the furthest-advanced opponent ball.
	BehindScrimmage bool
	// DoublingDeferred is true while a phase rule postpones doubling.
	DoublingDeferred bool
}

// Ledger tracks wager state for a round. Per-hole fields reset on
// BeginHole; the carry-over and once-per-round privileges span holes.
type Ledger struct {
	base    points.Quarters
	current points.Quarters
	log     []Applied
	closed  bool
	pending *DoubleOffer

	carried   points.Quarters
	floatUsed map[string]bool
	optionOn  bool
}

// NewLedger creates a round ledger with the given unit stake.
func NewLedger(base points.Quarters) (*Ledger, error) {
	if base <= 0 {
		return nil, apperrors.New(apperrors.CodeWagerInvalidOffer, "base wager must be positive")
	}
	return &Ledger{base: base, floatUsed: map[string]bool{}}, nil
}

// Base returns the round's unit stake.
func (l *Ledger) Base() points.Quarters { return l.base }

// Current returns the wager at stake on the open hole.
func (l *Ledger) Current() points.Quarters { return l.current }

// Carried returns the unresolved amount rolling forward from halved holes.
func (l *Ledger) Carried() points.Quarters { return l.carried }

// Closed reports whether multi-player sides may still double.
func (l *Ledger) Closed() bool { return l.closed }

// Pending returns the double offer on the table, if any.
func (l *Ledger) Pending() *DoubleOffer {
	if l.pending == nil {
		return nil
	}
	offer := *l.pending
	return &offer
}

// Log returns the hole's multiplier log in application order.
func (l *Ledger) Log() []Applied {
	return append([]Applied(nil), l.log...)
}

// FloatUsed reports whether a player has spent their float this round.
func (l *Ledger) FloatUsed(id string) bool { return l.floatUsed[id] }

// OptionOn reports whether the option double is active on this hole.
func (l *Ledger) OptionOn() bool { return l.optionOn }

// Opening returns the default opening wager for the next hole: the base
// stake plus whatever is carried from halved holes.
func (l *Ledger) Opening() points.Quarters {
	return l.base + l.carried
}

// BeginHole opens a hole at the given wager and clears per-hole state.
// The opening value must be a positive multiple of the base stake.
func (l *Ledger) BeginHole(opening points.Quarters) error {
	if !opening.IsMultipleOf(l.base) {
		return apperrors.New(apperrors.CodeInvariantViolation, "opening wager is not a multiple of the base stake")
	}
	l.current = opening
	l.log = nil
	l.closed = false
	l.pending = nil
	l.optionOn = false
	return nil
}

// ApplyConvention multiplies the current wager. Used by the hole
// controller for formation-driven multipliers (solo, declines, tosses)
// whose legality the team negotiator has already checked.
func (l *Ledger) ApplyConvention(conv Convention, factor int, actorID string) {
	if factor <= 1 {
		return
	}
	l.current *= points.Quarters(factor)
	l.log = append(l.log, Applied{Convention: conv, Factor: factor, ActorID: actorID})
}

// InvokeFloat doubles the hole's wager, once per player per round.
func (l *Ledger) InvokeFloat(captainID string) error {
	if l.closed {
		return apperrors.New(apperrors.CodeWagerClosed, "the float must be invoked before betting closes")
	}
	if l.floatUsed[captainID] {
		return apperrors.WithMetadata(apperrors.CodeWagerPrivilegeExhausted,
			"float already used this round",
			map[string]string{"PlayerID": captainID, "Privilege": "float"})
	}
	l.floatUsed[captainID] = true
	l.ApplyConvention(ConventionFloat, 2, captainID)
	return nil
}

// ApplyOption doubles the wager because the captain is the Goat.
func (l *Ledger) ApplyOption(captainID string) {
	l.optionOn = true
	l.ApplyConvention(ConventionOption, 2, captainID)
}

// ToggleOptionOff reverses the option double at the captain's choice.
func (l *Ledger) ToggleOptionOff(captainID string) error {
	if !l.optionOn {
		return apperrors.New(apperrors.CodeWagerOptionUnavailable, "the option is not active")
	}
	if l.closed || l.pending != nil {
		return apperrors.New(apperrors.CodeWagerClosed, "the option is locked once betting closes")
	}
	for i := len(l.log) - 1; i >= 0; i-- {
		if l.log[i].Convention == ConventionOption {
			l.current /= points.Quarters(l.log[i].Factor)
			l.log = append(l.log[:i], l.log[i+1:]...)
			break
		}
	}
	l.optionOn = false
	return nil
}

// OfferDouble puts a double on the table for the opposing side.
func (l *Ledger) OfferDouble(side team.SideID, playerID string, octx OfferContext) error {
	if l.pending != nil {
		return apperrors.New(apperrors.CodeWagerDoublePending, "a double offer is already pending")
	}
	// A lone player keeps the right to double up to scoring; everyone
	// else is cut off once tee shots are complete.
	if l.closed && !octx.SideIsSolo {
		return apperrors.New(apperrors.CodeWagerClosed, "betting is closed for this hole")
	}
	if octx.DoublingDeferred {
		return apperrors.New(apperrors.CodeWagerClosed, "doubling is deferred until all tee shots are in")
	}
	if octx.BehindScrimmage {
		return apperrors.New(apperrors.CodeWagerPositionalRestriction,
			"cannot double from behind the line of scrimmage")
	}
	l.pending = &DoubleOffer{Side: side, PlayerID: playerID, Prior: l.current}
	return nil
}

// RespondDouble resolves a pending double. Accepting doubles the wager;
// declining ends the hole with the offering side winning at the prior
// wager, reported through the DeclineOutcome.
func (l *Ledger) RespondDouble(side team.SideID, accept bool) (*DeclineOutcome, error) {
	if l.pending == nil {
		return nil, apperrors.New(apperrors.CodeWagerNoPendingDouble, "no double offer is pending")
	}
	if side == l.pending.Side {
		return nil, apperrors.New(apperrors.CodeWagerInvalidOffer, "the offering side cannot answer its own double")
	}
	offer := *l.pending
	l.pending = nil
	if accept {
		l.ApplyConvention(ConventionDouble, 2, offer.PlayerID)
		return nil, nil
	}
	return &DeclineOutcome{WinningSide: offer.Side, Wager: offer.Prior}, nil
}

// Close bars further doubles from multi-player sides. Cleared only by
// advancing to the next hole.
func (l *Ledger) Close() {
	l.closed = true
}

// SettleCarry records the hole's outcome against the carry-over: a halved
// hole rolls its full unresolved wager forward, a decisive one clears it.
func (l *Ledger) SettleCarry(halved bool) {
	if halved {
		l.carried = l.current
	} else {
		l.carried = 0
	}
}

// JoesSpecialValues lists the opening wagers the Goat may name in
// Hoepfinger: two, four or eight times the base, or the natural carried
// opening when it is larger than all of those.
func (l *Ledger) JoesSpecialValues() []points.Quarters {
	values := []points.Quarters{2 * l.base, 4 * l.base, 8 * l.base}
	if opening := l.Opening(); opening > values[len(values)-1] {
		values = append(values, opening)
	}
	return values
}

// ValidateJoesSpecial checks a named opening against the allowed values.
func (l *Ledger) ValidateJoesSpecial(value points.Quarters) error {
	allowed := l.JoesSpecialValues()
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	labels := make([]string, len(allowed))
	for i, v := range allowed {
		labels[i] = strconv.Itoa(int(v))
	}
	return apperrors.WithMetadata(apperrors.CodeWagerJoesSpecialValue,
		"joe's special value not allowed",
		map[string]string{"Allowed": strings.Join(labels, ", ")})
}

// CheckInvariant verifies the hole wager is a positive multiple of the
// base stake.
func (l *Ledger) CheckInvariant() error {
	if !l.current.IsMultipleOf(l.base) {
		return apperrors.WithMetadata(apperrors.CodeInvariantViolation,
			"current wager is not a positive multiple of the base stake",
			map[string]string{
				"Current": strconv.Itoa(int(l.current)),
				"Base":    strconv.Itoa(int(l.base)),
			})
	}
	return nil
}
