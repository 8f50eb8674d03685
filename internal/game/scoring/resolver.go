// Package scoring settles a hole: net scores, the winning side, and the
// signed quarter exchange, including the Karl Marx split for unequal
// sides. Every resolution nets to exactly zero across the field or the
// resolver reports an invariant violation.
package scoring

import (
	"sort"
	"strconv"

	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
	"github.com/goathill/wolfgoatpig/internal/game/points"
	"github.com/goathill/wolfgoatpig/internal/game/stroke"
	"github.com/goathill/wolfgoatpig/internal/game/team"
)

// Input is everything needed to settle a hole on scores.
type Input struct {
	Teams team.State
	Wager points.Quarters
	// Gross maps player id to gross strokes for the hole.
	Gross map[string]int
	// Allocated maps player id to handicap half-strokes for the hole.
	Allocated map[string]stroke.Half
	// Standings are cumulative totals entering the hole, for Karl Marx.
	Standings map[string]points.Quarters
	// Order is the rotation order, the Karl Marx tie-break.
	Order []string
}

// Result is a settled hole.
type Result struct {
	Halved      bool
	WinningSide team.SideID
	// Net maps player id to net score in half-stroke units.
	Net map[string]stroke.Half
	// Best maps side to its representative (best-ball) net score.
	Best map[team.SideID]stroke.Half
	// Deltas is the signed quarter exchange, summing to exactly zero.
	Deltas map[string]points.Quarters
}

// Resolve computes net scores, picks the winning side and exchanges
// quarters.
func Resolve(in Input) (Result, error) {
	if !in.Teams.Final() {
		return Result{}, apperrors.New(apperrors.CodeScoreFormationIncomplete,
			"teams are not settled")
	}

	sideA, sideB := in.Teams.Sides()
	net := make(map[string]stroke.Half, len(sideA)+len(sideB))
	for _, id := range append(append([]string(nil), sideA...), sideB...) {
		gross, ok := in.Gross[id]
		if !ok {
			return Result{}, apperrors.WithMetadata(apperrors.CodeScoreMissingPlayer,
				"missing gross score",
				map[string]string{"PlayerID": id})
		}
		if gross < 1 {
			return Result{}, apperrors.WithMetadata(apperrors.CodeScoreUnknownPlayer,
				"gross score must be at least 1",
				map[string]string{"PlayerID": id})
		}
		net[id] = stroke.Half(gross*2) - in.Allocated[id]
	}
	for id := range in.Gross {
		if _, ok := net[id]; !ok {
			return Result{}, apperrors.WithMetadata(apperrors.CodeScoreUnknownPlayer,
				"score for player not on a side",
				map[string]string{"PlayerID": id})
		}
	}

	best := map[team.SideID]stroke.Half{
		team.SideA: bestBall(sideA, net),
		team.SideB: bestBall(sideB, net),
	}

	result := Result{Net: net, Best: best}
	switch {
	case best[team.SideA] == best[team.SideB]:
		result.Halved = true
		result.Deltas = map[string]points.Quarters{}
		return result, nil
	case best[team.SideA] < best[team.SideB]:
		result.WinningSide = team.SideA
	default:
		result.WinningSide = team.SideB
	}

	deltas, err := Exchange(in.Teams, result.WinningSide, in.Wager, in.Standings, in.Order)
	if err != nil {
		return Result{}, err
	}
	result.Deltas = deltas
	return result, nil
}

// bestBall returns the lowest net score among a side's members.
func bestBall(members []string, net map[string]stroke.Half) stroke.Half {
	best := net[members[0]]
	for _, id := range members[1:] {
		if net[id] < best {
			best = net[id]
		}
	}
	return best
}

// Exchange computes the signed quarter deltas for a decisive hole. It is
// also used directly when a declined double ends a hole without scores.
//
// Payout shapes:
//   - equal sides: every winner gains the wager, every loser pays it.
//   - solo: the lone player settles the wager against each opponent
//     individually.
//   - unequal sides: the smaller side's members each settle the full
//     wager; the larger side splits the matching total, with any
//     indivisible remainder assigned by the Karl Marx rule.
func Exchange(teams team.State, winning team.SideID, wager points.Quarters,
	standings map[string]points.Quarters, order []string) (map[string]points.Quarters, error) {

	if wager <= 0 {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, "wager must be positive at settlement")
	}
	winners := teams.Members(winning)
	losers := teams.Members(winning.Other())
	if len(winners) == 0 || len(losers) == 0 {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, "a side resolved with no members")
	}

	deltas := make(map[string]points.Quarters, len(winners)+len(losers))

	switch {
	case teams.IsSolo():
		// The lone player settles with each opponent one on one.
		if len(winners) == 1 {
			deltas[winners[0]] = wager * points.Quarters(len(losers))
			for _, id := range losers {
				deltas[id] = -wager
			}
		} else {
			deltas[losers[0]] = -wager * points.Quarters(len(winners))
			for _, id := range winners {
				deltas[id] = wager
			}
		}

	case len(winners) == len(losers):
		for _, id := range winners {
			deltas[id] = wager
		}
		for _, id := range losers {
			deltas[id] = -wager
		}

	default:
		small, large := winners, losers
		largeWinning := false
		if len(losers) < len(winners) {
			small, large = losers, winners
			largeWinning = true
		}
		total := wager * points.Quarters(len(small))
		for _, id := range small {
			if largeWinning {
				deltas[id] = -wager
			} else {
				deltas[id] = wager
			}
		}
		for id, q := range karlMarxSplit(large, total, largeWinning, standings, order) {
			deltas[id] = q
		}
	}

	if sum := points.Sum(deltas); sum != 0 {
		return nil, apperrors.WithMetadata(apperrors.CodeInvariantViolation,
			"hole deltas do not sum to zero",
			map[string]string{"Sum": strconv.Itoa(int(sum))})
	}
	return deltas, nil
}

// karlMarxSplit divides a side's aggregate obligation as evenly as
// possible. From each according to his ability: when the side is losing,
// the extra quarters fall on the players furthest ahead; when winning,
// they go to the players furthest down. Ties break by rotation order.
func karlMarxSplit(side []string, total points.Quarters, winning bool,
	standings map[string]points.Quarters, order []string) map[string]points.Quarters {

	position := make(map[string]int, len(order))
	for i, id := range order {
		position[id] = i
	}

	members := append([]string(nil), side...)
	sort.SliceStable(members, func(i, j int) bool {
		si, sj := standings[members[i]], standings[members[j]]
		if si != sj {
			if winning {
				// Furthest down receives first.
				return si < sj
			}
			// Furthest ahead pays first.
			return si > sj
		}
		return position[members[i]] < position[members[j]]
	})

	n := points.Quarters(len(members))
	share := total / n
	remainder := int(total % n)

	deltas := make(map[string]points.Quarters, len(members))
	for i, id := range members {
		amount := share
		if i < remainder {
			amount++
		}
		if winning {
			deltas[id] = amount
		} else {
			deltas[id] = -amount
		}
	}
	return deltas
}
