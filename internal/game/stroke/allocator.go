// Package stroke computes per-player, per-hole handicap strokes.
//
// The game plays half-stroke handicaps, so all stroke math is carried in
// integer half-stroke units. A full stroke is 2, a half stroke is 1.
package stroke

import (
	"fmt"
	"sort"
)

// Half is a stroke amount in half-stroke units.
type Half int

const (
	// HalfStroke is one half stroke.
	HalfStroke Half = 1
	// FullStroke is one full stroke.
	FullStroke Half = 2
)

// Holes is the number of holes in a round.
const Holes = 18

// Strokes are measured against the low man in the field, so the banded
// allocation below works on net handicaps starting at zero.
const (
	halfBandMax = 6  // net handicaps up to 6 play half strokes only
	fullBandMax = 18 // net handicaps up to 18 mix full and half strokes
	easyHalves  = 6  // easiest allocated holes that stay at a half stroke
)

// Table maps hole number (1-based) to allocated half strokes for one player.
type Table [Holes + 1]Half

// Total returns the table's total allocation in half-stroke units.
func (t Table) Total() Half {
	var sum Half
	for _, h := range t {
		sum += h
	}
	return sum
}

// NetHandicap returns a player's handicap relative to the field minimum,
// both expressed in half-stroke units.
func NetHandicap(raw, fieldMin Half) Half {
	net := raw - fieldMin
	if net < 0 {
		return 0
	}
	return net
}

// Allocate distributes a net handicap (half-stroke units) across holes by
// difficulty rank. ranks maps hole number (1-based) to stroke index, where
// rank 1 is the hardest hole.
//
// Bands, on whole net handicap points:
//   - up to 6: each allocated hole takes a half stroke, hardest first.
//   - 7 through 18: the allocated holes are the hardest net-handicap-many;
//     the easiest six of those take a half stroke, the rest a full stroke.
//   - above 18: every hole is allocated, the hardest twelve at a full
//     stroke and the easiest six at a half; the excess beyond 18 lands on
//     the hardest holes first, one full stroke per whole point with a
//     trailing half point adding a half stroke.
func Allocate(net Half, ranks map[int]int) (Table, error) {
	var table Table
	if net < 0 {
		return table, fmt.Errorf("net handicap must not be negative, got %d", net)
	}
	byRank, err := holesByRank(ranks)
	if err != nil {
		return table, err
	}

	// Whole handicap points and a possible trailing half point.
	whole := int(net) / 2
	half := int(net)%2 == 1

	switch {
	case whole <= halfBandMax:
		allocated := whole
		if half {
			allocated++
		}
		if allocated > Holes {
			allocated = Holes
		}
		for i := 0; i < allocated; i++ {
			table[byRank[i]] = HalfStroke
		}
	case whole <= fullBandMax:
		for i := 0; i < whole; i++ {
			if i >= whole-easyHalves {
				table[byRank[i]] = HalfStroke
			} else {
				table[byRank[i]] = FullStroke
			}
		}
		if half {
			table[byRank[0]] += HalfStroke
		}
	default:
		for i := 0; i < Holes; i++ {
			if i >= Holes-easyHalves {
				table[byRank[i]] = HalfStroke
			} else {
				table[byRank[i]] = FullStroke
			}
		}
		extra := whole - fullBandMax
		for i := 0; i < extra; i++ {
			table[byRank[i%Holes]] += FullStroke
		}
		if half {
			table[byRank[extra%Holes]] += HalfStroke
		}
	}
	return table, nil
}

// holesByRank orders hole numbers hardest first and validates that ranks
// form a permutation of 1..18.
func holesByRank(ranks map[int]int) ([]int, error) {
	if len(ranks) != Holes {
		return nil, fmt.Errorf("expected %d hole ranks, got %d", Holes, len(ranks))
	}
	seen := make(map[int]bool, Holes)
	holes := make([]int, 0, Holes)
	for hole, rank := range ranks {
		if hole < 1 || hole > Holes {
			return nil, fmt.Errorf("hole number %d out of range", hole)
		}
		if rank < 1 || rank > Holes {
			return nil, fmt.Errorf("stroke index %d out of range on hole %d", rank, hole)
		}
		if seen[rank] {
			return nil, fmt.Errorf("duplicate stroke index %d", rank)
		}
		seen[rank] = true
		holes = append(holes, hole)
	}
	sort.Slice(holes, func(i, j int) bool {
		return ranks[holes[i]] < ranks[holes[j]]
	})
	return holes, nil
}
