// Package course holds immutable course reference data: hole numbers,
// pars and stroke difficulty indexes. Courses are supplied externally,
// typically from YAML files.
package course

import (
	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
	"github.com/goathill/wolfgoatpig/internal/game/stroke"
)

// Hole is one hole's reference data.
type Hole struct {
	Number int `yaml:"number"`
	Par    int `yaml:"par"`
	// StrokeIndex ranks difficulty, 1 being the hardest hole.
	StrokeIndex int `yaml:"stroke_index"`
}

// Course is a full 18-hole layout.
type Course struct {
	Name  string `yaml:"name"`
	Holes []Hole `yaml:"holes"`
}

// Validate checks the layout is playable: 18 holes numbered 1..18, sane
// pars, and stroke indexes forming a permutation of 1..18.
func (c Course) Validate() error {
	invalid := func(reason string) error {
		return apperrors.WithMetadata(apperrors.CodeRoundCourseInvalid,
			"invalid course: "+reason,
			map[string]string{"Reason": reason})
	}
	if c.Name == "" {
		return invalid("name is required")
	}
	if len(c.Holes) != stroke.Holes {
		return invalid("a course needs exactly 18 holes")
	}
	seenNumber := make(map[int]bool, stroke.Holes)
	seenIndex := make(map[int]bool, stroke.Holes)
	for _, h := range c.Holes {
		if h.Number < 1 || h.Number > stroke.Holes || seenNumber[h.Number] {
			return invalid("hole numbers must cover 1 through 18")
		}
		seenNumber[h.Number] = true
		if h.Par < 3 || h.Par > 6 {
			return invalid("hole pars must be between 3 and 6")
		}
		if h.StrokeIndex < 1 || h.StrokeIndex > stroke.Holes || seenIndex[h.StrokeIndex] {
			return invalid("stroke indexes must form a permutation of 1 through 18")
		}
		seenIndex[h.StrokeIndex] = true
	}
	return nil
}

// Hole returns the reference data for a hole number.
func (c Course) Hole(number int) (Hole, bool) {
	for _, h := range c.Holes {
		if h.Number == number {
			return h, true
		}
	}
	return Hole{}, false
}

// Ranks maps hole number to stroke index for the stroke allocator.
func (c Course) Ranks() map[int]int {
	ranks := make(map[int]int, len(c.Holes))
	for _, h := range c.Holes {
		ranks[h.Number] = h.StrokeIndex
	}
	return ranks
}
