package course

import (
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/goathill/wolfgoatpig/internal/errors"
)

func testCourse() Course {
	c := Course{Name: "Lake Chabot"}
	for i := 1; i <= 18; i++ {
		c.Holes = append(c.Holes, Hole{Number: i, Par: 4, StrokeIndex: i})
	}
	return c
}

func TestValidate(t *testing.T) {
	if err := testCourse().Validate(); err != nil {
		t.Fatalf("valid course: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Course)
	}{
		{"missing name", func(c *Course) { c.Name = "" }},
		{"short layout", func(c *Course) { c.Holes = c.Holes[:17] }},
		{"duplicate hole number", func(c *Course) { c.Holes[5].Number = 1 }},
		{"par out of range", func(c *Course) { c.Holes[2].Par = 7 }},
		{"duplicate stroke index", func(c *Course) { c.Holes[8].StrokeIndex = 1 }},
		{"stroke index out of range", func(c *Course) { c.Holes[8].StrokeIndex = 19 }},
	}
	for _, tc := range cases {
		c := testCourse()
		tc.mutate(&c)
		if err := c.Validate(); !apperrors.IsCode(err, apperrors.CodeRoundCourseInvalid) {
			t.Fatalf("%s: got %v, want course invalid", tc.name, err)
		}
	}
}

func TestHoleLookup(t *testing.T) {
	c := testCourse()
	h, ok := c.Hole(7)
	if !ok || h.Number != 7 {
		t.Fatalf("Hole(7) = %+v, %t", h, ok)
	}
	if _, ok := c.Hole(19); ok {
		t.Fatal("Hole(19) should not exist")
	}
	ranks := c.Ranks()
	if len(ranks) != 18 || ranks[3] != 3 {
		t.Fatalf("ranks = %v", ranks)
	}
}

func TestLoadYAML(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name: Lake Chabot\nholes:\n")
	for i := 1; i <= 18; i++ {
		sb.WriteString("  - number: ")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("\n    par: 4\n    stroke_index: ")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("\n")
	}

	c, err := Load(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Name != "Lake Chabot" || len(c.Holes) != 18 {
		t.Fatalf("course = %+v", c)
	}

	if _, err := Load(strings.NewReader("name: [broken")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Load(strings.NewReader("name: Empty\nholes: []\n")); !apperrors.IsCode(err, apperrors.CodeRoundCourseInvalid) {
		t.Fatalf("invalid layout: got %v", err)
	}
}
