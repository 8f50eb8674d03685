package points

import "testing"

func TestQuartersString(t *testing.T) {
	cases := []struct {
		amount Quarters
		want   string
	}{
		{3, "+3"},
		{0, "0"},
		{-2, "-2"},
	}
	for _, tc := range cases {
		if got := tc.amount.String(); got != tc.want {
			t.Fatalf("Quarters(%d).String() = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestSum(t *testing.T) {
	deltas := map[string]Quarters{"a": 3, "b": -1, "c": -1, "d": -1}
	if got := Sum(deltas); got != 0 {
		t.Fatalf("Sum = %d, want 0", got)
	}
	if got := Sum(nil); got != 0 {
		t.Fatalf("Sum(nil) = %d, want 0", got)
	}
}

func TestIsMultipleOf(t *testing.T) {
	cases := []struct {
		amount Quarters
		base   Quarters
		want   bool
	}{
		{4, 2, true},
		{2, 2, true},
		{3, 2, false},
		{0, 2, false},
		{-4, 2, false},
		{4, 0, false},
	}
	for _, tc := range cases {
		if got := tc.amount.IsMultipleOf(tc.base); got != tc.want {
			t.Fatalf("Quarters(%d).IsMultipleOf(%d) = %t, want %t", tc.amount, tc.base, got, tc.want)
		}
	}
}
