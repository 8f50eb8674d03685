// Package points provides exact integer arithmetic for the quarters
// exchanged during a round. All point movement is expressed in whole
// quarters so that per-hole totals can be checked for an exact zero sum
// without floating point drift.
package points

import "fmt"

// Quarters is a signed amount of quarters.
type Quarters int

// String renders the amount with an explicit sign for standings output.
func (q Quarters) String() string {
	if q > 0 {
		return fmt.Sprintf("+%d", int(q))
	}
	return fmt.Sprintf("%d", int(q))
}

// Sum returns the total of a delta set.
func Sum(deltas map[string]Quarters) Quarters {
	var total Quarters
	for _, d := range deltas {
		total += d
	}
	return total
}

// IsMultipleOf reports whether q is a positive integer multiple of base.
func (q Quarters) IsMultipleOf(base Quarters) bool {
	if base <= 0 || q <= 0 {
		return false
	}
	return q%base == 0
}
