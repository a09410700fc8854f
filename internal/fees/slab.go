package fees

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Slab maps a contiguous amount range to a fixed fee. Bounds are inclusive
// on both edges; a nil To means the slab is unbounded above.
type Slab struct {
	From decimal.Decimal
	To   *decimal.Decimal
	Fee  decimal.Decimal
}

// Unbounded reports whether the slab has no upper bound.
func (s Slab) Unbounded() bool {
	return s.To == nil
}

// Contains reports whether amount falls within the slab's range.
func (s Slab) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(s.From) {
		return false
	}
	return s.To == nil || amount.LessThanOrEqual(*s.To)
}

// Schedule is an ordered partition of an amount range into fee slabs,
// owned by a single charge definition.
type Schedule struct {
	Currency string
	Slabs    []Slab
}

// NoMatchingSlabError reports an amount no slab covers. This is a schedule
// configuration failure, never a user input error.
type NoMatchingSlabError struct {
	Amount decimal.Decimal
}

func (e *NoMatchingSlabError) Error() string {
	return fmt.Sprintf("no slab matches amount %s; fee schedule is misconfigured", e.Amount)
}

// Resolve returns the fee of the first slab, in ascending From order, whose
// range contains amount.
func (sch Schedule) Resolve(amount decimal.Decimal) (decimal.Decimal, error) {
	slabs := make([]Slab, len(sch.Slabs))
	copy(slabs, sch.Slabs)
	sort.Slice(slabs, func(i, j int) bool {
		return slabs[i].From.LessThan(slabs[j].From)
	})

	for _, slab := range slabs {
		if slab.Contains(amount) {
			return slab.Fee, nil
		}
	}
	return decimal.Decimal{}, &NoMatchingSlabError{Amount: amount}
}
