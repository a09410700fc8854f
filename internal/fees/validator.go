package fees

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/savings-core/pkg/money"
)

// Validation error codes for schedule and split edits. Codes are stable so
// callers can aggregate them into a multi-error API response.
const (
	CodeInvertedRange   = "slab.range.inverted"
	CodeOverlapDetected = "slab.range.overlap"
	CodeGapDetected     = "slab.range.gap"
	CodeUnboundedNotTop = "slab.range.unbounded.not.last"
	CodeSplitOver100    = "split.percentage.exceeds.hundred"
)

// FieldError attributes a validation failure to a single field.
type FieldError struct {
	Field   string
	Code    string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// ValidationErrors collects every failure of one edit rather than stopping
// at the first.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// OrNil returns the collection as an error, or nil when empty.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// samePeriod reports whether two slabs cover the identical range. An exact
// match is a duplicate resave, not a conflict.
func samePeriod(a, b Slab) bool {
	if !a.From.Equal(b.From) {
		return false
	}
	if a.To == nil || b.To == nil {
		return a.To == nil && b.To == nil
	}
	return a.To.Equal(*b.To)
}

// overlaps reports whether two slab ranges intersect. Ranges overlap unless
// one's upper bound is strictly below the other's lower bound; a missing
// upper bound counts as +infinity.
func overlaps(a, b Slab) bool {
	if a.To != nil && a.To.LessThan(b.From) {
		return false
	}
	if b.To != nil && b.To.LessThan(a.From) {
		return false
	}
	return true
}

// ValidateSlab checks a candidate slab against its own bounds and the other
// slabs of the schedule it is being saved into.
func ValidateSlab(candidate Slab, existing []Slab) ValidationErrors {
	var errs ValidationErrors

	if candidate.To != nil && candidate.From.GreaterThan(*candidate.To) {
		errs = append(errs, FieldError{
			Field:   "fromAmount",
			Code:    CodeInvertedRange,
			Message: fmt.Sprintf("lower bound %s exceeds upper bound %s", candidate.From, candidate.To),
		})
		return errs
	}

	for _, other := range existing {
		if samePeriod(candidate, other) {
			continue
		}
		if overlaps(candidate, other) {
			errs = append(errs, FieldError{
				Field:   "fromAmount",
				Code:    CodeOverlapDetected,
				Message: fmt.Sprintf("range starting at %s overlaps slab starting at %s", candidate.From, other.From),
			})
		}
	}
	return errs
}

// HasGap reports whether next does not start exactly one minor unit above
// prev's upper bound. Identical periods never gap.
func HasGap(prev, next Slab, currency string) bool {
	if samePeriod(prev, next) {
		return false
	}
	if prev.To == nil {
		return false
	}
	return !next.From.Equal(prev.To.Add(money.SmallestUnit(currency)))
}

// ValidateSchedule validates a whole schedule: per-slab bounds, pairwise
// overlaps, contiguity, and at most one unbounded slab in last position.
func ValidateSchedule(sch Schedule) ValidationErrors {
	var errs ValidationErrors

	slabs := make([]Slab, len(sch.Slabs))
	copy(slabs, sch.Slabs)
	sort.Slice(slabs, func(i, j int) bool {
		return slabs[i].From.LessThan(slabs[j].From)
	})

	for i, slab := range slabs {
		errs = append(errs, ValidateSlab(slab, without(slabs, i))...)

		if slab.Unbounded() && i != len(slabs)-1 && !samePeriod(slab, slabs[i+1]) {
			errs = append(errs, FieldError{
				Field:   "toAmount",
				Code:    CodeUnboundedNotTop,
				Message: fmt.Sprintf("unbounded slab starting at %s must be the last slab", slab.From),
			})
		}

		if i > 0 && HasGap(slabs[i-1], slab, sch.Currency) {
			errs = append(errs, FieldError{
				Field:   "fromAmount",
				Code:    CodeGapDetected,
				Message: fmt.Sprintf("gap before slab starting at %s", slab.From),
			})
		}
	}
	return errs
}

func without(slabs []Slab, i int) []Slab {
	rest := make([]Slab, 0, len(slabs)-1)
	rest = append(rest, slabs[:i]...)
	return append(rest, slabs[i+1:]...)
}

// ValidateSplits checks that the active percentage shares of one charge sum
// to at most 100.
func ValidateSplits(splits []Split) ValidationErrors {
	var errs ValidationErrors

	total := decimal.Zero
	for _, sp := range splits {
		if sp.Active && sp.Kind == SplitPercentage {
			total = total.Add(sp.Value)
		}
	}
	if total.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, FieldError{
			Field:   "value",
			Code:    CodeSplitOver100,
			Message: fmt.Sprintf("active percentage splits sum to %s, exceeding 100", total),
		})
	}
	return errs
}
