package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(errs ValidationErrors) []string {
	var out []string
	for _, fe := range errs {
		out = append(out, fe.Code)
	}
	return out
}

func TestValidateSlabInvertedRange(t *testing.T) {
	errs := ValidateSlab(Slab{From: dec("200"), To: decPtr("100")}, nil)

	require.Len(t, errs, 1)
	assert.Equal(t, CodeInvertedRange, errs[0].Code)
	assert.Equal(t, "fromAmount", errs[0].Field)
}

func TestValidateSlabOverlap(t *testing.T) {
	existing := []Slab{
		{From: dec("0"), To: decPtr("100"), Fee: dec("5")},
		{From: dec("100.01"), To: decPtr("500"), Fee: dec("8")},
	}

	testCases := []struct {
		name      string
		candidate Slab
		overlaps  bool
	}{
		{"inside first slab", Slab{From: dec("50"), To: decPtr("80")}, true},
		{"straddles boundary", Slab{From: dec("90"), To: decPtr("150")}, true},
		{"touches upper bound", Slab{From: dec("100"), To: decPtr("120")}, true},
		{"unbounded over everything", Slab{From: dec("0"), To: nil}, true},
		{"above all slabs", Slab{From: dec("500.01"), To: nil}, false},
		{"unbounded above all", Slab{From: dec("1000"), To: nil}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := ValidateSlab(tc.candidate, existing)
			if tc.overlaps {
				require.NotEmpty(t, errs)
				assert.Contains(t, codes(errs), CodeOverlapDetected)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateSlabIdenticalBoundsIsResave(t *testing.T) {
	existing := []Slab{
		{From: dec("0"), To: decPtr("100"), Fee: dec("5")},
		{From: dec("100.01"), To: nil, Fee: dec("10")},
	}

	// Resubmitting an unchanged tier must not conflict with itself.
	assert.Empty(t, ValidateSlab(Slab{From: dec("0"), To: decPtr("100"), Fee: dec("6")}, existing))
	assert.Empty(t, ValidateSlab(Slab{From: dec("100.01"), To: nil, Fee: dec("12")}, existing))
}

func TestHasGap(t *testing.T) {
	testCases := []struct {
		name     string
		prev     Slab
		next     Slab
		currency string
		gap      bool
	}{
		{
			name:     "contiguous EUR slabs",
			prev:     Slab{From: dec("0"), To: decPtr("100")},
			next:     Slab{From: dec("100.01"), To: decPtr("500")},
			currency: "EUR",
			gap:      false,
		},
		{
			name:     "one-cent hole",
			prev:     Slab{From: dec("0"), To: decPtr("100")},
			next:     Slab{From: dec("100.02"), To: decPtr("500")},
			currency: "EUR",
			gap:      true,
		},
		{
			name:     "contiguous whole-unit currency",
			prev:     Slab{From: dec("0"), To: decPtr("100")},
			next:     Slab{From: dec("101"), To: nil},
			currency: "JPY",
			gap:      false,
		},
		{
			name:     "same period never gaps",
			prev:     Slab{From: dec("0"), To: decPtr("100")},
			next:     Slab{From: dec("0"), To: decPtr("100")},
			currency: "EUR",
			gap:      false,
		},
		{
			name:     "unbounded prev never gaps",
			prev:     Slab{From: dec("0"), To: nil},
			next:     Slab{From: dec("500"), To: nil},
			currency: "EUR",
			gap:      false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.gap, HasGap(tc.prev, tc.next, tc.currency))
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	valid := Schedule{
		Currency: "EUR",
		Slabs: []Slab{
			{From: dec("0"), To: decPtr("100"), Fee: dec("5")},
			{From: dec("100.01"), To: decPtr("500"), Fee: dec("8")},
			{From: dec("500.01"), To: nil, Fee: dec("10")},
		},
	}
	assert.Empty(t, ValidateSchedule(valid))

	gappy := Schedule{
		Currency: "EUR",
		Slabs: []Slab{
			{From: dec("0"), To: decPtr("100"), Fee: dec("5")},
			{From: dec("200"), To: nil, Fee: dec("10")},
		},
	}
	errs := ValidateSchedule(gappy)
	require.NotEmpty(t, errs)
	assert.Contains(t, codes(errs), CodeGapDetected)

	unboundedInMiddle := Schedule{
		Currency: "EUR",
		Slabs: []Slab{
			{From: dec("0"), To: nil, Fee: dec("5")},
			{From: dec("100"), To: decPtr("500"), Fee: dec("8")},
		},
	}
	errs = ValidateSchedule(unboundedInMiddle)
	require.NotEmpty(t, errs)
	assert.Contains(t, codes(errs), CodeUnboundedNotTop)
}

func TestValidationErrorsOrNil(t *testing.T) {
	var empty ValidationErrors
	assert.NoError(t, empty.OrNil())

	errs := ValidationErrors{{Field: "fromAmount", Code: CodeGapDetected, Message: "gap"}}
	require.Error(t, errs.OrNil())
	assert.Contains(t, errs.OrNil().Error(), CodeGapDetected)
}

func TestValidateSplitsPercentageCap(t *testing.T) {
	ok := []Split{
		{StakeholderRef: "agent", Kind: SplitPercentage, Value: dec("60"), Active: true},
		{StakeholderRef: "branch", Kind: SplitPercentage, Value: dec("40"), Active: true},
		{StakeholderRef: "legacy", Kind: SplitPercentage, Value: dec("90"), Active: false},
		{StakeholderRef: "partner", Kind: SplitFlatAmount, Value: dec("3"), Active: true},
	}
	assert.Empty(t, ValidateSplits(ok))

	over := []Split{
		{StakeholderRef: "agent", Kind: SplitPercentage, Value: dec("70"), Active: true},
		{StakeholderRef: "branch", Kind: SplitPercentage, Value: dec("40"), Active: true},
	}
	errs := ValidateSplits(over)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeSplitOver100, errs[0].Code)
}
