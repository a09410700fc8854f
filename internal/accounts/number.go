package accounts

import (
	"fmt"
	"strconv"
	"strings"
)

// Account number layout: a 2-character numeric product prefix, the sequence
// zero-padded to 9 minus the prefix length, and one check digit computed
// over the 15-digit base of institution segment plus serial.
const (
	serialLength         = 9
	checksumBaseLength   = 15
	institutionLeadDigit = "9"
)

// The per-position weights the check digit is computed with.
var checksumWeights = [checksumBaseLength]int{3, 7, 3, 3, 7, 3, 3, 7, 3, 3, 7, 3, 3, 7, 3}

// InstitutionCodeError reports a missing or malformed institution code.
type InstitutionCodeError struct {
	Code string
}

func (e *InstitutionCodeError) Error() string {
	if e.Code == "" {
		return "institution code is not configured"
	}
	return fmt.Sprintf("institution code %q must be exactly 5 digits", e.Code)
}

// AccountPrefixError reports a missing or malformed product prefix.
type AccountPrefixError struct {
	ProductID string
	Prefix    string
}

func (e *AccountPrefixError) Error() string {
	if e.Prefix == "" {
		return fmt.Sprintf("no account prefix configured for product %s", e.ProductID)
	}
	return fmt.Sprintf("account prefix %q for product %s must be exactly 2 digits", e.Prefix, e.ProductID)
}

// SequenceOverflowError reports a sequence past the padded width's capacity.
type SequenceOverflowError struct {
	ProductID string
	Sequence  int64
	Capacity  int64
}

func (e *SequenceOverflowError) Error() string {
	return fmt.Sprintf("sequence %d for product %s exceeds capacity %d", e.Sequence, e.ProductID, e.Capacity)
}

// ChecksumBaseLengthError guards the checksum input width. Defensive: the
// construction above cannot produce any other length.
type ChecksumBaseLengthError struct {
	Base string
}

func (e *ChecksumBaseLengthError) Error() string {
	return fmt.Sprintf("checksum base %q is %d digits, want %d", e.Base, len(e.Base), checksumBaseLength)
}

// Synthesizer renders allocated sequences into fixed-length, checksummed
// account numbers.
type Synthesizer struct {
	institution string
	prefixes    map[string]string
}

// NewSynthesizer creates a synthesizer for a 5-digit institution code and a
// product-id to 2-digit-prefix map.
func NewSynthesizer(institutionCode string, prefixes map[string]string) (*Synthesizer, error) {
	if !allDigits(institutionCode) || len(institutionCode) != 5 {
		return nil, &InstitutionCodeError{Code: institutionCode}
	}
	return &Synthesizer{institution: institutionCode, prefixes: prefixes}, nil
}

// Synthesize derives the 10-character account number for a product and an
// allocated sequence.
func (s *Synthesizer) Synthesize(productID string, sequence int64) (string, error) {
	prefix, ok := s.prefixes[productID]
	if !ok || len(prefix) != 2 || !allDigits(prefix) {
		return "", &AccountPrefixError{ProductID: productID, Prefix: prefix}
	}

	padWidth := serialLength - len(prefix)
	capacity := int64(1)
	for i := 0; i < padWidth; i++ {
		capacity *= 10
	}
	capacity--
	if sequence < 1 || sequence > capacity {
		return "", &SequenceOverflowError{ProductID: productID, Sequence: sequence, Capacity: capacity}
	}

	serial := prefix + fmt.Sprintf("%0*d", padWidth, sequence)
	base := institutionLeadDigit + s.institution + serial

	checkDigit, err := checksumDigit(base)
	if err != nil {
		return "", err
	}
	return serial + strconv.Itoa(checkDigit), nil
}

// checksumDigit computes the weighted modulus-10 check digit over the
// 15-digit base.
func checksumDigit(base string) (int, error) {
	if len(base) != checksumBaseLength || !allDigits(base) {
		return 0, &ChecksumBaseLengthError{Base: base}
	}

	sum := 0
	for i, r := range base {
		sum += int(r-'0') * checksumWeights[i]
	}
	return (10 - sum%10) % 10, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
