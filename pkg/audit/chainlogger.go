package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// EventKind identifies what a trail entry records.
type EventKind string

const (
	EventFeeCharged    EventKind = "FEE_CHARGED"
	EventVATApplied    EventKind = "VAT_APPLIED"
	EventAccountOpened EventKind = "ACCOUNT_OPENED"
)

// Event is the structured payload of one trail entry.
type Event struct {
	Kind      EventKind `json:"kind"`
	Reference string    `json:"reference"`
	Amount    string    `json:"amount,omitempty"`
	Currency  string    `json:"currency,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Entry is a single hash-chained record.
type Entry struct {
	Timestamp    string `json:"timestamp"`
	PreviousHash string `json:"previous_hash"`
	Payload      string `json:"payload"`
	Hash         string `json:"hash"`
}

// Trail is a tamper-evident log of monetary events. Each entry's hash
// covers the previous entry's hash, so any rewrite breaks the chain.
type Trail struct {
	mu           sync.Mutex
	previousHash string
}

// NewTrail creates a trail anchored on a zero hash.
func NewTrail() *Trail {
	return &Trail{previousHash: strings.Repeat("0", 64)}
}

// Record appends an event and returns the sealed entry.
func (tr *Trail) Record(ev Event) (*Entry, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit event: %w", err)
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	entry := &Entry{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		PreviousHash: tr.previousHash,
		Payload:      string(payload),
	}
	entry.Hash = entryHash(entry.PreviousHash, entry.Timestamp, entry.Payload)
	tr.previousHash = entry.Hash
	return entry, nil
}

func entryHash(prevHash, timestamp, payload string) string {
	sum := sha256.Sum256([]byte(prevHash + "|" + timestamp + "|" + payload))
	return hex.EncodeToString(sum[:])
}

// Verify checks that a slice of entries forms an unbroken hash chain.
func Verify(entries []*Entry) bool {
	for i, entry := range entries {
		if i > 0 && entry.PreviousHash != entries[i-1].Hash {
			return false
		}
		if entryHash(entry.PreviousHash, entry.Timestamp, entry.Payload) != entry.Hash {
			return false
		}
	}
	return true
}
