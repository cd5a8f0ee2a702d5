package onramp

import (
	"sync"
	"time"
)

// Submission is the user's request exactly as the form produced it, before
// identifier normalization. It is what gets parked when a submission defers
// and replayed on resume so that normalization and address resolution run
// again against current state.
type Submission struct {
	Asset         string `json:"asset"`
	Network       string `json:"network"`
	FiatAmount    int64  `json:"fiat_amount"`
	FiatCurrency  string `json:"fiat_currency"`
	PaymentMethod string `json:"payment_method"`
	Country       string `json:"country"`
	Subdivision   string `json:"subdivision"`

	SavedAt time.Time `json:"saved_at"`
}

// PendingStore holds at most one parked submission plus a one-shot canceled
// flag. Every write overwrites wholesale; there is no merge.
type PendingStore struct {
	mu       sync.Mutex
	pending  *Submission
	canceled bool
}

// NewPendingStore returns an empty store.
func NewPendingStore() *PendingStore {
	return &PendingStore{}
}

// Set parks a submission, replacing any previous one and resetting the
// canceled flag.
func (s *PendingStore) Set(sub Submission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := sub
	s.pending = &copied
	s.canceled = false
}

// Peek returns the parked submission without consuming it.
func (s *PendingStore) Peek() (Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Submission{}, false
	}
	return *s.pending, true
}

// Take consumes the parked submission. A submission is consumed exactly
// once; a second Take returns false.
func (s *PendingStore) Take() (Submission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Submission{}, false
	}
	sub := *s.pending
	s.pending = nil
	return sub, true
}

// Clear drops any parked submission. Clearing is idempotent.
func (s *PendingStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Cancel drops the parked submission and raises the one-shot canceled flag
// so the host screen can reset its busy indicator once.
func (s *PendingStore) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.canceled = true
}

// ConsumeCanceled returns the canceled flag and lowers it.
func (s *PendingStore) ConsumeCanceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.canceled
	s.canceled = false
	return was
}
