package verification

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"
)

// DefaultTTL is how long a completed phone verification stays valid.
const DefaultTTL = 60 * 24 * time.Hour

// Store holds the phone-verification credential: the verified value and when
// it was issued. Freshness is derived, never stored.
type Store struct {
	mu       sync.RWMutex
	value    string
	issuedAt time.Time
	held     bool

	ttl     time.Duration
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore loads any persisted credential and returns the store. A zero ttl
// falls back to DefaultTTL.
func NewStore(ctx context.Context, storage Storage, ttl time.Duration, logger *slog.Logger) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{ttl: ttl, storage: storage, logger: logger, now: time.Now}

	value, issuedAt, held, err := storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.value = value
	s.issuedAt = issuedAt
	s.held = held
	return s, nil
}

// Set records a verified value, stamping the current time, and persists it.
// An empty value clears the credential.
func (s *Store) Set(ctx context.Context, value string) error {
	if value == "" {
		return s.Clear(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	issuedAt := s.now().UTC()
	if err := s.storage.Save(ctx, value, issuedAt); err != nil {
		return err
	}
	s.value = value
	s.issuedAt = issuedAt
	s.held = true
	return nil
}

// Clear removes the credential and its persisted copy.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Delete(ctx); err != nil {
		return err
	}
	s.value = ""
	s.issuedAt = time.Time{}
	s.held = false
	return nil
}

// Value returns the verified value and whether a credential is held.
func (s *Store) Value() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.held
}

// Fresh reports whether the credential exists and is still inside its
// validity window.
func (s *Store) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.held {
		return false
	}
	return s.now().Sub(s.issuedAt) < s.ttl
}

// DaysUntilExpiry returns the whole days remaining before the credential
// expires, rounded up. It returns -1 when no credential is held and may be
// zero or negative once expired; display code tolerates both.
func (s *Store) DaysUntilExpiry() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.held {
		return -1
	}
	remaining := s.issuedAt.Add(s.ttl).Sub(s.now())
	return int(math.Ceil(remaining.Hours() / 24))
}

// SyncWithAccount clears the credential when the account's authoritative
// phone-on-file differs from the stored value, or is absent while a
// credential is held. This covers account switches and phones unlinked
// elsewhere without an explicit unlink here.
func (s *Store) SyncWithAccount(ctx context.Context, phoneOnFile string) (bool, error) {
	s.mu.RLock()
	held := s.held
	value := s.value
	s.mu.RUnlock()

	if !held || value == phoneOnFile {
		return false, nil
	}
	if s.logger != nil {
		s.logger.Info("verification credential no longer matches account phone, clearing")
	}
	if err := s.Clear(ctx); err != nil {
		return false, err
	}
	return true, nil
}
