package account

import (
	"context"
	"strings"
	"sync"
)

// Snapshot is the authoritative view of the signed-in account as reported by
// the authentication/wallet collaborator.
type Snapshot struct {
	UserID        string
	Email         string
	Phone         string
	PhoneVerified bool
}

// Provider represents the external authentication/wallet collaborator. This
// service never owns credentials; it only reads the linked identity and asks
// for a sign-out when re-verification demands one.
type Provider interface {
	Current(ctx context.Context) (Snapshot, error)
	SignOut(ctx context.Context) error
}

// IsUSPhone reports whether a linked phone carries the +1 country code the
// card payment method requires.
func IsUSPhone(phone string) bool {
	return strings.HasPrefix(strings.TrimSpace(phone), "+1")
}

// StaticProvider simulates the collaborator with mutable in-memory state.
// It backs dev runs and tests.
type StaticProvider struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewStaticProvider builds a provider reporting the given account.
func NewStaticProvider(snap Snapshot) *StaticProvider {
	return &StaticProvider{snap: snap}
}

// Current returns the simulated account snapshot.
func (p *StaticProvider) Current(_ context.Context) (Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap, nil
}

// SignOut clears the simulated session.
func (p *StaticProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = Snapshot{}
	return nil
}

// LinkEmail simulates linking an email to the account.
func (p *StaticProvider) LinkEmail(email string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Email = email
}

// LinkPhone simulates linking a phone, verified or not.
func (p *StaticProvider) LinkPhone(phone string, verified bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap.Phone = phone
	p.snap.PhoneVerified = verified
}

// SetSnapshot replaces the whole simulated account.
func (p *StaticProvider) SetSnapshot(snap Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap
}
