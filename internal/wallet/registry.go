package wallet

import (
	"errors"
	"sync"

	"github.com/coinramp/coinramp/internal/chain"
)

// Mode is the process-wide safety mode. It always boots as sandbox and is
// never persisted; flipping to production is an explicit runtime action.
type Mode string

const (
	ModeSandbox    Mode = "sandbox"
	ModeProduction Mode = "production"
)

var (
	// ErrInvalidMode is returned for mode strings outside the two known values.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrInvalidAddress is returned when an address fails shape validation.
	ErrInvalidAddress = errors.New("invalid address")
)

// ParseMode validates a mode string from the wire.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSandbox, ModeProduction:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// Snapshot is an immutable view of the registry handed to watchers.
type Snapshot struct {
	EVMAddress      string
	SolanaAddress   string
	OverrideAddress string
	Mode            Mode
}

// Registry holds the destination addresses for each supported chain family
// plus the sandbox override, and resolves which one a given network should
// pay out to. Addresses are written by the authentication collaborator's
// sign-in callback; everything here is volatile.
type Registry struct {
	mu       sync.RWMutex
	evm      string
	solana   string
	override string
	mode     Mode
	watchers []chan Snapshot
}

// NewRegistry returns an empty registry in sandbox mode.
func NewRegistry() *Registry {
	return &Registry{mode: ModeSandbox}
}

// SetEVMAddress records the EVM-family destination address. Empty clears it.
func (r *Registry) SetEVMAddress(addr string) error {
	if addr != "" && !validEVMAddress(addr) {
		return ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evm = addr
	r.notifyLocked()
	return nil
}

// SetSolanaAddress records the Solana-family destination address. Empty clears it.
func (r *Registry) SetSolanaAddress(addr string) error {
	if addr != "" && !validSolanaAddress(addr) {
		return ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.solana = addr
	r.notifyLocked()
	return nil
}

// SetOverrideAddress records the operator-supplied override. It is only
// consulted in sandbox mode; either address shape is accepted so any network
// path can be forced, but garbage is still rejected.
func (r *Registry) SetOverrideAddress(addr string) error {
	if addr != "" && !validEVMAddress(addr) && !validSolanaAddress(addr) {
		return ErrInvalidAddress
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.override = addr
	r.notifyLocked()
	return nil
}

// SetMode switches the safety mode. Entering production always clears the
// override so a synthetic address can never silently receive real funds.
func (r *Registry) SetMode(mode Mode) error {
	if mode != ModeSandbox && mode != ModeProduction {
		return ErrInvalidMode
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
	if mode == ModeProduction {
		r.override = ""
	}
	r.notifyLocked()
	return nil
}

// Mode reports the current safety mode.
func (r *Registry) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// Resolve picks the destination address for a network selector or returns
// empty when none is safe to use.
//
// Sandbox prefers the override, then the address matching the network family
// (EVM doubles as the fallback for unsupported selectors so any path can be
// exercised). Production returns only the address of the matching family and
// refuses unsupported networks unconditionally.
func (r *Registry) Resolve(network string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	family := chain.Classify(network)

	if r.mode == ModeSandbox {
		if r.override != "" {
			return r.override
		}
		if family == chain.FamilySolana {
			return r.solana
		}
		return r.evm
	}

	switch family {
	case chain.FamilySolana:
		return r.solana
	case chain.FamilyEVM:
		return r.evm
	default:
		return ""
	}
}

// Snapshot returns the current registry contents.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Reset clears all addresses and the override on sign-out. Mode is left
// alone: safety mode is an operator decision, not a session artifact.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evm = ""
	r.solana = ""
	r.override = ""
	r.notifyLocked()
}

// Watch subscribes to registry changes. The channel carries the latest
// snapshot; stale intermediate values may be dropped, so a reader always
// converges on the last write. The returned cancel func must be called when
// the consumer goes away.
func (r *Registry) Watch() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	r.mu.Lock()
	r.watchers = append(r.watchers, ch)
	ch <- r.snapshotLocked()
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, w := range r.watchers {
			if w == ch {
				r.watchers = append(r.watchers[:i], r.watchers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

func (r *Registry) snapshotLocked() Snapshot {
	return Snapshot{
		EVMAddress:      r.evm,
		SolanaAddress:   r.solana,
		OverrideAddress: r.override,
		Mode:            r.mode,
	}
}

func (r *Registry) notifyLocked() {
	snap := r.snapshotLocked()
	for _, ch := range r.watchers {
		// Replace any undelivered snapshot with the newest one.
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}
