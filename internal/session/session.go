package session

import "sync"

const (
	defaultCountry     = "US"
	defaultSubdivision = "CA"
)

// Snapshot is an immutable view of the registers handed to watchers.
type Snapshot struct {
	Network     string
	Country     string
	Subdivision string
}

// Registers holds the active network selection and the buyer's region. These
// are plain mutable registers written by form controls; watcher channels
// replace the original polling timers with the same last-write-wins
// convergence.
type Registers struct {
	mu          sync.RWMutex
	network     string
	country     string
	subdivision string
	watchers    []chan Snapshot
}

// NewRegisters returns registers with the US defaults selected.
func NewRegisters() *Registers {
	return &Registers{country: defaultCountry, subdivision: defaultSubdivision}
}

// SetNetwork records the active network selector.
func (r *Registers) SetNetwork(network string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.network = network
	r.notifyLocked()
}

// Network reports the active network selector.
func (r *Registers) Network() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.network
}

// SetRegion records the buyer's country and subdivision. A US selection
// requires a subdivision and defaults it; any other country clears it.
func (r *Registers) SetRegion(country, subdivision string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.country = country
	if country == defaultCountry {
		if subdivision == "" {
			subdivision = defaultSubdivision
		}
		r.subdivision = subdivision
	} else {
		r.subdivision = ""
	}
	r.notifyLocked()
}

// Region reports the active country and subdivision.
func (r *Registers) Region() (string, string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.country, r.subdivision
}

// Snapshot returns the current register values.
func (r *Registers) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Watch subscribes to register changes; see wallet.Registry.Watch for the
// delivery contract. The cancel func must be called when the consumer
// unmounts.
func (r *Registers) Watch() (<-chan Snapshot, func()) {
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

func (r *Registers) snapshotLocked() Snapshot {
	return Snapshot{Network: r.network, Country: r.country, Subdivision: r.subdivision}
}

func (r *Registers) notifyLocked() {
	snap := r.snapshotLocked()
	for _, ch := range r.watchers {
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
