package session

import "testing"

func TestRegionUSSubdivisionRules(t *testing.T) {
	r := NewRegisters()

	country, subdivision := r.Region()
	if country != "US" || subdivision != "CA" {
		t.Fatalf("defaults = %s/%s, want US/CA", country, subdivision)
	}

	r.SetRegion("US", "NY")
	if _, sub := r.Region(); sub != "NY" {
		t.Fatalf("subdivision = %s, want NY", sub)
	}

	r.SetRegion("US", "")
	if _, sub := r.Region(); sub != "CA" {
		t.Fatalf("subdivision = %s, want defaulted CA", sub)
	}

	r.SetRegion("GB", "NY")
	if _, sub := r.Region(); sub != "" {
		t.Fatalf("subdivision = %s, want cleared for non-US", sub)
	}
}

func TestNetworkRegister(t *testing.T) {
	r := NewRegisters()
	if r.Network() != "" {
		t.Fatalf("expected empty initial network")
	}
	r.SetNetwork("Solana")
	if r.Network() != "Solana" {
		t.Fatalf("network = %q, want Solana", r.Network())
	}
}

func TestWatchConvergesOnLastWrite(t *testing.T) {
	r := NewRegisters()
	ch, cancel := r.Watch()
	defer cancel()

	<-ch // initial snapshot

	r.SetNetwork("Ethereum")
	r.SetNetwork("Base")
	r.SetRegion("US", "WA")

	snap := <-ch
	if snap.Network != "Base" || snap.Subdivision != "WA" {
		t.Fatalf("snapshot = %+v, want Base/WA", snap)
	}
}
