package onramp

import "testing"

func TestPendingOverwritesWholesale(t *testing.T) {
	s := NewPendingStore()

	s.Set(Submission{Asset: "Bitcoin", Network: "Ethereum", Subdivision: "NY"})
	s.Set(Submission{Asset: "Solana", Network: "Solana"})

	sub, ok := s.Peek()
	if !ok {
		t.Fatal("expected a pending submission")
	}
	if sub.Asset != "Solana" || sub.Subdivision != "" {
		t.Fatalf("second write should replace entirely, got %+v", sub)
	}
}

func TestPendingTakeConsumesOnce(t *testing.T) {
	s := NewPendingStore()
	s.Set(Submission{Asset: "Bitcoin"})

	if _, ok := s.Take(); !ok {
		t.Fatal("first take should succeed")
	}
	if _, ok := s.Take(); ok {
		t.Fatal("second take should find nothing")
	}
}

func TestPendingClearIdempotent(t *testing.T) {
	s := NewPendingStore()
	s.Set(Submission{Asset: "Bitcoin"})
	s.Clear()
	s.Clear()
	if _, ok := s.Peek(); ok {
		t.Fatal("expected no pending submission")
	}
}

func TestCanceledFlagIsOneShot(t *testing.T) {
	s := NewPendingStore()
	s.Set(Submission{Asset: "Bitcoin"})
	s.Cancel()

	if _, ok := s.Peek(); ok {
		t.Fatal("cancel should drop the pending submission")
	}
	if !s.ConsumeCanceled() {
		t.Fatal("first consume should report canceled")
	}
	if s.ConsumeCanceled() {
		t.Fatal("second consume should report nothing")
	}
}

func TestSetResetsCanceledFlag(t *testing.T) {
	s := NewPendingStore()
	s.Cancel()
	s.Set(Submission{Asset: "Bitcoin"})
	if s.ConsumeCanceled() {
		t.Fatal("a fresh pending submission should lower the canceled flag")
	}
}
