package database_test

import (
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
)

func TestRecentHashWindowContainsAdded(t *testing.T) {
	w := database.NewRecentHashWindow(3)
	h := hash.New([]byte("one"))

	w.Add(h, 0)

	if !w.Contains(h) {
		t.Fatal("expected window to contain the added hash")
	}
}

func TestRecentHashWindowEvictsOldest(t *testing.T) {
	w := database.NewRecentHashWindow(2)

	h1 := hash.New([]byte("one"))
	h2 := hash.New([]byte("two"))
	h3 := hash.New([]byte("three"))

	w.Add(h1, 0)
	w.Add(h2, 1)
	w.Add(h3, 2)

	if w.Contains(h1) {
		t.Fatal("expected oldest hash to have been evicted")
	}
	if !w.Contains(h2) || !w.Contains(h3) {
		t.Fatal("expected the two most recent hashes to remain")
	}
}

func TestRecentHashWindowUnknownHashNotContained(t *testing.T) {
	w := database.NewRecentHashWindow(3)
	if w.Contains(hash.New([]byte("never added"))) {
		t.Fatal("expected an unknown hash to not be contained")
	}
}

func TestSeenSignaturesRejectsDuplicate(t *testing.T) {
	s := database.NewSeenSignatures()
	var sig [64]byte
	sig[0] = 9

	if !s.AddIfNew(sig, 0) {
		t.Fatal("first admission should succeed")
	}
	if s.AddIfNew(sig, 0) {
		t.Fatal("second admission of the same signature should fail")
	}
	if !s.Contains(sig) {
		t.Fatal("expected signature to be recorded as seen")
	}
}

func TestSeenSignaturesEvictBefore(t *testing.T) {
	s := database.NewSeenSignatures()
	var old, recent [64]byte
	old[0] = 1
	recent[0] = 2

	s.AddIfNew(old, 0)
	s.AddIfNew(recent, 5)

	s.EvictBefore(5)

	if s.Contains(old) {
		t.Fatal("expected signature introduced before the cutoff to be evicted")
	}
	if !s.Contains(recent) {
		t.Fatal("expected signature introduced at the cutoff to remain")
	}
}

func TestRecentHashWindowOldestSlot(t *testing.T) {
	w := database.NewRecentHashWindow(2)

	if _, ok := w.OldestSlot(); ok {
		t.Fatal("expected an empty window to report no oldest slot")
	}

	w.Add(hash.New([]byte("one")), 3)
	w.Add(hash.New([]byte("two")), 4)

	got, ok := w.OldestSlot()
	if !ok || got != 3 {
		t.Fatalf("got (%d, %v), want (3, true)", got, ok)
	}

	w.Add(hash.New([]byte("three")), 5)

	got, ok = w.OldestSlot()
	if !ok || got != 4 {
		t.Fatalf("after eviction got (%d, %v), want (4, true)", got, ok)
	}
}

func TestRecentHashWindowCloneIsIndependent(t *testing.T) {
	w := database.NewRecentHashWindow(3)
	h := hash.New([]byte("one"))
	w.Add(h, 0)

	clone := w.Clone()
	clone.Add(hash.New([]byte("two")), 1)

	if w.Contains(hash.New([]byte("two"))) {
		t.Fatal("expected mutating the clone to leave the original untouched")
	}
	if !clone.Contains(h) {
		t.Fatal("expected the clone to carry over the original's entries")
	}
}
