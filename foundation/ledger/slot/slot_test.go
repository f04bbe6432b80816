package slot_test

import (
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/entry"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/slot"
)

func TestSealEmptySlotUsesParentAsLastHash(t *testing.T) {
	parent := hash.New([]byte("parent"))
	b := slot.NewBuilder(1, parent)

	s := b.Seal()

	if s.LastHash != parent {
		t.Fatalf("got last_hash %s, want parent %s", s.LastHash, parent)
	}
	if len(s.Entries) != 0 {
		t.Fatalf("got %d entries, want 0", len(s.Entries))
	}
}

func TestSealUsesFinalEntryHash(t *testing.T) {
	parent := hash.New([]byte("parent"))
	b := slot.NewBuilder(2, parent)

	e1 := entry.Entry{NumHashes: 1, Hash: hash.New([]byte("e1")), Transactions: []database.Transfer{}}
	e2 := entry.Entry{NumHashes: 1, Hash: hash.New([]byte("e2")), Transactions: []database.Transfer{}}

	b.Append(e1)
	b.Append(e2)

	s := b.Seal()
	if s.LastHash != e2.Hash {
		t.Fatalf("got last_hash %s, want final entry hash %s", s.LastHash, e2.Hash)
	}
	if s.Slot != 2 {
		t.Fatalf("got slot %d, want 2", s.Slot)
	}
	if len(s.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(s.Entries))
	}
}
