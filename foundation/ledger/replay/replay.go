// Package replay implements the validator side of ingestion: given a slot
// produced by a leader, it deterministically re-derives the PoH chain,
// re-validates every transaction, and re-applies everything to its own
// bank without trusting any field the leader sent except as something to
// independently verify.
package replay

import (
	"fmt"
	"sync"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/entry"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/poh"
	"github.com/ardanlabs/pohledger/foundation/ledger/slot"
	"github.com/ardanlabs/pohledger/foundation/ledger/txcheck"
)

// IngestMismatch reports exactly where replay diverged from what the
// leader claimed, so an operator can tell a forged slot from a bug.
type IngestMismatch struct {
	Slot  uint64
	Field string // e.g. "hash", "parent_hash", "last_hash"
	Want  string
	Got   string
}

func (e *IngestMismatch) Error() string {
	return fmt.Sprintf("slot %d: %s mismatch: want %s, got %s", e.Slot, e.Field, e.Want, e.Got)
}

// Replayer holds the validator's own copy of the consistency-domain
// primitives, advanced strictly by replaying ingested slots. Every exported
// method takes the same lock for its entire body, mirroring
// leader.Coordinator: admission validation, bank update, signature-set
// insertion, and PoH advance all form one atomic transition, and a reader
// (Bank, Ledger, NextSlot) never observes a slot half-ingested.
type Replayer struct {
	mu sync.Mutex

	clock  *poh.Clock
	bank   *database.Bank
	window *database.RecentHashWindow
	seen   *database.SeenSignatures

	lastHash    hash.Hash
	nextSlotNum uint64

	ledger []slot.Slot
}

// New constructs a Replayer seeded identically to a leader.Coordinator
// started from the same genesis: same PoH seed, same RecentHashWindow
// size, its one entry already containing the genesis hash.
func New(pohSeed string, recentHashWindowSize int) *Replayer {
	clock := poh.New([]byte(pohSeed))
	bank := database.NewBank()
	startHash := clock.Snapshot().Hash

	window := database.NewRecentHashWindow(recentHashWindowSize)
	window.Add(startHash, 0)
	seen := database.NewSeenSignatures()

	return &Replayer{
		clock:    clock,
		bank:     bank,
		window:   window,
		seen:     seen,
		lastHash: startHash,
	}
}

// Bank exposes the validator's own bank, converged by Ingest calls. The
// returned pointer is a point-in-time reference: a later Ingest call may
// replace the Replayer's internal bank wholesale rather than mutate this
// one further, so callers wanting the latest state should call Bank again
// rather than hold the pointer across an Ingest.
func (r *Replayer) Bank() *database.Bank {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.bank
}

// NextSlot reports the slot number Ingest expects next, so a caller
// re-fetching a leader's full ledger knows which slots it has already
// converged on and can skip.
func (r *Replayer) NextSlot() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.nextSlotNum
}

// Ledger returns a snapshot copy of every slot ingested so far.
func (r *Replayer) Ledger() []slot.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]slot.Slot, len(r.ledger))
	copy(out, r.ledger)
	return out
}

// Ingest replays s against the validator's own state. It fails closed: any
// mismatch leaves the bank, window, and seen-signatures set exactly as
// they were before the call.
//
// Validation and application are not separate passes: every entry's
// effects (airdrop credits, transfer debits/credits, the recent-hash
// window insertion, the seen-signature insertion) are applied in admission
// order as each entry is checked, exactly as the leader applies them
// during admission. This lets a transaction validate against funds an
// earlier entry in the same slot airdropped, or name an earlier entry in
// the same slot as its recent_hash — both of which the leader itself
// allowed at admission time. Everything is staged onto scratch copies of
// bank, window, and seen cloned at the top of the call; the real fields
// are only swapped in after the slot's last_hash check passes, so a
// mismatch partway through never leaves live state partially applied.
func (r *Replayer) Ingest(s slot.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.Slot != r.nextSlotNum {
		return &IngestMismatch{Slot: s.Slot, Field: "slot", Want: fmt.Sprint(r.nextSlotNum), Got: fmt.Sprint(s.Slot)}
	}
	if s.ParentHash != r.lastHash {
		return &IngestMismatch{Slot: s.Slot, Field: "parent_hash", Want: r.lastHash.String(), Got: s.ParentHash.String()}
	}

	bank := r.bank.Clone()
	window := r.window.Clone()
	seen := r.seen.Clone()
	checker := txcheck.New(bank, window, seen)

	cursor := r.clock.Snapshot().Hash

	for _, e := range s.Entries {
		// Airdrops never fail and only add funds, so crediting them before
		// this entry's transfers can only relax a balance check, never
		// break one the leader itself allowed. The wire entry does not
		// preserve true interleaving between transfers and airdrops within
		// one entry, so this order is the one choice that always converges.
		for _, a := range e.System {
			bank.Airdrop(a.To, a.Amount)
		}

		for _, t := range e.Transactions {
			if err := checker.Check(t); err != nil {
				return fmt.Errorf("slot %d: transaction rejected: %w", s.Slot, err)
			}
			if err := bank.ApplyTransfer(t.From, t.To, t.Amount); err != nil {
				return fmt.Errorf("slot %d: commit failed after validation passed: %w", s.Slot, err)
			}
			seen.AddIfNew(t.Sig, s.Slot)
		}

		var batchHash []byte
		if len(e.Transactions) > 0 {
			bh := entry.BatchHash(e.Transactions)
			batchHash = bh[:]
		}

		want := advance(cursor, e.NumHashes, batchHash)
		if want != e.Hash {
			return &IngestMismatch{Slot: s.Slot, Field: "hash", Want: want.String(), Got: e.Hash.String()}
		}
		cursor = e.Hash

		window.Add(e.Hash, s.Slot)
		if oldest, ok := window.OldestSlot(); ok {
			seen.EvictBefore(oldest)
		}
	}

	last := cursor
	if len(s.Entries) == 0 {
		last = s.ParentHash
	}
	if last != s.LastHash {
		return &IngestMismatch{Slot: s.Slot, Field: "last_hash", Want: last.String(), Got: s.LastHash.String()}
	}

	// Everything checked out; advance the real clock by the exact same
	// Advance calls used for verification above, so it ends up at the same
	// cursor, then swap the scratch copies in.
	for _, e := range s.Entries {
		var batchHash []byte
		if len(e.Transactions) > 0 {
			bh := entry.BatchHash(e.Transactions)
			batchHash = bh[:]
		}
		r.clock.Advance(e.NumHashes, batchHash)
	}

	r.bank = bank
	r.window = window
	r.seen = seen
	r.lastHash = s.LastHash
	r.nextSlotNum++
	r.ledger = append(r.ledger, s)

	return nil
}

// advance computes what a clock started at cursor would read after
// numHashes ticks (with batchHash mixed into the final tick, if present)
// without mutating any real clock. This mirrors poh.Clock.Advance exactly;
// replay needs a pure version to check before committing.
func advance(cursor hash.Hash, numHashes uint64, batchHash []byte) hash.Hash {
	if numHashes == 0 {
		return cursor
	}
	if batchHash == nil {
		h := cursor
		for i := uint64(0); i < numHashes; i++ {
			h = hash.Append(h, nil)
		}
		return h
	}
	h := cursor
	for i := uint64(0); i < numHashes-1; i++ {
		h = hash.Append(h, nil)
	}
	return hash.Append(h, batchHash)
}
