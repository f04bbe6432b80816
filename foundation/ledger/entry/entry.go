// Package entry builds and represents the ledger's Entry: the smallest
// unit of recorded time, pairing a PoH advance with whatever transactions
// and system events were admitted during it.
package entry

import (
	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/poh"
)

// Entry is the wire representation of one PoH advance. Transactions is
// never nil on the wire (empty entries still marshal an empty array);
// System is present only when at least one airdrop landed in this entry.
type Entry struct {
	NumHashes    uint64              `json:"num_hashes"`
	Hash         hash.Hash           `json:"hash"`
	Transactions []database.Transfer `json:"transactions"`
	System       []database.Airdrop  `json:"system,omitempty"`
}

// Builder accumulates admitted transfers and airdrops between seals and
// turns an accumulation plus a PoH advance into a sealed Entry.
type Builder struct {
	clock        *poh.Clock
	ticksPending uint64
	transfers    []database.Transfer
	airdrops     []database.Airdrop
}

// NewBuilder constructs a Builder driving clock.
func NewBuilder(clock *poh.Clock) *Builder {
	return &Builder{clock: clock}
}

// Tick records that one PoH tick elapsed without being folded into a seal
// yet. The leader calls this once per ticker interval; Seal later converts
// the accumulated tick count into an entry's num_hashes.
func (b *Builder) Tick() {
	b.ticksPending++
}

// AddTransfer appends an already-admitted transfer to the pending batch.
func (b *Builder) AddTransfer(t database.Transfer) {
	b.transfers = append(b.transfers, t)
}

// AddAirdrop appends an already-admitted airdrop to the pending batch.
func (b *Builder) AddAirdrop(a database.Airdrop) {
	b.airdrops = append(b.airdrops, a)
}

// Pending reports whether Seal would currently produce a non-trivial entry
// (at least one tick accumulated).
func (b *Builder) Pending() bool {
	return b.ticksPending > 0
}

// Seal advances the clock by the accumulated tick count (one hash when no
// tick has accumulated), mixing in the
// batch hash of the pending transfers on the final tick (per the frozen
// mixin convention: num_hashes-1 plain ticks then one mixin, or all plain
// ticks when there is nothing to mix in), and returns the resulting Entry.
// The builder's pending state is cleared regardless of whether any
// transactions were present.
func (b *Builder) Seal() Entry {
	numHashes := b.ticksPending
	if numHashes == 0 {
		numHashes = 1
	}

	var batchHash []byte
	if len(b.transfers) > 0 {
		bh := BatchHash(b.transfers)
		batchHash = bh[:]
	}

	snap := b.clock.Advance(numHashes, batchHash)

	e := Entry{
		NumHashes:    numHashes,
		Hash:         snap.Hash,
		Transactions: append([]database.Transfer(nil), b.transfers...),
		System:       append([]database.Airdrop(nil), b.airdrops...),
	}
	if e.Transactions == nil {
		e.Transactions = []database.Transfer{}
	}

	b.ticksPending = 0
	b.transfers = nil
	b.airdrops = nil

	return e
}

// BatchHash hashes the concatenation of every transfer's signature, in
// admission order. This is the payload mixed into the PoH clock on an
// entry's final tick, and is exactly what a validator must reproduce from
// the entry's own Transactions list during replay.
func BatchHash(transfers []database.Transfer) hash.Hash {
	var buf []byte
	for _, t := range transfers {
		buf = append(buf, t.Sig[:]...)
	}
	return hash.New(buf)
}
