// Package slot represents the ledger's sealed unit of history: a sequence
// of entries bounded by a parent and a last hash.
package slot

import (
	"github.com/ardanlabs/pohledger/foundation/ledger/entry"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
)

// Slot is the wire representation of one leader epoch's worth of entries.
// Once sealed (appended to a Ledger) a Slot is immutable.
type Slot struct {
	Slot       uint64        `json:"slot"`
	ParentHash hash.Hash     `json:"parent_hash"`
	Entries    []entry.Entry `json:"entries"`
	LastHash   hash.Hash     `json:"last_hash"`
}

// Builder accumulates entries for the slot currently being assembled.
type Builder struct {
	number     uint64
	parentHash hash.Hash
	entries    []entry.Entry
}

// NewBuilder starts assembling slot number, chained from parentHash (the
// prior slot's LastHash, or the genesis hash for slot 0).
func NewBuilder(number uint64, parentHash hash.Hash) *Builder {
	return &Builder{number: number, parentHash: parentHash}
}

// Append adds a sealed entry to the slot under construction.
func (b *Builder) Append(e entry.Entry) {
	b.entries = append(b.entries, e)
}

// Len reports how many entries have been appended so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Seal finalizes the slot. LastHash is the final entry's hash, or
// ParentHash if the slot has no entries.
func (b *Builder) Seal() Slot {
	last := b.parentHash
	if n := len(b.entries); n > 0 {
		last = b.entries[n-1].Hash
	}

	entries := b.entries
	if entries == nil {
		entries = []entry.Entry{}
	}

	return Slot{
		Slot:       b.number,
		ParentHash: b.parentHash,
		Entries:    entries,
		LastHash:   last,
	}
}
