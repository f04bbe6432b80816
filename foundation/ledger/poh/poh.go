// Package poh implements the proof-of-history clock: a monotonic chain of
// SHA-256 hashes that turns elapsed time (ticks) and admitted data (mixins)
// into a single reproducible sequence.
package poh

import (
	"sync"

	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
)

// Snapshot is a read-only view of the clock at a point in time.
type Snapshot struct {
	Height uint64
	Hash   hash.Hash
}

// Clock is a proof-of-history hash chain. The zero value is not usable; use
// New. A Clock is safe for concurrent use; callers that need a tick and a
// mixin to be indivisible (the leader's admission path) should still hold
// their own outer lock, since Clock only guarantees each individual method
// call is atomic.
type Clock struct {
	mu     sync.Mutex
	height uint64
	cur    hash.Hash
}

// New starts a clock from seed. Two clocks started from the same seed and
// driven by the same sequence of Tick/Mixin calls converge on identical
// hashes; this is what lets a validator replay a leader's history.
func New(seed []byte) *Clock {
	return &Clock{cur: hash.New(seed)}
}

// Tick advances the clock by one self-hash step and returns the resulting
// snapshot.
func (c *Clock) Tick() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cur = hash.Append(c.cur, nil)
	c.height++
	return Snapshot{Height: c.height, Hash: c.cur}
}

// Mixin advances the clock by hashing payload into the current hash and
// returns the resulting snapshot. Used on the final tick of an entry that
// carries a non-empty transaction batch, where payload is the batch hash.
func (c *Clock) Mixin(payload []byte) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cur = hash.Append(c.cur, payload)
	c.height++
	return Snapshot{Height: c.height, Hash: c.cur}
}

// Snapshot returns the current height and hash without advancing the clock.
func (c *Clock) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{Height: c.height, Hash: c.cur}
}

// Advance replays numHashes ticks, with the last tick replaced by a mixin of
// batchHash when batchHash is non-nil. This is the single replay primitive
// shared by the leader (sealing an entry) and the validator (verifying
// one): an entry with an empty transaction batch passes a nil batchHash and
// gets numHashes plain ticks; an entry with transactions passes the
// transaction batch hash and gets numHashes-1 ticks followed by one mixin.
func (c *Clock) Advance(numHashes uint64, batchHash []byte) Snapshot {
	if numHashes == 0 {
		return c.Snapshot()
	}

	if batchHash == nil {
		for i := uint64(0); i < numHashes; i++ {
			c.Tick()
		}
		return c.Snapshot()
	}

	for i := uint64(0); i < numHashes-1; i++ {
		c.Tick()
	}
	return c.Mixin(batchHash)
}
