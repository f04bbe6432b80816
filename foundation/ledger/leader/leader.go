// Package leader implements the single coordinator that owns the PoH
// clock, the bank, the entry/slot builders, the recent-hash window, and
// the seen-signatures set as one consistency domain. Every mutation to any
// of them happens under one exclusive section, so admission, bank update,
// signature-set insertion, and PoH advance form one atomic transition.
package leader

import (
	"sync"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/entry"
	"github.com/ardanlabs/pohledger/foundation/ledger/genesis"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/poh"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/ardanlabs/pohledger/foundation/ledger/slot"
	"github.com/ardanlabs/pohledger/foundation/ledger/txcheck"
)

// Config controls how often the leader seals an entry and a slot, in
// ticks. Defaults mirror the original implementation's env-tunable knobs
// (ENTRY_TICKS=4, SLOT_TICKS=12).
type Config struct {
	EntryTicks uint64 // Ticks accumulated before an entry is sealed.
	SlotTicks  uint64 // Ticks accumulated before a slot is sealed.
	MaxSlots   int    // Sealed slots retained in the in-memory ledger; 0 means unbounded.
}

// DefaultConfig matches the original implementation's defaults.
func DefaultConfig() Config {
	return Config{EntryTicks: 4, SlotTicks: 12, MaxSlots: 256}
}

// Coordinator is the leader's single consistency domain. Every exported
// method that touches shared state takes the same mutex, so transfer
// validation, bank update, signature-set insertion, and PoH advance form
// one atomic transition.
type Coordinator struct {
	mu sync.Mutex

	cfg     Config
	clock   *poh.Clock
	bank    *database.Bank
	window  *database.RecentHashWindow
	seen    *database.SeenSignatures
	checker *txcheck.Checker

	entryBuilder    *entry.Builder
	slotBuilder     *slot.Builder
	ticksSinceEntry uint64
	ticksInSlot     uint64
	nextSlotNum     uint64
	lastSlotHash    hash.Hash

	ledger []slot.Slot
}

// New constructs a Coordinator from genesis and cfg.
func New(g genesis.Genesis, cfg Config) *Coordinator {
	clock := poh.New([]byte(g.PoHSeed))
	bank := database.NewBank()

	for acctHex, amount := range g.Balances {
		pk, err := signature.ParsePublicKey(acctHex)
		if err != nil {
			continue
		}
		bank.Airdrop(pk, amount)
	}

	startHash := clock.Snapshot().Hash

	window := database.NewRecentHashWindow(g.RecentHashWindowSize)
	window.Add(startHash, 0)
	seen := database.NewSeenSignatures()

	return &Coordinator{
		cfg:          cfg,
		clock:        clock,
		bank:         bank,
		window:       window,
		seen:         seen,
		checker:      txcheck.New(bank, window, seen),
		entryBuilder: entry.NewBuilder(clock),
		slotBuilder:  slot.NewBuilder(0, startHash),
		lastSlotHash: startHash,
	}
}

// Bank exposes the coordinator's bank for read-only balance queries. The
// returned pointer's own methods (Balance, Balances) are already
// concurrency-safe; callers must not bypass the coordinator to mutate it.
func (c *Coordinator) Bank() *database.Bank {
	return c.bank
}

// RecentHash returns the current PoH hash, suitable for use as a client's
// next recent_hash.
func (c *Coordinator) RecentHash() hash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.clock.Snapshot().Hash
}

// Ledger returns a snapshot copy of the retained sealed slots: every slot
// so far, or only the most recent Config.MaxSlots when MaxSlots is set.
func (c *Coordinator) Ledger() []slot.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]slot.Slot, len(c.ledger))
	copy(out, c.ledger)
	return out
}

// AdmitTransfer validates t against the current bank/window/seen state and,
// on success, applies it to the bank, records its signature as seen, and
// queues it into the entry under construction. All of this happens under
// one lock so a concurrent Tick or second AdmitTransfer never observes a
// half-applied transfer.
func (c *Coordinator) AdmitTransfer(t database.Transfer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checker.Check(t); err != nil {
		return err
	}

	if err := c.bank.ApplyTransfer(t.From, t.To, t.Amount); err != nil {
		return err
	}

	c.seen.AddIfNew(t.Sig, c.nextSlotNum)
	c.entryBuilder.AddTransfer(t)
	return nil
}

// AdmitAirdrop credits amount to pk unconditionally and queues a System
// record into the entry under construction. amount == 0 is rejected.
func (c *Coordinator) AdmitAirdrop(pk signature.PublicKey, amount database.Amount) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount == 0 {
		return txcheck.ErrZeroAmount
	}

	c.bank.Airdrop(pk, amount)
	c.entryBuilder.AddAirdrop(database.Airdrop{To: pk, Amount: amount})
	return nil
}

// Tick records one PoH tick, then seals an entry (and possibly a slot) once
// the configured tick thresholds are reached. The clock itself advances
// only when an entry seals, by that entry's accumulated tick count, so
// RecentHash does not change between seals. Tick is meant to be called on
// a fixed interval by the leader's ticker goroutine.
func (c *Coordinator) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entryBuilder.Tick()
	c.ticksSinceEntry++
	c.ticksInSlot++

	if c.ticksSinceEntry >= c.cfg.EntryTicks {
		c.sealEntryLocked()
	}
}

// sealEntryLocked must be called with mu held.
func (c *Coordinator) sealEntryLocked() {
	e := c.entryBuilder.Seal()
	c.window.Add(e.Hash, c.nextSlotNum)
	if oldest, ok := c.window.OldestSlot(); ok {
		c.seen.EvictBefore(oldest)
	}
	c.slotBuilder.Append(e)
	c.ticksSinceEntry = 0

	if c.ticksInSlot >= c.cfg.SlotTicks {
		c.sealSlotLocked()
	}
}

// sealSlotLocked must be called with mu held.
func (c *Coordinator) sealSlotLocked() {
	s := c.slotBuilder.Seal()
	c.ledger = append(c.ledger, s)

	if c.cfg.MaxSlots > 0 && len(c.ledger) > c.cfg.MaxSlots {
		c.ledger = c.ledger[len(c.ledger)-c.cfg.MaxSlots:]
	}

	c.lastSlotHash = s.LastHash
	c.nextSlotNum++
	c.ticksInSlot = 0
	c.slotBuilder = slot.NewBuilder(c.nextSlotNum, c.lastSlotHash)
}
