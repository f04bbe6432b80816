package database

import (
	"errors"
	"sync"

	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
)

// ErrInsufficientFunds is returned when From's balance cannot cover Amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// MintPublicKey is the well-known sentinel key naming the logical source of
// airdrop credits (all bytes 0xff). Nothing in the ledger reads it: airdrops
// are recorded as Airdrop values with no From side, and Balances does not
// report a mint account.
var MintPublicKey signature.PublicKey

func init() {
	for i := range MintPublicKey {
		MintPublicKey[i] = 0xff
	}
}

// Bank holds every account's balance. Construct one with NewBank; the zero
// value has no balance map and panics on the first credit.
type Bank struct {
	mu       sync.RWMutex
	balances map[signature.PublicKey]Amount
}

// NewBank constructs an empty Bank.
func NewBank() *Bank {
	return &Bank{
		balances: make(map[signature.PublicKey]Amount),
	}
}

// Balance returns pk's current balance, 0 if the account has never been
// credited.
func (b *Bank) Balance(pk signature.PublicKey) Amount {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.balances[pk]
}

// Balances returns a snapshot copy of every account balance, including
// accounts whose balance has dropped to zero, keyed by the account's hex
// string for stable JSON rendering.
func (b *Bank) Balances() map[string]Amount {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]Amount, len(b.balances))
	for pk, amt := range b.balances {
		out[pk.String()] = amt
	}
	return out
}

// Airdrop credits amount to pk unconditionally. Callers are responsible for
// rejecting amount == 0 before calling.
func (b *Bank) Airdrop(pk signature.PublicKey, amount Amount) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.balances[pk] += amount
}

// Clone returns a deep copy, independent of b for further mutation. Used to
// stage a slot's admission effects before committing them.
func (b *Bank) Clone() *Bank {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := &Bank{
		balances: make(map[signature.PublicKey]Amount, len(b.balances)),
	}
	for pk, amt := range b.balances {
		out.balances[pk] = amt
	}
	return out
}

// ApplyTransfer debits from and credits to by amount as a single atomic
// step. It fails with ErrInsufficientFunds, leaving both balances
// unchanged, if from cannot cover amount. from == to is accepted as a
// no-op: the balance is read once, found sufficient, and left untouched.
func (b *Bank) ApplyTransfer(from, to signature.PublicKey, amount Amount) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if from == to {
		if b.balances[from] < amount {
			return ErrInsufficientFunds
		}
		return nil
	}

	if b.balances[from] < amount {
		return ErrInsufficientFunds
	}

	b.balances[from] -= amount
	b.balances[to] += amount
	return nil
}
