// Package txcheck runs the admission checks every Transfer must pass before
// it is embedded in an entry: amount validity, signature authenticity,
// recent-hash freshness, anti-replay, and balance sufficiency.
package txcheck

import (
	"errors"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
)

// Sentinel errors, one per admission rule. Callers map these to transport
// status codes; none of them wrap another so errors.Is comparisons stay
// exact.
var (
	ErrZeroAmount         = errors.New("amount must be greater than zero")
	ErrBadSignature       = errors.New("signature does not verify")
	ErrUnknownRecentHash  = errors.New("recent hash not in window")
	ErrDuplicateSignature = errors.New("signature already admitted")
	ErrInsufficientFunds  = database.ErrInsufficientFunds
)

// Checker runs the full admission pipeline against a Bank, a
// RecentHashWindow, and a SeenSignatures set. It does not mutate the
// SeenSignatures set on success — callers (the leader's single-writer
// admission path) decide when a passing check becomes a durable commit.
type Checker struct {
	bank   *database.Bank
	window *database.RecentHashWindow
	seen   *database.SeenSignatures
}

// New constructs a Checker over the given consistency-domain primitives.
func New(bank *database.Bank, window *database.RecentHashWindow, seen *database.SeenSignatures) *Checker {
	return &Checker{bank: bank, window: window, seen: seen}
}

// Check runs, in order: amount > 0, signature verification, recent-hash
// membership, anti-replay, and balance sufficiency. The order matters for
// spec conformance: a malformed amount or bad signature is rejected before
// ever touching the recent-hash window or the signature set, so a
// resubmission with a corrected amount/signature is never blocked by a
// stale duplicate-signature false positive from the broken attempt.
func (c *Checker) Check(t database.Transfer) error {
	if t.Amount == 0 {
		return ErrZeroAmount
	}

	if err := signature.Verify(t.From, t.Signable(), t.Sig); err != nil {
		return ErrBadSignature
	}

	if !c.window.Contains(t.RecentHash) {
		return ErrUnknownRecentHash
	}

	if c.seen.Contains(t.Sig) {
		return ErrDuplicateSignature
	}

	if c.bank.Balance(t.From) < t.Amount {
		return ErrInsufficientFunds
	}

	return nil
}
