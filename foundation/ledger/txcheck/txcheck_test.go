package txcheck_test

import (
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/ardanlabs/pohledger/foundation/ledger/txcheck"
)

type fixture struct {
	checker *txcheck.Checker
	bank    *database.Bank
	window  *database.RecentHashWindow
	seen    *database.SeenSignatures
	from    signature.PublicKey
	priv    ed25519.PrivateKey
	to      signature.PublicKey
	recent  hash.Hash
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generating key: %s", err)
	}
	var from signature.PublicKey
	copy(from[:], pub)

	toPub, _, _ := ed25519.GenerateKey(nil)
	var to signature.PublicKey
	copy(to[:], toPub)

	bank := database.NewBank()
	bank.Airdrop(from, 1000)

	window := database.NewRecentHashWindow(150)
	recent := hash.New([]byte("recent"))
	window.Add(recent, 0)

	seen := database.NewSeenSignatures()

	return fixture{
		checker: txcheck.New(bank, window, seen),
		bank:    bank,
		window:  window,
		seen:    seen,
		from:    from,
		priv:    priv,
		to:      to,
		recent:  recent,
	}
}

func (f fixture) validTransfer(amount uint64) database.Transfer {
	tr := database.Transfer{From: f.from, To: f.to, Amount: amount, RecentHash: f.recent}
	tr.Sig = signature.Sign(f.priv, tr.Signable())
	return tr
}

func TestCheckAcceptsValidTransfer(t *testing.T) {
	f := newFixture(t)
	if err := f.checker.Check(f.validTransfer(10)); err != nil {
		t.Fatalf("expected valid transfer to pass, got %s", err)
	}
}

func TestCheckRejectsZeroAmount(t *testing.T) {
	f := newFixture(t)
	err := f.checker.Check(f.validTransfer(0))
	if !errors.Is(err, txcheck.ErrZeroAmount) {
		t.Fatalf("got %v, want ErrZeroAmount", err)
	}
}

func TestCheckRejectsBadSignature(t *testing.T) {
	f := newFixture(t)
	tr := f.validTransfer(10)
	tr.Amount = 999 // invalidates the signature without re-signing

	err := f.checker.Check(tr)
	if !errors.Is(err, txcheck.ErrBadSignature) {
		t.Fatalf("got %v, want ErrBadSignature", err)
	}
}

func TestCheckRejectsUnknownRecentHash(t *testing.T) {
	f := newFixture(t)
	tr := database.Transfer{From: f.from, To: f.to, Amount: 10, RecentHash: hash.New([]byte("unseen"))}
	tr.Sig = signature.Sign(f.priv, tr.Signable())

	err := f.checker.Check(tr)
	if !errors.Is(err, txcheck.ErrUnknownRecentHash) {
		t.Fatalf("got %v, want ErrUnknownRecentHash", err)
	}
}

func TestCheckRejectsDuplicateSignature(t *testing.T) {
	f := newFixture(t)
	tr := f.validTransfer(10)

	if !f.seen.AddIfNew(tr.Sig, 0) {
		t.Fatal("setup: first admission should succeed")
	}

	err := f.checker.Check(tr)
	if !errors.Is(err, txcheck.ErrDuplicateSignature) {
		t.Fatalf("got %v, want ErrDuplicateSignature", err)
	}
}

func TestCheckRejectsInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	err := f.checker.Check(f.validTransfer(10_000))
	if !errors.Is(err, txcheck.ErrInsufficientFunds) {
		t.Fatalf("got %v, want ErrInsufficientFunds", err)
	}
}
