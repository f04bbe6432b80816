package leader_test

import (
	"crypto/ed25519"
	"errors"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/genesis"
	"github.com/ardanlabs/pohledger/foundation/ledger/leader"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/ardanlabs/pohledger/foundation/ledger/txcheck"
)

func newCoordinator() *leader.Coordinator {
	g := genesis.Genesis{PoHSeed: "test-seed", RecentHashWindowSize: 150}
	return leader.New(g, leader.Config{EntryTicks: 2, SlotTicks: 4, MaxSlots: 10})
}

func TestAdmitAirdropCreditsBank(t *testing.T) {
	c := newCoordinator()
	pub, _, _ := ed25519.GenerateKey(nil)
	var pk signature.PublicKey
	copy(pk[:], pub)

	if err := c.AdmitAirdrop(pk, 1000); err != nil {
		t.Fatalf("airdrop: %s", err)
	}
	if got := c.Bank().Balance(pk); got != 1000 {
		t.Fatalf("got balance %d, want 1000", got)
	}
}

func TestAdmitTransferEndToEnd(t *testing.T) {
	c := newCoordinator()

	fromPub, fromPriv, _ := ed25519.GenerateKey(nil)
	toPub, _, _ := ed25519.GenerateKey(nil)
	var from, to signature.PublicKey
	copy(from[:], fromPub)
	copy(to[:], toPub)

	if err := c.AdmitAirdrop(from, 1000); err != nil {
		t.Fatalf("airdrop: %s", err)
	}

	recent := c.RecentHash()
	tr := database.Transfer{From: from, To: to, Amount: 10, RecentHash: recent}
	tr.Sig = signature.Sign(fromPriv, tr.Signable())

	if err := c.AdmitTransfer(tr); err != nil {
		t.Fatalf("transfer: %s", err)
	}

	if got := c.Bank().Balance(from); got != 990 {
		t.Fatalf("got sender balance %d, want 990", got)
	}
	if got := c.Bank().Balance(to); got != 10 {
		t.Fatalf("got receiver balance %d, want 10", got)
	}
}

func TestAdmitTransferRejectsDuplicateSignature(t *testing.T) {
	c := newCoordinator()

	fromPub, fromPriv, _ := ed25519.GenerateKey(nil)
	toPub, _, _ := ed25519.GenerateKey(nil)
	var from, to signature.PublicKey
	copy(from[:], fromPub)
	copy(to[:], toPub)

	c.AdmitAirdrop(from, 1000)

	recent := c.RecentHash()
	tr := database.Transfer{From: from, To: to, Amount: 10, RecentHash: recent}
	tr.Sig = signature.Sign(fromPriv, tr.Signable())

	if err := c.AdmitTransfer(tr); err != nil {
		t.Fatalf("first admission: %s", err)
	}

	err := c.AdmitTransfer(tr)
	if !errors.Is(err, txcheck.ErrDuplicateSignature) {
		t.Fatalf("got %v, want ErrDuplicateSignature", err)
	}
}

func TestTickSealsEntryAndSlotOnThreshold(t *testing.T) {
	c := newCoordinator()

	for i := 0; i < 4; i++ {
		c.Tick()
	}

	ledger := c.Ledger()
	if len(ledger) != 1 {
		t.Fatalf("got %d sealed slots, want 1", len(ledger))
	}
	if len(ledger[0].Entries) != 2 {
		t.Fatalf("got %d entries in the sealed slot, want 2 (SlotTicks=4, EntryTicks=2)", len(ledger[0].Entries))
	}
}

func TestTickDoesNotSealBeforeThreshold(t *testing.T) {
	c := newCoordinator()

	c.Tick()

	if len(c.Ledger()) != 0 {
		t.Fatal("expected no sealed slot before EntryTicks/SlotTicks are reached")
	}
}
