package database_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
)

func key(b byte) signature.PublicKey {
	var pk signature.PublicKey
	pk[0] = b
	return pk
}

func TestAirdropCreditsBalance(t *testing.T) {
	bank := database.NewBank()
	a := key(1)

	bank.Airdrop(a, 1000)

	if got := bank.Balance(a); got != 1000 {
		t.Fatalf("got balance %d, want 1000", got)
	}
}

func TestApplyTransferMovesFunds(t *testing.T) {
	bank := database.NewBank()
	a, b := key(1), key(2)

	bank.Airdrop(a, 1000)

	if err := bank.ApplyTransfer(a, b, 10); err != nil {
		t.Fatalf("applying transfer: %s", err)
	}

	if got := bank.Balance(a); got != 990 {
		t.Fatalf("got sender balance %d, want 990", got)
	}
	if got := bank.Balance(b); got != 10 {
		t.Fatalf("got receiver balance %d, want 10", got)
	}
}

func TestApplyTransferRejectsInsufficientFunds(t *testing.T) {
	bank := database.NewBank()
	a, b := key(1), key(2)

	bank.Airdrop(a, 5)

	err := bank.ApplyTransfer(a, b, 10)
	if !errors.Is(err, database.ErrInsufficientFunds) {
		t.Fatalf("got error %v, want ErrInsufficientFunds", err)
	}

	if got := bank.Balance(a); got != 5 {
		t.Fatalf("balance must be unchanged on failure, got %d", got)
	}
}

func TestApplyTransferSelfIsNoOp(t *testing.T) {
	bank := database.NewBank()
	a := key(1)
	bank.Airdrop(a, 100)

	if err := bank.ApplyTransfer(a, a, 50); err != nil {
		t.Fatalf("self-transfer should succeed: %s", err)
	}
	if got := bank.Balance(a); got != 100 {
		t.Fatalf("got balance %d, want 100 unchanged", got)
	}
}

func TestApplyTransferSelfInsufficientFails(t *testing.T) {
	bank := database.NewBank()
	a := key(1)
	bank.Airdrop(a, 10)

	err := bank.ApplyTransfer(a, a, 50)
	if !errors.Is(err, database.ErrInsufficientFunds) {
		t.Fatalf("got error %v, want ErrInsufficientFunds", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	bank := database.NewBank()
	a := key(1)
	bank.Airdrop(a, 100)

	clone := bank.Clone()
	clone.Airdrop(a, 50)

	if got := bank.Balance(a); got != 100 {
		t.Fatalf("expected mutating the clone to leave the original untouched, got %d", got)
	}
	if got := clone.Balance(a); got != 150 {
		t.Fatalf("got clone balance %d, want 150", got)
	}
}

func TestBalancesSnapshotIsKeyedByHex(t *testing.T) {
	bank := database.NewBank()
	a := key(1)
	bank.Airdrop(a, 42)

	snap := bank.Balances()
	if snap[a.String()] != 42 {
		t.Fatalf("got %d, want 42 for account %s", snap[a.String()], a)
	}
}
