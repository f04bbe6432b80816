package database

import (
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
)

// Amount is the ledger's unit of value. It never goes negative.
type Amount = uint64

// Transfer represents a request to move Amount from From to To, authorized
// by Sig over the canonical message built from the other four fields.
// From == To is accepted (and is a no-op once applied); Amount == 0 is
// rejected by the transaction checker before the transfer reaches the bank.
type Transfer struct {
	From       signature.PublicKey `json:"from"`
	To         signature.PublicKey `json:"to"`
	Amount     Amount              `json:"amount"`
	RecentHash hash.Hash           `json:"recent_hash"`
	Sig        signature.Signature `json:"sig"`
}

// Signable adapts a Transfer into the shape signature.CanonicalMessage
// expects.
func (t Transfer) Signable() signature.Signable {
	return signature.Signable{
		From:       t.From,
		To:         t.To,
		Amount:     t.Amount,
		RecentHash: t.RecentHash,
	}
}

// Airdrop represents a system-originated credit to To. It carries no
// signature: there is no payer account to authenticate against, only the
// ledger's own authority to mint. See MintPublicKey.
type Airdrop struct {
	To     signature.PublicKey `json:"to"`
	Amount Amount              `json:"amount"`
}
