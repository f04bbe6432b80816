package signature_test

import (
	"crypto/ed25519"
	"strings"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generating key: %s", err)
	}

	var from signature.PublicKey
	copy(from[:], pub)

	toPub, _, _ := ed25519.GenerateKey(nil)
	var to signature.PublicKey
	copy(to[:], toPub)

	s := signature.Signable{
		From:       from,
		To:         to,
		Amount:     100,
		RecentHash: hash.Zero,
	}

	sig := signature.Sign(priv, s)

	if err := signature.Verify(from, s, sig); err != nil {
		t.Fatalf("verifying valid signature: %s", err)
	}
}

func TestVerifyRejectsTamperedAmount(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	var from signature.PublicKey
	copy(from[:], pub)

	toPub, _, _ := ed25519.GenerateKey(nil)
	var to signature.PublicKey
	copy(to[:], toPub)

	s := signature.Signable{From: from, To: to, Amount: 100, RecentHash: hash.Zero}
	sig := signature.Sign(priv, s)

	tampered := s
	tampered.Amount = 999

	if err := signature.Verify(from, tampered, sig); err == nil {
		t.Fatal("expected verification to fail for a tampered amount")
	}
}

func TestCanonicalMessageFormat(t *testing.T) {
	var from, to signature.PublicKey
	for i := range from {
		from[i] = byte(i)
	}
	for i := range to {
		to[i] = byte(i + 1)
	}

	s := signature.Signable{From: from, To: to, Amount: 42, RecentHash: hash.Zero}
	msg := string(signature.CanonicalMessage(s))

	want := `{"from":"` + from.String() + `","to":"` + to.String() + `","amount":42,"recent_hash":"` + hash.Zero.String() + `"}`
	if msg != want {
		t.Fatalf("got canonical message %q, want %q", msg, want)
	}
}

func TestPublicKeyParseRoundTrip(t *testing.T) {
	pub, _, _ := ed25519.GenerateKey(nil)
	var pk signature.PublicKey
	copy(pk[:], pub)

	parsed, err := signature.ParsePublicKey(pk.String())
	if err != nil {
		t.Fatalf("parsing: %s", err)
	}
	if parsed != pk {
		t.Fatalf("round trip mismatch: got %s, want %s", parsed, pk)
	}

	if _, err := signature.ParsePublicKey(strings.ToUpper(pk.String())); err != nil {
		t.Fatalf("parsing uppercase: %s", err)
	}
}

func TestParseSignatureRejectsWrongLength(t *testing.T) {
	if _, err := signature.ParseSignature("00"); err == nil {
		t.Fatal("expected an error for a short hex string")
	}
}
