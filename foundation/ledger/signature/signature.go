// Package signature provides helper functions for handling the ledger's
// Ed25519 signature needs: canonical message construction, signing, and
// verification.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
)

// PublicKey is a 32-byte Ed25519 verification key. Wire form is 64 hex
// characters.
type PublicKey [ed25519.PublicKeySize]byte

// Signature is a 64-byte Ed25519 signature. Wire form is 128 hex characters.
type Signature [ed25519.SignatureSize]byte

// ZeroPublicKey is the all-zero key, used by callers that need a sentinel
// "no account" value (never a valid signer).
var ZeroPublicKey PublicKey

// String renders the public key as lowercase hex.
func (pk PublicKey) String() string {
	return hexutil.Encode(pk[:])[2:]
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	raw, err := decodeHex(string(text), ed25519.PublicKeySize)
	if err != nil {
		return fmt.Errorf("public key: %w", err)
	}
	copy(pk[:], raw)
	return nil
}

// ParsePublicKey decodes a 64 character hex string into a PublicKey.
func ParsePublicKey(s string) (PublicKey, error) {
	raw, err := decodeHex(s, ed25519.PublicKeySize)
	if err != nil {
		return PublicKey{}, fmt.Errorf("public key: %w", err)
	}
	var pk PublicKey
	copy(pk[:], raw)
	return pk, nil
}

// String renders the signature as lowercase hex.
func (s Signature) String() string {
	return hexutil.Encode(s[:])[2:]
}

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(text []byte) error {
	raw, err := decodeHex(string(text), ed25519.SignatureSize)
	if err != nil {
		return fmt.Errorf("signature: %w", err)
	}
	copy(s[:], raw)
	return nil
}

// ParseSignature decodes a 128 character hex string into a Signature.
func ParseSignature(s string) (Signature, error) {
	raw, err := decodeHex(s, ed25519.SignatureSize)
	if err != nil {
		return Signature{}, fmt.Errorf("signature: %w", err)
	}
	var sig Signature
	copy(sig[:], raw)
	return sig, nil
}

// =============================================================================

// Signable is the minimal shape CanonicalMessage needs from a Transfer. The
// signature package does not import the transfer type directly so that the
// database package (which owns Transfer) can depend on signature instead of
// the other way around.
type Signable struct {
	From       PublicKey
	To         PublicKey
	Amount     uint64
	RecentHash hash.Hash
}

// CanonicalMessage builds the exact byte string signed by From. Do not rely
// on any JSON library's key ordering here — the leader and every validator
// must reconstruct this string byte-for-byte, so it is built by
// concatenation rather than json.Marshal.
func CanonicalMessage(t Signable) []byte {
	var buf []byte
	buf = append(buf, `{"from":"`...)
	buf = append(buf, t.From.String()...)
	buf = append(buf, `","to":"`...)
	buf = append(buf, t.To.String()...)
	buf = append(buf, `","amount":`...)
	buf = append(buf, strconv.FormatUint(t.Amount, 10)...)
	buf = append(buf, `,"recent_hash":"`...)
	buf = append(buf, t.RecentHash.String()...)
	buf = append(buf, `"}`...)
	return buf
}

// Sign signs t's canonical message with priv.
func Sign(priv ed25519.PrivateKey, t Signable) Signature {
	raw := ed25519.Sign(priv, CanonicalMessage(t))
	var sig Signature
	copy(sig[:], raw)
	return sig
}

// Verify checks sig is a valid Ed25519 signature by pub over t's canonical
// message.
func Verify(pub PublicKey, t Signable, sig Signature) error {
	if !ed25519.Verify(ed25519.PublicKey(pub[:]), CanonicalMessage(t), sig[:]) {
		return errors.New("invalid signature")
	}
	return nil
}

// =============================================================================

func decodeHex(s string, wantLen int) ([]byte, error) {
	s = trim0x(s)

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.New("invalid hex encoding")
	}
	if len(raw) != wantLen {
		return nil, fmt.Errorf("wrong length, want %d bytes, got %d", wantLen, len(raw))
	}
	return raw, nil
}

func trim0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
