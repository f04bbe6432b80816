// Package hash provides the deterministic hashing primitive the ledger's
// proof-of-history chain is built on.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Size is the length in bytes of a Hash.
const Size = 32

// Hash is a fixed 32-byte opaque value. The wire form is 64 lowercase
// hexadecimal characters.
type Hash [Size]byte

// Zero is sha256("genesis"): the PoH starting hash when the genesis file
// uses the default seed. The leader and validators derive their starting
// hash from the configured seed, not from this value.
var Zero = New([]byte("genesis"))

// New hashes data with SHA-256.
func New(data []byte) Hash {
	return sha256.Sum256(data)
}

// Append hashes the concatenation of h and data. This is the building block
// for both ticking (hashing h alone, data nil) and mixin (hashing h with a
// payload).
func Append(h Hash, data []byte) Hash {
	buf := make([]byte, 0, Size+len(data))
	buf = append(buf, h[:]...)
	buf = append(buf, data...)
	return New(buf)
}

// String renders the hash as lowercase hex. The wire format calls for bare
// hex (no "0x"), so hexutil.Encode's output has its prefix trimmed.
func (h Hash) String() string {
	return hexutil.Encode(h[:])[2:]
}

// MarshalText implements encoding.TextMarshaler so Hash values serialize as
// their hex string inside JSON documents.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Hex decoding is
// case-insensitive on parse per the wire format.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Parse decodes a 64 character hex string into a Hash. An optional "0x"
// prefix, as hexutil uses elsewhere in this module, is tolerated.
func Parse(s string) (Hash, error) {
	s = trim0x(s)

	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, errors.New("hash: invalid hex encoding")
	}
	if len(raw) != Size {
		return Hash{}, errors.New("hash: wrong length, want 32 bytes")
	}

	var h Hash
	copy(h[:], raw)
	return h, nil
}

func trim0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
