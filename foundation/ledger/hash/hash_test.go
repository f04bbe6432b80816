package hash_test

import (
	"strings"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
)

func TestNewIsDeterministic(t *testing.T) {
	h1 := hash.New([]byte("same input"))
	h2 := hash.New([]byte("same input"))

	if h1 != h2 {
		t.Fatalf("got different hashes for the same input: %s vs %s", h1, h2)
	}
}

func TestStringRoundTrip(t *testing.T) {
	h := hash.New([]byte("round trip"))

	s := h.String()
	if len(s) != 64 {
		t.Fatalf("got wire length %d, want 64", len(s))
	}

	parsed, err := hash.Parse(s)
	if err != nil {
		t.Fatalf("parsing hex: %s", err)
	}
	if parsed != h {
		t.Fatalf("round trip mismatch: got %s, want %s", parsed, h)
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	h := hash.New([]byte("case"))

	upper := strings.ToUpper(h.String())
	parsed, err := hash.Parse(upper)
	if err != nil {
		t.Fatalf("parsing uppercase hex: %s", err)
	}
	if parsed != h {
		t.Fatalf("got %s, want %s", parsed, h)
	}
}

func TestParseRejectsWrongLength(t *testing.T) {
	if _, err := hash.Parse("00"); err == nil {
		t.Fatal("expected an error for a short hex string")
	}
}

func TestZeroIsStable(t *testing.T) {
	if hash.Zero != hash.New([]byte("genesis")) {
		t.Fatal("Zero must equal sha256(\"genesis\")")
	}
}
