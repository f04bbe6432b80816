package genesis_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/ledger/genesis"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.json")
	if err := os.WriteFile(path, []byte(`{"date":"2026-01-01T00:00:00Z","balances":{}}`), 0o600); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	g, err := genesis.Load(path)
	if err != nil {
		t.Fatalf("loading genesis: %s", err)
	}

	if g.PoHSeed != genesis.DefaultPoHSeed {
		t.Fatalf("got seed %q, want default %q", g.PoHSeed, genesis.DefaultPoHSeed)
	}
	if g.RecentHashWindowSize != genesis.DefaultRecentHashWindowSize {
		t.Fatalf("got window size %d, want default %d", g.RecentHashWindowSize, genesis.DefaultRecentHashWindowSize)
	}
}

func TestLoadPreservesExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.json")
	content := `{"date":"2026-01-01T00:00:00Z","poh_seed":"custom-seed","recent_hash_window_size":32,"balances":{"aa":10}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}

	g, err := genesis.Load(path)
	if err != nil {
		t.Fatalf("loading genesis: %s", err)
	}

	if g.PoHSeed != "custom-seed" {
		t.Fatalf("got seed %q, want custom-seed", g.PoHSeed)
	}
	if g.RecentHashWindowSize != 32 {
		t.Fatalf("got window size %d, want 32", g.RecentHashWindowSize)
	}
	if g.Balances["aa"] != 10 {
		t.Fatalf("got balance %d, want 10", g.Balances["aa"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := genesis.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing genesis file")
	}
}
