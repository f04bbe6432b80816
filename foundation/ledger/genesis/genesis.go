// Package genesis maintains access to the genesis file: the handful of
// values that must be identical across the leader and every validator
// before either one ticks a single hash.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file. Every field here must match
// byte-for-byte between the leader and a validator, or the two will never
// converge: the PoH seed fixes the starting hash, and the window size
// fixes how stale a recent_hash may be.
type Genesis struct {
	Date                 time.Time         `json:"date"`
	PoHSeed              string            `json:"poh_seed"`               // Seed string the PoH clock is started from.
	RecentHashWindowSize int               `json:"recent_hash_window_size"` // Size N of the RecentHashWindow.
	Balances             map[string]uint64 `json:"balances"`                // Optional initial airdrops, keyed by hex public key.
}

// Load opens and parses the genesis file at path.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var g Genesis
	if err := json.Unmarshal(content, &g); err != nil {
		return Genesis{}, err
	}

	if g.RecentHashWindowSize <= 0 {
		g.RecentHashWindowSize = DefaultRecentHashWindowSize
	}
	if g.PoHSeed == "" {
		g.PoHSeed = DefaultPoHSeed
	}

	return g, nil
}

// DefaultPoHSeed is used when a genesis file omits poh_seed.
const DefaultPoHSeed = "genesis"

// DefaultRecentHashWindowSize mirrors database.DefaultRecentHashWindowSize;
// duplicated here (rather than imported) to keep genesis free of a
// dependency on database, since database's Bank is seeded FROM genesis, not
// the other way around.
const DefaultRecentHashWindowSize = 150
