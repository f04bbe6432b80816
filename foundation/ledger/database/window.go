package database

import (
	"container/list"
	"sync"

	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
)

// DefaultRecentHashWindowSize is the suggested window size (spec §8: "150
// is suggested by analogy to Solana").
const DefaultRecentHashWindowSize = 150

// windowEntry pairs a recent hash with the slot number that introduced it,
// so SeenSignatures can age out in lockstep with the window's own eviction.
type windowEntry struct {
	Hash hash.Hash
	Slot uint64
}

// RecentHashWindow is a bounded, ordered set of the most recently admitted
// PoH hashes. A transaction's recent_hash must be a member to be accepted;
// this bounds how stale a transaction may be and lets the window evict
// oldest-first once full.
type RecentHashWindow struct {
	mu       sync.RWMutex
	size     int
	order    *list.List
	position map[hash.Hash]*list.Element
}

// NewRecentHashWindow constructs a window holding up to size hashes. size
// must be at least 1.
func NewRecentHashWindow(size int) *RecentHashWindow {
	if size < 1 {
		size = 1
	}
	return &RecentHashWindow{
		size:     size,
		order:    list.New(),
		position: make(map[hash.Hash]*list.Element),
	}
}

// Add inserts h, introduced at slotNum, as the most recently seen hash,
// evicting the oldest entry if the window is full. Re-adding a hash already
// present is a no-op: insertion order (and introducing slot) of the
// original entry is kept, matching "evicts oldest-first" semantics rather
// than LRU touch semantics.
func (w *RecentHashWindow) Add(h hash.Hash, slotNum uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.position[h]; ok {
		return
	}

	elem := w.order.PushBack(windowEntry{Hash: h, Slot: slotNum})
	w.position[h] = elem

	if w.order.Len() > w.size {
		oldest := w.order.Front()
		w.order.Remove(oldest)
		delete(w.position, oldest.Value.(windowEntry).Hash)
	}
}

// Contains reports whether h is a member of the window.
func (w *RecentHashWindow) Contains(h hash.Hash) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.position[h]
	return ok
}

// OldestSlot reports the slot number that introduced the window's oldest
// surviving entry. ok is false for an empty window.
func (w *RecentHashWindow) OldestSlot() (slotNum uint64, ok bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	front := w.order.Front()
	if front == nil {
		return 0, false
	}
	return front.Value.(windowEntry).Slot, true
}

// Clone returns a deep copy, independent of w for further mutation. Used to
// stage a slot's admission effects before committing them.
func (w *RecentHashWindow) Clone() *RecentHashWindow {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := &RecentHashWindow{
		size:     w.size,
		order:    list.New(),
		position: make(map[hash.Hash]*list.Element, len(w.position)),
	}

	for e := w.order.Front(); e != nil; e = e.Next() {
		we := e.Value.(windowEntry)
		elem := out.order.PushBack(we)
		out.position[we.Hash] = elem
	}

	return out
}

// =============================================================================

// SeenSignatures tracks signatures admitted within the current recent-hash
// window, rejecting a duplicate outright (anti-replay). Each signature
// records the slot that introduced it so EvictBefore can age entries out in
// lockstep with the RecentHashWindow's own eviction, bounding memory in a
// continuously-running leader or validator.
type SeenSignatures struct {
	mu   sync.Mutex
	seen map[[64]byte]uint64
}

// NewSeenSignatures constructs an empty signature set.
func NewSeenSignatures() *SeenSignatures {
	return &SeenSignatures{seen: make(map[[64]byte]uint64)}
}

// AddIfNew records sig as introduced at slotNum and returns true, or
// returns false without modification if sig was already present.
func (s *SeenSignatures) AddIfNew(sig [64]byte, slotNum uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.seen[sig]; ok {
		return false
	}
	s.seen[sig] = slotNum
	return true
}

// Contains reports whether sig has already been admitted.
func (s *SeenSignatures) Contains(sig [64]byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.seen[sig]
	return ok
}

// EvictBefore discards every signature introduced at a slot earlier than
// slotNum. Callers key slotNum off the recent-hash window's own
// OldestSlot, so a signature is never evicted while the recent_hash that
// could still vouch for a transaction naming it remains in the window.
func (s *SeenSignatures) EvictBefore(slotNum uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for sig, introduced := range s.seen {
		if introduced < slotNum {
			delete(s.seen, sig)
		}
	}
}

// Clone returns a deep copy, independent of s for further mutation. Used to
// stage a slot's admission effects before committing them.
func (s *SeenSignatures) Clone() *SeenSignatures {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := &SeenSignatures{seen: make(map[[64]byte]uint64, len(s.seen))}
	for sig, introduced := range s.seen {
		out.seen[sig] = introduced
	}
	return out
}
