// Package worker implements the validator's background sync loop: on a
// fixed interval it pulls the leader's ledger and replays any slots it
// hasn't seen yet.
package worker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ardanlabs/pohledger/foundation/ledger/replay"
	"github.com/ardanlabs/pohledger/foundation/ledger/slot"
)

// EventHandler receives progress messages the same way the leader's event
// broadcaster does, so sync activity can be logged and streamed.
type EventHandler func(v string, args ...any)

// Worker polls a leader host for new slots and feeds them through a
// Replayer, one at a time, in order.
type Worker struct {
	leaderHost string
	replayer   *replay.Replayer
	interval   time.Duration
	client     *http.Client
	evHandler  EventHandler

	wg   sync.WaitGroup
	shut chan struct{}
}

// Run constructs a Worker and starts its background sync goroutine.
func Run(leaderHost string, replayer *replay.Replayer, interval time.Duration, evHandler EventHandler) *Worker {
	w := Worker{
		leaderHost: leaderHost,
		replayer:   replayer,
		interval:   interval,
		client:     &http.Client{Timeout: 5 * time.Second},
		evHandler:  evHandler,
		shut:       make(chan struct{}),
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.syncOperations()
	}()

	return &w
}

// Shutdown terminates the sync goroutine and waits for it to exit.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	close(w.shut)
	w.wg.Wait()
}

func (w *Worker) syncOperations() {
	w.evHandler("worker: sync: started")
	defer w.evHandler("worker: sync: completed")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Sync()

		case <-w.shut:
			return
		}
	}
}

// Sync retrieves the leader's full ledger and replays every slot this
// validator has not yet ingested, in order. A mismatch on any slot stops
// the sync for this tick; the next tick retries from where it left off.
//
// The leader retains only its last MaxSlots sealed slots (leader.Config).
// A validator that starts after the leader has already trimmed past the
// slot this validator expects next can never converge from genesis: the
// slots that would bridge the gap are gone. That is a deployment ordering
// problem, not a forged or corrupted slot, so it is reported distinctly
// from a same-slot IngestMismatch instead of being retried forever as one.
func (w *Worker) Sync() {
	slots, err := w.fetchLedger()
	if err != nil {
		w.evHandler("worker: sync: fetchLedger: ERROR: %s", err)
		return
	}

	if len(slots) > 0 && slots[0].Slot > w.replayer.NextSlot() {
		w.evHandler("worker: sync: leader has trimmed past slot[%d]: this validator expects slot[%d]: cannot converge from genesis", slots[0].Slot, w.replayer.NextSlot())
		return
	}

	for _, s := range slots {
		if s.Slot < w.replayer.NextSlot() {
			continue
		}
		if err := w.replayer.Ingest(s); err != nil {
			w.evHandler("worker: sync: ingest: slot[%d]: ERROR: %s", s.Slot, err)
			return
		}
	}
}

func (w *Worker) fetchLedger() ([]slot.Slot, error) {
	url := fmt.Sprintf("http://%s/v1/ledger", w.leaderHost)

	resp, err := w.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("requesting ledger: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ledger request returned status %d", resp.StatusCode)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("reading ledger response: %w", err)
	}

	var slots []slot.Slot
	if err := json.Unmarshal(buf.Bytes(), &slots); err != nil {
		return nil, fmt.Errorf("decoding ledger response: %w", err)
	}

	return slots, nil
}
