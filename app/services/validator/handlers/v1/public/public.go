// Package public maintains the group of handlers for public access to the
// validator: read-only bank/ledger views, plus the slot ingest endpoint.
package public

import (
	"context"
	"errors"
	"net/http"

	"github.com/ardanlabs/pohledger/business/web/v1/errs"
	"github.com/ardanlabs/pohledger/foundation/ledger/replay"
	"github.com/ardanlabs/pohledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of validator endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	Replayer *replay.Replayer
}

// Health reports liveness of the validator's public API.
func (h Handlers) Health(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, statusResponse{Status: "ok"}, http.StatusOK)
}

// Bank returns every account's balance as independently re-derived by
// this validator's own replay of the ledger.
func (h Handlers) Bank(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Replayer.Bank().Balances(), http.StatusOK)
}

// Ledger returns every slot this validator has independently ingested
// and verified so far.
func (h Handlers) Ledger(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Replayer.Ledger(), http.StatusOK)
}

// Ingest accepts one sealed slot and replays it against the validator's
// own state. A mismatch is reported as a 409 Conflict so the caller can
// distinguish a divergence from a plain bad request.
func (h Handlers) Ingest(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req IngestRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.Replayer.Ingest(req.Slot); err != nil {
		var mismatch *replay.IngestMismatch
		if errors.As(err, &mismatch) {
			h.Log.Errorw("ingest mismatch", "traceid", v.TraceID, "slot", req.Slot.Slot, "field", mismatch.Field, "want", mismatch.Want, "got", mismatch.Got)
			return errs.NewTrusted(err, http.StatusConflict)
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("slot ingested", "traceid", v.TraceID, "slot", req.Slot.Slot, "entries", len(req.Slot.Entries))

	return web.Respond(ctx, w, statusResponse{Status: "slot ingested"}, http.StatusOK)
}
