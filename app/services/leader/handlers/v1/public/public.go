// Package public maintains the group of handlers for public access to the
// leader: PoH/bank/ledger reads, and the two admission endpoints.
package public

import (
	"context"
	"net/http"
	"time"

	"github.com/ardanlabs/pohledger/business/web/v1/errs"
	"github.com/ardanlabs/pohledger/foundation/events"
	"github.com/ardanlabs/pohledger/foundation/ledger/database"
	"github.com/ardanlabs/pohledger/foundation/ledger/hash"
	"github.com/ardanlabs/pohledger/foundation/ledger/leader"
	"github.com/ardanlabs/pohledger/foundation/ledger/signature"
	"github.com/ardanlabs/pohledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of leader endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Coord *leader.Coordinator
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Health reports liveness of the leader's public API.
func (h Handlers) Health(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, statusResponse{Status: "ok"}, http.StatusOK)
}

// PoH returns the current proof-of-history snapshot.
func (h Handlers) PoH(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Hash string `json:"hash"`
	}{
		Hash: h.Coord.RecentHash().String(),
	}
	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Bank returns every account's current balance.
func (h Handlers) Bank(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Coord.Bank().Balances(), http.StatusOK)
}

// Ledger returns the sealed slots the leader still retains (see
// leader.Config.MaxSlots).
func (h Handlers) Ledger(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Coord.Ledger(), http.StatusOK)
}

// Airdrop credits a new or existing account without requiring a signature.
func (h Handlers) Airdrop(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req AirdropRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	to, err := signature.ParsePublicKey(req.To)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.Coord.AdmitAirdrop(to, req.Amount); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("airdrop admitted", "traceid", v.TraceID, "to", to, "amount", req.Amount)
	h.Evts.Send("airdrop " + to.String())

	return web.Respond(ctx, w, statusResponse{Status: "airdrop admitted"}, http.StatusOK)
}

// Transfer validates and admits a signed transfer.
func (h Handlers) Transfer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var req TransferRequest
	if err := web.Decode(r, &req); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tr, err := toTransfer(req)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := h.Coord.AdmitTransfer(tr); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("transfer admitted", "traceid", v.TraceID, "from", tr.From, "to", tr.To, "amount", tr.Amount)
	h.Evts.Send("transfer " + tr.Sig.String())

	return web.Respond(ctx, w, statusResponse{Status: "transfer admitted"}, http.StatusOK)
}

// Events handles a web socket connection broadcasting admission activity
// to any connected client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return nil
			}
			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

func toTransfer(req TransferRequest) (database.Transfer, error) {
	from, err := signature.ParsePublicKey(req.From)
	if err != nil {
		return database.Transfer{}, err
	}
	to, err := signature.ParsePublicKey(req.To)
	if err != nil {
		return database.Transfer{}, err
	}
	recentHash, err := hash.Parse(req.RecentHash)
	if err != nil {
		return database.Transfer{}, err
	}
	sig, err := signature.ParseSignature(req.Sig)
	if err != nil {
		return database.Transfer{}, err
	}

	return database.Transfer{
		From:       from,
		To:         to,
		Amount:     req.Amount,
		RecentHash: recentHash,
		Sig:        sig,
	}, nil
}
