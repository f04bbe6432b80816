// Package v1 contains the full set of handler functions and routes
// supported by the leader's v1 web API.
package v1

import (
	"net/http"

	"github.com/ardanlabs/pohledger/app/services/leader/handlers/v1/public"
	"github.com/ardanlabs/pohledger/foundation/events"
	"github.com/ardanlabs/pohledger/foundation/ledger/leader"
	"github.com/ardanlabs/pohledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	Coord *leader.Coordinator
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		Coord: cfg.Coord,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/health", pbl.Health)
	app.Handle(http.MethodGet, version, "/poh", pbl.PoH)
	app.Handle(http.MethodGet, version, "/bank", pbl.Bank)
	app.Handle(http.MethodGet, version, "/ledger", pbl.Ledger)
	app.Handle(http.MethodPost, version, "/airdrop", pbl.Airdrop)
	app.Handle(http.MethodPost, version, "/transfer", pbl.Transfer)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)
}
