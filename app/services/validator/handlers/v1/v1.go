// Package v1 contains the full set of handler functions and routes
// supported by the validator's v1 web API.
package v1

import (
	"net/http"

	"github.com/ardanlabs/pohledger/app/services/validator/handlers/v1/public"
	"github.com/ardanlabs/pohledger/foundation/ledger/replay"
	"github.com/ardanlabs/pohledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	Replayer *replay.Replayer
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:      cfg.Log,
		Replayer: cfg.Replayer,
	}

	app.Handle(http.MethodGet, version, "/health", pbl.Health)
	app.Handle(http.MethodGet, version, "/bank", pbl.Bank)
	app.Handle(http.MethodGet, version, "/ledger", pbl.Ledger)
	app.Handle(http.MethodPost, version, "/ingest", pbl.Ingest)
}
