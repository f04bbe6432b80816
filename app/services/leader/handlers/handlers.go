// Package handlers manages the different versions of the API and wires
// every middleware/route group together.
package handlers

import (
	"expvar"
	"net/http"
	"net/http/pprof"
	"os"

	v1 "github.com/ardanlabs/pohledger/app/services/leader/handlers/v1"
	"github.com/ardanlabs/pohledger/business/web/v1/mid"
	"github.com/ardanlabs/pohledger/foundation/checkgrp"
	"github.com/ardanlabs/pohledger/foundation/events"
	"github.com/ardanlabs/pohledger/foundation/ledger/leader"
	"github.com/ardanlabs/pohledger/foundation/web"
	"go.uber.org/zap"
)

// PublicMuxConfig contains all the mandatory systems required by the
// public API mux.
type PublicMuxConfig struct {
	Shutdown chan os.Signal
	Log      *zap.SugaredLogger
	Coord    *leader.Coordinator
	Evts     *events.Events
	Origin   string
}

// PublicMux constructs a mux for the public API.
func PublicMux(cfg PublicMuxConfig) *web.App {
	app := web.NewApp(
		cfg.Shutdown,
		mid.Logger(cfg.Log),
		mid.Errors(cfg.Log),
		mid.Metrics(),
		mid.Panics(),
		mid.Cors(cfg.Origin),
	)

	v1.PublicRoutes(app, v1.Config{
		Log:   cfg.Log,
		Coord: cfg.Coord,
		Evts:  cfg.Evts,
	})

	return app
}

// DebugMux registers all the debug routes: pprof, expvar, and the
// readiness/liveness checks.
func DebugMux(build string, log *zap.SugaredLogger, ready func() error) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/debug/vars", expvar.Handler())

	cg := checkgrp.Handlers{Build: build, Log: log, Ready: ready}
	mux.HandleFunc("/debug/readiness", func(w http.ResponseWriter, r *http.Request) {
		_ = cg.Readiness(r.Context(), w, r)
	})
	mux.HandleFunc("/debug/liveness", func(w http.ResponseWriter, r *http.Request) {
		_ = cg.Liveness(r.Context(), w, r)
	})

	return mux
}
