// Package checkgrp maintains the group of handlers for health checking.
package checkgrp

import (
	"context"
	"net/http"
	"os"

	"github.com/ardanlabs/pohledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of check endpoints.
type Handlers struct {
	Build string
	Log   *zap.SugaredLogger
	Ready func() error // Reports whether the owning service can currently serve traffic.
}

// Readiness checks if the service is ready to accept requests by running
// the caller-supplied Ready probe (e.g. the leader checking its PoH clock
// has ticked at least once, or the validator checking it has ingested at
// least the genesis state).
func (h Handlers) Readiness(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.Ready != nil {
		if err := h.Ready(); err != nil {
			return web.Respond(ctx, w, struct {
				Status string `json:"status"`
			}{Status: err.Error()}, http.StatusInternalServerError)
		}
	}

	return web.Respond(ctx, w, struct {
		Status string `json:"status"`
	}{Status: "ok"}, http.StatusOK)
}

// Liveness returns simple status info if the service is alive. Unlike
// Readiness, it never reports a problem: if this handler is running at
// all, the process is alive.
func (h Handlers) Liveness(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	info := struct {
		Status    string `json:"status"`
		Build     string `json:"build"`
		Host      string `json:"host"`
		Pod       string `json:"pod"`
		PodIP     string `json:"podIP"`
		Node      string `json:"node"`
		Namespace string `json:"namespace"`
	}{
		Status: "up",
		Build:  h.Build,
		Host:   os.Getenv("HOSTNAME"),
		Pod:    os.Getenv("KUBERNETES_PODNAME"),
		PodIP:  os.Getenv("KUBERNETES_NAMESPACE_POD_IP"),
		Node:   os.Getenv("KUBERNETES_NODENAME"),
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}
