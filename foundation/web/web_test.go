package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ardanlabs/pohledger/foundation/web"
)

func TestHandleRespondsAndRunsMiddlewareInOrder(t *testing.T) {
	var order []string

	mwA := func(next web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			order = append(order, "a")
			return next(ctx, w, r)
		}
	}
	mwB := func(next web.Handler) web.Handler {
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			order = append(order, "b")
			return next(ctx, w, r)
		}
	}

	shutdown := make(chan os.Signal, 1)
	app := web.NewApp(shutdown, mwA, mwB)

	app.Handle(http.MethodGet, "v1", "/ping", func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		order = append(order, "handler")
		return web.Respond(ctx, w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}

	want := []string{"a", "b", "handler"}
	if len(order) != len(want) {
		t.Fatalf("got call order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got call order %v, want %v", order, want)
		}
	}
}

func TestGetTraceIDDefaultsWhenMissing(t *testing.T) {
	if got := web.GetTraceID(context.Background()); got != "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("got %q, want the zero trace id", got)
	}
}
