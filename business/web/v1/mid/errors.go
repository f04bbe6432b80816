package mid

import (
	"context"
	"net/http"

	"github.com/ardanlabs/pohledger/business/web/v1/errs"
	"github.com/ardanlabs/pohledger/foundation/web"
	"go.uber.org/zap"
)

// Errors handles errors coming out of the call chain. It detects normal
// application errors which are used to respond to the client in a
// uniform way, and logs anything unexpected (a bug) before responding
// with a generic 500.
func Errors(log *zap.SugaredLogger) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if err := handler(ctx, w, r); err != nil {
				log.Errorw("request error", "traceid", web.GetTraceID(ctx), "ERROR", err)

				var resp errs.Response
				status := http.StatusInternalServerError

				if trusted := errs.GetTrusted(err); trusted != nil {
					resp = errs.Response{Error: trusted.Err.Error()}
					status = trusted.Status
				} else {
					resp = errs.Response{Error: http.StatusText(http.StatusInternalServerError)}
				}

				if err := web.Respond(ctx, w, resp, status); err != nil {
					return err
				}
			}
			return nil
		}
		return h
	}
	return m
}
