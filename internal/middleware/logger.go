package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/xcontext"
)

// Logger writes one line per request: method | path | code. Known errorx codes
// are warnings, anything else is an error with code -1.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		log := xcontext.Logger(ctx).With(map[string]any{
			"user_id":    xcontext.RequestUserID(ctx),
			"latency_ms": time.Since(xcontext.StartTime(ctx)).Milliseconds(),
		})

		err := xcontext.Error(ctx)
		if err == nil {
			log.Infof("%s | %s | %d", req.Method, req.URL.Path, 0)
			return
		}

		var errx errorx.Error
		if errors.As(err, &errx) {
			log.Warnf("%s | %s | %d", req.Method, req.URL.Path, errx.Code)
			return
		}

		log.Errorf("%s | %s | %d | %v", req.Method, req.URL.Path, -1, err)
	}
}
