package middleware

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/xcontext"
)

// Prometheus labels every request by its errorx code, 0 on success and -1 for
// errors outside the code table.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		labels := []string{req.Method, req.URL.Path, strconv.Itoa(code)}
		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(labels...).Inc()
		common.PromHistograms[common.HTTPRequestDurationSeconds].WithLabelValues(labels...).
			Observe(time.Since(xcontext.StartTime(ctx)).Seconds())
	}
}
