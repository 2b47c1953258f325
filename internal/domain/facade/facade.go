package facade

import (
	"context"
	"errors"

	"github.com/podlift/backend/config"
	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync/v2"
	gobreaker "github.com/sony/gobreaker/v2"
)

const breakerName = "remote-store"

type Facade interface {
	Backend
	Mode() RuntimeMode
	Guard(ctx context.Context, fn func() error) error
}

// facade routes every call to the remote backend while it is reachable, and to
// the local backend when the mode is offline, the breaker is open or the
// remote store reports it is unavailable.
type facade struct {
	mode    RuntimeMode
	remote  Backend
	local   Backend
	breaker *gobreaker.CircuitBreaker[any]

	// matched caches users already known to have a pod, so a returning user
	// skips the remote lookup.
	matched *xsync.MapOf[string, string]
}

func New(mode RuntimeMode, remote, local Backend, cfg config.FacadeConfigs) *facade {
	common.PromGauges[common.FacadeBreakerState].WithLabelValues(breakerName).Set(0)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// Rejections by the domain are answers, only an unreachable store
		// counts against the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || !common.IsUnavailable(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			common.PromGauges[common.FacadeBreakerState].WithLabelValues(name).Set(float64(to))
		},
	})

	return &facade{
		mode:    mode,
		remote:  remote,
		local:   local,
		breaker: breaker,
		matched: xsync.NewMapOf[string](),
	}
}

func (f *facade) Mode() RuntimeMode {
	return f.mode
}

func (f *facade) EnsureMatchedPod(
	ctx context.Context, userID string,
) (*model.EnsureMatchedPodResponse, error) {
	if !f.mode.IsOffline() {
		if podID, ok := f.matched.Load(userID); ok {
			return &model.EnsureMatchedPodResponse{PodID: podID, AlreadyMember: true}, nil
		}
	}

	resp, err := call(ctx, f, "ensure_matched_pod",
		func() (*model.EnsureMatchedPodResponse, error) { return f.remote.EnsureMatchedPod(ctx, userID) },
		func() (*model.EnsureMatchedPodResponse, error) { return f.local.EnsureMatchedPod(ctx, userID) },
	)
	if err == nil && !f.mode.IsOffline() && resp.PodID != LocalPodID {
		f.matched.Store(userID, resp.PodID)
	}

	return resp, err
}

func (f *facade) SubmitPost(
	ctx context.Context, userID string, req *model.SubmitPostRequest,
) (*model.SubmitPostResponse, error) {
	return call(ctx, f, "submit_post",
		func() (*model.SubmitPostResponse, error) { return f.remote.SubmitPost(ctx, userID, req) },
		func() (*model.SubmitPostResponse, error) { return f.local.SubmitPost(ctx, userID, req) },
	)
}

func (f *facade) CreateEngagement(
	ctx context.Context, userID string, req *model.CreateEngagementRequest,
) (*model.CreateEngagementResponse, error) {
	return call(ctx, f, "create_engagement",
		func() (*model.CreateEngagementResponse, error) { return f.remote.CreateEngagement(ctx, userID, req) },
		func() (*model.CreateEngagementResponse, error) { return f.local.CreateEngagement(ctx, userID, req) },
	)
}

func (f *facade) UpdatePoints(
	ctx context.Context, req *model.UpdatePointsRequest,
) (*model.UpdatePointsResponse, error) {
	return call(ctx, f, "update_points",
		func() (*model.UpdatePointsResponse, error) { return f.remote.UpdatePoints(ctx, req) },
		func() (*model.UpdatePointsResponse, error) { return f.local.UpdatePoints(ctx, req) },
	)
}

func (f *facade) CheckAchievements(
	ctx context.Context, userID string,
) (*model.CheckAchievementsResponse, error) {
	return call(ctx, f, "check_achievements",
		func() (*model.CheckAchievementsResponse, error) { return f.remote.CheckAchievements(ctx, userID) },
		func() (*model.CheckAchievementsResponse, error) { return f.local.CheckAchievements(ctx, userID) },
	)
}

func (f *facade) GetDashboard(
	ctx context.Context, userID string,
) (*model.GetDashboardResponse, error) {
	return call(ctx, f, "get_dashboard",
		func() (*model.GetDashboardResponse, error) { return f.remote.GetDashboard(ctx, userID) },
		func() (*model.GetDashboardResponse, error) { return f.local.GetDashboard(ctx, userID) },
	)
}

// Guard runs an operation which has no local equivalent. It still goes through
// the breaker, an open breaker surfaces as Unavailable.
func (f *facade) Guard(ctx context.Context, fn func() error) error {
	if f.mode.IsOffline() {
		return errorx.New(errorx.Unavailable, "Not available in offline mode")
	}

	_, err := f.breaker.Execute(func() (any, error) { return nil, fn() })
	if isBreakerRejection(err) {
		return errorx.New(errorx.Unavailable, "Service is temporarily unavailable")
	}

	return err
}

func call[T any](
	ctx context.Context, f *facade, operation string,
	remote func() (*T, error), local func() (*T, error),
) (*T, error) {
	if f.mode.IsOffline() {
		return local()
	}

	result, err := f.breaker.Execute(func() (any, error) { return remote() })
	if err != nil && (isBreakerRejection(err) || common.IsUnavailable(err)) {
		xcontext.Logger(ctx).Warnf("Remote store failed on %s, fallback to local: %v", operation, err)
		common.PromCounters[common.FacadeFallbackTotal].WithLabelValues(operation).Inc()
		return local()
	}

	// A partially completed operation carries both a result and an error.
	typed, _ := result.(*T)
	return typed, err
}

func isBreakerRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
