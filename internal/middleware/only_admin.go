package middleware

import (
	"context"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/xcontext"
)

type OnlyAdmin struct {
	verifier *common.AdminVerifier
}

func NewOnlyAdmin(profileRepo repository.ProfileRepository) *OnlyAdmin {
	return &OnlyAdmin{verifier: common.NewAdminVerifier(profileRepo)}
}

// Middleware must run after the auth verifier.
func (a *OnlyAdmin) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if err := a.verifier.Verify(ctx); err != nil {
			xcontext.Logger(ctx).Debugf("Reject %s on admin route: %v", xcontext.RequestUserID(ctx), err)
			return nil, err
		}

		return nil, nil
	}
}
