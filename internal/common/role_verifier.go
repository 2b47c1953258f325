package common

import (
	"context"
	"errors"

	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// AdminVerifier reads the admin flag from the profile on every call, so a
// demoted admin loses access on the next request.
type AdminVerifier struct {
	profileRepo repository.ProfileRepository
}

func NewAdminVerifier(profileRepo repository.ProfileRepository) *AdminVerifier {
	return &AdminVerifier{profileRepo: profileRepo}
}

func (v *AdminVerifier) Verify(ctx context.Context) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	profile, err := v.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.PermissionDenied, "Profile is not ensured")
		}

		xcontext.Logger(ctx).Errorf("Cannot get profile %s: %v", userID, err)
		return StoreError(err, errorx.Unknown)
	}

	if !profile.IsAdmin {
		return errorx.New(errorx.PermissionDenied, "Only admin can do this action")
	}

	return nil
}
