package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type ProfileDomain interface {
	EnsureProfile(context.Context, *model.EnsureProfileRequest) (*model.EnsureProfileResponse, error)
	GetMyProfile(context.Context, *model.GetMyProfileRequest) (*model.GetMyProfileResponse, error)
	GetDashboard(context.Context, *model.GetDashboardRequest) (*model.GetDashboardResponse, error)
}

type profileDomain struct {
	profileRepo repository.ProfileRepository
	facade      facade.Facade
}

func NewProfileDomain(profileRepo repository.ProfileRepository, facade facade.Facade) *profileDomain {
	return &profileDomain{profileRepo: profileRepo, facade: facade}
}

func (d *profileDomain) EnsureProfile(
	ctx context.Context, req *model.EnsureProfileRequest,
) (*model.EnsureProfileResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	cfg := xcontext.Configs(ctx)
	userID := xcontext.RequestUserID(ctx)
	profile := &entity.Profile{
		Base:                 entity.Base{ID: userID},
		Email:                req.Email,
		Plan:                 entity.PlanFree,
		DailySubmissionLimit: cfg.Submission.DailyLimit,
		IsAdmin:              req.Email != "" && slices.Contains(cfg.Auth.AdminEmails, req.Email),
	}
	if req.FullName != "" {
		profile.FullName = sql.NullString{String: req.FullName, Valid: true}
	}
	if req.AvatarURL != "" {
		profile.AvatarURL = sql.NullString{String: req.AvatarURL, Valid: true}
	}

	err := d.facade.Guard(ctx, func() error {
		if err := d.profileRepo.CreateIfNotExists(ctx, profile); err != nil {
			return err
		}

		// Points never come from the client, UpdateByID leaves them alone.
		update := &entity.Profile{Email: profile.Email, FullName: profile.FullName, AvatarURL: profile.AvatarURL}
		if profile.IsAdmin {
			update.IsAdmin = true
		}

		err := d.profileRepo.UpdateByID(ctx, userID, update)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}

		return err
	})
	if err != nil {
		if errorx.Is(err, errorx.Unavailable) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot ensure profile: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	stored, err := d.profileRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	resp := model.EnsureProfileResponse(model.ConvertProfile(stored))
	return &resp, nil
}

func (d *profileDomain) GetMyProfile(
	ctx context.Context, req *model.GetMyProfileRequest,
) (*model.GetMyProfileResponse, error) {
	profile, err := d.profileRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found profile")
		}

		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	resp := model.GetMyProfileResponse(model.ConvertProfile(profile))
	return &resp, nil
}

func (d *profileDomain) GetDashboard(
	ctx context.Context, req *model.GetDashboardRequest,
) (*model.GetDashboardResponse, error) {
	return d.facade.GetDashboard(ctx, xcontext.RequestUserID(ctx))
}
