package domain

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
)

type EngagementDomain interface {
	CreateEngagement(context.Context, *model.CreateEngagementRequest) (*model.CreateEngagementResponse, error)
	GetMyEngagements(context.Context, *model.GetMyEngagementsRequest) (*model.GetMyEngagementsResponse, error)
}

type engagementDomain struct {
	engagementRepo repository.EngagementRepository
	facade         facade.Facade
}

func NewEngagementDomain(engagementRepo repository.EngagementRepository, facade facade.Facade) *engagementDomain {
	return &engagementDomain{engagementRepo: engagementRepo, facade: facade}
}

func (d *engagementDomain) CreateEngagement(
	ctx context.Context, req *model.CreateEngagementRequest,
) (*model.CreateEngagementResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	return d.facade.CreateEngagement(ctx, xcontext.RequestUserID(ctx), req)
}

func (d *engagementDomain) GetMyEngagements(
	ctx context.Context, req *model.GetMyEngagementsRequest,
) (*model.GetMyEngagementsResponse, error) {
	filter := repository.EngagementFilter{UserID: xcontext.RequestUserID(ctx)}
	if req.Date != "" {
		day, err := time.Parse(model.DefaultDateLayout, req.Date)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid date: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid date, expected %s", model.DefaultDateLayout)
		}
		filter.Day = &day
	}

	engagements, err := d.engagementRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get engagements: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	result := []model.Engagement{}
	for _, e := range engagements {
		result = append(result, model.ConvertEngagement(&e))
	}

	return &model.GetMyEngagementsResponse{Engagements: result}, nil
}
