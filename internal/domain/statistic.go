package domain

import (
	"context"
	"errors"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const defaultReconciliationLimit = 100

type StatisticDomain interface {
	GetAnalytics(context.Context, *model.GetAnalyticsRequest) (*model.GetAnalyticsResponse, error)
	GetReconciliations(context.Context, *model.GetReconciliationsRequest) (*model.GetReconciliationsResponse, error)
	ResolveReconciliation(context.Context, *model.ResolveReconciliationRequest) (*model.ResolveReconciliationResponse, error)
}

type statisticDomain struct {
	analytics          statistic.Analytics
	reconciliationRepo repository.ReconciliationRepository
}

func NewStatisticDomain(
	analytics statistic.Analytics,
	reconciliationRepo repository.ReconciliationRepository,
) *statisticDomain {
	return &statisticDomain{
		analytics:          analytics,
		reconciliationRepo: reconciliationRepo,
	}
}

func (d *statisticDomain) GetAnalytics(
	ctx context.Context, req *model.GetAnalyticsRequest,
) (*model.GetAnalyticsResponse, error) {
	result, err := d.analytics.Compute(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	resp := model.GetAnalyticsResponse(*result)
	return &resp, nil
}

func (d *statisticDomain) GetReconciliations(
	ctx context.Context, req *model.GetReconciliationsRequest,
) (*model.GetReconciliationsResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	if req.Limit == 0 {
		req.Limit = defaultReconciliationLimit
	}

	records, err := d.reconciliationRepo.GetUnresolved(ctx, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get reconciliations: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	result := []model.Reconciliation{}
	for i := range records {
		result = append(result, model.ConvertReconciliation(&records[i]))
	}

	return &model.GetReconciliationsResponse{Reconciliations: result}, nil
}

// ResolveReconciliation only closes the record, the correction itself is made
// by the admin through UpdatePoints or by replaying the operation.
func (d *statisticDomain) ResolveReconciliation(
	ctx context.Context, req *model.ResolveReconciliationRequest,
) (*model.ResolveReconciliationResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	if err := d.reconciliationRepo.Resolve(ctx, req.ID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found unresolved reconciliation")
		}

		xcontext.Logger(ctx).Errorf("Cannot resolve reconciliation: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	xcontext.Logger(ctx).Infof("Reconciliation %s is resolved by %s", req.ID, xcontext.RequestUserID(ctx))
	return &model.ResolveReconciliationResponse{}, nil
}
