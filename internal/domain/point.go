package domain

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
)

type PointDomain interface {
	UpdatePoints(context.Context, *model.UpdatePointsRequest) (*model.UpdatePointsResponse, error)
	GetPointHistory(context.Context, *model.GetPointHistoryRequest) (*model.GetPointHistoryResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetWeeklyLeaderboard(context.Context, *model.GetWeeklyLeaderboardRequest) (*model.GetWeeklyLeaderboardResponse, error)
}

type pointDomain struct {
	profileRepo      repository.ProfileRepository
	pointHistoryRepo repository.PointHistoryRepository
	leaderboard      statistic.Leaderboard
	facade           facade.Facade
}

func NewPointDomain(
	profileRepo repository.ProfileRepository,
	pointHistoryRepo repository.PointHistoryRepository,
	leaderboard statistic.Leaderboard,
	facade facade.Facade,
) *pointDomain {
	return &pointDomain{
		profileRepo:      profileRepo,
		pointHistoryRepo: pointHistoryRepo,
		leaderboard:      leaderboard,
		facade:           facade,
	}
}

// UpdatePoints is reserved to admins, gameplay goes through submissions and
// engagements.
func (d *pointDomain) UpdatePoints(
	ctx context.Context, req *model.UpdatePointsRequest,
) (*model.UpdatePointsResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	xcontext.Logger(ctx).Infof("Admin %s changes points of %s by %d",
		xcontext.RequestUserID(ctx), req.UserID, req.Points)

	return d.facade.UpdatePoints(ctx, req)
}

func (d *pointDomain) GetPointHistory(
	ctx context.Context, req *model.GetPointHistoryRequest,
) (*model.GetPointHistoryResponse, error) {
	history, err := d.pointHistoryRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx),
		xcontext.Configs(ctx).Ledger.HistoryPageSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point history: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return &model.GetPointHistoryResponse{History: model.ConvertPointHistories(history)}, nil
}

func (d *pointDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	profiles, err := d.profileRepo.GetLeaderboard(ctx, xcontext.Configs(ctx).Ledger.LeaderboardSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	entries := []model.LeaderboardEntry{}
	for i := range profiles {
		entries = append(entries, model.LeaderboardEntry{
			Profile: model.ConvertShortProfile(&profiles[i]),
			Points:  profiles[i].TotalPoints,
			Rank:    i + 1,
		})
	}

	return &model.GetLeaderboardResponse{Entries: entries}, nil
}

func (d *pointDomain) GetWeeklyLeaderboard(
	ctx context.Context, req *model.GetWeeklyLeaderboardRequest,
) (*model.GetWeeklyLeaderboardResponse, error) {
	entries, err := d.leaderboard.GetWeekly(ctx, time.Now(), xcontext.Configs(ctx).Ledger.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	return &model.GetWeeklyLeaderboardResponse{Entries: entries}, nil
}
