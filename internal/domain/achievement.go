package domain

import (
	"context"

	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/xcontext"
)

type AchievementDomain interface {
	CheckAchievements(context.Context, *model.CheckAchievementsRequest) (*model.CheckAchievementsResponse, error)
	GetMyAchievements(context.Context, *model.GetMyAchievementsRequest) (*model.GetMyAchievementsResponse, error)
}

type achievementDomain struct {
	evaluator achievement.Evaluator
	facade    facade.Facade
}

func NewAchievementDomain(evaluator achievement.Evaluator, facade facade.Facade) *achievementDomain {
	return &achievementDomain{evaluator: evaluator, facade: facade}
}

func (d *achievementDomain) CheckAchievements(
	ctx context.Context, req *model.CheckAchievementsRequest,
) (*model.CheckAchievementsResponse, error) {
	return d.facade.CheckAchievements(ctx, xcontext.RequestUserID(ctx))
}

func (d *achievementDomain) GetMyAchievements(
	ctx context.Context, req *model.GetMyAchievementsRequest,
) (*model.GetMyAchievementsResponse, error) {
	progress, err := d.evaluator.ListProgress(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		return nil, err
	}

	return &model.GetMyAchievementsResponse{Achievements: achievement.ProgressModels(progress)}, nil
}
