package statistic

import (
	"context"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
)

const DefaultTopIndustry = "Technology"

type Analytics interface {
	Compute(ctx context.Context, userID string) (*model.Analytics, error)
}

type analytics struct {
	postRepo       repository.PostSubmissionRepository
	engagementRepo repository.EngagementRepository
}

func NewAnalytics(
	postRepo repository.PostSubmissionRepository,
	engagementRepo repository.EngagementRepository,
) *analytics {
	return &analytics{postRepo: postRepo, engagementRepo: engagementRepo}
}

func (a *analytics) Compute(ctx context.Context, userID string) (*model.Analytics, error) {
	posts, err := a.postRepo.GetList(ctx, repository.SubmissionFilter{UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	made, err := a.engagementRepo.Count(ctx, repository.EngagementFilter{UserID: userID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count engagements: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	industries, err := a.postRepo.CountIndustriesByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count industries: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	result := Summarize(posts)
	result.TotalEngagements = made
	if len(industries) > 0 {
		result.TopIndustry = industries[0].Industry
	}

	return &result, nil
}

// Summarize averages the progress of open posts against their targets.
func Summarize(posts []entity.PostSubmission) model.Analytics {
	result := model.Analytics{TopIndustry: DefaultTopIndustry}

	var rateSum float64
	open := 0
	for _, p := range posts {
		result.TotalSubmissions++
		result.EngagementsReceived += p.TotalEngagements

		switch p.Status {
		case entity.PostStatusCompleted:
			result.CompletedSubmissions++
		case entity.PostStatusActive, entity.PostStatusPending:
			result.ActiveSubmissions++
			open++
			target := max(p.TargetLikes+p.TargetComments, 1)
			rateSum += float64(p.CurrentLikes+p.CurrentComments) / float64(target)
		}
	}

	if open > 0 {
		result.AverageEngagementRate = rateSum / float64(open) * 100
	}

	return result
}
