package facade

import (
	"context"
	"errors"
	"strconv"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/domain/engagement"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/matcher"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/domain/submission"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type remoteBackend struct {
	matcher          matcher.Matcher
	submission       submission.Service
	recorder         engagement.Recorder
	ledger           ledger.Ledger
	evaluator        achievement.Evaluator
	analytics        statistic.Analytics
	profileRepo      repository.ProfileRepository
	membershipRepo   repository.PodMembershipRepository
	postRepo         repository.PostSubmissionRepository
	pointHistoryRepo repository.PointHistoryRepository
}

func NewRemoteBackend(
	matcher matcher.Matcher,
	submission submission.Service,
	recorder engagement.Recorder,
	ledger ledger.Ledger,
	evaluator achievement.Evaluator,
	analytics statistic.Analytics,
	profileRepo repository.ProfileRepository,
	membershipRepo repository.PodMembershipRepository,
	postRepo repository.PostSubmissionRepository,
	pointHistoryRepo repository.PointHistoryRepository,
) *remoteBackend {
	return &remoteBackend{
		matcher:          matcher,
		submission:       submission,
		recorder:         recorder,
		ledger:           ledger,
		evaluator:        evaluator,
		analytics:        analytics,
		profileRepo:      profileRepo,
		membershipRepo:   membershipRepo,
		postRepo:         postRepo,
		pointHistoryRepo: pointHistoryRepo,
	}
}

func (b *remoteBackend) EnsureMatchedPod(
	ctx context.Context, userID string,
) (*model.EnsureMatchedPodResponse, error) {
	result, err := b.matcher.EnsureMatched(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.EnsureMatchedPodResponse{
		AssignedPodID: result.AssignedPodID,
		PodID:         result.PodID,
		AlreadyMember: result.AlreadyMember,
	}, nil
}

func (b *remoteBackend) SubmitPost(
	ctx context.Context, userID string, req *model.SubmitPostRequest,
) (*model.SubmitPostResponse, error) {
	podID, err := b.submission.CheckEligibility(ctx, userID, req.PodID)
	if err != nil {
		return nil, err
	}

	result, err := b.submission.Submit(ctx, submission.Request{
		RequestID:       req.RequestID,
		UserID:          userID,
		PodID:           podID,
		PostURL:         req.PostURL,
		Title:           req.Title,
		Industry:        req.Industry,
		TargetLikes:     req.TargetLikes,
		TargetComments:  req.TargetComments,
		DeliverySpeed:   entity.DeliverySpeed(req.DeliverySpeed),
		CommentStrategy: entity.CommentStrategy(req.CommentStrategy),
		CustomComment:   req.CustomComment,
	})
	if result == nil {
		return nil, err
	}

	return &model.SubmitPostResponse{
		Outcome:      result.Model(),
		SubmissionID: result.SubmissionID,
		Balance:      result.Balance,
	}, err
}

func (b *remoteBackend) CreateEngagement(
	ctx context.Context, userID string, req *model.CreateEngagementRequest,
) (*model.CreateEngagementResponse, error) {
	result, err := b.recorder.Record(ctx, engagement.Request{
		UserID:      userID,
		PodID:       req.PodID,
		PostID:      req.PostID,
		Type:        entity.EngagementType(req.Type),
		CommentText: req.CommentText,
	})
	if result == nil {
		return nil, err
	}

	resp := &model.CreateEngagementResponse{
		Outcome:      result.Model(),
		EngagementID: result.EngagementID,
		PointsEarned: result.PointsEarned,
	}
	if err != nil {
		return resp, err
	}

	// Achievements never fail the engagement which triggered them.
	if _, err := b.evaluator.CheckAndUnlock(ctx, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check achievements after engagement: %v", err)
	}

	return resp, nil
}

func (b *remoteBackend) UpdatePoints(
	ctx context.Context, req *model.UpdatePointsRequest,
) (*model.UpdatePointsResponse, error) {
	receipt, err := b.ledger.Apply(ctx, ledger.Delta{
		UserID:         req.UserID,
		Points:         req.Points,
		Action:         req.Action,
		Description:    req.Description,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, err
	}

	return &model.UpdatePointsResponse{
		HistoryID:  strconv.FormatInt(receipt.HistoryID, 10),
		Balance:    receipt.Balance,
		Duplicated: receipt.Duplicated,
	}, nil
}

func (b *remoteBackend) CheckAchievements(
	ctx context.Context, userID string,
) (*model.CheckAchievementsResponse, error) {
	unlocked, err := b.evaluator.CheckAndUnlock(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := []model.Achievement{}
	for _, a := range unlocked {
		result = append(result, model.ConvertAchievement(&a))
	}

	return &model.CheckAchievementsResponse{Unlocked: result}, nil
}

// GetDashboard only fails when the profile cannot be read, every other part
// degrades to empty.
func (b *remoteBackend) GetDashboard(
	ctx context.Context, userID string,
) (*model.GetDashboardResponse, error) {
	resp := &model.GetDashboardResponse{
		Queue:        []model.Submission{},
		History:      []model.PointHistory{},
		Achievements: []model.UserAchievement{},
		Analytics:    model.Analytics{TopIndustry: statistic.DefaultTopIndustry},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile, err := b.profileRepo.GetByID(gctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Not found profile")
			}

			xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
			return common.StoreError(err, errorx.Unknown)
		}

		resp.Profile = model.ConvertProfile(profile)
		return nil
	})

	g.Go(func() error {
		membership, err := b.membershipRepo.GetByUserID(gctx, userID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Warnf("Dashboard skips pod: %v", err)
			}
			return nil
		}

		counts, err := b.membershipRepo.CountByPodIDs(gctx, []string{membership.PodID})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Dashboard skips member count: %v", err)
		}

		pod := model.ConvertPod(&membership.Pod, counts[membership.PodID])
		resp.Pod = &pod

		queue, err := b.postRepo.GetQueue(gctx, membership.PodID, userID, xcontext.Configs(ctx).Submission.QueueSize)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Dashboard skips queue: %v", err)
			return nil
		}

		resp.Queue = model.ConvertSubmissions(queue)
		return nil
	})

	g.Go(func() error {
		history, err := b.pointHistoryRepo.GetListByUserID(gctx, userID, xcontext.Configs(ctx).Ledger.HistoryPageSize)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Dashboard skips history: %v", err)
			return nil
		}

		resp.History = model.ConvertPointHistories(history)
		return nil
	})

	g.Go(func() error {
		progress, err := b.evaluator.ListProgress(gctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Dashboard skips achievements: %v", err)
			return nil
		}

		resp.Achievements = achievement.ProgressModels(progress)
		return nil
	})

	g.Go(func() error {
		analytics, err := b.analytics.Compute(gctx, userID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Dashboard skips analytics: %v", err)
			return nil
		}

		resp.Analytics = *analytics
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}
