package facade

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/podlift/backend/internal/domain/engagement"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/domain/submission"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/enum"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/idutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/puzpuzpuz/xsync/v2"
)

const (
	LocalPodID   = "local-pod"
	localPodName = "Local pod"
)

// localBackend answers with in-memory state when the remote store is gone.
// It keeps the same contract as the remote backend but no cross-user
// guarantees: nothing here is durable or shared between instances.
type localBackend struct {
	mode RuntimeMode

	points      *xsync.MapOf[string, int64]
	submissions *xsync.MapOf[string, []model.Submission]
	history     *xsync.MapOf[string, []model.PointHistory]
	flags       *xsync.MapOf[string, string]
}

func NewLocalBackend(mode RuntimeMode) *localBackend {
	return &localBackend{
		mode:        mode,
		points:      xsync.NewMapOf[int64](),
		submissions: xsync.NewMapOf[[]model.Submission](),
		history:     xsync.NewMapOf[[]model.PointHistory](),
		flags:       xsync.NewMapOf[string](),
	}
}

func pointsKey(userID string) string      { return idutil.Key("user-points", userID) }
func submissionsKey(userID string) string { return idutil.Key("demo-submissions", userID) }
func historyKey(userID string) string     { return idutil.Key("point-history", userID) }
func matchedKey(userID string) string     { return idutil.Key("matched-pod", userID) }
func engagedKey(userID, postID string) string {
	return idutil.Key("engaged", userID, postID)
}

func (b *localBackend) EnsureMatchedPod(
	ctx context.Context, userID string,
) (*model.EnsureMatchedPodResponse, error) {
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	podID, loaded := b.flags.LoadOrStore(matchedKey(userID), LocalPodID)
	if loaded {
		return &model.EnsureMatchedPodResponse{PodID: podID, AlreadyMember: true}, nil
	}

	return &model.EnsureMatchedPodResponse{AssignedPodID: podID, PodID: podID}, nil
}

func (b *localBackend) SubmitPost(
	ctx context.Context, userID string, req *model.SubmitPostRequest,
) (*model.SubmitPostResponse, error) {
	cfg := xcontext.Configs(ctx)
	if balance := b.balance(ctx, userID); balance < cfg.Submission.MinBalance {
		return nil, errorx.New(errorx.InsufficientBalance,
			"Need at least %d points to submit a post, you have %d", cfg.Submission.MinBalance, balance)
	}

	submissionID := uuid.NewString()
	if req.RequestID != "" {
		submissionID = idutil.DeterministicID(userID, req.RequestID)
		for _, s := range b.loadSubmissions(userID) {
			if s.ID == submissionID {
				return &model.SubmitPostResponse{
					Outcome:      outcome.Complete(submission.StepCreated).Model(),
					SubmissionID: submissionID,
					Balance:      b.balance(ctx, userID),
				}, nil
			}
		}
	}

	balance := b.apply(ctx, userID, -cfg.Ledger.SubmissionFee,
		ledger.ActionSubmission, "Submitted post to engagement queue")

	now := time.Now()
	post := model.Submission{
		ID:              submissionID,
		UserID:          userID,
		PodID:           LocalPodID,
		PostURL:         req.PostURL,
		Title:           req.Title,
		Industry:        req.Industry,
		TargetLikes:     req.TargetLikes,
		TargetComments:  req.TargetComments,
		DeliverySpeed:   req.DeliverySpeed,
		CommentStrategy: req.CommentStrategy,
		CustomComment:   req.CustomComment,
		Status:          string(entity.PostStatusActive),
		SubmittedAt:     now.Format(model.DefaultTimeLayout),
		ExpiresAt:       now.Add(cfg.Submission.ExpiresAfter).Format(model.DefaultTimeLayout),
	}
	b.submissions.Compute(submissionsKey(userID), func(old []model.Submission, loaded bool) ([]model.Submission, bool) {
		return append(old, post), false
	})

	return &model.SubmitPostResponse{
		Outcome:      outcome.Complete(submission.StepCreated).Model(),
		SubmissionID: submissionID,
		Balance:      balance,
	}, nil
}

func (b *localBackend) CreateEngagement(
	ctx context.Context, userID string, req *model.CreateEngagementRequest,
) (*model.CreateEngagementResponse, error) {
	engagementType, err := enum.ToEnum[entity.EngagementType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid engagement type %s", req.Type)
	}

	points := engagement.Reward(ctx, engagementType)
	if points == 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid engagement type %s", req.Type)
	}

	if _, loaded := b.flags.LoadOrStore(engagedKey(userID, req.PostID), req.Type); loaded {
		return nil, errorx.New(errorx.AlreadyEngaged, "Already engaged with this post")
	}

	action := ledger.ActionLike
	if engagementType == entity.EngagementTypeComment {
		action = ledger.ActionComment
	}
	b.apply(ctx, userID, points, action, fmt.Sprintf("Earned %d points for %s", points, req.Type))

	return &model.CreateEngagementResponse{
		Outcome:      outcome.Complete(engagement.StepPointsCredited).Model(),
		EngagementID: uuid.NewString(),
		PointsEarned: points,
	}, nil
}

func (b *localBackend) UpdatePoints(
	ctx context.Context, req *model.UpdatePointsRequest,
) (*model.UpdatePointsResponse, error) {
	if b.mode == OfflineDemo {
		return nil, errorx.New(errorx.PermissionDenied, "Points cannot be adjusted in demo mode")
	}

	if req.Points == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a zero delta")
	}

	balance := b.apply(ctx, req.UserID, req.Points, req.Action, req.Description)
	return &model.UpdatePointsResponse{Balance: balance}, nil
}

// CheckAchievements unlocks nothing, the catalog lives in the remote store.
func (b *localBackend) CheckAchievements(
	ctx context.Context, userID string,
) (*model.CheckAchievementsResponse, error) {
	return &model.CheckAchievementsResponse{Unlocked: []model.Achievement{}}, nil
}

func (b *localBackend) GetDashboard(
	ctx context.Context, userID string,
) (*model.GetDashboardResponse, error) {
	balance := b.balance(ctx, userID)
	resp := &model.GetDashboardResponse{
		Profile: model.Profile{
			ID:                   userID,
			TotalPoints:          balance,
			DailySubmissionLimit: xcontext.Configs(ctx).Submission.DailyLimit,
		},
		Queue:        []model.Submission{},
		History:      []model.PointHistory{},
		Achievements: []model.UserAchievement{},
		Analytics:    b.analytics(userID),
	}

	if podID, ok := b.flags.Load(matchedKey(userID)); ok {
		resp.Pod = &model.Pod{ID: podID, Name: localPodName, Industry: statistic.DefaultTopIndustry, IsActive: true, MemberCount: 1}
	}

	if history, ok := b.history.Load(historyKey(userID)); ok {
		limit := xcontext.Configs(ctx).Ledger.HistoryPageSize
		for i := len(history) - 1; i >= 0 && len(resp.History) < limit; i-- {
			resp.History = append(resp.History, history[i])
		}
	}

	return resp, nil
}

func (b *localBackend) balance(ctx context.Context, userID string) int64 {
	balance, _ := b.points.LoadOrStore(pointsKey(userID), xcontext.Configs(ctx).Facade.FallbackPoints)
	return balance
}

func (b *localBackend) apply(ctx context.Context, userID string, points int64, action, description string) int64 {
	seed := xcontext.Configs(ctx).Facade.FallbackPoints
	balance, _ := b.points.Compute(pointsKey(userID), func(old int64, loaded bool) (int64, bool) {
		if !loaded {
			old = seed
		}
		return old + points, false
	})

	b.history.Compute(historyKey(userID), func(old []model.PointHistory, loaded bool) ([]model.PointHistory, bool) {
		entry := model.PointHistory{
			ID:          strconv.Itoa(len(old) + 1),
			Points:      points,
			Action:      action,
			Description: description,
			CreatedAt:   time.Now().Format(model.DefaultTimeLayout),
		}
		return append(old, entry), false
	})

	return balance
}

func (b *localBackend) loadSubmissions(userID string) []model.Submission {
	submissions, _ := b.submissions.Load(submissionsKey(userID))
	return submissions
}

func (b *localBackend) analytics(userID string) model.Analytics {
	submissions := b.loadSubmissions(userID)
	result := model.Analytics{
		TotalSubmissions:  len(submissions),
		ActiveSubmissions: len(submissions),
		TopIndustry:       statistic.DefaultTopIndustry,
	}

	counts := map[string]int{}
	for _, s := range submissions {
		counts[s.Industry]++
	}

	industries := make([]string, 0, len(counts))
	for industry := range counts {
		industries = append(industries, industry)
	}
	sort.Slice(industries, func(i, j int) bool {
		if counts[industries[i]] != counts[industries[j]] {
			return counts[industries[i]] > counts[industries[j]]
		}
		return industries[i] < industries[j]
	})
	if len(industries) > 0 {
		result.TopIndustry = industries[0]
	}

	return result
}
