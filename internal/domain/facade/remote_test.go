package facade

import (
	"testing"
	"time"

	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/domain/engagement"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/matcher"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/domain/submission"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newRemoteBackend() *remoteBackend {
	profileRepo := repository.NewProfileRepository()
	podRepo := repository.NewPodRepository()
	membershipRepo := repository.NewPodMembershipRepository()
	postRepo := repository.NewPostSubmissionRepository()
	engagementRepo := repository.NewEngagementRepository()
	pointHistoryRepo := repository.NewPointHistoryRepository()
	reporter := outcome.NewIntegrityReporter(repository.NewReconciliationRepository(), nil)

	l := ledger.New(profileRepo, pointHistoryRepo, statistic.New(profileRepo, nil), nil)
	evaluator := achievement.NewEvaluator(
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		profileRepo,
		engagementRepo,
		l,
		reporter,
		nil,
	)

	return NewRemoteBackend(
		matcher.New(profileRepo, podRepo, membershipRepo),
		submission.NewService(postRepo, profileRepo, membershipRepo, l, reporter),
		engagement.NewRecorder(engagementRepo, postRepo, membershipRepo, profileRepo, l, reporter),
		l,
		evaluator,
		statistic.NewAnalytics(postRepo, engagementRepo),
		profileRepo,
		membershipRepo,
		postRepo,
		pointHistoryRepo,
	)
}

func Test_remoteBackend_Flow(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreateProfile(ctx, "author", 10)
	testutil.CreateProfile(ctx, "user1", 9)
	testutil.CreateAchievement(ctx, "a1", "First Steps", achievement.RequirementPointsTotal, 10, 5)

	b := newRemoteBackend()
	f := New(Online, b, NewLocalBackend(Online), facadeConfigs())

	for _, userID := range []string{"author", "user1"} {
		resp, err := f.EnsureMatchedPod(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, "pod1", resp.PodID)
	}

	submitted, err := f.SubmitPost(ctx, "author", submitRequest())
	require.NoError(t, err)
	require.Equal(t, string(outcome.Completed), submitted.Status)
	require.Equal(t, int64(5), submitted.Balance)

	engaged, err := f.CreateEngagement(ctx, "user1", &model.CreateEngagementRequest{
		PodID: "pod1", PostID: submitted.SubmissionID, Type: "like",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), engaged.PointsEarned)

	// 9 + 1 reaches the achievement, which rewards 5 more.
	require.Equal(t, int64(15), testutil.GetProfile(ctx, "user1").TotalPoints)

	dashboard, err := f.GetDashboard(ctx, "author")
	require.NoError(t, err)
	require.Equal(t, int64(5), dashboard.Profile.TotalPoints)
	require.Equal(t, "pod1", dashboard.Pod.ID)
	require.Equal(t, int64(2), dashboard.Pod.MemberCount)
	require.Empty(t, dashboard.Queue)
	require.Len(t, dashboard.History, 1)
	require.Equal(t, 1, dashboard.Analytics.EngagementsReceived)
	require.Zero(t, dashboard.Analytics.TotalEngagements)

	dashboard, err = f.GetDashboard(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, dashboard.Queue, 1)
	require.Len(t, dashboard.Achievements, 1)
	require.True(t, dashboard.Achievements[0].IsUnlocked)
}

func Test_remoteBackend_SubmitPost_InsufficientBalance(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreateProfile(ctx, "user1", 3)
	testutil.JoinPod(ctx, "user1", "pod1")

	f := New(Online, newRemoteBackend(), NewLocalBackend(Online), facadeConfigs())
	_, err := f.SubmitPost(ctx, "user1", submitRequest())
	require.True(t, errorx.Is(err, errorx.InsufficientBalance))
	require.Equal(t, int64(3), testutil.GetProfile(ctx, "user1").TotalPoints)
}

func Test_remoteBackend_GetDashboard_NotFound(t *testing.T) {
	ctx := testutil.MockContext()

	_, err := newRemoteBackend().GetDashboard(ctx, "ghost")
	require.True(t, errorx.Is(err, errorx.NotFound))
}

var _ Backend = (*remoteBackend)(nil)
var _ Backend = (*localBackend)(nil)
var _ Backend = (*facade)(nil)
