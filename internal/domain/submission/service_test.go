package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type failingPostRepo struct {
	repository.PostSubmissionRepository
}

func (failingPostRepo) Create(ctx context.Context, data *entity.PostSubmission) error {
	return errors.New("connection reset")
}

type unavailableLedger struct {
	ledger.Ledger
}

func (unavailableLedger) Apply(ctx context.Context, delta ledger.Delta) (*ledger.Receipt, error) {
	return nil, errorx.New(errorx.Unavailable, "Service is temporarily unavailable")
}

func newService(postRepo repository.PostSubmissionRepository) *service {
	profileRepo := repository.NewProfileRepository()
	return NewService(
		postRepo,
		profileRepo,
		repository.NewPodMembershipRepository(),
		ledger.New(profileRepo, repository.NewPointHistoryRepository(), statistic.New(profileRepo, nil), nil),
		outcome.NewIntegrityReporter(repository.NewReconciliationRepository(), nil),
	)
}

func setupMember(ctx context.Context, points int64) {
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreateProfile(ctx, "user1", points)
	testutil.JoinPod(ctx, "user1", "pod1")
}

func validRequest() Request {
	return Request{
		UserID:          "user1",
		PostURL:         "https://www.linkedin.com/posts/user1-activity-1",
		Title:           "Launch day",
		Industry:        "Technology",
		TargetLikes:     20,
		TargetComments:  5,
		DeliverySpeed:   entity.DeliverySpeedNormal,
		CommentStrategy: entity.CommentStrategyAI,
	}
}

func Test_service_Submit(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 10)
	s := newService(repository.NewPostSubmissionRepository())

	podID, err := s.CheckEligibility(ctx, "user1", "")
	require.NoError(t, err)
	require.Equal(t, "pod1", podID)

	result, err := s.Submit(ctx, validRequest())
	require.NoError(t, err)
	require.True(t, result.Succeeded())
	require.Equal(t, int64(5), result.Balance)

	post, err := repository.NewPostSubmissionRepository().GetByID(ctx, result.SubmissionID)
	require.NoError(t, err)
	require.Equal(t, entity.PostStatusActive, post.Status)
	require.Equal(t, "pod1", post.PodID)
	require.Zero(t, post.CurrentLikes)
	require.Zero(t, post.CurrentComments)
	require.Zero(t, post.TotalEngagements)
	require.True(t, post.ExpiresAt.After(post.SubmittedAt.Add(6*24*time.Hour)))

	profile := testutil.GetProfile(ctx, "user1")
	require.Equal(t, int64(5), profile.TotalPoints)
	require.Equal(t, 1, profile.DailySubmissionsUsed)
}

func Test_service_CheckEligibility(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 3)
	testutil.CreateProfile(ctx, "loner", 50)
	s := newService(repository.NewPostSubmissionRepository())

	_, err := s.CheckEligibility(ctx, "user1", "")
	require.True(t, errorx.Is(err, errorx.InsufficientBalance))
	require.Equal(t, int64(3), testutil.GetProfile(ctx, "user1").TotalPoints)
	require.Equal(t, int64(0), testutil.CountRows(ctx, &entity.PostSubmission{}, ""))
	require.Equal(t, int64(0), testutil.CountRows(ctx, &entity.PointHistory{}, ""))

	_, err = s.CheckEligibility(ctx, "loner", "")
	require.True(t, errorx.Is(err, errorx.NotPodMember))

	_, err = s.CheckEligibility(ctx, "ghost", "")
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_service_DailyLimit(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 100)
	s := newService(repository.NewPostSubmissionRepository())

	limit := xcontext.Configs(ctx).Submission.DailyLimit
	for i := 0; i < limit; i++ {
		_, err := s.CheckEligibility(ctx, "user1", "")
		require.NoError(t, err)

		_, err = s.Submit(ctx, validRequest())
		require.NoError(t, err)
	}

	_, err := s.CheckEligibility(ctx, "user1", "")
	require.True(t, errorx.Is(err, errorx.DailyLimitReached))
}

func Test_service_Submit_LimitReachedBeforeFee(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 20)
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Profile{}).
		Where("id=?", "user1").Update("daily_submission_limit", 1).Error)
	s := newService(repository.NewPostSubmissionRepository())

	// Both checks pass before either submission lands.
	_, err := s.CheckEligibility(ctx, "user1", "")
	require.NoError(t, err)
	_, err = s.CheckEligibility(ctx, "user1", "")
	require.NoError(t, err)

	first, err := s.Submit(ctx, validRequest())
	require.NoError(t, err)
	require.True(t, first.Succeeded())

	second, err := s.Submit(ctx, validRequest())
	require.True(t, errorx.Is(err, errorx.DailyLimitReached))
	require.Equal(t, outcome.Rejected, second.Status)

	profile := testutil.GetProfile(ctx, "user1")
	require.Equal(t, int64(15), profile.TotalPoints)
	require.Equal(t, 1, profile.DailySubmissionsUsed)
	require.Equal(t, int64(1), testutil.CountRows(ctx, &entity.PostSubmission{}, ""))
	require.Equal(t, int64(1), testutil.CountRows(ctx, &entity.PointHistory{}, "user_id=?", "user1"))
	require.Equal(t, int64(0), testutil.CountRows(ctx, &entity.Reconciliation{}, ""))
}

func Test_service_Submit_FeeFailureReleasesSlot(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 10)
	s := newService(repository.NewPostSubmissionRepository())
	s.ledger = unavailableLedger{s.ledger}

	result, err := s.Submit(ctx, validRequest())
	require.True(t, errorx.Is(err, errorx.Unavailable))
	require.Equal(t, outcome.Rejected, result.Status)

	profile := testutil.GetProfile(ctx, "user1")
	require.Equal(t, int64(10), profile.TotalPoints)
	require.Equal(t, 0, profile.DailySubmissionsUsed)
	require.Equal(t, int64(0), testutil.CountRows(ctx, &entity.PostSubmission{}, ""))
}

func Test_service_Submit_CreateFailure(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 10)
	s := newService(failingPostRepo{repository.NewPostSubmissionRepository()})

	result, err := s.Submit(ctx, validRequest())
	require.True(t, errorx.Is(err, errorx.Integrity))
	require.Equal(t, outcome.PartiallyCompleted, result.Status)
	require.Equal(t, StepFeeDebited, result.StepReached)

	// The debit stays and is recorded for reconciliation.
	profile := testutil.GetProfile(ctx, "user1")
	require.Equal(t, int64(5), profile.TotalPoints)
	require.Equal(t, 0, profile.DailySubmissionsUsed)
	require.Equal(t, int64(0), testutil.CountRows(ctx, &entity.PostSubmission{}, ""))
	require.Equal(t, int64(1), testutil.CountRows(ctx, &entity.Reconciliation{},
		"user_id=? AND operation=? AND step_reached=?", "user1", outcome.OperationSubmitPost, StepFeeDebited))
}

func Test_service_Submit_RetryWithRequestID(t *testing.T) {
	ctx := testutil.MockContext()
	setupMember(ctx, 10)
	req := validRequest()
	req.RequestID = "req-1"

	// The first attempt is charged but loses the row.
	_, err := newService(failingPostRepo{repository.NewPostSubmissionRepository()}).Submit(ctx, req)
	require.True(t, errorx.Is(err, errorx.Integrity))

	s := newService(repository.NewPostSubmissionRepository())
	first, err := s.Submit(ctx, req)
	require.NoError(t, err)
	require.True(t, first.Succeeded())

	second, err := s.Submit(ctx, req)
	require.NoError(t, err)
	require.Equal(t, first.SubmissionID, second.SubmissionID)
	require.Equal(t, int64(5), second.Balance)

	require.Equal(t, int64(5), testutil.GetProfile(ctx, "user1").TotalPoints)
	require.Equal(t, int64(1), testutil.CountRows(ctx, &entity.PointHistory{}, "user_id=?", "user1"))
	require.Equal(t, int64(1), testutil.CountRows(ctx, &entity.PostSubmission{}, ""))
}

func Test_validate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Request)
	}{
		{name: "not linkedin", modify: func(r *Request) { r.PostURL = "https://example.com/post" }},
		{name: "unknown industry", modify: func(r *Request) { r.Industry = "Mining" }},
		{name: "zero likes", modify: func(r *Request) { r.TargetLikes = 0 }},
		{name: "too many comments", modify: func(r *Request) { r.TargetComments = 101 }},
		{name: "bad speed", modify: func(r *Request) { r.DeliverySpeed = "instant" }},
		{name: "custom without comment", modify: func(r *Request) { r.CommentStrategy = entity.CommentStrategyCustom }},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(&req)
			require.True(t, errorx.Is(validate(req), errorx.BadRequest))
		})
	}

	require.NoError(t, validate(validRequest()))
}
