package ledger

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/pubsub"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type failingHistoryRepo struct {
	repository.PointHistoryRepository
}

func (r *failingHistoryRepo) Create(ctx context.Context, data *entity.PointHistory) error {
	return errors.New("disk full")
}

func newLedger(historyRepo repository.PointHistoryRepository, publisher pubsub.Publisher) *ledger {
	profileRepo := repository.NewProfileRepository()
	return New(profileRepo, historyRepo, statistic.New(profileRepo, nil), publisher)
}

func sumHistory(t *testing.T, ctx context.Context, userID string) int64 {
	sums, err := repository.NewPointHistoryRepository().SumByUserIDs(ctx, []string{userID})
	require.NoError(t, err)
	return sums[userID]
}

func Test_ledger_Apply(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 0)
	publisher := &testutil.MockPublisher{}
	l := newLedger(repository.NewPointHistoryRepository(), publisher)

	receipt, err := l.Apply(ctx, Delta{UserID: "user1", Points: 3, Action: ActionComment, Description: "Earned 3 points for comment"})
	require.NoError(t, err)
	require.Equal(t, int64(3), receipt.Balance)
	require.False(t, receipt.Duplicated)

	receipt, err = l.Apply(ctx, Delta{UserID: "user1", Points: -2, Action: ActionSubmission})
	require.NoError(t, err)
	require.Equal(t, int64(1), receipt.Balance)

	profile := testutil.GetProfile(ctx, "user1")
	require.Equal(t, int64(1), profile.TotalPoints)
	require.Equal(t, int64(3), profile.WeeklyPoints)
	require.Equal(t, int64(1), sumHistory(t, ctx, "user1"))
	require.Equal(t, 2, publisher.Count(model.TopicPointsChanged))
}

func Test_ledger_Apply_Idempotent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)
	l := newLedger(repository.NewPointHistoryRepository(), nil)

	delta := Delta{UserID: "user1", Points: 1, Action: ActionLike, IdempotencyKey: "engagement:e1"}
	first, err := l.Apply(ctx, delta)
	require.NoError(t, err)

	second, err := l.Apply(ctx, delta)
	require.NoError(t, err)
	require.True(t, second.Duplicated)
	require.Equal(t, first.HistoryID, second.HistoryID)
	require.Equal(t, int64(11), second.Balance)

	require.Equal(t, int64(1), testutil.CountRows(ctx, &entity.PointHistory{}, "user_id=?", "user1"))
}

func Test_ledger_Apply_Invalid(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)
	l := newLedger(repository.NewPointHistoryRepository(), nil)

	_, err := l.Apply(ctx, Delta{UserID: "user1", Points: 0, Action: ActionLike})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = l.Apply(ctx, Delta{UserID: "user1", Points: 1})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = l.Apply(ctx, Delta{UserID: "ghost", Points: 1, Action: ActionLike})
	require.True(t, errorx.Is(err, errorx.NotFound))
	require.Zero(t, testutil.CountRows(ctx, &entity.PointHistory{}, ""))
}

func Test_ledger_Apply_HistoryFailureRollsBack(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)
	l := newLedger(&failingHistoryRepo{repository.NewPointHistoryRepository()}, nil)

	_, err := l.Apply(ctx, Delta{UserID: "user1", Points: 5, Action: ActionLike})
	require.Error(t, err)
	require.Equal(t, int64(10), testutil.GetProfile(ctx, "user1").TotalPoints)
}

func Test_ledger_BalanceMatchesHistoryUnderConcurrency(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 0)
	l := newLedger(repository.NewPointHistoryRepository(), nil)

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	deltas := make([]int64, 40)
	for i := range deltas {
		deltas[i] = int64(r.Intn(11) - 5)
		if deltas[i] == 0 {
			deltas[i] = 1
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	for _, d := range deltas {
		d := d
		eg.Go(func() error {
			_, err := l.Apply(egCtx, Delta{UserID: "user1", Points: d, Action: "Manual adjustment"})
			return err
		})
	}
	require.NoError(t, eg.Wait())

	var expected int64
	for _, d := range deltas {
		expected += d
	}

	require.Equal(t, expected, testutil.GetProfile(ctx, "user1").TotalPoints)
	require.Equal(t, expected, sumHistory(t, ctx, "user1"))
}

func Test_ledger_ResetWeekly(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 0)
	l := newLedger(repository.NewPointHistoryRepository(), nil)

	_, err := l.Apply(ctx, Delta{UserID: "user1", Points: 7, Action: ActionComment})
	require.NoError(t, err)

	_, err = l.ResetWeekly(ctx, time.Now())
	require.NoError(t, err)

	profile := testutil.GetProfile(ctx, "user1")
	require.Equal(t, int64(7), profile.TotalPoints)
	require.Zero(t, profile.WeeklyPoints)
}
