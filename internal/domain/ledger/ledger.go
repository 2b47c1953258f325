package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/pubsub"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	ActionLike        = "Liked post"
	ActionComment     = "Commented on post"
	ActionSubmission  = "Post submission"
	ActionAchievement = "Achievement unlocked"
)

// Delta is one signed change of a user balance.
type Delta struct {
	UserID      string
	Points      int64
	Action      string
	Description string

	// IdempotencyKey makes Apply at-most-once per key. Empty disables it.
	IdempotencyKey string

	RelatedPostID        string
	RelatedEngagementID  string
	RelatedAchievementID string
}

type Receipt struct {
	HistoryID  int64
	Balance    int64
	Duplicated bool
}

// Ledger is the only writer of profile balances. Every change updates the
// profile and appends the history entry in one transaction, so the balance
// always equals the sum of the history.
type Ledger interface {
	Apply(ctx context.Context, delta Delta) (*Receipt, error)
	Balance(ctx context.Context, userID string) (int64, error)
	ResetWeekly(ctx context.Context, at time.Time) (int64, error)
}

type ledger struct {
	profileRepo      repository.ProfileRepository
	pointHistoryRepo repository.PointHistoryRepository
	leaderboard      statistic.Leaderboard
	publisher        pubsub.Publisher
}

func New(
	profileRepo repository.ProfileRepository,
	pointHistoryRepo repository.PointHistoryRepository,
	leaderboard statistic.Leaderboard,
	publisher pubsub.Publisher,
) *ledger {
	return &ledger{
		profileRepo:      profileRepo,
		pointHistoryRepo: pointHistoryRepo,
		leaderboard:      leaderboard,
		publisher:        publisher,
	}
}

func (l *ledger) Apply(ctx context.Context, delta Delta) (*Receipt, error) {
	if delta.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user")
	}

	if delta.Action == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty action")
	}

	if delta.Points == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow a zero delta")
	}

	receipt, err := l.apply(ctx, delta)
	if err != nil {
		common.PromCounters[common.LedgerDeltaTotal].WithLabelValues(delta.Action, "failed").Inc()
		return nil, err
	}

	if receipt.Duplicated {
		common.PromCounters[common.LedgerDeltaTotal].WithLabelValues(delta.Action, "duplicated").Inc()
		xcontext.Logger(ctx).Debugf("Delta %s of user %s was already applied", delta.IdempotencyKey, delta.UserID)
		return receipt, nil
	}

	common.PromCounters[common.LedgerDeltaTotal].WithLabelValues(delta.Action, "applied").Inc()
	if delta.Points > 0 {
		common.PromCounters[common.LedgerPointsTotal].WithLabelValues("credit").Add(float64(delta.Points))
	} else {
		common.PromCounters[common.LedgerPointsTotal].WithLabelValues("debit").Add(float64(-delta.Points))
	}

	now := time.Now()
	if err := l.leaderboard.IncreaseWeekly(ctx, delta.UserID, delta.Points, now); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update weekly leaderboard: %v", err)
	}

	common.PublishEvent(ctx, l.publisher, model.TopicPointsChanged, delta.UserID, model.PointsChangedEvent{
		UserID:    delta.UserID,
		HistoryID: receipt.HistoryID,
		Points:    delta.Points,
		Balance:   receipt.Balance,
		Action:    delta.Action,
		At:        now.Format(model.DefaultTimeLayout),
	})

	return receipt, nil
}

func (l *ledger) apply(ctx context.Context, delta Delta) (*Receipt, error) {
	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if delta.IdempotencyKey != "" {
		existing, err := l.pointHistoryRepo.GetByIdempotencyKey(txCtx, delta.IdempotencyKey)
		if err == nil {
			xcontext.WithRollbackDBTransaction(txCtx)
			return l.duplicated(ctx, existing)
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get history by idempotency key: %v", err)
			return nil, common.StoreError(err, errorx.Unknown)
		}
	}

	weeklyDelta := delta.Points
	if weeklyDelta < 0 {
		weeklyDelta = 0
	}

	if err := l.profileRepo.ApplyPoints(txCtx, delta.UserID, delta.Points, weeklyDelta); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found profile")
		}

		xcontext.Logger(ctx).Errorf("Cannot apply points to profile: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	history := &entity.PointHistory{
		ID:                   xcontext.SnowFlake(ctx).Generate().Int64(),
		UserID:               delta.UserID,
		Points:               delta.Points,
		Action:               delta.Action,
		Description:          nullString(delta.Description),
		RelatedPostID:        nullString(delta.RelatedPostID),
		RelatedEngagementID:  nullString(delta.RelatedEngagementID),
		RelatedAchievementID: nullString(delta.RelatedAchievementID),
		IdempotencyKey:       nullString(delta.IdempotencyKey),
	}

	if err := l.pointHistoryRepo.Create(txCtx, history); err != nil {
		// Another request with the same key won the race.
		if delta.IdempotencyKey != "" && repository.IsDuplicated(err) {
			xcontext.WithRollbackDBTransaction(txCtx)
			existing, err := l.pointHistoryRepo.GetByIdempotencyKey(ctx, delta.IdempotencyKey)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get history after duplicated key: %v", err)
				return nil, common.StoreError(err, errorx.Unknown)
			}

			return l.duplicated(ctx, existing)
		}

		xcontext.Logger(ctx).Errorf("Cannot append point history, the balance change is rolled back: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	profile, err := l.profileRepo.GetByID(txCtx, delta.UserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile after applying points: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	if err := xcontext.WithCommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit the balance change: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return &Receipt{HistoryID: history.ID, Balance: profile.TotalPoints}, nil
}

func (l *ledger) duplicated(ctx context.Context, existing *entity.PointHistory) (*Receipt, error) {
	balance, err := l.Balance(ctx, existing.UserID)
	if err != nil {
		return nil, err
	}

	return &Receipt{HistoryID: existing.ID, Balance: balance, Duplicated: true}, nil
}

func (l *ledger) Balance(ctx context.Context, userID string) (int64, error) {
	profile, err := l.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errorx.New(errorx.NotFound, "Not found profile")
		}

		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return 0, common.StoreError(err, errorx.Unknown)
	}

	return profile.TotalPoints, nil
}

// ResetWeekly zeroes every weekly counter. Total points are untouched.
func (l *ledger) ResetWeekly(ctx context.Context, at time.Time) (int64, error) {
	n, err := l.profileRepo.ResetWeeklyPoints(ctx, at)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset weekly points: %v", err)
		return 0, errorx.Unknown
	}

	if err := l.leaderboard.ResetWeekly(ctx, at); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot reset weekly leaderboard cache: %v", err)
	}

	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
