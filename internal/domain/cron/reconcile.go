package cron

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/xcontext"
)

const driftPageSize = 500

// Drift is a profile whose stored balance differs from its history.
type Drift struct {
	UserID  string
	Balance int64
	History int64
}

// ReconcileCronJob exposes the pending reconciliation backlog and scans every
// balance against the point history. It only reports, corrections stay manual.
type ReconcileCronJob struct {
	profileRepo        repository.ProfileRepository
	pointHistoryRepo   repository.PointHistoryRepository
	reconciliationRepo repository.ReconciliationRepository
	interval           time.Duration
}

func NewReconcileCronJob(
	profileRepo repository.ProfileRepository,
	pointHistoryRepo repository.PointHistoryRepository,
	reconciliationRepo repository.ReconciliationRepository,
	interval time.Duration,
) *ReconcileCronJob {
	return &ReconcileCronJob{
		profileRepo:        profileRepo,
		pointHistoryRepo:   pointHistoryRepo,
		reconciliationRepo: reconciliationRepo,
		interval:           interval,
	}
}

func (job *ReconcileCronJob) Do(ctx context.Context) {
	unresolved, err := job.reconciliationRepo.CountUnresolved(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count unresolved reconciliations: %v", err)
	} else {
		common.PromGauges[common.UnresolvedReconciliation].WithLabelValues().Set(float64(unresolved))
		if unresolved > 0 {
			xcontext.Logger(ctx).Warnf("There are %d operations waiting for reconciliation", unresolved)
		}
	}

	drifts, err := job.FindDrifts(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check balance drift: %v", err)
		return
	}

	common.PromGauges[common.BalanceDriftProfiles].WithLabelValues().Set(float64(len(drifts)))
	for _, d := range drifts {
		xcontext.Logger(ctx).Warnf("Balance of %s is %d but its history sums to %d",
			d.UserID, d.Balance, d.History)
	}
}

func (job *ReconcileCronJob) FindDrifts(ctx context.Context) ([]Drift, error) {
	drifts := []Drift{}
	for offset := 0; ; offset += driftPageSize {
		userIDs, err := job.profileRepo.GetUserIDs(ctx, offset, driftPageSize)
		if err != nil {
			return nil, err
		}

		if len(userIDs) == 0 {
			return drifts, nil
		}

		profiles, err := job.profileRepo.GetByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}

		sums, err := job.pointHistoryRepo.SumByUserIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}

		for _, p := range profiles {
			if sums[p.ID] != p.TotalPoints {
				drifts = append(drifts, Drift{UserID: p.ID, Balance: p.TotalPoints, History: sums[p.ID]})
			}
		}

		if len(userIDs) < driftPageSize {
			return drifts, nil
		}
	}
}

func (job *ReconcileCronJob) RunNow() bool {
	return true
}

func (job *ReconcileCronJob) Next() time.Time {
	return time.Now().Add(job.interval)
}
