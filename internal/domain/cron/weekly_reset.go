package cron

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/pkg/dateutil"
	"github.com/podlift/backend/pkg/xcontext"
)

// WeeklyResetCronJob zeroes weekly points at the beginning of the configured
// weekday. Profiles already reset for that day are skipped, so a second run in
// the same week keeps the points earned since.
type WeeklyResetCronJob struct {
	ledger  ledger.Ledger
	weekday time.Weekday
}

func NewWeeklyResetCronJob(ledger ledger.Ledger, weekday time.Weekday) *WeeklyResetCronJob {
	return &WeeklyResetCronJob{ledger: ledger, weekday: weekday}
}

func (job *WeeklyResetCronJob) Do(ctx context.Context) {
	day := dateutil.LastWeekday(time.Now(), job.weekday)

	n, err := job.ledger.ResetWeekly(ctx, day)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reset weekly points: %v", err)
		return
	}

	xcontext.Logger(ctx).Infof("Reset weekly points of %d profiles for the week of %s",
		n, day.Format(time.DateOnly))
}

func (job *WeeklyResetCronJob) RunNow() bool {
	return false
}

func (job *WeeklyResetCronJob) Next() time.Time {
	return dateutil.NextWeekday(time.Now(), job.weekday)
}
