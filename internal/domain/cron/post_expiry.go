package cron

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/xcontext"
)

const postExpiryInterval = time.Hour

// PostExpiryCronJob closes submissions whose delivery window is over. Their
// fee is not refunded.
type PostExpiryCronJob struct {
	postRepo repository.PostSubmissionRepository
}

func NewPostExpiryCronJob(postRepo repository.PostSubmissionRepository) *PostExpiryCronJob {
	return &PostExpiryCronJob{postRepo: postRepo}
}

func (job *PostExpiryCronJob) Do(ctx context.Context) {
	n, err := job.postRepo.ExpireBefore(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot expire submissions: %v", err)
		return
	}

	if n > 0 {
		xcontext.Logger(ctx).Infof("Expired %d submissions", n)
	}
}

func (job *PostExpiryCronJob) RunNow() bool {
	return true
}

func (job *PostExpiryCronJob) Next() time.Time {
	return time.Now().Add(postExpiryInterval).Truncate(postExpiryInterval)
}
