package repository

import (
	"testing"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_postSubmissionRepository_CompleteIfReached(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateSubmission(ctx, "post1", "user1", "pod1", 1, 1)

	repo := NewPostSubmissionRepository()
	require.NoError(t, repo.IncreaseEngagement(ctx, "post1", entity.EngagementTypeLike))

	completed, err := repo.CompleteIfReached(ctx, "post1", time.Now())
	require.NoError(t, err)
	require.False(t, completed)

	require.NoError(t, repo.IncreaseEngagement(ctx, "post1", entity.EngagementTypeComment))
	completed, err = repo.CompleteIfReached(ctx, "post1", time.Now())
	require.NoError(t, err)
	require.True(t, completed)

	post, err := repo.GetByID(ctx, "post1")
	require.NoError(t, err)
	require.Equal(t, entity.PostStatusCompleted, post.Status)
	require.Equal(t, 2, post.TotalEngagements)

	completed, err = repo.CompleteIfReached(ctx, "post1", time.Now())
	require.NoError(t, err)
	require.False(t, completed)
}

func Test_postSubmissionRepository_GetQueue(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateSubmission(ctx, "post1", "user1", "pod1", 10, 0)
	testutil.CreateSubmission(ctx, "post2", "user2", "pod1", 10, 0)
	testutil.CreateSubmission(ctx, "post3", "user2", "pod2", 10, 0)

	queue, err := NewPostSubmissionRepository().GetQueue(ctx, "pod1", "user1", 10)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	require.Equal(t, "post2", queue[0].ID)
}

func Test_postSubmissionRepository_ExpireBefore(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateSubmission(ctx, "post1", "user1", "pod1", 10, 0)

	repo := NewPostSubmissionRepository()
	n, err := repo.ExpireBefore(ctx, time.Now())
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = repo.ExpireBefore(ctx, time.Now().Add(8*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
}
