package repository

import (
	"testing"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_profileRepository_ApplyPoints(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)

	repo := NewProfileRepository()
	require.NoError(t, repo.ApplyPoints(ctx, "user1", -5, 0))
	require.NoError(t, repo.ApplyPoints(ctx, "user1", 3, 3))

	profile, err := repo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(8), profile.TotalPoints)
	require.Equal(t, int64(3), profile.WeeklyPoints)

	require.ErrorIs(t, repo.ApplyPoints(ctx, "unknown", 1, 1), gorm.ErrRecordNotFound)
}

func Test_profileRepository_CreateIfNotExists(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)

	repo := NewProfileRepository()
	require.NoError(t, repo.CreateIfNotExists(ctx, &entity.Profile{Base: entity.Base{ID: "user1"}}))

	profile, err := repo.GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, int64(10), profile.TotalPoints)
	require.Equal(t, "user1@example.com", profile.Email)
}

func Test_profileRepository_IncreaseSubmissionsUsed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)

	repo := NewProfileRepository()
	require.NoError(t, repo.IncreaseSubmissionsUsed(ctx, "user1", 2))
	require.NoError(t, repo.IncreaseSubmissionsUsed(ctx, "user1", 2))
	require.ErrorIs(t, repo.IncreaseSubmissionsUsed(ctx, "user1", 2), gorm.ErrRecordNotFound)

	require.NoError(t, repo.ResetSubmissionQuota(ctx, "user1", time.Now()))
	require.NoError(t, repo.IncreaseSubmissionsUsed(ctx, "user1", 2))
}

func Test_profileRepository_DecreaseSubmissionsUsed(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)

	repo := NewProfileRepository()
	require.NoError(t, repo.IncreaseSubmissionsUsed(ctx, "user1", 1))
	require.NoError(t, repo.DecreaseSubmissionsUsed(ctx, "user1"))
	require.ErrorIs(t, repo.DecreaseSubmissionsUsed(ctx, "user1"), gorm.ErrRecordNotFound)
	require.Equal(t, 0, testutil.GetProfile(ctx, "user1").DailySubmissionsUsed)
}

func Test_profileRepository_Leaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 10)
	testutil.CreateProfile(ctx, "user2", 30)
	testutil.CreateProfile(ctx, "user3", 20)

	repo := NewProfileRepository()
	require.NoError(t, repo.ApplyPoints(ctx, "user1", 0, 7))

	leaders, err := repo.GetLeaderboard(ctx, 2)
	require.NoError(t, err)
	require.Len(t, leaders, 2)
	require.Equal(t, "user2", leaders[0].ID)
	require.Equal(t, "user3", leaders[1].ID)

	weekly, err := repo.GetWeeklyLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Len(t, weekly, 1)
	require.Equal(t, "user1", weekly[0].ID)

	_, err = repo.ResetWeeklyPoints(ctx, time.Now())
	require.NoError(t, err)

	weekly, err = repo.GetWeeklyLeaderboard(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, weekly)
}
