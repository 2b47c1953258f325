package repository

import (
	"database/sql"
	"testing"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_pointHistoryRepository(t *testing.T) {
	ctx := testutil.MockContext()
	repo := NewPointHistoryRepository()

	key := sql.NullString{String: "engagement:e1", Valid: true}
	require.NoError(t, repo.Create(ctx, &entity.PointHistory{ID: 1, UserID: "user1", Points: 3, Action: "Commented on post", IdempotencyKey: key}))
	require.NoError(t, repo.Create(ctx, &entity.PointHistory{ID: 2, UserID: "user1", Points: -5, Action: "Post submission"}))
	require.NoError(t, repo.Create(ctx, &entity.PointHistory{ID: 3, UserID: "user1", Points: 1, Action: "Liked post"}))

	err := repo.Create(ctx, &entity.PointHistory{ID: 4, UserID: "user1", Points: 3, Action: "Commented on post", IdempotencyKey: key})
	require.True(t, IsDuplicated(err))

	history, err := repo.GetByIdempotencyKey(ctx, "engagement:e1")
	require.NoError(t, err)
	require.Equal(t, int64(1), history.ID)

	list, err := repo.GetListByUserID(ctx, "user1", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, int64(3), list[0].ID)

	sums, err := repo.SumByUserIDs(ctx, []string{"user1", "user2"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"user1": -1, "user2": 0}, sums)
}
