package repository

import (
	"testing"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_podRepository_GetOpen(t *testing.T) {
	ctx := testutil.MockContext()
	now := time.Now()
	testutil.CreatePod(ctx, "pod2", now.Add(time.Minute))
	testutil.CreatePod(ctx, "pod1", now)
	inactive := testutil.CreatePod(ctx, "pod3", now.Add(-time.Minute))
	require.NoError(t, xcontext.DB(ctx).Model(inactive).Update("is_active", false).Error)

	pods, err := NewPodRepository().GetOpen(ctx, 50)
	require.NoError(t, err)
	require.Len(t, pods, 2)
	require.Equal(t, "pod1", pods[0].ID)
	require.Equal(t, "pod2", pods[1].ID)

	// A full pod is dropped before the limit, so the next one still shows up.
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Pod{}).Where("id=?", "pod1").Update("max_members", 1).Error)
	testutil.JoinPod(ctx, "user1", "pod1")

	pods, err = NewPodRepository().GetOpen(ctx, 1)
	require.NoError(t, err)
	require.Len(t, pods, 1)
	require.Equal(t, "pod2", pods[0].ID)
}

func Test_podMembershipRepository(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreatePod(ctx, "pod2", time.Now())

	repo := NewPodMembershipRepository()
	require.NoError(t, repo.Create(ctx, &entity.PodMembership{
		Base: entity.Base{ID: "m1"}, UserID: "user1", PodID: "pod1",
	}))

	err := repo.Create(ctx, &entity.PodMembership{
		Base: entity.Base{ID: "m2"}, UserID: "user1", PodID: "pod2",
	})
	require.True(t, IsDuplicated(err))

	membership, err := repo.GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, "pod1", membership.PodID)
	require.Equal(t, "pod pod1", membership.Pod.Name)

	counts, err := repo.CountByPodIDs(ctx, []string{"pod1", "pod2"})
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"pod1": 1, "pod2": 0}, counts)
}
