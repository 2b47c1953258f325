package domain

import (
	"testing"
	"time"

	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_podDomain_EnsureMatchedPod_and_GetMyPod(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreateProfile(ctx, "user1", 0)

	s := newSuite(facade.Online)
	domain := NewPodDomain(s.podRepo, s.membershipRepo, s.postRepo, s.facade)
	ctx = xcontext.WithRequestUserID(ctx, "user1")

	_, err := domain.GetMyPod(ctx, &model.GetMyPodRequest{})
	require.True(t, errorx.Is(err, errorx.NotPodMember))

	matched, err := domain.EnsureMatchedPod(ctx, &model.EnsureMatchedPodRequest{})
	require.NoError(t, err)
	require.Equal(t, "pod1", matched.AssignedPodID)

	matched, err = domain.EnsureMatchedPod(ctx, &model.EnsureMatchedPodRequest{})
	require.NoError(t, err)
	require.True(t, matched.AlreadyMember)
	require.Empty(t, matched.AssignedPodID)

	pod, err := domain.GetMyPod(ctx, &model.GetMyPodRequest{})
	require.NoError(t, err)
	require.Equal(t, "pod1", pod.ID)
	require.Equal(t, int64(1), pod.MemberCount)
}

func Test_podDomain_CreatePod(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 0)

	s := newSuite(facade.Online)
	domain := NewPodDomain(s.podRepo, s.membershipRepo, s.postRepo, s.facade)
	ctx = xcontext.WithRequestUserID(ctx, "user1")

	req := &model.CreatePodRequest{Name: "Growth", Industry: "Marketing", IsPublic: true}
	resp, err := domain.CreatePod(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "Growth", resp.Name)
	require.True(t, resp.IsActive)

	_, err = domain.CreatePod(ctx, req)
	require.True(t, errorx.Is(err, errorx.AlreadyExists))

	_, err = domain.CreatePod(ctx, &model.CreatePodRequest{Name: "Bad", Industry: "Gardening"})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func Test_podDomain_GetQueue(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreateProfile(ctx, "author", 0)
	testutil.CreateProfile(ctx, "user1", 0)
	testutil.JoinPod(ctx, "author", "pod1")
	testutil.JoinPod(ctx, "user1", "pod1")
	testutil.CreateSubmission(ctx, "post1", "author", "pod1", 10, 0)
	testutil.CreateSubmission(ctx, "post2", "user1", "pod1", 10, 0)

	s := newSuite(facade.Online)
	domain := NewPodDomain(s.podRepo, s.membershipRepo, s.postRepo, s.facade)

	resp, err := domain.GetQueue(xcontext.WithRequestUserID(ctx, "user1"), &model.GetQueueRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Posts, 1)
	require.Equal(t, "post1", resp.Posts[0].ID)
}
