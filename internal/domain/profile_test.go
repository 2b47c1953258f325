package domain

import (
	"testing"

	"github.com/podlift/backend/config"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_profileDomain_EnsureProfile(t *testing.T) {
	ctx := testutil.MockContext()
	ctx = testutil.WithConfigs(ctx, func(cfg *config.Configs) {
		cfg.Auth.AdminEmails = []string{"boss@example.com"}
	})

	s := newSuite(facade.Online)
	domain := NewProfileDomain(s.profileRepo, s.facade)

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	resp, err := domain.EnsureProfile(ctx, &model.EnsureProfileRequest{
		Email:    "user1@example.com",
		FullName: "User One",
	})
	require.NoError(t, err)
	require.Equal(t, "user1", resp.ID)
	require.Equal(t, "User One", resp.FullName)
	require.False(t, resp.IsAdmin)
	require.Equal(t, int64(0), resp.TotalPoints)

	// A second call updates the profile but never the points.
	require.NoError(t, s.profileRepo.ApplyPoints(ctx, "user1", 7, 7))
	resp, err = domain.EnsureProfile(ctx, &model.EnsureProfileRequest{
		Email:    "user1@example.com",
		FullName: "Renamed",
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", resp.FullName)
	require.Equal(t, int64(7), resp.TotalPoints)

	adminCtx := xcontext.WithRequestUserID(ctx, "boss")
	admin, err := domain.EnsureProfile(adminCtx, &model.EnsureProfileRequest{Email: "boss@example.com"})
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
}

func Test_profileDomain_EnsureProfile_Offline(t *testing.T) {
	ctx := testutil.MockContext()
	s := newSuite(facade.OfflineDemo)
	domain := NewProfileDomain(s.profileRepo, s.facade)

	ctx = xcontext.WithRequestUserID(ctx, "user1")
	_, err := domain.EnsureProfile(ctx, &model.EnsureProfileRequest{Email: "user1@example.com"})
	require.True(t, errorx.Is(err, errorx.Unavailable))
}

func Test_profileDomain_GetMyProfile(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 12)

	s := newSuite(facade.Online)
	domain := NewProfileDomain(s.profileRepo, s.facade)

	resp, err := domain.GetMyProfile(xcontext.WithRequestUserID(ctx, "user1"), &model.GetMyProfileRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(12), resp.TotalPoints)

	_, err = domain.GetMyProfile(xcontext.WithRequestUserID(ctx, "ghost"), &model.GetMyProfileRequest{})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_profileDomain_GetDashboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateProfile(ctx, "user1", 12)

	s := newSuite(facade.Online)
	domain := NewProfileDomain(s.profileRepo, s.facade)

	resp, err := domain.GetDashboard(xcontext.WithRequestUserID(ctx, "user1"), &model.GetDashboardRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(12), resp.Profile.TotalPoints)
	require.Nil(t, resp.Pod)
}
