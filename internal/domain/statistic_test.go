package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/testutil"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_statisticDomain_GetAnalytics(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreatePod(ctx, "pod1", time.Now())
	testutil.CreateProfile(ctx, "user1", 0)
	testutil.CreateSubmission(ctx, "post1", "user1", "pod1", 10, 0)
	testutil.CreateSubmission(ctx, "post2", "user1", "pod1", 10, 0)
	require.NoError(t, testutil.UpdateSubmission(ctx, "post1", map[string]any{"current_likes": 5, "total_engagements": 5}))

	s := newSuite(facade.Online)
	domain := NewStatisticDomain(s.analytics, s.reconciliationRepo)

	resp, err := domain.GetAnalytics(xcontext.WithRequestUserID(ctx, "user1"), &model.GetAnalyticsRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, resp.TotalSubmissions)
	require.Equal(t, 2, resp.ActiveSubmissions)
	require.Equal(t, 5, resp.EngagementsReceived)
	require.Zero(t, resp.TotalEngagements)
	require.InDelta(t, 25.0, resp.AverageEngagementRate, 0.001)
	require.Equal(t, "Technology", resp.TopIndustry)
}

func Test_statisticDomain_Reconciliations(t *testing.T) {
	ctx := testutil.MockContext()
	s := newSuite(facade.Online)
	domain := NewStatisticDomain(s.analytics, s.reconciliationRepo)

	reporter := outcome.NewIntegrityReporter(s.reconciliationRepo, nil)
	err := reporter.Report(ctx, outcome.Incident{
		UserID:      "user1",
		Operation:   "submit_post",
		StepReached: "fee_debited",
		Err:         errors.New("insert failed"),
		Payload:     map[string]any{"submission_id": "sub1"},
	})
	require.True(t, errorx.Is(err, errorx.Integrity))

	ctx = xcontext.WithRequestUserID(ctx, "admin")
	list, err := domain.GetReconciliations(ctx, &model.GetReconciliationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Reconciliations, 1)
	require.Equal(t, "fee_debited", list.Reconciliations[0].StepReached)
	require.Equal(t, "sub1", list.Reconciliations[0].Payload["submission_id"])

	id := list.Reconciliations[0].ID
	_, err = domain.ResolveReconciliation(ctx, &model.ResolveReconciliationRequest{ID: id})
	require.NoError(t, err)

	_, err = domain.ResolveReconciliation(ctx, &model.ResolveReconciliationRequest{ID: id})
	require.True(t, errorx.Is(err, errorx.NotFound))

	list, err = domain.GetReconciliations(ctx, &model.GetReconciliationsRequest{})
	require.NoError(t, err)
	require.Empty(t, list.Reconciliations)
}
