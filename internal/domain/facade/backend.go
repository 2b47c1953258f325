package facade

import (
	"context"

	"github.com/podlift/backend/internal/model"
)

// Backend is what clients call, whichever store answers. The remote backend
// runs the domain services, the local one keeps state in memory.
type Backend interface {
	EnsureMatchedPod(ctx context.Context, userID string) (*model.EnsureMatchedPodResponse, error)
	SubmitPost(ctx context.Context, userID string, req *model.SubmitPostRequest) (*model.SubmitPostResponse, error)
	CreateEngagement(ctx context.Context, userID string, req *model.CreateEngagementRequest) (*model.CreateEngagementResponse, error)
	UpdatePoints(ctx context.Context, req *model.UpdatePointsRequest) (*model.UpdatePointsResponse, error)
	CheckAchievements(ctx context.Context, userID string) (*model.CheckAchievementsResponse, error)
	GetDashboard(ctx context.Context, userID string) (*model.GetDashboardResponse, error)
}
