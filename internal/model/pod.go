package model

type EnsureMatchedPodRequest struct{}

type EnsureMatchedPodResponse struct {
	// AssignedPodID is set only when this call created the membership.
	AssignedPodID string `json:"assigned_pod_id,omitempty"`
	PodID         string `json:"pod_id"`
	AlreadyMember bool   `json:"already_member"`
}

type CreatePodRequest struct {
	Name             string `json:"name" validate:"required,max=80"`
	Description      string `json:"description" validate:"max=500"`
	Industry         string `json:"industry" validate:"required,industry"`
	IsPublic         bool   `json:"is_public"`
	MaxMembers       int    `json:"max_members" validate:"min=0,max=10000"`
	DailyPostLimit   int    `json:"daily_post_limit" validate:"min=0,max=100"`
	RequiresApproval bool   `json:"requires_approval"`
}

type CreatePodResponse Pod

type GetMyPodRequest struct{}

type GetMyPodResponse Pod

type GetQueueRequest struct{}

type GetQueueResponse struct {
	Posts []Submission `json:"posts"`
}
