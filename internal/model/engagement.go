package model

type CreateEngagementRequest struct {
	PodID       string `json:"pod_id" validate:"required"`
	PostID      string `json:"post_id" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=like comment"`
	CommentText string `json:"comment_text" validate:"max=1000"`
}

type CreateEngagementResponse struct {
	Outcome
	EngagementID string `json:"engagement_id,omitempty"`
	PointsEarned int64  `json:"points_earned"`
}

type GetMyEngagementsRequest struct {
	// Date is formatted as DefaultDateLayout. Empty means all days.
	Date string `json:"date"`
}

type GetMyEngagementsResponse struct {
	Engagements []Engagement `json:"engagements"`
}
