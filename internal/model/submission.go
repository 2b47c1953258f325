package model

type SubmitPostRequest struct {
	// RequestID makes a retried submission map to the same row and the same fee.
	RequestID       string `json:"request_id" validate:"max=64"`
	PodID           string `json:"pod_id"`
	PostURL         string `json:"post_url" validate:"required,linkedin_url"`
	Title           string `json:"title" validate:"max=200"`
	Industry        string `json:"industry" validate:"required,industry"`
	TargetLikes     int    `json:"target_likes" validate:"min=1,max=500"`
	TargetComments  int    `json:"target_comments" validate:"min=0,max=100"`
	DeliverySpeed   string `json:"delivery_speed" validate:"required,oneof=slow normal fast"`
	CommentStrategy string `json:"comment_strategy" validate:"required,oneof=ai custom none"`
	CustomComment   string `json:"custom_comment" validate:"required_if=CommentStrategy custom,max=1000"`
}

type SubmitPostResponse struct {
	Outcome
	SubmissionID string `json:"submission_id,omitempty"`
	Balance      int64  `json:"balance"`
}

type GetMySubmissionsRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=pending active completed expired"`
}

type GetMySubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}
