package model

type UpdatePointsRequest struct {
	UserID         string `json:"user_id" validate:"required"`
	Points         int64  `json:"points" validate:"required"`
	Action         string `json:"action" validate:"required,max=100"`
	Description    string `json:"description" validate:"max=500"`
	IdempotencyKey string `json:"idempotency_key" validate:"max=128"`
}

type UpdatePointsResponse struct {
	HistoryID  string `json:"history_id,omitempty"`
	Balance    int64  `json:"balance"`
	Duplicated bool   `json:"duplicated"`
}

type GetPointHistoryRequest struct{}

type GetPointHistoryResponse struct {
	History []PointHistory `json:"history"`
}

type GetLeaderboardRequest struct{}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type GetWeeklyLeaderboardRequest struct{}

type GetWeeklyLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
