package model

type EnsureProfileRequest struct {
	Email     string `json:"email" validate:"omitempty,email"`
	FullName  string `json:"full_name" validate:"max=120"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type EnsureProfileResponse Profile

type GetMyProfileRequest struct{}

type GetMyProfileResponse Profile

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Profile      Profile           `json:"profile"`
	Pod          *Pod              `json:"pod,omitempty"`
	Queue        []Submission      `json:"queue"`
	History      []PointHistory    `json:"history"`
	Achievements []UserAchievement `json:"achievements"`
	Analytics    Analytics         `json:"analytics"`
}
