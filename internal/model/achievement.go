package model

type CheckAchievementsRequest struct{}

type CheckAchievementsResponse struct {
	Unlocked []Achievement `json:"unlocked"`
}

type GetMyAchievementsRequest struct{}

type GetMyAchievementsResponse struct {
	Achievements []UserAchievement `json:"achievements"`
}
