package model

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"time"

	"github.com/podlift/backend/internal/entity"
)

const DefaultTimeLayout string = time.RFC3339Nano
const DefaultDateLayout string = "2006-01-02"

func ConvertProfile(profile *entity.Profile) Profile {
	if profile == nil {
		return Profile{}
	}

	return Profile{
		ID:                   profile.ID,
		Email:                profile.Email,
		FullName:             profile.FullName.String,
		AvatarURL:            profile.AvatarURL.String,
		IsAdmin:              profile.IsAdmin,
		TotalPoints:          profile.TotalPoints,
		WeeklyPoints:         profile.WeeklyPoints,
		CurrentStreak:        profile.CurrentStreak,
		LastActivityDate:     convertNullDate(profile.LastActivityDate),
		Plan:                 string(profile.Plan),
		DailySubmissionLimit: profile.DailySubmissionLimit,
		DailySubmissionsUsed: profile.DailySubmissionsUsed,
	}
}

func ConvertShortProfile(profile *entity.Profile) ShortProfile {
	if profile == nil {
		return ShortProfile{}
	}

	return ShortProfile{
		ID:        profile.ID,
		FullName:  profile.FullName.String,
		AvatarURL: profile.AvatarURL.String,
	}
}

func ConvertPod(pod *entity.Pod, memberCount int64) Pod {
	if pod == nil {
		return Pod{}
	}

	return Pod{
		ID:                 pod.ID,
		Name:               pod.Name,
		Description:        pod.Description.String,
		Industry:           pod.Industry,
		IsPublic:           pod.IsPublic,
		IsActive:           pod.IsActive,
		MaxMembers:         pod.MaxMembers,
		MemberCount:        memberCount,
		MinEngagementScore: pod.MinEngagementScore,
		DailyPostLimit:     pod.DailyPostLimit,
		RequiresApproval:   pod.RequiresApproval,
		CreatedAt:          pod.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertSubmission(post *entity.PostSubmission) Submission {
	if post == nil {
		return Submission{}
	}

	return Submission{
		ID:               post.ID,
		UserID:           post.UserID,
		PodID:            post.PodID,
		PostURL:          post.PostURL,
		Title:            post.Title.String,
		Industry:         post.Industry,
		TargetLikes:      post.TargetLikes,
		TargetComments:   post.TargetComments,
		DeliverySpeed:    string(post.DeliverySpeed),
		CommentStrategy:  string(post.CommentStrategy),
		CustomComment:    post.CustomComment.String,
		Status:           string(post.Status),
		CurrentLikes:     post.CurrentLikes,
		CurrentComments:  post.CurrentComments,
		TotalEngagements: post.TotalEngagements,
		SubmittedAt:      post.SubmittedAt.Format(DefaultTimeLayout),
		CompletedAt:      convertNullTime(post.CompletedAt),
		ExpiresAt:        post.ExpiresAt.Format(DefaultTimeLayout),
	}
}

func ConvertSubmissions(posts []entity.PostSubmission) []Submission {
	result := []Submission{}
	for i := range posts {
		result = append(result, ConvertSubmission(&posts[i]))
	}

	return result
}

func ConvertEngagement(engagement *entity.Engagement) Engagement {
	if engagement == nil {
		return Engagement{}
	}

	return Engagement{
		ID:           engagement.ID,
		PodID:        engagement.PodID,
		PostID:       engagement.PostID,
		UserID:       engagement.UserID,
		Type:         string(engagement.Type),
		CommentText:  engagement.CommentText.String,
		PointsEarned: engagement.PointsEarned,
		Status:       string(engagement.Status),
		CreatedAt:    engagement.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPointHistory(history *entity.PointHistory) PointHistory {
	if history == nil {
		return PointHistory{}
	}

	return PointHistory{
		ID:                   strconv.FormatInt(history.ID, 10),
		Points:               history.Points,
		Action:               history.Action,
		Description:          history.Description.String,
		RelatedPostID:        history.RelatedPostID.String,
		RelatedEngagementID:  history.RelatedEngagementID.String,
		RelatedAchievementID: history.RelatedAchievementID.String,
		CreatedAt:            history.CreatedAt.Format(DefaultTimeLayout),
	}
}

func ConvertPointHistories(histories []entity.PointHistory) []PointHistory {
	result := []PointHistory{}
	for i := range histories {
		result = append(result, ConvertPointHistory(&histories[i]))
	}

	return result
}

func ConvertAchievement(achievement *entity.Achievement) Achievement {
	if achievement == nil {
		return Achievement{}
	}

	return Achievement{
		ID:               achievement.ID,
		Name:             achievement.Name,
		Description:      achievement.Description,
		Icon:             achievement.Icon,
		Points:           achievement.Points,
		Rarity:           string(achievement.Rarity),
		RequirementType:  achievement.RequirementType,
		RequirementValue: achievement.RequirementValue,
	}
}

func ConvertReconciliation(r *entity.Reconciliation) Reconciliation {
	if r == nil {
		return Reconciliation{}
	}

	payload := map[string]any{}
	if len(r.Payload) > 0 {
		if err := json.Unmarshal(r.Payload, &payload); err != nil {
			payload = nil
		}
	}

	return Reconciliation{
		ID:          r.ID,
		UserID:      r.UserID,
		Operation:   r.Operation,
		StepReached: r.StepReached,
		Error:       r.Error,
		Payload:     payload,
		CreatedAt:   r.CreatedAt.Format(DefaultTimeLayout),
	}
}

func convertNullTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(DefaultTimeLayout)
}

func convertNullDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}

	return t.Time.Format(DefaultDateLayout)
}
