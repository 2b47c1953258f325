package testutil

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
)

func CreateProfile(ctx context.Context, id string, points int64) *entity.Profile {
	profile := &entity.Profile{
		Base:                 entity.Base{ID: id},
		Email:                id + "@example.com",
		TotalPoints:          points,
		Plan:                 entity.PlanFree,
		DailySubmissionLimit: xcontext.Configs(ctx).Submission.DailyLimit,
	}

	if err := xcontext.DB(ctx).Create(profile).Error; err != nil {
		panic(err)
	}

	return profile
}

func CreatePod(ctx context.Context, id string, createdAt time.Time) *entity.Pod {
	pod := &entity.Pod{
		Base:     entity.Base{ID: id, CreatedAt: createdAt},
		Name:     "pod " + id,
		Industry: "Technology",
		IsPublic: true,
		IsActive: true,
	}

	if err := xcontext.DB(ctx).Create(pod).Error; err != nil {
		panic(err)
	}

	return pod
}

func JoinPod(ctx context.Context, userID, podID string) {
	err := xcontext.DB(ctx).Omit("Pod").Create(&entity.PodMembership{
		Base:   entity.Base{ID: userID + "-" + podID},
		UserID: userID,
		PodID:  podID,
		Role:   entity.MembershipRoleMember,
		Status: entity.MembershipStatusActive,
	}).Error
	if err != nil {
		panic(err)
	}
}

func CreateSubmission(ctx context.Context, id, userID, podID string, likes, comments int) *entity.PostSubmission {
	now := time.Now()
	post := &entity.PostSubmission{
		Base:            entity.Base{ID: id},
		UserID:          userID,
		PodID:           podID,
		PostURL:         "https://www.linkedin.com/posts/" + id,
		Industry:        "Technology",
		TargetLikes:     likes,
		TargetComments:  comments,
		DeliverySpeed:   entity.DeliverySpeedNormal,
		CommentStrategy: entity.CommentStrategyAI,
		Status:          entity.PostStatusActive,
		SubmittedAt:     now,
		ExpiresAt:       now.Add(7 * 24 * time.Hour),
	}

	if err := xcontext.DB(ctx).Create(post).Error; err != nil {
		panic(err)
	}

	return post
}

func CreateAchievement(ctx context.Context, id, name, requirementType string, value int, points int64) *entity.Achievement {
	achievement := &entity.Achievement{
		Base:             entity.Base{ID: id},
		Name:             name,
		Points:           points,
		Rarity:           entity.RarityCommon,
		RequirementType:  requirementType,
		RequirementValue: value,
		IsActive:         true,
	}

	if err := xcontext.DB(ctx).Create(achievement).Error; err != nil {
		panic(err)
	}

	return achievement
}

func GetProfile(ctx context.Context, id string) *entity.Profile {
	var profile entity.Profile
	if err := xcontext.DB(ctx).Take(&profile, "id=?", id).Error; err != nil {
		panic(err)
	}

	return &profile
}

func CountRows(ctx context.Context, model any, query string, args ...any) int64 {
	var count int64
	tx := xcontext.DB(ctx).Model(model)
	if query != "" {
		tx = tx.Where(query, args...)
	}

	if err := tx.Count(&count).Error; err != nil {
		panic(err)
	}

	return count
}

func UpdateSubmission(ctx context.Context, id string, updates map[string]any) error {
	return xcontext.DB(ctx).Model(&entity.PostSubmission{}).Where("id=?", id).Updates(updates).Error
}
