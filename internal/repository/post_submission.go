package repository

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type SubmissionFilter struct {
	UserID string
	Status entity.PostStatus
	Limit  int
}

type IndustryCount struct {
	Industry string
	Count    int64
}

type PostSubmissionRepository interface {
	Create(ctx context.Context, data *entity.PostSubmission) error
	GetByID(ctx context.Context, id string) (*entity.PostSubmission, error)
	GetList(ctx context.Context, filter SubmissionFilter) ([]entity.PostSubmission, error)
	GetQueue(ctx context.Context, podID, excludedUserID string, limit int) ([]entity.PostSubmission, error)
	IncreaseEngagement(ctx context.Context, id string, engagementType entity.EngagementType) error
	CompleteIfReached(ctx context.Context, id string, at time.Time) (bool, error)
	ExpireBefore(ctx context.Context, at time.Time) (int64, error)
	CountIndustriesByUserID(ctx context.Context, userID string) ([]IndustryCount, error)
}

type postSubmissionRepository struct{}

func NewPostSubmissionRepository() *postSubmissionRepository {
	return &postSubmissionRepository{}
}

func (r *postSubmissionRepository) Create(ctx context.Context, data *entity.PostSubmission) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *postSubmissionRepository) GetByID(ctx context.Context, id string) (*entity.PostSubmission, error) {
	var result entity.PostSubmission
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *postSubmissionRepository) GetList(
	ctx context.Context, filter SubmissionFilter,
) ([]entity.PostSubmission, error) {
	tx := xcontext.DB(ctx).Order("submitted_at DESC")
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var result []entity.PostSubmission
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetQueue returns active posts of the pod which other members may engage
// with, oldest first.
func (r *postSubmissionRepository) GetQueue(
	ctx context.Context, podID, excludedUserID string, limit int,
) ([]entity.PostSubmission, error) {
	var result []entity.PostSubmission
	err := xcontext.DB(ctx).
		Where("pod_id=? AND status=? AND user_id<>?", podID, entity.PostStatusActive, excludedUserID).
		Order("submitted_at ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *postSubmissionRepository) IncreaseEngagement(
	ctx context.Context, id string, engagementType entity.EngagementType,
) error {
	updates := map[string]any{
		"total_engagements": gorm.Expr("total_engagements+1"),
	}

	switch engagementType {
	case entity.EngagementTypeLike:
		updates["current_likes"] = gorm.Expr("current_likes+1")
	case entity.EngagementTypeComment:
		updates["current_comments"] = gorm.Expr("current_comments+1")
	}

	tx := xcontext.DB(ctx).
		Model(&entity.PostSubmission{}).
		Where("id=?", id).
		Updates(updates)

	return checkAffected(tx)
}

// CompleteIfReached marks an active post completed once both targets are met.
// It returns false if the post is not active or a target is still open.
func (r *postSubmissionRepository) CompleteIfReached(ctx context.Context, id string, at time.Time) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.PostSubmission{}).
		Where("id=? AND status=?", id, entity.PostStatusActive).
		Where("current_likes>=target_likes AND current_comments>=target_comments").
		Updates(map[string]any{
			"status":       entity.PostStatusCompleted,
			"completed_at": at,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *postSubmissionRepository) ExpireBefore(ctx context.Context, at time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.PostSubmission{}).
		Where("status IN (?) AND expires_at<?",
			[]entity.PostStatus{entity.PostStatusPending, entity.PostStatusActive}, at).
		Update("status", entity.PostStatusExpired)

	return tx.RowsAffected, tx.Error
}

// CountIndustriesByUserID only counts pending and active posts.
func (r *postSubmissionRepository) CountIndustriesByUserID(
	ctx context.Context, userID string,
) ([]IndustryCount, error) {
	var result []IndustryCount
	err := xcontext.DB(ctx).
		Model(&entity.PostSubmission{}).
		Select("industry, COUNT(*) AS count").
		Where("user_id=? AND status IN ?", userID,
			[]string{string(entity.PostStatusPending), string(entity.PostStatusActive)}).
		Group("industry").
		Order("count DESC").Order("industry ASC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
