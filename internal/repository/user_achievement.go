package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type UserAchievementRepository interface {
	GetListByUserID(ctx context.Context, userID string) ([]entity.UserAchievement, error)
	UpdateProgress(ctx context.Context, userID, achievementID string, progress int) error
	Unlock(ctx context.Context, userID, achievementID string, progress int, at time.Time) (bool, error)
}

type userAchievementRepository struct{}

func NewUserAchievementRepository() *userAchievementRepository {
	return &userAchievementRepository{}
}

func (r *userAchievementRepository) GetListByUserID(
	ctx context.Context, userID string,
) ([]entity.UserAchievement, error) {
	var result []entity.UserAchievement
	err := xcontext.DB(ctx).
		Joins("Achievement").
		Where("user_achievements.user_id=?", userID).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateProgress never touches the unlock flag.
func (r *userAchievementRepository) UpdateProgress(
	ctx context.Context, userID, achievementID string, progress int,
) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress_value", "updated_at"}),
	}).Create(&entity.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		ProgressValue: progress,
	}).Error
}

// Unlock flips the achievement to unlocked and reports whether this call did
// it. A concurrent or repeated call for an unlocked achievement returns false.
func (r *userAchievementRepository) Unlock(
	ctx context.Context, userID, achievementID string, progress int, at time.Time,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.UserAchievement{}).
		Where("user_id=? AND achievement_id=? AND is_unlocked=?", userID, achievementID, false).
		Updates(map[string]any{
			"is_unlocked":    true,
			"unlocked_at":    at,
			"progress_value": progress,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected == 1 {
		return true, nil
	}

	err := xcontext.DB(ctx).Omit(clause.Associations).Create(&entity.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		ProgressValue: progress,
		IsUnlocked:    true,
		UnlockedAt:    sql.NullTime{Time: at, Valid: true},
	}).Error
	if err != nil {
		if IsDuplicated(err) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
