package repository

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Create(ctx context.Context, data *entity.Profile) error
	CreateIfNotExists(ctx context.Context, data *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Profile, error)
	UpdateByID(ctx context.Context, id string, data *entity.Profile) error
	ApplyPoints(ctx context.Context, id string, delta, weeklyDelta int64) error
	UpdateStreak(ctx context.Context, id string, streak int, day time.Time) error
	ResetSubmissionQuota(ctx context.Context, id string, day time.Time) error
	IncreaseSubmissionsUsed(ctx context.Context, id string, limit int) error
	DecreaseSubmissionsUsed(ctx context.Context, id string) error
	GetLeaderboard(ctx context.Context, limit int) ([]entity.Profile, error)
	GetWeeklyLeaderboard(ctx context.Context, limit int) ([]entity.Profile, error)
	ResetWeeklyPoints(ctx context.Context, day time.Time) (int64, error)
	GetUserIDs(ctx context.Context, offset, limit int) ([]string, error)
}

type profileRepository struct{}

func NewProfileRepository() *profileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(ctx context.Context, data *entity.Profile) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *profileRepository) CreateIfNotExists(ctx context.Context, data *entity.Profile) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(data).Error
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var result entity.Profile
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *profileRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Profile, error) {
	var result []entity.Profile
	if err := xcontext.DB(ctx).Where("id IN (?)", ids).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) UpdateByID(ctx context.Context, id string, data *entity.Profile) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=?", id).
		Omit("total_points", "weekly_points").
		Updates(data)

	return checkAffected(tx)
}

// ApplyPoints changes the balance relative to the stored value, so concurrent
// deltas never overwrite each other.
func (r *profileRepository) ApplyPoints(ctx context.Context, id string, delta, weeklyDelta int64) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=?", id).
		Updates(map[string]any{
			"total_points":  gorm.Expr("total_points+?", delta),
			"weekly_points": gorm.Expr("weekly_points+?", weeklyDelta),
		})

	return checkAffected(tx)
}

func (r *profileRepository) UpdateStreak(ctx context.Context, id string, streak int, day time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=?", id).
		Updates(map[string]any{
			"current_streak":     streak,
			"last_activity_date": day,
		})

	return checkAffected(tx)
}

func (r *profileRepository) ResetSubmissionQuota(ctx context.Context, id string, day time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=?", id).
		Updates(map[string]any{
			"daily_submissions_used": 0,
			"submissions_reset_date": day,
		})

	return checkAffected(tx)
}

// IncreaseSubmissionsUsed returns gorm.ErrRecordNotFound when the quota is
// already exhausted.
func (r *profileRepository) IncreaseSubmissionsUsed(ctx context.Context, id string, limit int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=? AND daily_submissions_used<?", id, limit).
		Update("daily_submissions_used", gorm.Expr("daily_submissions_used+1"))

	return checkAffected(tx)
}

func (r *profileRepository) DecreaseSubmissionsUsed(ctx context.Context, id string) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("id=? AND daily_submissions_used>0", id).
		Update("daily_submissions_used", gorm.Expr("daily_submissions_used-1"))

	return checkAffected(tx)
}

func (r *profileRepository) GetLeaderboard(ctx context.Context, limit int) ([]entity.Profile, error) {
	var result []entity.Profile
	err := xcontext.DB(ctx).
		Order("total_points DESC").Order("id ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetWeeklyLeaderboard returns every profile with weekly points when limit is
// not positive.
func (r *profileRepository) GetWeeklyLeaderboard(ctx context.Context, limit int) ([]entity.Profile, error) {
	tx := xcontext.DB(ctx).
		Where("weekly_points>0").
		Order("weekly_points DESC").Order("id ASC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}

	var result []entity.Profile
	err := tx.Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *profileRepository) ResetWeeklyPoints(ctx context.Context, day time.Time) (int64, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Where("weekly_reset_date IS NULL OR weekly_reset_date<?", day).
		Updates(map[string]any{
			"weekly_points":     0,
			"weekly_reset_date": day,
		})

	return tx.RowsAffected, tx.Error
}

func (r *profileRepository) GetUserIDs(ctx context.Context, offset, limit int) ([]string, error) {
	var result []string
	err := xcontext.DB(ctx).
		Model(&entity.Profile{}).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Pluck("id", &result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
