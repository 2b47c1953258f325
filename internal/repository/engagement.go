package repository

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/dateutil"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type EngagementFilter struct {
	UserID string
	// Day limits the result to the UTC calendar day of the given time.
	Day   *time.Time
	Limit int
}

type EngagementRepository interface {
	Create(ctx context.Context, data *entity.Engagement) error
	GetList(ctx context.Context, filter EngagementFilter) ([]entity.Engagement, error)
	Count(ctx context.Context, filter EngagementFilter) (int64, error)
}

type engagementRepository struct{}

func NewEngagementRepository() *engagementRepository {
	return &engagementRepository{}
}

func (r *engagementRepository) Create(ctx context.Context, data *entity.Engagement) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *engagementRepository) GetList(ctx context.Context, filter EngagementFilter) ([]entity.Engagement, error) {
	tx := r.filter(ctx, filter).Order("created_at DESC")
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}

	var result []entity.Engagement
	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *engagementRepository) Count(ctx context.Context, filter EngagementFilter) (int64, error) {
	var result int64
	if err := r.filter(ctx, filter).Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

func (r *engagementRepository) filter(ctx context.Context, filter EngagementFilter) *gorm.DB {
	tx := xcontext.DB(ctx).Model(&entity.Engagement{})
	if filter.UserID != "" {
		tx = tx.Where("user_id=?", filter.UserID)
	}

	if filter.Day != nil {
		tx = tx.Where("created_at>=? AND created_at<?",
			dateutil.BeginningOfDay(*filter.Day), dateutil.NextDay(*filter.Day))
	}

	return tx
}
