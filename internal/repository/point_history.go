package repository

import (
	"context"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
)

type UserBalance struct {
	UserID string
	Total  int64
}

type PointHistoryRepository interface {
	Create(ctx context.Context, data *entity.PointHistory) error
	GetByIdempotencyKey(ctx context.Context, key string) (*entity.PointHistory, error)
	GetListByUserID(ctx context.Context, userID string, limit int) ([]entity.PointHistory, error)
	SumByUserIDs(ctx context.Context, userIDs []string) (map[string]int64, error)
}

type pointHistoryRepository struct{}

func NewPointHistoryRepository() *pointHistoryRepository {
	return &pointHistoryRepository{}
}

func (r *pointHistoryRepository) Create(ctx context.Context, data *entity.PointHistory) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *pointHistoryRepository) GetByIdempotencyKey(
	ctx context.Context, key string,
) (*entity.PointHistory, error) {
	var result entity.PointHistory
	if err := xcontext.DB(ctx).Take(&result, "idempotency_key=?", key).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetListByUserID returns the newest entries first. Ids are snowflakes, so
// ordering by id is ordering by creation time.
func (r *pointHistoryRepository) GetListByUserID(
	ctx context.Context, userID string, limit int,
) ([]entity.PointHistory, error) {
	var result []entity.PointHistory
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SumByUserIDs is the ledger view of each balance, used to detect drift
// between a profile and its history.
func (r *pointHistoryRepository) SumByUserIDs(
	ctx context.Context, userIDs []string,
) (map[string]int64, error) {
	var rows []UserBalance
	err := xcontext.DB(ctx).
		Model(&entity.PointHistory{}).
		Select("user_id, SUM(points) AS total").
		Where("user_id IN (?)", userIDs).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(userIDs))
	for _, id := range userIDs {
		result[id] = 0
	}
	for _, row := range rows {
		result[row.UserID] = row.Total
	}

	return result, nil
}
