package repository

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
)

type ReconciliationRepository interface {
	Create(ctx context.Context, data *entity.Reconciliation) error
	GetUnresolved(ctx context.Context, limit int) ([]entity.Reconciliation, error)
	CountUnresolved(ctx context.Context) (int64, error)
	Resolve(ctx context.Context, id string, at time.Time) error
}

type reconciliationRepository struct{}

func NewReconciliationRepository() *reconciliationRepository {
	return &reconciliationRepository{}
}

func (r *reconciliationRepository) Create(ctx context.Context, data *entity.Reconciliation) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *reconciliationRepository) GetUnresolved(ctx context.Context, limit int) ([]entity.Reconciliation, error) {
	var result []entity.Reconciliation
	err := xcontext.DB(ctx).
		Where("resolved=?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *reconciliationRepository) CountUnresolved(ctx context.Context) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Reconciliation{}).
		Where("resolved=?", false).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *reconciliationRepository) Resolve(ctx context.Context, id string, at time.Time) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Reconciliation{}).
		Where("id=? AND resolved=?", id, false).
		Updates(map[string]any{"resolved": true, "resolved_at": at})

	return checkAffected(tx)
}
