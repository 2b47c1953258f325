package repository

import (
	"context"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
)

type PodRepository interface {
	Create(ctx context.Context, data *entity.Pod) error
	GetByID(ctx context.Context, id string) (*entity.Pod, error)
	GetOpen(ctx context.Context, limit int) ([]entity.Pod, error)
}

type podRepository struct{}

func NewPodRepository() *podRepository {
	return &podRepository{}
}

func (r *podRepository) Create(ctx context.Context, data *entity.Pod) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *podRepository) GetByID(ctx context.Context, id string) (*entity.Pod, error) {
	var result entity.Pod
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetOpen returns active pods with a free seat in creation order, so ties
// between equally sized pods always resolve to the oldest one. The limit is
// applied after full pods are dropped.
func (r *podRepository) GetOpen(ctx context.Context, limit int) ([]entity.Pod, error) {
	members := xcontext.DB(ctx).
		Model(&entity.PodMembership{}).
		Select("COUNT(*)").
		Where("pod_memberships.pod_id=pods.id")

	var result []entity.Pod
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Where("max_members<=0 OR max_members>(?)", members).
		Order("created_at ASC").Order("id ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
