package repository

import (
	"context"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type PodMembershipRepository interface {
	Create(ctx context.Context, data *entity.PodMembership) error
	GetByUserID(ctx context.Context, userID string) (*entity.PodMembership, error)
	CountByPodIDs(ctx context.Context, podIDs []string) (map[string]int64, error)
}

type podMembershipRepository struct{}

func NewPodMembershipRepository() *podMembershipRepository {
	return &podMembershipRepository{}
}

func (r *podMembershipRepository) Create(ctx context.Context, data *entity.PodMembership) error {
	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *podMembershipRepository) GetByUserID(ctx context.Context, userID string) (*entity.PodMembership, error) {
	var result entity.PodMembership
	err := xcontext.DB(ctx).
		Joins("Pod").
		Where("pod_memberships.user_id=?", userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *podMembershipRepository) CountByPodIDs(ctx context.Context, podIDs []string) (map[string]int64, error) {
	type row struct {
		PodID string
		Count int64
	}

	var rows []row
	err := xcontext.DB(ctx).
		Model(&entity.PodMembership{}).
		Select("pod_id, COUNT(*) AS count").
		Where("pod_id IN (?)", podIDs).
		Group("pod_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(podIDs))
	for _, id := range podIDs {
		result[id] = 0
	}
	for _, r := range rows {
		result[r.PodID] = r.Count
	}

	return result, nil
}
