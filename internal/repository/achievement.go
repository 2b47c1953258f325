package repository

import (
	"context"

	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AchievementRepository interface {
	Upsert(ctx context.Context, data *entity.Achievement) error
	GetByID(ctx context.Context, id string) (*entity.Achievement, error)
	GetActive(ctx context.Context) ([]entity.Achievement, error)
}

type achievementRepository struct{}

func NewAchievementRepository() *achievementRepository {
	return &achievementRepository{}
}

// Upsert keys the catalog by name, reseeding never changes an achievement id.
func (r *achievementRepository) Upsert(ctx context.Context, data *entity.Achievement) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"description", "icon", "points", "rarity",
			"requirement_type", "requirement_value", "is_active", "updated_at",
		}),
	}).Create(data).Error
}

func (r *achievementRepository) GetByID(ctx context.Context, id string) (*entity.Achievement, error) {
	var result entity.Achievement
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *achievementRepository) GetActive(ctx context.Context) ([]entity.Achievement, error) {
	var result []entity.Achievement
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("requirement_type ASC").Order("requirement_value ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
