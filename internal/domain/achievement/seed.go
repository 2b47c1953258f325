package achievement

import (
	"context"
	"fmt"

	"github.com/podlift/backend/config"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/enum"
	"github.com/podlift/backend/pkg/idutil"
)

// Seed upserts the catalog. Ids derive from names, so seeding twice is a no-op
// and existing unlocks keep pointing to the same rows.
func Seed(ctx context.Context, repo repository.AchievementRepository, seeds []config.AchievementSeed) error {
	for _, s := range seeds {
		if _, err := ParseRequirement(s.RequirementType, s.RequirementValue); err != nil {
			return fmt.Errorf("achievement %s: %w", s.Name, err)
		}

		rarity, err := enum.ToEnum[entity.Rarity](s.Rarity)
		if err != nil {
			return fmt.Errorf("achievement %s: %w", s.Name, err)
		}

		err = repo.Upsert(ctx, &entity.Achievement{
			Base:             entity.Base{ID: idutil.DeterministicID("achievement", s.Name)},
			Name:             s.Name,
			Description:      s.Description,
			Icon:             s.Icon,
			Points:           int64(s.Points),
			Rarity:           rarity,
			RequirementType:  s.RequirementType,
			RequirementValue: s.RequirementValue,
			IsActive:         true,
		})
		if err != nil {
			return fmt.Errorf("achievement %s: %w", s.Name, err)
		}
	}

	return nil
}
