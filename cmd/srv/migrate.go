package main

import (
	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/migration"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(cctx *cli.Context) error {
	s.loadDatabase()

	if err := migration.Migrate(s.ctx); err != nil {
		return err
	}

	if cctx.Bool("skip-seed") {
		return nil
	}

	seeds := xcontext.Configs(s.ctx).Achievements
	if err := achievement.Seed(s.ctx, repository.NewAchievementRepository(), seeds); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Seeded %d achievements", len(seeds))
	return nil
}
