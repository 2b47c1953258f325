package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/podlift/backend/internal/domain/cron"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadDatabase()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadLedger()
	defer s.stop()

	cfg := xcontext.Configs(s.ctx).Cron
	manager := cron.NewCronJobManager()
	manager.Register(cron.NewWeeklyResetCronJob(s.ledger, cfg.WeeklyResetDay))
	manager.Register(cron.NewPostExpiryCronJob(s.postRepo))
	manager.Register(cron.NewReconcileCronJob(
		s.profileRepo, s.pointHistoryRepo, s.reconciliationRepo, cfg.ReconcileInterval))

	ctx, cancel := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	manager.Start(ctx)
	xcontext.Logger(s.ctx).Infof("Cron job manager stopped")
	return nil
}
