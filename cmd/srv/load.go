package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/podlift/backend/config"
	"github.com/podlift/backend/internal/domain"
	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/domain/engagement"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/matcher"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/domain/submission"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/idutil"
	"github.com/podlift/backend/pkg/kafka"
	"github.com/podlift/backend/pkg/logger"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/podlift/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithSnowFlake(s.ctx, idutil.NewSnowflakeNode(1))
	s.loadLogger()
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx).Log
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewWriterLogger(
		os.Stdout, logger.ParseLevel(cfg.Level), cfg.Console))
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "postgres":
		dialector = postgres.Open(cfg.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		panic(fmt.Sprintf("unsupported database driver %q", cfg.Driver))
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		panic(err)
	}

	// Each sqlite connection would otherwise serialize on the file lock.
	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			panic(err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// loadRedisClient leaves the client nil when no address is configured, the
// weekly leaderboard then reads the database directly.
func (s *srv) loadRedisClient() {
	addr := xcontext.Configs(s.ctx).Redis.Addr
	if addr == "" {
		xcontext.Logger(s.ctx).Infof("No redis address, weekly leaderboard is served from database")
		return
	}

	client, err := xredis.NewClient(s.ctx, addr)
	if err != nil {
		panic(err)
	}
	s.redisClient = client
	s.stoppers = append(s.stoppers, func(context.Context) error { return client.Close() })
}

func (s *srv) loadPublisher() {
	addr := xcontext.Configs(s.ctx).Kafka.Addr
	if addr == "" {
		xcontext.Logger(s.ctx).Infof("No kafka address, ledger events are not published")
		return
	}

	publisher, err := kafka.NewPublisher("podlift", []string{addr})
	if err != nil {
		panic(err)
	}
	s.publisher = publisher
	s.stoppers = append(s.stoppers, publisher.Stop)
}

func (s *srv) loadRepos() {
	s.profileRepo = repository.NewProfileRepository()
	s.podRepo = repository.NewPodRepository()
	s.membershipRepo = repository.NewPodMembershipRepository()
	s.postRepo = repository.NewPostSubmissionRepository()
	s.engagementRepo = repository.NewEngagementRepository()
	s.pointHistoryRepo = repository.NewPointHistoryRepository()
	s.achievementRepo = repository.NewAchievementRepository()
	s.userAchievementRepo = repository.NewUserAchievementRepository()
	s.reconciliationRepo = repository.NewReconciliationRepository()
}

func (s *srv) loadLedger() {
	s.leaderboard = statistic.New(s.profileRepo, s.redisClient)
	s.ledger = ledger.New(s.profileRepo, s.pointHistoryRepo, s.leaderboard, s.publisher)
}

func (s *srv) loadFacade() {
	cfg := xcontext.Configs(s.ctx)
	mode, err := facade.ParseRuntimeMode(cfg.Facade.Mode)
	if err != nil {
		panic(err)
	}

	reporter := outcome.NewIntegrityReporter(s.reconciliationRepo, s.publisher)
	s.analytics = statistic.NewAnalytics(s.postRepo, s.engagementRepo)
	s.evaluator = achievement.NewEvaluator(
		s.achievementRepo,
		s.userAchievementRepo,
		s.profileRepo,
		s.engagementRepo,
		s.ledger,
		reporter,
		s.publisher,
	)

	remote := facade.NewRemoteBackend(
		matcher.New(s.profileRepo, s.podRepo, s.membershipRepo),
		submission.NewService(s.postRepo, s.profileRepo, s.membershipRepo, s.ledger, reporter),
		engagement.NewRecorder(s.engagementRepo, s.postRepo, s.membershipRepo, s.profileRepo, s.ledger, reporter),
		s.ledger,
		s.evaluator,
		s.analytics,
		s.profileRepo,
		s.membershipRepo,
		s.postRepo,
		s.pointHistoryRepo,
	)

	s.facade = facade.New(mode, remote, facade.NewLocalBackend(mode), cfg.Facade)
	xcontext.Logger(s.ctx).Infof("Runtime mode is %s", mode)
}

func (s *srv) stop() {
	for _, stop := range s.stoppers {
		if err := stop(s.ctx); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot stop dependency: %v", err)
		}
	}
}

func (s *srv) loadDomains() {
	s.profileDomain = domain.NewProfileDomain(s.profileRepo, s.facade)
	s.podDomain = domain.NewPodDomain(s.podRepo, s.membershipRepo, s.postRepo, s.facade)
	s.submissionDomain = domain.NewSubmissionDomain(s.postRepo, s.facade)
	s.engagementDomain = domain.NewEngagementDomain(s.engagementRepo, s.facade)
	s.pointDomain = domain.NewPointDomain(s.profileRepo, s.pointHistoryRepo, s.leaderboard, s.facade)
	s.achievementDomain = domain.NewAchievementDomain(s.evaluator, s.facade)
	s.statisticDomain = domain.NewStatisticDomain(s.analytics, s.reconciliationRepo)
}
