package domain

import (
	"time"

	"github.com/podlift/backend/config"
	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/domain/engagement"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/matcher"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/domain/submission"
	"github.com/podlift/backend/internal/repository"
)

type suite struct {
	profileRepo        repository.ProfileRepository
	podRepo            repository.PodRepository
	membershipRepo     repository.PodMembershipRepository
	postRepo           repository.PostSubmissionRepository
	engagementRepo     repository.EngagementRepository
	pointHistoryRepo   repository.PointHistoryRepository
	reconciliationRepo repository.ReconciliationRepository

	leaderboard statistic.Leaderboard
	analytics   statistic.Analytics
	evaluator   achievement.Evaluator
	facade      facade.Facade
}

// newSuite wires every component against the database in the test context,
// the same way the api server does without redis and kafka.
func newSuite(mode facade.RuntimeMode) *suite {
	s := &suite{
		profileRepo:        repository.NewProfileRepository(),
		podRepo:            repository.NewPodRepository(),
		membershipRepo:     repository.NewPodMembershipRepository(),
		postRepo:           repository.NewPostSubmissionRepository(),
		engagementRepo:     repository.NewEngagementRepository(),
		pointHistoryRepo:   repository.NewPointHistoryRepository(),
		reconciliationRepo: repository.NewReconciliationRepository(),
	}

	reporter := outcome.NewIntegrityReporter(s.reconciliationRepo, nil)
	s.leaderboard = statistic.New(s.profileRepo, nil)
	s.analytics = statistic.NewAnalytics(s.postRepo, s.engagementRepo)

	l := ledger.New(s.profileRepo, s.pointHistoryRepo, s.leaderboard, nil)
	s.evaluator = achievement.NewEvaluator(
		repository.NewAchievementRepository(),
		repository.NewUserAchievementRepository(),
		s.profileRepo,
		s.engagementRepo,
		l,
		reporter,
		nil,
	)

	remote := facade.NewRemoteBackend(
		matcher.New(s.profileRepo, s.podRepo, s.membershipRepo),
		submission.NewService(s.postRepo, s.profileRepo, s.membershipRepo, l, reporter),
		engagement.NewRecorder(s.engagementRepo, s.postRepo, s.membershipRepo, s.profileRepo, l, reporter),
		l,
		s.evaluator,
		s.analytics,
		s.profileRepo,
		s.membershipRepo,
		s.postRepo,
		s.pointHistoryRepo,
	)

	s.facade = facade.New(mode, remote, facade.NewLocalBackend(mode), config.FacadeConfigs{
		FallbackPoints:   42,
		BreakerFailures:  3,
		BreakerOpenDelay: time.Minute,
	})

	return s
}
