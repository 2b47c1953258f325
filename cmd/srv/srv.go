package main

import (
	"context"
	"net/http"

	"github.com/podlift/backend/internal/domain"
	"github.com/podlift/backend/internal/domain/achievement"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/statistic"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/pubsub"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
)

type srv struct {
	app *cli.App
	ctx context.Context

	redisClient xredis.Client
	publisher   pubsub.Publisher
	stoppers    []func(context.Context) error

	profileRepo         repository.ProfileRepository
	podRepo             repository.PodRepository
	membershipRepo      repository.PodMembershipRepository
	postRepo            repository.PostSubmissionRepository
	engagementRepo      repository.EngagementRepository
	pointHistoryRepo    repository.PointHistoryRepository
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	reconciliationRepo  repository.ReconciliationRepository

	leaderboard statistic.Leaderboard
	analytics   statistic.Analytics
	ledger      ledger.Ledger
	evaluator   achievement.Evaluator
	facade      facade.Facade

	profileDomain     domain.ProfileDomain
	podDomain         domain.PodDomain
	submissionDomain  domain.SubmissionDomain
	engagementDomain  domain.EngagementDomain
	pointDomain       domain.PointDomain
	achievementDomain domain.AchievementDomain
	statisticDomain   domain.StatisticDomain

	router *router.Router
	server *http.Server
}
