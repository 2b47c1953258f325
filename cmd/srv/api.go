package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/middleware"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/pkg/authenticator"
	"github.com/podlift/backend/pkg/prometheus"
	"github.com/podlift/backend/pkg/router"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadLedger()
	s.loadFacade()
	s.loadDomains()
	s.loadRouter()
	defer s.stop()

	cfg := xcontext.Configs(s.ctx).ApiServer
	s.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           middleware.AllowCors(cfg.AllowedOrigins, s.router.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Server start in %s", cfg.Address())
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	cfg := xcontext.Configs(s.ctx)
	s.router = router.New(s.ctx)
	s.router.AddCloser(middleware.Logger(), middleware.Prometheus())

	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration)

	// Auth API
	{
		authRouter := s.router.Branch()
		authRouter.Before(middleware.NewAuthVerifier().WithAccessToken(tokenEngine).Middleware())

		router.POST(authRouter, "/ensureProfile", s.profileDomain.EnsureProfile)
		router.GET(authRouter, "/getProfile", s.profileDomain.GetMyProfile)
		router.GET(authRouter, "/getDashboard", s.profileDomain.GetDashboard)

		router.POST(authRouter, "/ensureMatchedPod", s.podDomain.EnsureMatchedPod)
		router.GET(authRouter, "/getMyPod", s.podDomain.GetMyPod)
		router.GET(authRouter, "/getQueue", s.podDomain.GetQueue)

		router.POST(authRouter, "/submitPost", s.submissionDomain.SubmitPost)
		router.GET(authRouter, "/getSubmissions", s.submissionDomain.GetMySubmissions)

		router.POST(authRouter, "/createEngagement", s.engagementDomain.CreateEngagement)
		router.GET(authRouter, "/getEngagements", s.engagementDomain.GetMyEngagements)

		router.GET(authRouter, "/getPointHistory", s.pointDomain.GetPointHistory)
		router.GET(authRouter, "/getLeaderboard", s.pointDomain.GetLeaderboard)
		router.GET(authRouter, "/getWeeklyLeaderboard", s.pointDomain.GetWeeklyLeaderboard)

		router.POST(authRouter, "/checkAchievements", s.achievementDomain.CheckAchievements)
		router.GET(authRouter, "/getAchievements", s.achievementDomain.GetMyAchievements)

		router.GET(authRouter, "/getAnalytics", s.statisticDomain.GetAnalytics)
	}

	// Admin API
	{
		adminRouter := s.router.Branch()
		adminRouter.Before(middleware.NewAuthVerifier().WithAccessToken(tokenEngine).Middleware())
		adminRouter.Before(middleware.NewOnlyAdmin(s.profileRepo).Middleware())

		router.POST(adminRouter, "/createPod", s.podDomain.CreatePod)
		router.POST(adminRouter, "/updatePoints", s.pointDomain.UpdatePoints)
		router.GET(adminRouter, "/getReconciliations", s.statisticDomain.GetReconciliations)
		router.POST(adminRouter, "/resolveReconciliation", s.statisticDomain.ResolveReconciliation)
	}

	s.router.Handle("/metrics", prometheus.NewHandler(common.PromCollectors()...))
}
