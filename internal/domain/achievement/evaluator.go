package achievement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/idutil"
	"github.com/podlift/backend/pkg/pubsub"
	"github.com/podlift/backend/pkg/xcontext"
)

// Evaluator unlocks every catalog achievement whose requirement the user
// meets. Unlocks are monotonic and each reward is credited at most once.
type Evaluator interface {
	CheckAndUnlock(ctx context.Context, userID string) ([]entity.Achievement, error)
	ListProgress(ctx context.Context, userID string) ([]Progress, error)
}

type Progress struct {
	Achievement entity.Achievement
	Value       int
	Unlocked    bool
	UnlockedAt  sql.NullTime
}

func (p Progress) Model() model.UserAchievement {
	result := model.UserAchievement{
		Achievement:   model.ConvertAchievement(&p.Achievement),
		ProgressValue: p.Value,
		IsUnlocked:    p.Unlocked,
	}
	if p.UnlockedAt.Valid {
		result.UnlockedAt = p.UnlockedAt.Time.Format(model.DefaultTimeLayout)
	}

	return result
}

func ProgressModels(progress []Progress) []model.UserAchievement {
	result := make([]model.UserAchievement, 0, len(progress))
	for _, p := range progress {
		result = append(result, p.Model())
	}

	return result
}

type evaluator struct {
	achievementRepo     repository.AchievementRepository
	userAchievementRepo repository.UserAchievementRepository
	profileRepo         repository.ProfileRepository
	engagementRepo      repository.EngagementRepository
	ledger              ledger.Ledger
	reporter            outcome.IntegrityReporter
	publisher           pubsub.Publisher
}

func NewEvaluator(
	achievementRepo repository.AchievementRepository,
	userAchievementRepo repository.UserAchievementRepository,
	profileRepo repository.ProfileRepository,
	engagementRepo repository.EngagementRepository,
	ledger ledger.Ledger,
	reporter outcome.IntegrityReporter,
	publisher pubsub.Publisher,
) *evaluator {
	return &evaluator{
		achievementRepo:     achievementRepo,
		userAchievementRepo: userAchievementRepo,
		profileRepo:         profileRepo,
		engagementRepo:      engagementRepo,
		ledger:              ledger,
		reporter:            reporter,
		publisher:           publisher,
	}
}

func (e *evaluator) CheckAndUnlock(ctx context.Context, userID string) ([]entity.Achievement, error) {
	catalog, err := e.achievementRepo.GetActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement catalog: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	owned, err := e.userAchievementRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user achievements: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	unlockedIDs := map[string]bool{}
	progressByID := map[string]int{}
	for _, ua := range owned {
		unlockedIDs[ua.AchievementID] = ua.IsUnlocked
		progressByID[ua.AchievementID] = ua.ProgressValue
	}

	type candidate struct {
		achievement entity.Achievement
		requirement Requirement
	}

	candidates := []candidate{}
	needEngagements := false
	for _, a := range catalog {
		if unlockedIDs[a.ID] {
			continue
		}

		req, err := ParseRequirement(a.RequirementType, a.RequirementValue)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Skip achievement %s: %v", a.Name, err)
			continue
		}

		candidates = append(candidates, candidate{achievement: a, requirement: req})
		needEngagements = needEngagements || needsEngagementCount(req)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	stats, err := e.loadStats(ctx, userID, needEngagements)
	if err != nil {
		return nil, err
	}

	// A reward can push the balance over another threshold, so keep passing
	// over the locked ones until nothing new is credited.
	unlocked := []entity.Achievement{}
	locked := candidates
	for len(locked) > 0 {
		credited := false
		remaining := []candidate{}
		for _, c := range locked {
			if !Satisfied(c.requirement, stats) {
				remaining = append(remaining, c)
				continue
			}

			ok, receipt, err := e.unlock(ctx, userID, c.achievement, c.requirement.Progress(stats))
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot unlock achievement %s: %v", c.achievement.Name, err)
				continue
			}

			if ok {
				unlocked = append(unlocked, c.achievement)
			}

			if receipt != nil && !receipt.Duplicated {
				stats.TotalPoints = receipt.Balance
				credited = true
			}
		}

		locked = remaining
		if !credited {
			break
		}
	}

	for _, c := range locked {
		progress := c.requirement.Progress(stats)
		if progress == progressByID[c.achievement.ID] {
			continue
		}

		err := e.userAchievementRepo.UpdateProgress(ctx, userID, c.achievement.ID, progress)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update progress of achievement %s: %v", c.achievement.Name, err)
		}
	}

	return unlocked, nil
}

// ListProgress reports every active achievement. Locked ones are measured
// live, unlocked ones keep the progress stored at unlock time.
func (e *evaluator) ListProgress(ctx context.Context, userID string) ([]Progress, error) {
	catalog, err := e.achievementRepo.GetActive(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement catalog: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	owned, err := e.userAchievementRepo.GetListByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user achievements: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	ownedByID := map[string]entity.UserAchievement{}
	for _, ua := range owned {
		ownedByID[ua.AchievementID] = ua
	}

	needEngagements := false
	requirements := map[string]Requirement{}
	for _, a := range catalog {
		req, err := ParseRequirement(a.RequirementType, a.RequirementValue)
		if err != nil {
			continue
		}

		requirements[a.ID] = req
		needEngagements = needEngagements || needsEngagementCount(req)
	}

	stats, err := e.loadStats(ctx, userID, needEngagements)
	if err != nil {
		return nil, err
	}

	result := []Progress{}
	for _, a := range catalog {
		req, ok := requirements[a.ID]
		if !ok {
			continue
		}

		if ua, ok := ownedByID[a.ID]; ok && ua.IsUnlocked {
			result = append(result, Progress{
				Achievement: a,
				Value:       ua.ProgressValue,
				Unlocked:    true,
				UnlockedAt:  ua.UnlockedAt,
			})
			continue
		}

		result = append(result, Progress{Achievement: a, Value: req.Progress(stats)})
	}

	return result, nil
}

// unlock returns false when another call unlocked the achievement first. The
// receipt is nil when no reward was credited.
func (e *evaluator) unlock(
	ctx context.Context, userID string, achievement entity.Achievement, progress int,
) (bool, *ledger.Receipt, error) {
	now := time.Now()
	ok, err := e.userAchievementRepo.Unlock(ctx, userID, achievement.ID, progress, now)
	if err != nil || !ok {
		return false, nil, err
	}

	xcontext.Logger(ctx).Infof("User %s unlocked achievement %s", userID, achievement.Name)

	var receipt *ledger.Receipt
	if achievement.Points > 0 {
		receipt, err = e.ledger.Apply(ctx, ledger.Delta{
			UserID:               userID,
			Points:               achievement.Points,
			Action:               ledger.ActionAchievement,
			Description:          fmt.Sprintf("Unlocked %s achievement", achievement.Name),
			IdempotencyKey:       idutil.Key("achievement", userID, achievement.ID),
			RelatedAchievementID: achievement.ID,
		})
		if err != nil {
			// The unlock stays, the reward can be replayed with the same key.
			e.reporter.Report(ctx, outcome.Incident{
				UserID:      userID,
				Operation:   outcome.OperationUnlockAchievement,
				StepReached: "achievement_unlocked",
				Err:         err,
				Payload: map[string]any{
					"achievement_id":  achievement.ID,
					"points":          achievement.Points,
					"idempotency_key": idutil.Key("achievement", userID, achievement.ID),
				},
			})
		}
	}

	common.PublishEvent(ctx, e.publisher, model.TopicAchievementUnlock, userID, model.AchievementUnlockedEvent{
		UserID:        userID,
		AchievementID: achievement.ID,
		Name:          achievement.Name,
		Points:        achievement.Points,
		At:            now.Format(model.DefaultTimeLayout),
	})

	return true, receipt, nil
}

func (e *evaluator) loadStats(ctx context.Context, userID string, withEngagements bool) (Stats, error) {
	profile, err := e.profileRepo.GetByID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return Stats{}, common.StoreError(err, errorx.Unknown)
	}

	stats := Stats{TotalPoints: profile.TotalPoints, CurrentStreak: profile.CurrentStreak}
	if withEngagements {
		count, err := e.engagementRepo.Count(ctx, repository.EngagementFilter{UserID: userID})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot count engagements: %v", err)
			return Stats{}, common.StoreError(err, errorx.Unknown)
		}

		stats.EngagementCount = count
	}

	return stats, nil
}
