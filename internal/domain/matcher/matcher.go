package matcher

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Result struct {
	// AssignedPodID is empty when the user already had a membership.
	AssignedPodID string
	PodID         string
	AlreadyMember bool
}

// Matcher places a user into exactly one pod, the active pod with the fewest
// members. Ties go to the oldest pod.
type Matcher interface {
	EnsureMatched(ctx context.Context, userID string) (*Result, error)
}

type matcher struct {
	profileRepo    repository.ProfileRepository
	podRepo        repository.PodRepository
	membershipRepo repository.PodMembershipRepository
}

func New(
	profileRepo repository.ProfileRepository,
	podRepo repository.PodRepository,
	membershipRepo repository.PodMembershipRepository,
) *matcher {
	return &matcher{
		profileRepo:    profileRepo,
		podRepo:        podRepo,
		membershipRepo: membershipRepo,
	}
}

func (m *matcher) EnsureMatched(ctx context.Context, userID string) (*Result, error) {
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	if result, err := m.existing(ctx, userID); result != nil || err != nil {
		return result, err
	}

	pod, err := m.selectPod(ctx)
	if err != nil {
		return nil, err
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	if err := m.profileRepo.CreateIfNotExists(txCtx, &entity.Profile{
		Base: entity.Base{ID: userID},
		Plan: entity.PlanFree,
	}); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure profile before matching: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	err = m.membershipRepo.Create(txCtx, &entity.PodMembership{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: userID,
		PodID:  pod.ID,
		Role:   entity.MembershipRoleMember,
		Status: entity.MembershipStatusActive,
	})
	if err != nil {
		// A concurrent call for the same user already joined a pod.
		if repository.IsDuplicated(err) {
			xcontext.WithRollbackDBTransaction(txCtx)
			common.PromCounters[common.PodMatchTotal].WithLabelValues("raced").Inc()
			result, err := m.existing(ctx, userID)
			if err == nil && result == nil {
				xcontext.Logger(ctx).Errorf("Membership of user %s conflicted but cannot be found", userID)
				return nil, errorx.Unknown
			}

			return result, err
		}

		xcontext.Logger(ctx).Errorf("Cannot create membership: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	if err := xcontext.WithCommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit membership: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	common.PromCounters[common.PodMatchTotal].WithLabelValues("assigned").Inc()
	xcontext.Logger(ctx).Infof("User %s is assigned to pod %s", userID, pod.ID)

	return &Result{AssignedPodID: pod.ID, PodID: pod.ID}, nil
}

func (m *matcher) existing(ctx context.Context, userID string) (*Result, error) {
	membership, err := m.membershipRepo.GetByUserID(ctx, userID)
	if err == nil {
		common.PromCounters[common.PodMatchTotal].WithLabelValues("already_member").Inc()
		return &Result{PodID: membership.PodID, AlreadyMember: true}, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return nil, nil
}

func (m *matcher) selectPod(ctx context.Context) (*entity.Pod, error) {
	pods, err := m.podRepo.GetOpen(ctx, xcontext.Configs(ctx).Matcher.CandidateLimit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active pods: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	if len(pods) == 0 {
		common.PromCounters[common.PodMatchTotal].WithLabelValues("no_pods").Inc()
		return nil, errorx.New(errorx.NoPodsAvailable, "No active pods available")
	}

	podIDs := make([]string, 0, len(pods))
	for _, p := range pods {
		podIDs = append(podIDs, p.ID)
	}

	counts, err := m.membershipRepo.CountByPodIDs(ctx, podIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count pod members: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return pickSmallest(pods, counts)
}

// pickSmallest keeps the first pod on ties, pods must already be ordered.
func pickSmallest(pods []entity.Pod, counts map[string]int64) (*entity.Pod, error) {
	var chosen *entity.Pod
	var chosenCount int64
	for i := range pods {
		count := counts[pods[i].ID]
		if pods[i].IsFull(count) {
			continue
		}

		if chosen == nil || count < chosenCount {
			chosen = &pods[i]
			chosenCount = count
		}
	}

	if chosen == nil {
		common.PromCounters[common.PodMatchTotal].WithLabelValues("all_full").Inc()
		return nil, errorx.New(errorx.NoPodsAvailable, "All pods are full")
	}

	return chosen, nil
}
