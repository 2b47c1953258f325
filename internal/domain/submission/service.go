package submission

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/ledger"
	"github.com/podlift/backend/internal/domain/outcome"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/idutil"
	"github.com/podlift/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	StepValidated  = "validated"
	StepFeeDebited = "fee_debited"
	StepCreated    = "submission_created"
)

type Request struct {
	// RequestID makes a retry reuse the submission id and the fee key.
	RequestID       string
	UserID          string
	PodID           string
	PostURL         string
	Title           string
	Industry        string
	TargetLikes     int
	TargetComments  int
	DeliverySpeed   entity.DeliverySpeed
	CommentStrategy entity.CommentStrategy
	CustomComment   string
}

type Result struct {
	outcome.Result
	SubmissionID string
	Balance      int64
}

type Service interface {
	// CheckEligibility must run before Submit. It verifies the balance, the
	// daily quota and the membership, and returns the pod to submit to.
	CheckEligibility(ctx context.Context, userID, podID string) (string, error)

	// Submit debits the fee and creates the submission. It does not check the
	// balance again.
	Submit(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	postRepo       repository.PostSubmissionRepository
	profileRepo    repository.ProfileRepository
	membershipRepo repository.PodMembershipRepository
	ledger         ledger.Ledger
	reporter       outcome.IntegrityReporter
}

func NewService(
	postRepo repository.PostSubmissionRepository,
	profileRepo repository.ProfileRepository,
	membershipRepo repository.PodMembershipRepository,
	ledger ledger.Ledger,
	reporter outcome.IntegrityReporter,
) *service {
	return &service{
		postRepo:       postRepo,
		profileRepo:    profileRepo,
		membershipRepo: membershipRepo,
		ledger:         ledger,
		reporter:       reporter,
	}
}

func (s *service) CheckEligibility(ctx context.Context, userID, podID string) (string, error) {
	cfg := xcontext.Configs(ctx).Submission

	profile, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errorx.New(errorx.NotFound, "Not found profile")
		}

		xcontext.Logger(ctx).Errorf("Cannot get profile: %v", err)
		return "", common.StoreError(err, errorx.Unknown)
	}

	if profile.TotalPoints < cfg.MinBalance {
		return "", errorx.New(errorx.InsufficientBalance,
			"Need at least %d points to submit a post, you have %d", cfg.MinBalance, profile.TotalPoints)
	}

	if usedToday(profile, time.Now()) >= DailyLimit(ctx, profile) {
		return "", errorx.New(errorx.DailyLimitReached, "Daily submission limit reached")
	}

	return s.resolvePod(ctx, userID, podID)
}

func (s *service) Submit(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	podID, err := s.resolvePod(ctx, req.UserID, req.PodID)
	if err != nil {
		return nil, err
	}

	submissionID := uuid.NewString()
	if req.RequestID != "" {
		submissionID = idutil.DeterministicID(req.UserID, req.RequestID)
		existing, err := s.postRepo.GetByID(ctx, submissionID)
		if err == nil {
			xcontext.Logger(ctx).Debugf("Submission %s was already created", existing.ID)
			balance, err := s.ledger.Balance(ctx, req.UserID)
			if err != nil {
				return nil, err
			}

			return &Result{
				Result:       outcome.Complete(StepCreated),
				SubmissionID: existing.ID,
				Balance:      balance,
			}, nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get submission: %v", err)
			return nil, common.StoreError(err, errorx.Unknown)
		}
	}

	now := time.Now()
	if err := s.claimSlot(ctx, req.UserID, now); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot claim submission slot of user %s: %v", req.UserID, err)
		return &Result{Result: outcome.Reject(StepValidated)}, err
	}

	fee := xcontext.Configs(ctx).Ledger.SubmissionFee
	feeKey := idutil.Key("submission-fee", submissionID)
	receipt, err := s.ledger.Apply(ctx, ledger.Delta{
		UserID:         req.UserID,
		Points:         -fee,
		Action:         ledger.ActionSubmission,
		Description:    "Submitted post to engagement queue",
		IdempotencyKey: feeKey,
		RelatedPostID:  submissionID,
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot debit submission fee of user %s: %v", req.UserID, err)
		s.releaseSlot(ctx, req.UserID)
		return &Result{Result: outcome.Reject(StepValidated)}, err
	}

	post := &entity.PostSubmission{
		Base:            entity.Base{ID: submissionID},
		UserID:          req.UserID,
		PodID:           podID,
		PostURL:         req.PostURL,
		Industry:        req.Industry,
		TargetLikes:     req.TargetLikes,
		TargetComments:  req.TargetComments,
		DeliverySpeed:   req.DeliverySpeed,
		CommentStrategy: req.CommentStrategy,
		Status:          entity.PostStatusActive,
		SubmittedAt:     now,
		ActivatedAt:     sql.NullTime{Time: now, Valid: true},
		ExpiresAt:       now.Add(xcontext.Configs(ctx).Submission.ExpiresAfter),
	}
	if req.Title != "" {
		post.Title = sql.NullString{String: req.Title, Valid: true}
	}
	if req.CommentStrategy == entity.CommentStrategyCustom {
		post.CustomComment = sql.NullString{String: req.CustomComment, Valid: true}
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.releaseSlot(ctx, req.UserID)
		integrityErr := s.reporter.Report(ctx, outcome.Incident{
			UserID:      req.UserID,
			Operation:   outcome.OperationSubmitPost,
			StepReached: StepFeeDebited,
			Err:         err,
			Payload: map[string]any{
				"submission_id":   submissionID,
				"history_id":      receipt.HistoryID,
				"fee":             fee,
				"idempotency_key": feeKey,
				"post_url":        req.PostURL,
			},
		})

		return &Result{
			Result:       outcome.Partial(StepFeeDebited),
			SubmissionID: submissionID,
			Balance:      receipt.Balance,
		}, integrityErr
	}

	xcontext.Logger(ctx).Infof("User %s submitted post %s to pod %s", req.UserID, submissionID, podID)

	return &Result{
		Result:       outcome.Complete(StepCreated),
		SubmissionID: submissionID,
		Balance:      receipt.Balance,
	}, nil
}

// claimSlot consumes one daily slot before any points move, so a caller
// over the limit is never charged.
func (s *service) claimSlot(ctx context.Context, userID string, now time.Time) error {
	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	profile, err := s.profileRepo.GetByID(txCtx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found profile")
		}

		return common.StoreError(err, errorx.Unknown)
	}

	if !profile.SubmissionsResetDate.Valid || !entity.SameDay(profile.SubmissionsResetDate.Time, now) {
		if err := s.profileRepo.ResetSubmissionQuota(txCtx, userID, now); err != nil {
			return common.StoreError(err, errorx.Unknown)
		}
	}

	if err := s.profileRepo.IncreaseSubmissionsUsed(txCtx, userID, DailyLimit(ctx, profile)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.DailyLimitReached, "Daily submission limit reached")
		}

		return common.StoreError(err, errorx.Unknown)
	}

	if err := xcontext.WithCommitDBTransaction(txCtx); err != nil {
		return common.StoreError(err, errorx.Unknown)
	}

	return nil
}

// releaseSlot gives back a slot claimed by a submission that was not created.
func (s *service) releaseSlot(ctx context.Context, userID string) {
	if err := s.profileRepo.DecreaseSubmissionsUsed(ctx, userID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot release submission slot of user %s: %v", userID, err)
	}
}

func (s *service) resolvePod(ctx context.Context, userID, podID string) (string, error) {
	membership, err := s.membershipRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errorx.New(errorx.NotPodMember, "Join a pod before submitting posts")
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return "", common.StoreError(err, errorx.Unknown)
	}

	if podID != "" && membership.PodID != podID {
		return "", errorx.New(errorx.NotPodMember, "Only members of the pod can submit to it")
	}

	if !membership.Pod.IsActive {
		return "", errorx.New(errorx.BadRequest, "Pod is not active")
	}

	return membership.PodID, nil
}

// DailyLimit prefers the per-profile limit, which depends on the plan.
func DailyLimit(ctx context.Context, profile *entity.Profile) int {
	if profile.DailySubmissionLimit > 0 {
		return profile.DailySubmissionLimit
	}

	return xcontext.Configs(ctx).Submission.DailyLimit
}

func usedToday(profile *entity.Profile, now time.Time) int {
	if !profile.SubmissionsResetDate.Valid || !entity.SameDay(profile.SubmissionsResetDate.Time, now) {
		return 0
	}

	return profile.DailySubmissionsUsed
}

func validate(req Request) error {
	if req.UserID == "" {
		return errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	if !common.IsLinkedInURL(req.PostURL) {
		return errorx.New(errorx.BadRequest, "Invalid post_url")
	}

	if !slices.Contains(common.Industries, req.Industry) {
		return errorx.New(errorx.BadRequest, "Invalid industry")
	}

	if req.TargetLikes < 1 || req.TargetLikes > 500 {
		return errorx.New(errorx.BadRequest, "Target likes must be between 1 and 500")
	}

	if req.TargetComments < 0 || req.TargetComments > 100 {
		return errorx.New(errorx.BadRequest, "Target comments must be between 0 and 100")
	}

	switch req.DeliverySpeed {
	case entity.DeliverySpeedSlow, entity.DeliverySpeedNormal, entity.DeliverySpeedFast:
	default:
		return errorx.New(errorx.BadRequest, "Invalid delivery_speed")
	}

	switch req.CommentStrategy {
	case entity.CommentStrategyAI, entity.CommentStrategyNone:
	case entity.CommentStrategyCustom:
		if req.CustomComment == "" {
			return errorx.New(errorx.BadRequest, "Missing custom_comment")
		}
	default:
		return errorx.New(errorx.BadRequest, "Invalid comment_strategy")
	}

	return nil
}
