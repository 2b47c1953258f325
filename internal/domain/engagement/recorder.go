package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
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
	"gorm.io/gorm"
)

const (
	StepValidated       = "validated"
	StepRecorded        = "engagement_recorded"
	StepPointsCredited  = "points_credited"
	StepCountersUpdated = "counters_updated"
)

type Request struct {
	UserID      string
	PodID       string
	PostID      string
	Type        entity.EngagementType
	CommentText string
}

type Result struct {
	outcome.Result
	EngagementID string
	PointsEarned int64
}

// Recorder records at most one engagement per user and post. The writes run
// in a fixed order: engagement row, points credit, post counters.
type Recorder interface {
	Record(ctx context.Context, req Request) (*Result, error)
}

type recorder struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostSubmissionRepository
	membershipRepo repository.PodMembershipRepository
	profileRepo    repository.ProfileRepository
	ledger         ledger.Ledger
	reporter       outcome.IntegrityReporter
}

func NewRecorder(
	engagementRepo repository.EngagementRepository,
	postRepo repository.PostSubmissionRepository,
	membershipRepo repository.PodMembershipRepository,
	profileRepo repository.ProfileRepository,
	ledger ledger.Ledger,
	reporter outcome.IntegrityReporter,
) *recorder {
	return &recorder{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
		membershipRepo: membershipRepo,
		profileRepo:    profileRepo,
		ledger:         ledger,
		reporter:       reporter,
	}
}

// Reward returns the points earned by an engagement type, zero if unknown.
func Reward(ctx context.Context, engagementType entity.EngagementType) int64 {
	switch engagementType {
	case entity.EngagementTypeLike:
		return xcontext.Configs(ctx).Ledger.LikeReward
	case entity.EngagementTypeComment:
		return xcontext.Configs(ctx).Ledger.CommentReward
	default:
		return 0
	}
}

func (r *recorder) Record(ctx context.Context, req Request) (*Result, error) {
	post, err := r.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	points := Reward(ctx, req.Type)
	now := time.Now()
	engagement := &entity.Engagement{
		Base:         entity.Base{ID: uuid.NewString()},
		PodID:        post.PodID,
		PostID:       post.ID,
		UserID:       req.UserID,
		Type:         req.Type,
		PointsEarned: points,
		Status:       entity.EngagementStatusVerified,
		VerifiedAt:   sql.NullTime{Time: now, Valid: true},
	}
	if req.Type == entity.EngagementTypeComment && req.CommentText != "" {
		engagement.CommentText = sql.NullString{String: req.CommentText, Valid: true}
	}

	if err := r.engagementRepo.Create(ctx, engagement); err != nil {
		if repository.IsDuplicated(err) {
			return nil, errorx.New(errorx.AlreadyEngaged, "Already engaged with this post")
		}

		xcontext.Logger(ctx).Errorf("Cannot create engagement: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	_, err = r.ledger.Apply(ctx, ledger.Delta{
		UserID:              req.UserID,
		Points:              points,
		Action:              actionOf(req.Type),
		Description:         fmt.Sprintf("Earned %d points for %s", points, req.Type),
		IdempotencyKey:      idutil.Key("engagement", engagement.ID),
		RelatedPostID:       post.ID,
		RelatedEngagementID: engagement.ID,
	})
	if err != nil {
		integrityErr := r.reporter.Report(ctx, outcome.Incident{
			UserID:      req.UserID,
			Operation:   outcome.OperationCreateEngagement,
			StepReached: StepRecorded,
			Err:         err,
			Payload: map[string]any{
				"engagement_id":   engagement.ID,
				"post_id":         post.ID,
				"points":          points,
				"idempotency_key": idutil.Key("engagement", engagement.ID),
			},
		})

		return &Result{
			Result:       outcome.Partial(StepRecorded),
			EngagementID: engagement.ID,
		}, integrityErr
	}

	step := StepPointsCredited
	if err := r.updateCounters(ctx, post.ID, req.Type, now); err != nil {
		// The post under-counts until recomputed, the user keeps the points.
		xcontext.Logger(ctx).Warnf("Cannot update counters of post %s: %v", post.ID, err)
	} else {
		step = StepCountersUpdated
	}

	if err := r.updateStreak(ctx, req.UserID, now); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update streak of user %s: %v", req.UserID, err)
	}

	return &Result{
		Result:       outcome.Complete(step),
		EngagementID: engagement.ID,
		PointsEarned: points,
	}, nil
}

func (r *recorder) validate(ctx context.Context, req Request) (*entity.PostSubmission, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Need authenticated")
	}

	if req.Type != entity.EngagementTypeLike && req.Type != entity.EngagementTypeComment {
		return nil, errorx.New(errorx.BadRequest, "Invalid engagement type %s", req.Type)
	}

	post, err := r.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	if post.UserID == req.UserID {
		return nil, errorx.New(errorx.BadRequest, "Cannot engage with your own post")
	}

	if post.Status != entity.PostStatusActive {
		return nil, errorx.New(errorx.BadRequest, "Post is not accepting engagements")
	}

	if req.PodID != "" && req.PodID != post.PodID {
		return nil, errorx.New(errorx.BadRequest, "Post does not belong to this pod")
	}

	membership, err := r.membershipRepo.GetByUserID(ctx, req.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	if err != nil || membership.PodID != post.PodID {
		return nil, errorx.New(errorx.NotPodMember, "Only members of the pod can engage with this post")
	}

	return post, nil
}

func (r *recorder) updateCounters(
	ctx context.Context, postID string, engagementType entity.EngagementType, now time.Time,
) error {
	if err := r.postRepo.IncreaseEngagement(ctx, postID, engagementType); err != nil {
		return err
	}

	completed, err := r.postRepo.CompleteIfReached(ctx, postID, now)
	if err != nil {
		return err
	}

	if completed {
		xcontext.Logger(ctx).Infof("Post %s reached its targets", postID)
	}

	return nil
}

func (r *recorder) updateStreak(ctx context.Context, userID string, now time.Time) error {
	profile, err := r.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	streak := NextStreak(profile.CurrentStreak, profile.LastActivityDate, now)
	if streak == profile.CurrentStreak && profile.LastActivityDate.Valid &&
		entity.SameDay(profile.LastActivityDate.Time, now) {
		return nil
	}

	return r.profileRepo.UpdateStreak(ctx, userID, streak, now)
}

// NextStreak keeps the streak within a day, extends it on the next day and
// restarts it after a gap.
func NextStreak(current int, lastActivity sql.NullTime, now time.Time) int {
	if !lastActivity.Valid {
		return 1
	}

	if entity.SameDay(lastActivity.Time, now) {
		return max(current, 1)
	}

	if entity.SameDay(lastActivity.Time.AddDate(0, 0, 1), now) {
		return current + 1
	}

	return 1
}

func actionOf(engagementType entity.EngagementType) string {
	if engagementType == entity.EngagementTypeComment {
		return ledger.ActionComment
	}

	return ledger.ActionLike
}
