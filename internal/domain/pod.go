package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PodDomain interface {
	EnsureMatchedPod(context.Context, *model.EnsureMatchedPodRequest) (*model.EnsureMatchedPodResponse, error)
	CreatePod(context.Context, *model.CreatePodRequest) (*model.CreatePodResponse, error)
	GetMyPod(context.Context, *model.GetMyPodRequest) (*model.GetMyPodResponse, error)
	GetQueue(context.Context, *model.GetQueueRequest) (*model.GetQueueResponse, error)
}

type podDomain struct {
	podRepo        repository.PodRepository
	membershipRepo repository.PodMembershipRepository
	postRepo       repository.PostSubmissionRepository
	facade         facade.Facade
}

func NewPodDomain(
	podRepo repository.PodRepository,
	membershipRepo repository.PodMembershipRepository,
	postRepo repository.PostSubmissionRepository,
	facade facade.Facade,
) *podDomain {
	return &podDomain{
		podRepo:        podRepo,
		membershipRepo: membershipRepo,
		postRepo:       postRepo,
		facade:         facade,
	}
}

func (d *podDomain) EnsureMatchedPod(
	ctx context.Context, req *model.EnsureMatchedPodRequest,
) (*model.EnsureMatchedPodResponse, error) {
	return d.facade.EnsureMatchedPod(ctx, xcontext.RequestUserID(ctx))
}

func (d *podDomain) CreatePod(
	ctx context.Context, req *model.CreatePodRequest,
) (*model.CreatePodResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	pod := &entity.Pod{
		Base:             entity.Base{ID: uuid.NewString()},
		Name:             req.Name,
		Industry:         req.Industry,
		IsPublic:         req.IsPublic,
		IsActive:         true,
		MaxMembers:       req.MaxMembers,
		DailyPostLimit:   req.DailyPostLimit,
		RequiresApproval: req.RequiresApproval,
		CreatedBy:        sql.NullString{String: xcontext.RequestUserID(ctx), Valid: true},
	}
	if req.Description != "" {
		pod.Description = sql.NullString{String: req.Description, Valid: true}
	}

	// Pods have no local equivalent, an unreachable store surfaces as is.
	err := d.facade.Guard(ctx, func() error { return d.podRepo.Create(ctx, pod) })
	if err != nil {
		if repository.IsDuplicated(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Pod name %s is already taken", req.Name)
		}

		if errorx.Is(err, errorx.Unavailable) {
			return nil, err
		}

		xcontext.Logger(ctx).Errorf("Cannot create pod: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	xcontext.Logger(ctx).Infof("Pod %s is created by %s", pod.ID, xcontext.RequestUserID(ctx))
	resp := model.CreatePodResponse(model.ConvertPod(pod, 0))
	return &resp, nil
}

func (d *podDomain) GetMyPod(
	ctx context.Context, req *model.GetMyPodRequest,
) (*model.GetMyPodResponse, error) {
	membership, err := d.getMembership(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := d.membershipRepo.CountByPodIDs(ctx, []string{membership.PodID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count pod members: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	resp := model.GetMyPodResponse(model.ConvertPod(&membership.Pod, counts[membership.PodID]))
	return &resp, nil
}

func (d *podDomain) GetQueue(
	ctx context.Context, req *model.GetQueueRequest,
) (*model.GetQueueResponse, error) {
	membership, err := d.getMembership(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetQueue(ctx, membership.PodID, membership.UserID,
		xcontext.Configs(ctx).Submission.QueueSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get queue: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return &model.GetQueueResponse{Posts: model.ConvertSubmissions(posts)}, nil
}

func (d *podDomain) getMembership(ctx context.Context) (*entity.PodMembership, error) {
	membership, err := d.membershipRepo.GetByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotPodMember, "You are not in any pod yet")
		}

		xcontext.Logger(ctx).Errorf("Cannot get membership: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return membership, nil
}
