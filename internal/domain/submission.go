package domain

import (
	"context"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/domain/facade"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
)

type SubmissionDomain interface {
	SubmitPost(context.Context, *model.SubmitPostRequest) (*model.SubmitPostResponse, error)
	GetMySubmissions(context.Context, *model.GetMySubmissionsRequest) (*model.GetMySubmissionsResponse, error)
}

type submissionDomain struct {
	postRepo repository.PostSubmissionRepository
	facade   facade.Facade
}

func NewSubmissionDomain(postRepo repository.PostSubmissionRepository, facade facade.Facade) *submissionDomain {
	return &submissionDomain{postRepo: postRepo, facade: facade}
}

func (d *submissionDomain) SubmitPost(
	ctx context.Context, req *model.SubmitPostRequest,
) (*model.SubmitPostResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	return d.facade.SubmitPost(ctx, xcontext.RequestUserID(ctx), req)
}

func (d *submissionDomain) GetMySubmissions(
	ctx context.Context, req *model.GetMySubmissionsRequest,
) (*model.GetMySubmissionsResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	posts, err := d.postRepo.GetList(ctx, repository.SubmissionFilter{
		UserID: xcontext.RequestUserID(ctx),
		Status: entity.PostStatus(req.Status),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get submissions: %v", err)
		return nil, common.StoreError(err, errorx.Unknown)
	}

	return &model.GetMySubmissionsResponse{Submissions: model.ConvertSubmissions(posts)}, nil
}
