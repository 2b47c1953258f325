package outcome

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/pubsub"
	"github.com/podlift/backend/pkg/xcontext"
)

const (
	OperationSubmitPost        = "submit_post"
	OperationCreateEngagement  = "create_engagement"
	OperationUnlockAchievement = "unlock_achievement"
)

type Incident struct {
	UserID      string
	Operation   string
	StepReached string
	Err         error
	Payload     map[string]any
}

type IntegrityReporter interface {
	// Report records the incident for reconciliation and returns the
	// errorx.Integrity error to hand back to the caller. ctx must not carry the
	// transaction which failed.
	Report(ctx context.Context, incident Incident) error
}

type integrityReporter struct {
	reconciliationRepo repository.ReconciliationRepository
	publisher          pubsub.Publisher
}

func NewIntegrityReporter(
	reconciliationRepo repository.ReconciliationRepository,
	publisher pubsub.Publisher,
) *integrityReporter {
	return &integrityReporter{
		reconciliationRepo: reconciliationRepo,
		publisher:          publisher,
	}
}

func (r *integrityReporter) Report(ctx context.Context, incident Incident) error {
	errMsg := ""
	if incident.Err != nil {
		errMsg = incident.Err.Error()
	}

	log := xcontext.Logger(ctx).With(map[string]any{
		"user_id":      incident.UserID,
		"operation":    incident.Operation,
		"step_reached": incident.StepReached,
	})
	log.Errorf("Integrity error, operation stopped after a committed step: %s", errMsg)

	common.PromCounters[common.IntegrityErrorTotal].
		WithLabelValues(incident.Operation, incident.StepReached).Inc()

	payload, err := json.Marshal(incident.Payload)
	if err != nil {
		log.Warnf("Cannot marshal reconciliation payload: %v", err)
		payload = []byte("{}")
	}

	record := &entity.Reconciliation{
		ID:          uuid.NewString(),
		UserID:      incident.UserID,
		Operation:   incident.Operation,
		StepReached: incident.StepReached,
		Error:       errMsg,
		Payload:     payload,
	}
	if err := r.reconciliationRepo.Create(ctx, record); err != nil {
		log.Errorf("Cannot write reconciliation record: %v", err)
	}

	common.PublishEvent(ctx, r.publisher, model.TopicIntegrityViolation, incident.UserID,
		model.IntegrityViolationEvent{
			ReconciliationID: record.ID,
			UserID:           incident.UserID,
			Operation:        incident.Operation,
			StepReached:      incident.StepReached,
			Error:            errMsg,
			At:               time.Now().Format(model.DefaultTimeLayout),
		})

	return errorx.New(errorx.Integrity,
		"The request was partially completed and will be reconciled (%s)", incident.StepReached)
}
