package outcome

import "github.com/podlift/backend/internal/model"

type Status string

const (
	Completed          Status = "completed"
	PartiallyCompleted Status = "partially_completed"
	Rejected           Status = "rejected"
)

// Result tells a caller whether a multi-step operation finished, stopped
// before writing anything, or stopped after an irreversible step.
type Result struct {
	Status      Status
	StepReached string
}

func Complete(step string) Result {
	return Result{Status: Completed, StepReached: step}
}

func Partial(step string) Result {
	return Result{Status: PartiallyCompleted, StepReached: step}
}

func Reject(step string) Result {
	return Result{Status: Rejected, StepReached: step}
}

func (r Result) Succeeded() bool {
	return r.Status == Completed
}

func (r Result) Model() model.Outcome {
	return model.Outcome{Status: string(r.Status), StepReached: r.StepReached}
}
