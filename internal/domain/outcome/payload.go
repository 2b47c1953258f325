package outcome

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Payload is the union of the fields every operation puts into an incident.
// It tells an operator which key to replay or which record to create.
type Payload struct {
	SubmissionID   string `mapstructure:"submission_id"`
	EngagementID   string `mapstructure:"engagement_id"`
	AchievementID  string `mapstructure:"achievement_id"`
	PostID         string `mapstructure:"post_id"`
	PostURL        string `mapstructure:"post_url"`
	HistoryID      int64  `mapstructure:"history_id"`
	Points         int64  `mapstructure:"points"`
	Fee            int64  `mapstructure:"fee"`
	IdempotencyKey string `mapstructure:"idempotency_key"`
}

// DecodePayload accepts the map read back from the json column, where every
// number is a float64.
func DecodePayload(raw map[string]any) (Payload, error) {
	var result Payload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &result,
	})
	if err != nil {
		return Payload{}, err
	}

	if err := decoder.Decode(raw); err != nil {
		return Payload{}, err
	}

	return result, nil
}

// Hint describes the manual correction for an incident.
func (p Payload) Hint() string {
	switch {
	case p.SubmissionID != "" && p.Fee != 0:
		return fmt.Sprintf("fee %d was debited (key %s) but submission %s is missing, "+
			"replay the submission with the same request id or refund the fee",
			p.Fee, p.IdempotencyKey, p.SubmissionID)
	case p.EngagementID != "":
		return fmt.Sprintf("engagement %s is recorded but %d points were not credited, "+
			"credit them with key %s", p.EngagementID, p.Points, p.IdempotencyKey)
	case p.AchievementID != "":
		return fmt.Sprintf("achievement %s is unlocked but %d points were not credited, "+
			"credit them with key %s", p.AchievementID, p.Points, p.IdempotencyKey)
	default:
		return "inspect the error and the point history of the user"
	}
}
