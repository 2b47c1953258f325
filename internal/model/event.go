package model

const (
	TopicPointsChanged      = "ledger.points_changed"
	TopicAchievementUnlock  = "ledger.achievement_unlocked"
	TopicIntegrityViolation = "ledger.integrity_violation"
)

type PointsChangedEvent struct {
	UserID    string `json:"user_id"`
	HistoryID int64  `json:"history_id"`
	Points    int64  `json:"points"`
	Balance   int64  `json:"balance"`
	Action    string `json:"action"`
	At        string `json:"at"`
}

type AchievementUnlockedEvent struct {
	UserID        string `json:"user_id"`
	AchievementID string `json:"achievement_id"`
	Name          string `json:"name"`
	Points        int64  `json:"points"`
	At            string `json:"at"`
}

type IntegrityViolationEvent struct {
	ReconciliationID string `json:"reconciliation_id"`
	UserID           string `json:"user_id"`
	Operation        string `json:"operation"`
	StepReached      string `json:"step_reached"`
	Error            string `json:"error"`
	At               string `json:"at"`
}
