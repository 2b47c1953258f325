package entity

import (
	"database/sql"
	"time"

	"gorm.io/datatypes"
)

// Reconciliation records a multi-step operation which stopped after a
// committed step, leaving the ledger and the primary record out of sync.
type Reconciliation struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID      string `gorm:"index"`
	Operation   string
	StepReached string
	Error       string
	Payload     datatypes.JSON

	Resolved   bool `gorm:"index"`
	ResolvedAt sql.NullTime
}
