package entity

import (
	"database/sql"
	"time"
)

// PointHistory is append-only. IdempotencyKey is unique when set, so a replayed
// credit or debit is recorded at most once.
type PointHistory struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time

	UserID      string `gorm:"index"`
	Points      int64
	Action      string
	Description sql.NullString

	RelatedPostID        sql.NullString
	RelatedEngagementID  sql.NullString
	RelatedAchievementID sql.NullString

	IdempotencyKey sql.NullString `gorm:"uniqueIndex"`
}
