package entity

import (
	"database/sql"
	"time"

	"github.com/podlift/backend/pkg/enum"
)

type Plan string

var (
	PlanFree = enum.New(Plan("free"))
	PlanPro  = enum.New(Plan("pro"))
)

// Profile is the per-user balance holder. The points fields are written only
// by the ledger.
type Profile struct {
	Base
	Email     string
	FullName  sql.NullString
	AvatarURL sql.NullString
	IsAdmin   bool

	TotalPoints      int64
	WeeklyPoints     int64
	WeeklyResetDate  sql.NullTime
	CurrentStreak    int
	LastActivityDate sql.NullTime

	Plan                 Plan `gorm:"default:free"`
	DailySubmissionLimit int
	DailySubmissionsUsed int
	SubmissionsResetDate sql.NullTime
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
