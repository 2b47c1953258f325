package entity

import (
	"database/sql"

	"github.com/podlift/backend/pkg/enum"
)

type EngagementType string

var (
	EngagementTypeLike    = enum.New(EngagementType("like"))
	EngagementTypeComment = enum.New(EngagementType("comment"))
)

type EngagementStatus string

var (
	EngagementStatusPending  = enum.New(EngagementStatus("pending"))
	EngagementStatusVerified = enum.New(EngagementStatus("verified"))
)

// Engagement is unique per (post, user), a second attempt fails on insert.
type Engagement struct {
	Base
	PodID        string `gorm:"index"`
	PostID       string `gorm:"uniqueIndex:idx_engagements_post_user"`
	UserID       string `gorm:"uniqueIndex:idx_engagements_post_user;index"`
	Type         EngagementType
	CommentText  sql.NullString
	PointsEarned int64
	Status       EngagementStatus
	VerifiedAt   sql.NullTime
}
