package entity

import (
	"database/sql"
	"time"

	"github.com/podlift/backend/pkg/enum"
)

type PostStatus string

var (
	PostStatusPending   = enum.New(PostStatus("pending"))
	PostStatusActive    = enum.New(PostStatus("active"))
	PostStatusCompleted = enum.New(PostStatus("completed"))
	PostStatusExpired   = enum.New(PostStatus("expired"))
)

type DeliverySpeed string

var (
	DeliverySpeedSlow   = enum.New(DeliverySpeed("slow"))
	DeliverySpeedNormal = enum.New(DeliverySpeed("normal"))
	DeliverySpeedFast   = enum.New(DeliverySpeed("fast"))
)

type CommentStrategy string

var (
	CommentStrategyAI     = enum.New(CommentStrategy("ai"))
	CommentStrategyCustom = enum.New(CommentStrategy("custom"))
	CommentStrategyNone   = enum.New(CommentStrategy("none"))
)

type PostSubmission struct {
	Base
	UserID string `gorm:"index"`
	PodID  string `gorm:"index"`

	PostURL         string
	Title           sql.NullString
	Industry        string
	TargetLikes     int
	TargetComments  int
	DeliverySpeed   DeliverySpeed
	CommentStrategy CommentStrategy
	CustomComment   sql.NullString

	Status           PostStatus `gorm:"index"`
	CurrentLikes     int
	CurrentComments  int
	TotalEngagements int

	SubmittedAt time.Time
	ActivatedAt sql.NullTime
	CompletedAt sql.NullTime
	ExpiresAt   time.Time
}
