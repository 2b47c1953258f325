package entity

import (
	"database/sql"

	"github.com/podlift/backend/pkg/enum"
)

type Pod struct {
	Base
	Name        string `gorm:"unique"`
	Description sql.NullString
	Industry    string
	IsPublic    bool
	IsActive    bool `gorm:"index"`

	// MaxMembers of zero means unlimited.
	MaxMembers         int
	MinEngagementScore int
	DailyPostLimit     int
	RequiresApproval   bool
	CreatedBy          sql.NullString
}

func (p Pod) IsFull(memberCount int64) bool {
	return p.MaxMembers > 0 && memberCount >= int64(p.MaxMembers)
}

type MembershipRole string

var (
	MembershipRoleMember = enum.New(MembershipRole("member"))
	MembershipRoleAdmin  = enum.New(MembershipRole("admin"))
)

type MembershipStatus string

var (
	MembershipStatusActive  = enum.New(MembershipStatus("active"))
	MembershipStatusPending = enum.New(MembershipStatus("pending"))
)

// PodMembership links a user to exactly one pod. The unique index on UserID
// makes concurrent joins of the same user collapse into one row.
type PodMembership struct {
	Base
	UserID string `gorm:"uniqueIndex"`
	PodID  string `gorm:"index"`
	Pod    Pod    `gorm:"foreignKey:PodID"`
	Role   MembershipRole
	Status MembershipStatus
}
