package entity

import (
	"context"
	"time"

	"github.com/podlift/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type Base struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// MigrateTable creates every table the service needs. It is used by sqlite and
// mysql deployments and by tests, postgres uses the sql migrations instead.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Profile{},
		&Pod{},
		&PodMembership{},
		&PostSubmission{},
		&Engagement{},
		&Achievement{},
		&UserAchievement{},
		&PointHistory{},
		&Reconciliation{},
	)
}
