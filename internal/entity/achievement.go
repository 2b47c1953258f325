package entity

import (
	"database/sql"
	"time"

	"github.com/podlift/backend/pkg/enum"
)

type Rarity string

var (
	RarityCommon    = enum.New(Rarity("common"))
	RarityRare      = enum.New(Rarity("rare"))
	RarityEpic      = enum.New(Rarity("epic"))
	RarityLegendary = enum.New(Rarity("legendary"))
)

type Achievement struct {
	Base
	Name             string `gorm:"unique"`
	Description      string
	Icon             string
	Points           int64
	Rarity           Rarity
	RequirementType  string
	RequirementValue int
	IsActive         bool `gorm:"index"`
}

// UserAchievement only ever moves from locked to unlocked.
type UserAchievement struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID        string      `gorm:"primaryKey"`
	AchievementID string      `gorm:"primaryKey"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID"`

	ProgressValue int
	IsUnlocked    bool
	UnlockedAt    sql.NullTime
}
