package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database     DatabaseConfigs
	ApiServer    ServerConfigs
	Auth         AuthConfigs
	Redis        RedisConfigs
	Kafka        KafkaConfigs
	Log          LogConfigs
	Ledger       LedgerConfigs
	Matcher      MatcherConfigs
	Submission   SubmissionConfigs
	Facade       FacadeConfigs
	Cron         CronConfigs
	Achievements []AchievementSeed
}

type DatabaseConfigs struct {
	// Driver is one of mysql, postgres or sqlite.
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string
}

func (d *DatabaseConfigs) ConnectionString() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host,
			d.Port,
			d.User,
			d.Password,
			d.Database,
		)
	case "sqlite":
		return d.Database
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Database,
		)
	}
}

// MigrationURL is the url accepted by golang-migrate postgres driver.
func (d *DatabaseConfigs) MigrationURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

type ServerConfigs struct {
	Host           string
	Port           string
	AllowedOrigins []string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs

	// AdminEmails are promoted to admin when their profile is ensured.
	AdminEmails []string
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr string
}

type LogConfigs struct {
	Level   string
	Console bool
}

type LedgerConfigs struct {
	SubmissionFee   int64
	LikeReward      int64
	CommentReward   int64
	HistoryPageSize int
	LeaderboardSize int
}

type MatcherConfigs struct {
	CandidateLimit int
}

type SubmissionConfigs struct {
	MinBalance   int64
	DailyLimit   int
	QueueSize    int
	ExpiresAfter time.Duration
}

type FacadeConfigs struct {
	// Mode is one of online, offline-admin or offline-demo.
	Mode string

	FallbackPoints   int64
	BreakerFailures  uint32
	BreakerOpenDelay time.Duration
}

type CronConfigs struct {
	WeeklyResetDay    time.Weekday
	ReconcileInterval time.Duration
}

type AchievementSeed struct {
	Name             string
	Description      string
	Icon             string
	Points           int
	Rarity           string
	RequirementType  string
	RequirementValue int
}

// Default returns the configuration every missing key falls back to.
func Default() Configs {
	return Configs{
		Env: "local",
		Database: DatabaseConfigs{
			Driver:   "sqlite",
			Database: "podlift.db",
			LogLevel: "warn",
		},
		ApiServer: ServerConfigs{
			Host:           "",
			Port:           "8080",
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Log: LogConfigs{Level: "info"},
		Ledger: LedgerConfigs{
			SubmissionFee:   5,
			LikeReward:      1,
			CommentReward:   3,
			HistoryPageSize: 50,
			LeaderboardSize: 10,
		},
		Matcher: MatcherConfigs{CandidateLimit: 50},
		Submission: SubmissionConfigs{
			MinBalance:   5,
			DailyLimit:   5,
			QueueSize:    10,
			ExpiresAfter: 7 * 24 * time.Hour,
		},
		Facade: FacadeConfigs{
			Mode:             "online",
			FallbackPoints:   42,
			BreakerFailures:  5,
			BreakerOpenDelay: 30 * time.Second,
		},
		Cron: CronConfigs{
			WeeklyResetDay:    time.Monday,
			ReconcileInterval: 10 * time.Minute,
		},
		Achievements: []AchievementSeed{
			{Name: "First Steps", Description: "Earn your first 10 points", Icon: "footprints", Points: 5, Rarity: "common", RequirementType: "points_total", RequirementValue: 10},
			{Name: "Point Collector", Description: "Reach 100 total points", Icon: "coins", Points: 20, Rarity: "rare", RequirementType: "points_total", RequirementValue: 100},
			{Name: "Engager", Description: "Engage with 10 posts", Icon: "heart", Points: 10, Rarity: "common", RequirementType: "engagement_count", RequirementValue: 10},
			{Name: "Super Engager", Description: "Engage with 100 posts", Icon: "flame", Points: 50, Rarity: "epic", RequirementType: "engagement_count", RequirementValue: 100},
			{Name: "On Fire", Description: "Keep a 7 day streak", Icon: "calendar", Points: 25, Rarity: "rare", RequirementType: "streak_days", RequirementValue: 7},
			{Name: "Unstoppable", Description: "Keep a 30 day streak", Icon: "trophy", Points: 100, Rarity: "legendary", RequirementType: "streak_days", RequirementValue: 30},
		},
	}
}
