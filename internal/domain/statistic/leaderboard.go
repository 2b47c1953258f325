package statistic

import (
	"context"
	"time"

	"github.com/podlift/backend/internal/common"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/internal/model"
	"github.com/podlift/backend/internal/repository"
	"github.com/podlift/backend/pkg/errorx"
	"github.com/podlift/backend/pkg/xcontext"
	"github.com/podlift/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const weeklyKeyTTL = 8 * 24 * time.Hour

// Leaderboard caches the weekly ranking in a redis sorted set. The profile
// table stays the source of truth, a missing key is rebuilt from it.
type Leaderboard interface {
	GetWeekly(ctx context.Context, at time.Time, limit int) ([]model.LeaderboardEntry, error)
	IncreaseWeekly(ctx context.Context, userID string, points int64, at time.Time) error
	ResetWeekly(ctx context.Context, at time.Time) error
}

type leaderboard struct {
	profileRepo repository.ProfileRepository
	redisClient xredis.Client
}

// New accepts a nil redis client, every call then goes to the database.
func New(profileRepo repository.ProfileRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{profileRepo: profileRepo, redisClient: redisClient}
}

func (l *leaderboard) GetWeekly(ctx context.Context, at time.Time, limit int) ([]model.LeaderboardEntry, error) {
	if l.redisClient == nil {
		return l.getWeeklyFromDB(ctx, limit)
	}

	key := common.RedisKeyWeeklyLeaderboard(at)
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot call exist redis, fallback to database: %v", err)
		return l.getWeeklyFromDB(ctx, limit)
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadFromDB(ctx, key); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, 0, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := []string{}
	for _, z := range results {
		if member, ok := z.Member.(string); ok {
			userIDs = append(userIDs, member)
		}
	}

	profiles, err := l.profileRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get profiles of leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	profileMap := map[string]*entity.Profile{}
	for i := range profiles {
		profileMap[profiles[i].ID] = &profiles[i]
	}

	entries := []model.LeaderboardEntry{}
	for i, z := range results {
		member, _ := z.Member.(string)
		short := model.ShortProfile{ID: member}
		if p, ok := profileMap[member]; ok {
			short = model.ConvertShortProfile(p)
		}

		entries = append(entries, model.LeaderboardEntry{
			Profile: short,
			Points:  int64(z.Score),
			Rank:    i + 1,
		})
	}

	return entries, nil
}

func (l *leaderboard) IncreaseWeekly(ctx context.Context, userID string, points int64, at time.Time) error {
	if l.redisClient == nil || points <= 0 {
		return nil
	}

	key := common.RedisKeyWeeklyLeaderboard(at)
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	// A rebuilt key already contains this change.
	if !ok {
		return l.loadFromDB(ctx, key)
	}

	return l.redisClient.ZIncrBy(ctx, key, points, userID)
}

func (l *leaderboard) ResetWeekly(ctx context.Context, at time.Time) error {
	if l.redisClient == nil {
		return nil
	}

	return l.redisClient.Del(ctx, common.RedisKeyWeeklyLeaderboard(at))
}

// loadFromDB seeds the key with every ranked profile, so a later ZIncrBy
// never starts a member from zero.
func (l *leaderboard) loadFromDB(ctx context.Context, key string) error {
	profiles, err := l.profileRepo.GetWeeklyLeaderboard(ctx, 0)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load weekly leaderboard from database: %v", err)
		return errorx.Unknown
	}

	if len(profiles) == 0 {
		return nil
	}

	members := []redis.Z{}
	for _, p := range profiles {
		members = append(members, redis.Z{Member: p.ID, Score: float64(p.WeeklyPoints)})
	}

	if err := l.redisClient.ZAddWithTTL(ctx, key, weeklyKeyTTL, members...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add weekly leaderboard to redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) getWeeklyFromDB(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	profiles, err := l.profileRepo.GetWeeklyLeaderboard(ctx, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get weekly leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	entries := []model.LeaderboardEntry{}
	for i := range profiles {
		entries = append(entries, model.LeaderboardEntry{
			Profile: model.ConvertShortProfile(&profiles[i]),
			Points:  profiles[i].WeeklyPoints,
			Rank:    i + 1,
		})
	}

	return entries, nil
}
