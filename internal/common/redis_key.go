package common

import (
	"fmt"
	"time"
)

// RedisKeyWeeklyLeaderboard is scoped by ISO week so a new week starts from an
// empty set even if the reset job is late.
func RedisKeyWeeklyLeaderboard(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("leaderboard:weekly:%d-%02d", year, week)
}
