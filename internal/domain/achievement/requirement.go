package achievement

import "fmt"

const (
	RequirementPointsTotal     = "points_total"
	RequirementEngagementCount = "engagement_count"
	RequirementStreakDays      = "streak_days"
)

// Stats is the snapshot of a user which requirements are measured against.
type Stats struct {
	TotalPoints     int64
	EngagementCount int64
	CurrentStreak   int
}

// Requirement is a closed set, ParseRequirement is the only constructor.
type Requirement interface {
	Threshold() int
	Progress(stats Stats) int
	isRequirement()
}

type PointsTotal struct{ Value int }

func (r PointsTotal) Threshold() int           { return r.Value }
func (r PointsTotal) Progress(stats Stats) int { return int(stats.TotalPoints) }
func (PointsTotal) isRequirement()             {}

type EngagementCount struct{ Value int }

func (r EngagementCount) Threshold() int           { return r.Value }
func (r EngagementCount) Progress(stats Stats) int { return int(stats.EngagementCount) }
func (EngagementCount) isRequirement()             {}

type StreakDays struct{ Value int }

func (r StreakDays) Threshold() int           { return r.Value }
func (r StreakDays) Progress(stats Stats) int { return stats.CurrentStreak }
func (StreakDays) isRequirement()             {}

func ParseRequirement(kind string, value int) (Requirement, error) {
	if value <= 0 {
		return nil, fmt.Errorf("requirement value must be positive, got %d", value)
	}

	switch kind {
	case RequirementPointsTotal:
		return PointsTotal{Value: value}, nil
	case RequirementEngagementCount:
		return EngagementCount{Value: value}, nil
	case RequirementStreakDays:
		return StreakDays{Value: value}, nil
	default:
		return nil, fmt.Errorf("unknown requirement type %q", kind)
	}
}

func Satisfied(r Requirement, stats Stats) bool {
	return r.Progress(stats) >= r.Threshold()
}

func needsEngagementCount(r Requirement) bool {
	_, ok := r.(EngagementCount)
	return ok
}
