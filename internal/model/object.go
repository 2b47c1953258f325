package model

type Profile struct {
	ID                   string `json:"id"`
	Email                string `json:"email,omitempty"`
	FullName             string `json:"full_name,omitempty"`
	AvatarURL            string `json:"avatar_url,omitempty"`
	IsAdmin              bool   `json:"is_admin,omitempty"`
	TotalPoints          int64  `json:"total_points"`
	WeeklyPoints         int64  `json:"weekly_points"`
	CurrentStreak        int    `json:"current_streak"`
	LastActivityDate     string `json:"last_activity_date,omitempty"`
	Plan                 string `json:"plan,omitempty"`
	DailySubmissionLimit int    `json:"daily_submission_limit"`
	DailySubmissionsUsed int    `json:"daily_submissions_used"`
}

type ShortProfile struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type Pod struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	Industry           string `json:"industry"`
	IsPublic           bool   `json:"is_public"`
	IsActive           bool   `json:"is_active"`
	MaxMembers         int    `json:"max_members"`
	MemberCount        int64  `json:"member_count"`
	MinEngagementScore int    `json:"min_engagement_score"`
	DailyPostLimit     int    `json:"daily_post_limit"`
	RequiresApproval   bool   `json:"requires_approval"`
	CreatedAt          string `json:"created_at"`
}

type Submission struct {
	ID               string `json:"id"`
	UserID           string `json:"user_id"`
	PodID            string `json:"pod_id"`
	PostURL          string `json:"post_url"`
	Title            string `json:"title,omitempty"`
	Industry         string `json:"industry"`
	TargetLikes      int    `json:"target_likes"`
	TargetComments   int    `json:"target_comments"`
	DeliverySpeed    string `json:"delivery_speed"`
	CommentStrategy  string `json:"comment_strategy"`
	CustomComment    string `json:"custom_comment,omitempty"`
	Status           string `json:"status"`
	CurrentLikes     int    `json:"current_likes"`
	CurrentComments  int    `json:"current_comments"`
	TotalEngagements int    `json:"total_engagements"`
	SubmittedAt      string `json:"submitted_at"`
	CompletedAt      string `json:"completed_at,omitempty"`
	ExpiresAt        string `json:"expires_at"`
}

type Engagement struct {
	ID           string `json:"id"`
	PodID        string `json:"pod_id"`
	PostID       string `json:"post_id"`
	UserID       string `json:"user_id"`
	Type         string `json:"type"`
	CommentText  string `json:"comment_text,omitempty"`
	PointsEarned int64  `json:"points_earned"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
}

type PointHistory struct {
	ID                   string `json:"id"`
	Points               int64  `json:"points"`
	Action               string `json:"action"`
	Description          string `json:"description,omitempty"`
	RelatedPostID        string `json:"related_post_id,omitempty"`
	RelatedEngagementID  string `json:"related_engagement_id,omitempty"`
	RelatedAchievementID string `json:"related_achievement_id,omitempty"`
	CreatedAt            string `json:"created_at"`
}

type LeaderboardEntry struct {
	Profile ShortProfile `json:"profile"`
	Points  int64        `json:"points"`
	Rank    int          `json:"rank"`
}

type Achievement struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Icon             string `json:"icon"`
	Points           int64  `json:"points"`
	Rarity           string `json:"rarity"`
	RequirementType  string `json:"requirement_type"`
	RequirementValue int    `json:"requirement_value"`
}

type UserAchievement struct {
	Achievement   Achievement `json:"achievement"`
	ProgressValue int         `json:"progress_value"`
	IsUnlocked    bool        `json:"is_unlocked"`
	UnlockedAt    string      `json:"unlocked_at,omitempty"`
}

// Analytics counts engagements both ways: TotalEngagements are the ones the
// user made, EngagementsReceived are the ones landed on the user's posts.
// TopIndustry only looks at posts still open.
type Analytics struct {
	TotalSubmissions      int     `json:"total_submissions"`
	ActiveSubmissions     int     `json:"active_submissions"`
	CompletedSubmissions  int     `json:"completed_submissions"`
	TotalEngagements      int64   `json:"total_engagements"`
	EngagementsReceived   int     `json:"engagements_received"`
	AverageEngagementRate float64 `json:"average_engagement_rate"`
	TopIndustry           string  `json:"top_industry"`
}

type Reconciliation struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Operation   string         `json:"operation"`
	StepReached string         `json:"step_reached"`
	Error       string         `json:"error"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// Outcome describes how far a multi-step operation got.
type Outcome struct {
	Status      string `json:"status"`
	StepReached string `json:"step_reached,omitempty"`
}
