package dto

const (
	LeaderboardXP           = "xp"
	LeaderboardBadges       = "badges"
	LeaderboardAchievements = "achievements"
	LeaderboardContent      = "content"
	LeaderboardEngagement   = "engagement"

	TimeframeDaily   = "daily"
	TimeframeWeekly  = "weekly"
	TimeframeMonthly = "monthly"
	TimeframeAllTime = "all_time"
)

type LeaderboardRequest struct {
	Type      string `query:"type" validate:"omitempty,oneof=xp badges achievements content engagement" example:"xp"`
	Timeframe string `query:"timeframe" validate:"omitempty,oneof=daily weekly monthly all_time" example:"weekly"`
	Limit     int    `query:"limit" validate:"gte=0,lte=100" example:"50"`
}

func (r LeaderboardRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LeaderboardEntry struct {
	Rank             int     `json:"rank"`
	UserID           string  `json:"user_id"`
	DisplayName      string  `json:"display_name"`
	Score            float64 `json:"score"`
	Level            int     `json:"level"`
	BadgeCount       *int64  `json:"badge_count,omitempty"`
	AchievementCount *int64  `json:"achievement_count,omitempty"`
	RankChange       *int    `json:"rank_change,omitempty"`
	IsCurrentUser    bool    `json:"is_current_user,omitempty"`
}

// Leaderboard carries the caller in CurrentUser only when they rank outside
// Entries.
type Leaderboard struct {
	Type        string             `json:"type"`
	Timeframe   string             `json:"timeframe"`
	Entries     []LeaderboardEntry `json:"entries"`
	CurrentUser *LeaderboardEntry  `json:"current_user,omitempty"`
	Total       int                `json:"total"`
}
