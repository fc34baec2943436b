package dto

import "time"

type AwardXPRequest struct {
	ActionID string                 `json:"action_id" validate:"required,max=64" example:"watch-tutorial"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

func (r AwardXPRequest) Validate() error {
	return GetValidator().Struct(r)
}

// XPGain describes one credited transaction.
type XPGain struct {
	ActionID  string    `json:"action_id"`
	XPAmount  int       `json:"xp_amount"`
	BonusXP   int       `json:"bonus_xp,omitempty"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type UserLevel struct {
	Level         int      `json:"level"`
	Title         string   `json:"title"`
	Glyph         string   `json:"glyph"`
	RequiredXP    int64    `json:"required_xp"`
	Perks         []string `json:"perks"`
	CurrentXP     int64    `json:"current_xp"`
	MonthlyXP     int64    `json:"monthly_xp"`
	NextLevelXP   int64    `json:"next_level_xp,omitempty"`
	Progress      int      `json:"progress"`
	StreakDays    int      `json:"streak_days"`
	LongestStreak int      `json:"longest_streak"`
}

type XPTransactionResponse struct {
	ID        string                 `json:"id"`
	ActionID  string                 `json:"action_id"`
	BaseXP    int                    `json:"base_xp"`
	BonusXP   int                    `json:"bonus_xp"`
	TotalXP   int                    `json:"total_xp"`
	Category  string                 `json:"category"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

type StreakResponse struct {
	StreakDays    int     `json:"streak_days"`
	LongestStreak int     `json:"longest_streak"`
	Extended      bool    `json:"extended"`
	XP            *XPGain `json:"xp,omitempty"`
}
