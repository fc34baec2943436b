package model

import "time"

// LeaderboardSnapshot stores a past rank so the next period can report change.
type LeaderboardSnapshot struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Board     string    `json:"board" gorm:"not null;size:48;uniqueIndex:idx_snapshot_board_period_user"`
	PeriodKey string    `json:"period_key" gorm:"not null;size:16;uniqueIndex:idx_snapshot_board_period_user"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_snapshot_board_period_user"`
	Rank      int       `json:"rank" gorm:"not null"`
	Score     float64   `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
