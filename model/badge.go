package model

import (
	"time"

	"gorm.io/datatypes"
)

type UserBadge struct {
	ID       string            `json:"id" gorm:"primaryKey"`
	UserID   string            `json:"user_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	BadgeID  string            `json:"badge_id" gorm:"not null;uniqueIndex:idx_user_badge"`
	EarnedAt time.Time         `json:"earned_at" gorm:"not null;index"`
	Metadata datatypes.JSONMap `json:"metadata,omitempty"`
}

const (
	AchievementKindCatalog   = "achievement"
	AchievementKindLevelUp   = "level_up"
	AchievementKindChallenge = "challenge"
)

// UserAchievement records catalog achievements as well as level-up and
// challenge markers, which use non-catalog ids.
type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	Kind          string    `json:"kind" gorm:"not null;size:16"`
	Points        int       `json:"points" gorm:"not null;default:0"`
	EarnedAt      time.Time `json:"earned_at" gorm:"not null;index"`
}

type UserTitle struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_title"`
	Title     string    `json:"title" gorm:"not null;uniqueIndex:idx_user_title"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
