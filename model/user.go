package model

import (
	"time"

	"gorm.io/datatypes"
)

// User is the creator profile. Authentication lives in an external service;
// this row only carries what onboarding and gamification need.
type User struct {
	ID            string                       `json:"id" gorm:"primaryKey"`
	DisplayName   string                       `json:"display_name" gorm:"not null"`
	SignupOrder   int64                        `json:"signup_order" gorm:"uniqueIndex"`
	CreatorLevel  string                       `json:"creator_level"`
	Platforms     datatypes.JSONType[[]string] `json:"platforms"`
	PlatformNotes string                       `json:"platform_notes,omitempty" gorm:"type:text"`
	ContentNiche  string                       `json:"content_niche" gorm:"type:text"`
	Equipment     string                       `json:"equipment" gorm:"type:text"`
	Goals         string                       `json:"goals" gorm:"type:text"`
	Challenges    string                       `json:"challenges" gorm:"type:text"`
	OnboardedAt   *time.Time                   `json:"onboarded_at,omitempty"`
	CreatedAt     time.Time                    `json:"created_at"`
	UpdatedAt     time.Time                    `json:"updated_at"`
}

// UserStats is the per-user aggregate row. Level is a cache of the value
// derived from TotalXP.
type UserStats struct {
	UserID        string     `json:"user_id" gorm:"primaryKey"`
	TotalXP       int64      `json:"total_xp" gorm:"not null;default:0;index"`
	MonthlyXP     int64      `json:"monthly_xp" gorm:"not null;default:0"`
	MonthKey      string     `json:"month_key" gorm:"size:7"`
	Level         int        `json:"level" gorm:"not null;default:1"`
	StreakDays    int        `json:"streak_days" gorm:"not null;default:0"`
	LongestStreak int        `json:"longest_streak" gorm:"not null;default:0"`
	LastActiveOn  string     `json:"last_active_on" gorm:"size:10"`
	LastXPAt      *time.Time `json:"last_xp_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
