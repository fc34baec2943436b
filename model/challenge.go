package model

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/catalog"
	"gorm.io/datatypes"
)

const (
	ChallengeStatusActive    = "active"
	ChallengeStatusCompleted = "completed"
	ChallengeStatusExpired   = "expired"
	ChallengeStatusAbandoned = "abandoned"
)

// DailyChallenge is a per-user challenge instance. Requirements and rewards
// are copied from the template; only Title and Description are personalised.
type DailyChallenge struct {
	ID           string                                             `json:"id" gorm:"primaryKey"`
	UserID       string                                             `json:"user_id" gorm:"not null;index:idx_challenge_user_status,priority:1"`
	ChallengeID  string                                             `json:"challenge_id" gorm:"not null;index"`
	Title        string                                             `json:"title" gorm:"not null"`
	Description  string                                             `json:"description" gorm:"type:text"`
	Type         string                                             `json:"type" gorm:"not null;size:16"`
	Category     string                                             `json:"category" gorm:"size:32"`
	Difficulty   string                                             `json:"difficulty" gorm:"not null;size:16"`
	Requirements datatypes.JSONType[[]catalog.ChallengeRequirement] `json:"requirements"`
	Rewards      datatypes.JSONType[[]catalog.Grant]                `json:"rewards"`
	Status       string                                             `json:"status" gorm:"not null;size:16;index:idx_challenge_user_status,priority:2"`
	Progress     int                                                `json:"progress" gorm:"not null;default:0"`
	ExpiresAt    time.Time                                          `json:"expires_at" gorm:"not null;index"`
	CompletedAt  *time.Time                                         `json:"completed_at,omitempty"`
	ClaimedAt    *time.Time                                         `json:"claimed_at,omitempty"`
	CreatedAt    time.Time                                          `json:"created_at" gorm:"not null"`
}
