package model

import (
	"time"

	"gorm.io/datatypes"
)

type UnlockedReward struct {
	ID         string     `json:"id" gorm:"primaryKey"`
	UserID     string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_reward"`
	RewardID   string     `json:"reward_id" gorm:"not null;uniqueIndex:idx_user_reward"`
	UnlockedAt time.Time  `json:"unlocked_at" gorm:"not null"`
	ClaimedAt  *time.Time `json:"claimed_at,omitempty"`
	Active     bool       `json:"active" gorm:"not null;default:false"`
}

type UnlockedFeature struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_feature"`
	Feature   string    `json:"feature" gorm:"not null;uniqueIndex:idx_user_feature"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type UserCosmetic struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_cosmetic"`
	Asset     string    `json:"asset" gorm:"not null;uniqueIndex:idx_user_cosmetic"`
	Slot      string    `json:"slot"`
	Equipped  bool      `json:"equipped" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

type UserTemplateAccess struct {
	ID         string                       `json:"id" gorm:"primaryKey"`
	UserID     string                       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_template"`
	RewardID   string                       `json:"reward_id" gorm:"not null;uniqueIndex:idx_user_template"`
	Categories datatypes.JSONType[[]string] `json:"categories"`
	CreatedAt  time.Time                    `json:"created_at"`
}

type UserPerk struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"not null;uniqueIndex:idx_user_perk"`
	Perk      string     `json:"perk" gorm:"not null;uniqueIndex:idx_user_perk"`
	Active    bool       `json:"active" gorm:"not null;index"`
	ExpiresAt *time.Time `json:"expires_at,omitempty" gorm:"index"`
	CreatedAt time.Time  `json:"created_at"`
}

type ContentAccess struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_content"`
	ContentID string    `json:"content_id" gorm:"not null;uniqueIndex:idx_user_content"`
	CreatedAt time.Time `json:"created_at"`
}

type UserDiscount struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;uniqueIndex:idx_user_discount"`
	RewardID  string    `json:"reward_id" gorm:"not null;uniqueIndex:idx_user_discount"`
	Percent   int       `json:"percent" gorm:"not null"`
	Plan      string    `json:"plan" gorm:"not null;size:16"`
	Lifetime  bool      `json:"lifetime" gorm:"not null;default:false"`
	Active    bool      `json:"active" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
