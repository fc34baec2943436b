package model

import (
	"time"

	"gorm.io/datatypes"
)

// XPTransaction is append-only.
type XPTransaction struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	UserID    string            `json:"user_id" gorm:"not null;index:idx_xp_user_action_time,priority:1;index:idx_xp_user_time,priority:1"`
	ActionID  string            `json:"action_id" gorm:"not null;index:idx_xp_user_action_time,priority:2"`
	BaseXP    int               `json:"base_xp" gorm:"not null"`
	BonusXP   int               `json:"bonus_xp" gorm:"not null;default:0"`
	TotalXP   int               `json:"total_xp" gorm:"not null"`
	Category  string            `json:"category" gorm:"not null;size:32"`
	Metadata  datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at" gorm:"not null;index:idx_xp_user_action_time,priority:3;index:idx_xp_user_time,priority:2"`
}
