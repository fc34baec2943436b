package model

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        string            `json:"id" gorm:"primaryKey"`
	UserID    string            `json:"user_id" gorm:"not null;index"`
	Type      string            `json:"type" gorm:"not null;size:32"`
	Title     string            `json:"title" gorm:"not null"`
	Message   string            `json:"message" gorm:"type:text"`
	Data      datatypes.JSONMap `json:"data,omitempty"`
	ReadAt    *time.Time        `json:"read_at,omitempty"`
	CreatedAt time.Time         `json:"created_at" gorm:"index"`
}
