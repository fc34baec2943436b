package model

import "time"

// RateLimitRule overrides the configured capacity and refill rate of a token
// bucket. Rows are loaded once when the rate limiter starts.
type RateLimitRule struct {
	ID              string    `json:"id" gorm:"primaryKey;type:text;not null"`
	Bucket          string    `json:"bucket" gorm:"uniqueIndex;not null;size:50"`
	Capacity        int       `json:"capacity" gorm:"not null"`
	RefillPerMinute float64   `json:"refill_per_minute" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	IsActive        bool      `json:"is_active" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"not null"`
}
