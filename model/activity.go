package model

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"

	EngagementAIInteraction = "ai_interaction"
	EngagementHelp          = "help"
	EngagementShare         = "share"
)

type ContentPost struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"not null;index:idx_post_user_published,priority:1"`
	Title       string     `json:"title" gorm:"not null"`
	Platform    string     `json:"platform" gorm:"size:32"`
	Status      string     `json:"status" gorm:"not null;size:16"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"index:idx_post_user_published,priority:2"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Task is a roadmap task.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	UserID      string     `json:"user_id" gorm:"not null;index:idx_task_user_completed,priority:1"`
	Title       string     `json:"title" gorm:"not null"`
	Category    string     `json:"category" gorm:"size:32"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"index:idx_task_user_completed,priority:2"`
	CreatedAt   time.Time  `json:"created_at"`
}

type EngagementEvent struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"not null;index:idx_engagement_user_kind,priority:1"`
	Kind      string    `json:"kind" gorm:"not null;size:32;index:idx_engagement_user_kind,priority:2"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index"`
}
