package model

import (
	"time"

	"gorm.io/datatypes"
)

type ConversationMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Partial   bool      `json:"partial,omitempty"`
	Flags     []string  `json:"flags,omitempty"`
}

// AIConversation is a chat transcript. Context holds free-form state; for
// onboarding it carries type, step and responses.
type AIConversation struct {
	ID        string                                    `json:"id" gorm:"primaryKey"`
	UserID    string                                    `json:"user_id" gorm:"index"`
	Messages  datatypes.JSONType[[]ConversationMessage] `json:"messages"`
	Context   datatypes.JSONMap                         `json:"context"`
	CreatedAt time.Time                                 `json:"created_at"`
	UpdatedAt time.Time                                 `json:"updated_at" gorm:"index"`
}

// Anonymous conversations belong to visitors without an account and are never
// written to the database.
func (c *AIConversation) Anonymous() bool {
	return c.UserID == ""
}
