package dto

import "time"

type SendMessageRequest struct {
	ConversationID string                 `json:"conversation_id,omitempty" validate:"omitempty,max=64"`
	Message        string                 `json:"message" validate:"required,min=1,max=4000" example:"1"`
	Context        map[string]interface{} `json:"context,omitempty"`
	Stream         bool                   `json:"stream,omitempty"`
}

func (r SendMessageRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ProcessMessageRequest is the service-level input; UserID is empty for
// anonymous visitors.
type ProcessMessageRequest struct {
	ConversationID string
	UserID         string
	Message        string
	InitialContext map[string]interface{}
}

type ConversationTurn struct {
	ConversationID string                 `json:"conversation_id"`
	Reply          string                 `json:"reply"`
	Context        map[string]interface{} `json:"context"`
	Step           string                 `json:"step,omitempty"`
	Completed      bool                   `json:"onboarding_completed,omitempty"`
	Flags          []string               `json:"flags,omitempty"`
}

type MessageResponse struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Partial   bool      `json:"partial,omitempty"`
	Flags     []string  `json:"flags,omitempty"`
}

type ConversationResponse struct {
	ID        string                 `json:"id"`
	UserID    string                 `json:"user_id,omitempty"`
	Messages  []MessageResponse      `json:"messages"`
	Context   map[string]interface{} `json:"context"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type ConversationSummary struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	MessageCount int       `json:"message_count"`
	LastMessage  string    `json:"last_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ExportResponse struct {
	ConversationID string    `json:"conversation_id"`
	ObjectKey      string    `json:"object_key"`
	URL            string    `json:"url"`
	ExpiresAt      time.Time `json:"expires_at"`
}
