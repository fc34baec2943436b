package dto

import "time"

type CreateUserRequest struct {
	ID          string `json:"id" validate:"required,max=64" example:"0190f5d2-7c1e-7a8b-9d2e-3f4a5b6c7d8e"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=64" example:"Ava Creates"`
}

func (r CreateUserRequest) Validate() error {
	return GetValidator().Struct(r)
}

// OnboardingProfile is what a completed onboarding conversation hands off.
type OnboardingProfile struct {
	CreatorLevel  string   `json:"creator_level"`
	Platforms     []string `json:"platforms"`
	PlatformNotes string   `json:"platform_notes,omitempty"`
	ContentNiche  string   `json:"content_niche"`
	Equipment     string   `json:"equipment"`
	Goals         string   `json:"goals"`
	Challenges    string   `json:"challenges"`
}

type ProfileResponse struct {
	UserID       string             `json:"user_id"`
	DisplayName  string             `json:"display_name"`
	SignupOrder  int64              `json:"signup_order"`
	Profile      *OnboardingProfile `json:"profile,omitempty"`
	OnboardedAt  *time.Time         `json:"onboarded_at,omitempty"`
	Level        UserLevel          `json:"level"`
	StreakDays   int                `json:"streak_days"`
	Badges       int64              `json:"badges"`
	Achievements int64              `json:"achievements"`
	Features     []string           `json:"features"`
	Titles       []string           `json:"titles"`
	CreatedAt    time.Time          `json:"created_at"`
}
