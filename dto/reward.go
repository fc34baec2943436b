package dto

import "time"

type DiscountRequest struct {
	Plan        string `json:"plan" validate:"required,oneof=pro team" example:"pro"`
	AmountCents int64  `json:"amount_cents" validate:"gte=0" example:"1999"`
}

func (r DiscountRequest) Validate() error {
	return GetValidator().Struct(r)
}

type DiscountResponse struct {
	Plan          string `json:"plan"`
	Percent       int    `json:"percent"`
	RewardID      string `json:"reward_id,omitempty"`
	OriginalCents int64  `json:"original_cents"`
	FinalCents    int64  `json:"final_cents"`
}

type RewardResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Type          string      `json:"type"`
	Category      string      `json:"category"`
	Icon          string      `json:"icon,omitempty"`
	Requirement   string      `json:"requirement"`
	Value         interface{} `json:"value"`
	RequiresClaim bool        `json:"requires_claim"`
	Unlocked      bool        `json:"unlocked"`
	UnlockedAt    *time.Time  `json:"unlocked_at,omitempty"`
	ClaimedAt     *time.Time  `json:"claimed_at,omitempty"`
	Active        bool        `json:"active"`
}

type ContentAccessResponse struct {
	ContentID string `json:"content_id"`
	Granted   bool   `json:"granted"`
}
