package dto

import "time"

type CheckBadgesRequest struct {
	Metric string  `json:"metric" validate:"required,metric_name" example:"content_published"`
	Value  float64 `json:"value" validate:"gte=0" example:"1"`
}

func (r CheckBadgesRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CheckAchievementsRequest struct {
	Metrics map[string]float64 `json:"metrics" validate:"required,min=1"`
}

func (r CheckAchievementsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type BadgeResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Category    string     `json:"category"`
	Tier        string     `json:"tier"`
	Rarity      string     `json:"rarity"`
	XPReward    int        `json:"xp_reward"`
	Requirement string     `json:"requirement"`
	Metric      string     `json:"metric"`
	Target      float64    `json:"target"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type GrantResponse struct {
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
	Ref    string `json:"ref,omitempty"`
}

type AchievementResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Points      int             `json:"points"`
	Requirement string          `json:"requirement"`
	Rewards     []GrantResponse `json:"rewards"`
	Hidden      bool            `json:"hidden,omitempty"`
	Earned      bool            `json:"earned"`
	EarnedAt    *time.Time      `json:"earned_at,omitempty"`
}
