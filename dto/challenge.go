package dto

import "time"

type ChallengeRequirementResponse struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Count  int    `json:"count"`
}

type ChallengeResponse struct {
	ID           string                         `json:"id"`
	ChallengeID  string                         `json:"challenge_id"`
	Title        string                         `json:"title"`
	Description  string                         `json:"description"`
	Type         string                         `json:"type"`
	Category     string                         `json:"category"`
	Difficulty   string                         `json:"difficulty"`
	Requirements []ChallengeRequirementResponse `json:"requirements"`
	Rewards      []GrantResponse                `json:"rewards"`
	Status       string                         `json:"status"`
	Progress     int                            `json:"progress"`
	ExpiresAt    time.Time                      `json:"expires_at"`
	CompletedAt  *time.Time                     `json:"completed_at,omitempty"`
	ClaimedAt    *time.Time                     `json:"claimed_at,omitempty"`
}

type ClaimResult struct {
	ChallengeID string          `json:"challenge_id"`
	Claimed     bool            `json:"claimed"`
	Rewards     []GrantResponse `json:"rewards,omitempty"`
}
