package dto

import "time"

type RateLimitInfo struct {
	Allowed    bool          `json:"allowed"`
	Bucket     string        `json:"bucket"`
	Remaining  int           `json:"remaining"`
	RetryAfter time.Duration `json:"retry_after,omitempty" swaggertype:"integer"`
}
