package dto

type PublishContentRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200" example:"My first vlog"`
	Platform string `json:"platform" validate:"required,oneof=youtube tiktok twitch instagram other" example:"youtube"`
}

func (r PublishContentRequest) Validate() error {
	return GetValidator().Struct(r)
}

// CompleteTaskRequest completes an existing task by id, or records and
// completes a new one by title.
type CompleteTaskRequest struct {
	TaskID   string `json:"task_id,omitempty" validate:"required_without=Title,max=64"`
	Title    string `json:"title,omitempty" validate:"required_without=TaskID,max=200" example:"Script episode 2"`
	Category string `json:"category,omitempty" validate:"max=32" example:"production"`
}

func (r CompleteTaskRequest) Validate() error {
	return GetValidator().Struct(r)
}

type EngagementRequest struct {
	Kind string `json:"kind" validate:"required,oneof=ai_interaction help share" example:"help"`
}

func (r EngagementRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ActivityResult lists everything one action unlocked, so the client can show
// it immediately.
type ActivityResult struct {
	XP           *XPGain               `json:"xp,omitempty"`
	Badges       []BadgeResponse       `json:"badges,omitempty"`
	Achievements []AchievementResponse `json:"achievements,omitempty"`
	Rewards      []RewardResponse      `json:"rewards,omitempty"`
	Challenges   []ChallengeResponse   `json:"challenges,omitempty"`
	ResourceID   string                `json:"resource_id,omitempty"`
}
