package shared

const (
	UserID = "user_id"

	ConversationTypeOnboarding = "onboarding"
	ConversationTypeAssistant  = "assistant"

	RoleUser      = "user"
	RoleAssistant = "assistant"

	PlanPro  = "pro"
	PlanTeam = "team"
	PlanAll  = "all"

	NotificationBadge       = "badge_earned"
	NotificationAchievement = "achievement_earned"
	NotificationReward      = "reward_unlocked"
	NotificationLevelUp     = "level_up"
	NotificationChallenge   = "challenge_completed"
)
