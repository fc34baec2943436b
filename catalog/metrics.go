package catalog

// Metric names carried by triggers and metric snapshots.
const (
	MetricContentPublished    = "content_published"
	MetricTasksCompleted      = "tasks_completed"
	MetricStreakDays          = "streak_days"
	MetricLevel               = "level"
	MetricTotalXP             = "total_xp"
	MetricAIInteractions      = "ai_interactions"
	MetricHelpGiven           = "help_given"
	MetricContentShared       = "content_shared"
	MetricOnboardingCompleted = "onboarding_completed"
	MetricProfileCompletion   = "profile_completion"
	MetricAccountCreated      = "account_created"
	MetricXPEarned            = "xp_earned"
	MetricDistinctPublishDays = "distinct_publish_days"
	MetricDistinctPlatforms   = "distinct_platforms_published"
	MetricConsistencyKing     = "consistency_king_earned"
	MetricPlatformPioneer     = "platform_pioneer_earned"
)
