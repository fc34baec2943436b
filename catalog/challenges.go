package catalog

type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeSpecial ChallengeType = "special"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type ChallengeRequirementType string

const (
	// ChallengeReqTask counts roadmap tasks completed since the challenge started.
	ChallengeReqTask ChallengeRequirementType = "task"
	// ChallengeReqAction counts XP transactions of the action named by Target.
	ChallengeReqAction ChallengeRequirementType = "action"
	// ChallengeReqMetric reads a stats snapshot value named by Target.
	ChallengeReqMetric ChallengeRequirementType = "metric"
	// ChallengeReqTime counts XP-earning actions inside the time window named by Target.
	ChallengeReqTime ChallengeRequirementType = "time"
)

const (
	TimeWindowMorning = "morning"
	TimeWindowEvening = "evening"
)

type ChallengeRequirement struct {
	Type   ChallengeRequirementType `json:"type"`
	Target string                   `json:"target"`
	Count  int                      `json:"count"`
}

type ChallengeTemplate struct {
	ID           string
	Title        string
	Description  string
	Type         ChallengeType
	Category     Category
	Difficulty   Difficulty
	Requirements []ChallengeRequirement
	Rewards      []Grant
}

var challengeTemplates = []ChallengeTemplate{
	{
		ID: "quick-task", Title: "Quick Win", Description: "Complete one task from your roadmap",
		Type: ChallengeDaily, Category: CategoryLearning, Difficulty: DifficultyEasy,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqTask, Target: "any", Count: 1}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 25}},
	},
	{
		ID: "say-hello", Title: "Brainstorm Buddy", Description: "Ask the assistant for three content ideas",
		Type: ChallengeDaily, Category: CategoryEngagement, Difficulty: DifficultyEasy,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqAction, Target: ActionAIChat, Count: 3}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 20}},
	},
	{
		ID: "early-bird", Title: "Early Bird", Description: "Get something done before 9am",
		Type: ChallengeDaily, Category: CategoryConsistency, Difficulty: DifficultyEasy,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqTime, Target: TimeWindowMorning, Count: 1}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 30}},
	},
	{
		ID: "share-the-love", Title: "Share the Love", Description: "Share a piece of content",
		Type: ChallengeDaily, Category: CategoryCommunity, Difficulty: DifficultyEasy,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqAction, Target: ActionShareContent, Count: 1}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 20}},
	},
	{
		ID: "task-trio", Title: "Task Trio", Description: "Complete three roadmap tasks",
		Type: ChallengeDaily, Category: CategoryLearning, Difficulty: DifficultyMedium,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqTask, Target: "any", Count: 3}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 60}},
	},
	{
		ID: "helper", Title: "Lend a Hand", Description: "Help two creators in the community",
		Type: ChallengeDaily, Category: CategoryCommunity, Difficulty: DifficultyMedium,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqAction, Target: ActionHelpCommunity, Count: 2}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 60}, {Kind: GrantBadge, Ref: "Helper of the Day"}},
	},
	{
		ID: "learn-and-do", Title: "Learn and Do", Description: "Watch a tutorial and finish a task",
		Type: ChallengeDaily, Category: CategoryLearning, Difficulty: DifficultyMedium,
		Requirements: []ChallengeRequirement{
			{Type: ChallengeReqAction, Target: ActionWatchTutorial, Count: 1},
			{Type: ChallengeReqTask, Target: "any", Count: 1},
		},
		Rewards: []Grant{{Kind: GrantXP, Amount: 50}},
	},
	{
		ID: "ship-it", Title: "Ship It", Description: "Publish a piece of content today",
		Type: ChallengeDaily, Category: CategoryContent, Difficulty: DifficultyHard,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqAction, Target: ActionPublishContent, Count: 1}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 120}, {Kind: GrantBadge, Ref: "Shipper"}},
	},
	{
		ID: "night-session", Title: "Night Session", Description: "Complete three actions after 9pm",
		Type: ChallengeDaily, Category: CategoryConsistency, Difficulty: DifficultyHard,
		Requirements: []ChallengeRequirement{{Type: ChallengeReqTime, Target: TimeWindowEvening, Count: 3}},
		Rewards:      []Grant{{Kind: GrantXP, Amount: 100}},
	},
	{
		ID: "streak-keeper", Title: "Streak Keeper", Description: "Hold a streak of at least 5 days and finish five tasks",
		Type: ChallengeDaily, Category: CategoryConsistency, Difficulty: DifficultyHard,
		Requirements: []ChallengeRequirement{
			{Type: ChallengeReqMetric, Target: MetricStreakDays, Count: 5},
			{Type: ChallengeReqTask, Target: "any", Count: 5},
		},
		Rewards: []Grant{{Kind: GrantXP, Amount: 150}, {Kind: GrantFeature, Ref: "streak_freeze"}},
	},
}

var challengeIndex = indexBy(challengeTemplates, func(c ChallengeTemplate) string { return c.ID })

func ChallengeTemplates() []ChallengeTemplate {
	return append([]ChallengeTemplate(nil), challengeTemplates...)
}

func LookupChallenge(id string) (ChallengeTemplate, bool) {
	c, ok := challengeIndex[id]
	return c, ok
}

// ChallengePool returns the templates of one difficulty in catalog order.
func ChallengePool(d Difficulty) []ChallengeTemplate {
	var pool []ChallengeTemplate
	for _, c := range challengeTemplates {
		if c.Difficulty == d {
			pool = append(pool, c)
		}
	}
	return pool
}

// TimeWindowContains reports whether hour falls in the named window.
func TimeWindowContains(window string, hour int) bool {
	switch window {
	case TimeWindowMorning:
		return hour >= 5 && hour < 9
	case TimeWindowEvening:
		return hour >= 21 && hour < 24
	}
	return false
}
