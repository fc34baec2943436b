package catalog

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

const (
	BadgeFirstSteps       = "first-steps"
	BadgeConsistencyCrown = "consistency-crown"
	BadgePlatformPioneer  = "platform-pioneer"
	BadgeEarlyAdopter     = "early-adopter"
	BadgeContentCreator   = "content-creator"
)

type Badge struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Tier        Tier
	Requirement BadgeRequirement
	Rarity      Rarity
	XPReward    int
}

var badges = []Badge{
	{
		ID: BadgeFirstSteps, Name: "First Steps", Description: "Publish your first piece of content",
		Icon: "👣", Category: CategoryContent, Tier: TierBronze, Rarity: RarityCommon, XPReward: 100,
		Requirement: CountRequirement{On: MetricContentPublished, Count: 1},
	},
	{
		ID: BadgeContentCreator, Name: "Content Creator", Description: "Publish 10 pieces of content",
		Icon: "🎥", Category: CategoryContent, Tier: TierSilver, Rarity: RarityUncommon, XPReward: 250,
		Requirement: CountRequirement{On: MetricContentPublished, Count: 10},
	},
	{
		ID: "prolific-publisher", Name: "Prolific Publisher", Description: "Publish 50 pieces of content",
		Icon: "📚", Category: CategoryContent, Tier: TierGold, Rarity: RarityRare, XPReward: 500,
		Requirement: CountRequirement{On: MetricContentPublished, Count: 50},
	},
	{
		ID: "content-machine", Name: "Content Machine", Description: "Publish 100 pieces of content",
		Icon: "🏭", Category: CategoryContent, Tier: TierPlatinum, Rarity: RarityEpic, XPReward: 1000,
		Requirement: CountRequirement{On: MetricContentPublished, Count: 100},
	},
	{
		ID: "on-fire", Name: "On Fire", Description: "Keep a 3 day streak",
		Icon: "🔥", Category: CategoryConsistency, Tier: TierBronze, Rarity: RarityCommon, XPReward: 50,
		Requirement: StreakRequirement{Days: 3},
	},
	{
		ID: "week-warrior", Name: "Week Warrior", Description: "Keep a 7 day streak",
		Icon: "🗓️", Category: CategoryConsistency, Tier: TierSilver, Rarity: RarityUncommon, XPReward: 150,
		Requirement: StreakRequirement{Days: 7},
	},
	{
		ID: "monthly-master", Name: "Monthly Master", Description: "Keep a 30 day streak",
		Icon: "📆", Category: CategoryConsistency, Tier: TierGold, Rarity: RarityRare, XPReward: 500,
		Requirement: StreakRequirement{Days: 30},
	},
	{
		ID: "unstoppable", Name: "Unstoppable", Description: "Keep a 100 day streak",
		Icon: "🚀", Category: CategoryConsistency, Tier: TierDiamond, Rarity: RarityLegendary, XPReward: 2000,
		Requirement: StreakRequirement{Days: 100},
	},
	{
		ID: "rising-star", Name: "Rising Star", Description: "Reach level 5",
		Icon: "⭐", Category: CategoryAchievement, Tier: TierSilver, Rarity: RarityUncommon, XPReward: 200,
		Requirement: LevelRequirement{Level: 5},
	},
	{
		ID: "creator-elite", Name: "Creator Elite", Description: "Reach level 10",
		Icon: "👑", Category: CategoryAchievement, Tier: TierPlatinum, Rarity: RarityEpic, XPReward: 750,
		Requirement: LevelRequirement{Level: 10},
	},
	{
		ID: "task-starter", Name: "Task Starter", Description: "Complete your first roadmap task",
		Icon: "✅", Category: CategoryLearning, Tier: TierBronze, Rarity: RarityCommon, XPReward: 25,
		Requirement: CountRequirement{On: MetricTasksCompleted, Count: 1},
	},
	{
		ID: "roadmap-runner", Name: "Roadmap Runner", Description: "Complete 25 roadmap tasks",
		Icon: "🏃", Category: CategoryLearning, Tier: TierSilver, Rarity: RarityUncommon, XPReward: 150,
		Requirement: CountRequirement{On: MetricTasksCompleted, Count: 25},
	},
	{
		ID: "roadmap-master", Name: "Roadmap Master", Description: "Complete 100 roadmap tasks",
		Icon: "🗺️", Category: CategoryLearning, Tier: TierGold, Rarity: RarityRare, XPReward: 500,
		Requirement: CountRequirement{On: MetricTasksCompleted, Count: 100},
	},
	{
		ID: "ai-explorer", Name: "AI Explorer", Description: "Have 10 conversations with the assistant",
		Icon: "🤖", Category: CategoryEngagement, Tier: TierBronze, Rarity: RarityCommon, XPReward: 50,
		Requirement: CountRequirement{On: MetricAIInteractions, Count: 10},
	},
	{
		ID: "ai-power-user", Name: "AI Power User", Description: "Have 100 conversations with the assistant",
		Icon: "🧠", Category: CategoryEngagement, Tier: TierGold, Rarity: RarityRare, XPReward: 300,
		Requirement: CountRequirement{On: MetricAIInteractions, Count: 100},
	},
	{
		ID: "helping-hand", Name: "Helping Hand", Description: "Help 5 other creators",
		Icon: "🤝", Category: CategoryCommunity, Tier: TierBronze, Rarity: RarityCommon, XPReward: 75,
		Requirement: CountRequirement{On: MetricHelpGiven, Count: 5},
	},
	{
		ID: "community-hero", Name: "Community Hero", Description: "Help 25 other creators",
		Icon: "🦸", Category: CategoryCommunity, Tier: TierGold, Rarity: RarityRare, XPReward: 400,
		Requirement: CountRequirement{On: MetricHelpGiven, Count: 25},
	},
	{
		ID: "signal-booster", Name: "Signal Booster", Description: "Share content 10 times",
		Icon: "📡", Category: CategoryCommunity, Tier: TierBronze, Rarity: RarityCommon, XPReward: 50,
		Requirement: CountRequirement{On: MetricContentShared, Count: 10},
	},
	{
		ID: "ready-to-create", Name: "Ready to Create", Description: "Finish the onboarding interview",
		Icon: "🎬", Category: CategoryAchievement, Tier: TierBronze, Rarity: RarityCommon, XPReward: 50,
		Requirement: AchievementFlagRequirement{On: MetricOnboardingCompleted},
	},
	{
		ID: BadgeConsistencyCrown, Name: "Consistency Crown", Description: "Earned with the Consistency King achievement",
		Icon: "👑", Category: CategoryConsistency, Tier: TierPlatinum, Rarity: RarityEpic, XPReward: 250,
		Requirement: AchievementFlagRequirement{On: MetricConsistencyKing},
	},
	{
		ID: BadgePlatformPioneer, Name: "Platform Pioneer", Description: "Earned with the Multi-Platform achievement",
		Icon: "🌐", Category: CategoryContent, Tier: TierGold, Rarity: RarityRare, XPReward: 200,
		Requirement: AchievementFlagRequirement{On: MetricPlatformPioneer},
	},
	{
		ID: BadgeEarlyAdopter, Name: "Early Adopter", Description: "One of the first 1000 creators to join",
		Icon: "🐣", Category: CategoryCommunity, Tier: TierGold, Rarity: RarityRare, XPReward: 150,
		Requirement: CustomRequirement{On: MetricAccountCreated, Predicate: PredicateEarlyAdopter},
	},
}

var badgeIndex = indexBy(badges, func(b Badge) string { return b.ID })

func Badges() []Badge {
	return append([]Badge(nil), badges...)
}

func LookupBadge(id string) (Badge, bool) {
	b, ok := badgeIndex[id]
	return b, ok
}
