package catalog

type RewardType string

const (
	RewardFeature  RewardType = "feature"
	RewardCosmetic RewardType = "cosmetic"
	RewardTemplate RewardType = "template"
	RewardPerk     RewardType = "perk"
	RewardContent  RewardType = "content"
	RewardDiscount RewardType = "discount"
)

// RewardValue is the type-specific payload; only the field matching the
// reward's type is set.
type RewardValue struct {
	Feature   string         `json:"feature,omitempty"`
	Cosmetic  *CosmeticValue `json:"cosmetic,omitempty"`
	Templates []string       `json:"templates,omitempty"`
	Perk      *PerkValue     `json:"perk,omitempty"`
	ContentID string         `json:"content_id,omitempty"`
	Discount  *DiscountValue `json:"discount,omitempty"`
}

type CosmeticValue struct {
	Slot  string `json:"slot"`
	Asset string `json:"asset"`
}

type PerkValue struct {
	Perk    string `json:"perk"`
	Monthly bool   `json:"monthly"`
}

type DiscountValue struct {
	Percent  int    `json:"percent"`
	Plan     string `json:"plan"`
	Lifetime bool   `json:"lifetime"`
}

const (
	SpecialEarlyAdopter       = "early_adopter"
	SpecialOnboardingComplete = "onboarding_complete"

	RewardExclusiveGuides = "exclusive-creator-guides"
)

type Reward struct {
	ID            string
	Name          string
	Description   string
	Type          RewardType
	Category      Category
	Unlock        UnlockRequirement
	Value         RewardValue
	Icon          string
	RequiresClaim bool
}

var rewards = []Reward{
	{
		ID: "starter-templates", Name: "Starter Template Pack", Type: RewardTemplate, Category: CategoryContent,
		Description: "Intro, outro and thumbnail templates", Icon: "🧩",
		Unlock: LevelUnlock{Level: 2},
		Value:  RewardValue{Templates: []string{"youtube-intro", "thumbnail-basic", "short-hook"}},
	},
	{
		ID: "custom-themes", Name: "Custom Themes", Type: RewardFeature, Category: CategoryEngagement,
		Description: "Personalise your workspace theme", Icon: "🎨",
		Unlock: LevelUnlock{Level: 3},
		Value:  RewardValue{Feature: "custom_themes"},
	},
	{
		ID: "analytics-dashboard", Name: "Analytics Dashboard", Type: RewardFeature, Category: CategoryContent,
		Description: "Channel growth analytics", Icon: "📊",
		Unlock: LevelUnlock{Level: 5},
		Value:  RewardValue{Feature: "analytics_dashboard"},
	},
	{
		ID: "golden-frame", Name: "Golden Profile Frame", Type: RewardCosmetic, Category: CategoryContent,
		Description: "A golden frame for your avatar", Icon: "🖼️",
		Unlock: BadgeUnlock{BadgeID: BadgeContentCreator},
		Value:  RewardValue{Cosmetic: &CosmeticValue{Slot: "profile_frame", Asset: "frame-gold"}},
	},
	{
		ID: "streak-flame", Name: "Streak Flame", Type: RewardCosmetic, Category: CategoryConsistency,
		Description: "An animated flame next to your name", Icon: "🔥",
		Unlock: StreakUnlock{Days: 7},
		Value:  RewardValue{Cosmetic: &CosmeticValue{Slot: "name_effect", Asset: "flame"}},
	},
	{
		ID: "pro-templates", Name: "Pro Template Pack", Type: RewardTemplate, Category: CategoryContent,
		Description: "Series, collab and launch templates", Icon: "🗂️",
		Unlock: AchievementUnlock{AchievementID: AchievementConsistencyKing},
		Value:  RewardValue{Templates: []string{"series-planner", "collab-brief", "launch-checklist"}},
	},
	{
		ID: "priority-feedback", Name: "Priority Feedback", Type: RewardPerk, Category: CategoryCommunity,
		Description: "Monthly priority review from the coaching team", Icon: "📬",
		Unlock:        LevelUnlock{Level: 8},
		Value:         RewardValue{Perk: &PerkValue{Perk: "priority_feedback", Monthly: true}},
		RequiresClaim: true,
	},
	{
		ID: "ai-boost", Name: "AI Boost", Type: RewardPerk, Category: CategoryEngagement,
		Description: "Higher assistant message allowance", Icon: "⚡",
		Unlock: StreakUnlock{Days: 30},
		Value:  RewardValue{Perk: &PerkValue{Perk: "ai_message_boost"}},
	},
	{
		ID: RewardExclusiveGuides, Name: "Exclusive Creator Guides", Type: RewardContent, Category: CategoryLearning,
		Description: "Members-only growth playbooks", Icon: "📖",
		Unlock: XPUnlock{XP: 10000},
		Value:  RewardValue{ContentID: "guides/exclusive-creator"},
	},
	{
		ID: "pro-discount-20", Name: "20% off Pro", Type: RewardDiscount, Category: CategoryAchievement,
		Description: "20% off your next Pro subscription", Icon: "🏷️",
		Unlock: LevelUnlock{Level: 10},
		Value:  RewardValue{Discount: &DiscountValue{Percent: 20, Plan: "pro"}},
	},
	{
		ID: "community-discount-30", Name: "30% off Pro for life", Type: RewardDiscount, Category: CategoryCommunity,
		Description: "A lifetime discount for community pillars", Icon: "💜",
		Unlock: AchievementUnlock{AchievementID: AchievementCommunityPillar},
		Value:  RewardValue{Discount: &DiscountValue{Percent: 30, Plan: "pro", Lifetime: true}},
	},
	{
		ID: "early-adopter-discount", Name: "Early Adopter Discount", Type: RewardDiscount, Category: CategoryCommunity,
		Description: "15% off any plan for early adopters", Icon: "🐣",
		Unlock: SpecialUnlock{Key: SpecialEarlyAdopter},
		Value:  RewardValue{Discount: &DiscountValue{Percent: 15, Plan: "all", Lifetime: true}},
	},
	{
		ID: "beta-lab", Name: "Beta Lab Access", Type: RewardFeature, Category: CategoryEngagement,
		Description: "Try new tools before everyone else", Icon: "🧪",
		Unlock: SpecialUnlock{Key: SpecialOnboardingComplete},
		Value:  RewardValue{Feature: "beta_lab"},
	},
}

var rewardIndex = indexBy(rewards, func(r Reward) string { return r.ID })

func Rewards() []Reward {
	return append([]Reward(nil), rewards...)
}

func LookupReward(id string) (Reward, bool) {
	r, ok := rewardIndex[id]
	return r, ok
}
