package catalog

import "time"

type AchievementKind string

const (
	AchievementMilestone  AchievementKind = "milestone"
	AchievementCumulative AchievementKind = "cumulative"
	AchievementUnique     AchievementKind = "unique"
	AchievementPerfect    AchievementKind = "perfect"
	AchievementSpecial    AchievementKind = "special"
)

// Aggregator answers windowed questions that a metrics snapshot cannot.
type Aggregator interface {
	Aggregate(metric string, since time.Time) (float64, error)
	Special(key string, now time.Time) (bool, error)
}

type Inputs struct {
	Metrics map[string]float64
	Now     time.Time
	Source  Aggregator
}

// AchievementRequirement is a closed set of variants; each variant evaluates itself.
type AchievementRequirement interface {
	Kind() AchievementKind
	Evaluate(in Inputs) (bool, error)

	achievementRequirement()
}

// MilestoneRequirement checks every condition against the supplied metrics.
type MilestoneRequirement struct {
	Conditions []Condition
}

func (r MilestoneRequirement) Kind() AchievementKind { return AchievementMilestone }

func (r MilestoneRequirement) Evaluate(in Inputs) (bool, error) {
	return allSnapshot(r.Conditions, in.Metrics, Condition.Holds), nil
}

func (MilestoneRequirement) achievementRequirement() {}

// PerfectRequirement demands an exact match on every condition.
type PerfectRequirement struct {
	Conditions []Condition
}

func (r PerfectRequirement) Kind() AchievementKind { return AchievementPerfect }

func (r PerfectRequirement) Evaluate(in Inputs) (bool, error) {
	return allSnapshot(r.Conditions, in.Metrics, Condition.Exact), nil
}

func (PerfectRequirement) achievementRequirement() {}

// CumulativeRequirement evaluates conditions over time-windowed aggregates.
type CumulativeRequirement struct {
	Conditions []Condition
}

func (r CumulativeRequirement) Kind() AchievementKind { return AchievementCumulative }

func (r CumulativeRequirement) Evaluate(in Inputs) (bool, error) {
	return allAggregated(r.Conditions, in)
}

func (CumulativeRequirement) achievementRequirement() {}

// UniqueRequirement evaluates conditions over distinct-count aggregates.
type UniqueRequirement struct {
	Conditions []Condition
}

func (r UniqueRequirement) Kind() AchievementKind { return AchievementUnique }

func (r UniqueRequirement) Evaluate(in Inputs) (bool, error) {
	return allAggregated(r.Conditions, in)
}

func (UniqueRequirement) achievementRequirement() {}

// SpecialRequirement is a hard-coded check keyed by achievement id.
type SpecialRequirement struct {
	Key string
}

func (r SpecialRequirement) Kind() AchievementKind { return AchievementSpecial }

func (r SpecialRequirement) Evaluate(in Inputs) (bool, error) {
	if in.Source == nil {
		return false, nil
	}
	return in.Source.Special(r.Key, in.Now)
}

func (SpecialRequirement) achievementRequirement() {}

func allSnapshot(conds []Condition, metrics map[string]float64, pred func(Condition, float64) bool) bool {
	if len(conds) == 0 {
		return false
	}
	for _, c := range conds {
		v, ok := metrics[c.Metric]
		if !ok || !pred(c, v) {
			return false
		}
	}
	return true
}

func allAggregated(conds []Condition, in Inputs) (bool, error) {
	if len(conds) == 0 || in.Source == nil {
		return false, nil
	}
	for _, c := range conds {
		v, err := in.Source.Aggregate(c.Metric, c.Since(in.Now))
		if err != nil {
			return false, err
		}
		if !c.Holds(v) {
			return false, nil
		}
	}
	return true, nil
}

type GrantKind string

const (
	GrantXP       GrantKind = "xp"
	GrantBadge    GrantKind = "badge"
	GrantTitle    GrantKind = "title"
	GrantFeature  GrantKind = "feature"
	GrantCosmetic GrantKind = "cosmetic"
)

// Grant is one reward bundled with an achievement or challenge. Amount is used
// by xp grants, Ref by everything else.
type Grant struct {
	Kind   GrantKind `json:"type"`
	Amount int       `json:"amount,omitempty"`
	Ref    string    `json:"ref,omitempty"`
}

const (
	AchievementGettingStarted  = "getting-started"
	AchievementConsistencyKing = "consistency-king"
	AchievementNightOwl        = "night-owl"
	AchievementMultiPlatform   = "multi-platform"
	AchievementCommunityPillar = "community-pillar"
)

// SpecialNightOwl counts tasks completed between midnight and 5am.
const SpecialNightOwl = "night_owl"

type Achievement struct {
	ID          string
	Name        string
	Description string
	Category    Category
	Points      int
	Requirement AchievementRequirement
	Rewards     []Grant
	Hidden      bool
}

var achievements = []Achievement{
	{
		ID: AchievementGettingStarted, Name: "Getting Started", Category: CategoryContent, Points: 10,
		Description: "Publish content and finish a roadmap task",
		Requirement: MilestoneRequirement{Conditions: []Condition{
			{Metric: MetricContentPublished, Op: OpGreaterThan, Values: []float64{0}},
			{Metric: MetricTasksCompleted, Op: OpGreaterThan, Values: []float64{0}},
		}},
		Rewards: []Grant{{Kind: GrantXP, Amount: 50}, {Kind: GrantTitle, Ref: "Creator"}},
	},
	{
		ID: AchievementConsistencyKing, Name: "Consistency King", Category: CategoryConsistency, Points: 50,
		Description: "Publish on 20 different days within 30 days",
		Requirement: CumulativeRequirement{Conditions: []Condition{
			{Metric: MetricDistinctPublishDays, Op: OpGreaterThan, Values: []float64{19}, WindowDays: 30},
		}},
		Rewards: []Grant{
			{Kind: GrantXP, Amount: 500},
			{Kind: GrantBadge, Ref: BadgeConsistencyCrown},
			{Kind: GrantFeature, Ref: "advanced_analytics"},
		},
	},
	{
		ID: AchievementNightOwl, Name: "Night Owl", Category: CategoryLearning, Points: 30,
		Description: "Complete 50 tasks between midnight and 5am in 30 days",
		Requirement: SpecialRequirement{Key: SpecialNightOwl},
		Rewards:     []Grant{{Kind: GrantXP, Amount: 300}, {Kind: GrantTitle, Ref: "Night Owl"}, {Kind: GrantCosmetic, Ref: "theme-midnight"}},
		Hidden:      true,
	},
	{
		ID: "profile-perfectionist", Name: "Profile Perfectionist", Category: CategoryAchievement, Points: 15,
		Description: "Complete onboarding with a fully filled profile",
		Requirement: PerfectRequirement{Conditions: []Condition{
			{Metric: MetricProfileCompletion, Op: OpEquals, Values: []float64{100}},
			{Metric: MetricOnboardingCompleted, Op: OpEquals, Values: []float64{1}},
		}},
		Rewards: []Grant{{Kind: GrantXP, Amount: 150}, {Kind: GrantCosmetic, Ref: "frame-gold"}},
	},
	{
		ID: AchievementMultiPlatform, Name: "Multi-Platform", Category: CategoryContent, Points: 40,
		Description: "Publish on three different platforms",
		Requirement: UniqueRequirement{Conditions: []Condition{
			{Metric: MetricDistinctPlatforms, Op: OpGreaterThan, Values: []float64{2}},
		}},
		Rewards: []Grant{
			{Kind: GrantXP, Amount: 400},
			{Kind: GrantBadge, Ref: BadgePlatformPioneer},
			{Kind: GrantFeature, Ref: "cross_post_scheduler"},
		},
	},
	{
		ID: AchievementCommunityPillar, Name: "Community Pillar", Category: CategoryCommunity, Points: 60,
		Description: "Help 50 creators within 90 days",
		Requirement: CumulativeRequirement{Conditions: []Condition{
			{Metric: MetricHelpGiven, Op: OpGreaterThan, Values: []float64{49}, WindowDays: 90},
		}},
		Rewards: []Grant{{Kind: GrantXP, Amount: 600}, {Kind: GrantTitle, Ref: "Community Pillar"}},
	},
	{
		ID: "elite-status", Name: "Elite Status", Category: CategoryAchievement, Points: 100,
		Description: "Reach level 10",
		Requirement: MilestoneRequirement{Conditions: []Condition{
			{Metric: MetricLevel, Op: OpGreaterThan, Values: []float64{9}},
		}},
		Rewards: []Grant{{Kind: GrantXP, Amount: 1000}, {Kind: GrantTitle, Ref: "Elite Creator"}, {Kind: GrantFeature, Ref: "priority_support"}},
	},
	{
		ID: "streak-legend", Name: "Streak Legend", Category: CategoryConsistency, Points: 80,
		Description: "Hold a streak of 100 days or more",
		Requirement: MilestoneRequirement{Conditions: []Condition{
			{Metric: MetricStreakDays, Op: OpGreaterThan, Values: []float64{99}},
		}},
		Rewards: []Grant{{Kind: GrantXP, Amount: 800}, {Kind: GrantCosmetic, Ref: "aura-flame"}},
		Hidden:  true,
	},
	{
		ID: "monthly-grinder", Name: "Monthly Grinder", Category: CategoryConsistency, Points: 25,
		Description: "Earn between 2000 and 5000 XP in the last 30 days",
		Requirement: CumulativeRequirement{Conditions: []Condition{
			{Metric: MetricXPEarned, Op: OpBetween, Values: []float64{2000, 5000}, WindowDays: 30},
		}},
		Rewards: []Grant{{Kind: GrantXP, Amount: 200}},
	},
}

var achievementIndex = indexBy(achievements, func(a Achievement) string { return a.ID })

func Achievements() []Achievement {
	return append([]Achievement(nil), achievements...)
}

func LookupAchievement(id string) (Achievement, bool) {
	a, ok := achievementIndex[id]
	return a, ok
}
