package catalog

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelTableStrictlyIncreasing(t *testing.T) {
	table := Levels()
	require.NotEmpty(t, table)
	assert.Equal(t, int64(0), table[0].RequiredXP)
	for i := 1; i < len(table); i++ {
		assert.Equal(t, table[i-1].Number+1, table[i].Number)
		assert.Greater(t, table[i].RequiredXP, table[i-1].RequiredXP, "level %d", table[i].Number)
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0).Number)
	assert.Equal(t, 1, LevelFor(249).Number)
	assert.Equal(t, 2, LevelFor(250).Number)
	assert.Equal(t, 8, LevelFor(10000).Number)
	assert.Equal(t, len(levels), LevelFor(1_000_000).Number)
}

func TestLevelProgress(t *testing.T) {
	assert.Equal(t, 0, LevelProgress(0))
	assert.Equal(t, 50, LevelProgress(125))
	assert.Equal(t, 0, LevelProgress(250))
	assert.Equal(t, 100, LevelProgress(1_000_000))
}

func TestCatalogIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range xpActions {
		assert.False(t, seen["action:"+a.ID], a.ID)
		seen["action:"+a.ID] = true
	}
	for _, b := range badges {
		assert.False(t, seen["badge:"+b.ID], b.ID)
		seen["badge:"+b.ID] = true
	}
	for _, a := range achievements {
		assert.False(t, seen["achievement:"+a.ID], a.ID)
		seen["achievement:"+a.ID] = true
	}
	for _, r := range rewards {
		assert.False(t, seen["reward:"+r.ID], r.ID)
		seen["reward:"+r.ID] = true
	}
	for _, c := range challengeTemplates {
		assert.False(t, seen["challenge:"+c.ID], c.ID)
		seen["challenge:"+c.ID] = true
	}
}

func TestCatalogReferencesResolve(t *testing.T) {
	for _, a := range achievements {
		for _, g := range a.Rewards {
			if g.Kind == GrantBadge {
				_, ok := LookupBadge(g.Ref)
				assert.True(t, ok, "achievement %s grants unknown badge %s", a.ID, g.Ref)
			}
		}
	}
	for _, r := range rewards {
		switch u := r.Unlock.(type) {
		case BadgeUnlock:
			_, ok := LookupBadge(u.BadgeID)
			assert.True(t, ok, "reward %s", r.ID)
		case AchievementUnlock:
			_, ok := LookupAchievement(u.AchievementID)
			assert.True(t, ok, "reward %s", r.ID)
		}
	}
	for _, c := range challengeTemplates {
		for _, req := range c.Requirements {
			if req.Type == ChallengeReqAction {
				_, ok := LookupAction(req.Target)
				assert.True(t, ok, "challenge %s", c.ID)
			}
		}
	}
}

func TestEveryDifficultyHasTemplates(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		assert.NotEmpty(t, ChallengePool(d), d)
	}
}

func TestBadgeRequirements(t *testing.T) {
	count := CountRequirement{On: MetricContentPublished, Count: 10}
	assert.Equal(t, MetricContentPublished, count.Metric())
	assert.False(t, count.Met(9, Facts{}))
	assert.True(t, count.Met(10, Facts{}))

	streak := StreakRequirement{Days: 7}
	assert.Equal(t, MetricStreakDays, streak.Metric())
	assert.True(t, streak.Met(8, Facts{}))

	flag := AchievementFlagRequirement{On: MetricOnboardingCompleted}
	assert.False(t, flag.Met(0, Facts{}))
	assert.True(t, flag.Met(1, Facts{}))

	early := CustomRequirement{On: MetricAccountCreated, Predicate: PredicateEarlyAdopter}
	assert.True(t, early.Met(1, Facts{SignupOrder: 1000}))
	assert.False(t, early.Met(1, Facts{SignupOrder: 1001}))
	assert.False(t, early.Met(1, Facts{}))
}

func TestConditionOperators(t *testing.T) {
	assert.True(t, Condition{Op: OpEquals, Values: []float64{3}}.Holds(3))
	assert.True(t, Condition{Op: OpGreaterThan, Values: []float64{3}}.Holds(4))
	assert.False(t, Condition{Op: OpGreaterThan, Values: []float64{3}}.Holds(3))
	assert.True(t, Condition{Op: OpLessThan, Values: []float64{3}}.Holds(2))
	assert.True(t, Condition{Op: OpBetween, Values: []float64{2, 4}}.Holds(4))
	assert.False(t, Condition{Op: OpBetween, Values: []float64{2}}.Holds(2))
	assert.False(t, Condition{Op: OpEquals}.Holds(0))
}

type fakeAggregator struct {
	values  map[string]float64
	special map[string]bool
	since   map[string]time.Time
	err     error
}

func (f *fakeAggregator) Aggregate(metric string, since time.Time) (float64, error) {
	if f.since == nil {
		f.since = map[string]time.Time{}
	}
	f.since[metric] = since
	return f.values[metric], f.err
}

func (f *fakeAggregator) Special(key string, _ time.Time) (bool, error) {
	return f.special[key], f.err
}

func TestAchievementRequirementVariants(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	milestone := MilestoneRequirement{Conditions: []Condition{
		{Metric: MetricContentPublished, Op: OpGreaterThan, Values: []float64{0}},
		{Metric: MetricTasksCompleted, Op: OpGreaterThan, Values: []float64{0}},
	}}
	ok, err := milestone.Evaluate(Inputs{Metrics: map[string]float64{MetricContentPublished: 1}})
	require.NoError(t, err)
	assert.False(t, ok, "missing metric must not satisfy")
	ok, _ = milestone.Evaluate(Inputs{Metrics: map[string]float64{MetricContentPublished: 1, MetricTasksCompleted: 2}})
	assert.True(t, ok)

	perfect := PerfectRequirement{Conditions: []Condition{{Metric: MetricProfileCompletion, Op: OpGreaterThan, Values: []float64{100}}}}
	ok, _ = perfect.Evaluate(Inputs{Metrics: map[string]float64{MetricProfileCompletion: 100}})
	assert.True(t, ok, "perfect compares exactly regardless of operator")

	agg := &fakeAggregator{values: map[string]float64{MetricDistinctPublishDays: 20}}
	cumulative := CumulativeRequirement{Conditions: []Condition{
		{Metric: MetricDistinctPublishDays, Op: OpGreaterThan, Values: []float64{19}, WindowDays: 30},
	}}
	ok, err = cumulative.Evaluate(Inputs{Now: now, Source: agg})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -30), agg.since[MetricDistinctPublishDays])

	unique := UniqueRequirement{Conditions: []Condition{{Metric: MetricDistinctPlatforms, Op: OpGreaterThan, Values: []float64{2}}}}
	ok, _ = unique.Evaluate(Inputs{Now: now, Source: agg})
	assert.False(t, ok)
	assert.True(t, agg.since[MetricDistinctPlatforms].IsZero())

	special := SpecialRequirement{Key: SpecialNightOwl}
	ok, _ = special.Evaluate(Inputs{Now: now, Source: &fakeAggregator{special: map[string]bool{SpecialNightOwl: true}}})
	assert.True(t, ok)

	_, err = cumulative.Evaluate(Inputs{Now: now, Source: &fakeAggregator{err: errors.New("boom")}})
	assert.Error(t, err)
}

func TestUnlockRequirements(t *testing.T) {
	state := UserState{
		Level:        4,
		TotalXP:      10000,
		StreakDays:   2,
		Badges:       map[string]bool{BadgeContentCreator: true},
		Achievements: map[string]bool{},
		Flags:        map[string]bool{SpecialOnboardingComplete: true},
	}

	xp := XPUnlock{XP: 10000}
	assert.True(t, xp.MatchesTrigger(XPTrigger(10000)))
	assert.False(t, xp.MatchesTrigger(XPTrigger(9999)))
	assert.True(t, xp.SatisfiedBy(state))

	level := LevelUnlock{Level: 5}
	assert.True(t, level.MatchesTrigger(LevelTrigger(5)))
	assert.False(t, level.SatisfiedBy(state))

	badge := BadgeUnlock{BadgeID: BadgeContentCreator}
	assert.False(t, badge.MatchesTrigger(BadgeTrigger(BadgeFirstSteps)))
	assert.True(t, badge.SatisfiedBy(state))

	assert.False(t, AchievementUnlock{AchievementID: AchievementNightOwl}.SatisfiedBy(state))
	assert.True(t, SpecialUnlock{Key: SpecialOnboardingComplete}.SatisfiedBy(state))
	assert.False(t, StreakUnlock{Days: 7}.SatisfiedBy(state))
}

func TestTimeWindowContains(t *testing.T) {
	assert.True(t, TimeWindowContains(TimeWindowMorning, 5))
	assert.False(t, TimeWindowContains(TimeWindowMorning, 9))
	assert.True(t, TimeWindowContains(TimeWindowEvening, 23))
	assert.False(t, TimeWindowContains("noon", 12))
}

func TestFuzzyFilter(t *testing.T) {
	all := Badges()
	assert.Len(t, FuzzyFilter(all, "", func(b Badge) string { return b.Name }), len(all))

	hits := FuzzyFilter(all, "streak", func(b Badge) string { return b.Description })
	require.NotEmpty(t, hits)
	for _, b := range hits {
		assert.Equal(t, CategoryConsistency, b.Category)
	}
}
