package catalog

type RequirementKind string

const (
	RequirementCount       RequirementKind = "count"
	RequirementStreak      RequirementKind = "streak"
	RequirementLevel       RequirementKind = "level"
	RequirementAchievement RequirementKind = "achievement"
	RequirementCustom      RequirementKind = "custom"
)

// Facts is user state that a few badge predicates need beyond the trigger value.
type Facts struct {
	SignupOrder int64
}

// BadgeRequirement is a closed set of variants; each variant evaluates itself.
type BadgeRequirement interface {
	Kind() RequirementKind
	Metric() string
	Met(value float64, facts Facts) bool
	Target() float64

	badgeRequirement()
}

type CountRequirement struct {
	On    string
	Count float64
}

func (r CountRequirement) Kind() RequirementKind           { return RequirementCount }
func (r CountRequirement) Metric() string                  { return r.On }
func (r CountRequirement) Target() float64                 { return r.Count }
func (r CountRequirement) Met(value float64, _ Facts) bool { return value >= r.Count }
func (CountRequirement) badgeRequirement()                 {}

type StreakRequirement struct {
	Days float64
}

func (r StreakRequirement) Kind() RequirementKind           { return RequirementStreak }
func (r StreakRequirement) Metric() string                  { return MetricStreakDays }
func (r StreakRequirement) Target() float64                 { return r.Days }
func (r StreakRequirement) Met(value float64, _ Facts) bool { return value >= r.Days }
func (StreakRequirement) badgeRequirement()                 {}

type LevelRequirement struct {
	Level float64
}

func (r LevelRequirement) Kind() RequirementKind           { return RequirementLevel }
func (r LevelRequirement) Metric() string                  { return MetricLevel }
func (r LevelRequirement) Target() float64                 { return r.Level }
func (r LevelRequirement) Met(value float64, _ Facts) bool { return value >= r.Level }
func (LevelRequirement) badgeRequirement()                 {}

// AchievementFlagRequirement is a binary flag: any positive value meets it.
type AchievementFlagRequirement struct {
	On string
}

func (r AchievementFlagRequirement) Kind() RequirementKind           { return RequirementAchievement }
func (r AchievementFlagRequirement) Metric() string                  { return r.On }
func (r AchievementFlagRequirement) Target() float64                 { return 1 }
func (r AchievementFlagRequirement) Met(value float64, _ Facts) bool { return value > 0 }
func (AchievementFlagRequirement) badgeRequirement()                 {}

type CustomPredicate string

const (
	// PredicateEarlyAdopter holds for the first 1000 registered users.
	PredicateEarlyAdopter CustomPredicate = "early_adopter"
)

const earlyAdopterCutoff = 1000

type CustomRequirement struct {
	On        string
	Predicate CustomPredicate
}

func (r CustomRequirement) Kind() RequirementKind { return RequirementCustom }
func (r CustomRequirement) Metric() string        { return r.On }
func (r CustomRequirement) Target() float64       { return 1 }

func (r CustomRequirement) Met(_ float64, facts Facts) bool {
	switch r.Predicate {
	case PredicateEarlyAdopter:
		return facts.SignupOrder > 0 && facts.SignupOrder <= earlyAdopterCutoff
	}
	return false
}

func (CustomRequirement) badgeRequirement() {}
