package catalog

type TriggerType string

const (
	TriggerLevel       TriggerType = "level"
	TriggerAchievement TriggerType = "achievement"
	TriggerBadge       TriggerType = "badge"
	TriggerXP          TriggerType = "xp"
	TriggerStreak      TriggerType = "streak"
	TriggerSpecial     TriggerType = "special"
)

// Trigger is the event that caused a reward scan. Numeric triggers use Value,
// catalog-id and special triggers use Ref.
type Trigger struct {
	Type  TriggerType `json:"type"`
	Value int64       `json:"value,omitempty"`
	Ref   string      `json:"ref,omitempty"`
}

func LevelTrigger(level int) Trigger    { return Trigger{Type: TriggerLevel, Value: int64(level)} }
func XPTrigger(total int64) Trigger     { return Trigger{Type: TriggerXP, Value: total} }
func StreakTrigger(days int) Trigger    { return Trigger{Type: TriggerStreak, Value: int64(days)} }
func BadgeTrigger(id string) Trigger    { return Trigger{Type: TriggerBadge, Ref: id} }
func SpecialTrigger(key string) Trigger { return Trigger{Type: TriggerSpecial, Ref: key} }

func AchievementTrigger(id string) Trigger {
	return Trigger{Type: TriggerAchievement, Ref: id}
}

// UserState is the snapshot used for the full requirement check.
type UserState struct {
	Level        int
	TotalXP      int64
	StreakDays   int
	Badges       map[string]bool
	Achievements map[string]bool
	Flags        map[string]bool
}

// UnlockRequirement is a closed set of variants. MatchesTrigger compares the
// trigger directly; SatisfiedBy checks current user state.
type UnlockRequirement interface {
	Type() TriggerType
	MatchesTrigger(t Trigger) bool
	SatisfiedBy(s UserState) bool

	unlockRequirement()
}

type LevelUnlock struct{ Level int }

func (r LevelUnlock) Type() TriggerType             { return TriggerLevel }
func (r LevelUnlock) MatchesTrigger(t Trigger) bool { return t.Value >= int64(r.Level) }
func (r LevelUnlock) SatisfiedBy(s UserState) bool  { return s.Level >= r.Level }
func (LevelUnlock) unlockRequirement()              {}

type XPUnlock struct{ XP int64 }

func (r XPUnlock) Type() TriggerType             { return TriggerXP }
func (r XPUnlock) MatchesTrigger(t Trigger) bool { return t.Value >= r.XP }
func (r XPUnlock) SatisfiedBy(s UserState) bool  { return s.TotalXP >= r.XP }
func (XPUnlock) unlockRequirement()              {}

type StreakUnlock struct{ Days int }

func (r StreakUnlock) Type() TriggerType             { return TriggerStreak }
func (r StreakUnlock) MatchesTrigger(t Trigger) bool { return t.Value >= int64(r.Days) }
func (r StreakUnlock) SatisfiedBy(s UserState) bool  { return s.StreakDays >= r.Days }
func (StreakUnlock) unlockRequirement()              {}

type BadgeUnlock struct{ BadgeID string }

func (r BadgeUnlock) Type() TriggerType             { return TriggerBadge }
func (r BadgeUnlock) MatchesTrigger(t Trigger) bool { return t.Ref == r.BadgeID }
func (r BadgeUnlock) SatisfiedBy(s UserState) bool  { return s.Badges[r.BadgeID] }
func (BadgeUnlock) unlockRequirement()              {}

type AchievementUnlock struct{ AchievementID string }

func (r AchievementUnlock) Type() TriggerType             { return TriggerAchievement }
func (r AchievementUnlock) MatchesTrigger(t Trigger) bool { return t.Ref == r.AchievementID }
func (r AchievementUnlock) SatisfiedBy(s UserState) bool  { return s.Achievements[r.AchievementID] }
func (AchievementUnlock) unlockRequirement()              {}

type SpecialUnlock struct{ Key string }

func (r SpecialUnlock) Type() TriggerType             { return TriggerSpecial }
func (r SpecialUnlock) MatchesTrigger(t Trigger) bool { return t.Ref == r.Key }
func (r SpecialUnlock) SatisfiedBy(s UserState) bool  { return s.Flags[r.Key] }
func (SpecialUnlock) unlockRequirement()              {}
