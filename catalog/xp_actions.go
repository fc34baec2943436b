// Package catalog holds the immutable gamification catalogs: XP actions, the
// level table, badges, achievements, rewards and challenge templates. Nothing
// here is mutated after process start, so values are shared without locking.
package catalog

type Category string

const (
	CategoryContent     Category = "content"
	CategoryEngagement  Category = "engagement"
	CategoryLearning    Category = "learning"
	CategoryConsistency Category = "consistency"
	CategoryCommunity   Category = "community"
	CategoryAchievement Category = "achievement"
)

const (
	ActionPublishContent     = "publish-content"
	ActionCompleteTask       = "complete-task"
	ActionDailyLogin         = "daily-login"
	ActionAIChat             = "ai-chat"
	ActionHelpCommunity      = "help-community"
	ActionShareContent       = "share-content"
	ActionUpdateRoadmap      = "update-roadmap"
	ActionWatchTutorial      = "watch-tutorial"
	ActionCompleteOnboarding = "complete-onboarding"
	ActionCompleteChallenge  = "complete-challenge"
	// ActionUnlockBadge is also the level-up bonus action.
	ActionUnlockBadge = "unlock-badge"
)

// XPAction is an awardable action. DailyLimit and CooldownMinutes are
// disabled when zero.
type XPAction struct {
	ID              string
	Name            string
	Category        Category
	BaseXP          int
	DailyLimit      int
	CooldownMinutes int
}

var xpActions = []XPAction{
	{ID: ActionPublishContent, Name: "Publish content", Category: CategoryContent, BaseXP: 100, DailyLimit: 5},
	{ID: ActionCompleteTask, Name: "Complete a roadmap task", Category: CategoryLearning, BaseXP: 20, DailyLimit: 20},
	{ID: ActionDailyLogin, Name: "Daily check-in", Category: CategoryConsistency, BaseXP: 10, DailyLimit: 1},
	{ID: ActionAIChat, Name: "Chat with the assistant", Category: CategoryEngagement, BaseXP: 5, DailyLimit: 20, CooldownMinutes: 1},
	{ID: ActionHelpCommunity, Name: "Help another creator", Category: CategoryCommunity, BaseXP: 30, DailyLimit: 10},
	{ID: ActionShareContent, Name: "Share content", Category: CategoryCommunity, BaseXP: 15, DailyLimit: 10, CooldownMinutes: 5},
	{ID: ActionUpdateRoadmap, Name: "Update your roadmap", Category: CategoryLearning, BaseXP: 10, CooldownMinutes: 30},
	{ID: ActionWatchTutorial, Name: "Watch a tutorial", Category: CategoryLearning, BaseXP: 15, DailyLimit: 10},
	{ID: ActionCompleteOnboarding, Name: "Finish onboarding", Category: CategoryAchievement, BaseXP: 100, DailyLimit: 1},
	{ID: ActionCompleteChallenge, Name: "Complete a daily challenge", Category: CategoryAchievement, BaseXP: 50},
	{ID: ActionUnlockBadge, Name: "Level-up bonus", Category: CategoryAchievement, BaseXP: 50},
}

var xpActionIndex = indexBy(xpActions, func(a XPAction) string { return a.ID })

func LookupAction(id string) (XPAction, bool) {
	a, ok := xpActionIndex[id]
	return a, ok
}

func Actions() []XPAction {
	return append([]XPAction(nil), xpActions...)
}

// UserActionIDs lists the actions a creator performs directly. Achievement
// category actions (onboarding, challenge and level-up payouts) are excluded.
func UserActionIDs() []string {
	var ids []string
	for _, a := range xpActions {
		if a.Category != CategoryAchievement {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

func indexBy[T any](items []T, key func(T) string) map[string]T {
	m := make(map[string]T, len(items))
	for _, it := range items {
		m[key(it)] = it
	}
	return m
}
