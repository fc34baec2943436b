package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	focusWindow    = 24 * time.Hour
	focusThreshold = 5
	focusBonusPct  = 15
	timeBonusPct   = 10
	weekendBonus   = 20
)

// streakTiers are checked from the longest streak down.
var streakTiers = []struct {
	days int
	pct  int
}{
	{30, 30},
	{14, 20},
	{7, 10},
	{3, 5},
}

// XPService is the ledger: it appends transactions, maintains totals and
// streaks, and fires level-ups.
type XPService struct {
	appContext.DefaultService

	dbSvc    *DatabaseService
	cascade  *CascadeService
	notifier Notifier
	clock    shared.Clock
}

const XP_SVC = "xp_svc"

func (svc XPService) Id() string {
	return XP_SVC
}

func (svc *XPService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *XPService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.cascade = svc.Service(CASCADE_SVC).(*CascadeService)
	svc.notifier = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	return nil
}

// AwardXP credits a catalog action. Unknown actions, the daily limit and the
// cooldown all return a nil gain without an error. Store failures are
// returned; internal callers log them and continue without a gain.
func (svc *XPService) AwardXP(ctx context.Context, userID, actionID string, metadata map[string]interface{}) (*dto.XPGain, error) {
	action, ok := catalog.LookupAction(actionID)
	if !ok {
		xpSkippedTotal.WithLabelValues("unknown_action").Inc()
		log.WithFields(log.Fields{"user_id": userID, "action_id": actionID}).Warn("Unknown XP action")
		return nil, nil
	}

	now := svc.clock.Now()
	xpRepo := svc.dbSvc.XP()

	if action.DailyLimit > 0 {
		count, err := xpRepo.CountActionSince(userID, action.ID, shared.StartOfDay(now))
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		if count >= int64(action.DailyLimit) {
			xpSkippedTotal.WithLabelValues("daily_limit").Inc()
			log.WithFields(log.Fields{"user_id": userID, "action_id": actionID, "count": count}).Debug("Daily XP limit reached")
			return nil, nil
		}
	}

	if action.CooldownMinutes > 0 {
		last, err := xpRepo.LastActionAt(userID, action.ID)
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		if last != nil && now.Sub(*last) < time.Duration(action.CooldownMinutes)*time.Minute {
			xpSkippedTotal.WithLabelValues("cooldown").Inc()
			log.WithFields(log.Fields{"user_id": userID, "action_id": actionID}).Debug("XP action on cooldown")
			return nil, nil
		}
	}

	stats, err := svc.dbSvc.Users().GetStats(userID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	focusCount, err := xpRepo.CountCategorySince(userID, string(action.Category), now.Add(-focusWindow))
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	pct, reasons := bonusPercent(stats.StreakDays, focusCount, now)
	bonus := action.BaseXP * pct / 100

	tx := &model.XPTransaction{
		UserID:    userID,
		ActionID:  action.ID,
		BaseXP:    action.BaseXP,
		BonusXP:   bonus,
		TotalXP:   action.BaseXP + bonus,
		Category:  string(action.Category),
		Metadata:  metadata,
		CreatedAt: now,
	}
	if err := svc.credit(ctx, tx); err != nil {
		return nil, err
	}

	reason := action.Name
	if len(reasons) > 0 {
		reason = fmt.Sprintf("%s (+%d%%: %s)", action.Name, pct, strings.Join(reasons, ", "))
	}
	return &dto.XPGain{
		ActionID:  action.ID,
		XPAmount:  tx.TotalXP,
		BonusXP:   bonus,
		Reason:    reason,
		Timestamp: now,
	}, nil
}

// GrantXP credits a fixed amount from a badge, achievement or challenge. No
// bonus, limit or cooldown applies.
func (svc *XPService) GrantXP(ctx context.Context, userID, source string, amount int, category catalog.Category) (*dto.XPGain, error) {
	if amount <= 0 {
		return nil, nil
	}
	if category == "" {
		category = catalog.CategoryAchievement
	}

	now := svc.clock.Now()
	tx := &model.XPTransaction{
		UserID:    userID,
		ActionID:  source,
		BaseXP:    amount,
		TotalXP:   amount,
		Category:  string(category),
		CreatedAt: now,
	}
	if err := svc.credit(ctx, tx); err != nil {
		return nil, err
	}

	return &dto.XPGain{
		ActionID:  source,
		XPAmount:  amount,
		Reason:    "Reward: " + source,
		Timestamp: now,
	}, nil
}

// credit appends tx, bumps the totals and queues one level-up per crossed
// threshold.
func (svc *XPService) credit(ctx context.Context, tx *model.XPTransaction) error {
	if err := svc.dbSvc.XP().CreateTransaction(tx); err != nil {
		return svc.dbSvc.HandleError(err)
	}

	stats, err := svc.dbSvc.Users().AddXP(tx.UserID, int64(tx.TotalXP), shared.MonthKey(tx.CreatedAt), tx.CreatedAt)
	if err != nil {
		return svc.dbSvc.HandleError(err)
	}
	xpAwardedTotal.WithLabelValues(tx.Category).Add(float64(tx.TotalXP))

	before := catalog.LevelFor(stats.TotalXP - int64(tx.TotalXP)).Number
	after := catalog.LevelFor(stats.TotalXP).Number

	log.WithFields(log.Fields{
		"user_id":   tx.UserID,
		"action_id": tx.ActionID,
		"xp":        tx.TotalXP,
		"bonus":     tx.BonusXP,
		"total":     stats.TotalXP,
	}).Info("XP awarded")

	jobs := []Job{{Kind: JobRewardCheck, UserID: tx.UserID, Trigger: catalog.XPTrigger(stats.TotalXP)}}
	if after > before {
		if err := svc.dbSvc.Users().SetLevel(tx.UserID, after, tx.CreatedAt); err != nil {
			log.WithFields(log.Fields{"user_id": tx.UserID, "error": err}).Warn("Failed to cache level")
		}
		for n := before + 1; n <= after; n++ {
			jobs = append(jobs, Job{Kind: JobLevelUp, UserID: tx.UserID, Level: n})
		}
	}
	svc.cascade.Submit(ctx, jobs...)
	return nil
}

// handleLevelUp runs at most once per user and level; the marker row's unique
// key makes later calls no-ops.
func (svc *XPService) handleLevelUp(ctx context.Context, userID string, levelNumber int) {
	now := svc.clock.Now()
	level := catalog.LevelByNumber(levelNumber)

	inserted, err := svc.dbSvc.Badges().CreateUserAchievement(&model.UserAchievement{
		UserID:        userID,
		AchievementID: levelUpMarker(levelNumber),
		Kind:          model.AchievementKindLevelUp,
		EarnedAt:      now,
	})
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID, "level": levelNumber, "error": err}).Error("Failed to record level-up")
		return
	}
	if !inserted {
		return
	}
	awardsTotal.WithLabelValues("level_up").Inc()

	if _, err := svc.AwardXP(ctx, userID, catalog.ActionUnlockBadge, map[string]interface{}{"level": levelNumber}); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "level": levelNumber, "error": err}).Warn("Failed to grant level-up bonus")
	}

	svc.notifier.Notify(ctx, userID, shared.NotificationLevelUp,
		fmt.Sprintf("Level %d reached", levelNumber),
		fmt.Sprintf("You are now a %s %s", level.Title, level.Glyph),
		map[string]interface{}{"level": levelNumber, "perks": level.Perks})

	for _, perk := range level.Perks {
		_, err := svc.dbSvc.Rewards().CreateFeature(&model.UnlockedFeature{
			UserID:    userID,
			Feature:   perk,
			Source:    levelUpMarker(levelNumber),
			CreatedAt: now,
		})
		if err != nil {
			log.WithFields(log.Fields{"user_id": userID, "perk": perk, "error": err}).Warn("Failed to unlock level perk")
		}
	}

	svc.cascade.Submit(ctx,
		Job{Kind: JobBadgeCheck, UserID: userID, Metric: catalog.MetricLevel, Value: float64(levelNumber)},
		Job{Kind: JobAchievementCheck, UserID: userID, Metrics: map[string]float64{catalog.MetricLevel: float64(levelNumber)}},
		Job{Kind: JobRewardCheck, UserID: userID, Trigger: catalog.LevelTrigger(levelNumber)},
	)
}

func (svc *XPService) GetUserLevel(ctx context.Context, userID string) (*dto.UserLevel, error) {
	stats, err := svc.dbSvc.Users().GetStats(userID, svc.clock.Now())
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	return levelResponse(stats), nil
}

// RecordDailyActivity maintains the login streak: the same day keeps it, the
// next day extends it and any gap restarts it at one.
func (svc *XPService) RecordDailyActivity(ctx context.Context, userID string) (*dto.StreakResponse, error) {
	now := svc.clock.Now()
	stats, err := svc.dbSvc.Users().GetStats(userID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	today := shared.DayKey(now)
	if stats.LastActiveOn == today {
		return &dto.StreakResponse{StreakDays: stats.StreakDays, LongestStreak: stats.LongestStreak}, nil
	}

	streak := 1
	if stats.LastActiveOn == shared.DayKey(now.AddDate(0, 0, -1)) {
		streak = stats.StreakDays + 1
	}
	longest := stats.LongestStreak
	if streak > longest {
		longest = streak
	}

	if err := svc.dbSvc.Users().SaveStreak(userID, streak, longest, today, now); err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	svc.cascade.Submit(ctx,
		Job{Kind: JobBadgeCheck, UserID: userID, Metric: catalog.MetricStreakDays, Value: float64(streak)},
		Job{Kind: JobAchievementCheck, UserID: userID, Metrics: map[string]float64{catalog.MetricStreakDays: float64(streak)}},
		Job{Kind: JobRewardCheck, UserID: userID, Trigger: catalog.StreakTrigger(streak)},
	)

	return &dto.StreakResponse{StreakDays: streak, LongestStreak: longest, Extended: streak > 1}, nil
}

func (svc *XPService) GetHistory(ctx context.Context, userID string, limit int) ([]dto.XPTransactionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	txs, err := svc.dbSvc.XP().History(userID, limit)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	out := make([]dto.XPTransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, dto.XPTransactionResponse{
			ID:        tx.ID,
			ActionID:  tx.ActionID,
			BaseXP:    tx.BaseXP,
			BonusXP:   tx.BonusXP,
			TotalXP:   tx.TotalXP,
			Category:  tx.Category,
			Metadata:  tx.Metadata,
			CreatedAt: tx.CreatedAt,
		})
	}
	return out, nil
}

// bonusPercent sums the additive bonuses that apply at now.
func bonusPercent(streakDays int, focusCount int64, now time.Time) (int, []string) {
	pct := 0
	var reasons []string

	for _, tier := range streakTiers {
		if streakDays >= tier.days {
			pct += tier.pct
			reasons = append(reasons, fmt.Sprintf("%d-day streak", tier.days))
			break
		}
	}
	if focusCount >= focusThreshold {
		pct += focusBonusPct
		reasons = append(reasons, "focus")
	}
	if hour := now.Hour(); catalog.TimeWindowContains(catalog.TimeWindowMorning, hour) || catalog.TimeWindowContains(catalog.TimeWindowEvening, hour) {
		pct += timeBonusPct
		reasons = append(reasons, "time of day")
	}
	if wd := now.Weekday(); wd == time.Saturday || wd == time.Sunday {
		pct += weekendBonus
		reasons = append(reasons, "weekend")
	}
	return pct, reasons
}

func levelResponse(stats *model.UserStats) *dto.UserLevel {
	level := catalog.LevelFor(stats.TotalXP)
	out := &dto.UserLevel{
		Level:         level.Number,
		Title:         level.Title,
		Glyph:         level.Glyph,
		RequiredXP:    level.RequiredXP,
		Perks:         level.Perks,
		CurrentXP:     stats.TotalXP,
		MonthlyXP:     stats.MonthlyXP,
		Progress:      catalog.LevelProgress(stats.TotalXP),
		StreakDays:    stats.StreakDays,
		LongestStreak: stats.LongestStreak,
	}
	if next, ok := catalog.NextLevel(level); ok {
		out.NextLevelXP = next.RequiredXP
	}
	return out
}

func levelUpMarker(level int) string {
	return fmt.Sprintf("level-up-%d", level)
}
