package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/catalog"
	"github.com/lac-hong-legacy/creator_api/dto"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const earlyAdopterSignups = 1000

type RewardService struct {
	appContext.DefaultService

	dbSvc    *DatabaseService
	notifier Notifier
	clock    shared.Clock
}

const REWARD_SVC = "reward_svc"

func (svc RewardService) Id() string {
	return REWARD_SVC
}

func (svc *RewardService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *RewardService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.notifier = svc.Service(NOTIFICATION_SVC).(*NotificationService)
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	return nil
}

// CheckAndUnlockRewards compares rewards of the trigger's type against the
// trigger directly; every other reward is checked against the user's current
// state so thresholds already met still unlock.
func (svc *RewardService) CheckAndUnlockRewards(ctx context.Context, userID string, trigger catalog.Trigger) ([]catalog.Reward, error) {
	unlocked, err := svc.dbSvc.Rewards().UnlockedRewardIDs(userID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	var state *catalog.UserState
	var out []catalog.Reward

	for _, reward := range catalog.Rewards() {
		if unlocked[reward.ID] {
			continue
		}

		var ok bool
		if reward.Unlock.Type() == trigger.Type {
			ok = reward.Unlock.MatchesTrigger(trigger)
		} else {
			if state == nil {
				state, err = svc.userState(userID)
				if err != nil {
					return out, svc.dbSvc.HandleError(err)
				}
			}
			ok = reward.Unlock.SatisfiedBy(*state)
		}
		if !ok {
			continue
		}

		if err := svc.unlock(ctx, userID, reward); err != nil {
			log.WithFields(log.Fields{"user_id": userID, "reward_id": reward.ID, "error": err}).Error("Failed to unlock reward")
			continue
		}
		out = append(out, reward)
	}

	return out, nil
}

func (svc *RewardService) unlock(ctx context.Context, userID string, reward catalog.Reward) error {
	now := svc.clock.Now()
	inserted, err := svc.dbSvc.Rewards().CreateUnlocked(&model.UnlockedReward{
		UserID:     userID,
		RewardID:   reward.ID,
		UnlockedAt: now,
		Active:     !reward.RequiresClaim,
	})
	if err != nil {
		return err
	}
	if !inserted {
		return nil
	}

	if !reward.RequiresClaim {
		if err := svc.activate(userID, reward, now); err != nil {
			log.WithFields(log.Fields{"user_id": userID, "reward_id": reward.ID, "error": err}).Error("Failed to activate reward")
		}
	}

	awardsTotal.WithLabelValues("reward").Inc()
	log.WithFields(log.Fields{"user_id": userID, "reward_id": reward.ID, "type": reward.Type}).Info("Reward unlocked")

	message := reward.Description
	if reward.RequiresClaim {
		message += ". Claim it from your rewards page."
	}
	svc.notifier.Notify(ctx, userID, shared.NotificationReward,
		fmt.Sprintf("%s %s unlocked", reward.Icon, reward.Name),
		message,
		map[string]interface{}{"reward_id": reward.ID, "type": reward.Type, "requires_claim": reward.RequiresClaim})
	return nil
}

// activate writes the per-type grant row. Every row is insert-if-absent, so a
// repeated activation changes nothing.
func (svc *RewardService) activate(userID string, reward catalog.Reward, now time.Time) error {
	repo := svc.dbSvc.Rewards()
	v := reward.Value

	var err error
	switch reward.Type {
	case catalog.RewardFeature:
		_, err = repo.CreateFeature(&model.UnlockedFeature{UserID: userID, Feature: v.Feature, Source: "reward:" + reward.ID, CreatedAt: now})
	case catalog.RewardCosmetic:
		if v.Cosmetic == nil {
			return errors.New("cosmetic reward without payload")
		}
		_, err = repo.CreateCosmetic(&model.UserCosmetic{UserID: userID, Asset: v.Cosmetic.Asset, Slot: v.Cosmetic.Slot, CreatedAt: now})
	case catalog.RewardTemplate:
		_, err = repo.CreateTemplateAccess(&model.UserTemplateAccess{
			UserID:     userID,
			RewardID:   reward.ID,
			Categories: datatypes.NewJSONType(v.Templates),
			CreatedAt:  now,
		})
	case catalog.RewardPerk:
		if v.Perk == nil {
			return errors.New("perk reward without payload")
		}
		perk := &model.UserPerk{UserID: userID, Perk: v.Perk.Perk, Active: true, CreatedAt: now}
		if v.Perk.Monthly {
			expires := now.AddDate(0, 1, 0)
			perk.ExpiresAt = &expires
		}
		_, err = repo.CreatePerk(perk)
	case catalog.RewardContent:
		_, err = repo.CreateContentAccess(&model.ContentAccess{UserID: userID, ContentID: v.ContentID, CreatedAt: now})
	case catalog.RewardDiscount:
		if v.Discount == nil {
			return errors.New("discount reward without payload")
		}
		_, err = repo.CreateDiscount(&model.UserDiscount{
			UserID:    userID,
			RewardID:  reward.ID,
			Percent:   v.Discount.Percent,
			Plan:      v.Discount.Plan,
			Lifetime:  v.Discount.Lifetime,
			Active:    true,
			CreatedAt: now,
		})
	default:
		return fmt.Errorf("unknown reward type %q", reward.Type)
	}
	return err
}

func (svc *RewardService) userState(userID string) (*catalog.UserState, error) {
	stats, err := svc.dbSvc.Users().GetStats(userID, svc.clock.Now())
	if err != nil {
		return nil, err
	}
	badges, err := svc.dbSvc.Badges().EarnedBadgeIDs(userID)
	if err != nil {
		return nil, err
	}
	achievements, err := svc.dbSvc.Badges().EarnedAchievementIDs(userID)
	if err != nil {
		return nil, err
	}

	flags := map[string]bool{}
	if user, err := svc.dbSvc.Users().GetUser(userID); err == nil {
		flags[catalog.SpecialEarlyAdopter] = user.SignupOrder > 0 && user.SignupOrder <= earlyAdopterSignups
		flags[catalog.SpecialOnboardingComplete] = user.OnboardedAt != nil
	}

	return &catalog.UserState{
		Level:        catalog.LevelFor(stats.TotalXP).Number,
		TotalXP:      stats.TotalXP,
		StreakDays:   stats.StreakDays,
		Badges:       badges,
		Achievements: achievements,
		Flags:        flags,
	}, nil
}

// ClaimReward sets claimed_at once. Rewards that require a claim are activated
// here; claiming again returns the current state.
func (svc *RewardService) ClaimReward(ctx context.Context, userID, rewardID string) (*dto.RewardResponse, error) {
	reward, ok := catalog.LookupReward(rewardID)
	if !ok {
		return nil, shared.NewNotFoundError(nil, "Reward not found")
	}

	row, err := svc.dbSvc.Rewards().GetUnlocked(userID, rewardID)
	if err != nil {
		appErr := svc.dbSvc.HandleError(err)
		if shared.IsNotFound(appErr) {
			return nil, shared.NewForbiddenError(nil, "Reward is still locked")
		}
		return nil, appErr
	}

	now := svc.clock.Now()
	changed, err := svc.dbSvc.Rewards().MarkClaimed(userID, rewardID, now)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	if changed {
		row.ClaimedAt = &now
		row.Active = true
		if reward.RequiresClaim {
			if err := svc.activate(userID, reward, now); err != nil {
				return nil, shared.NewInternalError(err, "Failed to activate reward")
			}
		}
		log.WithFields(log.Fields{"user_id": userID, "reward_id": rewardID}).Info("Reward claimed")
	}

	resp := rewardResponse(reward)
	resp.Unlocked = true
	resp.UnlockedAt = &row.UnlockedAt
	resp.ClaimedAt = row.ClaimedAt
	resp.Active = row.Active
	return &resp, nil
}

// ApplyActiveDiscounts prices amountCents with the single best active
// discount for plan. Discounts never stack.
func (svc *RewardService) ApplyActiveDiscounts(ctx context.Context, userID, plan string, amountCents int64) (*dto.DiscountResponse, error) {
	rows, err := svc.dbSvc.Rewards().ActiveDiscounts(userID, plan, shared.PlanAll)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}

	resp := &dto.DiscountResponse{Plan: plan, OriginalCents: amountCents, FinalCents: amountCents}
	if len(rows) == 0 {
		return resp, nil
	}

	best := rows[0]
	for _, r := range rows[1:] {
		if r.Percent > best.Percent {
			best = r
		}
	}
	resp.Percent = best.Percent
	resp.RewardID = best.RewardID
	resp.FinalCents = amountCents * int64(100-best.Percent) / 100
	return resp, nil
}

// HasContentAccess reports whether a content reward has opened contentID for
// the user.
func (svc *RewardService) HasContentAccess(ctx context.Context, userID, contentID string) (*dto.ContentAccessResponse, error) {
	if contentID == "" {
		return nil, shared.NewBadRequestError(nil, "Content id is required")
	}
	granted, err := svc.dbSvc.Rewards().HasContentAccess(userID, contentID)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	return &dto.ContentAccessResponse{ContentID: contentID, Granted: granted}, nil
}

func (svc *RewardService) ExpirePerks(ctx context.Context) (int64, error) {
	n, err := svc.dbSvc.Rewards().ExpirePerks(svc.clock.Now())
	if err != nil {
		return 0, svc.dbSvc.HandleError(err)
	}
	if n > 0 {
		log.WithField("count", n).Info("Expired perks")
	}
	return n, nil
}

func (svc *RewardService) ListRewards(ctx context.Context, userID, query string) ([]dto.RewardResponse, error) {
	unlocked := map[string]model.UnlockedReward{}
	if userID != "" {
		rows, err := svc.dbSvc.Rewards().ListUnlocked(userID)
		if err != nil {
			return nil, svc.dbSvc.HandleError(err)
		}
		for _, r := range rows {
			unlocked[r.RewardID] = r
		}
	}

	items := catalog.FuzzyFilter(catalog.Rewards(), query, func(r catalog.Reward) string { return r.Name })
	out := make([]dto.RewardResponse, 0, len(items))
	for _, r := range items {
		resp := rewardResponse(r)
		if row, ok := unlocked[r.ID]; ok {
			resp.Unlocked = true
			resp.UnlockedAt = &row.UnlockedAt
			resp.ClaimedAt = row.ClaimedAt
			resp.Active = row.Active
		}
		out = append(out, resp)
	}
	return out, nil
}

func rewardResponse(r catalog.Reward) dto.RewardResponse {
	return dto.RewardResponse{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Type:          string(r.Type),
		Category:      string(r.Category),
		Icon:          r.Icon,
		Requirement:   describeUnlock(r.Unlock),
		Value:         r.Value,
		RequiresClaim: r.RequiresClaim,
	}
}

func describeUnlock(u catalog.UnlockRequirement) string {
	switch r := u.(type) {
	case catalog.LevelUnlock:
		return fmt.Sprintf("Reach level %d", r.Level)
	case catalog.XPUnlock:
		return fmt.Sprintf("Earn %d XP", r.XP)
	case catalog.StreakUnlock:
		return fmt.Sprintf("Keep a %d day streak", r.Days)
	case catalog.BadgeUnlock:
		if b, ok := catalog.LookupBadge(r.BadgeID); ok {
			return "Earn the " + b.Name + " badge"
		}
		return "Earn badge " + r.BadgeID
	case catalog.AchievementUnlock:
		if a, ok := catalog.LookupAchievement(r.AchievementID); ok {
			return "Unlock " + a.Name
		}
		return "Unlock achievement " + r.AchievementID
	case catalog.SpecialUnlock:
		return "Special: " + r.Key
	}
	return string(u.Type())
}
