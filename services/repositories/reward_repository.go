package repositories

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

// RewardRepository stores unlocked rewards and the per-type activation rows.
type RewardRepository struct {
	BaseRepository
}

func NewRewardRepository(db *gorm.DB) *RewardRepository {
	return &RewardRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *RewardRepository) UnlockedRewardIDs(userID string) (map[string]bool, error) {
	var ids []string
	if err := ds.db.Model(&model.UnlockedReward{}).Where("user_id = ?", userID).Pluck("reward_id", &ids).Error; err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (ds *RewardRepository) ListUnlocked(userID string) ([]model.UnlockedReward, error) {
	var rows []model.UnlockedReward
	err := ds.db.Where("user_id = ?", userID).Order("unlocked_at ASC").Find(&rows).Error
	return rows, err
}

func (ds *RewardRepository) GetUnlocked(userID, rewardID string) (*model.UnlockedReward, error) {
	var row model.UnlockedReward
	if err := ds.db.Where("user_id = ? AND reward_id = ?", userID, rewardID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (ds *RewardRepository) CreateUnlocked(row *model.UnlockedReward) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

// MarkClaimed sets claimed_at once and activates the reward. It reports
// whether this call made the change.
func (ds *RewardRepository) MarkClaimed(userID, rewardID string, at time.Time) (bool, error) {
	res := ds.db.Model(&model.UnlockedReward{}).
		Where("user_id = ? AND reward_id = ? AND claimed_at IS NULL", userID, rewardID).
		Updates(map[string]interface{}{"claimed_at": at, "active": true})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (ds *RewardRepository) CreateFeature(row *model.UnlockedFeature) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *RewardRepository) ListFeatures(userID string) ([]string, error) {
	var features []string
	err := ds.db.Model(&model.UnlockedFeature{}).Where("user_id = ?", userID).Order("created_at ASC").Pluck("feature", &features).Error
	return features, err
}

func (ds *RewardRepository) CreateCosmetic(row *model.UserCosmetic) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *RewardRepository) CreateTemplateAccess(row *model.UserTemplateAccess) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *RewardRepository) CreatePerk(row *model.UserPerk) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *RewardRepository) ListActivePerks(userID string) ([]model.UserPerk, error) {
	var rows []model.UserPerk
	err := ds.db.Where("user_id = ? AND active = ?", userID, true).Find(&rows).Error
	return rows, err
}

// ExpirePerks deactivates perks whose expiry has passed and returns how many
// were changed.
func (ds *RewardRepository) ExpirePerks(now time.Time) (int64, error) {
	res := ds.db.Model(&model.UserPerk{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("active", false)
	return res.RowsAffected, res.Error
}

func (ds *RewardRepository) CreateContentAccess(row *model.ContentAccess) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *RewardRepository) HasContentAccess(userID, contentID string) (bool, error) {
	var count int64
	err := ds.db.Model(&model.ContentAccess{}).Where("user_id = ? AND content_id = ?", userID, contentID).Count(&count).Error
	return count > 0, err
}

func (ds *RewardRepository) CreateDiscount(row *model.UserDiscount) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

// ActiveDiscounts returns active discounts that apply to plan, including
// those valid for every plan.
func (ds *RewardRepository) ActiveDiscounts(userID, plan, anyPlan string) ([]model.UserDiscount, error) {
	var rows []model.UserDiscount
	err := ds.db.Where("user_id = ? AND active = ? AND plan IN ?", userID, true, []string{plan, anyPlan}).
		Order("percent DESC").
		Find(&rows).Error
	return rows, err
}
