package repositories

import (
	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

// BadgeRepository stores earned badges, achievements and titles.
type BadgeRepository struct {
	BaseRepository
}

func NewBadgeRepository(db *gorm.DB) *BadgeRepository {
	return &BadgeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *BadgeRepository) EarnedBadgeIDs(userID string) (map[string]bool, error) {
	var ids []string
	if err := ds.db.Model(&model.UserBadge{}).Where("user_id = ?", userID).Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (ds *BadgeRepository) ListUserBadges(userID string) ([]model.UserBadge, error) {
	var rows []model.UserBadge
	err := ds.db.Where("user_id = ?", userID).Order("earned_at ASC").Find(&rows).Error
	return rows, err
}

// CreateUserBadge reports false when the badge was already earned.
func (ds *BadgeRepository) CreateUserBadge(row *model.UserBadge) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *BadgeRepository) CountBadges(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.UserBadge{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// EarnedAchievementIDs includes level-up and challenge markers.
func (ds *BadgeRepository) EarnedAchievementIDs(userID string) (map[string]bool, error) {
	var ids []string
	if err := ds.db.Model(&model.UserAchievement{}).Where("user_id = ?", userID).Pluck("achievement_id", &ids).Error; err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

func (ds *BadgeRepository) ListUserAchievements(userID, kind string) ([]model.UserAchievement, error) {
	var rows []model.UserAchievement
	err := ds.db.Where("user_id = ? AND kind = ?", userID, kind).Order("earned_at ASC").Find(&rows).Error
	return rows, err
}

func (ds *BadgeRepository) CreateUserAchievement(row *model.UserAchievement) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *BadgeRepository) CountAchievements(userID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.UserAchievement{}).
		Where("user_id = ? AND kind = ?", userID, model.AchievementKindCatalog).
		Count(&count).Error
	return count, err
}

func (ds *BadgeRepository) CreateTitle(row *model.UserTitle) (bool, error) {
	if row.ID == "" {
		row.ID = newID()
	}
	return ds.insertIfAbsent(row)
}

func (ds *BadgeRepository) ListTitles(userID string) ([]model.UserTitle, error) {
	var rows []model.UserTitle
	err := ds.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
