package repositories

import (
	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

type RateLimitRepository struct {
	BaseRepository
}

func NewRateLimitRepository(db *gorm.DB) *RateLimitRepository {
	return &RateLimitRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *RateLimitRepository) ActiveRules() ([]model.RateLimitRule, error) {
	var rules []model.RateLimitRule
	err := ds.db.Where("is_active = ?", true).Find(&rules).Error
	return rules, err
}

func (ds *RateLimitRepository) SaveRule(rule *model.RateLimitRule) error {
	if rule.ID == "" {
		rule.ID = newID()
	}
	return ds.db.Save(rule).Error
}
