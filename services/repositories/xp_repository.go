package repositories

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

type XPRepository struct {
	BaseRepository
}

func NewXPRepository(db *gorm.DB) *XPRepository {
	return &XPRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *XPRepository) CreateTransaction(tx *model.XPTransaction) error {
	if tx.ID == "" {
		tx.ID = newID()
	}
	return ds.db.Create(tx).Error
}

func (ds *XPRepository) CountActionSince(userID, actionID string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.XPTransaction{}).
		Where("user_id = ? AND action_id = ? AND created_at >= ?", userID, actionID, since).
		Count(&count).Error
	return count, err
}

func (ds *XPRepository) CountCategorySince(userID, category string, since time.Time) (int64, error) {
	var count int64
	err := ds.db.Model(&model.XPTransaction{}).
		Where("user_id = ? AND category = ? AND created_at >= ?", userID, category, since).
		Count(&count).Error
	return count, err
}

func (ds *XPRepository) SumSince(userID string, since time.Time) (int64, error) {
	var total int64
	err := ds.db.Model(&model.XPTransaction{}).
		Select("COALESCE(SUM(total_xp), 0)").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Scan(&total).Error
	return total, err
}

// TimesSince lists timestamps of transactions for the given actions, for
// time-of-day filtering. Grants recorded under other sources are not counted.
func (ds *XPRepository) TimesSince(userID string, actionIDs []string, since time.Time) ([]time.Time, error) {
	var times []time.Time
	if len(actionIDs) == 0 {
		return times, nil
	}
	err := ds.db.Model(&model.XPTransaction{}).
		Where("user_id = ? AND action_id IN ? AND created_at >= ?", userID, actionIDs, since).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	return times, err
}

func (ds *XPRepository) History(userID string, limit int) ([]model.XPTransaction, error) {
	var txs []model.XPTransaction
	err := ds.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}

// LastActionAt returns the newest transaction time for the action, or nil.
func (ds *XPRepository) LastActionAt(userID, actionID string) (*time.Time, error) {
	var tx model.XPTransaction
	err := ds.db.Where("user_id = ? AND action_id = ?", userID, actionID).
		Order("created_at DESC").
		Limit(1).
		Find(&tx).Error
	if err != nil || tx.ID == "" {
		return nil, err
	}
	return &tx.CreatedAt, nil
}
