package repositories

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

type ChallengeRepository struct {
	BaseRepository
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ChallengeRepository) CreateChallenges(rows []model.DailyChallenge) error {
	for i := range rows {
		if rows[i].ID == "" {
			rows[i].ID = newID()
		}
	}
	return ds.db.Create(&rows).Error
}

func (ds *ChallengeRepository) GetChallenge(userID, id string) (*model.DailyChallenge, error) {
	var row model.DailyChallenge
	if err := ds.db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListCreatedSince returns every challenge generated for the user since the
// given instant, whatever its status.
func (ds *ChallengeRepository) ListCreatedSince(userID string, since time.Time) ([]model.DailyChallenge, error) {
	var rows []model.DailyChallenge
	err := ds.db.Where("user_id = ? AND created_at >= ?", userID, since).Order("created_at ASC, difficulty ASC").Find(&rows).Error
	return rows, err
}

func (ds *ChallengeRepository) ListActive(userID string, now time.Time) ([]model.DailyChallenge, error) {
	var rows []model.DailyChallenge
	err := ds.db.Where("user_id = ? AND status = ? AND expires_at > ?", userID, model.ChallengeStatusActive, now).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (ds *ChallengeRepository) RecentTemplateIDs(userID string, since time.Time) (map[string]bool, error) {
	var ids []string
	err := ds.db.Model(&model.DailyChallenge{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Distinct().
		Pluck("challenge_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return toSet(ids), nil
}

// RaiseProgress only ever moves progress up.
func (ds *ChallengeRepository) RaiseProgress(id string, progress int) error {
	return ds.db.Model(&model.DailyChallenge{}).
		Where("id = ? AND status = ? AND progress < ?", id, model.ChallengeStatusActive, progress).
		Update("progress", progress).Error
}

func (ds *ChallengeRepository) MarkCompleted(id string, at time.Time) (bool, error) {
	res := ds.db.Model(&model.DailyChallenge{}).
		Where("id = ? AND status = ?", id, model.ChallengeStatusActive).
		Updates(map[string]interface{}{
			"status":       model.ChallengeStatusCompleted,
			"progress":     100,
			"completed_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

// MarkClaimed is the single guard against paying a challenge twice.
func (ds *ChallengeRepository) MarkClaimed(id string, at time.Time) (bool, error) {
	res := ds.db.Model(&model.DailyChallenge{}).
		Where("id = ? AND status = ? AND claimed_at IS NULL", id, model.ChallengeStatusCompleted).
		Update("claimed_at", at)
	return res.RowsAffected > 0, res.Error
}

func (ds *ChallengeRepository) Abandon(userID, id string) (bool, error) {
	res := ds.db.Model(&model.DailyChallenge{}).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, model.ChallengeStatusActive).
		Update("status", model.ChallengeStatusAbandoned)
	return res.RowsAffected > 0, res.Error
}

func (ds *ChallengeRepository) ExpireBefore(now time.Time) (int64, error) {
	res := ds.db.Model(&model.DailyChallenge{}).
		Where("status = ? AND expires_at <= ?", model.ChallengeStatusActive, now).
		Update("status", model.ChallengeStatusExpired)
	return res.RowsAffected, res.Error
}
