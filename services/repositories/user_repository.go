package repositories

import (
	"errors"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository handles profile and aggregate stats rows
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *UserRepository) GetUser(userID string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser assigns the next signup order inside a transaction.
func (ds *UserRepository) CreateUser(user *model.User) (*model.User, error) {
	err := ds.db.Transaction(func(tx *gorm.DB) error {
		var last int64
		if err := tx.Model(&model.User{}).Select("COALESCE(MAX(signup_order), 0)").Scan(&last).Error; err != nil {
			return err
		}
		user.SignupOrder = last + 1
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (ds *UserRepository) UpdateUser(user *model.User, now time.Time) error {
	user.UpdatedAt = now
	return ds.db.Save(user).Error
}

func (ds *UserRepository) GetUsersByIDs(ids []string) (map[string]model.User, error) {
	out := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []model.User
	if err := ds.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

// GetStats returns the stats row, creating an empty one on first use.
func (ds *UserRepository) GetStats(userID string, now time.Time) (*model.UserStats, error) {
	var stats model.UserStats
	err := ds.db.Where("user_id = ?", userID).First(&stats).Error
	if err == nil {
		return &stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats = model.UserStats{UserID: userID, Level: 1, UpdatedAt: now}
	if err := ds.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&stats).Error; err != nil {
		return nil, err
	}
	if err := ds.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (ds *UserRepository) GetStatsByIDs(ids []string) (map[string]model.UserStats, error) {
	out := make(map[string]model.UserStats, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.UserStats
	if err := ds.db.Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.UserID] = s
	}
	return out, nil
}

// AddXP increments the cumulative and month-to-date totals in one statement.
// The month counter restarts when the month key changes.
func (ds *UserRepository) AddXP(userID string, amount int64, monthKey string, at time.Time) (*model.UserStats, error) {
	if _, err := ds.GetStats(userID, at); err != nil {
		return nil, err
	}

	err := ds.db.Model(&model.UserStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"total_xp":   gorm.Expr("total_xp + ?", amount),
			"monthly_xp": gorm.Expr("CASE WHEN month_key = ? THEN monthly_xp + ? ELSE ? END", monthKey, amount, amount),
			"month_key":  monthKey,
			"last_xp_at": at,
			"updated_at": at,
		}).Error
	if err != nil {
		return nil, err
	}

	var stats model.UserStats
	if err := ds.db.Where("user_id = ?", userID).First(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (ds *UserRepository) SetLevel(userID string, level int, now time.Time) error {
	return ds.db.Model(&model.UserStats{}).
		Where("user_id = ? AND level < ?", userID, level).
		Updates(map[string]interface{}{"level": level, "updated_at": now}).Error
}

func (ds *UserRepository) SaveStreak(userID string, streak, longest int, activeOn string, now time.Time) error {
	return ds.db.Model(&model.UserStats{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"streak_days":    streak,
			"longest_streak": longest,
			"last_active_on": activeOn,
			"updated_at":     now,
		}).Error
}
