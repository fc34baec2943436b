package repositories

import (
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *NotificationRepository) CreateNotification(n *model.Notification) error {
	if n.ID == "" {
		n.ID = newID()
	}
	return ds.db.Create(n).Error
}

func (ds *NotificationRepository) ListNotifications(userID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	q := ds.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	var rows []model.Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (ds *NotificationRepository) MarkRead(userID string, ids []string, at time.Time) (int64, error) {
	res := ds.db.Model(&model.Notification{}).
		Where("user_id = ? AND id IN ? AND read_at IS NULL", userID, ids).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}
