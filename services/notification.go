package services

import (
	"context"

	appContext "github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
)

// Notifier is fire-and-forget: implementations must not return errors to the
// award path.
type Notifier interface {
	Notify(ctx context.Context, userID, kind, title, message string, data map[string]interface{})
}

type NotificationService struct {
	appContext.DefaultService

	dbSvc *DatabaseService
	clock shared.Clock
}

const NOTIFICATION_SVC = "notification_svc"

func (svc NotificationService) Id() string {
	return NOTIFICATION_SVC
}

func (svc *NotificationService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *NotificationService) Start() error {
	svc.dbSvc = svc.Service(DATABASE_SVC).(*DatabaseService)
	svc.clock = svc.Service(SETTINGS_SVC).(*SettingsService).Clock()
	return nil
}

func (svc *NotificationService) Notify(ctx context.Context, userID, kind, title, message string, data map[string]interface{}) {
	n := &model.Notification{
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: svc.clock.Now(),
	}
	if err := svc.dbSvc.Notifications().CreateNotification(n); err != nil {
		log.WithFields(log.Fields{
			"user_id": userID,
			"type":    kind,
			"error":   err,
		}).Warn("Failed to store notification")
		return
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"type":    kind,
		"title":   title,
	}).Debug("Notification stored")
}

func (svc *NotificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := svc.dbSvc.Notifications().ListNotifications(userID, unreadOnly, limit)
	if err != nil {
		return nil, svc.dbSvc.HandleError(err)
	}
	return rows, nil
}

func (svc *NotificationService) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	n, err := svc.dbSvc.Notifications().MarkRead(userID, ids, svc.clock.Now())
	if err != nil {
		return 0, svc.dbSvc.HandleError(err)
	}
	return n, nil
}
