package seeders

import (
	"errors"
	"time"

	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/services"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TaskSeeder gives each demo user an open roadmap.
type TaskSeeder struct {
	dbSvc *services.DatabaseService
}

func NewTaskSeeder(dbSvc *services.DatabaseService) *TaskSeeder {
	return &TaskSeeder{dbSvc: dbSvc}
}

var roadmap = []struct {
	Suffix   string
	Title    string
	Category string
}{
	{"channel-art", "Design channel art", "branding"},
	{"first-script", "Script your first episode", "production"},
	{"upload-schedule", "Pick an upload schedule", "planning"},
	{"thumbnail-set", "Make three thumbnail variants", "production"},
	{"collab-list", "List five creators to collaborate with", "growth"},
}

func (s *TaskSeeder) SeedTasks() error {
	now := time.Now()
	for _, user := range demoUsers() {
		for _, item := range roadmap {
			id := user.ID + "-" + item.Suffix
			_, err := s.dbSvc.Activity().GetTask(user.ID, id)
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			task := &model.Task{ID: id, UserID: user.ID, Title: item.Title, Category: item.Category, CreatedAt: now}
			if err := s.dbSvc.Activity().CreateTask(task); err != nil {
				return err
			}
		}
		log.WithField("user_id", user.ID).Info("Seeded roadmap tasks")
	}
	return nil
}
