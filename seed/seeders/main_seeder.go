package seeders

import (
	"github.com/lac-hong-legacy/creator_api/services"
	log "github.com/sirupsen/logrus"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	dbSvc *services.DatabaseService
}

func NewMainSeeder(dbSvc *services.DatabaseService) *MainSeeder {
	return &MainSeeder{dbSvc: dbSvc}
}

// SeedAll runs every seeder. Users go first since tasks reference them.
func (s *MainSeeder) SeedAll() error {
	log.Info("Starting database seeding...")

	if err := s.SeedUsersOnly(); err != nil {
		log.WithError(err).Error("User seeding failed")
		return err
	}
	if err := s.SeedTasksOnly(); err != nil {
		log.WithError(err).Error("Task seeding failed")
		return err
	}
	if err := s.SeedRateLimitsOnly(); err != nil {
		log.WithError(err).Error("Rate limit seeding failed")
		return err
	}

	log.Info("Database seeding completed successfully")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() error {
	return NewUserSeeder(s.dbSvc).SeedUsers()
}

func (s *MainSeeder) SeedTasksOnly() error {
	return NewTaskSeeder(s.dbSvc).SeedTasks()
}

func (s *MainSeeder) SeedRateLimitsOnly() error {
	return NewRateLimitSeeder(s.dbSvc).SeedRules()
}
