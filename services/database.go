package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/lac-hong-legacy/creator_api/model"
	"github.com/lac-hong-legacy/creator_api/services/repositories"
	"github.com/lac-hong-legacy/creator_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// DatabaseService owns the gorm connection and exposes one repository per
// aggregate.
type DatabaseService struct {
	context.DefaultService
	db *gorm.DB

	driver string
	dsn    string

	users         *repositories.UserRepository
	xp            *repositories.XPRepository
	badges        *repositories.BadgeRepository
	rewards       *repositories.RewardRepository
	challenges    *repositories.ChallengeRepository
	activity      *repositories.ActivityRepository
	analytics     *repositories.AnalyticRepository
	conversations *repositories.ConversationRepository
	notifications *repositories.NotificationRepository
	leaderboards  *repositories.LeaderboardRepository
	rateLimits    *repositories.RateLimitRepository
}

const DATABASE_SVC = "database_svc"

func (ds DatabaseService) Id() string {
	return DATABASE_SVC
}

func (ds DatabaseService) Db() *gorm.DB {
	return ds.db
}

func (ds *DatabaseService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = DriverPostgres
	}

	ds.dsn = os.Getenv("DATABASE_URL")
	if ds.dsn == "" && ds.driver == DriverSqlite {
		ds.dsn = os.Getenv("DB_DATABASE")
		if ds.dsn == "" {
			ds.dsn = "creator.db"
		}
	}
	if ds.dsn == "" {
		ds.dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "postgres"),
			envOr("DB_PASSWORD", "postgres"),
			envOr("DB_NAME", "creator_api"),
			envOr("DB_PORT", "5432"),
			envOr("DB_SSLMODE", "disable"),
			envOr("DB_TIMEZONE", "UTC"))
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *DatabaseService) Start() (err error) {
	switch ds.driver {
	case DriverSqlite:
		ds.db, err = gorm.Open(sqlite.Open(ds.dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
	case DriverPostgres:
		err = ds.connectPostgres()
	default:
		err = fmt.Errorf("unsupported DB_DRIVER %q", ds.driver)
	}
	if err != nil {
		return err
	}

	if err := ds.Migrate(); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}
	ds.initRepositories()

	log.WithField("driver", ds.driver).Info("Database connected and migrated successfully")
	return nil
}

// connectPostgres retries with exponential backoff while the database comes up.
func (ds *DatabaseService) connectPostgres() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					return nil
				}
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}
	return err
}

// NewDatabaseService wraps an open connection, migrating it first. Used by
// tests and the seed command.
func NewDatabaseService(db *gorm.DB) (*DatabaseService, error) {
	ds := &DatabaseService{db: db, driver: db.Dialector.Name()}
	if err := ds.Migrate(); err != nil {
		return nil, err
	}
	ds.initRepositories()
	return ds, nil
}

func (ds *DatabaseService) Migrate() error {
	models := []interface{}{
		&model.User{},
		&model.UserStats{},
		&model.XPTransaction{},

		&model.UserBadge{},
		&model.UserAchievement{},
		&model.UserTitle{},

		&model.UnlockedReward{},
		&model.UnlockedFeature{},
		&model.UserCosmetic{},
		&model.UserTemplateAccess{},
		&model.UserPerk{},
		&model.ContentAccess{},
		&model.UserDiscount{},

		&model.DailyChallenge{},
		&model.LeaderboardSnapshot{},

		&model.AIConversation{},
		&model.ContentPost{},
		&model.Task{},
		&model.EngagementEvent{},
		&model.Notification{},
		&model.RateLimitRule{},
	}
	return ds.db.AutoMigrate(models...)
}

func (ds *DatabaseService) initRepositories() {
	ds.users = repositories.NewUserRepository(ds.db)
	ds.xp = repositories.NewXPRepository(ds.db)
	ds.badges = repositories.NewBadgeRepository(ds.db)
	ds.rewards = repositories.NewRewardRepository(ds.db)
	ds.challenges = repositories.NewChallengeRepository(ds.db)
	ds.activity = repositories.NewActivityRepository(ds.db)
	ds.analytics = repositories.NewAnalyticRepository(ds.db)
	ds.conversations = repositories.NewConversationRepository(ds.db)
	ds.notifications = repositories.NewNotificationRepository(ds.db)
	ds.leaderboards = repositories.NewLeaderboardRepository(ds.db)
	ds.rateLimits = repositories.NewRateLimitRepository(ds.db)
}

func (ds *DatabaseService) Shutdown() {
	if ds.db == nil {
		return
	}
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func (ds *DatabaseService) Users() *repositories.UserRepository                 { return ds.users }
func (ds *DatabaseService) XP() *repositories.XPRepository                      { return ds.xp }
func (ds *DatabaseService) Badges() *repositories.BadgeRepository               { return ds.badges }
func (ds *DatabaseService) Rewards() *repositories.RewardRepository             { return ds.rewards }
func (ds *DatabaseService) Challenges() *repositories.ChallengeRepository       { return ds.challenges }
func (ds *DatabaseService) Activity() *repositories.ActivityRepository          { return ds.activity }
func (ds *DatabaseService) Analytics() *repositories.AnalyticRepository         { return ds.analytics }
func (ds *DatabaseService) Conversations() *repositories.ConversationRepository { return ds.conversations }
func (ds *DatabaseService) Notifications() *repositories.NotificationRepository { return ds.notifications }
func (ds *DatabaseService) Leaderboards() *repositories.LeaderboardRepository   { return ds.leaderboards }
func (ds *DatabaseService) RateLimits() *repositories.RateLimitRepository       { return ds.rateLimits }

// HandleError logs err and converts it to a typed application error.
func (ds *DatabaseService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		msg := err.Error()
		switch {
		case strings.Contains(msg, "UNIQUE constraint failed"),
			strings.Contains(msg, "duplicate key value violates unique constraint"):
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		case strings.Contains(msg, "no such table"),
			strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist"):
			statusCode = http.StatusInternalServerError
			errorType = "SCHEMA_ERROR"
		case strings.Contains(msg, "connection refused"):
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		default:
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	wrapped := fmt.Errorf("%s: %w", errorType, err)
	switch statusCode {
	case http.StatusNotFound:
		return shared.NewNotFoundError(wrapped, "Record not found")
	case http.StatusConflict:
		return shared.NewConflictError(wrapped, "Record already exists")
	case http.StatusBadRequest:
		return shared.NewBadRequestError(wrapped, "Invalid reference")
	default:
		return shared.NewInternalError(wrapped, "Database error")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
