package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/lac-hong-legacy/creator_api/seed/seeders"
	"github.com/lac-hong-legacy/creator_api/services"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	dbDriver string
	dbDSN    string
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the creator database with demo data for local development",
}

func seedCommand(use, short string, run func(*seeders.MainSeeder) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbSvc, err := openDatabase()
			if err != nil {
				log.WithError(err).Error("Failed to connect to database")
				return err
			}
			defer dbSvc.Shutdown()

			if err := run(seeders.NewMainSeeder(dbSvc)); err != nil {
				return err
			}
			log.Info("Seeding operation completed successfully")
			return nil
		},
	}
}

func openDatabase() (*services.DatabaseService, error) {
	var dialector gorm.Dialector
	switch dbDriver {
	case services.DriverSqlite:
		dialector = sqlite.Open(dbDSN)
	default:
		dialector = postgres.Open(dbDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	log.WithField("driver", dbDriver).Info("Connected to database")
	return services.NewDatabaseService(db)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using system environment variables")
	}

	defaultDriver := os.Getenv("DB_DRIVER")
	if defaultDriver == "" {
		defaultDriver = services.DriverSqlite
	}
	defaultDSN := os.Getenv("DATABASE_URL")
	if defaultDSN == "" {
		defaultDSN = "creator.db"
	}

	rootCmd.PersistentFlags().StringVar(&dbDriver, "driver", defaultDriver, "database driver: sqlite or postgres")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "dsn", defaultDSN, "database path or connection string")

	rootCmd.AddCommand(
		seedCommand("all", "Seed users, roadmap tasks and rate limit rules", (*seeders.MainSeeder).SeedAll),
		seedCommand("users", "Seed demo users only", (*seeders.MainSeeder).SeedUsersOnly),
		seedCommand("tasks", "Seed roadmap tasks for the demo users", (*seeders.MainSeeder).SeedTasksOnly),
		seedCommand("rate-limits", "Seed relaxed rate limit overrides", (*seeders.MainSeeder).SeedRateLimitsOnly),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
