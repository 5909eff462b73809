package config

import (
	"fmt"
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resume-parser/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("✅ Database connected successfully (%s)", cfg.Database.Driver)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

// Migrate creates or updates the candidate tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Candidate{},
		&models.Education{},
		&models.Experience{},
		&models.Skill{},
		&models.Project{},
		&models.Certification{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func openDialector(cfg *Config) (gorm.Dialector, error) {
	switch cfg.Database.Driver {
	case DriverPostgres:
		return postgres.Open(cfg.GetDatabaseDSN()), nil
	case DriverSQLite:
		return sqlite.Open(cfg.GetDatabaseDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}
