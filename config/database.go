package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zsmartex/coreledger/repositories"
)

var DataBase *gorm.DB

func databaseDSN() string {
	sslmode := "require"
	if os.Getenv("DATABASE_SSLMODE") == "disable" {
		sslmode = "disable"
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		os.Getenv("DATABASE_HOST"),
		os.Getenv("DATABASE_PORT"),
		os.Getenv("DATABASE_USER"),
		os.Getenv("DATABASE_PASS"),
		os.Getenv("DATABASE_NAME"),
		sslmode,
	)
}

// NewDatabase opens postgres unless DATABASE_DRIVER=sqlite, in which case DATABASE_NAME is the file path.
func NewDatabase() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver := os.Getenv("DATABASE_DRIVER"); driver {
	case "", "postgres":
		dialector = postgres.Open(databaseDSN())
	case "sqlite":
		dialector = sqlite.Open(os.Getenv("DATABASE_NAME"))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	if Logger == nil {
		NewLoggerService()
	}

	level := logger.Silent
	if Logger.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger: logger.New(Logger, logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// ConnectDatabase opens the database and brings the ledger schema up to date.
func ConnectDatabase() error {
	db, err := NewDatabase()
	if err != nil {
		return err
	}

	if err := repositories.Migrate(db); err != nil {
		return err
	}

	DataBase = db

	return nil
}
