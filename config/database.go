package config

import (
	"fmt"
	"time"

	"foodmanager/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Now is the clock gorm stamps createdAt/updatedAt with. Postgres keeps
// microseconds, so values are truncated to survive a round-trip unchanged.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// GormConfig is shared by the Postgres connection and the test databases.
func GormConfig(log *zap.Logger) *gorm.Config {
	return &gorm.Config{
		NowFunc: Now,
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// OpenDatabase connects to Postgres and migrates the schema.
func OpenDatabase(cfg *Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(log))
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Food{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
