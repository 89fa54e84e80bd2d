package db

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"plate-service/internal/config"
)

// New opens the configured database, applies pool settings and runs the
// migrations.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DB.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.DB.DSN))
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}

	logLevel := gormlogger.Warn
	if cfg.Environment == "production" {
		logLevel = gormlogger.Silent
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}
	if cfg.DB.Driver == config.DriverSQLite {
		// sqlite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := runMigrations(database); err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.DB.Driver).Msg("database ready")
	return database, nil
}

// sqliteDSN turns on foreign keys so entry rows follow their collection.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
