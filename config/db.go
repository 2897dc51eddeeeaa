package config

import (
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the configured database and tunes its pool.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	driver := strings.ToLower(cfg.Database.Driver)
	switch driver {
	case "mysql":
		dialector = mysql.Open(cfg.Database.URL)
	case "postgres":
		// lib/pq instead of pgx
		dialector = postgres.New(postgres.Config{DriverName: "postgres", DSN: cfg.Database.URL})
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.URL)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger(cfg.Log.Level)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one writer; transactions never touch a second connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	utils.InfoLogger.Printf("Database connected (%s)", driver)
	return db, nil
}

func gormLogger(level string) logger.Interface {
	lvl := logger.Warn
	switch strings.ToLower(level) {
	case "debug", "trace":
		lvl = logger.Info
	case "error", "fatal", "panic":
		lvl = logger.Error
	}
	return logger.New(utils.InfoLogger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
