package config

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dugubuyan/ai-receiption/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DSN builds a data source name for the configured driver.
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case "sqlite":
		return c.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.Name)
	}
}

// InitDB opens the database connection and configures the pool. Connection
// attempts are retried with backoff so the service survives the store
// coming up after it in compose environments.
func InitDB(cfg DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	maxRetries := 5
	for attempt := 1; attempt <= maxRetries; attempt++ {
		switch cfg.Driver {
		case "sqlite":
			db, err = gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{})
		default:
			db, err = gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
		}

		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				configureConnectionPool(sqlDB)
				utils.InfoLogger.Printf("Database connected (driver=%s, attempt=%d)", cfg.Driver, attempt)
				return db, nil
			}
		}

		utils.ErrorLogger.Printf("Database connection attempt %d/%d failed: %v", attempt, maxRetries, err)
		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func configureConnectionPool(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
}
